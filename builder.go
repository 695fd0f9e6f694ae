package weft

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDependency indicates a declared input dependency has no node
	// in the graph. Raised via panic at AddTask and Execute time.
	ErrMissingDependency = errors.New("weft: missing dependency")
	// ErrDuplicateOutput indicates a downstream output identity was already
	// claimed by another node. Raised via panic at AddTask time.
	ErrDuplicateOutput = errors.New("weft: output already claimed")
	// ErrBuilderSealed indicates a builder was used after Build.
	ErrBuilderSealed = errors.New("weft: builder already built")
	// ErrNilDatabase indicates a builder was created without a store.
	ErrNilDatabase = errors.New("weft: nil database")
)

// Builder accumulates seed inputs and task registrations over a store, then
// freezes into an ExecutionGraph. Dependency violations are programmer bugs:
// every violation panics with an error wrapping one of the sentinels above
// rather than returning it.
type Builder struct {
	graph  *ExecutionGraph
	sealed bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithHooks registers lifecycle hooks invoked around every Execute call on
// the built graph.
func WithHooks(h Hooks) BuilderOption {
	return func(b *Builder) {
		b.graph.hooks = b.graph.hooks.Merge(h)
	}
}

// NewBuilder creates a builder over db. Pass NewInMemoryDB() unless a custom
// Database implementation backs the graph.
func NewBuilder(db Database, opts ...BuilderOption) *Builder {
	if db == nil {
		panic(ErrNilDatabase)
	}
	b := &Builder{graph: newExecutionGraph(db)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddInput seeds the store with value under K's key identity. Seeding has no
// topology effect; an identity becomes a node only once a task's input or
// output bundle mentions it.
func AddInput[K Key[V], V any](b *Builder, value V) *Builder {
	b.checkOpen()
	Put[K](b.graph.db, value)
	return b
}

// AddTask registers T as a pair of graph nodes and validates its declared
// wiring. Every identity T's input depends on must already be a node, and
// every identity T's output claims downstream must not be. Violations panic.
//
// The recorded edges are a static check, not a schedule: nothing later
// traverses them to order execution.
func AddTask[T Task[I, O], I Input[I], O Output[O]](b *Builder) *Builder {
	b.checkOpen()
	top := &b.graph.top

	var in I
	inputNode := top.addNode(KeyOf[I]())
	for _, dep := range in.Deps() {
		from, ok := top.indexOf(dep)
		if !ok {
			panic(fmt.Errorf("%w: %s required by %s", ErrMissingDependency, dep, KeyOf[I]()))
		}
		top.addEdge(from, inputNode, func(db Database) {
			var zero I
			Put[I](db, zero.FromDB(db))
		})
	}

	var out O
	outputNode := top.addNode(KeyOf[O]())
	for _, claim := range out.Provides() {
		if _, ok := top.indexOf(claim); ok {
			panic(fmt.Errorf("%w: %s claimed by %s", ErrDuplicateOutput, claim, KeyOf[O]()))
		}
		claimNode := top.addNode(claim)
		top.addEdge(outputNode, claimNode, func(Database) {})
	}

	return b
}

// Build freezes the accumulated topology and hands the store to the returned
// ExecutionGraph. The builder is sealed afterwards; any further AddInput,
// AddTask, or Build call panics.
func (b *Builder) Build() *ExecutionGraph {
	b.checkOpen()
	b.sealed = true
	return b.graph
}

func (b *Builder) checkOpen() {
	if b.sealed {
		panic(ErrBuilderSealed)
	}
}
