package weft

import (
	"fmt"
	"time"
)

// now is overridden in tests to provide deterministic timings.
var now = time.Now

// ExecutionGraph owns the store plus a frozen record of the node/edge
// topology accumulated by its builder. Topology never changes once built;
// the store is mutated in place by each Execute call.
type ExecutionGraph struct {
	db      Database
	top     topology
	hooks   Hooks
	metrics map[KeyID]TaskMetrics
}

func newExecutionGraph(db Database) *ExecutionGraph {
	return &ExecutionGraph{
		db:      db,
		metrics: make(map[KeyID]TaskMetrics),
	}
}

// DB exposes the graph's store, so callers can read results back after an
// Execute call via Get under the output's key identity.
func (g *ExecutionGraph) DB() Database {
	return g.db
}

// Nodes returns a copy of the recorded node identities in registration
// order.
func (g *ExecutionGraph) Nodes() []KeyID {
	return g.top.snapshotNodes()
}

// Edges returns a copy of the recorded edges, addressing nodes by their
// position in Nodes().
func (g *ExecutionGraph) Edges() []Edge {
	return g.top.snapshotEdges()
}

// Metrics returns the metrics recorded for the most recent execution that
// persisted under id, if any.
func (g *ExecutionGraph) Metrics(id KeyID) (TaskMetrics, bool) {
	m, ok := g.metrics[id]
	return m, ok
}

// Execute runs task T against the graph's store and returns its output.
//
// Every dependency identity declared by T's input is re-checked against the
// frozen topology first; a missing one panics with ErrMissingDependency. The
// input is then rebuilt from the store, T's pure mapping runs, and the
// output persists itself back before being returned.
func Execute[T Task[I, O], I Input[I], O Output[O]](g *ExecutionGraph) O {
	var in I
	for _, dep := range in.Deps() {
		if _, ok := g.top.indexOf(dep); !ok {
			panic(fmt.Errorf("%w: %s required by %s", ErrMissingDependency, dep, KeyOf[I]()))
		}
	}

	event := TaskEvent{
		Input:  KeyOf[I](),
		Output: KeyOf[O](),
	}
	metrics := g.metrics[event.Output]
	metrics.StartedAt = now()
	event.Metrics = metrics
	g.hooks.emitStart(event)

	input := in.FromDB(g.db)
	var task T
	out := task.Execute(input)
	out.ToDB(g.db)

	metrics.CompletedAt = now()
	metrics.Duration = metrics.CompletedAt.Sub(metrics.StartedAt)
	metrics.Runs++
	g.metrics[event.Output] = metrics

	event.Metrics = metrics
	event.Result = out
	g.hooks.emitFinish(event)

	return out
}
