package weft

// Key ties a key type to the value type stored under its identity. DBValue
// is a marker: it is never called, it only pins V for the typed accessors.
// A type may key its own value type or act as a handle for a distinct one.
type Key[V any] interface {
	DBValue() V
}

// Input marks a type that a task can consume. An input keys itself, must be
// reconstructable purely from the store, and declares the key identities it
// depends on. Embed NoDeps when the dependency set is empty.
type Input[I any] interface {
	Key[I]

	// FromDB rebuilds the input from the store. Called on the zero value.
	FromDB(db Database) I

	// Deps lists the key identities that must already be wired into the
	// graph before a task consuming this input may be registered or run.
	Deps() []KeyID
}

// Output marks a type that a task can produce. An output keys itself, knows
// how to persist itself into the store, and declares the key identities it
// expects to exist downstream once stored. Embed NoProvides when that set is
// empty.
type Output[O any] interface {
	Key[O]

	// ToDB persists the output into the store.
	ToDB(db Database)

	// Provides lists the downstream key identities this output claims.
	// Each may be claimed by at most one node across the graph's lifetime.
	Provides() []KeyID
}

// NoDeps is an embeddable default for inputs that depend on nothing.
type NoDeps struct{}

func (NoDeps) Deps() []KeyID { return nil }

// NoProvides is an embeddable default for outputs with no downstream claims.
type NoProvides struct{}

func (NoProvides) Provides() []KeyID { return nil }

// Void is the trivial no-value type. It implements both Input and Output
// with empty dependency and claim sets, for tasks that need no input or
// produce nothing externally visible.
type Void struct{}

func (Void) DBValue() Void        { return Void{} }
func (Void) FromDB(Database) Void { return Void{} }
func (Void) ToDB(Database)        {}
func (Void) Deps() []KeyID        { return nil }
func (Void) Provides() []KeyID    { return nil }
