package weft

import (
	"fmt"
	"reflect"
)

// KeyID identifies a single storage slot. It is derived from a key type via
// KeyOf, so two distinct key types always map to distinct slots even when
// they store the same value type. KeyID values are comparable and usable as
// map keys.
type KeyID struct {
	rtype reflect.Type
}

// KeyOf derives the storage identity of key type K.
func KeyOf[K any]() KeyID {
	return KeyID{rtype: reflect.TypeOf((*K)(nil)).Elem()}
}

func (id KeyID) String() string {
	if id.rtype == nil {
		return "<invalid key>"
	}
	return id.rtype.String()
}

// Database is the erased storage contract beneath the typed accessors. Load
// returns the value stored under id, if any. Store writes value under id and
// returns whatever was stored there before, which is then gone.
//
// Implementations never interpret stored values; all typing discipline lives
// in Get, GetCloned, and Put. Any conforming implementation can back a graph.
type Database interface {
	Load(id KeyID) (any, bool)
	Store(id KeyID, value any) (any, bool)
}

// InMemoryDB is the default Database: a plain map over key identities.
type InMemoryDB struct {
	data map[KeyID]any
}

// NewInMemoryDB creates an empty in-memory database.
func NewInMemoryDB() *InMemoryDB {
	return &InMemoryDB{data: make(map[KeyID]any)}
}

// Load returns the value stored under id and whether one was present.
func (db *InMemoryDB) Load(id KeyID) (any, bool) {
	value, ok := db.data[id]
	return value, ok
}

// Store writes value under id, returning the previous value if any.
func (db *InMemoryDB) Store(id KeyID, value any) (any, bool) {
	prev, ok := db.data[id]
	db.data[id] = value
	return prev, ok
}

// Get returns the value stored under K's identity, or false if the slot was
// never written.
func Get[K Key[V], V any](db Database) (V, bool) {
	raw, ok := db.Load(KeyOf[K]())
	if !ok {
		var zero V
		return zero, false
	}
	// Safe: every write under KeyOf[K] goes through Put with the same V
	// pinned by K's Key constraint.
	return raw.(V), true
}

// Cloner is implemented by values that can produce an independent duplicate
// of themselves.
type Cloner[V any] interface {
	Clone() V
}

// GetCloned returns an independent duplicate of the value stored under K's
// identity. Available only when the stored value type supports duplication.
func GetCloned[K Key[V], V Cloner[V]](db Database) (V, bool) {
	value, ok := Get[K, V](db)
	if !ok {
		var zero V
		return zero, false
	}
	return value.Clone(), true
}

// Put stores value under K's identity and returns the previous value, if the
// slot had been written before.
func Put[K Key[V], V any](db Database, value V) (V, bool) {
	raw, ok := db.Store(KeyOf[K](), value)
	if !ok {
		var zero V
		return zero, false
	}
	return raw.(V), true
}

// MustGet returns the value stored under K's identity, panicking if the slot
// was never written. Convenience for FromDB implementations whose presence
// was already guaranteed by the graph's dependency checks.
func MustGet[K Key[V], V any](db Database) V {
	value, ok := Get[K, V](db)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrMissingDependency, KeyOf[K]()))
	}
	return value
}
