// Package weft composes pure computation steps over a shared, type-indexed
// store. Tasks declare their required inputs and produced outputs by type;
// a builder wires those declarations into a dependency graph up front,
// rejecting missing dependencies and duplicate output claims before anything
// runs, and the resulting ExecutionGraph runs one task at a time against the
// store. The graph records that a dependency must hold, never an order in
// which to satisfy it; callers order their Execute calls themselves.
//
// A graph and its store are owned by a single goroutine for their entire
// lifetime. Nothing in this package locks.
package weft
