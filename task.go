package weft

// Task is a pure mapping from an Input-capable type to an Output-capable
// type. Execute is called on the zero value of the task type and must have
// no side effects beyond the mapping itself: store interaction happens
// exclusively through the input's FromDB and the output's ToDB, never inside
// the task body.
type Task[I, O any] interface {
	Execute(in I) O
}
