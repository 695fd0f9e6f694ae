package weft

import "time"

// TaskMetrics captures timing for executions persisting under one output
// identity.
type TaskMetrics struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
	Runs        int
}

// TaskEvent is passed to hook callbacks to describe an Execute call.
type TaskEvent struct {
	Input   KeyID
	Output  KeyID
	Metrics TaskMetrics
	Result  any
}

// HookFunc is invoked for lifecycle notifications.
type HookFunc func(TaskEvent)

// Hooks aggregates optional lifecycle callbacks around Execute. Tasks are
// pure mappings that either complete or abort the process, so there are no
// success/failure variants.
type Hooks struct {
	OnStart  HookFunc
	OnFinish HookFunc
}

// Merge combines two hook sets, running the receiver first.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnStart:  chainHooks(h.OnStart, other.OnStart),
		OnFinish: chainHooks(h.OnFinish, other.OnFinish),
	}
}

func (h Hooks) emitStart(event TaskEvent) {
	if h.OnStart != nil {
		h.OnStart(event)
	}
}

func (h Hooks) emitFinish(event TaskEvent) {
	if h.OnFinish != nil {
		h.OnFinish(event)
	}
}

func chainHooks(first, second HookFunc) HookFunc {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	default:
		return func(event TaskEvent) {
			first(event)
			second(event)
		}
	}
}
