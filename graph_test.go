package weft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteIdentityPipeline(t *testing.T) {
	b := NewBuilder(NewInMemoryDB())
	AddInput[reading](b, reading{N: 42})
	AddTask[identityTask](b)
	g := b.Build()

	out := Execute[identityTask](g)
	assert.Equal(t, 42, out.N)

	stored, ok := Get[celsius](g.DB())
	require.True(t, ok)
	assert.Equal(t, 42, stored.N)
}

func TestExecuteChain(t *testing.T) {
	b := NewBuilder(NewInMemoryDB())
	AddInput[reading](b, reading{N: 21})
	AddTask[identityTask](b)
	AddTask[doubleTask](b)
	g := b.Build()

	// The graph records that doubleTask needs celsius; ordering the two
	// Execute calls is the caller's job.
	Execute[identityTask](g)
	out := Execute[doubleTask](g)
	assert.Equal(t, 42, out.N)

	stored, ok := Get[fahrenheit](g.DB())
	require.True(t, ok)
	assert.Equal(t, 42, stored.N)
}

func TestExecuteMissingDependency(t *testing.T) {
	// calibratedTask was never registered, so the calibration identity has
	// no node in the frozen graph and the execute-time re-check fires
	// before any task logic runs.
	b := NewBuilder(NewInMemoryDB())
	g := b.Build()

	requirePanicsWithErr(t, ErrMissingDependency, func() {
		Execute[calibratedTask](g)
	})
}

func TestExecuteVoidTask(t *testing.T) {
	b := NewBuilder(NewInMemoryDB())
	AddTask[calibrateTask](b)
	g := b.Build()

	out := Execute[calibrateTask](g)
	assert.Equal(t, 1, out.N)

	stored, ok := Get[calibrationReport](g.DB())
	require.True(t, ok)
	assert.Equal(t, 1, stored.N)
}

func TestExecuteOverwritesPriorOutput(t *testing.T) {
	b := NewBuilder(NewInMemoryDB())
	AddInput[reading](b, reading{N: 1})
	AddTask[identityTask](b)
	g := b.Build()

	Execute[identityTask](g)
	Put[reading](g.DB(), reading{N: 2})
	out := Execute[identityTask](g)

	assert.Equal(t, 2, out.N)
	stored, _ := Get[celsius](g.DB())
	assert.Equal(t, 2, stored.N)
}

func TestHooksFireAroundExecute(t *testing.T) {
	var events []string
	var finish TaskEvent

	b := NewBuilder(NewInMemoryDB(), WithHooks(Hooks{
		OnStart: func(event TaskEvent) {
			events = append(events, "start")
		},
		OnFinish: func(event TaskEvent) {
			events = append(events, "finish")
			finish = event
		},
	}))
	AddInput[reading](b, reading{N: 9})
	AddTask[identityTask](b)
	g := b.Build()

	Execute[identityTask](g)

	assert.Equal(t, []string{"start", "finish"}, events)
	assert.Equal(t, KeyOf[reading](), finish.Input)
	assert.Equal(t, KeyOf[celsius](), finish.Output)
	assert.Equal(t, celsius{N: 9}, finish.Result)
	assert.Equal(t, 1, finish.Metrics.Runs)
}

func TestHooksMergeOrder(t *testing.T) {
	var order []string
	first := Hooks{OnStart: func(TaskEvent) { order = append(order, "first") }}
	second := Hooks{OnStart: func(TaskEvent) { order = append(order, "second") }}

	merged := first.Merge(second)
	merged.emitStart(TaskEvent{})

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Nil(t, merged.OnFinish)
}

func TestMetricsRecorded(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	defer func() { now = time.Now }()

	b := NewBuilder(NewInMemoryDB())
	AddInput[reading](b, reading{N: 4})
	AddTask[identityTask](b)
	g := b.Build()

	_, ok := g.Metrics(KeyOf[celsius]())
	assert.False(t, ok)

	Execute[identityTask](g)

	m, ok := g.Metrics(KeyOf[celsius]())
	require.True(t, ok)
	assert.Equal(t, base.Add(1*time.Second), m.StartedAt)
	assert.Equal(t, base.Add(2*time.Second), m.CompletedAt)
	assert.Equal(t, time.Second, m.Duration)
	assert.Equal(t, 1, m.Runs)

	Execute[identityTask](g)
	m, _ = g.Metrics(KeyOf[celsius]())
	assert.Equal(t, 2, m.Runs)
}

func TestTopologySnapshotsAreCopies(t *testing.T) {
	b := NewBuilder(NewInMemoryDB())
	AddTask[calibrateTask](b)
	g := b.Build()

	nodes := g.Nodes()
	nodes[0] = KeyOf[reading]()
	assert.Equal(t, KeyOf[Void](), g.Nodes()[0])

	edges := g.Edges()
	edges[0] = Edge{From: 9, To: 9}
	assert.Equal(t, Edge{From: 1, To: 2}, g.Edges()[0])
}
