package ecs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type funcSystem struct {
	name  string
	phase Phase
	fn    func(w *World, dt time.Duration)
}

func (s funcSystem) Name() string                       { return s.name }
func (s funcSystem) Phase() Phase                        { return s.phase }
func (s funcSystem) Update(w *World, dt time.Duration) { s.fn(w, dt) }

func TestPhasedStepFlushesBeforeNextPhaseScenario(t *testing.T) {
	// Scenario E6: a PreUpdate system defers a Set that an Update
	// system must observe, because step() flushes before Update runs.
	w := NewWorld()
	position := w.RegisterComponent("Position")
	e := w.Spawn()

	var observed any
	require.NoError(t, w.Scheduler().Register(funcSystem{
		name:  "writer",
		phase: PhasePreUpdate,
		fn: func(w *World, _ time.Duration) {
			w.Commands().DeferSet(e, position, 7)
		},
	}))
	require.NoError(t, w.Scheduler().Register(funcSystem{
		name:  "reader",
		phase: PhaseUpdate,
		fn: func(w *World, _ time.Duration) {
			observed, _ = w.Get(e, position)
		},
	}))

	w.Scheduler().Step(16 * time.Millisecond)
	require.Equal(t, 7, observed)
}

func TestSchedulerRunsPhasesInFixedOrder(t *testing.T) {
	w := NewWorld()
	var order []Phase
	record := func(p Phase) System {
		return funcSystem{name: p.String(), phase: p, fn: func(*World, time.Duration) {
			order = append(order, p)
		}}
	}
	for _, p := range []Phase{PhaseRender, PhasePreUpdate, PhasePostUpdate, PhaseUpdate, PhasePreRender} {
		require.NoError(t, w.Scheduler().Register(record(p)))
	}

	w.Scheduler().Step(0)
	require.Equal(t, []Phase{PhasePreUpdate, PhaseUpdate, PhasePostUpdate, PhasePreRender, PhaseRender}, order)
}

func TestSchedulerRejectsDuplicateSystemName(t *testing.T) {
	w := NewWorld()
	sys := funcSystem{name: "dup", phase: PhaseUpdate, fn: func(*World, time.Duration) {}}
	require.NoError(t, w.Scheduler().Register(sys))
	err := w.Scheduler().Register(sys)
	require.ErrorIs(t, err, ErrDuplicateSystem)
}

func TestSchedulerDisableSkipsSystem(t *testing.T) {
	w := NewWorld()
	var ran bool
	require.NoError(t, w.Scheduler().Register(funcSystem{
		name: "toggle", phase: PhaseUpdate,
		fn: func(*World, time.Duration) { ran = true },
	}))

	require.NoError(t, w.Scheduler().Disable("toggle"))
	w.Scheduler().Step(0)
	require.False(t, ran)

	require.NoError(t, w.Scheduler().Enable("toggle"))
	w.Scheduler().Step(0)
	require.True(t, ran)
}

func TestSchedulerUnregisterRemovesSystem(t *testing.T) {
	w := NewWorld()
	var calls int
	require.NoError(t, w.Scheduler().Register(funcSystem{
		name: "once", phase: PhaseUpdate,
		fn: func(*World, time.Duration) { calls++ },
	}))
	require.NoError(t, w.Scheduler().Unregister("once"))
	w.Scheduler().Step(0)
	require.Zero(t, calls)

	err := w.Scheduler().Unregister("once")
	require.ErrorIs(t, err, ErrUnknownSystem)
}

func TestSchedulerStepClearsChangesAtEnd(t *testing.T) {
	w := NewWorld(WithTrackChanges(true))
	health := w.RegisterComponent("Health")
	e := w.Spawn()
	require.NoError(t, w.Set(e, health, 1))
	require.NotEmpty(t, w.Changes().Added(health))

	w.Scheduler().Step(0)
	require.Empty(t, w.Changes().Added(health))
}

func TestSchedulerStepDoesNotFlushAfterRenderPhase(t *testing.T) {
	// spec.md §4.7 step() only flushes (1) once up front and (2) before
	// each phase; a command deferred by a Render-phase system must
	// stay pending until the next Step's own per-phase flushing, not
	// get silently applied and wiped by this Step's ClearChanges.
	w := NewWorld(WithTrackChanges(true))
	health := w.RegisterComponent("Health")
	e := w.Spawn()

	require.NoError(t, w.Scheduler().Register(funcSystem{
		name: "render-deferrer", phase: PhaseRender,
		fn: func(w *World, _ time.Duration) {
			w.Commands().DeferSet(e, health, 1)
		},
	}))

	w.Scheduler().Step(0)
	require.True(t, w.Commands().HasPending(), "render-phase deferral survives until the next step")
	require.False(t, w.Has(e, health))
	require.Empty(t, w.Changes().Added(health))

	w.Scheduler().Step(0)
	require.True(t, w.Has(e, health))
	require.Empty(t, w.Changes().Added(health), "the mark recorded by that flush is cleared at the end of the same step")
}
