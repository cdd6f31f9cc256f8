package ecs

import (
	"fmt"
	"time"
)

// Phase orders systems within a single World.Scheduler step. Phases
// always run in this fixed sequence.
type Phase int

const (
	PhasePreUpdate Phase = iota
	PhaseUpdate
	PhasePostUpdate
	PhasePreRender
	PhaseRender

	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "PreUpdate"
	case PhaseUpdate:
		return "Update"
	case PhasePostUpdate:
		return "PostUpdate"
	case PhasePreRender:
		return "PreRender"
	case PhaseRender:
		return "Render"
	default:
		return "unknown"
	}
}

// System is one unit of per-step logic, bound to a fixed Phase.
type System interface {
	Name() string
	Phase() Phase
	Update(w *World, dt time.Duration)
}

type registeredSystem struct {
	system  System
	enabled bool
}

// Scheduler runs registered Systems in phase order, flushing the
// world's deferred command buffer before each phase and clearing
// change-tracker marks at the end of a step.
type Scheduler struct {
	world   *World
	phases  [numPhases][]*registeredSystem
	byName  map[string]*registeredSystem
}

func newScheduler(w *World) *Scheduler {
	return &Scheduler{world: w, byName: make(map[string]*registeredSystem)}
}

// Register adds s to its declared phase, in call order. Registering a
// name already in use returns ErrDuplicateSystem.
func (s *Scheduler) Register(sys System) error {
	if _, exists := s.byName[sys.Name()]; exists {
		if s.world.options.Debug {
			s.world.log.Warn("duplicate system registration", "name", sys.Name())
		}
		return fmt.Errorf("%w: %q", ErrDuplicateSystem, sys.Name())
	}
	rs := &registeredSystem{system: sys, enabled: true}
	s.byName[sys.Name()] = rs
	s.phases[sys.Phase()] = append(s.phases[sys.Phase()], rs)
	return nil
}

// Unregister removes the named system entirely.
func (s *Scheduler) Unregister(name string) error {
	rs, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
	delete(s.byName, name)
	phase := rs.system.Phase()
	list := s.phases[phase]
	for i, entry := range list {
		if entry == rs {
			s.phases[phase] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	return nil
}

// Enable turns the named system back on.
func (s *Scheduler) Enable(name string) error { return s.setEnabled(name, true) }

// Disable turns the named system off without unregistering it; its
// Update stops running but its phase slot and position are kept.
func (s *Scheduler) Disable(name string) error { return s.setEnabled(name, false) }

func (s *Scheduler) setEnabled(name string, enabled bool) error {
	rs, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
	rs.enabled = enabled
	return nil
}

// RunPhase flushes pending commands, then runs every enabled system
// registered to phase, in registration order.
func (s *Scheduler) RunPhase(phase Phase, dt time.Duration) {
	s.world.cmd.Flush()
	for _, rs := range s.phases[phase] {
		if rs.enabled {
			rs.system.Update(s.world, dt)
		}
	}
}

// Step runs every phase in order, then clears change-tracker marks for
// the next step.
func (s *Scheduler) Step(dt time.Duration) {
	for phase := Phase(0); phase < numPhases; phase++ {
		s.RunPhase(phase, dt)
	}
	s.world.ClearChanges()
}
