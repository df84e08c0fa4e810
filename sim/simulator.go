package sim

import "fmt"

// lifecyclePhase tracks which part of the main loop the Simulator is in.
// Ports/Timers consult it, rather than trusting the time argument a
// component happens to pass, to suppress Messages() during startup and
// shutdown: a component might not get its current-tick invocation if
// another component called Quit earlier in the same tick, so time alone
// cannot be trusted to distinguish "nothing due" from "drain suppressed".
type lifecyclePhase int

const (
	phaseStartup lifecyclePhase = iota
	phaseTick
	phaseShutdown
)

// Simulator is the orchestrator: it owns the registered components,
// tracks currentTime, drives the main loop, and resolves termination.
type Simulator struct {
	currentTime   SimulationTime
	nextEvent     SimulationTime
	quitTime      SimulationTime
	quitRequested bool
	phase         lifecyclePhase

	registrations []*registration
}

// NewSimulator returns an empty Simulator. quitTime = 0 means "run
// until exhausted"; any other value is a preset deadline checked each
// loop iteration.
func NewSimulator(quitTime SimulationTime) *Simulator {
	return &Simulator{
		nextEvent: NoEvent,
		quitTime:  quitTime,
		phase:     phaseStartup,
	}
}

// CurrentTime is a read-only accessor for the simulated clock.
func (s *Simulator) CurrentTime() SimulationTime {
	return s.currentTime
}

// Quit requests termination. It takes effect after the currently
// running component invocation returns; shutdown still runs for every
// component.
func (s *Simulator) Quit() {
	s.quitRequested = true
}

// Register appends c to the component list, sets its Simulator
// back-reference, and walks its exported fields, including
// slices/arrays of them and the exported fields of nested structs,
// wiring each discovered Port/Timer/Link/BcastLink/BatchLink's
// owning-component back-reference to c. Edges held in maps, in
// interface-typed fields or in unexported fields are not discovered;
// wire those by hand before Connect.
//
// If wiring any discovered edge fails, c is not marked registered and
// is not added to the component list, so the caller can fix the problem
// and retry. Edges wired before the failing one keep their
// back-reference to c.
//
// Re-registering an already-registered component is undefined behavior;
// this implementation panics, the same treatment behavior-callback
// panics get.
func (s *Simulator) Register(c Component) error {
	b := c.Base()
	if b.registered {
		panic(fmt.Sprintf("sim: component %q (id %s) registered twice", b.Name(), b.ID()))
	}

	edges, timed := discoverEdges(c)
	for _, e := range edges {
		if err := e.setOwner(b); err != nil {
			return err
		}
	}

	b.registered = true
	b.simulator = s
	s.registrations = append(s.registrations, &registration{
		comp:      c,
		base:      b,
		timed:     timed,
		nextEvent: NoEvent,
	})
	return nil
}

// keepGoing is the loop guard: stop once termination was requested, once
// nothing is pending, or once the preset deadline has passed.
func (s *Simulator) keepGoing() bool {
	if s.quitRequested {
		return false
	}
	if s.nextEvent.IsNoEvent() {
		return false
	}
	if s.quitTime != 0 && s.quitTime < s.currentTime {
		return false
	}
	return true
}

// recomputeGlobalNextEvent recomputes every registration's own
// nextEvent and sets s.nextEvent to their minimum.
func (s *Simulator) recomputeGlobalNextEvent() {
	t := SimulationTime(NoEvent)
	for _, r := range s.registrations {
		r.updateNextEvent()
		t = minTime(t, r.nextEvent)
	}
	s.nextEvent = t
}

// Run drives the main loop until a termination condition fires: no
// events pending, quitTime exceeded, or Quit was called. It always runs
// every component's shutdown invocation before returning, regardless of
// which condition fired.
func (s *Simulator) Run() {
	s.phase = phaseStartup
	for _, r := range s.registrations {
		r.comp.Behavior(s, true, false)
	}
	s.recomputeGlobalNextEvent()

	s.phase = phaseTick
	for s.keepGoing() {
		s.currentTime = s.nextEvent
		for _, r := range s.registrations {
			if s.quitRequested {
				break
			}
			r.updateNextEvent()
			if r.nextEvent == s.currentTime {
				r.comp.Behavior(s, false, false)
			}
		}
		s.recomputeGlobalNextEvent()
	}

	s.phase = phaseShutdown
	for _, r := range s.registrations {
		r.comp.Behavior(s, false, true)
	}
}
