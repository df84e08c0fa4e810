package sim

import (
	"fmt"
	"iter"

	"github.com/syifan/desim/sim/internal/queue"
)

// Port is a typed inbound endpoint: a min-heap of (message, deliveryTime)
// events keyed by delivery time, plus a weak back-reference to its
// owning component. Many Links may target the same Port.
type Port[M any] struct {
	owner *Base
	q     *queue.Queue[M]
}

// NewPort returns an empty, unconnected Port[M]. Wire it into a
// component by storing the result in one of the component's exported
// fields before calling Simulator.Register.
func NewPort[M any]() *Port[M] {
	return &Port[M]{q: queue.New[M]()}
}

func (p *Port[M]) setOwner(b *Base) error {
	if p.owner != nil && p.owner != b {
		return newSimError(BackRefConflict, "Port.setOwner", "port already bound to component %q", p.owner.Name())
	}
	p.owner = b
	return nil
}

// addEvent pushes (msg, t) onto the heap. Used internally by Link/BcastLink
// send logic and by Timer.Set.
func (p *Port[M]) addEvent(msg M, t SimulationTime) {
	p.q.Push(msg, int64(t))
}

// headTime returns the time of the earliest queued event, or NoEvent if
// the queue is empty.
func (p *Port[M]) headTime() SimulationTime {
	t, ok := p.q.HeadTime()
	if !ok {
		return NoEvent
	}
	return SimulationTime(t)
}

// HeadTime is the exported form of headTime, for components that need
// to inspect a Port without draining it.
func (p *Port[M]) HeadTime() SimulationTime {
	return p.headTime()
}

// Messages returns a lazy sequence of the messages due exactly at time,
// popping them off the queue.
//
// Precondition: headTime() >= time. Seeing a head event strictly before
// time means the engine scheduled a tick decision incorrectly, which is
// a programming error, not a recoverable condition.
func (p *Port[M]) Messages(time SimulationTime) iter.Seq[M] {
	return func(yield func(M) bool) {
		if p.owner != nil && p.owner.simulator != nil && p.owner.simulator.phase != phaseTick {
			return
		}
		if ht := p.headTime(); !ht.IsNoEvent() && ht < time {
			panic(fmt.Sprintf("sim: Port has event at %s before requested drain time %s", ht, time))
		}
		for _, e := range p.q.PopDue(int64(time)) {
			if !yield(e.Message) {
				return
			}
		}
	}
}

// RemainingMessages returns a lazy sequence of every event still
// queued, in heap order, without popping them. Used only at shutdown to
// expose events that were never delivered.
func (p *Port[M]) RemainingMessages() iter.Seq2[M, SimulationTime] {
	return func(yield func(M, SimulationTime) bool) {
		for _, e := range p.q.All() {
			if !yield(e.Message, SimulationTime(e.Time)) {
				return
			}
		}
	}
}

// Len reports the number of events currently queued.
func (p *Port[M]) Len() int {
	return p.q.Len()
}
