package sim

// BcastLink is a typed outbound edge bound to zero or more destination
// Ports, all fed the same message and delivery time per send.
type BcastLink[M any] struct {
	owner   *Base
	latency SimulationTime
	targets []*Port[M]
}

// NewBcastLink returns a BcastLink with the given latency and no
// targets. latency <= 0 fails with InvalidLatency.
func NewBcastLink[M any](latency SimulationTime) (*BcastLink[M], error) {
	if latency <= 0 {
		return nil, newSimError(InvalidLatency, "NewBcastLink", "latency must be > 0, got %d", int64(latency))
	}
	return &BcastLink[M]{latency: latency}, nil
}

func (l *BcastLink[M]) setOwner(b *Base) error {
	if l.owner != nil && l.owner != b {
		return newSimError(BackRefConflict, "BcastLink.setOwner", "bcast link already bound to component %q", l.owner.Name())
	}
	l.owner = b
	return nil
}

// bindTarget appends p to the target list (BcastLink accumulates
// targets rather than overwriting one, unlike Link).
func (l *BcastLink[M]) bindTarget(p *Port[M]) {
	l.targets = append(l.targets, p)
}

func (l *BcastLink[M]) ownerBase() *Base {
	return l.owner
}

// Targets returns the currently connected destination Ports.
func (l *BcastLink[M]) Targets() []*Port[M] {
	return l.targets
}

// Send delivers msg to every target Port with no extra delay.
func (l *BcastLink[M]) Send(msg M) error {
	return l.SendDelayed(msg, 0)
}

// SendDelayed delivers msg to every target Port at
// currentTime + latency + extraDelay. A send with zero targets is a
// no-op, not an error. extraDelay < 0 fails with InvalidDelay.
func (l *BcastLink[M]) SendDelayed(msg M, extraDelay SimulationTime) error {
	if extraDelay < 0 {
		return newSimError(InvalidDelay, "BcastLink.Send", "extraDelay must be >= 0, got %d", int64(extraDelay))
	}
	if len(l.targets) == 0 {
		return nil
	}
	if l.owner == nil || l.owner.simulator == nil {
		return newSimError(Unconnected, "BcastLink.Send", "bcast link's owning component is not registered")
	}
	now := l.owner.simulator.currentTime
	deliveryTime := now + l.latency + extraDelay
	for _, p := range l.targets {
		p.addEvent(msg, deliveryTime)
	}
	return nil
}
