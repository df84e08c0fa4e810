package sim

// Link is a typed outbound edge bound to exactly one destination Port,
// with a fixed positive latency.
type Link[M any] struct {
	owner   *Base
	latency SimulationTime
	target  *Port[M]
}

// NewLink returns a Link with the given latency. latency <= 0 fails
// with InvalidLatency.
func NewLink[M any](latency SimulationTime) (*Link[M], error) {
	if latency <= 0 {
		return nil, newSimError(InvalidLatency, "NewLink", "latency must be > 0, got %d", int64(latency))
	}
	return &Link[M]{latency: latency}, nil
}

func (l *Link[M]) setOwner(b *Base) error {
	if l.owner != nil && l.owner != b {
		return newSimError(BackRefConflict, "Link.setOwner", "link already bound to component %q", l.owner.Name())
	}
	l.owner = b
	return nil
}

// bindTarget and ownerBase back the package-level Connect function.
// Connecting an already-connected Link overwrites its previous target
// rather than failing.
func (l *Link[M]) bindTarget(p *Port[M]) {
	l.target = p
}

func (l *Link[M]) ownerBase() *Base {
	return l.owner
}

// Send delivers msg to the target Port with no extra delay. See
// SendDelayed for the general form.
func (l *Link[M]) Send(msg M) error {
	return l.SendDelayed(msg, 0)
}

// SendDelayed delivers msg to the target Port at
// currentTime + latency + extraDelay. extraDelay < 0 fails with
// InvalidDelay; an unconnected target fails with Unconnected. Because
// extraDelay may vary per call, messages sent in order may arrive out
// of order, by design.
func (l *Link[M]) SendDelayed(msg M, extraDelay SimulationTime) error {
	if extraDelay < 0 {
		return newSimError(InvalidDelay, "Link.Send", "extraDelay must be >= 0, got %d", int64(extraDelay))
	}
	if l.target == nil {
		return newSimError(Unconnected, "Link.Send", "link was not connected")
	}
	if l.owner == nil || l.owner.simulator == nil {
		return newSimError(Unconnected, "Link.Send", "link's owning component is not registered")
	}
	now := l.owner.simulator.currentTime
	l.target.addEvent(msg, now+l.latency+extraDelay)
	return nil
}
