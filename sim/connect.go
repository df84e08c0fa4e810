package sim

// connectable is satisfied by *Link[M], *BcastLink[M] and *BatchLink[M]
// (the latter via promotion from its embedded Link[M]). It is
// unexported: the type set is effectively sealed to this package's own
// three edge-with-a-target kinds.
type connectable[M any] interface {
	bindTarget(p *Port[M])
	ownerBase() *Base
}

// Connect binds link to port. If both already belong to registered
// components, those components must share a Simulator, or Connect
// fails with CrossSimulator.
//
// Reconnecting an already-connected Link overwrites its previous
// target; connecting a BcastLink appends another target.
func Connect[M any, L connectable[M]](link L, port *Port[M]) error {
	lo := link.ownerBase()
	po := port.owner
	if lo != nil && po != nil && lo.simulator != nil && po.simulator != nil && lo.simulator != po.simulator {
		return newSimError(CrossSimulator, "Connect", "link owned by %q and port owned by %q belong to different simulators", lo.Name(), po.Name())
	}
	link.bindTarget(port)
	return nil
}
