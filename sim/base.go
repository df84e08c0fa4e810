package sim

// Base is the plumbing every user-defined Component embeds. It carries
// the component's name and its weak back-reference to the Simulator it
// is registered with.
//
// Embed it by value:
//
//	type Producer struct {
//	    sim.Base
//	    Out *sim.Link[int]
//	}
//
// and construct with sim.NewBase(name).
type Base struct {
	name       string
	id         string
	simulator  *Simulator
	registered bool
}

// NewBase returns a Base identified by name, ready to embed in a
// user-defined component. It is also stamped with an opaque diagnostic
// ID (see sim/ids.go), distinct from name and never used for ordering
// or equality, only for telling two identically-named components apart
// in error messages and logs.
func NewBase(name string) Base {
	return Base{name: name, id: newID()}
}

// Base implements Component's Base() method via embedding, returning a
// pointer to itself.
func (b *Base) Base() *Base {
	return b
}

// Name returns the component's name, as given to NewBase.
func (b *Base) Name() string {
	return b.name
}

// ID returns the component's opaque diagnostic identifier.
func (b *Base) ID() string {
	return b.id
}

// Simulator returns the Simulator this component is registered with, or
// nil before registration.
func (b *Base) Simulator() *Simulator {
	return b.simulator
}
