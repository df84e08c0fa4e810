package sim

import "reflect"

// Component is the public contract every user-defined simulation entity
// satisfies. Implementations embed Base for identity and Simulator
// wiring, and implement Behavior for the single per-lifecycle callback
// the engine invokes.
type Component interface {
	// Base returns the embedded plumbing (name, Simulator back-reference).
	Base() *Base

	// Behavior is the routine the engine calls:
	//   - once with isStartup = true before the main loop begins,
	//   - once per tick in which this component has a due event (zero or
	//     more times in all), with isStartup = isShutdown = false,
	//   - once with isShutdown = true after the main loop ends.
	//
	// A panic inside Behavior is not recovered; the Simulator aborts.
	Behavior(s *Simulator, isStartup, isShutdown bool)
}

// edge is satisfied by every Port, Timer, Link, BcastLink and BatchLink.
// It is unexported: users never implement it themselves, they only
// construct the concrete types via sim.NewPort, sim.NewLink, etc.
type edge interface {
	setOwner(b *Base) error
}

// timedEdge is additionally satisfied by Port and Timer, the two edge
// kinds that own a pending-event heap and so contribute to a
// component's nextEvent.
type timedEdge interface {
	edge
	headTime() SimulationTime
}

// registration is the engine's private record of one registered
// component: its discovered timed edges (walked every tick to recompute
// nextEvent, built once via reflection at registration time rather than
// hand-written per component type) and the resulting nextEvent.
type registration struct {
	comp      Component
	base      *Base
	timed     []timedEdge
	nextEvent SimulationTime
}

func (r *registration) updateNextEvent() {
	t := SimulationTime(NoEvent)
	for _, te := range r.timed {
		t = minTime(t, te.headTime())
	}
	r.nextEvent = t
}

// discoverEdges walks c's exported fields (and slices/arrays of them,
// and the exported fields of nested structs) looking for values
// implementing edge. Edges stored in a map or behind an interface-typed
// field are not found; those must be wired by hand with Wire.
func discoverEdges(c Component) (edges []edge, timed []timedEdge) {
	v := reflect.ValueOf(c)
	walkForEdges(v, &edges, &timed)
	return edges, timed
}

func walkForEdges(v reflect.Value, edges *[]edge, timed *[]timedEdge) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		if tryCollectEdge(v, edges, timed) {
			return
		}
		walkForEdges(v.Elem(), edges, timed)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			walkForEdges(v.Field(i), edges, timed)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			walkForEdges(v.Index(i), edges, timed)
		}
	}
}

// Wire manually binds an edge (a *Port[M], *Timer[M], *Link[M],
// *BcastLink[M] or *BatchLink[M]) to its owning component c. Register's
// reflection walk only finds edges in exported fields and in
// slices/arrays of them; edges stored in a map, or otherwise nested
// indirectly, must be wired by hand with Wire before Connect.
func Wire(e interface{ setOwner(*Base) error }, c Component) error {
	return e.setOwner(c.Base())
}

// tryCollectEdge checks whether v itself implements edge; if so it
// records it and returns true, stopping recursion into it since an
// edge's own internal fields are not user wiring surface.
func tryCollectEdge(v reflect.Value, edges *[]edge, timed *[]timedEdge) bool {
	if !v.CanInterface() {
		return false
	}
	iface := v.Interface()
	e, ok := iface.(edge)
	if !ok {
		return false
	}
	*edges = append(*edges, e)
	if te, ok := iface.(timedEdge); ok {
		*timed = append(*timed, te)
	}
	return true
}
