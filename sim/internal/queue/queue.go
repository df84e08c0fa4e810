// Package queue implements the generic min-heap shared by sim.Port and
// sim.Timer. It is keyed on an arbitrary int64 "time" so it has no
// dependency on the sim package's own types.
package queue

import "container/heap"

type item[M any] struct {
	message M
	time    int64
	seq     uint64 // insertion order, breaks ties deterministically
	index   int    // maintained by container/heap
}

type innerHeap[M any] []*item[M]

func (h innerHeap[M]) Len() int { return len(h) }

func (h innerHeap[M]) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}

func (h innerHeap[M]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *innerHeap[M]) Push(x any) {
	it := x.(*item[M])
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *innerHeap[M]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// Queue is a min-heap of (message, time) pairs ordered by time, ties
// broken by insertion order.
type Queue[M any] struct {
	h       innerHeap[M]
	nextSeq uint64
}

// New returns an empty Queue.
func New[M any]() *Queue[M] {
	return &Queue[M]{}
}

// Push inserts a message with the given delivery time.
func (q *Queue[M]) Push(message M, time int64) {
	it := &item[M]{message: message, time: time, seq: q.nextSeq}
	q.nextSeq++
	heap.Push(&q.h, it)
}

// Len reports the number of queued events.
func (q *Queue[M]) Len() int {
	return len(q.h)
}

// HeadTime returns the time of the earliest queued event and true, or
// (0, false) if the queue is empty.
func (q *Queue[M]) HeadTime() (int64, bool) {
	if len(q.h) == 0 {
		return 0, false
	}
	return q.h[0].time, true
}

// Pop removes and returns the earliest queued event.
func (q *Queue[M]) Pop() (message M, time int64) {
	it := heap.Pop(&q.h).(*item[M])
	return it.message, it.time
}

// PopDue pops and returns, in heap order, every event whose time equals
// due. It stops at the first event whose time is greater than due.
func (q *Queue[M]) PopDue(due int64) []Event[M] {
	var out []Event[M]
	for len(q.h) > 0 && q.h[0].time == due {
		m, t := q.Pop()
		out = append(out, Event[M]{Message: m, Time: t})
	}
	return out
}

// All returns every queued event, in heap order, without removing them.
func (q *Queue[M]) All() []Event[M] {
	out := make([]Event[M], 0, len(q.h))
	// Copy and drain a scratch heap to get a deterministic time-then-seq
	// ordering instead of raw internal array order.
	scratch := make(innerHeap[M], len(q.h))
	copy(scratch, q.h)
	for i := range scratch {
		scratch[i] = &item[M]{message: scratch[i].message, time: scratch[i].time, seq: scratch[i].seq}
	}
	heap.Init(&scratch)
	for scratch.Len() > 0 {
		it := heap.Pop(&scratch).(*item[M])
		out = append(out, Event[M]{Message: it.message, Time: it.time})
	}
	return out
}

// Event is one (message, time) pair as returned by PopDue and All. It is
// defined here so this package needs nothing from package sim;
// sim/port.go unpacks it into the values its iterators yield.
type Event[M any] struct {
	Message M
	Time    int64
}
