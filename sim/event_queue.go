package sim

import "container/heap"

// EventQueue is a binary-heap priority queue of events.
//
// Ordering: time ascending, then insertion order. Two events with the same
// timestamp pop in the order they were scheduled, so each service system's
// construction order fixes which same-instant state change is handled first.
type EventQueue struct {
	events  eventHeap
	nextSeq uint64
}

type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

// Schedule adds an event, stamping it with the next insertion sequence number.
func (q *EventQueue) Schedule(e Event) {
	e.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.events, e)
}

// PopEarliest removes and returns the earliest event.
// ok is false when the queue is empty.
func (q *EventQueue) PopEarliest() (e Event, ok bool) {
	if q.events.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(&q.events).(Event), true
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return q.events.Len()
}
