package sim

import "fmt"

// EventType distinguishes the two kinds of events a service system reacts to.
type EventType int

const (
	// Arrival brings a new entity into the system.
	Arrival EventType = iota
	// ServiceEnd completes service (or a parking stay) at a station or slot.
	ServiceEnd
)

func (t EventType) String() string {
	switch t {
	case Arrival:
		return "arrival"
	case ServiceEnd:
		return "service_end"
	default:
		return fmt.Sprintf("event_type_%d", int(t))
	}
}

// NoStation marks an event that is not tied to a station, server or slot.
const NoStation = -1

// Event is a single scheduled state change. Time is in minutes.
// Events are consumed exactly once and discarded.
type Event struct {
	Time     float64
	Type     EventType
	EntityID int // 0 when the event carries no entity
	Station  int // station, server or slot index; NoStation when not applicable

	seq uint64 // insertion order, assigned by EventQueue.Schedule
}

// Seq returns the insertion sequence number assigned when the event was scheduled.
func (e Event) Seq() uint64 {
	return e.seq
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%.6f(entity=%d, station=%d)", e.Type, e.Time, e.EntityID, e.Station)
}
