package sim

// Entity is a customer or vehicle. Timestamps are in minutes.
// ServiceStart/ServiceEnd hold one entry per station visited, in visit order.
// Records persist until the run's output is projected.
type Entity struct {
	ID           int
	Arrival      float64
	ServiceStart []float64
	ServiceEnd   []float64
	Server       int // assigned server or slot; NoStation if never assigned
	Departure    float64
	Departed     bool
	Lost         bool // turned away by a full loss system
}

// Sojourn returns departure minus arrival, in minutes.
func (e *Entity) Sojourn() float64 {
	return e.Departure - e.Arrival
}

// Arena stores entities densely by id. Ids start at 1 and are append-only.
type Arena struct {
	entities []*Entity
}

// Add creates the entity with the given id and arrival time.
// Ids must be added in increasing order without gaps.
func (a *Arena) Add(id int, arrival float64) *Entity {
	if id != len(a.entities)+1 {
		panic("Arena.Add: ids must be dense and increasing")
	}
	e := &Entity{ID: id, Arrival: arrival, Server: NoStation}
	a.entities = append(a.entities, e)
	return e
}

// Get returns the entity with the given id, or nil.
func (a *Arena) Get(id int) *Entity {
	if id < 1 || id > len(a.entities) {
		return nil
	}
	return a.entities[id-1]
}

// All returns entities in id order. Callers MUST NOT append to the result.
func (a *Arena) All() []*Entity {
	return a.entities
}

// Len returns the number of entities created so far.
func (a *Arena) Len() int {
	return len(a.entities)
}
