package trace

// Summary aggregates statistics from an EventTrace.
type Summary struct {
	TotalEvents int
	ByKind      map[string]int
	FirstClock  float64
	LastClock   float64
	MaxInSystem int
}

// Summarize computes aggregate statistics from an EventTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *EventTrace) *Summary {
	s := &Summary{ByKind: make(map[string]int)}
	if t == nil || len(t.Events) == 0 {
		return s
	}
	s.TotalEvents = len(t.Events)
	s.FirstClock = t.Events[0].Clock
	s.LastClock = t.Events[len(t.Events)-1].Clock
	for _, e := range t.Events {
		s.ByKind[e.Kind]++
		if e.InSystem > s.MaxInSystem {
			s.MaxInSystem = e.InSystem
		}
	}
	return s
}
