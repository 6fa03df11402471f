package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	tr := New(LevelEvents)

	// WHEN summarized
	s := Summarize(tr)

	// THEN all counts are zero
	if s.TotalEvents != 0 || len(s.ByKind) != 0 {
		t.Errorf("expected empty summary, got %+v", s)
	}
	if Summarize(nil).TotalEvents != 0 {
		t.Error("nil trace should summarize to zero")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with arrivals and completions
	tr := New(LevelEvents)
	tr.Record(EventRecord{Clock: 1, Kind: "arrival", InSystem: 1})
	tr.Record(EventRecord{Clock: 2, Kind: "arrival", InSystem: 2})
	tr.Record(EventRecord{Clock: 3.5, Kind: "service_end", InSystem: 1})

	// WHEN summarized
	s := Summarize(tr)

	// THEN counts and span match
	if s.TotalEvents != 3 {
		t.Errorf("TotalEvents = %d, want 3", s.TotalEvents)
	}
	if s.ByKind["arrival"] != 2 || s.ByKind["service_end"] != 1 {
		t.Errorf("ByKind = %v", s.ByKind)
	}
	if s.FirstClock != 1 || s.LastClock != 3.5 {
		t.Errorf("span = [%v, %v], want [1, 3.5]", s.FirstClock, s.LastClock)
	}
	if s.MaxInSystem != 2 {
		t.Errorf("MaxInSystem = %d, want 2", s.MaxInSystem)
	}
}
