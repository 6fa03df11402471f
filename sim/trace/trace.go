package trace

// Level controls the verbosity of event tracing.
type Level string

const (
	// LevelNone disables tracing (zero overhead).
	LevelNone Level = "none"
	// LevelEvents captures every processed event.
	LevelEvents Level = "events"
)

// validLevels maps accepted trace level strings.
var validLevels = map[Level]bool{
	LevelNone:   true,
	LevelEvents: true,
	"":          true, // empty defaults to none
}

// IsValidLevel returns true if the given level string is a recognized trace level.
func IsValidLevel(level string) bool {
	return validLevels[Level(level)]
}

// EventTrace collects event records during a run.
type EventTrace struct {
	Level  Level
	Events []EventRecord
}

// New creates an EventTrace for the given level, or nil for LevelNone.
// A nil *EventTrace is safe to record into.
func New(level Level) *EventTrace {
	if level == LevelNone || level == "" {
		return nil
	}
	return &EventTrace{Level: level, Events: make([]EventRecord, 0)}
}

// Record appends an event record, assigning its sequence number.
func (t *EventTrace) Record(r EventRecord) {
	if t == nil {
		return
	}
	r.Seq = len(t.Events)
	t.Events = append(t.Events, r)
}
