// Package trace records the events processed by a simulation run.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// EventRecord captures one processed event and the state right after handling it.
type EventRecord struct {
	Seq      int     `yaml:"seq" json:"seq"`
	Clock    float64 `yaml:"clock" json:"clock"` // minutes
	Kind     string  `yaml:"kind" json:"kind"`
	EntityID int     `yaml:"entity_id" json:"entity_id"`
	Station  int     `yaml:"station" json:"station"`
	InSystem int     `yaml:"in_system" json:"in_system"`
}
