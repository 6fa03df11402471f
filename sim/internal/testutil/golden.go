// Package testutil provides shared test infrastructure for the simulator
// packages: golden fixture loading and tolerance-based metric assertions.
package testutil

import (
	"math"
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

// GoldenTolerance absorbs last-ulp differences in math.Log across platforms.
const GoldenTolerance = 1e-9

// LoadGolden decodes a YAML fixture (usually testdata/golden.yaml) into v.
func LoadGolden(t *testing.T, path string, v any) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden fixture: %v", err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to parse golden fixture %s: %v", path, err)
	}
}

// AssertMetricsClose checks that got has exactly the metric names of want and
// that every value is within absTol.
func AssertMetricsClose(t *testing.T, want, got map[string]float64, absTol float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Errorf("metric count: got %d, want %d", len(got), len(want))
	}
	for name, w := range want {
		g, ok := got[name]
		if !ok {
			t.Errorf("%s: missing", name)
			continue
		}
		AssertFloat64Near(t, name, w, g, absTol)
	}
}

// AssertFloat64Near compares two float64 values with absolute tolerance.
func AssertFloat64Near(t *testing.T, name string, want, got, absTol float64) {
	t.Helper()
	if diff := math.Abs(want - got); diff > absTol || math.IsNaN(diff) {
		t.Errorf("%s: got %v, want %v (diff=%v)", name, got, want, diff)
	}
}
