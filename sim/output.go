package sim

import (
	"sort"

	"github.com/stochsim/stochsim/sim/trace"
)

// MinutesPerHour converts between the internal clock (minutes) and reported hours.
const MinutesPerHour = 60.0

// Hours converts minutes to hours.
func Hours(minutes float64) float64 {
	return minutes / MinutesPerHour
}

// Minutes converts hours to minutes.
func Minutes(hours float64) float64 {
	return hours * MinutesPerHour
}

// Ratio returns num/den, or 0 when den is 0.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Series is a step-function time series; X is in hours.
type Series struct {
	Name string    `yaml:"name" json:"name"`
	X    []float64 `yaml:"x_hours" json:"x_hours"`
	Y    []float64 `yaml:"y" json:"y"`
}

// NewSeries creates an empty series.
func NewSeries(name string) *Series {
	return &Series{Name: name, X: make([]float64, 0), Y: make([]float64, 0)}
}

// Record appends a point at t minutes.
func (s *Series) Record(minutes, y float64) {
	s.X = append(s.X, Hours(minutes))
	s.Y = append(s.Y, y)
}

// Len returns the number of points.
func (s *Series) Len() int {
	return len(s.X)
}

// Metrics maps metric names to scalar results.
type Metrics map[string]float64

// Names returns metric names in sorted order.
func (m Metrics) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Output is what every service-system run returns. R is the variant's row type.
type Output[R any] struct {
	Rows    []R               `yaml:"rows" json:"rows"`
	Series  []Series          `yaml:"series" json:"series"`
	Metrics Metrics           `yaml:"metrics" json:"metrics"`
	Trace   *trace.EventTrace `yaml:"trace,omitempty" json:"trace,omitempty"`
}

// Result is the variant-independent view of an Output, used by sweeps and the CLI.
type Result interface {
	MetricValues() Metrics
	RowCount() int
}

// MetricValues returns the metrics map.
func (o Output[R]) MetricValues() Metrics {
	return o.Metrics
}

// RowCount returns the number of entity rows.
func (o Output[R]) RowCount() int {
	return len(o.Rows)
}
