package sim

// Gauge integrates a piecewise-constant quantity (queue length, busy servers)
// over simulated time.
type Gauge struct {
	Name  string
	Area  float64 // integral of value over elapsed time, in value*minutes
	value func() float64
}

// Histogram accumulates the time spent at each integer level 0..len(TimeAt)-1.
type Histogram struct {
	Name   string
	TimeAt []float64 // minutes spent at each level
	level  func() int
}

// Accumulator holds the running sums of a single run.
//
// Advance must be called with the interval that just elapsed BEFORE the state
// is mutated for the new event: the gauges read the state that held during it.
type Accumulator struct {
	Elapsed    float64 // minutes integrated so far
	SojournSum float64 // minutes, summed over departed entities
	Departed   int

	gauges     []*Gauge
	histograms []*Histogram
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Gauge registers a time-weighted quantity read through value.
func (a *Accumulator) Gauge(name string, value func() float64) *Gauge {
	g := &Gauge{Name: name, value: value}
	a.gauges = append(a.gauges, g)
	return g
}

// Histogram registers an integer level in [0, levels) read through level.
func (a *Accumulator) Histogram(name string, levels int, level func() int) *Histogram {
	h := &Histogram{Name: name, TimeAt: make([]float64, levels), level: level}
	a.histograms = append(a.histograms, h)
	return h
}

// Advance integrates every registered quantity over an interval of dt minutes.
// Non-positive intervals are ignored.
func (a *Accumulator) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	a.Elapsed += dt
	for _, g := range a.gauges {
		g.Area += g.value() * dt
	}
	for _, h := range a.histograms {
		h.TimeAt[h.level()] += dt
	}
}

// Depart records one entity leaving the system.
func (a *Accumulator) Depart(arrival, departure float64) {
	a.SojournSum += departure - arrival
	a.Departed++
}

// TimeAverage returns g.Area / Elapsed, or 0 before any time has elapsed.
func (a *Accumulator) TimeAverage(g *Gauge) float64 {
	return Ratio(g.Area, a.Elapsed)
}

// Fraction returns the share of elapsed time spent at level.
func (a *Accumulator) Fraction(h *Histogram, level int) float64 {
	return Ratio(h.TimeAt[level], a.Elapsed)
}

// MeanSojourn returns the mean sojourn in minutes over departed entities.
func (a *Accumulator) MeanSojourn() float64 {
	return Ratio(a.SojournSum, float64(a.Departed))
}

// Total returns the sum of the histogram bins.
func (h *Histogram) Total() float64 {
	total := 0.0
	for _, t := range h.TimeAt {
		total += t
	}
	return total
}
