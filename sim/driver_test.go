package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stochsim/stochsim/sim/dist"
	"github.com/stochsim/stochsim/sim/rng"
	"github.com/stochsim/stochsim/sim/trace"
)

// delayLine serves every arrival immediately for a constant time; it records
// the state Observe saw so tests can check integrate-before-mutate.
type delayLine struct {
	service  float64
	inSystem int
	observed []int // inSystem seen by each Observe call
	handled  []Event
	acc      *Accumulator
	gauge    *Gauge
}

func newDelayLine(service float64) *delayLine {
	m := &delayLine{service: service, acc: NewAccumulator()}
	m.gauge = m.acc.Gauge("n", func() float64 { return float64(m.inSystem) })
	return m
}

func (m *delayLine) Observe(from, to float64) {
	m.observed = append(m.observed, m.inSystem)
	m.acc.Advance(to - from)
}

func (m *delayLine) Handle(d *Driver, ev Event) {
	m.handled = append(m.handled, ev)
	switch ev.Type {
	case Arrival:
		m.inSystem++
		d.ScheduleNextArrival(d.Clock)
		d.ScheduleServiceEnd(d.Clock+m.service, ev.EntityID, 0)
	case ServiceEnd:
		m.inSystem--
	}
}

func (m *delayLine) InSystem() int { return m.inSystem }

func TestDriver_ClosingBoundaryStopsArrivals(t *testing.T) {
	// GIVEN arrivals every 10 minutes and closing at 35 minutes
	d := NewDriver(DriverConfig{
		Closing:      35,
		RNG:          rng.NewMixed(1),
		Interarrival: dist.Constant{Value: 10},
	})
	m := newDelayLine(50)

	// WHEN the run drains
	end := d.Run(m)

	// THEN arrivals happen at 10, 20, 30 only, and their services still finish
	assert.Equal(t, 3, d.Arrivals())
	assert.Equal(t, 80.0, end)
	var arrivals []float64
	for _, ev := range m.handled {
		if ev.Type == Arrival {
			arrivals = append(arrivals, ev.Time)
		}
	}
	assert.Equal(t, []float64{10, 20, 30}, arrivals)
	assert.Equal(t, 0, m.inSystem)
	assert.Equal(t, 6, d.Processed)
}

func TestDriver_ArrivalAtClosingIsAdmitted(t *testing.T) {
	d := NewDriver(DriverConfig{Closing: 30, RNG: rng.NewMixed(1), Interarrival: dist.Constant{Value: 10}})
	d.Run(newDelayLine(1))
	assert.Equal(t, 3, d.Arrivals(), "arrival exactly at closing must be admitted")
}

func TestDriver_IntegratesBeforeHandling(t *testing.T) {
	// GIVEN arrivals every 10 min, service 15 min, closing 20
	d := NewDriver(DriverConfig{Closing: 20, RNG: rng.NewMixed(1), Interarrival: dist.Constant{Value: 10}})
	m := newDelayLine(15)

	d.Run(m)

	// THEN events: A@10, A@20, E@25, E@35; Observe saw 0, 1, 2, 1
	assert.Equal(t, []int{0, 1, 2, 1}, m.observed)
	// area = 0*10 + 1*10 + 2*5 + 1*10
	assert.Equal(t, 30.0, m.gauge.Area)
	assert.Equal(t, 35.0, m.acc.Elapsed)
}

func TestDriver_TraceRecordsEveryEvent(t *testing.T) {
	d := NewDriver(DriverConfig{
		Closing:      25,
		RNG:          rng.NewMixed(1),
		Interarrival: dist.Constant{Value: 10},
		Trace:        trace.New(trace.LevelEvents),
	})
	d.Run(newDelayLine(3))

	require.NotNil(t, d.Trace)
	s := trace.Summarize(d.Trace)
	assert.Equal(t, 4, s.TotalEvents)
	assert.Equal(t, 2, s.ByKind["arrival"])
	assert.Equal(t, 2, s.ByKind["service_end"])
	assert.Equal(t, 1, s.MaxInSystem)
}

func TestDriver_FirstArrivalAfterClosing_NoEvents(t *testing.T) {
	d := NewDriver(DriverConfig{Closing: 5, RNG: rng.NewMixed(1), Interarrival: dist.Constant{Value: 10}})
	m := newDelayLine(1)
	end := d.Run(m)
	assert.Equal(t, 0.0, end)
	assert.Equal(t, 0, d.Arrivals())
	assert.Empty(t, m.handled)
}
