// Package estacionamiento simulates a parking lot with C slots and no queue:
// a vehicle that finds every slot taken is lost.
package estacionamiento

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stochsim/stochsim/sim"
	"github.com/stochsim/stochsim/sim/dist"
	"github.com/stochsim/stochsim/sim/rng"
	"github.com/stochsim/stochsim/sim/trace"
)

// Outcome of an arrival.
type Outcome string

const (
	Served Outcome = "atendido"
	Lost   Outcome = "perdido"
)

// Params configures a parking run. Duration returns minutes.
type Params struct {
	ArrivalRate  float64 // arrivals per hour
	Slots        int
	Duration     dist.Sampler
	ClosingHours float64
	Seed         *int64
	Trace        trace.Level
}

// NewParams builds Params with uniform stays in [durMin, durMax] minutes.
func NewParams(ratePerHour float64, slots int, durMin, durMax, closingHours float64, seed *int64) Params {
	return Params{
		ArrivalRate:  ratePerHour,
		Slots:        slots,
		Duration:     dist.Uniform{Min: durMin, Max: durMax},
		ClosingHours: closingHours,
		Seed:         seed,
	}
}

// Validate checks the preconditions Run relies on.
func (p Params) Validate() error {
	var errs []error
	if p.ArrivalRate <= 0 {
		errs = append(errs, errors.New("arrival rate must be > 0"))
	}
	if p.Slots <= 0 {
		errs = append(errs, errors.New("slot count must be > 0"))
	}
	if p.ClosingHours <= 0 {
		errs = append(errs, errors.New("closing time must be > 0"))
	}
	if p.Duration == nil {
		errs = append(errs, errors.New("stay duration distribution is required"))
	}
	return errors.Join(errs...)
}

// Row is one vehicle. Times are in hours. Slot is 1-based and 0 for lost
// vehicles, whose Start/End/Duration are zero. Occupancy is the number of
// occupied slots right after the arrival was handled.
type Row struct {
	ID        int     `yaml:"id" json:"id"`
	Arrival   float64 `yaml:"llegada" json:"llegada"`
	Outcome   Outcome `yaml:"resultado" json:"resultado"`
	Slot      int     `yaml:"lugar" json:"lugar"`
	Start     float64 `yaml:"inicio" json:"inicio"`
	End       float64 `yaml:"fin" json:"fin"`
	Duration  float64 `yaml:"duracion" json:"duracion"`
	Occupancy int     `yaml:"ocupacion" json:"ocupacion"`
}

type model struct {
	duration dist.Sampler
	closing  float64
	arena    sim.Arena
	slots    *sim.Pool
	// occupancy at admission time, indexed by entity id-1
	occupancy []int
	lost      int

	acc    *sim.Accumulator
	area   *sim.Gauge
	levels *sim.Histogram
	series *sim.Series
}

func newModel(p Params, closing float64) *model {
	m := &model{
		duration: p.Duration,
		closing:  closing,
		slots:    sim.NewPool(p.Slots),
		acc:      sim.NewAccumulator(),
		series:   sim.NewSeries("ocupacion"),
	}
	m.area = m.acc.Gauge("ocupacion", func() float64 { return float64(m.slots.Busy()) })
	m.levels = m.acc.Histogram("ocupacion", p.Slots+1, m.slots.Busy)
	return m
}

// Observe integrates only the part of [from, to) that lies before closing.
func (m *model) Observe(from, to float64) {
	m.acc.Advance(min(to, m.closing) - min(from, m.closing))
}

func (m *model) InSystem() int {
	return m.slots.Busy()
}

func (m *model) Handle(d *sim.Driver, ev sim.Event) {
	now := d.Clock
	switch ev.Type {
	case sim.Arrival:
		e := m.arena.Add(ev.EntityID, now)
		d.ScheduleNextArrival(now)
		if slot, ok := m.slots.Acquire(); ok {
			e.Server = slot
			e.ServiceStart = append(e.ServiceStart, now)
			d.ScheduleServiceEnd(now+d.Draw(m.duration), e.ID, slot)
		} else {
			e.Lost = true
			m.lost++
			logrus.Debugf("[t=%.4f] vehicle %d lost, all %d slots taken", now, e.ID, m.slots.Size())
		}
		m.occupancy = append(m.occupancy, m.slots.Busy())

	case sim.ServiceEnd:
		e := m.arena.Get(ev.EntityID)
		e.ServiceEnd = append(e.ServiceEnd, now)
		e.Departure = now
		e.Departed = true
		m.acc.Depart(e.Arrival, now)
		m.slots.Release(ev.Station)
	}
	m.series.Record(now, float64(m.slots.Busy()))
}

// Run simulates the lot until every parked vehicle has left. Statistics cover
// [0, closing] exactly: the tail after the last event before closing is
// flushed at the occupancy that held then, and time after closing is ignored.
// Params must satisfy Validate.
func Run(p Params) sim.Output[Row] {
	closing := sim.Minutes(p.ClosingHours)
	m := newModel(p, closing)
	d := sim.NewDriver(sim.DriverConfig{
		Closing:      closing,
		RNG:          rng.FromSeed(p.Seed),
		Interarrival: dist.ExponentialRate(p.ArrivalRate / sim.MinutesPerHour),
		Trace:        trace.New(p.Trace),
	})
	end := d.Run(m)
	m.Observe(end, closing)

	out := m.project()
	out.Trace = d.Trace
	logrus.Infof("estacionamiento: %d arrivals, %d lost, %d slots, last departure at %.4f h",
		d.Arrivals(), m.lost, p.Slots, sim.Hours(end))
	return out
}

func (m *model) project() sim.Output[Row] {
	rows := make([]Row, 0, m.arena.Len())
	var sumDuration float64
	for _, e := range m.arena.All() {
		r := Row{ID: e.ID, Arrival: sim.Hours(e.Arrival), Outcome: Served, Occupancy: m.occupancy[e.ID-1]}
		if e.Lost {
			r.Outcome = Lost
		} else {
			r.Slot = e.Server + 1
			r.Start = sim.Hours(e.ServiceStart[0])
			r.End = sim.Hours(e.Departure)
			r.Duration = sim.Hours(e.Departure - e.ServiceStart[0])
			sumDuration += r.Duration
		}
		rows = append(rows, r)
	}

	arrivals := m.arena.Len()
	served := arrivals - m.lost
	capacity := m.slots.Size()
	meanOcc := m.acc.TimeAverage(m.area)
	metrics := sim.Metrics{
		"llegadas":         float64(arrivals),
		"atendidos":        float64(served),
		"perdidos":         float64(m.lost),
		"perdidos_pct":     sim.Ratio(100*float64(m.lost), float64(arrivals)),
		"tiempo_total_h":   sim.Hours(m.acc.Elapsed),
		"ocupacion_media":  meanOcc,
		"utilizacion":      sim.Ratio(meanOcc, float64(capacity)),
		"prob_lleno":       m.acc.Fraction(m.levels, capacity),
		"duracion_media_h": sim.Ratio(sumDuration, float64(served)),
	}
	for k, t := range m.levels.TimeAt {
		metrics[fmt.Sprintf("horas_ocupacion_%d", k)] = sim.Hours(t)
	}
	return sim.Output[Row]{Rows: rows, Series: []sim.Series{*m.series}, Metrics: metrics}
}
