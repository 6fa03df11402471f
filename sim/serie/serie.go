// Package serie simulates a tandem line: two single-server stations in
// sequence, each with its own FIFO queue. Every entity visits station 1 then
// station 2 and leaves.
package serie

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/stochsim/stochsim/sim"
	"github.com/stochsim/stochsim/sim/dist"
	"github.com/stochsim/stochsim/sim/rng"
	"github.com/stochsim/stochsim/sim/trace"
)

const stations = 2

// Params configures a tandem run. Service samplers return minutes.
type Params struct {
	ArrivalRate  float64      // arrivals per hour
	Service1     dist.Sampler // station 1 service time
	Service2     dist.Sampler // station 2 service time
	ClosingHours float64
	Seed         *int64 // nil means non-reproducible
	Trace        trace.Level
}

// NewParams builds Params with an exponential first station and a uniform
// second station, the classic configuration of this exercise.
func NewParams(ratePerHour, s1Mean, s2Min, s2Max, closingHours float64, seed *int64) Params {
	return Params{
		ArrivalRate:  ratePerHour,
		Service1:     dist.Exponential{MeanValue: s1Mean},
		Service2:     dist.Uniform{Min: s2Min, Max: s2Max},
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
	if p.ClosingHours <= 0 {
		errs = append(errs, errors.New("closing time must be > 0"))
	}
	if p.Service1 == nil || p.Service2 == nil {
		errs = append(errs, errors.New("both station service distributions are required"))
	}
	return errors.Join(errs...)
}

// Row is one entity's passage through the line. Times are in hours.
type Row struct {
	ID      int     `yaml:"id" json:"id"`
	Arrival float64 `yaml:"llegada" json:"llegada"`
	S1Start float64 `yaml:"inicio_s1" json:"inicio_s1"`
	S1End   float64 `yaml:"fin_s1" json:"fin_s1"`
	S2Start float64 `yaml:"inicio_s2" json:"inicio_s2"`
	S2End   float64 `yaml:"fin_s2" json:"fin_s2"`
	Sojourn float64 `yaml:"tiempo_sistema" json:"tiempo_sistema"`
}

type model struct {
	service [stations]dist.Sampler
	arena   sim.Arena
	queues  [stations]sim.FIFO
	servers [stations]*sim.Pool

	acc      *sim.Accumulator
	queueLen [stations]*sim.Gauge
	busy     [stations]*sim.Gauge
	series   [stations]*sim.Series
	maxQueue [stations]int
	inSystem int
}

func newModel(p Params) *model {
	m := &model{service: [stations]dist.Sampler{p.Service1, p.Service2}, acc: sim.NewAccumulator()}
	for k := 0; k < stations; k++ {
		k := k
		m.servers[k] = sim.NewPool(1)
		m.queueLen[k] = m.acc.Gauge(stationName("cola", k), func() float64 { return float64(m.queues[k].Len()) })
		m.busy[k] = m.acc.Gauge(stationName("ocupado", k), func() float64 { return float64(m.servers[k].Busy()) })
		m.series[k] = sim.NewSeries(stationName("cola", k))
	}
	return m
}

func stationName(prefix string, k int) string {
	return prefix + "_s" + string(rune('1'+k))
}

func (m *model) Observe(from, to float64) {
	m.acc.Advance(to - from)
}

func (m *model) InSystem() int {
	return m.inSystem
}

func (m *model) Handle(d *sim.Driver, ev sim.Event) {
	now := d.Clock
	switch ev.Type {
	case sim.Arrival:
		m.arena.Add(ev.EntityID, now)
		m.inSystem++
		m.queues[0].Enqueue(ev.EntityID)
		// next arrival first: it wins a tie with this entity's service end
		d.ScheduleNextArrival(now)
		m.tryStart(d, 0)

	case sim.ServiceEnd:
		k := ev.Station
		e := m.finish(k, ev.EntityID, now)
		if k == 0 {
			m.queues[1].Enqueue(e.ID)
			m.tryStart(d, 1)
			m.tryStart(d, 0)
		} else {
			e.Departure = now
			e.Departed = true
			m.acc.Depart(e.Arrival, now)
			m.inSystem--
			m.tryStart(d, 1)
		}
	}
	for k := 0; k < stations; k++ {
		n := m.queues[k].Len()
		m.series[k].Record(now, float64(n))
		m.maxQueue[k] = max(m.maxQueue[k], n)
	}
}

// tryStart moves the head of station k's queue into service if the server is free.
func (m *model) tryStart(d *sim.Driver, k int) {
	if m.servers[k].Full() {
		return
	}
	id, ok := m.queues[k].Dequeue()
	if !ok {
		return
	}
	m.servers[k].Occupy(0)
	e := m.arena.Get(id)
	e.ServiceStart = append(e.ServiceStart, d.Clock)
	d.ScheduleServiceEnd(d.Clock+d.Draw(m.service[k]), id, k)
}

func (m *model) finish(k, id int, now float64) *sim.Entity {
	m.servers[k].Release(0)
	e := m.arena.Get(id)
	e.ServiceEnd = append(e.ServiceEnd, now)
	return e
}

// Run simulates the tandem line until every admitted entity has left.
// Params must satisfy Validate.
func Run(p Params) sim.Output[Row] {
	m := newModel(p)
	d := sim.NewDriver(sim.DriverConfig{
		Closing:      sim.Minutes(p.ClosingHours),
		RNG:          rng.FromSeed(p.Seed),
		Interarrival: dist.ExponentialRate(p.ArrivalRate / sim.MinutesPerHour),
		Trace:        trace.New(p.Trace),
	})
	end := d.Run(m)

	out := m.project()
	out.Trace = d.Trace
	logrus.Infof("serie: %d arrivals, %d departed, run ended at %.4f h (W=%.4f min)",
		d.Arrivals(), m.acc.Departed, sim.Hours(end), m.acc.MeanSojourn())
	return out
}

func (m *model) project() sim.Output[Row] {
	rows := make([]Row, 0, m.arena.Len())
	var sumSojourn, sumWait1, sumWait2 float64
	for _, e := range m.arena.All() {
		r := Row{
			ID:      e.ID,
			Arrival: sim.Hours(e.Arrival),
			S1Start: sim.Hours(e.ServiceStart[0]),
			S1End:   sim.Hours(e.ServiceEnd[0]),
			S2Start: sim.Hours(e.ServiceStart[1]),
			S2End:   sim.Hours(e.ServiceEnd[1]),
			Sojourn: sim.Hours(e.Sojourn()),
		}
		sumSojourn += r.Sojourn
		sumWait1 += r.S1Start - r.Arrival
		sumWait2 += r.S2Start - r.S1End
		rows = append(rows, r)
	}
	n := float64(len(rows))

	metrics := sim.Metrics{
		"clientes":               float64(m.arena.Len()),
		"atendidos":              float64(m.acc.Departed),
		"tiempo_total_h":         sim.Hours(m.acc.Elapsed),
		"tiempo_medio_sistema_h": sim.Ratio(sumSojourn, n),
		"espera_media_s1_h":      sim.Ratio(sumWait1, n),
		"espera_media_s2_h":      sim.Ratio(sumWait2, n),
	}
	series := make([]sim.Series, 0, stations)
	for k := 0; k < stations; k++ {
		metrics[stationName("lq", k)] = m.acc.TimeAverage(m.queueLen[k])
		metrics[stationName("utilizacion", k)] = m.acc.TimeAverage(m.busy[k])
		metrics[stationName("max_cola", k)] = float64(m.maxQueue[k])
		series = append(series, *m.series[k])
	}
	return sim.Output[Row]{Rows: rows, Series: series, Metrics: metrics}
}
