// Package banco simulates N identical tellers fed by one shared FIFO queue.
package banco

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stochsim/stochsim/sim"
	"github.com/stochsim/stochsim/sim/dist"
	"github.com/stochsim/stochsim/sim/rng"
	"github.com/stochsim/stochsim/sim/trace"
)

// Params configures a bank run. Service returns minutes.
type Params struct {
	ArrivalRate  float64 // arrivals per hour
	Servers      int
	Service      dist.Sampler
	ClosingHours float64
	Seed         *int64
	Trace        trace.Level
}

// NewParams builds Params with uniform service times in [svcMin, svcMax] minutes.
func NewParams(ratePerHour float64, servers int, svcMin, svcMax, closingHours float64, seed *int64) Params {
	return Params{
		ArrivalRate:  ratePerHour,
		Servers:      servers,
		Service:      dist.Uniform{Min: svcMin, Max: svcMax},
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
	if p.Servers <= 0 {
		errs = append(errs, errors.New("server count must be > 0"))
	}
	if p.ClosingHours <= 0 {
		errs = append(errs, errors.New("closing time must be > 0"))
	}
	if p.Service == nil {
		errs = append(errs, errors.New("service distribution is required"))
	}
	return errors.Join(errs...)
}

// Row is one customer's visit. Times are in hours; Server is 1-based.
type Row struct {
	ID           int     `yaml:"id" json:"id"`
	Arrival      float64 `yaml:"llegada" json:"llegada"`
	ServiceStart float64 `yaml:"inicio_servicio" json:"inicio_servicio"`
	Departure    float64 `yaml:"salida" json:"salida"`
	Wait         float64 `yaml:"espera" json:"espera"`
	Service      float64 `yaml:"servicio" json:"servicio"`
	Sojourn      float64 `yaml:"tiempo_sistema" json:"tiempo_sistema"`
	Server       int     `yaml:"servidor" json:"servidor"`
}

type model struct {
	service dist.Sampler
	arena   sim.Arena
	queue   sim.FIFO
	servers *sim.Pool

	acc       *sim.Accumulator
	queueLen  *sim.Gauge
	busy      *sim.Gauge
	perServer []*sim.Gauge
	queueSer  *sim.Series
	busySer   *sim.Series
	maxQueue  int
	inSystem  int
}

func newModel(p Params) *model {
	m := &model{
		service:  p.Service,
		servers:  sim.NewPool(p.Servers),
		acc:      sim.NewAccumulator(),
		queueSer: sim.NewSeries("cola"),
		busySer:  sim.NewSeries("ocupados"),
	}
	m.queueLen = m.acc.Gauge("cola", func() float64 { return float64(m.queue.Len()) })
	m.busy = m.acc.Gauge("ocupados", func() float64 { return float64(m.servers.Busy()) })
	for i := 0; i < p.Servers; i++ {
		i := i
		m.perServer = append(m.perServer, m.acc.Gauge(serverMetric("ocupado", i), func() float64 {
			if m.servers.IsBusy(i) {
				return 1
			}
			return 0
		}))
	}
	return m
}

func serverMetric(prefix string, idx int) string {
	return fmt.Sprintf("%s_servidor_%d", prefix, idx+1)
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
		d.ScheduleNextArrival(now)
		if idx, ok := m.servers.Acquire(); ok {
			m.start(d, ev.EntityID, idx)
		} else {
			m.queue.Enqueue(ev.EntityID)
			m.maxQueue = max(m.maxQueue, m.queue.Len())
		}

	case sim.ServiceEnd:
		e := m.arena.Get(ev.EntityID)
		e.ServiceEnd = append(e.ServiceEnd, now)
		e.Departure = now
		e.Departed = true
		m.acc.Depart(e.Arrival, now)
		m.inSystem--
		m.servers.Release(ev.Station)
		if next, ok := m.queue.Dequeue(); ok {
			m.servers.Occupy(ev.Station)
			m.start(d, next, ev.Station)
		}
	}
	m.queueSer.Record(now, float64(m.queue.Len()))
	m.busySer.Record(now, float64(m.servers.Busy()))
}

// start begins service for id on server idx, which the caller has already occupied.
func (m *model) start(d *sim.Driver, id, idx int) {
	e := m.arena.Get(id)
	e.Server = idx
	e.ServiceStart = append(e.ServiceStart, d.Clock)
	d.ScheduleServiceEnd(d.Clock+d.Draw(m.service), id, idx)
}

// Run simulates the bank until every admitted customer has been served.
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
	logrus.Infof("banco: %d arrivals on %d servers, max queue %d, run ended at %.4f h",
		d.Arrivals(), p.Servers, m.maxQueue, sim.Hours(end))
	return out
}

func (m *model) project() sim.Output[Row] {
	rows := make([]Row, 0, m.arena.Len())
	var sumWait, sumService, sumSojourn float64
	for _, e := range m.arena.All() {
		start := e.ServiceStart[0]
		r := Row{
			ID:           e.ID,
			Arrival:      sim.Hours(e.Arrival),
			ServiceStart: sim.Hours(start),
			Departure:    sim.Hours(e.Departure),
			Wait:         sim.Hours(start - e.Arrival),
			Service:      sim.Hours(e.Departure - start),
			Sojourn:      sim.Hours(e.Sojourn()),
			Server:       e.Server + 1,
		}
		sumWait += r.Wait
		sumService += r.Service
		sumSojourn += r.Sojourn
		rows = append(rows, r)
	}
	n := float64(len(rows))

	lq := m.acc.TimeAverage(m.queueLen)
	busy := m.acc.TimeAverage(m.busy)
	metrics := sim.Metrics{
		"clientes":               float64(m.arena.Len()),
		"atendidos":              float64(m.acc.Departed),
		"tiempo_total_h":         sim.Hours(m.acc.Elapsed),
		"lq":                     lq,
		"l":                      lq + busy,
		"utilizacion":            sim.Ratio(busy, float64(m.servers.Size())),
		"espera_media_h":         sim.Ratio(sumWait, n),
		"servicio_medio_h":       sim.Ratio(sumService, n),
		"tiempo_medio_sistema_h": sim.Ratio(sumSojourn, n),
		"max_cola":               float64(m.maxQueue),
	}
	for i, g := range m.perServer {
		metrics[serverMetric("utilizacion", i)] = m.acc.TimeAverage(g)
	}
	return sim.Output[Row]{
		Rows:    rows,
		Series:  []sim.Series{*m.queueSer, *m.busySer},
		Metrics: metrics,
	}
}
