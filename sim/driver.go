package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/stochsim/stochsim/sim/dist"
	"github.com/stochsim/stochsim/sim/rng"
	"github.com/stochsim/stochsim/sim/trace"
)

// Model is the variant-specific part of a service system: its topology and
// transitions. The Driver owns the clock and the event queue.
type Model interface {
	// Observe integrates the state that held over [from, to), in minutes.
	// Called before Handle for every event.
	Observe(from, to float64)
	// Handle applies ev. The driver clock already equals ev.Time.
	Handle(d *Driver, ev Event)
	// InSystem returns the number of entities currently inside the system.
	InSystem() int
}

// DriverConfig groups the parameters shared by every service system.
type DriverConfig struct {
	Closing      float64           // minutes; arrivals after this are not admitted
	RNG          rng.Source        // owned by this run only
	Interarrival dist.Sampler      // minutes between arrivals
	Trace        *trace.EventTrace // optional, nil disables tracing
}

// Driver is the shared discrete-event loop: pop earliest, advance clock,
// integrate the elapsed interval, then dispatch to the model.
type Driver struct {
	Clock     float64
	Closing   float64
	Events    *EventQueue
	RNG       rng.Source
	Trace     *trace.EventTrace
	Processed int

	interarrival dist.Sampler
	lastID       int
}

// NewDriver creates a driver at clock 0 with an empty event queue.
func NewDriver(cfg DriverConfig) *Driver {
	return &Driver{
		Closing:      cfg.Closing,
		Events:       NewEventQueue(),
		RNG:          cfg.RNG,
		Trace:        cfg.Trace,
		interarrival: cfg.Interarrival,
	}
}

// ScheduleNextArrival draws an interarrival gap after now and schedules the
// arrival only if it falls at or before Closing. Entity ids are assigned here.
func (d *Driver) ScheduleNextArrival(now float64) bool {
	t := now + d.interarrival.Sample(d.RNG)
	if t > d.Closing {
		logrus.Debugf("[t=%.4f] next arrival %.4f after closing %.4f, not admitted", now, t, d.Closing)
		return false
	}
	d.lastID++
	d.Events.Schedule(Event{Time: t, Type: Arrival, EntityID: d.lastID, Station: NoStation})
	return true
}

// ScheduleServiceEnd schedules the end of service for entity at station.
func (d *Driver) ScheduleServiceEnd(t float64, entityID, station int) {
	d.Events.Schedule(Event{Time: t, Type: ServiceEnd, EntityID: entityID, Station: station})
}

// Draw samples one variate from s using this run's generator.
func (d *Driver) Draw(s dist.Sampler) float64 {
	return s.Sample(d.RNG)
}

// Arrivals returns the number of arrivals admitted so far.
func (d *Driver) Arrivals() int {
	return d.lastID
}

// Run schedules the first arrival and processes events until the queue drains.
// It returns the final clock value in minutes.
func (d *Driver) Run(m Model) float64 {
	if !d.ScheduleNextArrival(0) {
		logrus.Warnf("first arrival falls after closing %.4f min, run is empty", d.Closing)
	}
	for {
		ev, ok := d.Events.PopEarliest()
		if !ok {
			break
		}
		from := d.Clock
		d.Clock = ev.Time
		m.Observe(from, d.Clock)
		logrus.Debugf("[t=%.4f] executing %s", d.Clock, ev)
		m.Handle(d, ev)
		d.Processed++
		d.Trace.Record(trace.EventRecord{
			Clock:    d.Clock,
			Kind:     ev.Type.String(),
			EntityID: ev.EntityID,
			Station:  ev.Station,
			InSystem: m.InSystem(),
		})
	}
	logrus.Debugf("[t=%.4f] event queue drained after %d events", d.Clock, d.Processed)
	return d.Clock
}
