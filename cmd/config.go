package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stochsim/stochsim/sim/banco"
	"github.com/stochsim/stochsim/sim/dist"
	"github.com/stochsim/stochsim/sim/estacionamiento"
	"github.com/stochsim/stochsim/sim/serie"
	"github.com/stochsim/stochsim/sim/trace"
)

// Scenario is the YAML scenario file. Every section and key is optional;
// missing ones fall back to DefaultScenario.
type Scenario struct {
	Seed            *int64                 `yaml:"seed,omitempty"`
	Trace           string                 `yaml:"trace,omitempty"`
	Serie           *SerieConfig           `yaml:"serie,omitempty"`
	Banco           *BancoConfig           `yaml:"banco,omitempty"`
	Estacionamiento *EstacionamientoConfig `yaml:"estacionamiento,omitempty"`
}

// SerieConfig describes the tandem line. Service times are in minutes.
type SerieConfig struct {
	ArrivalRate  float64       `yaml:"arrival_rate"`
	ClosingHours float64       `yaml:"closing_hours"`
	Service1     dist.DistSpec `yaml:"service1"`
	Service2     dist.DistSpec `yaml:"service2"`
}

// BancoConfig describes the multi-teller bank.
type BancoConfig struct {
	ArrivalRate  float64       `yaml:"arrival_rate"`
	Servers      int           `yaml:"servers"`
	ClosingHours float64       `yaml:"closing_hours"`
	Service      dist.DistSpec `yaml:"service"`
}

// EstacionamientoConfig describes the parking lot.
type EstacionamientoConfig struct {
	ArrivalRate  float64       `yaml:"arrival_rate"`
	Slots        int           `yaml:"slots"`
	ClosingHours float64       `yaml:"closing_hours"`
	Duration     dist.DistSpec `yaml:"duration"`
}

func uniformSpec(min, max float64) dist.DistSpec {
	return dist.DistSpec{Type: "uniform", Params: map[string]float64{"min": min, "max": max}}
}

// DefaultScenario returns the classroom parameters of each exercise.
func DefaultScenario() *Scenario {
	return &Scenario{
		Trace: string(trace.LevelNone),
		Serie: &SerieConfig{
			ArrivalRate:  20,
			ClosingHours: 8,
			Service1:     dist.DistSpec{Type: "exponential", Params: map[string]float64{"mean": 2}},
			Service2:     uniformSpec(1, 3),
		},
		Banco: &BancoConfig{
			ArrivalRate:  40,
			Servers:      3,
			ClosingHours: 8,
			Service:      uniformSpec(0, 1),
		},
		Estacionamiento: &EstacionamientoConfig{
			ArrivalRate:  10,
			Slots:        6,
			ClosingHours: 8,
			Duration:     uniformSpec(10, 30),
		},
	}
}

// LoadScenario parses a scenario file over the defaults, key by key. A
// distribution given in the file replaces the default one entirely.
// Uses strict field checking: unknown keys are errors.
func LoadScenario(path string) (*Scenario, error) {
	sc := DefaultScenario()
	if path == "" {
		return sc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	// decoding over the defaults keeps every key the file leaves out
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if !trace.IsValidLevel(sc.Trace) {
		return nil, fmt.Errorf("scenario %s: unknown trace level %q", path, sc.Trace)
	}
	return sc, nil
}

// SerieParams converts the serie section into simulator parameters.
func (sc *Scenario) SerieParams() (serie.Params, error) {
	c := sc.Serie
	s1, err := dist.NewSampler(c.Service1)
	if err != nil {
		return serie.Params{}, fmt.Errorf("serie service1: %w", err)
	}
	s2, err := dist.NewSampler(c.Service2)
	if err != nil {
		return serie.Params{}, fmt.Errorf("serie service2: %w", err)
	}
	p := serie.Params{
		ArrivalRate:  c.ArrivalRate,
		Service1:     s1,
		Service2:     s2,
		ClosingHours: c.ClosingHours,
		Seed:         sc.Seed,
		Trace:        trace.Level(sc.Trace),
	}
	return p, p.Validate()
}

// BancoParams converts the banco section into simulator parameters.
func (sc *Scenario) BancoParams() (banco.Params, error) {
	c := sc.Banco
	svc, err := dist.NewSampler(c.Service)
	if err != nil {
		return banco.Params{}, fmt.Errorf("banco service: %w", err)
	}
	p := banco.Params{
		ArrivalRate:  c.ArrivalRate,
		Servers:      c.Servers,
		Service:      svc,
		ClosingHours: c.ClosingHours,
		Seed:         sc.Seed,
		Trace:        trace.Level(sc.Trace),
	}
	return p, p.Validate()
}

// EstacionamientoParams converts the estacionamiento section into simulator parameters.
func (sc *Scenario) EstacionamientoParams() (estacionamiento.Params, error) {
	c := sc.Estacionamiento
	d, err := dist.NewSampler(c.Duration)
	if err != nil {
		return estacionamiento.Params{}, fmt.Errorf("estacionamiento duration: %w", err)
	}
	p := estacionamiento.Params{
		ArrivalRate:  c.ArrivalRate,
		Slots:        c.Slots,
		Duration:     d,
		ClosingHours: c.ClosingHours,
		Seed:         sc.Seed,
		Trace:        trace.Level(sc.Trace),
	}
	return p, p.Validate()
}
