package dist

import (
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/stochsim/stochsim/sim/rng"
)

// Sampler draws one variate per call from the supplied generator.
type Sampler interface {
	Sample(src rng.Source) float64
	// Mean returns the analytic mean, used in logs and convergence checks.
	Mean() float64
}

// Triangular samples triangular(Min, Mode, Max).
type Triangular struct {
	Min, Mode, Max float64
}

func (s Triangular) Sample(src rng.Source) float64 {
	return TriangularInverse(src.Float64(), s.Min, s.Mode, s.Max)
}

func (s Triangular) Mean() float64 { return (s.Min + s.Mode + s.Max) / 3 }

// Exponential samples an exponential variate with the given mean.
type Exponential struct {
	MeanValue float64
}

// ExponentialRate builds an Exponential from a rate (events per unit time).
func ExponentialRate(rate float64) Exponential {
	return Exponential{MeanValue: 1 / rate}
}

func (s Exponential) Sample(src rng.Source) float64 {
	return ExponentialInverse(rng.Positive(src), s.MeanValue)
}

func (s Exponential) Mean() float64 { return s.MeanValue }

// Uniform samples uniform(Min, Max).
type Uniform struct {
	Min, Max float64
}

func (s Uniform) Sample(src rng.Source) float64 {
	return UniformInverse(src.Float64(), s.Min, s.Max)
}

func (s Uniform) Mean() float64 { return (s.Min + s.Max) / 2 }

// Discrete samples Values[i] with probability Probs[i] by linear cumulative scan.
type Discrete struct {
	Values []float64
	Probs  []float64
}

func (s Discrete) Sample(src rng.Source) float64 {
	return DiscreteInverse(src.Float64(), s.Values, s.Probs)
}

func (s Discrete) Mean() float64 {
	m := 0.0
	for i := range s.Values {
		if i < len(s.Probs) {
			m += s.Values[i] * s.Probs[i]
		}
	}
	return m
}

// PiecewiseLinear samples the ramp-then-flat density described in RampFlatInverse.
// Start=0, Peak=6, End=7 puts mass 0.75 on the ramp.
type PiecewiseLinear struct {
	Start, Peak, End float64
}

func (s PiecewiseLinear) Sample(src rng.Source) float64 {
	return RampFlatInverse(src.Float64(), s.Start, s.Peak, s.End)
}

// Mean integrates x*f(x) over both segments.
func (s PiecewiseLinear) Mean() float64 {
	h, f1 := rampFlatShape(s.Start, s.Peak, s.End)
	ramp := s.Start + 2*(s.Peak-s.Start)/3
	flat := (s.Peak + s.End) / 2
	return f1*ramp + h*(s.End-s.Peak)*flat
}

// Constant always returns Value.
type Constant struct {
	Value float64
}

func (s Constant) Sample(_ rng.Source) float64 { return s.Value }

func (s Constant) Mean() float64 { return s.Value }

// DistSpec parameterizes a sampler. Loaded from YAML scenario files.
type DistSpec struct {
	Type   string             `yaml:"type" json:"type"`
	Params map[string]float64 `yaml:"params,omitempty" json:"params,omitempty"`
}

// UnmarshalYAML replaces the whole spec, so decoding over a default never
// mixes parameters of two distributions. Unknown keys are rejected.
func (s *DistSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		for i := 0; i < len(value.Content); i += 2 {
			switch k := value.Content[i].Value; k {
			case "type", "params":
			default:
				return fmt.Errorf("line %d: unknown distribution field %q", value.Content[i].Line, k)
			}
		}
	}
	type plain DistSpec
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = DistSpec(p)
	return nil
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewSampler creates a Sampler from a DistSpec. Only missing parameters are
// reported; parameter values are not range-checked.
func NewSampler(spec DistSpec) (Sampler, error) {
	switch spec.Type {
	case "exponential":
		if _, ok := spec.Params["rate"]; ok {
			return ExponentialRate(spec.Params["rate"]), nil
		}
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		return Exponential{MeanValue: spec.Params["mean"]}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		return Uniform{Min: spec.Params["min"], Max: spec.Params["max"]}, nil

	case "triangular":
		if err := requireParam(spec.Params, "min", "mode", "max"); err != nil {
			return nil, err
		}
		return Triangular{Min: spec.Params["min"], Mode: spec.Params["mode"], Max: spec.Params["max"]}, nil

	case "piecewise_linear":
		if err := requireParam(spec.Params, "start", "peak", "end"); err != nil {
			return nil, err
		}
		return PiecewiseLinear{Start: spec.Params["start"], Peak: spec.Params["peak"], End: spec.Params["end"]}, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return Constant{Value: spec.Params["value"]}, nil

	case "discrete":
		return newDiscrete(spec.Params)

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}

// newDiscrete reads inline params as value -> probability, ordered by value.
func newDiscrete(params map[string]float64) (Discrete, error) {
	if len(params) == 0 {
		return Discrete{}, fmt.Errorf("discrete distribution has no values")
	}
	type bin struct{ v, p float64 }
	bins := make([]bin, 0, len(params))
	for k, p := range params {
		v, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return Discrete{}, fmt.Errorf("discrete value %q is not a number: %w", k, err)
		}
		bins = append(bins, bin{v, p})
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].v < bins[j].v })
	d := Discrete{Values: make([]float64, len(bins)), Probs: make([]float64, len(bins))}
	for i, b := range bins {
		d.Values[i], d.Probs[i] = b.v, b.p
	}
	return d, nil
}
