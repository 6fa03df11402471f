package dist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/stochsim/stochsim/sim/rng"
)

func draw(s Sampler, seed uint32, n int) []float64 {
	g := rng.NewMixed(seed)
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Sample(g)
	}
	return out
}

func TestTriangular_MeanConverges(t *testing.T) {
	// GIVEN triangular(1, 4, 10) and 100000 draws from a fixed seed
	s := Triangular{Min: 1, Mode: 4, Max: 10}
	xs := draw(s, 20250915, 100000)

	// THEN the empirical mean is within 1% of (min+mode+max)/3
	mean := stat.Mean(xs, nil)
	assert.InEpsilon(t, 5.0, mean, 0.01)
	assert.Equal(t, 5.0, s.Mean())
}

func TestTriangular_StaysInRange(t *testing.T) {
	s := Triangular{Min: 1, Mode: 4, Max: 10}
	for i, x := range draw(s, 3, 20000) {
		if x < 1 || x > 10 {
			t.Fatalf("draw %d: %v outside [1,10]", i, x)
		}
	}
}

func TestExponential_MeanConverges(t *testing.T) {
	s := Exponential{MeanValue: 2}
	mean := stat.Mean(draw(s, 42, 100000), nil)
	assert.InEpsilon(t, 2.0, mean, 0.02)
}

func TestExponentialRate_IsReciprocal(t *testing.T) {
	s := ExponentialRate(20.0 / 60.0)
	assert.InDelta(t, 3.0, s.Mean(), 1e-12)
}

func TestUniform_MeanConverges(t *testing.T) {
	s := Uniform{Min: 10, Max: 30}
	xs := draw(s, 11, 50000)
	assert.InEpsilon(t, 20.0, stat.Mean(xs, nil), 0.01)
	for _, x := range xs {
		require.GreaterOrEqual(t, x, 10.0)
		require.Less(t, x, 30.0)
	}
}

func TestPiecewiseLinear_MeanConverges(t *testing.T) {
	s := PiecewiseLinear{Start: 0, Peak: 6, End: 7}
	// 0.75*4 + 0.25*6.5
	assert.InDelta(t, 4.625, s.Mean(), 1e-12)
	assert.InEpsilon(t, 4.625, stat.Mean(draw(s, 5, 100000), nil), 0.01)
}

func TestDiscrete_FrequenciesMatch(t *testing.T) {
	s := Discrete{Values: []float64{1, 2, 3}, Probs: []float64{0.5, 0.3, 0.2}}
	counts := map[float64]int{}
	n := 100000
	for _, x := range draw(s, 9, n) {
		counts[x]++
	}
	assert.InDelta(t, 0.5, float64(counts[1])/float64(n), 0.01)
	assert.InDelta(t, 0.3, float64(counts[2])/float64(n), 0.01)
	assert.InDelta(t, 0.2, float64(counts[3])/float64(n), 0.01)
	assert.InDelta(t, 1.7, s.Mean(), 1e-12)
}

func TestSampler_SameSeedSameDraws(t *testing.T) {
	s := Triangular{Min: 0, Mode: 1, Max: 3}
	assert.Equal(t, draw(s, 77, 500), draw(s, 77, 500))
}

func TestNewSampler_AllTypes(t *testing.T) {
	tests := []struct {
		spec DistSpec
		mean float64
	}{
		{DistSpec{Type: "exponential", Params: map[string]float64{"mean": 2}}, 2},
		{DistSpec{Type: "exponential", Params: map[string]float64{"rate": 0.5}}, 2},
		{DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 3}}, 2},
		{DistSpec{Type: "triangular", Params: map[string]float64{"min": 0, "mode": 3, "max": 6}}, 3},
		{DistSpec{Type: "piecewise_linear", Params: map[string]float64{"start": 0, "peak": 6, "end": 7}}, 4.625},
		{DistSpec{Type: "constant", Params: map[string]float64{"value": 8}}, 8},
		{DistSpec{Type: "discrete", Params: map[string]float64{"2": 0.5, "4": 0.5}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.spec.Type, func(t *testing.T) {
			s, err := NewSampler(tt.spec)
			require.NoError(t, err)
			assert.InDelta(t, tt.mean, s.Mean(), 1e-12)
		})
	}
}

func TestNewSampler_Errors(t *testing.T) {
	tests := []DistSpec{
		{Type: "gaussian"},
		{Type: "uniform", Params: map[string]float64{"min": 1}},
		{Type: "triangular", Params: map[string]float64{"min": 1, "max": 2}},
		{Type: "discrete"},
		{Type: "discrete", Params: map[string]float64{"abc": 1}},
		{Type: "exponential"},
	}
	for _, spec := range tests {
		_, err := NewSampler(spec)
		assert.Error(t, err, "spec %+v", spec)
	}
}

func TestNewSampler_DiscreteOrdersByValue(t *testing.T) {
	s, err := NewSampler(DistSpec{Type: "discrete", Params: map[string]float64{"30": 0.3, "10": 0.2, "20": 0.5}})
	require.NoError(t, err)
	d := s.(Discrete)
	assert.Equal(t, []float64{10, 20, 30}, d.Values)
	assert.Equal(t, []float64{0.2, 0.5, 0.3}, d.Probs)
	assert.False(t, math.IsNaN(d.Sample(rng.NewMixed(1))))
}

func TestExponential_DrawsThroughOpenInterval(t *testing.T) {
	// GIVEN two generators with the same seed
	a, b := rng.NewMixed(77), rng.NewMixed(77)

	// THEN the exponential sampler consumes the offset draw
	s := Exponential{MeanValue: 3}
	for i := 0; i < 100; i++ {
		assert.Equal(t, ExponentialInverse(b.Open(), 3), s.Sample(a))
	}
}

func TestDistSpec_UnmarshalYAML_ReplacesDefault(t *testing.T) {
	// GIVEN a spec already holding exponential parameters
	spec := DistSpec{Type: "exponential", Params: map[string]float64{"mean": 2}}

	// WHEN a uniform spec is decoded over it
	require.NoError(t, yaml.Unmarshal([]byte("type: uniform\nparams: {min: 1, max: 3}\n"), &spec))

	// THEN no parameter of the old distribution survives
	assert.Equal(t, DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 3}}, spec)
}

func TestDistSpec_UnmarshalYAML_UnknownField(t *testing.T) {
	var spec DistSpec
	err := yaml.Unmarshal([]byte("type: uniform\nmean: 3\n"), &spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mean")
}
