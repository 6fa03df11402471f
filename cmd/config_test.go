package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stochsim/stochsim/sim/dist"
	"github.com/stochsim/stochsim/sim/trace"
)

func TestLoadScenario_EmptyPath_ReturnsDefaults(t *testing.T) {
	sc, err := LoadScenario("")
	require.NoError(t, err)
	assert.Equal(t, DefaultScenario(), sc)
	assert.Nil(t, sc.Seed, "default scenario must not pin a seed")
}

func TestLoadScenario_PartialFile_KeepsOtherDefaults(t *testing.T) {
	// GIVEN a file that only sets seed, trace and the banco section
	sc, err := LoadScenario(filepath.Join("testdata", "scenario.yaml"))
	require.NoError(t, err)

	// THEN the file values are applied
	require.NotNil(t, sc.Seed)
	assert.Equal(t, int64(7), *sc.Seed)
	assert.Equal(t, string(trace.LevelEvents), sc.Trace)
	assert.Equal(t, 2, sc.Banco.Servers)
	assert.Equal(t, "triangular", sc.Banco.Service.Type)

	// AND the untouched sections keep their defaults
	def := DefaultScenario()
	assert.Equal(t, def.Serie, sc.Serie)
	assert.Equal(t, def.Estacionamiento, sc.Estacionamiento)

	// AND the converted params carry the file seed
	p, err := sc.BancoParams()
	require.NoError(t, err)
	assert.Equal(t, int64(7), *p.Seed)
	assert.InDelta(t, 3.5/3, p.Service.Mean(), 1e-12)
}

func TestLoadScenario_UnknownField_Rejected(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "unknown_field.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "servers")
}

func TestLoadScenario_MissingFile_Error(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "does_not_exist.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadScenario_BadTraceLevel_Rejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trace: verbose\n"), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
}

func TestScenarioParams_DefaultsValidate(t *testing.T) {
	sc := DefaultScenario()

	sp, err := sc.SerieParams()
	require.NoError(t, err)
	assert.Equal(t, 2.0, sp.Service1.Mean())
	assert.Equal(t, 2.0, sp.Service2.Mean())

	bp, err := sc.BancoParams()
	require.NoError(t, err)
	assert.Equal(t, 3, bp.Servers)

	ep, err := sc.EstacionamientoParams()
	require.NoError(t, err)
	assert.Equal(t, 6, ep.Slots)
	assert.Equal(t, 20.0, ep.Duration.Mean())
}

func TestScenarioParams_InvalidValues_Error(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scenario)
		check  func(*Scenario) error
	}{
		{
			name:   "unknown serie distribution",
			mutate: func(sc *Scenario) { sc.Serie.Service1.Type = "weibull" },
			check:  func(sc *Scenario) error { _, err := sc.SerieParams(); return err },
		},
		{
			name:   "zero servers",
			mutate: func(sc *Scenario) { sc.Banco.Servers = 0 },
			check:  func(sc *Scenario) error { _, err := sc.BancoParams(); return err },
		},
		{
			name:   "negative arrival rate",
			mutate: func(sc *Scenario) { sc.Estacionamiento.ArrivalRate = -1 },
			check:  func(sc *Scenario) error { _, err := sc.EstacionamientoParams(); return err },
		},
		{
			name:   "uniform missing max",
			mutate: func(sc *Scenario) { delete(sc.Estacionamiento.Duration.Params, "max") },
			check:  func(sc *Scenario) error { _, err := sc.EstacionamientoParams(); return err },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := DefaultScenario()
			tt.mutate(sc)
			assert.Error(t, tt.check(sc))
		})
	}
}

func TestLoadScenario_PartialSection_KeepsMissingKeys(t *testing.T) {
	// GIVEN a serie section with only the rate and a second-station distribution
	sc, err := LoadScenario(filepath.Join("testdata", "partial_section.yaml"))
	require.NoError(t, err)

	// THEN the given keys are applied
	assert.Equal(t, 30.0, sc.Serie.ArrivalRate)
	assert.Equal(t, dist.DistSpec{Type: "triangular", Params: map[string]float64{"min": 1, "mode": 2, "max": 4}}, sc.Serie.Service2)

	// AND the missing keys keep their defaults
	def := DefaultScenario()
	assert.Equal(t, def.Serie.ClosingHours, sc.Serie.ClosingHours)
	assert.Equal(t, def.Serie.Service1, sc.Serie.Service1)

	// AND the section still validates
	p, err := sc.SerieParams()
	require.NoError(t, err)
	assert.Equal(t, 30.0, p.ArrivalRate)
	assert.InDelta(t, 7.0/3, p.Service2.Mean(), 1e-12)
}

func TestLoadScenario_UnknownDistributionField_Rejected(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "unknown_dist_field.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shape")
}

func TestLoadScenario_EmptyFile_ReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultScenario(), sc)
}
