// Package rng provides the deterministic uniform generators that feed every
// sampler and simulator in this module.
//
// All arithmetic is done in uint32 so that the recurrence wraps exactly as a
// 32-bit register does; the same seed yields the same sequence on every platform.
package rng

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Source is the only thing samplers need from a generator.
// Both *LCG and *math/rand.Rand satisfy it.
type Source interface {
	Float64() float64
}

// OpenSource is a Source that can also draw strictly inside (0,1).
type OpenSource interface {
	Source
	Open() float64
}

// Positive draws a value in (0,1) when src supports it, and falls back to
// Float64 otherwise. Samplers that take a logarithm draw through it.
func Positive(src Source) float64 {
	if o, ok := src.(OpenSource); ok {
		return o.Open()
	}
	return src.Float64()
}

// Constants parameterizes a linear congruential recurrence
// state = (A*state + C) mod 2^Bits.
type Constants struct {
	Name string
	A    uint32
	C    uint32
	Bits uint // modulus exponent, 31 or 32
}

var (
	// Mixed is the Numerical Recipes mixed generator (m = 2^32).
	// Used by all service-system simulators.
	Mixed = Constants{Name: "mixed", A: 1664525, C: 1013904223, Bits: 32}

	// ANSIC is the classic C library rand() recurrence (m = 2^31).
	ANSIC = Constants{Name: "ansi-c", A: 1103515245, C: 12345, Bits: 31}
)

// ConstantsByName maps the accepted --generator values.
var ConstantsByName = map[string]Constants{
	Mixed.Name: Mixed,
	ANSIC.Name: ANSIC,
}

// LCG is a linear congruential generator with a single mutable register.
// Thread-safety: NOT thread-safe. Each simulation run owns its own instance.
type LCG struct {
	k       Constants
	state   uint32
	modulus float64
}

// New creates a generator from explicit constants and seed.
func New(k Constants, seed uint32) *LCG {
	g := &LCG{k: k, modulus: float64(uint64(1) << k.Bits)}
	g.state = seed & g.mask()
	return g
}

// NewMixed creates a Mixed generator; this is what the simulators use.
func NewMixed(seed uint32) *LCG {
	return New(Mixed, seed)
}

// FromSeed builds a Mixed generator from an optional seed. A nil seed falls back
// to the wall clock, so the run is not reproducible.
func FromSeed(seed *int64) *LCG {
	if seed == nil {
		s := uint32(time.Now().UnixNano())
		logrus.Debugf("no seed supplied, using time-derived seed %d", s)
		return NewMixed(s)
	}
	return NewMixed(uint32(*seed))
}

func (g *LCG) mask() uint32 {
	if g.k.Bits >= 32 {
		return ^uint32(0)
	}
	return uint32(1)<<g.k.Bits - 1
}

// step advances the register once.
func (g *LCG) step() uint32 {
	g.state = (g.k.A*g.state + g.k.C) & g.mask()
	return g.state
}

// Float64 returns state/m in [0,1).
func (g *LCG) Float64() float64 {
	return float64(g.step()) / g.modulus
}

// Open returns (state+0.5)/m, a value strictly inside (0,1).
// Used where a draw feeds a logarithm or a reciprocal.
func (g *LCG) Open() float64 {
	return (float64(g.step()) + 0.5) / g.modulus
}

// State returns the current register value.
func (g *LCG) State() uint32 {
	return g.state
}

// Constants returns the recurrence constants of this generator.
func (g *LCG) Constants() Constants {
	return g.k
}
