// Package dist maps uniform draws to variates by inverse transform.
//
// The *Inverse functions are pure: they take the uniform value u directly and
// never validate their parameters. Malformed parameters (mode outside
// [min,max], negative probabilities) propagate as NaN or out-of-range values.
package dist

import "math"

// minUniform keeps -ln(u) finite.
const minUniform = math.SmallestNonzeroFloat64

// TriangularInverse returns the triangular(min, mode, max) variate for u.
// A degenerate range (max == min) returns min.
func TriangularInverse(u, min, mode, max float64) float64 {
	if max == min {
		return min
	}
	width := max - min
	fc := (mode - min) / width
	if u < fc {
		return min + math.Sqrt(u*width*(mode-min))
	}
	return max - math.Sqrt((1-u)*width*(max-mode))
}

// ExponentialInverse returns -mean*ln(u), with u floored away from 0.
func ExponentialInverse(u, mean float64) float64 {
	if u < minUniform {
		u = minUniform
	}
	return -mean * math.Log(u)
}

// UniformInverse returns min + (max-min)*u.
func UniformInverse(u, min, max float64) float64 {
	return min + (max-min)*u
}

// DiscreteInverse returns the first value whose cumulative probability is >= u.
// When rounding leaves the total below u, the last value is returned.
func DiscreteInverse(u float64, values, probs []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	cum := 0.0
	for i, p := range probs {
		if i >= len(values) {
			break
		}
		cum += p
		if cum >= u {
			return values[i]
		}
	}
	return values[len(values)-1]
}

// RampFlatInverse inverts the two-segment piecewise-linear pdf that rises
// linearly from 0 at start to h at peak, then stays at h until end.
// h is fixed by normalization; the first segment holds mass h*(peak-start)/2.
//
// Segment 1 solves the quadratic F(x) = h*(x-start)^2 / (2*(peak-start)) = u,
// segment 2 the line F(x) = F1 + h*(x-peak) = u.
func RampFlatInverse(u, start, peak, end float64) float64 {
	h, f1 := rampFlatShape(start, peak, end)
	if u < f1 {
		return start + math.Sqrt(2*u*(peak-start)/h)
	}
	return peak + (u-f1)/h
}

// RampFlatBreakpoint returns the cumulative mass at peak.
func RampFlatBreakpoint(start, peak, end float64) float64 {
	_, f1 := rampFlatShape(start, peak, end)
	return f1
}

func rampFlatShape(start, peak, end float64) (h, f1 float64) {
	h = 1 / ((peak-start)/2 + (end - peak))
	return h, h * (peak - start) / 2
}
