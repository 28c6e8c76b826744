// Package mathutil provides the scalar math used by the resampling engines:
// interpolation polynomials, oversampled-grid index arithmetic, and the
// modified Bessel function needed for Kaiser windows.
package mathutil

import (
	"math"
)

const besselSmallArgThreshold = 3.75

// BesselI0 computes the modified Bessel function of the first kind, order zero: I₀(x).
// Used for Kaiser window evaluation.
//
// The implementation uses Chebyshev polynomial approximations for numerical stability:
//   - For |x| ≤ 3.75: Direct polynomial series expansion
//   - For |x| > 3.75: Asymptotic expansion with exponential scaling
//
// Reference: Abramowitz & Stegun, "Handbook of Mathematical Functions"
func BesselI0(x float64) float64 {
	// I₀(x) = I₀(-x)
	ax := math.Abs(x)

	if ax < besselSmallArgThreshold {
		t := x / besselSmallArgThreshold
		t *= t
		return 1.0 + t*(3.5156229+t*(3.0899424+t*(1.2067492+
			t*(0.2659732+t*(0.0360768+t*0.0045813)))))
	}

	t := besselSmallArgThreshold / ax
	result := 0.39894228 + t*(0.01328592+t*(0.00225319+
		t*(-0.00157565+t*(0.00916281+t*(-0.02057706+
			t*(0.02635537+t*(-0.01647633+t*0.00392377)))))))

	return math.Exp(ax) * result / math.Sqrt(ax)
}
