package mathutil

import (
	"math"

	"github.com/tphakala/go-stream-resampler/internal/simdops"
)

// GridPoint addresses one point of the oversampled filter grid.
// Index selects the input frame the filter window is anchored at and
// Subindex selects the phase (sub-sample offset) within that frame.
type GridPoint struct {
	Index    int
	Subindex int
}

// floorDiv returns floor(a/b) for positive b, correct for negative a.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod returns a - floorDiv(a,b)*b, always in [0, b) for positive b.
func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

func toGridPoint(g, factor int) GridPoint {
	return GridPoint{Index: floorDiv(g, factor), Subindex: floorMod(g, factor)}
}

// NearestTimes4 fills points with the four grid points surrounding time t,
// at grid positions floor(t*factor)-1 .. floor(t*factor)+2.
func NearestTimes4(t float64, factor int, points *[4]GridPoint) {
	n := int(math.Floor(t * float64(factor)))
	for i := range points {
		points[i] = toGridPoint(n-1+i, factor)
	}
}

// NearestTimes3 fills points with the three grid points at positions
// floor(t*factor) .. floor(t*factor)+2.
func NearestTimes3(t float64, factor int, points *[3]GridPoint) {
	n := int(math.Floor(t * float64(factor)))
	for i := range points {
		points[i] = toGridPoint(n+i, factor)
	}
}

// NearestTimes2 fills points with the two grid points at positions
// floor(t*factor) and floor(t*factor)+1.
func NearestTimes2(t float64, factor int, points *[2]GridPoint) {
	n := int(math.Floor(t * float64(factor)))
	points[0] = toGridPoint(n, factor)
	points[1] = toGridPoint(n+1, factor)
}

// NearestTime returns the grid point closest to time t.
func NearestTime(t float64, factor int) GridPoint {
	n := int(math.Floor(t*float64(factor) + 0.5))
	return toGridPoint(n, factor)
}

// Frac returns the fractional grid offset of time t, in [0, 1).
func Frac(t float64, factor int) float64 {
	tf := t * float64(factor)
	return tf - math.Floor(tf)
}

// InterpCubic evaluates a Catmull-Rom style cubic through the four points
// y[-1], y[0], y[1], y[2] at offset x in [0, 1) relative to y[0].
func InterpCubic[F simdops.Float](x F, y *[4]F) F {
	a0 := y[1]
	a1 := -F(1.0/3.0)*y[0] - 0.5*y[1] + y[2] - F(1.0/6.0)*y[3]
	a2 := 0.5*(y[0]+y[2]) - y[1]
	a3 := 0.5*(y[1]-y[2]) + F(1.0/6.0)*(y[3]-y[0])
	return a0 + x*(a1+x*(a2+x*a3))
}

// InterpQuadratic evaluates the parabola through y[0], y[1], y[2] at offset
// x in [0, 1) relative to y[0].
func InterpQuadratic[F simdops.Float](x F, y *[3]F) F {
	a0 := y[0]
	a1 := -1.5*y[0] + 2.0*y[1] - 0.5*y[2]
	a2 := 0.5*(y[0]+y[2]) - y[1]
	return a0 + x*(a1+x*a2)
}

// InterpLinear interpolates linearly between y[0] and y[1] at offset x.
func InterpLinear[F simdops.Float](x F, y *[2]F) F {
	return y[0] + x*(y[1]-y[0])
}

// Gcd returns the greatest common divisor of a and b.
func Gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
