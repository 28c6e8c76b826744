package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpCubic(t *testing.T) {
	// A straight line must be reproduced exactly at the midpoint.
	y := [4]float64{0.0, 2.0, 4.0, 6.0}
	assert.InDelta(t, 3.0, InterpCubic(0.5, &y), 1e-12)

	// Endpoints hit the center samples.
	assert.InDelta(t, 2.0, InterpCubic(0.0, &y), 1e-12)

	y2 := [4]float64{1.0, 1.0, 1.0, 1.0}
	assert.InDelta(t, 1.0, InterpCubic(0.25, &y2), 1e-12)
}

func TestInterpQuadratic(t *testing.T) {
	// x^2 sampled at 0,1,2 is reproduced exactly.
	y := [3]float64{0.0, 1.0, 4.0}
	assert.InDelta(t, 0.25, InterpQuadratic(0.5, &y), 1e-12)
	assert.InDelta(t, 0.0, InterpQuadratic(0.0, &y), 1e-12)
	assert.InDelta(t, 1.0, InterpQuadratic(1.0, &y), 1e-12)
}

func TestInterpLinear(t *testing.T) {
	y := [2]float64{1.0, 5.0}
	assert.InDelta(t, 2.0, InterpLinear(0.25, &y), 1e-12)
	assert.InDelta(t, 1.0, InterpLinear(0.0, &y), 1e-12)
}

func TestInterpFloat32(t *testing.T) {
	y := [4]float32{0.0, 2.0, 4.0, 6.0}
	assert.InDelta(t, 3.0, float64(InterpCubic(float32(0.5), &y)), 1e-5)
}

func TestNearestTimes4(t *testing.T) {
	var points [4]GridPoint
	NearestTimes4(2.3, 4, &points)
	assert.Equal(t, [4]GridPoint{{2, 0}, {2, 1}, {2, 2}, {2, 3}}, points)

	// Negative times must floor towards minus infinity.
	NearestTimes4(-0.3, 4, &points)
	assert.Equal(t, [4]GridPoint{{-1, 1}, {-1, 2}, {-1, 3}, {0, 0}}, points)
}

func TestNearestTimes2(t *testing.T) {
	var points [2]GridPoint
	NearestTimes2(1.6, 8, &points)
	assert.Equal(t, [2]GridPoint{{1, 4}, {1, 5}}, points)
}

func TestNearestTime(t *testing.T) {
	p := NearestTime(1.8, 4)
	assert.Equal(t, GridPoint{1, 3}, p)

	p = NearestTime(1.9, 4)
	assert.Equal(t, GridPoint{2, 0}, p)
}

func TestFrac(t *testing.T) {
	assert.InDelta(t, 0.2, Frac(2.3, 4), 1e-9)
	assert.InDelta(t, 0.8, Frac(-0.3, 4), 1e-9)
}

func TestGcd(t *testing.T) {
	assert.Equal(t, 300, Gcd(44100, 48000))
	assert.Equal(t, 9600, Gcd(48000, 9600))
	assert.Equal(t, 7, Gcd(7, 0))
	assert.Equal(t, 1, Gcd(44100, 44101))
}

func TestBesselI0(t *testing.T) {
	assert.InDelta(t, 1.0, BesselI0(0.0), 1e-12)
	assert.InDelta(t, 1.2660658777520084, BesselI0(1.0), 1e-7)
	assert.InDelta(t, 2.2795853023360673, BesselI0(2.0), 1e-6)

	// Even function, monotonically increasing for x > 0.
	assert.Equal(t, BesselI0(2.5), BesselI0(-2.5))
	assert.Greater(t, BesselI0(10.0), BesselI0(9.0))
}
