// Package testutil provides shared helpers for resampler tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-stream-resampler/internal/simdops"
)

// Sine generates n samples of a sine wave at the given normalized frequency
// (cycles per sample) and amplitude.
func Sine[F simdops.Float](n int, freq, amplitude float64) []F {
	out := make([]F, n)
	for i := range out {
		out[i] = F(amplitude * math.Sin(2.0*math.Pi*freq*float64(i)))
	}
	return out
}

// Impulse generates n samples that are zero except for a unit sample at pos.
func Impulse[F simdops.Float](n, pos int) []F {
	out := make([]F, n)
	out[pos] = 1.0
	return out
}

// AssertNoNaNOrInf fails the test if the signal contains NaN or Inf values.
func AssertNoNaNOrInf[F simdops.Float](t *testing.T, signal []F, msgAndArgs ...interface{}) {
	t.Helper()
	for i, v := range signal {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			assert.Fail(t, "signal contains NaN or Inf", "index %d value %v %v", i, v, msgAndArgs)
			return
		}
	}
}

// AssertAllZero fails the test if any sample deviates from zero by more
// than tol.
func AssertAllZero[F simdops.Float](t *testing.T, signal []F, tol float64, msgAndArgs ...interface{}) {
	t.Helper()
	for i, v := range signal {
		if math.Abs(float64(v)) > tol {
			assert.Fail(t, "signal is not zero", "index %d value %v %v", i, v, msgAndArgs)
			return
		}
	}
}

// MaxAbs returns the largest absolute sample value.
func MaxAbs[F simdops.Float](signal []F) float64 {
	maxv := 0.0
	for _, v := range signal {
		if a := math.Abs(float64(v)); a > maxv {
			maxv = a
		}
	}
	return maxv
}

// BestAlignmentError slides b over a within [minOffset, maxOffset] and
// returns the smallest mean absolute difference over the overlap, together
// with the offset that produced it. Offset k compares a[i+k] with b[i].
func BestAlignmentError[F simdops.Float](a, b []F, minOffset, maxOffset int) (float64, int) {
	bestErr := math.Inf(1)
	bestOff := minOffset
	for k := minOffset; k <= maxOffset; k++ {
		sum := 0.0
		count := 0
		for i := range b {
			j := i + k
			if j < 0 || j >= len(a) {
				continue
			}
			sum += math.Abs(float64(a[j]) - float64(b[i]))
			count++
		}
		if count == 0 {
			continue
		}
		if err := sum / float64(count); err < bestErr {
			bestErr = err
			bestOff = k
		}
	}
	return bestErr, bestOff
}
