package interp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-stream-resampler/internal/window"
)

func TestSimdMatchesScalar(t *testing.T) {
	const (
		taps         = 64
		oversampling = 32
	)
	simd, err := New[float64](taps, oversampling, 0.95, window.BlackmanHarris2)
	require.NoError(t, err)
	scalar, err := NewScalar[float64](taps, oversampling, 0.95, window.BlackmanHarris2)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	buf := make([]float64, 512)
	for i := range buf {
		buf[i] = rng.Float64()*2.0 - 1.0
	}

	for i := 0; i < 200; i++ {
		index := rng.Intn(len(buf) - taps)
		subindex := rng.Intn(oversampling)
		a := simd.SincInterpolated(buf, index, subindex)
		b := scalar.SincInterpolated(buf, index, subindex)
		assert.InDelta(t, b, a, 1e-9)
	}
}

func TestSimdMatchesScalarFloat32(t *testing.T) {
	const (
		taps         = 32
		oversampling = 16
	)
	simd, err := New[float32](taps, oversampling, 0.9, window.Hann)
	require.NoError(t, err)
	scalar, err := NewScalar[float32](taps, oversampling, 0.9, window.Hann)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	buf := make([]float32, 256)
	for i := range buf {
		buf[i] = float32(rng.Float64()*2.0 - 1.0)
	}

	for i := 0; i < 100; i++ {
		index := rng.Intn(len(buf) - taps)
		subindex := rng.Intn(oversampling)
		a := simd.SincInterpolated(buf, index, subindex)
		b := scalar.SincInterpolated(buf, index, subindex)
		assert.InDelta(t, float64(b), float64(a), 1e-4)
	}
}

func TestDimensions(t *testing.T) {
	p, err := New[float64](48, 16, 0.9, window.Blackman)
	require.NoError(t, err)
	assert.Equal(t, 48, p.Len())
	assert.Equal(t, 16, p.NbrSincs())
}

func TestBadFilterRejected(t *testing.T) {
	_, err := New[float64](0, 16, 0.9, window.Blackman)
	assert.Error(t, err)
	_, err = NewScalar[float64](64, 16, 1.5, window.Blackman)
	assert.Error(t, err)
}
