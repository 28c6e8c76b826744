package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-stream-resampler/internal/window"
)

func TestParamsValidate(t *testing.T) {
	valid := Params{Taps: 64, Oversampling: 128, Cutoff: 0.95, Window: window.BlackmanHarris2}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero taps", func(p *Params) { p.Taps = 0 }},
		{"odd taps", func(p *Params) { p.Taps = 63 }},
		{"negative taps", func(p *Params) { p.Taps = -8 }},
		{"zero oversampling", func(p *Params) { p.Oversampling = 0 }},
		{"zero cutoff", func(p *Params) { p.Cutoff = 0 }},
		{"cutoff above nyquist", func(p *Params) { p.Cutoff = 1.5 }},
		{"bad window", func(p *Params) { p.Window = window.Function(99) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestMakeSincsDimensions(t *testing.T) {
	p := Params{Taps: 64, Oversampling: 16, Cutoff: 0.95, Window: window.BlackmanHarris2}
	sincs, err := MakeSincs[float64](p)
	require.NoError(t, err)

	require.Len(t, sincs, p.Oversampling)
	for _, row := range sincs {
		assert.Len(t, row, p.Taps)
	}
}

func TestMakeSincsNormalization(t *testing.T) {
	p := Params{Taps: 128, Oversampling: 64, Cutoff: 0.9, Window: window.BlackmanHarris2}
	sincs, err := MakeSincs[float64](p)
	require.NoError(t, err)

	// Every phase row passes DC with approximately unity gain; the small
	// spread between rows is the filter's passband ripple.
	for i, row := range sincs {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 0.05, "row %d", i)
	}
}

func TestMakeSincsPeakNearCenter(t *testing.T) {
	p := Params{Taps: 64, Oversampling: 32, Cutoff: 0.95, Window: window.BlackmanHarris2}
	sincs, err := MakeSincs[float64](p)
	require.NoError(t, err)

	// The largest coefficient of any row sits next to the sinc center.
	maxVal := 0.0
	maxIdx := 0
	for _, row := range sincs {
		for i, v := range row {
			if a := math.Abs(v); a > maxVal {
				maxVal = a
				maxIdx = i
			}
		}
	}
	assert.InDelta(t, float64(p.Taps/2), float64(maxIdx), 1.5)
}

func TestMakeSincsFloat32MatchesFloat64(t *testing.T) {
	p := Params{Taps: 32, Oversampling: 8, Cutoff: 0.9, Window: window.Hann}
	s64, err := MakeSincs[float64](p)
	require.NoError(t, err)
	s32, err := MakeSincs[float32](p)
	require.NoError(t, err)

	for i := range s64 {
		for j := range s64[i] {
			assert.InDelta(t, s64[i][j], float64(s32[i][j]), 1e-6)
		}
	}
}

func TestMakeSincsRejectsBadParams(t *testing.T) {
	_, err := MakeSincs[float64](Params{Taps: 0, Oversampling: 16, Cutoff: 0.9, Window: window.Hann})
	assert.Error(t, err)
}
