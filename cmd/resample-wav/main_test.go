package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeinterleave8BitUnsigned(t *testing.T) {
	// 8-bit WAV stores unsigned samples centered on 128; silence must map
	// to 0.0, not a +1.0 DC offset.
	data := []int{128, 128, 255, 0}
	planar := deinterleave(data, 2, 8)
	require.Len(t, planar, 2)
	assert.InDelta(t, 0.0, planar[0][0], 1e-12)
	assert.InDelta(t, 0.0, planar[1][0], 1e-12)
	assert.InDelta(t, 127.0/128.0, planar[0][1], 1e-12)
	assert.InDelta(t, -1.0, planar[1][1], 1e-12)
}

func TestDeinterleave16BitSigned(t *testing.T) {
	data := []int{0, -32768, 16384, 32767}
	planar := deinterleave(data, 2, 16)
	assert.InDelta(t, 0.0, planar[0][0], 1e-12)
	assert.InDelta(t, -1.0, planar[1][0], 1e-12)
	assert.InDelta(t, 0.5, planar[0][1], 1e-12)
	assert.InDelta(t, 32767.0/32768.0, planar[1][1], 1e-12)
}

func TestInterleaveRoundTrip(t *testing.T) {
	planar := [][]float64{
		{0.0, 0.5, -0.5, 1.0},
		{0.25, -1.0, 0.75, -0.125},
	}
	for _, bitDepth := range []int{8, 16, 24} {
		data := interleave(planar, bitDepth)
		back := deinterleave(data, 2, bitDepth)

		// One LSB of headroom for quantization and full-scale clamping.
		tol := 2.0 / float64(int(1)<<(bitDepth-1))
		for ch := range planar {
			for i := range planar[ch] {
				assert.InDelta(t, planar[ch][i], back[ch][i], tol,
					"bit depth %d channel %d frame %d", bitDepth, ch, i)
			}
		}
	}
}

func TestInterleave8BitRange(t *testing.T) {
	// Full-scale values must stay inside the unsigned 8-bit range.
	data := interleave([][]float64{{1.0, -1.0, 0.0}}, 8)
	assert.Equal(t, []int{255, 0, 128}, data)
}
