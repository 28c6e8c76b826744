package resampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface compliance.
var (
	_ Resampler[float64] = (*Sinc[float64])(nil)
	_ Resampler[float32] = (*Sinc[float32])(nil)
	_ Resampler[float64] = (*Fft[float64])(nil)
	_ Resampler[float32] = (*Fft[float32])(nil)
	_ Resampler[float64] = (*FftFixedIn[float64])(nil)
	_ Resampler[float32] = (*FftFixedIn[float32])(nil)
)

func TestMakeBuffer(t *testing.T) {
	buf := MakeBuffer[float64](2, 100, false)
	require.Len(t, buf, 2)
	for ch := range buf {
		assert.Len(t, buf[ch], 100)
	}

	buf = MakeBuffer[float64](3, 100, true)
	require.Len(t, buf, 3)
	for ch := range buf {
		assert.Len(t, buf[ch], 0)
		assert.Equal(t, 100, cap(buf[ch]))
	}
}

func TestResizeBuffer(t *testing.T) {
	buf := MakeBuffer[float64](2, 10, false)
	buf[0][5] = 1.5

	ResizeBuffer(buf, 20)
	for ch := range buf {
		assert.Len(t, buf[ch], 20)
	}
	assert.Equal(t, 1.5, buf[0][5])

	ResizeBuffer(buf, 4)
	for ch := range buf {
		assert.Len(t, buf[ch], 4)
	}

	// Growing back within capacity must zero the re-exposed region.
	ResizeBuffer(buf, 8)
	assert.Equal(t, 0.0, buf[0][5])
}

func TestBufferLength(t *testing.T) {
	assert.Equal(t, 0, BufferLength[float64](nil))
	assert.Equal(t, 7, BufferLength(MakeBuffer[float32](2, 7, false)))
}

func TestErrorTaxonomy(t *testing.T) {
	// All sentinels are distinct.
	sentinels := []error{
		ErrInvalidConfig, ErrWrongChannelCount, ErrWrongFrameCount,
		ErrInsufficientOutput, ErrRatioOutOfBounds, ErrSyncNotAdjustable,
		ErrInvalidChunkSize, ErrChunkSizeNotAdjustable,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "FixedInput", FixedInput.String())
	assert.Equal(t, "FixedOutput", FixedOutput.String())
	assert.Equal(t, "Cubic", InterpolationCubic.String())
	assert.Equal(t, "Quadratic", InterpolationQuadratic.String())
	assert.Equal(t, "Linear", InterpolationLinear.String())
	assert.Equal(t, "Nearest", InterpolationNearest.String())
}

func TestDefaultCutoff(t *testing.T) {
	c := DefaultCutoff(128, WindowBlackmanHarris2)
	assert.Greater(t, c, 0.5)
	assert.LessOrEqual(t, c, 1.0)
	assert.Greater(t, DefaultCutoff(256, WindowBlackmanHarris2), c)
}

func TestDefaultSincConfigIsValid(t *testing.T) {
	cfg := DefaultSincConfig()
	assert.NoError(t, cfg.Validate())

	rs, err := NewSincFixedIn[float64](float64(Rate48000)/float64(Rate44100), 1024, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, rs.NbrChannels())

	rs2, err := NewSincFixedOut[float64](float64(Rate44100)/float64(Rate48000), 1024, 2)
	require.NoError(t, err)
	assert.Equal(t, 1024, rs2.OutputFramesNext())
}
