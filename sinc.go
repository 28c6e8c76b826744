package resampler

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-stream-resampler/internal/interp"
	"github.com/tphakala/go-stream-resampler/internal/mathutil"
)

// SincConfig holds the filter parameters for the Sinc resampler.
type SincConfig struct {
	// SincLen is the filter half-length. The filter uses 2*SincLen taps,
	// rounded up to a multiple of 8. Longer filters give a sharper
	// anti-alias transition at a higher cost per output frame.
	SincLen int

	// FCutoff is the relative cutoff frequency in (0, 1] of the smaller
	// Nyquist frequency. Zero selects DefaultCutoff for the window.
	FCutoff float64

	// Oversampling is the number of filter phases. Higher values reduce
	// phase interpolation error; with cubic interpolation 128 phases are
	// enough for float64 accuracy.
	Oversampling int

	// Interpolation selects the phase interpolation order.
	Interpolation Interpolation

	// Window selects the window shape applied to the sinc.
	Window WindowFunction
}

// Validate checks the configuration.
func (c *SincConfig) Validate() error {
	if c.SincLen <= 0 {
		return fmt.Errorf("%w: sinc length must be positive, got %d", ErrInvalidConfig, c.SincLen)
	}
	if c.FCutoff < 0 || c.FCutoff > 1 {
		return fmt.Errorf("%w: cutoff must be in (0, 1], got %v", ErrInvalidConfig, c.FCutoff)
	}
	if c.Oversampling <= 0 {
		return fmt.Errorf("%w: oversampling must be positive, got %d", ErrInvalidConfig, c.Oversampling)
	}
	if c.Interpolation < InterpolationCubic || c.Interpolation > InterpolationNearest {
		return fmt.Errorf("%w: unknown interpolation %d", ErrInvalidConfig, int(c.Interpolation))
	}
	if !c.Window.Valid() {
		return fmt.Errorf("%w: unknown window function %d", ErrInvalidConfig, int(c.Window))
	}
	return nil
}

// Sinc is an asynchronous resampler. It interpolates output samples from an
// oversampled windowed-sinc filter bank driven by a fractional read cursor,
// so the conversion ratio can be any real number and can change at runtime
// within the bounds set at construction.
//
// In FixedInput mode every call consumes exactly the chunk size and produces
// a varying number of frames; FixedOutput is the reverse. Not safe for
// concurrent use.
type Sinc[F Float] struct {
	nbrChannels  int
	chunkSize    int
	maxChunkSize int
	fixed        Fixed

	neededInputSize  int
	neededOutputSize int

	// lastIndex is the read cursor position relative to the start of the
	// current chunk, in input frames. Starts at -taps/2 so the filter is
	// centered on the first input frame.
	lastIndex float64

	resampleRatio         float64
	resampleRatioOriginal float64
	targetRatio           float64
	maxRelativeRatio      float64

	interpolation Interpolation
	interpolator  interp.Interpolator[F]

	// buffer holds, per channel, 2*taps frames of history followed by the
	// current chunk, with slack for ratio ramp overshoot.
	buffer [][]F
}

// NewSinc creates an asynchronous resampler.
//
// ratio is the initial output/input sample rate ratio. maxRatioRelative
// bounds later ratio changes to ratio/maxRatioRelative..ratio*maxRatioRelative
// and must be at least 1. chunkSize fixes the input length (FixedInput) or
// output length (FixedOutput) per call.
func NewSinc[F Float](ratio, maxRatioRelative float64, cfg SincConfig, chunkSize, channels int, fixed Fixed) (*Sinc[F], error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("%w: ratio must be a positive finite number, got %v", ErrInvalidConfig, ratio)
	}
	if maxRatioRelative < 1 || math.IsNaN(maxRatioRelative) || math.IsInf(maxRatioRelative, 0) {
		return nil, fmt.Errorf("%w: max relative ratio must be >= 1, got %v", ErrInvalidConfig, maxRatioRelative)
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, chunkSize)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channel count must be positive, got %d", ErrInvalidConfig, channels)
	}
	if fixed != FixedInput && fixed != FixedOutput {
		return nil, fmt.Errorf("%w: unknown fixed mode %d", ErrInvalidConfig, int(fixed))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	taps := roundUpToMultiple(2*cfg.SincLen, 8)
	cutoff := cfg.FCutoff
	if cutoff == 0 {
		cutoff = DefaultCutoff(taps/2, cfg.Window)
	}
	// When downsampling the anti-alias band is set by the output rate.
	if ratio < 1 {
		cutoff *= ratio
	}

	interpolator, err := interp.New[F](taps, cfg.Oversampling, cutoff, cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	s := &Sinc[F]{
		nbrChannels:           channels,
		chunkSize:             chunkSize,
		maxChunkSize:          chunkSize,
		fixed:                 fixed,
		lastIndex:             -float64(taps / 2),
		resampleRatio:         ratio,
		resampleRatioOriginal: ratio,
		targetRatio:           ratio,
		maxRelativeRatio:      maxRatioRelative,
		interpolation:         cfg.Interpolation,
		interpolator:          interpolator,
	}
	s.updateLengths()

	// Extra frames past the nominal maximum absorb the half-step cursor
	// overshoot of a ramp chunk.
	slack := int(math.Ceil(maxRatioRelative/ratio)) + 8
	bufLen := s.maxInputSize() + 2*taps + slack
	s.buffer = make([][]F, channels)
	for ch := range s.buffer {
		s.buffer[ch] = make([]F, bufLen)
	}

	logrus.WithFields(logrus.Fields{
		"ratio":         ratio,
		"max_rel_ratio": maxRatioRelative,
		"taps":          taps,
		"cutoff":        cutoff,
		"oversampling":  cfg.Oversampling,
		"interpolation": cfg.Interpolation.String(),
		"window":        cfg.Window.String(),
		"chunk_size":    chunkSize,
		"channels":      channels,
		"mode":          fixed.String(),
	}).Debug("created sinc resampler")

	return s, nil
}

func roundUpToMultiple(n, m int) int {
	if rem := n % m; rem != 0 {
		n += m - rem
	}
	return n
}

// stepRatio is the harmonic mean of the current and target ratio. The
// cursor advances by the inverse ratio per output frame, so during a ramp
// the frames consumed per frame produced average to 1/stepRatio; using the
// arithmetic mean here would under-predict consumption and let the cursor
// run past the buffered input. Equal to the ratio when no ramp is active.
func (s *Sinc[F]) stepRatio() float64 {
	return 2.0 * s.resampleRatio * s.targetRatio / (s.resampleRatio + s.targetRatio)
}

func (s *Sinc[F]) updateLengths() {
	taps := s.interpolator.Len()
	if s.fixed == FixedInput {
		s.neededInputSize = s.chunkSize
		out := int(math.Floor((float64(s.chunkSize) - float64(taps+1) - s.lastIndex) * s.stepRatio()))
		if out < 0 {
			out = 0
		}
		s.neededOutputSize = out
	} else {
		s.neededOutputSize = s.chunkSize
		in := int(math.Ceil(s.lastIndex + float64(s.chunkSize)/s.stepRatio() + float64(taps)))
		if in < 0 {
			in = 0
		}
		s.neededInputSize = in
	}
}

func (s *Sinc[F]) maxInputSize() int {
	if s.fixed == FixedInput {
		return s.maxChunkSize
	}
	taps := s.interpolator.Len()
	return int(math.Ceil(float64(s.maxChunkSize)/s.resampleRatioOriginal*s.maxRelativeRatio)) + 2 + taps/2
}

func (s *Sinc[F]) maxOutputSize() int {
	if s.fixed == FixedOutput {
		return s.maxChunkSize
	}
	return int(float64(s.maxChunkSize)*s.resampleRatioOriginal*s.maxRelativeRatio + 10.0)
}

// Process implements Resampler.
func (s *Sinc[F]) Process(input [][]F) ([][]F, error) {
	return processAlloc[F](s, input)
}

// ProcessPartial implements Resampler.
func (s *Sinc[F]) ProcessPartial(input [][]F) ([][]F, error) {
	return processPartial[F](s, input)
}

// ProcessInto implements Resampler.
func (s *Sinc[F]) ProcessInto(input, output [][]F) (int, int, error) {
	if len(input) != s.nbrChannels {
		return 0, 0, fmt.Errorf("%w: got %d, want %d", ErrWrongChannelCount, len(input), s.nbrChannels)
	}
	if s.fixed == FixedInput && zeroFrames(input) {
		return 0, 0, nil
	}
	if err := validateInput(input, s.nbrChannels, s.neededInputSize); err != nil {
		return 0, 0, err
	}
	if err := validateOutput(output, s.nbrChannels, s.neededOutputSize); err != nil {
		return 0, 0, err
	}

	taps := s.interpolator.Len()
	factor := s.interpolator.NbrSincs()

	// The buffer starts with 2*taps frames of history covering negative
	// cursor positions; the new chunk goes right after it.
	for ch := range s.buffer {
		copy(s.buffer[ch][2*taps:2*taps+s.neededInputSize], input[ch])
	}

	// The cursor advances by the inverse ratio per output frame; during a
	// ramp the inverse ratio moves linearly to the target over this chunk.
	tRatio := 1.0 / s.resampleRatio
	var tRatioIncrement float64
	if s.neededOutputSize > 0 {
		tRatioIncrement = (1.0/s.targetRatio - tRatio) / float64(s.neededOutputSize)
	}

	idx := s.lastIndex
	margin := 2 * taps

	switch s.interpolation {
	case InterpolationCubic:
		var nearest [4]mathutil.GridPoint
		var points [4]F
		for n := 0; n < s.neededOutputSize; n++ {
			tRatio += tRatioIncrement
			idx += tRatio
			mathutil.NearestTimes4(idx, factor, &nearest)
			frac := F(mathutil.Frac(idx, factor))
			for ch := range s.buffer {
				buf := s.buffer[ch]
				for i := range nearest {
					points[i] = s.interpolator.SincInterpolated(buf, nearest[i].Index+margin, nearest[i].Subindex)
				}
				output[ch][n] = mathutil.InterpCubic(frac, &points)
			}
		}
	case InterpolationQuadratic:
		var nearest [3]mathutil.GridPoint
		var points [3]F
		for n := 0; n < s.neededOutputSize; n++ {
			tRatio += tRatioIncrement
			idx += tRatio
			mathutil.NearestTimes3(idx, factor, &nearest)
			frac := F(mathutil.Frac(idx, factor))
			for ch := range s.buffer {
				buf := s.buffer[ch]
				for i := range nearest {
					points[i] = s.interpolator.SincInterpolated(buf, nearest[i].Index+margin, nearest[i].Subindex)
				}
				output[ch][n] = mathutil.InterpQuadratic(frac, &points)
			}
		}
	case InterpolationLinear:
		var nearest [2]mathutil.GridPoint
		var points [2]F
		for n := 0; n < s.neededOutputSize; n++ {
			tRatio += tRatioIncrement
			idx += tRatio
			mathutil.NearestTimes2(idx, factor, &nearest)
			frac := F(mathutil.Frac(idx, factor))
			for ch := range s.buffer {
				buf := s.buffer[ch]
				for i := range nearest {
					points[i] = s.interpolator.SincInterpolated(buf, nearest[i].Index+margin, nearest[i].Subindex)
				}
				output[ch][n] = mathutil.InterpLinear(frac, &points)
			}
		}
	case InterpolationNearest:
		for n := 0; n < s.neededOutputSize; n++ {
			tRatio += tRatioIncrement
			idx += tRatio
			point := mathutil.NearestTime(idx, factor)
			for ch := range s.buffer {
				output[ch][n] = s.interpolator.SincInterpolated(s.buffer[ch], point.Index+margin, point.Subindex)
			}
		}
	}

	// Slide the last 2*taps frames of the consumed input to the front so
	// the next chunk sees them at negative cursor positions. Sliding by the
	// frames just consumed keeps the history aligned in FixedOutput mode,
	// where the input size varies from call to call.
	for ch := range s.buffer {
		buf := s.buffer[ch]
		copy(buf[:2*taps], buf[s.neededInputSize:s.neededInputSize+2*taps])
	}

	s.lastIndex = idx - float64(s.neededInputSize)
	s.resampleRatio = s.targetRatio
	framesIn := s.neededInputSize
	framesOut := s.neededOutputSize
	s.updateLengths()
	return framesIn, framesOut, nil
}

// InputFramesNext implements Resampler.
func (s *Sinc[F]) InputFramesNext() int { return s.neededInputSize }

// InputFramesMax implements Resampler.
func (s *Sinc[F]) InputFramesMax() int { return s.maxInputSize() }

// OutputFramesNext implements Resampler.
func (s *Sinc[F]) OutputFramesNext() int { return s.neededOutputSize }

// OutputFramesMax implements Resampler.
func (s *Sinc[F]) OutputFramesMax() int { return s.maxOutputSize() }

// NbrChannels implements Resampler.
func (s *Sinc[F]) NbrChannels() int { return s.nbrChannels }

// OutputDelay implements Resampler.
func (s *Sinc[F]) OutputDelay() int {
	return int(float64(s.interpolator.Len()) * s.resampleRatio / 2.0)
}

// SetResampleRatio implements Resampler.
func (s *Sinc[F]) SetResampleRatio(ratio float64, ramp bool) error {
	lo := s.resampleRatioOriginal / s.maxRelativeRatio
	hi := s.resampleRatioOriginal * s.maxRelativeRatio
	if !(ratio >= lo && ratio <= hi) {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrRatioOutOfBounds, ratio, lo, hi)
	}
	logrus.WithFields(logrus.Fields{
		"ratio": ratio,
		"ramp":  ramp,
	}).Debug("sinc resampler ratio change")
	if !ramp {
		s.resampleRatio = ratio
	}
	s.targetRatio = ratio
	s.updateLengths()
	return nil
}

// SetResampleRatioRelative implements Resampler.
func (s *Sinc[F]) SetResampleRatioRelative(rel float64, ramp bool) error {
	return s.SetResampleRatio(s.resampleRatioOriginal*rel, ramp)
}

// SetChunkSize implements Resampler. The chunk size can be lowered at any
// time, up to the construction value.
func (s *Sinc[F]) SetChunkSize(frames int) error {
	if frames <= 0 || frames > s.maxChunkSize {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidChunkSize, frames, s.maxChunkSize)
	}
	s.chunkSize = frames
	s.updateLengths()
	return nil
}

// Reset implements Resampler.
func (s *Sinc[F]) Reset() {
	for ch := range s.buffer {
		for i := range s.buffer[ch] {
			s.buffer[ch][i] = 0
		}
	}
	s.lastIndex = -float64(s.interpolator.Len() / 2)
	s.resampleRatio = s.resampleRatioOriginal
	s.targetRatio = s.resampleRatioOriginal
	s.chunkSize = s.maxChunkSize
	s.updateLengths()
}
