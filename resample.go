package resampler

import (
	"fmt"

	"github.com/tphakala/go-stream-resampler/internal/simdops"
)

// Float is the constraint for supported sample types. Each resampler
// instance processes one precision; float64 roughly doubles memory and
// halves SIMD throughput in exchange for more headroom.
type Float = simdops.Float

// Fixed selects which side of an asynchronous resampler has a constant
// frame count per call.
type Fixed int

const (
	// FixedInput fixes the input frame count; the output length varies.
	FixedInput Fixed = iota
	// FixedOutput fixes the output frame count; the input length varies.
	FixedOutput
)

func (f Fixed) String() string {
	switch f {
	case FixedInput:
		return "FixedInput"
	case FixedOutput:
		return "FixedOutput"
	default:
		return fmt.Sprintf("Fixed(%d)", int(f))
	}
}

// Interpolation selects how values between the precomputed filter phases
// are estimated. Higher orders allow a smaller oversampling factor for the
// same accuracy at a higher per-sample cost.
type Interpolation int

const (
	// InterpolationCubic fits a cubic polynomial through four phase values.
	InterpolationCubic Interpolation = iota
	// InterpolationQuadratic fits a parabola through three phase values.
	InterpolationQuadratic
	// InterpolationLinear interpolates linearly between two phase values.
	InterpolationLinear
	// InterpolationNearest picks the closest phase. Only accurate when the
	// ratio is an integer fraction of the oversampling factor.
	InterpolationNearest
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationCubic:
		return "Cubic"
	case InterpolationQuadratic:
		return "Quadratic"
	case InterpolationLinear:
		return "Linear"
	case InterpolationNearest:
		return "Nearest"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// Resampler converts the sample rate of interleaved-by-channel audio in
// chunks. Implementations are not safe for concurrent use; run one instance
// per goroutine.
//
// Buffers are non-interleaved: buf[channel][frame].
type Resampler[F Float] interface {
	// Process resamples one chunk and returns newly allocated output
	// buffers. Input length per channel must equal InputFramesNext.
	Process(input [][]F) ([][]F, error)

	// ProcessInto resamples one chunk into caller-provided buffers and
	// returns the frames read and written. Each output channel must have
	// room for at least OutputFramesNext frames. On error no state changes
	// and no output is written.
	ProcessInto(input, output [][]F) (framesIn, framesOut int, err error)

	// ProcessPartial resamples a final short chunk, padding it with zeroes
	// up to InputFramesNext. A nil input processes a whole chunk of
	// silence, which can be repeated to drain the filter history.
	ProcessPartial(input [][]F) ([][]F, error)

	// InputFramesNext returns the exact input length required by the next
	// call to Process.
	InputFramesNext() int

	// InputFramesMax returns the largest value InputFramesNext can take.
	InputFramesMax() int

	// OutputFramesNext returns the exact output length of the next call.
	OutputFramesNext() int

	// OutputFramesMax returns the largest value OutputFramesNext can take.
	OutputFramesMax() int

	// NbrChannels returns the channel count fixed at construction.
	NbrChannels() int

	// OutputDelay returns the filter group delay in output frames. The
	// first OutputDelay frames of a stream are transient.
	OutputDelay() int

	// SetResampleRatio sets a new output/input ratio. With ramp, the change
	// is spread smoothly over the next chunk. Synchronous resamplers
	// return ErrSyncNotAdjustable.
	SetResampleRatio(ratio float64, ramp bool) error

	// SetResampleRatioRelative sets the ratio as a factor of the
	// construction ratio.
	SetResampleRatioRelative(rel float64, ramp bool) error

	// SetChunkSize changes the fixed-side chunk size, up to the
	// construction value.
	SetChunkSize(frames int) error

	// Reset returns the resampler to its freshly constructed state.
	Reset()
}

// MakeBuffer allocates a channel-major buffer of the given dimensions.
// With zeroLen the per-channel slices have zero length but full capacity,
// ready for append-style use.
func MakeBuffer[F Float](channels, frames int, zeroLen bool) [][]F {
	buf := make([][]F, channels)
	for ch := range buf {
		if zeroLen {
			buf[ch] = make([]F, 0, frames)
		} else {
			buf[ch] = make([]F, frames)
		}
	}
	return buf
}

// ResizeBuffer grows or shrinks every channel of buf to the given frame
// count, reusing capacity where possible.
func ResizeBuffer[F Float](buf [][]F, frames int) {
	for ch := range buf {
		if cap(buf[ch]) >= frames {
			old := len(buf[ch])
			buf[ch] = buf[ch][:frames]
			for i := old; i < frames; i++ {
				buf[ch][i] = 0
			}
		} else {
			next := make([]F, frames)
			copy(next, buf[ch])
			buf[ch] = next
		}
	}
}

// BufferLength returns the frame count of the first channel, or zero for an
// empty buffer.
func BufferLength[F Float](buf [][]F) int {
	if len(buf) == 0 {
		return 0
	}
	return len(buf[0])
}

func validateInput[F Float](input [][]F, channels, frames int) error {
	if len(input) != channels {
		return fmt.Errorf("%w: got %d, want %d", ErrWrongChannelCount, len(input), channels)
	}
	for ch := range input {
		if len(input[ch]) != frames {
			return fmt.Errorf("%w: channel %d has %d, want %d", ErrWrongFrameCount, ch, len(input[ch]), frames)
		}
	}
	return nil
}

func validateOutput[F Float](output [][]F, channels, minFrames int) error {
	if len(output) != channels {
		return fmt.Errorf("%w: output has %d, want %d", ErrWrongChannelCount, len(output), channels)
	}
	for ch := range output {
		if len(output[ch]) < minFrames {
			return fmt.Errorf("%w: channel %d has %d, need %d", ErrInsufficientOutput, ch, len(output[ch]), minFrames)
		}
	}
	return nil
}

// processAlloc implements Process on top of ProcessInto.
func processAlloc[F Float](r Resampler[F], input [][]F) ([][]F, error) {
	out := MakeBuffer[F](r.NbrChannels(), r.OutputFramesNext(), false)
	_, framesOut, err := r.ProcessInto(input, out)
	if err != nil {
		return nil, err
	}
	for ch := range out {
		out[ch] = out[ch][:framesOut]
	}
	return out, nil
}

// processPartial implements ProcessPartial on top of ProcessInto by
// zero-padding the input up to the required length.
func processPartial[F Float](r Resampler[F], input [][]F) ([][]F, error) {
	channels := r.NbrChannels()
	frames := r.InputFramesNext()
	padded := MakeBuffer[F](channels, frames, false)
	if input != nil {
		if len(input) != channels {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrWrongChannelCount, len(input), channels)
		}
		for ch := range input {
			if len(input[ch]) > frames {
				return nil, fmt.Errorf("%w: channel %d has %d, at most %d allowed", ErrWrongFrameCount, ch, len(input[ch]), frames)
			}
			copy(padded[ch], input[ch])
		}
	}
	return processAlloc(r, padded)
}

func zeroFrames[F Float](input [][]F) bool {
	for ch := range input {
		if len(input[ch]) != 0 {
			return false
		}
	}
	return true
}
