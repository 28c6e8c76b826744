package resampler

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/tphakala/simd/c128"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/go-stream-resampler/internal/buffer"
	"github.com/tphakala/go-stream-resampler/internal/filter"
	"github.com/tphakala/go-stream-resampler/internal/mathutil"
	"github.com/tphakala/go-stream-resampler/internal/window"
)

// fftKernelTaps is the anti-alias kernel length for the FFT engine. It must
// stay well below the input block size so the circular convolution of each
// padded block remains linear.
const fftKernelTaps = 128

// Fft is a synchronous resampler for fixed rational ratios. The ratio
// fsOut/fsIn is reduced by their greatest common divisor to p/q; every call
// consumes exactly nIn = q*k input frames and produces nOut = p*k output
// frames. Resampling happens in the frequency domain: each input block is
// zero-padded to twice its length, transformed, multiplied by a windowed-sinc
// anti-alias kernel, converted to the output spectrum size and inverse
// transformed, with the block tail carried into the next call (overlap-add).
//
// The ratio cannot change after construction. Not safe for concurrent use.
type Fft[F Float] struct {
	nbrChannels int
	fsIn, fsOut int
	p, q        int
	nIn, nOut   int

	fftIn  *fourier.FFT
	fftOut *fourier.FFT

	// kernelFFT is the half spectrum of the anti-alias kernel with the
	// inverse transform scale folded in.
	kernelFFT []complex128
	kernelLen int

	inBlock     []float64
	outBlock    []float64
	spectrumIn  []complex128
	spectrumOut []complex128

	// overlap holds the per-channel tail of the previous inverse transform.
	overlap [][]F
}

// NewFft creates a synchronous resampler converting from fsIn to fsOut Hz.
// chunkSize is a target input block length; the actual block is the nearest
// multiple of the reduced ratio denominator at or above it, reported by
// InputFramesNext.
func NewFft[F Float](fsIn, fsOut, chunkSize, channels int) (*Fft[F], error) {
	if fsIn <= 0 || fsOut <= 0 {
		return nil, fmt.Errorf("%w: sample rates must be positive, got %d and %d", ErrInvalidConfig, fsIn, fsOut)
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, chunkSize)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channel count must be positive, got %d", ErrInvalidConfig, channels)
	}

	g := mathutil.Gcd(fsIn, fsOut)
	q := fsIn / g
	p := fsOut / g
	k := (chunkSize + q - 1) / q
	nIn := k * q
	nOut := k * p

	kernelLen := fftKernelTaps
	if kernelLen > nIn {
		kernelLen = nIn &^ 1
	}
	if kernelLen < 2 {
		return nil, fmt.Errorf("%w: block size %d too small for the anti-alias kernel", ErrInvalidConfig, nIn)
	}

	cutoff := window.DefaultCutoff(kernelLen, window.BlackmanHarris2)
	// Downsampling moves the anti-alias band to the output Nyquist.
	if p < q {
		cutoff *= float64(p) / float64(q)
	}
	taps, err := filter.MakeSincs[float64](filter.Params{
		Taps:         kernelLen,
		Oversampling: 1,
		Cutoff:       cutoff,
		Window:       window.BlackmanHarris2,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fftIn := fourier.NewFFT(2 * nIn)
	fftOut := fourier.NewFFT(2 * nOut)

	kernelPadded := make([]float64, 2*nIn)
	copy(kernelPadded, taps[0])
	kernelFFT := fftIn.Coefficients(nil, kernelPadded)
	// gonum's inverse transform is unnormalized; fold the 1/(2*nIn) scale
	// into the kernel spectrum.
	scale := complex(1.0/float64(2*nIn), 0)
	for i := range kernelFFT {
		kernelFFT[i] *= scale
	}

	f := &Fft[F]{
		nbrChannels: channels,
		fsIn:        fsIn,
		fsOut:       fsOut,
		p:           p,
		q:           q,
		nIn:         nIn,
		nOut:        nOut,
		fftIn:       fftIn,
		fftOut:      fftOut,
		kernelFFT:   kernelFFT,
		kernelLen:   kernelLen,
		inBlock:     make([]float64, 2*nIn),
		outBlock:    make([]float64, 2*nOut),
		spectrumIn:  make([]complex128, nIn+1),
		spectrumOut: make([]complex128, nOut+1),
		overlap:     make([][]F, channels),
	}
	for ch := range f.overlap {
		f.overlap[ch] = make([]F, nOut)
	}

	logrus.WithFields(logrus.Fields{
		"fs_in":      fsIn,
		"fs_out":     fsOut,
		"ratio":      fmt.Sprintf("%d/%d", p, q),
		"n_in":       nIn,
		"n_out":      nOut,
		"kernel_len": kernelLen,
		"channels":   channels,
	}).Debug("created fft resampler")

	return f, nil
}

// Process implements Resampler.
func (f *Fft[F]) Process(input [][]F) ([][]F, error) {
	return processAlloc[F](f, input)
}

// ProcessPartial implements Resampler.
func (f *Fft[F]) ProcessPartial(input [][]F) ([][]F, error) {
	return processPartial[F](f, input)
}

// ProcessInto implements Resampler.
func (f *Fft[F]) ProcessInto(input, output [][]F) (int, int, error) {
	if err := validateInput(input, f.nbrChannels, f.nIn); err != nil {
		return 0, 0, err
	}
	if err := validateOutput(output, f.nbrChannels, f.nOut); err != nil {
		return 0, 0, err
	}
	for ch := range input {
		f.resampleBlock(input[ch], output[ch], f.overlap[ch])
	}
	return f.nIn, f.nOut, nil
}

// resampleBlock converts one channel block. The first nOut samples of the
// inverse transform plus the previous tail form the output; the second half
// becomes the next tail.
func (f *Fft[F]) resampleBlock(in, out []F, overlap []F) {
	for i := 0; i < f.nIn; i++ {
		f.inBlock[i] = float64(in[i])
	}
	for i := f.nIn; i < 2*f.nIn; i++ {
		f.inBlock[i] = 0
	}

	f.spectrumIn = f.fftIn.Coefficients(f.spectrumIn, f.inBlock)
	c128.Mul(f.spectrumIn, f.spectrumIn, f.kernelFFT)

	// Translate the half spectrum to the output size: truncate when
	// downsampling, zero-pad when upsampling. The shared Nyquist bin must
	// stay real to keep the spectrum Hermitian.
	nBins := f.nIn + 1
	if f.nOut+1 < nBins {
		nBins = f.nOut + 1
	}
	copy(f.spectrumOut[:nBins], f.spectrumIn[:nBins])
	for i := nBins; i <= f.nOut; i++ {
		f.spectrumOut[i] = 0
	}
	last := f.spectrumOut[f.nOut]
	f.spectrumOut[f.nOut] = complex(real(last), 0)

	f.outBlock = f.fftOut.Sequence(f.outBlock, f.spectrumOut)

	for i := 0; i < f.nOut; i++ {
		out[i] = F(f.outBlock[i]) + overlap[i]
	}
	for i := 0; i < f.nOut; i++ {
		overlap[i] = F(f.outBlock[f.nOut+i])
	}
}

// InputFramesNext implements Resampler.
func (f *Fft[F]) InputFramesNext() int { return f.nIn }

// InputFramesMax implements Resampler.
func (f *Fft[F]) InputFramesMax() int { return f.nIn }

// OutputFramesNext implements Resampler.
func (f *Fft[F]) OutputFramesNext() int { return f.nOut }

// OutputFramesMax implements Resampler.
func (f *Fft[F]) OutputFramesMax() int { return f.nOut }

// NbrChannels implements Resampler.
func (f *Fft[F]) NbrChannels() int { return f.nbrChannels }

// OutputDelay implements Resampler.
func (f *Fft[F]) OutputDelay() int {
	return int(math.Round(float64(f.kernelLen) / 2.0 * float64(f.p) / float64(f.q)))
}

// SetResampleRatio implements Resampler. The ratio of a synchronous
// resampler is fixed at construction.
func (f *Fft[F]) SetResampleRatio(ratio float64, ramp bool) error {
	return fmt.Errorf("%w: fixed at %d/%d", ErrSyncNotAdjustable, f.p, f.q)
}

// SetResampleRatioRelative implements Resampler.
func (f *Fft[F]) SetResampleRatioRelative(rel float64, ramp bool) error {
	return fmt.Errorf("%w: fixed at %d/%d", ErrSyncNotAdjustable, f.p, f.q)
}

// SetChunkSize implements Resampler. The block size is fixed by the reduced
// ratio.
func (f *Fft[F]) SetChunkSize(frames int) error {
	return fmt.Errorf("%w: block size is fixed at %d", ErrChunkSizeNotAdjustable, f.nIn)
}

// Reset implements Resampler.
func (f *Fft[F]) Reset() {
	for ch := range f.overlap {
		for i := range f.overlap[ch] {
			f.overlap[ch][i] = 0
		}
	}
}

// FftFixedIn wraps the block-exact Fft engine behind a caller-chosen fixed
// input chunk size. Input is accumulated in per-channel ring buffers and
// processed whenever whole blocks are available, so the output length varies
// from call to call but is always exactly OutputFramesNext.
type FftFixedIn[F Float] struct {
	inner        *Fft[F]
	chunkSize    int
	maxChunkSize int
	pending      []*buffer.Ring[F]
	blockIn      [][]F
}

// NewFftFixedIn creates a synchronous resampler that accepts chunkSize input
// frames per call regardless of the rational ratio's block size.
func NewFftFixedIn[F Float](fsIn, fsOut, chunkSize, channels int) (*FftFixedIn[F], error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, chunkSize)
	}
	inner, err := NewFft[F](fsIn, fsOut, chunkSize, channels)
	if err != nil {
		return nil, err
	}
	r := &FftFixedIn[F]{
		inner:        inner,
		chunkSize:    chunkSize,
		maxChunkSize: chunkSize,
		pending:      make([]*buffer.Ring[F], channels),
		blockIn:      make([][]F, channels),
	}
	for ch := 0; ch < channels; ch++ {
		r.pending[ch] = buffer.NewRing[F](inner.nIn + chunkSize)
		r.blockIn[ch] = make([]F, inner.nIn)
	}
	return r, nil
}

// Process implements Resampler.
func (r *FftFixedIn[F]) Process(input [][]F) ([][]F, error) {
	return processAlloc[F](r, input)
}

// ProcessPartial implements Resampler.
func (r *FftFixedIn[F]) ProcessPartial(input [][]F) ([][]F, error) {
	return processPartial[F](r, input)
}

// ProcessInto implements Resampler.
func (r *FftFixedIn[F]) ProcessInto(input, output [][]F) (int, int, error) {
	if err := validateInput(input, r.inner.nbrChannels, r.chunkSize); err != nil {
		return 0, 0, err
	}
	blocks := (r.pending[0].Available() + r.chunkSize) / r.inner.nIn
	framesOut := blocks * r.inner.nOut
	if err := validateOutput(output, r.inner.nbrChannels, framesOut); err != nil {
		return 0, 0, err
	}

	for ch := range input {
		r.pending[ch].Write(input[ch])
	}
	for b := 0; b < blocks; b++ {
		for ch := range r.pending {
			r.pending[ch].ReadInto(r.blockIn[ch])
			r.inner.resampleBlock(r.blockIn[ch], output[ch][b*r.inner.nOut:(b+1)*r.inner.nOut], r.inner.overlap[ch])
		}
	}
	return r.chunkSize, framesOut, nil
}

// InputFramesNext implements Resampler.
func (r *FftFixedIn[F]) InputFramesNext() int { return r.chunkSize }

// InputFramesMax implements Resampler.
func (r *FftFixedIn[F]) InputFramesMax() int { return r.maxChunkSize }

// OutputFramesNext implements Resampler.
func (r *FftFixedIn[F]) OutputFramesNext() int {
	return (r.pending[0].Available() + r.chunkSize) / r.inner.nIn * r.inner.nOut
}

// OutputFramesMax implements Resampler.
func (r *FftFixedIn[F]) OutputFramesMax() int {
	return (r.inner.nIn - 1 + r.maxChunkSize) / r.inner.nIn * r.inner.nOut
}

// NbrChannels implements Resampler.
func (r *FftFixedIn[F]) NbrChannels() int { return r.inner.nbrChannels }

// OutputDelay implements Resampler.
func (r *FftFixedIn[F]) OutputDelay() int { return r.inner.OutputDelay() }

// SetResampleRatio implements Resampler.
func (r *FftFixedIn[F]) SetResampleRatio(ratio float64, ramp bool) error {
	return r.inner.SetResampleRatio(ratio, ramp)
}

// SetResampleRatioRelative implements Resampler.
func (r *FftFixedIn[F]) SetResampleRatioRelative(rel float64, ramp bool) error {
	return r.inner.SetResampleRatioRelative(rel, ramp)
}

// SetChunkSize implements Resampler. The chunk size can be lowered at any
// time, up to the construction value.
func (r *FftFixedIn[F]) SetChunkSize(frames int) error {
	if frames <= 0 || frames > r.maxChunkSize {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidChunkSize, frames, r.maxChunkSize)
	}
	r.chunkSize = frames
	return nil
}

// Reset implements Resampler.
func (r *FftFixedIn[F]) Reset() {
	r.inner.Reset()
	for ch := range r.pending {
		r.pending[ch].Clear()
	}
	r.chunkSize = r.maxChunkSize
}
