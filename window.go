package resampler

import "github.com/tphakala/go-stream-resampler/internal/window"

// WindowFunction selects the window applied to the sinc filter. The choice
// trades passband width against stopband attenuation; BlackmanHarris2 gives
// the cleanest stopband at the cost of a wider transition band.
type WindowFunction = window.Function

const (
	WindowBlackman        = window.Blackman
	WindowBlackman2       = window.Blackman2
	WindowBlackmanHarris  = window.BlackmanHarris
	WindowBlackmanHarris2 = window.BlackmanHarris2
	WindowHann            = window.Hann
	WindowHann2           = window.Hann2
	WindowKaiser          = window.Kaiser
)

// DefaultCutoff estimates a usable relative cutoff frequency for a sinc
// filter of the given half-length and window, leaving room for the window's
// transition band below Nyquist.
func DefaultCutoff(sincLen int, win WindowFunction) float64 {
	return window.DefaultCutoff(2*sincLen, win)
}
