// Package window evaluates the window functions used for sinc filter design.
package window

import (
	"fmt"
	"math"

	"github.com/tphakala/go-stream-resampler/internal/mathutil"
)

// Function identifies a window shape.
type Function int

const (
	// Blackman is the classic three-term Blackman window.
	Blackman Function = iota
	// Blackman2 is the squared Blackman window, for steeper sidelobe decay.
	Blackman2
	// BlackmanHarris is the four-term Blackman-Harris window.
	BlackmanHarris
	// BlackmanHarris2 is the squared Blackman-Harris window.
	BlackmanHarris2
	// Hann is the raised-cosine window.
	Hann
	// Hann2 is the squared Hann window.
	Hann2
	// Kaiser is a Kaiser window with a fixed beta of 10.
	Kaiser
)

// kaiserBeta trades main lobe width against sidelobe level. Fixed here;
// the window choice itself is the quality knob.
const kaiserBeta = 10.0

func (f Function) String() string {
	switch f {
	case Blackman:
		return "Blackman"
	case Blackman2:
		return "Blackman2"
	case BlackmanHarris:
		return "BlackmanHarris"
	case BlackmanHarris2:
		return "BlackmanHarris2"
	case Hann:
		return "Hann"
	case Hann2:
		return "Hann2"
	case Kaiser:
		return "Kaiser"
	default:
		return fmt.Sprintf("Function(%d)", int(f))
	}
}

// Valid reports whether f names a known window shape.
func (f Function) Valid() bool {
	return f >= Blackman && f <= Kaiser
}

// Make evaluates the window over npoints samples. The periodic form is used
// so the peak lands exactly on npoints/2, matching the sinc center.
func Make(npoints int, f Function) []float64 {
	w := make([]float64, npoints)
	n := float64(npoints)
	for i := range w {
		x := 2.0 * math.Pi * float64(i) / n
		switch f {
		case Blackman:
			w[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2.0*x)
		case Blackman2:
			v := 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2.0*x)
			w[i] = v * v
		case BlackmanHarris:
			w[i] = 0.35875 - 0.48829*math.Cos(x) + 0.14128*math.Cos(2.0*x) - 0.01168*math.Cos(3.0*x)
		case BlackmanHarris2:
			v := 0.35875 - 0.48829*math.Cos(x) + 0.14128*math.Cos(2.0*x) - 0.01168*math.Cos(3.0*x)
			w[i] = v * v
		case Hann:
			w[i] = 0.5 - 0.5*math.Cos(x)
		case Hann2:
			v := 0.5 - 0.5*math.Cos(x)
			w[i] = v * v
		case Kaiser:
			t := (float64(i) - n/2.0) / (n / 2.0)
			w[i] = mathutil.BesselI0(kaiserBeta*math.Sqrt(1.0-t*t)) / mathutil.BesselI0(kaiserBeta)
		}
	}
	return w
}

// mainLobeWidth is the approximate half main-lobe width of each window in
// bins, used to estimate the transition bandwidth of the resulting filter.
func mainLobeWidth(f Function) float64 {
	switch f {
	case Hann:
		return 3.1
	case Hann2:
		return 4.0
	case Blackman:
		return 5.5
	case Blackman2:
		return 7.0
	case BlackmanHarris:
		return 7.9
	case BlackmanHarris2:
		return 10.0
	case Kaiser:
		return 6.4
	default:
		return 10.0
	}
}

// DefaultCutoff estimates a usable relative cutoff frequency for a windowed
// sinc filter with the given tap count, leaving room for the window's
// transition band below Nyquist.
func DefaultCutoff(taps int, f Function) float64 {
	cutoff := 1.0 - 2.0*mainLobeWidth(f)/float64(taps)
	if cutoff < 0.05 {
		cutoff = 0.05
	}
	if cutoff > 1.0 {
		cutoff = 1.0
	}
	return cutoff
}
