// Package filter designs the oversampled windowed-sinc tap tables used by
// the interpolating resampler.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-stream-resampler/internal/simdops"
	"github.com/tphakala/go-stream-resampler/internal/window"
	"github.com/tphakala/simd/f64"
)

// Params describes an oversampled interpolation filter.
type Params struct {
	// Taps is the filter length per phase. Must be even and positive.
	Taps int
	// Oversampling is the number of phases (sub-sample offsets) in the table.
	Oversampling int
	// Cutoff is the relative cutoff frequency, 0 < Cutoff <= 1 of Nyquist.
	Cutoff float64
	// Window selects the window shape applied to the sinc.
	Window window.Function
}

// Validate checks the filter parameters.
func (p Params) Validate() error {
	if p.Taps <= 0 || p.Taps%2 != 0 {
		return fmt.Errorf("taps must be positive and even, got %d", p.Taps)
	}
	if p.Oversampling <= 0 {
		return fmt.Errorf("oversampling must be positive, got %d", p.Oversampling)
	}
	if p.Cutoff <= 0 || p.Cutoff > 1 {
		return fmt.Errorf("cutoff must be in (0, 1], got %v", p.Cutoff)
	}
	if !p.Window.Valid() {
		return fmt.Errorf("unknown window function %d", int(p.Window))
	}
	return nil
}

// sinc is the normalized sinc function sin(pi*x)/(pi*x).
func sinc(x float64) float64 {
	if x == 0 {
		return 1.0
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// MakeSincs builds the tap table: one windowed sinc of Taps*Oversampling
// points, split into Oversampling phase rows of Taps coefficients each and
// normalized to unity DC gain. The design runs in float64 regardless of F.
//
// Row s holds the taps for a fractional offset of (Oversampling-1-s) grid
// steps, so that larger subindexes reach further back in time.
func MakeSincs[F simdops.Float](p Params) ([][]F, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	totpoints := p.Taps * p.Oversampling
	win := window.Make(totpoints, p.Window)

	proto := make([]float64, totpoints)
	for x := range proto {
		t := (float64(x) - float64(totpoints)/2.0) * p.Cutoff / float64(p.Oversampling)
		proto[x] = win[x] * sinc(t) * p.Cutoff
	}

	// Normalize so each phase row sums to ~1.
	sum := f64.Sum(proto)
	norm := sum / float64(p.Oversampling)
	if norm != 0 {
		f64.Scale(proto, proto, 1.0/norm)
	}

	sincs := make([][]F, p.Oversampling)
	for n := 0; n < p.Oversampling; n++ {
		row := make([]F, p.Taps)
		for i := 0; i < p.Taps; i++ {
			row[i] = F(proto[p.Oversampling*i+n])
		}
		sincs[p.Oversampling-n-1] = row
	}
	return sincs, nil
}
