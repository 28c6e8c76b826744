// Package interp evaluates oversampled sinc filters against sample history.
// It provides a scalar reference implementation and a SIMD-backed one;
// the two are numerically interchangeable.
package interp

import (
	"github.com/tphakala/go-stream-resampler/internal/filter"
	"github.com/tphakala/go-stream-resampler/internal/simdops"
	"github.com/tphakala/go-stream-resampler/internal/window"
)

// Interpolator computes single interpolated values from a window of input
// history using a precomputed oversampled sinc table.
type Interpolator[F simdops.Float] interface {
	// Len returns the filter length per phase.
	Len() int
	// NbrSincs returns the number of phases in the table.
	NbrSincs() int
	// SincInterpolated returns the dot product of phase row subindex with
	// buffer[index : index+Len()]. The caller guarantees the range is valid.
	SincInterpolated(buffer []F, index, subindex int) F
}

type simdInterpolator[F simdops.Float] struct {
	sincs [][]F
	taps  int
	ops   *simdops.Ops[F]
}

func (p *simdInterpolator[F]) Len() int      { return p.taps }
func (p *simdInterpolator[F]) NbrSincs() int { return len(p.sincs) }

func (p *simdInterpolator[F]) SincInterpolated(buffer []F, index, subindex int) F {
	return p.ops.DotProductUnsafe(p.sincs[subindex], buffer[index:index+p.taps])
}

type scalarInterpolator[F simdops.Float] struct {
	sincs [][]F
	taps  int
}

func (p *scalarInterpolator[F]) Len() int      { return p.taps }
func (p *scalarInterpolator[F]) NbrSincs() int { return len(p.sincs) }

func (p *scalarInterpolator[F]) SincInterpolated(buffer []F, index, subindex int) F {
	row := p.sincs[subindex]
	seg := buffer[index : index+p.taps]
	var acc F
	for i, c := range row {
		acc += c * seg[i]
	}
	return acc
}

// New returns a SIMD-backed interpolator for the given filter design.
// The simd package falls back to pure Go on CPUs without vector support.
func New[F simdops.Float](taps, oversampling int, cutoff float64, win window.Function) (Interpolator[F], error) {
	sincs, err := filter.MakeSincs[F](filter.Params{
		Taps:         taps,
		Oversampling: oversampling,
		Cutoff:       cutoff,
		Window:       win,
	})
	if err != nil {
		return nil, err
	}
	return &simdInterpolator[F]{sincs: sincs, taps: taps, ops: simdops.For[F]()}, nil
}

// NewScalar returns the plain-Go reference interpolator, mainly for tests.
func NewScalar[F simdops.Float](taps, oversampling int, cutoff float64, win window.Function) (Interpolator[F], error) {
	sincs, err := filter.MakeSincs[F](filter.Params{
		Taps:         taps,
		Oversampling: oversampling,
		Cutoff:       cutoff,
		Window:       win,
	})
	if err != nil {
		return nil, err
	}
	return &scalarInterpolator[F]{sincs: sincs, taps: taps}, nil
}
