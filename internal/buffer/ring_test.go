package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteRead(t *testing.T) {
	r := NewRing[float64](8)
	r.Write([]float64{1, 2, 3})
	assert.Equal(t, 3, r.Available())

	dst := make([]float64, 2)
	n := r.ReadInto(dst)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float64{1, 2}, dst)
	assert.Equal(t, 1, r.Available())
}

func TestReadMoreThanAvailable(t *testing.T) {
	r := NewRing[float64](4)
	r.Write([]float64{1, 2})
	dst := make([]float64, 5)
	n := r.ReadInto(dst)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, r.Available())
}

func TestWrapAround(t *testing.T) {
	r := NewRing[float64](4)
	r.Write([]float64{1, 2, 3})
	dst := make([]float64, 2)
	r.ReadInto(dst)

	// Write crosses the physical end of the backing slice.
	r.Write([]float64{4, 5, 6})
	assert.Equal(t, 4, r.Available())

	out := make([]float64, 4)
	n := r.ReadInto(out)
	assert.Equal(t, 4, n)
	assert.Equal(t, []float64{3, 4, 5, 6}, out)
}

func TestGrow(t *testing.T) {
	r := NewRing[float32](2)
	samples := make([]float32, 100)
	for i := range samples {
		samples[i] = float32(i)
	}
	r.Write(samples[:50])
	r.Write(samples[50:])
	assert.Equal(t, 100, r.Available())

	out := make([]float32, 100)
	r.ReadInto(out)
	assert.Equal(t, samples, out)
}

func TestClear(t *testing.T) {
	r := NewRing[float64](4)
	r.Write([]float64{1, 2, 3})
	r.Clear()
	assert.Equal(t, 0, r.Available())

	r.Write([]float64{7})
	dst := make([]float64, 1)
	r.ReadInto(dst)
	assert.Equal(t, 7.0, dst[0])
}
