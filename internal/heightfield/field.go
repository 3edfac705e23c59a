// Package heightfield holds the square grid of terrain heights shared by every
// generator, the renderer and the exporters.
package heightfield

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSize is returned when a field is created with a non-positive size or step.
var ErrInvalidSize = errors.New("heightfield: invalid size")

// Field is a size×size grid of heights with a fixed world-space spacing.
// Heights are stored row-major: (row, col) lives at row*size+col.
type Field struct {
	size    int
	step    float64
	heights []float64
}

// New allocates a zeroed field.
func New(size int, step float64) (*Field, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidSize, size)
	}
	if !(step > 0) {
		return nil, fmt.Errorf("%w: step %v", ErrInvalidSize, step)
	}
	return &Field{
		size:    size,
		step:    step,
		heights: make([]float64, size*size),
	}, nil
}

// FromHeights builds a field from row-major heights. The slice is copied.
func FromHeights(size int, step float64, heights []float64) (*Field, error) {
	f, err := New(size, step)
	if err != nil {
		return nil, err
	}
	if len(heights) != size*size {
		return nil, fmt.Errorf("%w: %d heights for size %d", ErrInvalidSize, len(heights), size)
	}
	copy(f.heights, heights)
	return f, nil
}

// Size returns the side length of the grid.
func (f *Field) Size() int { return f.size }

// Step returns the world-space distance between adjacent samples.
func (f *Field) Step() float64 { return f.step }

// Bounds returns the world-space extent along both horizontal axes.
// size/2 is integer division, so odd sizes are not centred exactly.
func (f *Field) Bounds() (min, max float64) {
	max = f.step * float64(f.size/2)
	return -max, max
}

// At returns the height at (row, col).
func (f *Field) At(row, col int) float64 {
	return f.heights[f.index(row, col)]
}

// Set writes the height at (row, col).
func (f *Field) Set(row, col int, h float64) {
	f.heights[f.index(row, col)] = h
}

// Add offsets the height at (row, col).
func (f *Field) Add(row, col int, dh float64) {
	f.heights[f.index(row, col)] += dh
}

// Flat returns the height at a raw row-major offset.
// Callers emulating flat-array addressing use this instead of At.
func (f *Field) Flat(offset int) float64 {
	return f.heights[offset]
}

func (f *Field) index(row, col int) int {
	if row < 0 || row >= f.size || col < 0 || col >= f.size {
		panic(fmt.Sprintf("heightfield: index (%d, %d) out of range [0, %d)", row, col, f.size))
	}
	return row*f.size + col
}

// Row returns a copy of one row.
func (f *Field) Row(row int) []float64 {
	start := f.index(row, 0)
	out := make([]float64, f.size)
	copy(out, f.heights[start:start+f.size])
	return out
}

// Heights returns a row-major copy of every height.
func (f *Field) Heights() []float64 {
	out := make([]float64, len(f.heights))
	copy(out, f.heights)
	return out
}

// Clone returns an independent copy.
func (f *Field) Clone() *Field {
	return &Field{
		size:    f.size,
		step:    f.step,
		heights: f.Heights(),
	}
}

// Sum returns the total of all heights.
func (f *Field) Sum() float64 {
	var s float64
	for _, h := range f.heights {
		s += h
	}
	return s
}

// MinMax returns the lowest and highest heights.
func (f *Field) MinMax() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, h := range f.heights {
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}
	return lo, hi
}

// Equal reports whether both fields have the same shape and bit-identical heights.
func (f *Field) Equal(other *Field) bool {
	if other == nil || f.size != other.size || f.step != other.step {
		return false
	}
	for i, h := range f.heights {
		if math.Float64bits(h) != math.Float64bits(other.heights[i]) {
			return false
		}
	}
	return true
}
