// Package mesh turns a heightfield into the line list drawn by the viewer.
package mesh

import (
	"github.com/chewxy/math32"

	"heightgen/internal/heightfield"
	"heightgen/internal/palette"
)

const (
	// FloatsPerVertex is position xyz followed by colour rgb.
	FloatsPerVertex = 6
	// VerticesPerQuad is two triangles of three segments, two vertices each.
	VerticesPerQuad = 12
)

// Line colour when height colouring is off.
var White = palette.ColorVec{1, 1, 1}

// VertexCount returns the number of line vertices for a size×size field.
func VertexCount(size int) int {
	if size < 2 {
		return 0
	}
	return (size - 1) * (size - 1) * VerticesPerQuad
}

// Lines builds the wireframe of f as GL_LINES vertices. Column c maps to
// x = min + c*step, row r to z = min + r*step and the height to y. Each quad
// is split into the triangles (r,c) (r+1,c) (r,c+1) and (r,c+1) (r+1,c)
// (r+1,c+1), each outlined with three segments.
func Lines(f *heightfield.Field, coloured bool) []float32 {
	size := f.Size()
	out := make([]float32, 0, VertexCount(size)*FloatsPerVertex)
	if size < 2 {
		return out
	}

	lo, _ := f.Bounds()
	step := float32(f.Step())
	base := float32(lo)
	hmin, hmax := f.MinMax()

	vertex := func(r, c int) [FloatsPerVertex]float32 {
		h := f.At(r, c)
		col := White
		if coloured {
			col = palette.At(palette.Normalize(h, hmin, hmax))
		}
		return [FloatsPerVertex]float32{
			base + float32(c)*step, float32(h), base + float32(r)*step,
			col[0], col[1], col[2],
		}
	}
	loop := func(a, b, c [FloatsPerVertex]float32) {
		out = append(out, a[:]...)
		out = append(out, b[:]...)
		out = append(out, b[:]...)
		out = append(out, c[:]...)
		out = append(out, c[:]...)
		out = append(out, a[:]...)
	}

	for r := 0; r < size-1; r++ {
		for c := 0; c < size-1; c++ {
			p00 := vertex(r, c)
			p10 := vertex(r+1, c)
			p01 := vertex(r, c+1)
			p11 := vertex(r+1, c+1)
			loop(p00, p10, p01)
			loop(p01, p10, p11)
		}
	}
	return out
}

// Bounds is the world-space box around a field.
type Bounds struct {
	Min, Max [3]float32
}

// Centre returns the middle of the box.
func (b Bounds) Centre() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Radius returns half the box diagonal.
func (b Bounds) Radius() float32 {
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	dz := b.Max[2] - b.Min[2]
	return math32.Sqrt(dx*dx+dy*dy+dz*dz) / 2
}

// Extent returns the world-space box covered by Lines(f).
func Extent(f *heightfield.Field) Bounds {
	lo, _ := f.Bounds()
	far := float32(lo) + float32(f.Size()-1)*float32(f.Step())
	hmin, hmax := f.MinMax()
	return Bounds{
		Min: [3]float32{float32(lo), float32(hmin), float32(lo)},
		Max: [3]float32{far, float32(hmax), far},
	}
}
