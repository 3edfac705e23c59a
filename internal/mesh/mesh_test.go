package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heightgen/internal/heightfield"
)

func vertexAt(lines []float32, i int) []float32 {
	return lines[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
}

// TestLinesSingleQuad verifies vertex order, positions and colour of one quad
func TestLinesSingleQuad(t *testing.T) {
	f, err := heightfield.FromHeights(2, 1, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	lines := Lines(f, false)
	require.Len(t, lines, VerticesPerQuad*FloatsPerVertex)

	// size 2, step 1: min = -1
	assert.Equal(t, []float32{-1, 1, -1, 1, 1, 1}, vertexAt(lines, 0)) // (0,0)
	assert.Equal(t, []float32{-1, 3, 0, 1, 1, 1}, vertexAt(lines, 1))  // (1,0)
	assert.Equal(t, []float32{0, 2, -1, 1, 1, 1}, vertexAt(lines, 3))  // (0,1)
	assert.Equal(t, vertexAt(lines, 0), vertexAt(lines, 5))            // loop closes
	assert.Equal(t, []float32{0, 4, 0, 1, 1, 1}, vertexAt(lines, 9))   // (1,1)
}

// TestVertexCount verifies the quad count formula and tiny grids
func TestVertexCount(t *testing.T) {
	assert.Equal(t, 0, VertexCount(1))
	assert.Equal(t, 12, VertexCount(2))
	assert.Equal(t, 49*49*12, VertexCount(50))

	f, err := heightfield.New(5, 0.5)
	require.NoError(t, err)
	assert.Len(t, Lines(f, true), VertexCount(5)*FloatsPerVertex)

	one, err := heightfield.New(1, 1)
	require.NoError(t, err)
	assert.Empty(t, Lines(one, true))
}

// TestLinesColoured verifies height colouring differs between low and high cells
func TestLinesColoured(t *testing.T) {
	f, err := heightfield.FromHeights(2, 1, []float64{0, 0, 0, 10})
	require.NoError(t, err)
	lines := Lines(f, true)
	low := vertexAt(lines, 0)[3:]
	high := vertexAt(lines, 9)[3:]
	assert.NotEqual(t, low, high)
}

// TestExtent verifies the world-space box and its derived centre and radius
func TestExtent(t *testing.T) {
	f, err := heightfield.FromHeights(3, 2, []float64{0, 0, 0, 0, 6, 0, 0, 0, -2})
	require.NoError(t, err)
	b := Extent(f)
	assert.Equal(t, [3]float32{-2, -2, -2}, b.Min)
	assert.Equal(t, [3]float32{2, 6, 2}, b.Max)
	assert.Equal(t, [3]float32{0, 2, 0}, b.Centre())
	assert.InDelta(t, 4.898979, b.Radius(), 1e-5)
}
