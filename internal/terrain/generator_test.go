package terrain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseAlgorithm verifies every listed name parses and unknown names fail
func TestParseAlgorithm(t *testing.T) {
	for _, a := range Algorithms() {
		got, err := ParseAlgorithm(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAlgorithm("voronoi")
	assert.ErrorIs(t, err, ErrConfig)
}

// TestAlgorithmNext verifies cycling visits every algorithm and wraps
func TestAlgorithmNext(t *testing.T) {
	seen := map[Algorithm]bool{}
	a := AlgorithmFault
	for range Algorithms() {
		seen[a] = true
		a = a.Next()
	}
	assert.Equal(t, AlgorithmFault, a)
	assert.Len(t, seen, len(Algorithms()))
	assert.Equal(t, AlgorithmFault, Algorithm("bogus").Next())
}

// TestDefaultOptionsSmoothing verifies smoothing defaults on for diamond-square only
func TestDefaultOptionsSmoothing(t *testing.T) {
	assert.NotNil(t, DefaultOptions(AlgorithmDiamondSquare).Smooth)
	assert.Nil(t, DefaultOptions(AlgorithmFault).Smooth)
	assert.Nil(t, DefaultOptions(AlgorithmErosion).Smooth)

	o := DefaultOptions(AlgorithmFault).WithSeed(9)
	assert.Equal(t, int64(9), o.Fault.Seed)
	assert.Equal(t, int64(9), o.Diamond.Seed)
	assert.Equal(t, int64(9), o.Noise.Seed)
}

// TestGeneratorDispatch verifies each algorithm matches its direct entry point
func TestGeneratorDispatch(t *testing.T) {
	ctx := context.Background()
	const size = 17

	for _, algo := range Algorithms() {
		opts := DefaultOptions(algo).WithSeed(3)
		opts.Erosion.Iterations = 20

		g, err := New(algo, size, 1, opts)
		require.NoError(t, err, algo)
		assert.Equal(t, string(algo), g.Name())

		got, err := g.Generate(ctx)
		require.NoError(t, err, algo)
		assert.Equal(t, size, got.Size())
		assert.True(t, allFinite(got), algo)
	}

	opts := DefaultOptions(AlgorithmDiamondSquare).WithSeed(3)
	g, err := New(AlgorithmDiamondSquare, size, 1, opts)
	require.NoError(t, err)
	got, err := g.Generate(ctx)
	require.NoError(t, err)
	raw, err := GenerateDiamondSquare(size, 1, opts.Diamond)
	require.NoError(t, err)
	assert.True(t, Smooth(raw, *opts.Smooth).Equal(got))
}

// TestGeneratorRejects verifies configuration errors surface from New
func TestGeneratorRejects(t *testing.T) {
	_, err := New(AlgorithmDiamondSquare, 10, 1, DefaultOptions(AlgorithmDiamondSquare))
	assert.ErrorIs(t, err, ErrConfig)

	_, err = New(AlgorithmErosion, 2, 1, DefaultOptions(AlgorithmErosion))
	assert.ErrorIs(t, err, ErrConfig)

	_, err = New("bogus", 9, 1, Options{})
	assert.ErrorIs(t, err, ErrConfig)

	_, err = New(AlgorithmFault, 9, -1, DefaultOptions(AlgorithmFault))
	assert.ErrorIs(t, err, ErrConfig)

	opts := DefaultOptions(AlgorithmFault)
	opts.Smooth = &SmoothConfig{Mode: SmoothMode(5)}
	_, err = New(AlgorithmFault, 9, 1, opts)
	assert.ErrorIs(t, err, ErrConfig)
}
