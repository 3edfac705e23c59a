package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-billy.v4/memfs"
	"gopkg.in/src-d/go-billy.v4/util"

	"heightgen/internal/terrain"
)

// TestViewSettingsClamp verifies setters clamp to sane ranges
func TestViewSettingsClamp(t *testing.T) {
	defer SetFPSLimit(GetFPSLimit())
	defer SetOrbitSpeed(GetOrbitSpeed())

	SetFPSLimit(3)
	assert.Equal(t, 10, GetFPSLimit())
	SetFPSLimit(1000)
	assert.Equal(t, 240, GetFPSLimit())
	SetFPSLimit(-5)
	assert.Equal(t, 0, GetFPSLimit())

	SetOrbitSpeed(1)
	assert.Equal(t, float32(5), GetOrbitSpeed())
	SetOrbitSpeed(1000)
	assert.Equal(t, float32(360), GetOrbitSpeed())
}

// TestViewSettingsToggles verifies boolean settings round-trip
func TestViewSettingsToggles(t *testing.T) {
	defer SetHeightColour(GetHeightColour())
	defer SetSmoothing(GetSmoothing())

	SetHeightColour(false)
	assert.False(t, GetHeightColour())
	SetSmoothing(true)
	assert.True(t, GetSmoothing())
}

// TestDefaultRunConfigValid verifies the defaults describe a runnable fault job
func TestDefaultRunConfigValid(t *testing.T) {
	cfg := DefaultRunConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultSize, cfg.GridSize())

	cfg.Algorithm = string(terrain.AlgorithmDiamondSquare)
	assert.Equal(t, DefaultDiamondSize, cfg.GridSize())
	require.NoError(t, cfg.Validate())
}

// TestLoadRunConfigPartial verifies missing fields keep defaults and enums decode by name
func TestLoadRunConfigPartial(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "run.json", []byte(`{
		"algorithm": "diamond-square",
		"size": 65,
		"seed": 7,
		"smoothMode": "legacy",
		"diamond": {"range": 10, "decay": 0.5, "wrap": "symmetric"}
	}`), 0644))

	cfg, err := LoadRunConfig(fs, "run.json")
	require.NoError(t, err)
	assert.Equal(t, 65, cfg.GridSize())
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, terrain.WrapSymmetric, cfg.Diamond.Wrap)
	assert.Equal(t, 1.0, cfg.Step)
	assert.Equal(t, "timing.txt", cfg.TimingLog)

	opts := cfg.Options()
	require.NotNil(t, opts.Smooth)
	assert.Equal(t, terrain.SmoothLegacy, opts.Smooth.Mode)
	assert.Equal(t, int64(7), opts.Diamond.Seed)
	assert.Equal(t, 10.0, opts.Diamond.Range)
}

// TestLoadRunConfigErrors verifies missing files, unknown fields and bad runs fail
func TestLoadRunConfigErrors(t *testing.T) {
	fs := memfs.New()
	_, err := LoadRunConfig(fs, "missing.json")
	assert.Error(t, err)

	require.NoError(t, util.WriteFile(fs, "unknown.json", []byte(`{"colour": "red"}`), 0644))
	_, err = LoadRunConfig(fs, "unknown.json")
	assert.Error(t, err)

	require.NoError(t, util.WriteFile(fs, "bad.json", []byte(`{"algorithm": "diamond-square", "size": 10}`), 0644))
	_, err = LoadRunConfig(fs, "bad.json")
	assert.ErrorIs(t, err, terrain.ErrConfig)

	require.NoError(t, util.WriteFile(fs, "algo.json", []byte(`{"algorithm": "voronoi"}`), 0644))
	_, err = LoadRunConfig(fs, "algo.json")
	assert.ErrorIs(t, err, terrain.ErrConfig)
}

// TestSmoothOverride verifies the explicit smoothing flag beats the algorithm default
func TestSmoothOverride(t *testing.T) {
	cfg := DefaultRunConfig()
	assert.Nil(t, cfg.Options().Smooth)

	on := true
	cfg.Smooth = &on
	assert.NotNil(t, cfg.Options().Smooth)

	off := false
	cfg.Algorithm = string(terrain.AlgorithmDiamondSquare)
	cfg.Smooth = &off
	assert.Nil(t, cfg.Options().Smooth)
}

// TestSaveRunConfig verifies a saved config loads back identically
func TestSaveRunConfig(t *testing.T) {
	fs := memfs.New()
	cfg := DefaultRunConfig()
	cfg.Algorithm = string(terrain.AlgorithmSimplex)
	cfg.Noise.Kind = terrain.NoiseSimplex
	cfg.Export.S3Bucket = "terrain-snapshots"

	require.NoError(t, SaveRunConfig(fs, "saved.json", cfg))
	got, err := LoadRunConfig(fs, "saved.json")
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

// TestRunFlagsOverrideFile verifies explicit flags beat the config file and unset flags do not
func TestRunFlagsOverrideFile(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "run.json", []byte(`{"algorithm":"erosion","seed":5,"step":2}`), 0644))

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	rf := BindRunFlags(set)
	require.NoError(t, set.Parse([]string{"-config", "run.json", "-seed", "9", "-smooth"}))

	cfg, err := rf.Resolve(set, fs)
	require.NoError(t, err)
	assert.Equal(t, "erosion", cfg.Algorithm)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 2.0, cfg.Step)
	require.NotNil(t, cfg.Smooth)
	assert.True(t, *cfg.Smooth)
	assert.Equal(t, "timing.txt", cfg.TimingLog)
}

// TestRunFlagsWithoutFile verifies flags alone build a valid run
func TestRunFlagsWithoutFile(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	rf := BindRunFlags(set)
	require.NoError(t, set.Parse([]string{"-algorithm", "diamond-square"}))

	cfg, err := rf.Resolve(set, memfs.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultDiamondSize, cfg.GridSize())
	assert.Nil(t, cfg.Smooth)

	set = flag.NewFlagSet("test", flag.ContinueOnError)
	rf = BindRunFlags(set)
	require.NoError(t, set.Parse([]string{"-algorithm", "diamond-square", "-size", "10"}))
	_, err = rf.Resolve(set, memfs.New())
	assert.ErrorIs(t, err, terrain.ErrConfig)
}

// TestRunFlagsErosionPreset verifies -erosion swaps in a named preset and keeps the file's neighbour lookup
func TestRunFlagsErosionPreset(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "run.json",
		[]byte(`{"algorithm":"erosion","erosion":{"iterations":7,"rainfall":0.5,"solubility":0.01,"evaporation":0.9,"diagonalWaterLookup":true}}`), 0644))

	for name, want := range map[string]terrain.ErosionConfig{
		"light":   terrain.LightErosion(),
		"default": terrain.DefaultErosionConfig(),
		"heavy":   terrain.HeavyErosion(),
	} {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		rf := BindRunFlags(set)
		require.NoError(t, set.Parse([]string{"-config", "run.json", "-erosion", name}))

		cfg, err := rf.Resolve(set, fs)
		require.NoError(t, err, name)
		want.DiagonalWaterLookup = true
		assert.Equal(t, want, cfg.Erosion, name)
		assert.Equal(t, want, cfg.Options().Erosion, name)
	}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	rf := BindRunFlags(set)
	require.NoError(t, set.Parse([]string{"-config", "run.json"}))
	cfg, err := rf.Resolve(set, fs)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Erosion.Iterations)

	set = flag.NewFlagSet("test", flag.ContinueOnError)
	rf = BindRunFlags(set)
	require.NoError(t, set.Parse([]string{"-erosion", "torrential"}))
	_, err = rf.Resolve(set, memfs.New())
	assert.ErrorIs(t, err, terrain.ErrConfig)
}
