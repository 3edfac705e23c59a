package config

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	billy "gopkg.in/src-d/go-billy.v4"

	"heightgen/internal/terrain"
)

var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	DisallowUnknownFields:  true,
	TagKey:                 "json",
	CaseSensitive:          true,
	ValidateJsonRawMessage: false,
}.Froze()

// Grid sizes used when a run does not name one.
const (
	DefaultSize        = 50
	DefaultDiamondSize = 33
)

// RunConfig describes one generation run: what to build and where the
// timing and exports go.
type RunConfig struct {
	Algorithm string  `json:"algorithm"`
	Size      int     `json:"size"` // 0 picks a size suited to the algorithm
	Step      float64 `json:"step"`
	Seed      int64   `json:"seed"`

	// Smooth overrides the algorithm's default smoothing post-pass.
	Smooth     *bool              `json:"smooth,omitempty"`
	SmoothMode terrain.SmoothMode `json:"smoothMode"`

	Fault   terrain.FaultConfig   `json:"fault"`
	Diamond terrain.DiamondConfig `json:"diamond"`
	Erosion terrain.ErosionConfig `json:"erosion"`
	Noise   terrain.NoiseConfig   `json:"noise"`

	TimingLog string       `json:"timingLog"`
	Export    ExportConfig `json:"export"`
}

// ExportConfig selects output formats and destinations.
type ExportConfig struct {
	Dir      string `json:"dir"`
	JSON     bool   `json:"json"`
	PNG      bool   `json:"png"`
	TIFF     bool   `json:"tiff"`
	S3Bucket string `json:"s3Bucket"`
	S3Prefix string `json:"s3Prefix"`
	Region   string `json:"region"`
	// DynamoTable, when set, also records timing samples there.
	DynamoTable string `json:"dynamoTable"`
}

// DefaultRunConfig returns a 50×50 fault run with the default timing log.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Algorithm: string(terrain.AlgorithmFault),
		Step:      1,
		Seed:      1,
		Fault:     terrain.DefaultFaultConfig(),
		Diamond:   terrain.DefaultDiamondConfig(),
		Erosion:   terrain.DefaultErosionConfig(),
		Noise:     terrain.DefaultNoiseConfig(),
		TimingLog: "timing.txt",
		Export: ExportConfig{
			Dir:    "out",
			Region: "us-east-1",
		},
	}
}

// LoadRunConfig reads a JSON run config from fs. Fields missing from the
// file keep their defaults.
func LoadRunConfig(fs billy.Filesystem, path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	f, err := fs.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open run config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return cfg, fmt.Errorf("read run config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode run config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// SaveRunConfig writes cfg to fs as indented JSON.
func SaveRunConfig(fs billy.Filesystem, path string, cfg RunConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run config: %w", err)
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create run config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write run config %s: %w", path, err)
	}
	return f.Close()
}

// AlgorithmValue parses Algorithm.
func (c RunConfig) AlgorithmValue() (terrain.Algorithm, error) {
	return terrain.ParseAlgorithm(c.Algorithm)
}

// GridSize returns Size, or the default for the algorithm when Size is 0.
func (c RunConfig) GridSize() int {
	if c.Size != 0 {
		return c.Size
	}
	if c.Algorithm == string(terrain.AlgorithmDiamondSquare) {
		return DefaultDiamondSize
	}
	return DefaultSize
}

// Options converts the run into generator options seeded with Seed.
func (c RunConfig) Options() terrain.Options {
	algo, _ := c.AlgorithmValue()
	opts := terrain.DefaultOptions(algo)
	opts.Fault = c.Fault
	opts.Diamond = c.Diamond
	opts.Erosion = c.Erosion
	opts.Noise = c.Noise
	if c.Smooth != nil {
		if *c.Smooth {
			opts.Smooth = &terrain.SmoothConfig{}
		} else {
			opts.Smooth = nil
		}
	}
	if opts.Smooth != nil {
		opts.Smooth = &terrain.SmoothConfig{Mode: c.SmoothMode}
	}
	return opts.WithSeed(c.Seed)
}

// Generator builds the configured generator, validating everything first.
func (c RunConfig) Generator() (terrain.Generator, error) {
	algo, err := c.AlgorithmValue()
	if err != nil {
		return nil, err
	}
	return terrain.New(algo, c.GridSize(), c.Step, c.Options())
}

// Validate reports configuration errors without generating anything.
func (c RunConfig) Validate() error {
	_, err := c.Generator()
	return err
}
