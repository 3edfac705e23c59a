package terrain

import (
	"context"

	"heightgen/internal/heightfield"
)

// Algorithm names a generator.
type Algorithm string

const (
	AlgorithmFault         Algorithm = "fault"
	AlgorithmDiamondSquare Algorithm = "diamond-square"
	AlgorithmErosion       Algorithm = "erosion"
	AlgorithmPerlin        Algorithm = "perlin"
	AlgorithmSimplex       Algorithm = "simplex"
)

var algorithms = []Algorithm{
	AlgorithmFault,
	AlgorithmDiamondSquare,
	AlgorithmErosion,
	AlgorithmPerlin,
	AlgorithmSimplex,
}

// Algorithms returns every known algorithm in cycling order.
func Algorithms() []Algorithm {
	out := make([]Algorithm, len(algorithms))
	copy(out, algorithms)
	return out
}

// ParseAlgorithm maps a name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range algorithms {
		if string(a) == name {
			return a, nil
		}
	}
	return "", configError("unknown algorithm %q", name)
}

// Next returns the algorithm after a, wrapping around.
func (a Algorithm) Next() Algorithm {
	for i, b := range algorithms {
		if a == b {
			return algorithms[(i+1)%len(algorithms)]
		}
	}
	return algorithms[0]
}

// Options carries every per-algorithm configuration. Only the one matching
// the chosen algorithm is read, except Erosion, which also reads Fault for
// its starting field.
type Options struct {
	Fault   FaultConfig
	Diamond DiamondConfig
	Erosion ErosionConfig
	Noise   NoiseConfig
	// Smooth, when set, runs a smoothing pass on the generated field.
	Smooth *SmoothConfig
}

// DefaultOptions returns default configs for every algorithm. Smoothing is
// enabled for diamond-square only.
func DefaultOptions(algo Algorithm) Options {
	o := Options{
		Fault:   DefaultFaultConfig(),
		Diamond: DefaultDiamondConfig(),
		Erosion: DefaultErosionConfig(),
		Noise:   DefaultNoiseConfig(),
	}
	if algo == AlgorithmDiamondSquare {
		o.Smooth = &SmoothConfig{Mode: SmoothFloat}
	}
	return o
}

// WithSeed returns a copy of o with every seed set to seed.
func (o Options) WithSeed(seed int64) Options {
	o.Fault.Seed = seed
	o.Diamond.Seed = seed
	o.Noise.Seed = seed
	return o
}

// Generator produces one field per call.
type Generator interface {
	Name() string
	Generate(ctx context.Context) (*heightfield.Field, error)
}

type generator struct {
	algo Algorithm
	size int
	step float64
	opts Options
}

// New returns a Generator for algo. Grid and algorithm configuration errors
// are reported here rather than on the first Generate call.
func New(algo Algorithm, size int, step float64, opts Options) (Generator, error) {
	if err := validateGrid(size, step); err != nil {
		return nil, err
	}
	switch algo {
	case AlgorithmFault:
		if err := opts.Fault.validate(); err != nil {
			return nil, err
		}
	case AlgorithmDiamondSquare:
		if !ValidDiamondSize(size) {
			return nil, configError("diamond-square size %d is not 2^k+1", size)
		}
		if err := opts.Diamond.validate(); err != nil {
			return nil, err
		}
	case AlgorithmErosion:
		if size < 3 {
			return nil, configError("erosion size %d has no interior (need >= 3)", size)
		}
		if err := opts.Fault.validate(); err != nil {
			return nil, err
		}
		if err := opts.Erosion.validate(); err != nil {
			return nil, err
		}
	case AlgorithmPerlin, AlgorithmSimplex:
		if err := opts.Noise.validate(); err != nil {
			return nil, err
		}
	default:
		return nil, configError("unknown algorithm %q", algo)
	}
	if opts.Smooth != nil && opts.Smooth.Mode != SmoothFloat && opts.Smooth.Mode != SmoothLegacy {
		return nil, configError("unknown smoothing mode %d", opts.Smooth.Mode)
	}
	return &generator{algo: algo, size: size, step: step, opts: opts}, nil
}

func (g *generator) Name() string { return string(g.algo) }

func (g *generator) Generate(ctx context.Context) (*heightfield.Field, error) {
	var (
		f   *heightfield.Field
		err error
	)
	switch g.algo {
	case AlgorithmFault:
		f, err = GenerateFaultContext(ctx, g.size, g.step, g.opts.Fault)
	case AlgorithmDiamondSquare:
		f, err = GenerateDiamondSquareContext(ctx, g.size, g.step, g.opts.Diamond)
	case AlgorithmErosion:
		f, err = GenerateErodedFault(ctx, g.size, g.step, g.opts.Fault, g.opts.Erosion)
	case AlgorithmPerlin:
		cfg := g.opts.Noise
		cfg.Kind = NoisePerlin
		f, err = GenerateNoiseContext(ctx, g.size, g.step, cfg)
	case AlgorithmSimplex:
		cfg := g.opts.Noise
		cfg.Kind = NoiseSimplex
		f, err = GenerateNoiseContext(ctx, g.size, g.step, cfg)
	}
	if err != nil {
		return nil, err
	}
	if g.opts.Smooth != nil {
		f = Smooth(f, *g.opts.Smooth)
	}
	return f, nil
}
