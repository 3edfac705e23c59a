package terrain

import (
	"context"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"heightgen/internal/heightfield"
)

// sampler returns noise roughly in [-1, 1] at a point in cell space.
type sampler func(x, y float64) float64

// GenerateNoise builds a baseline field from octave-summed Perlin or
// OpenSimplex noise. Heights sit on the bottom of the world extent, like
// the seeded corners of the fault and diamond generators, and vary by
// cfg.Amplitude.
func GenerateNoise(size int, step float64, cfg NoiseConfig) (*heightfield.Field, error) {
	return GenerateNoiseContext(context.Background(), size, step, cfg)
}

// GenerateNoiseContext is GenerateNoise with cancellation between rows.
func GenerateNoiseContext(ctx context.Context, size int, step float64, cfg NoiseConfig) (*heightfield.Field, error) {
	if err := validateGrid(size, step); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var sample sampler
	switch cfg.Kind {
	case NoisePerlin:
		// go-perlin sums its own octaves.
		p := perlin.NewPerlin(2, 2, cfg.Octaves, cfg.Seed)
		sample = func(x, y float64) float64 {
			return p.Noise2D(x*cfg.Frequency, y*cfg.Frequency)
		}
	case NoiseSimplex:
		sample = simplexOctaves(opensimplex.New(cfg.Seed), cfg.Octaves, cfg.Frequency)
	default:
		return nil, configError("unknown noise kind %d", cfg.Kind)
	}

	f, err := heightfield.New(size, step)
	if err != nil {
		return nil, err
	}
	base, _ := f.Bounds()
	for r := 0; r < size; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for c := 0; c < size; c++ {
			f.Set(r, c, base+cfg.Amplitude*sample(float64(r), float64(c)))
		}
	}
	return f, nil
}

// simplexOctaves sums octaves with persistence 0.5 and lacunarity 2,
// normalised so the result stays within the single-octave range.
func simplexOctaves(n opensimplex.Noise, octaves int, freq float64) sampler {
	return func(x, y float64) float64 {
		var sum, norm float64
		amp, f := 1.0, freq
		for o := 0; o < octaves; o++ {
			sum += amp * n.Eval2(x*f, y*f)
			norm += amp
			amp *= 0.5
			f *= 2
		}
		return sum / norm
	}
}
