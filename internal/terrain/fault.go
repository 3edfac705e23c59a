package terrain

import (
	"context"
	"math"

	"heightgen/internal/heightfield"
	"heightgen/internal/random"
)

// GenerateFault builds a size×size field by fault formation: seeded corners,
// then cfg.Iterations random lines that raise one side of the grid and lower
// the other by cfg.Displacement.
func GenerateFault(size int, step float64, cfg FaultConfig) (*heightfield.Field, error) {
	return GenerateFaultContext(context.Background(), size, step, cfg)
}

// GenerateFaultContext is GenerateFault with cancellation between passes.
func GenerateFaultContext(ctx context.Context, size int, step float64, cfg FaultConfig) (*heightfield.Field, error) {
	if err := validateGrid(size, step); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	f, err := heightfield.New(size, step)
	if err != nil {
		return nil, err
	}
	rng := random.New(cfg.Seed)
	seedCorners(f, rng)
	if err := applyFaults(ctx, f, rng, cfg); err != nil {
		return nil, err
	}
	return f, nil
}

// seedCorners places each corner at the bottom of the world extent plus a
// draw in [-1, 1). Draw order: (0,0), (0,n), (n,n), (n,0).
func seedCorners(f *heightfield.Field, rng *random.Bounded) {
	base, _ := f.Bounds()
	n := f.Size() - 1
	f.Set(0, 0, base+rng.Next(2))
	f.Set(0, n, base+rng.Next(2))
	f.Set(n, n, base+rng.Next(2))
	f.Set(n, 0, base+rng.Next(2))
}

func applyFaults(ctx context.Context, f *heightfield.Field, rng *random.Bounded, cfg FaultConfig) error {
	size := f.Size()
	half := float64(size / 2)
	// Offsets span the half-diagonal so some lines miss the grid entirely.
	reach := math.Sqrt(float64(size*size) / 2)

	for i := 0; i < cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		a := math.Cos(rng.Next(100))
		b := math.Sin(rng.Next(100))
		c := rng.Uniform()*2*reach - reach

		for r := 0; r < size; r++ {
			dr := a * (float64(r) - half)
			for t := 0; t < size; t++ {
				if dr+b*(float64(t)-half)+c > 0 {
					f.Add(r, t, cfg.Displacement)
				} else {
					f.Add(r, t, -cfg.Displacement)
				}
			}
		}
	}
	return nil
}
