package terrain

import (
	"context"
	"math"

	"heightgen/internal/heightfield"
	"heightgen/internal/random"
)

// ValidDiamondSize reports whether size is 2^k+1 for some k >= 1.
func ValidDiamondSize(size int) bool {
	if size < 3 {
		return false
	}
	n := size - 1
	return n&(n-1) == 0
}

// GenerateDiamondSquare builds a field by midpoint displacement. size must be
// 2^k+1; anything else fails with ErrConfig before a field is allocated.
func GenerateDiamondSquare(size int, step float64, cfg DiamondConfig) (*heightfield.Field, error) {
	return GenerateDiamondSquareContext(context.Background(), size, step, cfg)
}

// GenerateDiamondSquareContext is GenerateDiamondSquare with cancellation between passes.
func GenerateDiamondSquareContext(ctx context.Context, size int, step float64, cfg DiamondConfig) (*heightfield.Field, error) {
	if err := validateGrid(size, step); err != nil {
		return nil, err
	}
	if !ValidDiamondSize(size) {
		return nil, configError("diamond-square size %d is not 2^k+1", size)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	f, err := heightfield.New(size, step)
	if err != nil {
		return nil, err
	}
	ds := &diamondSquare{
		f:            f,
		size:         size,
		rng:          random.New(cfg.Seed),
		wrap:         cfg.Wrap,
		integerRange: cfg.IntegerRange,
	}
	seedCorners(f, ds.rng)

	span := cfg.Range
	for incr := size - 1; incr > 1; incr /= 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := 0; i < size-2; i += incr {
			for j := 0; j < size-2; j += incr {
				ds.diamond(i, j, incr, span)
			}
		}
		for i := 0; i < size-2; i += incr {
			for j := 0; j < size-2; j += incr {
				ds.square(i, j, incr, span)
			}
		}
		span *= cfg.Decay
	}
	return f, nil
}

type diamondSquare struct {
	f            *heightfield.Field
	size         int
	rng          *random.Bounded
	wrap         WrapMode
	integerRange bool
}

// height reads (i, j), folding out-of-range coordinates back by size-1.
func (d *diamondSquare) height(i, j int) float64 {
	n := d.size - 1
	if d.wrap == WrapSymmetric {
		return d.f.At(fold(i, n), fold(j, n))
	}
	i = fold(i, n)
	if j > n {
		j -= n
	}
	// Negative columns are not folded; they address the previous row's tail.
	return d.f.Flat(i*d.size + j)
}

func fold(i, n int) int {
	if i > n {
		return i - n
	} else if i < 0 {
		return i + n
	}
	return i
}

func (d *diamondSquare) displace(span float64) float64 {
	if d.integerRange {
		span = math.Trunc(span)
	}
	return d.rng.Next(span)
}

// diamond sets the centre of the square at (i, j) to its corner average plus noise.
func (d *diamondSquare) diamond(i, j, incr int, span float64) {
	total := d.height(i, j) +
		d.height(i+incr, j) +
		d.height(i+incr, j+incr) +
		d.height(i, j+incr)

	half := incr / 2
	v := total / 4
	v += d.displace(span)
	d.f.Set(i+half, j+half, v)
}

// cross averages the four orthogonal neighbours at distance half.
func (d *diamondSquare) cross(l, m, half int) float64 {
	return (d.height(l, m+half) +
		d.height(l, m-half) +
		d.height(l-half, m) +
		d.height(l+half, m)) / 4
}

// square sets the edge midpoints of the square at (i, j). The bottom and
// right edges are always written; the top and left edges only on the grid's
// first row and column, since elsewhere a neighbouring square owns them.
func (d *diamondSquare) square(i, j, incr int, span float64) {
	half := incr / 2
	last := d.size - 1

	// bottom edge
	l, m := i+incr, j+half
	var v float64
	if l == last {
		v = (d.height(l, m+half) + d.height(l, m-half) + d.height(l+half, m)) / 3
	} else {
		v = d.cross(l, m, half)
	}
	v += d.displace(span)
	d.f.Set(l, m, v)

	// right edge
	l, m = i+half, j+incr
	if m == last {
		v = (d.height(l, m-half) + d.height(l-half, m) + d.height(l+half, m)) / 3
	} else {
		v = d.cross(l, m, half)
	}
	v += d.displace(span)
	d.f.Set(l, m, v)

	// top edge
	l, m = i, j+half
	if l == 0 {
		v = (d.height(l, m+half) + d.height(l, m-half) + d.height(l+half, m)) / 3
		v += d.displace(span)
		d.f.Set(l, m, v)
	}

	// left edge
	l, m = i+half, j
	if m == 0 {
		v = (d.height(l, m+half) + d.height(l-half, m) + d.height(l+half, m)) / 3
		v += d.displace(span)
		d.f.Set(l, m, v)
	}
}
