package terrain

import "heightgen/internal/heightfield"

// Smooth returns a smoothed copy of f. Border cells are copied unchanged;
// every interior cell becomes the average of its 3×3 neighbourhood.
// f itself is never modified.
func Smooth(f *heightfield.Field, cfg SmoothConfig) *heightfield.Field {
	out := f.Clone()
	size := f.Size()
	if size < 3 {
		return out
	}

	switch cfg.Mode {
	case SmoothLegacy:
		// Row-major and in place: later cells see already smoothed neighbours.
		for x := 1; x < size-1; x++ {
			for y := 1; y < size-1; y++ {
				out.Set(x, y, legacyAverage(out, x, y))
			}
		}
	default:
		for x := 1; x < size-1; x++ {
			for y := 1; y < size-1; y++ {
				out.Set(x, y, boxAverage(f, x, y))
			}
		}
	}
	return out
}

func boxAverage(f *heightfield.Field, x, y int) float64 {
	var sum float64
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			sum += f.At(x+dx, y+dy)
		}
	}
	return sum / 9
}

// legacyNeighbours is the accumulation order of the integer kernel; the
// order matters because every addition truncates.
var legacyNeighbours = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// legacyAverage sums the neighbourhood into an integer, truncating toward
// zero after each addition, then divides by 9 rounding up when the
// remainder exceeds 4.
func legacyAverage(f *heightfield.Field, x, y int) float64 {
	sum := int64(f.At(x, y))
	for _, o := range legacyNeighbours {
		sum = int64(float64(sum) + f.At(x+o[0], y+o[1]))
	}
	if sum%9 > 4 {
		sum = sum/9 + 1
	} else {
		sum = sum / 9
	}
	return float64(sum)
}
