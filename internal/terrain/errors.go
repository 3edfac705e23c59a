package terrain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks a configuration the chosen algorithm cannot run with.
	// It is always returned before any field is allocated or mutated.
	ErrConfig = errors.New("terrain: invalid configuration")

	// ErrDegenerate is advisory: the configuration runs, but the grid is so
	// small that fault lines or the erosion interior barely exist.
	ErrDegenerate = errors.New("terrain: degenerate grid")
)

// minUsefulSize is the smallest grid the generators produce meaningful terrain on.
const minUsefulSize = 4

// CheckDegenerate returns an ErrDegenerate-wrapping error for grids smaller
// than 4 cells on a side. Callers usually log it and carry on.
func CheckDegenerate(size int) error {
	if size < minUsefulSize {
		return fmt.Errorf("%w: size %d < %d", ErrDegenerate, size, minUsefulSize)
	}
	return nil
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfig}, args...)...)
}

func validateGrid(size int, step float64) error {
	if size < 1 {
		return configError("size %d must be positive", size)
	}
	if !(step > 0) {
		return configError("step %v must be positive", step)
	}
	return nil
}
