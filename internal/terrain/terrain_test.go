package terrain

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	"heightgen/internal/heightfield"
)

// hashField computes a SHA-256 hash of every height in row-major order
func hashField(f *heightfield.Field) [32]byte {
	h := sha256.New()
	var buf [8]byte
	for _, v := range f.Heights() {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func allFinite(f *heightfield.Field) bool {
	for _, v := range f.Heights() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func mustField(size int, heights ...float64) *heightfield.Field {
	f, err := heightfield.FromHeights(size, 1, heights)
	if err != nil {
		panic(err)
	}
	return f
}
