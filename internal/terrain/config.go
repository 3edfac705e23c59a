package terrain

import "math"

// WrapMode selects how diamond-square reads coordinates outside the grid.
type WrapMode int

const (
	// WrapLegacy wraps rows in both directions but columns only on the high
	// side. Negative columns fall through to row-major addressing.
	WrapLegacy WrapMode = iota
	// WrapSymmetric wraps both axes in both directions by size-1.
	WrapSymmetric
)

func (m WrapMode) String() string {
	switch m {
	case WrapLegacy:
		return "legacy"
	case WrapSymmetric:
		return "symmetric"
	}
	return "unknown"
}

func (m WrapMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *WrapMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "legacy", "":
		*m = WrapLegacy
	case "symmetric":
		*m = WrapSymmetric
	default:
		return configError("unknown wrap mode %q", b)
	}
	return nil
}

// SmoothMode selects the smoothing kernel.
type SmoothMode int

const (
	// SmoothFloat is a 3×3 box blur computed from the unmodified input.
	SmoothFloat SmoothMode = iota
	// SmoothLegacy reproduces the integer accumulator with round-half-up
	// nudging, applied in place in row-major order.
	SmoothLegacy
)

func (m SmoothMode) String() string {
	switch m {
	case SmoothFloat:
		return "float"
	case SmoothLegacy:
		return "legacy"
	}
	return "unknown"
}

func (m SmoothMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *SmoothMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "float", "":
		*m = SmoothFloat
	case "legacy":
		*m = SmoothLegacy
	default:
		return configError("unknown smoothing mode %q", b)
	}
	return nil
}

// FaultConfig parameterises fault formation.
type FaultConfig struct {
	Seed         int64   `json:"seed"`
	Iterations   int     `json:"iterations"`
	Displacement float64 `json:"displacement"`
}

// DefaultFaultConfig returns 500 passes of ±0.1.
func DefaultFaultConfig() FaultConfig {
	return FaultConfig{
		Iterations:   500,
		Displacement: 0.1,
	}
}

func (c FaultConfig) validate() error {
	if c.Iterations < 0 {
		return configError("fault iterations %d must not be negative", c.Iterations)
	}
	return nil
}

// DiamondConfig parameterises diamond-square midpoint displacement.
type DiamondConfig struct {
	Seed  int64    `json:"seed"`
	Range float64  `json:"range"` // initial maximum displacement
	Decay float64  `json:"decay"` // applied to Range after each pass
	Wrap  WrapMode `json:"wrap"`
	// IntegerRange truncates the displacement range to a whole number
	// before each draw, which flattens late passes to zero displacement.
	IntegerRange bool `json:"integerRange"`
}

// DefaultDecay is 2^-0.55.
var DefaultDecay = math.Pow(2, -0.55)

// DefaultDiamondConfig returns a range of 20 decaying by 2^-0.55 with legacy wrapping.
func DefaultDiamondConfig() DiamondConfig {
	return DiamondConfig{
		Range: 20,
		Decay: DefaultDecay,
		Wrap:  WrapLegacy,
	}
}

func (c DiamondConfig) validate() error {
	if !(c.Decay > 0) || math.IsInf(c.Decay, 0) {
		return configError("diamond-square decay %v must be positive and finite", c.Decay)
	}
	if c.Range < 0 || math.IsNaN(c.Range) {
		return configError("diamond-square range %v must not be negative", c.Range)
	}
	if c.Wrap != WrapLegacy && c.Wrap != WrapSymmetric {
		return configError("unknown wrap mode %d", c.Wrap)
	}
	return nil
}

// SmoothConfig parameterises the smoothing pass.
type SmoothConfig struct {
	Mode SmoothMode `json:"mode"`
}

// ErosionConfig parameterises the hydraulic erosion simulation.
type ErosionConfig struct {
	Iterations  int     `json:"iterations"`
	Rainfall    float64 `json:"rainfall"`    // water added to every cell per iteration
	Solubility  float64 `json:"solubility"`  // elevation dissolved/deposited per unit water
	Evaporation float64 `json:"evaporation"` // fraction of water lost per iteration
	// DiagonalWaterLookup reads neighbour water at [m+x][n+x] instead of
	// [m+x][n+y] during the steepest-descent scan.
	DiagonalWaterLookup bool `json:"diagonalWaterLookup"`
}

// DefaultErosionConfig returns 5000 iterations of 0.01 rain, 0.01 solubility
// and 90% evaporation.
func DefaultErosionConfig() ErosionConfig {
	return ErosionConfig{
		Iterations:  5000,
		Rainfall:    0.01,
		Solubility:  0.01,
		Evaporation: 0.9,
	}
}

// LightErosion is a short run that only rounds off the fault steps.
func LightErosion() ErosionConfig {
	c := DefaultErosionConfig()
	c.Iterations = 500
	return c
}

// HeavyErosion rains harder for longer and evaporates less, carving deeper channels.
func HeavyErosion() ErosionConfig {
	c := DefaultErosionConfig()
	c.Iterations = 20000
	c.Rainfall = 0.02
	c.Evaporation = 0.5
	return c
}

// ErosionPresetNames lists the names ErosionPreset accepts, lightest first.
func ErosionPresetNames() []string {
	return []string{"light", "default", "heavy"}
}

// ErosionPreset returns the named preset.
func ErosionPreset(name string) (ErosionConfig, error) {
	switch name {
	case "light":
		return LightErosion(), nil
	case "default":
		return DefaultErosionConfig(), nil
	case "heavy":
		return HeavyErosion(), nil
	}
	return ErosionConfig{}, configError("unknown erosion preset %q, want one of %v", name, ErosionPresetNames())
}

func (c ErosionConfig) validate() error {
	if c.Iterations < 0 {
		return configError("erosion iterations %d must not be negative", c.Iterations)
	}
	if c.Evaporation < 0 || c.Evaporation > 1 {
		return configError("evaporation %v must be in [0, 1]", c.Evaporation)
	}
	if c.Rainfall < 0 {
		return configError("rainfall %v must not be negative", c.Rainfall)
	}
	return nil
}

// NoiseKind selects the noise backend of the baseline generator.
type NoiseKind int

const (
	NoisePerlin NoiseKind = iota
	NoiseSimplex
)

func (k NoiseKind) String() string {
	switch k {
	case NoisePerlin:
		return "perlin"
	case NoiseSimplex:
		return "simplex"
	}
	return "unknown"
}

func (k NoiseKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *NoiseKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "perlin", "":
		*k = NoisePerlin
	case "simplex":
		*k = NoiseSimplex
	default:
		return configError("unknown noise kind %q", b)
	}
	return nil
}

// NoiseConfig parameterises the noise baseline generators.
type NoiseConfig struct {
	Seed      int64     `json:"seed"`
	Kind      NoiseKind `json:"kind"`
	Octaves   int       `json:"octaves"`
	Frequency float64   `json:"frequency"` // cycles per cell at the first octave
	Amplitude float64   `json:"amplitude"`
}

// DefaultNoiseConfig returns four octaves with an amplitude comparable to the fault output.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Octaves:   4,
		Frequency: 1.0 / 16,
		Amplitude: 10,
	}
}

func (c NoiseConfig) validate() error {
	if c.Octaves < 1 {
		return configError("noise octaves %d must be at least 1", c.Octaves)
	}
	if !(c.Frequency > 0) {
		return configError("noise frequency %v must be positive", c.Frequency)
	}
	return nil
}
