package terrain

import (
	"context"
	"math"

	"heightgen/internal/heightfield"
)

// Ledger totals every quantity that enters or leaves the water/elevation
// system, so Σelevation + Σwater can be reconciled against the start:
//
//	Σe + Σw = Σe₀ + Rainfall - Dissolved - Evaporated + Deposited
type Ledger struct {
	Rainfall   float64 // water added
	Dissolved  float64 // elevation removed by standing water
	Evaporated float64 // water removed
	Deposited  float64 // elevation returned by evaporating water
}

// Simulator runs hydraulic erosion over a private copy of an elevation field
// with a companion water grid.
type Simulator struct {
	cfg   ErosionConfig
	size  int
	step  float64
	elev  []float64
	water []float64

	iterations int
	ledger     Ledger
}

// NewSimulator copies initial and zeroes the water grid. The grid needs an
// interior, so size must be at least 3.
func NewSimulator(initial *heightfield.Field, cfg ErosionConfig) (*Simulator, error) {
	if initial == nil {
		return nil, configError("erosion needs an initial field")
	}
	if initial.Size() < 3 {
		return nil, configError("erosion size %d has no interior (need >= 3)", initial.Size())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	n := initial.Size()
	return &Simulator{
		cfg:   cfg,
		size:  n,
		step:  initial.Step(),
		elev:  initial.Heights(),
		water: make([]float64, n*n),
	}, nil
}

// SimulateErosion erodes a copy of initial for cfg.Iterations steps and
// returns the eroded elevation. initial is left untouched. ctx is checked
// after every iteration; on cancellation nothing is returned.
func SimulateErosion(ctx context.Context, initial *heightfield.Field, cfg ErosionConfig) (*heightfield.Field, error) {
	s, err := NewSimulator(initial, cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Run(ctx); err != nil {
		return nil, err
	}
	return s.Elevation(), nil
}

// GenerateErodedFault is fault formation followed by erosion, sharing the
// grid dimensions.
func GenerateErodedFault(ctx context.Context, size int, step float64, fault FaultConfig, erosion ErosionConfig) (*heightfield.Field, error) {
	if size < 3 {
		return nil, configError("erosion size %d has no interior (need >= 3)", size)
	}
	if err := erosion.validate(); err != nil {
		return nil, err
	}
	f, err := GenerateFaultContext(ctx, size, step, fault)
	if err != nil {
		return nil, err
	}
	return SimulateErosion(ctx, f, erosion)
}

// Run performs the configured number of iterations.
func (s *Simulator) Run(ctx context.Context) error {
	for i := 0; i < s.cfg.Iterations; i++ {
		s.Step()
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Step performs one rain, dissolve, transport, evaporate cycle.
func (s *Simulator) Step() {
	s.rain()
	s.dissolve()
	s.transport()
	s.evaporate()
	s.iterations++
}

// Iterations returns how many steps have run.
func (s *Simulator) Iterations() int { return s.iterations }

// Ledger returns the running totals.
func (s *Simulator) Ledger() Ledger { return s.ledger }

// Elevation returns a copy of the current elevation.
func (s *Simulator) Elevation() *heightfield.Field {
	f, _ := heightfield.FromHeights(s.size, s.step, s.elev)
	return f
}

// Water returns a copy of the current water depths.
func (s *Simulator) Water() *heightfield.Field {
	f, _ := heightfield.FromHeights(s.size, s.step, s.water)
	return f
}

func (s *Simulator) rain() {
	for i := range s.water {
		s.water[i] += s.cfg.Rainfall
	}
	s.ledger.Rainfall += s.cfg.Rainfall * float64(len(s.water))
}

func (s *Simulator) dissolve() {
	for i, w := range s.water {
		d := w * s.cfg.Solubility
		s.elev[i] -= d
		s.ledger.Dissolved += d
	}
}

// transport moves water from each interior cell toward the neighbour with
// the largest drop in elevation+water. Cells are visited row-major and
// updated in place.
func (s *Simulator) transport() {
	n := s.size
	e, w := s.elev, s.water
	for m := 1; m < n-1; m++ {
		for c := 1; c < n-1; c++ {
			src := m*n + c
			curr := e[src] + w[src]

			best := math.Inf(-1)
			dst := src
			for x := -1; x <= 1; x++ {
				for y := -1; y <= 1; y++ {
					nb := (m+x)*n + c + y
					wi := nb
					if s.cfg.DiagonalWaterLookup {
						wi = (m+x)*n + c + x
					}
					if diff := curr - e[nb] - w[wi]; diff > best {
						best = diff
						dst = nb
					}
				}
			}
			if best <= 0 {
				continue
			}

			if w[src] < best {
				w[dst] += w[src]
				w[src] = 0
			} else {
				// Only half the difference moves even when more is available.
				w[dst] += best / 2
				w[src] -= best / 2
			}
		}
	}
}

func (s *Simulator) evaporate() {
	for i, w := range s.water {
		lost := w * s.cfg.Evaporation
		s.water[i] = w - lost
		deposit := lost * s.cfg.Solubility
		s.elev[i] += deposit
		s.ledger.Evaporated += lost
		s.ledger.Deposited += deposit
	}
}
