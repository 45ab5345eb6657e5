package flock

import (
	"fmt"
)

// Weight selects one of the three steering weights held by Settings.
type Weight int

const (
	WeightAlignment Weight = iota
	WeightCohesion
	WeightSeparation
)

func (w Weight) String() string {
	switch w {
	case WeightAlignment:
		return "alignment"
	case WeightCohesion:
		return "cohesion"
	case WeightSeparation:
		return "separation"
	}
	return fmt.Sprintf("weight(%d)", int(w))
}

// ParseWeight is the inverse of Weight.String.
func ParseWeight(s string) (Weight, error) {
	for _, w := range []Weight{WeightAlignment, WeightCohesion, WeightSeparation} {
		if w.String() == s {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown steering weight %q", s)
}

// Settings controls the flocking rules for a tick.
// It is passed by value into Tick, so a tick always sees the weights as they
// were when it started.
type Settings struct {
	// Steering weights, freely mutable between ticks. Negative values are
	// legal and invert the rule (negative separation makes boids clump).
	Alignment  float64
	Cohesion   float64
	Separation float64

	PerceptionRadius float64 // neighbors are strictly closer than this

	Boundary         Boundary
	BorderMargin     float64 // soft-turn only: distance from an edge where the push starts
	BorderTurnFactor float64 // soft-turn only: inward push, far above MaxForce

	// SpatialIndex switches neighbor discovery from the linear scan to a Grid.
	// Both return the same neighbor sets.
	SpatialIndex bool
	// Workers bounds the goroutines used by Tick; <= 0 means GOMAXPROCS.
	Workers int
}

// DefaultSettings mirrors the constants the flock was first tuned with.
func DefaultSettings() Settings {
	return Settings{
		Alignment:        1.0,
		Cohesion:         0.05,
		Separation:       1.0,
		PerceptionRadius: 50,
		Boundary:         Wrap,
		BorderMargin:     100,
		BorderTurnFactor: 10,
	}
}

// AdjustWeight adds delta to the selected weight. There is no clamp.
func (s *Settings) AdjustWeight(w Weight, delta float64) error {
	switch w {
	case WeightAlignment:
		s.Alignment += delta
	case WeightCohesion:
		s.Cohesion += delta
	case WeightSeparation:
		s.Separation += delta
	default:
		return fmt.Errorf("unknown steering weight %d", int(w))
	}
	return nil
}

// Weight returns the current value of the selected weight.
func (s Settings) Weight(w Weight) float64 {
	switch w {
	case WeightAlignment:
		return s.Alignment
	case WeightCohesion:
		return s.Cohesion
	case WeightSeparation:
		return s.Separation
	}
	return 0
}
