package flock

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-superboids/pkg/geometry"
)

func TestSettings_AdjustWeight(t *testing.T) {
	tests := []struct {
		name   string
		weight Weight
		delta  float64
		want   Settings
	}{
		{"Alignment up", WeightAlignment, 0.5, Settings{Alignment: 1.5, Cohesion: 1, Separation: 1}},
		{"Cohesion down", WeightCohesion, -0.25, Settings{Alignment: 1, Cohesion: 0.75, Separation: 1}},
		{"Separation negative is legal", WeightSeparation, -3, Settings{Alignment: 1, Cohesion: 1, Separation: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Settings{Alignment: 1, Cohesion: 1, Separation: 1}
			if err := s.AdjustWeight(tt.weight, tt.delta); err != nil {
				t.Fatalf("AdjustWeight() error = %v", err)
			}
			if s != tt.want {
				t.Errorf("AdjustWeight(%v, %v) = %+v; want %+v", tt.weight, tt.delta, s, tt.want)
			}
			if got := s.Weight(tt.weight); got != tt.want.Weight(tt.weight) {
				t.Errorf("Weight(%v) = %v; want %v", tt.weight, got, tt.want.Weight(tt.weight))
			}
		})
	}

	s := DefaultSettings()
	if err := s.AdjustWeight(Weight(42), 1); err == nil {
		t.Error("AdjustWeight with an unknown weight should fail")
	}
	if s != DefaultSettings() {
		t.Error("a failed AdjustWeight must leave Settings untouched")
	}
}

func TestParseWeight(t *testing.T) {
	for _, w := range []Weight{WeightAlignment, WeightCohesion, WeightSeparation} {
		got, err := ParseWeight(w.String())
		if err != nil || got != w {
			t.Errorf("ParseWeight(%q) = %v, %v; want %v", w.String(), got, err, w)
		}
	}
	if _, err := ParseWeight("speed"); err == nil {
		t.Error("ParseWeight(speed) should fail")
	}
}

func TestSpawn(t *testing.T) {
	bounds := CenteredBounds(1280, 720)
	rng := rand.New(rand.NewPCG(1, 2))
	limits := DefaultLimits()

	for i := 0; i < 500; i++ {
		b := Spawn(rng, bounds, limits, RandomAppearance(rng, 5))
		if b.Pos.X < bounds.Left || b.Pos.X > bounds.Right || b.Pos.Y < bounds.Bottom || b.Pos.Y > bounds.Top {
			t.Fatalf("spawned at %v outside %+v", b.Pos, bounds)
		}
		for _, c := range []float64{b.Vel.X, b.Vel.Y, b.Acc.X, b.Acc.Y} {
			if c < -0.5 || c > 0.5 {
				t.Fatalf("spawned with Vel %v Acc %v; axes must be in [-0.5, 0.5]", b.Vel, b.Acc)
			}
		}
		if b.Limits != limits {
			t.Fatalf("Limits = %+v; want %+v", b.Limits, limits)
		}
		if b.ID.Version() != 4 || b.ID == uuid.Nil {
			t.Fatalf("ID = %v; want a random (v4) uuid", b.ID)
		}
		if b.Appearance.Width != 5 || b.Appearance.Height != 5 {
			t.Fatalf("Appearance = %+v; want 5x5", b.Appearance)
		}
	}
}

func TestSpawn_Reproducible(t *testing.T) {
	bounds := CenteredBounds(100, 100)
	a := Spawn(rand.New(rand.NewPCG(7, 7)), bounds, DefaultLimits(), Appearance{})
	b := Spawn(rand.New(rand.NewPCG(7, 7)), bounds, DefaultLimits(), Appearance{})
	if a != b {
		t.Errorf("same seed gave %+v and %+v", a, b)
	}
}

func TestSpawnAt(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	pos := geometry.Vector2D{X: -12.5, Y: 40}
	b := SpawnAt(rng, pos, DefaultLimits(), Appearance{})
	if b.Pos != pos {
		t.Errorf("Pos = %v; want %v", b.Pos, pos)
	}
}

func TestSummarize(t *testing.T) {
	if got := Summarize(nil); got != (Stats{}) {
		t.Errorf("Summarize(nil) = %+v; want zero", got)
	}

	opposed := []Boid{boidAt(-1, 0, 2, 0), boidAt(1, 2, -2, 0)}
	got := Summarize(opposed)
	if got.Count != 2 || got.MeanSpeed != 2 {
		t.Errorf("Summarize = %+v; want count 2, mean speed 2", got)
	}
	if !got.Centroid.Eq(geometry.Vector2D{X: 0, Y: 1}) {
		t.Errorf("Centroid = %v; want (0, 1)", got.Centroid)
	}
	if got.Polarization > geometry.Epsilon {
		t.Errorf("Polarization of opposed boids = %v; want 0", got.Polarization)
	}

	aligned := []Boid{boidAt(0, 0, 1, 1), boidAt(5, 5, 2, 2)}
	if p := Summarize(aligned).Polarization; p < 1-geometry.Epsilon {
		t.Errorf("Polarization of aligned boids = %v; want 1", p)
	}
}
