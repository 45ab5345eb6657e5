// Package flock implements the per-tick boids update: neighbor discovery,
// the three steering rules, force-limited integration and boundary containment.
//
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" corresponds to a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
//
// Everything in this package is pure computation over in-memory values.
// Ownership of the live population belongs to the caller, which hands a
// frozen snapshot to Tick and gets a fresh slice back.
package flock

import (
	"image/color"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-superboids/pkg/geometry"
)

// Limits are the kinematic bounds of a single boid.
type Limits struct {
	MaxForce    float64 `json:"maxForce"`
	MinVelocity float64 `json:"minVelocity"`
	MaxVelocity float64 `json:"maxVelocity"`
}

// DefaultLimits are the limits given to spawned boids when nothing else is configured.
func DefaultLimits() Limits {
	return Limits{
		MaxForce:    0.1,
		MinVelocity: 0.5,
		MaxVelocity: 3.0,
	}
}

// Appearance is carried along for the renderer. The steering math never reads it.
type Appearance struct {
	Width, Height float64
	Color         color.RGBA
}

// Palette holds the boid colors picked at random on spawn.
var Palette = []color.RGBA{
	{R: 102, G: 92, B: 84, A: 255},
	{R: 125, G: 174, B: 163, A: 255},
	{R: 146, G: 131, B: 116, A: 255},
	{R: 125, G: 174, B: 163, A: 255},
	{R: 137, G: 180, B: 130, A: 255},
}

// Boid represents a single entity in the flock.
type Boid struct {
	ID  uuid.UUID
	Pos geometry.Vector2D
	Vel geometry.Vector2D
	// Acc accumulates the steering force of the current tick only.
	// It is zero before and after every tick.
	Acc geometry.Vector2D

	Limits     Limits
	Appearance Appearance
}

// RandomAppearance returns a size x size appearance with a color drawn from Palette.
func RandomAppearance(rng *rand.Rand, size float64) Appearance {
	return Appearance{
		Width:  size,
		Height: size,
		Color:  Palette[rng.IntN(len(Palette))],
	}
}

// Spawn creates a boid at a uniformly random position inside b.
func Spawn(rng *rand.Rand, b Bounds, l Limits, a Appearance) Boid {
	pos := geometry.Vector2D{
		X: b.Left + rng.Float64()*b.Width(),
		Y: b.Bottom + rng.Float64()*b.Height(),
	}
	return SpawnAt(rng, pos, l, a)
}

// SpawnAt creates a boid at pos. Velocity and acceleration axes are drawn
// uniformly from [-0.5, 0.5].
func SpawnAt(rng *rand.Rand, pos geometry.Vector2D, l Limits, a Appearance) Boid {
	return Boid{
		ID:         newID(rng),
		Pos:        pos,
		Vel:        geometry.Vector2D{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5},
		Acc:        geometry.Vector2D{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5},
		Limits:     l,
		Appearance: a,
	}
}

// newID draws a version 4 UUID from rng so that seeded runs are reproducible.
func newID(rng *rand.Rand) uuid.UUID {
	return uuid.Must(uuid.NewRandomFromReader(rngReader{rng}))
}

// rngReader adapts a *rand.Rand to io.Reader.
type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}
