package flock

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-superboids/pkg/geometry"
)

// ErrInvalidBounds is returned when a caller hands in bounds with Right < Left
// or Top < Bottom.
var ErrInvalidBounds = errors.New("invalid world bounds")

// Bounds is the rectangular world, supplied per tick by whoever owns the window.
// Y grows towards Top.
type Bounds struct {
	Left, Right, Bottom, Top float64
}

// CenteredBounds returns a width x height world centered on the origin.
func CenteredBounds(width, height float64) Bounds {
	return Bounds{
		Left:   -width / 2,
		Right:  width / 2,
		Bottom: -height / 2,
		Top:    height / 2,
	}
}

func (b Bounds) Width() float64  { return b.Right - b.Left }
func (b Bounds) Height() float64 { return b.Top - b.Bottom }

// Validate reports ErrInvalidBounds for inverted rectangles.
func (b Bounds) Validate() error {
	if b.Right < b.Left || b.Top < b.Bottom {
		return fmt.Errorf("%w: left=%g right=%g bottom=%g top=%g", ErrInvalidBounds, b.Left, b.Right, b.Bottom, b.Top)
	}
	return nil
}

// Boundary is the containment policy applied every tick.
type Boundary int

const (
	// Wrap teleports a boid that crossed an edge to the opposite edge,
	// velocity unchanged.
	Wrap Boundary = iota
	// SoftTurn pushes a boid back inside while it is within BorderMargin of an
	// edge. The push goes through the MaxForce clamp like any steering force.
	SoftTurn
)

func (p Boundary) String() string {
	switch p {
	case Wrap:
		return "wrap"
	case SoftTurn:
		return "soft-turn"
	}
	return fmt.Sprintf("boundary(%d)", int(p))
}

// ParseBoundary is the inverse of Boundary.String.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "wrap":
		return Wrap, nil
	case "soft-turn":
		return SoftTurn, nil
	}
	return 0, fmt.Errorf("unknown boundary policy %q", s)
}

// Contain applies the Wrap policy to pos. Crossing an edge lands the boid
// exactly on the opposite one.
func Contain(pos geometry.Vector2D, b Bounds) geometry.Vector2D {
	if pos.X > b.Right {
		pos.X = b.Left
	} else if pos.X < b.Left {
		pos.X = b.Right
	}
	if pos.Y > b.Top {
		pos.Y = b.Bottom
	} else if pos.Y < b.Bottom {
		pos.Y = b.Top
	}
	return pos
}

// BorderForce returns the soft-turn push for a boid at pos: turn inward on
// each axis where pos is within margin of an edge.
func BorderForce(pos geometry.Vector2D, b Bounds, margin, turnFactor float64) geometry.Vector2D {
	var f geometry.Vector2D
	if pos.X < b.Left+margin {
		f.X += turnFactor
	}
	if pos.X > b.Right-margin {
		f.X -= turnFactor
	}
	if pos.Y < b.Bottom+margin {
		f.Y += turnFactor
	}
	if pos.Y > b.Top-margin {
		f.Y -= turnFactor
	}
	return f
}
