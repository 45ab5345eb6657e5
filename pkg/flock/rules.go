package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-superboids/pkg/geometry"
)

// Every rule returns geometry.Zero when there are no neighbors.

// Alignment steers towards the mean heading of the neighbors:
// avg(neighbor velocity) - own velocity.
func Alignment(me Boid, neighbors []*Boid) geometry.Vector2D {
	if len(neighbors) == 0 {
		return geometry.Zero
	}
	var sum geometry.Vector2D
	for _, n := range neighbors {
		sum = sum.Add(n.Vel)
	}
	return sum.Mul(1 / float64(len(neighbors))).Sub(me.Vel)
}

// Cohesion steers towards the centroid of the neighbors:
// avg(neighbor position) - own position.
func Cohesion(me Boid, neighbors []*Boid) geometry.Vector2D {
	if len(neighbors) == 0 {
		return geometry.Zero
	}
	var sum geometry.Vector2D
	for _, n := range neighbors {
		sum = sum.Add(n.Pos)
	}
	return sum.Mul(1 / float64(len(neighbors))).Sub(me.Pos)
}

// Separation steers away from each neighbor: the sum of
// (own position - neighbor position) / distance.
// The distance is floored at the smallest positive float64, so two boids on
// the same spot contribute a finite term and never a NaN.
func Separation(me Boid, neighbors []*Boid) geometry.Vector2D {
	var sum geometry.Vector2D
	for _, n := range neighbors {
		away := me.Pos.Sub(n.Pos)
		d := math.Max(away.Len(), math.SmallestNonzeroFloat64)
		// divide, don't multiply by 1/d: 1/d overflows to +Inf and 0*Inf is NaN
		sum = sum.Add(geometry.Vector2D{X: away.X / d, Y: away.Y / d})
	}
	return sum
}

// Steer combines the three rules with the weights of s.
func Steer(me Boid, neighbors []*Boid, s Settings) geometry.Vector2D {
	return Alignment(me, neighbors).Mul(s.Alignment).
		Add(Cohesion(me, neighbors).Mul(s.Cohesion)).
		Add(Separation(me, neighbors).Mul(s.Separation))
}
