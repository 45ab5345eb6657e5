package flock

import "github.com/lao-tseu-is-alive/go-superboids/pkg/geometry"

// Integrate advances b by one tick under the given steering force.
// The order of the steps is part of the contract; changing it changes every
// trajectory:
//
//  1. Acc += force (+ the border push when the policy is SoftTurn)
//  2. Acc is capped at MaxForce, direction kept
//  3. Pos += Vel
//  4. Vel += Acc
//  5. |Vel| is clamped into [MinVelocity, MaxVelocity], direction kept
//  6. Acc = 0
//
// then, for the Wrap policy, Pos is wrapped into bounds.
func Integrate(b *Boid, force geometry.Vector2D, s Settings, bounds Bounds) {
	b.Acc = b.Acc.Add(force)
	if s.Boundary == SoftTurn {
		b.Acc = b.Acc.Add(BorderForce(b.Pos, bounds, s.BorderMargin, s.BorderTurnFactor))
	}
	b.Acc = b.Acc.Limit(b.Limits.MaxForce)

	b.Pos = b.Pos.Add(b.Vel)
	b.Vel = b.Vel.Add(b.Acc).ClampLen(b.Limits.MinVelocity, b.Limits.MaxVelocity)
	b.Acc = geometry.Zero

	if s.Boundary == Wrap {
		b.Pos = Contain(b.Pos, bounds)
	}
}
