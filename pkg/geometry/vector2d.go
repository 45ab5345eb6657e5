package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by Eq and by NewVectorPolar to snap
// near-zero components.
const (
	Epsilon = 1e-9
)

// Vector2D is a 2D vector or point in world space.
// Fields are public so literals stay short: v := Vector2D{X: 1, Y: 2}
type Vector2D struct {
	X float64 `json:"x" protobuf:"x,1"`
	Y float64 `json:"y" protobuf:"y,2"`
}

// Zero is the null vector returned by steering rules that have nothing to react to.
var Zero = Vector2D{}

// NewVector creates a new Vector2D.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// NewVectorPolar creates a new Vector2D from polar coordinates, theta in radians.
func NewVectorPolar(radius, theta float64) Vector2D {
	x := radius * math.Cos(theta)
	y := radius * math.Sin(theta)

	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}

	return Vector2D{X: x, Y: y}
}

// String implements the fmt.Stringer interface.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers, new values returned: a Vector2D is never shared state.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Dot calculates the dot product of two vectors.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector. Use it for comparisons.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len calculates the magnitude (length) of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are exactly zero.
func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is effectively zero.
func (v Vector2D) Normalize() Vector2D {
	l := v.Len()
	if l < Epsilon {
		return Vector2D{0, 0}
	}
	return v.Mul(1 / l)
}

// Limit caps the magnitude of v at max, keeping its direction.
// Vectors already shorter than max are returned unchanged. An overflowed
// vector is capped along its infinite axes; a NaN vector gives Zero.
func (v Vector2D) Limit(max float64) Vector2D {
	if v.IsNaN() {
		return Zero
	}
	l := v.Len()
	switch {
	case math.IsInf(l, 1):
		return v.overflowDirection().Mul(max)
	case l <= max || l == 0:
		return v
	}
	return v.Mul(max / l)
}

// ClampLen rescales v so that min <= |v| <= max, keeping its direction.
// A zero vector has no direction and is returned as is. Non-finite input is
// handled as in Limit.
func (v Vector2D) ClampLen(min, max float64) Vector2D {
	if v.IsNaN() {
		return Zero
	}
	l := v.Len()
	switch {
	case math.IsInf(l, 1):
		return v.overflowDirection().Mul(max)
	case l == 0:
		return v
	case l > max:
		return v.Mul(max / l)
	case l < min:
		return v.Mul(min / l)
	}
	return v
}

// IsNaN reports whether either component is NaN.
func (v Vector2D) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}

// overflowDirection is the unit vector along the infinite components of v.
func (v Vector2D) overflowDirection() Vector2D {
	var d Vector2D
	if math.IsInf(v.X, 0) {
		d.X = math.Copysign(1, v.X)
	}
	if math.IsInf(v.Y, 0) {
		d.Y = math.Copysign(1, v.Y)
	}
	return d.Normalize()
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector2D) DistanceSquaredTo(other Vector2D) float64 {
	return v.Sub(other).LenSqr()
}

// Angle returns the heading of the vector relative to the X-axis, in [-Pi, Pi].
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}
