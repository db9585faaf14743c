package geom

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument indicates malformed geometry input: zero-length
// directions, NaN/Inf coordinates, or out-of-range indices.
var ErrInvalidArgument = errors.New("invalid argument")

// Ray represents a half-line with a tail point and a unit direction
type Ray struct {
	Tail      Vec2
	Direction Vec2
}

// NewRay creates a ray from a tail point and a direction vector.
// The direction is normalized; a zero-length or non-finite input is rejected.
func NewRay(tail, direction Vec2) (Ray, error) {
	if !tail.IsFinite() || !direction.IsFinite() {
		return Ray{}, fmt.Errorf("%w: ray coordinates must be finite", ErrInvalidArgument)
	}
	if direction.LengthSquared() == 0 {
		return Ray{}, fmt.Errorf("%w: ray direction must have non-zero length", ErrInvalidArgument)
	}
	return Ray{Tail: tail, Direction: direction.Normalize()}, nil
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec2 {
	return r.Tail.Add(r.Direction.Multiply(t))
}
