package shape

import (
	"fmt"

	"github.com/df07/go-bending-light/pkg/geom"
)

// Circle represents a circular prism (a cylinder seen edge-on)
type Circle struct {
	Center geom.Vec2
	Radius float64
}

// NewCircle creates a circle from a center point and radius
func NewCircle(center geom.Vec2, radius float64) (*Circle, error) {
	if !center.IsFinite() || radius <= 0 {
		return nil, fmt.Errorf("%w: circle requires finite center and positive radius", geom.ErrInvalidArgument)
	}
	return &Circle{Center: center, Radius: radius}, nil
}

// Intersections returns up to two ray/boundary crossings. The normal at
// each crossing is the radial direction, flipped where necessary to oppose
// the incoming ray.
func (c *Circle) Intersections(ray geom.Ray) []Intersection {
	ts := intersectCircle(ray, c.Center, c.Radius)
	if len(ts) == 0 {
		return nil
	}

	results := make([]Intersection, 0, len(ts))
	for _, t := range ts {
		point := ray.At(t)
		normal := point.Subtract(c.Center).Normalize()
		results = append(results, Intersection{
			Point:  point,
			Normal: opposing(normal, ray.Direction),
		})
	}
	return results
}

// Translated returns a copy shifted by delta
func (c *Circle) Translated(delta geom.Vec2) Shape {
	return &Circle{Center: c.Center.Add(delta), Radius: c.Radius}
}

// Rotated returns a copy rotated about the pivot. Rotation moves the
// center; the radius is unchanged.
func (c *Circle) Rotated(angle float64, pivot geom.Vec2) Shape {
	return &Circle{Center: c.Center.RotateAround(angle, pivot), Radius: c.Radius}
}

// Contains reports whether the point lies in the closed disc
func (c *Circle) Contains(p geom.Vec2) bool {
	return p.Distance(c.Center) <= c.Radius
}

// RotationCenter returns the circle center
func (c *Circle) RotationCenter() geom.Vec2 {
	return c.Center
}

// ReferencePoint returns false: a circle is rotationally symmetric and has
// no rotation handle.
func (c *Circle) ReferencePoint() (geom.Vec2, bool) {
	return geom.Vec2{}, false
}
