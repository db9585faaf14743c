package shape

import (
	"fmt"

	"github.com/df07/go-bending-light/pkg/geom"
)

// SemiCircle represents a half-disc prism, the classic shape for total
// internal reflection experiments. It is defined by the two endpoints of
// its flat face (the chord) and its radius; the arc bulges out on the
// counterclockwise side of the chord direction Points[0]→Points[1]. For a
// true half-disc the radius equals half the chord length.
type SemiCircle struct {
	Points         [2]geom.Vec2
	Radius         float64
	referenceIndex int
}

// NewSemiCircle creates a semicircle from its two chord endpoints, radius,
// and the index (0 or 1) of the chord point used as the rotation handle.
func NewSemiCircle(p0, p1 geom.Vec2, radius float64, referenceIndex int) (*SemiCircle, error) {
	if !p0.IsFinite() || !p1.IsFinite() || radius <= 0 {
		return nil, fmt.Errorf("%w: semicircle requires finite points and positive radius", geom.ErrInvalidArgument)
	}
	if referenceIndex < 0 || referenceIndex > 1 {
		return nil, fmt.Errorf("%w: semicircle reference index %d outside [0,1]", geom.ErrInvalidArgument, referenceIndex)
	}
	return &SemiCircle{Points: [2]geom.Vec2{p0, p1}, Radius: radius, referenceIndex: referenceIndex}, nil
}

// arcSide is the unit perpendicular of the chord pointing into the arc half
func (s *SemiCircle) arcSide() geom.Vec2 {
	return s.Points[1].Subtract(s.Points[0]).Perpendicular().Normalize()
}

// center is the chord midpoint, which is also the arc center
func (s *SemiCircle) center() geom.Vec2 {
	return s.Points[0].Add(s.Points[1]).Multiply(0.5)
}

// Intersections returns crossings with the chord segment and with the
// half-circle arc: zero, one, or two results in total.
func (s *SemiCircle) Intersections(ray geom.Ray) []Intersection {
	var results []Intersection

	// Flat face: segment hit with a chord-perpendicular normal
	if point, ok := intersectSegment(ray, s.Points[0], s.Points[1]); ok {
		results = append(results, Intersection{
			Point:  point,
			Normal: opposing(s.arcSide(), ray.Direction),
		})
	}

	// Curved face: circle hits restricted to the arc's half-plane. The
	// parameters from intersectCircle are already in front of the tail.
	center := s.center()
	side, arcHits := s.arcSide(), intersectCircle(ray, center, s.Radius)
	for _, t := range arcHits {
		point := ray.At(t)
		radial := point.Subtract(center)
		if radial.Dot(side) < 0 {
			continue // on the chord side, not part of the boundary
		}
		results = append(results, Intersection{
			Point:  point,
			Normal: opposing(radial.Normalize(), ray.Direction),
		})
	}

	return results
}

// Translated returns a copy with both chord points shifted by delta
func (s *SemiCircle) Translated(delta geom.Vec2) Shape {
	return &SemiCircle{
		Points:         [2]geom.Vec2{s.Points[0].Add(delta), s.Points[1].Add(delta)},
		Radius:         s.Radius,
		referenceIndex: s.referenceIndex,
	}
}

// Rotated returns a copy with both chord points rotated about the pivot
func (s *SemiCircle) Rotated(angle float64, pivot geom.Vec2) Shape {
	return &SemiCircle{
		Points: [2]geom.Vec2{
			s.Points[0].RotateAround(angle, pivot),
			s.Points[1].RotateAround(angle, pivot),
		},
		Radius:         s.Radius,
		referenceIndex: s.referenceIndex,
	}
}

// Contains reports whether the point lies in the closed half-disc
func (s *SemiCircle) Contains(p geom.Vec2) bool {
	radial := p.Subtract(s.center())
	return radial.Length() <= s.Radius && radial.Dot(s.arcSide()) >= -hitEpsilon
}

// RotationCenter returns the midpoint of the chord
func (s *SemiCircle) RotationCenter() geom.Vec2 {
	return s.center()
}

// ReferencePoint returns the chord endpoint selected at construction
func (s *SemiCircle) ReferencePoint() (geom.Vec2, bool) {
	return s.Points[s.referenceIndex], true
}
