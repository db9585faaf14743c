package shape

import (
	"fmt"

	"github.com/df07/go-bending-light/pkg/geom"
)

// Polygon represents a convex or concave polygonal prism defined by its
// corner points in order.
type Polygon struct {
	Points         []geom.Vec2
	referenceIndex int
}

// NewPolygon creates a polygon from at least three corner points and the
// index of the corner used as the rotation handle.
func NewPolygon(points []geom.Vec2, referenceIndex int) (*Polygon, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: polygon requires at least 3 points, got %d", geom.ErrInvalidArgument, len(points))
	}
	for _, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: polygon points must be finite", geom.ErrInvalidArgument)
		}
	}
	if referenceIndex < 0 || referenceIndex >= len(points) {
		return nil, fmt.Errorf("%w: polygon reference index %d outside [0,%d]", geom.ErrInvalidArgument, referenceIndex, len(points)-1)
	}
	copied := make([]geom.Vec2, len(points))
	copy(copied, points)
	return &Polygon{Points: copied, referenceIndex: referenceIndex}, nil
}

// Intersections tests the ray against every edge of the polygon. Each edge
// hit contributes the edge-perpendicular normal oriented against the ray.
func (p *Polygon) Intersections(ray geom.Ray) []Intersection {
	var results []Intersection
	for i := range p.Points {
		a := p.Points[i]
		b := p.Points[(i+1)%len(p.Points)]
		point, ok := intersectSegment(ray, a, b)
		if !ok {
			continue
		}
		normal := b.Subtract(a).Perpendicular().Normalize()
		results = append(results, Intersection{
			Point:  point,
			Normal: opposing(normal, ray.Direction),
		})
	}
	return results
}

// Translated returns a copy with every corner shifted by delta
func (p *Polygon) Translated(delta geom.Vec2) Shape {
	points := make([]geom.Vec2, len(p.Points))
	for i, pt := range p.Points {
		points[i] = pt.Add(delta)
	}
	return &Polygon{Points: points, referenceIndex: p.referenceIndex}
}

// Rotated returns a copy with every corner rotated about the pivot
func (p *Polygon) Rotated(angle float64, pivot geom.Vec2) Shape {
	points := make([]geom.Vec2, len(p.Points))
	for i, pt := range p.Points {
		points[i] = pt.RotateAround(angle, pivot)
	}
	return &Polygon{Points: points, referenceIndex: p.referenceIndex}
}

// Contains reports whether the point lies inside the polygon, using the
// even-odd crossing rule on a horizontal ray through the point.
func (p *Polygon) Contains(point geom.Vec2) bool {
	inside := false
	n := len(p.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := p.Points[i], p.Points[j]
		if (pi.Y > point.Y) != (pj.Y > point.Y) &&
			point.X < (pj.X-pi.X)*(point.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// RotationCenter returns the average of the corner points
func (p *Polygon) RotationCenter() geom.Vec2 {
	var sum geom.Vec2
	for _, pt := range p.Points {
		sum = sum.Add(pt)
	}
	return sum.Multiply(1.0 / float64(len(p.Points)))
}

// ReferencePoint returns the corner selected at construction
func (p *Polygon) ReferencePoint() (geom.Vec2, bool) {
	return p.Points[p.referenceIndex], true
}
