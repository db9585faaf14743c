package shape

import (
	"math"

	"github.com/df07/go-bending-light/pkg/geom"
)

// Epsilon for accepting intersections in front of a ray tail. Hits closer
// than this are treated as starting on the boundary and skipped, which keeps
// secondary rays spawned at an interface from re-hitting it.
const hitEpsilon = 1e-9

// Intersection is the result of a ray/boundary query: the point where the
// ray crosses the boundary and the unit surface normal at that point,
// oriented to oppose the incoming ray direction.
type Intersection struct {
	Point  geom.Vec2
	Normal geom.Vec2
}

// Shape is the capability set shared by all prism shape variants. All
// mutators are pure: they return a new instance and leave the receiver
// untouched, so shapes are safe to share across goroutines.
type Shape interface {
	// Intersections returns every point where the ray crosses the shape
	// boundary, with normals opposing the ray. Zero, one, or two results;
	// no ordering guarantee, the caller selects the nearest.
	Intersections(ray geom.Ray) []Intersection

	// Translated returns a copy shifted by delta.
	Translated(delta geom.Vec2) Shape

	// Rotated returns a copy rotated by angle radians about the pivot.
	Rotated(angle float64, pivot geom.Vec2) Shape

	// Contains reports whether the point lies in the closed shape region.
	Contains(p geom.Vec2) bool

	// RotationCenter returns the point the shape rotates about by default.
	RotationCenter() geom.Vec2

	// ReferencePoint returns the corner used as an external rotation
	// handle, or false for shapes with no meaningful handle.
	ReferencePoint() (geom.Vec2, bool)
}

// opposing flips a unit normal if needed so that it opposes the ray
// direction (non-positive dot product).
func opposing(normal, rayDirection geom.Vec2) geom.Vec2 {
	if normal.Dot(rayDirection) > 0 {
		return normal.Negate()
	}
	return normal
}

// intersectSegment intersects a ray with the segment from a to b. Returns
// the hit point and true when the ray crosses the segment strictly in front
// of its tail. The segment is half-open at b so a ray through a shared
// polygon vertex hits exactly one of the two incident edges. Parallel or
// behind-the-tail configurations return false.
func intersectSegment(ray geom.Ray, a, b geom.Vec2) (geom.Vec2, bool) {
	edge := b.Subtract(a)
	denom := ray.Direction.Cross(edge)
	if math.Abs(denom) < 1e-12 {
		return geom.Vec2{}, false
	}
	toA := a.Subtract(ray.Tail)
	t := toA.Cross(edge) / denom          // distance along the ray
	s := toA.Cross(ray.Direction) / denom // position along the segment
	if t <= hitEpsilon || s < 0 || s >= 1 {
		return geom.Vec2{}, false
	}
	return ray.At(t), true
}

// intersectCircle returns the ray parameters where the ray crosses the
// circle of the given center and radius, smallest first. Tangent rays and
// misses return no parameters.
func intersectCircle(ray geom.Ray, center geom.Vec2, radius float64) []float64 {
	oc := ray.Tail.Subtract(center)

	// Quadratic t² + 2·halfB·t + c = 0 (direction is unit length)
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius

	discriminant := halfB*halfB - c
	if discriminant <= 0 {
		// Tangent grazes count as a miss
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	var ts []float64
	for _, t := range [2]float64{-halfB - sqrtD, -halfB + sqrtD} {
		if t > hitEpsilon {
			ts = append(ts, t)
		}
	}
	return ts
}
