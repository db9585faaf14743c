package optics

import "github.com/df07/go-bending-light/pkg/geom"

// RayType tags a light ray segment by how it was produced
type RayType int

const (
	// Incident rays come directly from a light source
	Incident RayType = iota
	// Reflected rays bounced off a boundary (including total internal reflection)
	Reflected
	// Transmitted rays refracted through a boundary
	Transmitted
)

// String returns a human-readable ray type name
func (rt RayType) String() string {
	switch rt {
	case Incident:
		return "incident"
	case Reflected:
		return "reflected"
	case Transmitted:
		return "transmitted"
	default:
		return "unknown"
	}
}

// Color is an 8-bit RGB triple
type Color struct {
	R, G, B uint8
}

// LightRaySegment is one straight piece of a traced light path: the
// geometry of the segment, its display color, the wavelength that produced
// it, and the fraction of the source power it still carries.
type LightRaySegment struct {
	Tail          geom.Vec2
	Tip           geom.Vec2
	Color         Color
	Wavelength    float64 // nanometers
	PowerFraction float64 // 0..1 share of the source energy
	Type          RayType
}
