package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-bending-light/pkg/geom"
	"github.com/df07/go-bending-light/pkg/optics"
	"github.com/df07/go-bending-light/pkg/shape"
	"github.com/df07/go-bending-light/pkg/trace"
)

// NewTriangleScene builds the classic dispersion demo: a white beam
// entering a glass triangle and fanning into a spectrum.
func NewTriangleScene() (*Scene, error) {
	s := NewScene("triangle", optics.Air)
	s.HalfExtent = 3.5

	// Equilateral prism centered on the origin, apex up
	circumradius := 1.2
	triangle, err := shape.NewPolygon([]geom.Vec2{
		geom.NewVec2(0, circumradius),
		geom.NewVec2(-circumradius*math.Sin(math.Pi/3), -circumradius/2),
		geom.NewVec2(circumradius*math.Sin(math.Pi/3), -circumradius/2),
	}, 0)
	if err != nil {
		return nil, err
	}
	s.AddPrism(trace.Prism{Shape: triangle, Medium: optics.Glass})

	// Aim the beam at the midpoint of the left face
	s.Laser = Laser{
		Position: geom.NewVec2(-2.8, 0.8),
		Angle:    -0.216,
		White:    true,
	}
	return s, nil
}

// NewSemiCircleScene builds the total internal reflection demo: a beam
// enters the half-disc radially through the arc and strikes the flat face
// at 45 degrees, past the critical angle of glass.
func NewSemiCircleScene() (*Scene, error) {
	s := NewScene("semicircle", optics.Air)
	s.HalfExtent = 3

	// Flat face along the X axis, arc bulging down
	half, err := shape.NewSemiCircle(geom.NewVec2(1, 0), geom.NewVec2(-1, 0), 1, 0)
	if err != nil {
		return nil, err
	}
	s.AddPrism(trace.Prism{Shape: half, Medium: optics.Glass})

	s.Laser = Laser{
		Position:   geom.NewVec2(-2, -2),
		Angle:      math.Pi / 4,
		Wavelength: optics.RedWavelength,
	}
	return s, nil
}

// NewLensScene builds a circular lens focusing an off-axis beam
func NewLensScene() (*Scene, error) {
	s := NewScene("lens", optics.Air)
	s.HalfExtent = 3

	lens, err := shape.NewCircle(geom.NewVec2(0, 0), 1)
	if err != nil {
		return nil, err
	}
	s.AddPrism(trace.Prism{Shape: lens, Medium: optics.Glass})

	s.Laser = Laser{
		Position:   geom.NewVec2(-3, 0.4),
		Angle:      0,
		Wavelength: optics.RedWavelength,
	}
	return s, nil
}

// ByName returns the preset scene with the given name
func ByName(name string) (*Scene, error) {
	switch name {
	case "triangle":
		return NewTriangleScene()
	case "semicircle":
		return NewSemiCircleScene()
	case "lens":
		return NewLensScene()
	default:
		return nil, fmt.Errorf("unknown scene type: %s", name)
	}
}

// Names lists the available preset scenes
func Names() []string {
	return []string{"triangle", "semicircle", "lens"}
}
