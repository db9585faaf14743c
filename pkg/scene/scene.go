package scene

import (
	"math"

	"github.com/df07/go-bending-light/pkg/geom"
	"github.com/df07/go-bending-light/pkg/optics"
	"github.com/df07/go-bending-light/pkg/trace"
)

// Laser is a directional light source. In white mode it emits a fan of
// wavelengths along the same geometric ray, which a dispersive prism then
// spreads into a spectrum.
type Laser struct {
	Position     geom.Vec2
	Angle        float64 // beam direction in radians from +X
	Wavelength   float64 // nanometers; ignored in white mode
	White        bool
	SpectrumRays int // wavelengths per white beam; 0 means default
}

// DefaultSpectrumRays is the number of wavelengths traced for white light
const DefaultSpectrumRays = 24

// Direction returns the unit beam direction
func (l Laser) Direction() geom.Vec2 {
	sin, cos := math.Sincos(l.Angle)
	return geom.NewVec2(cos, sin)
}

// SourceTasks expands the laser into one trace task per wavelength
func (l Laser) SourceTasks() ([]trace.SourceTask, error) {
	ray, err := geom.NewRay(l.Position, l.Direction())
	if err != nil {
		return nil, err
	}

	if !l.White {
		wavelength := l.Wavelength
		if wavelength == 0 {
			wavelength = optics.RedWavelength
		}
		return []trace.SourceTask{{TaskID: 0, Ray: ray, Wavelength: wavelength}}, nil
	}

	count := l.SpectrumRays
	if count <= 0 {
		count = DefaultSpectrumRays
	}
	if count == 1 {
		// A one-ray fan has no span to divide; emit the band midpoint
		mid := (optics.MinVisibleWavelength + optics.MaxVisibleWavelength) / 2
		return []trace.SourceTask{{TaskID: 0, Ray: ray, Wavelength: mid}}, nil
	}
	span := optics.MaxVisibleWavelength - optics.MinVisibleWavelength
	tasks := make([]trace.SourceTask, count)
	for i := 0; i < count; i++ {
		tasks[i] = trace.SourceTask{
			TaskID:     i,
			Ray:        ray,
			Wavelength: optics.MinVisibleWavelength + span*float64(i)/float64(count-1),
		}
	}
	return tasks, nil
}

// Scene holds the prisms and light source for one simulation setup
type Scene struct {
	Name       string
	Laser      Laser
	HalfExtent float64 // model half-width used to fit the view transform

	ambient optics.Medium
	prisms  []trace.Prism
}

// NewScene creates an empty scene with the given ambient medium
func NewScene(name string, ambient optics.Medium) *Scene {
	return &Scene{Name: name, ambient: ambient, HalfExtent: 3}
}

// AddPrism adds a prism to the scene
func (s *Scene) AddPrism(prism trace.Prism) {
	s.prisms = append(s.prisms, prism)
}

// Prisms implements trace.Scene
func (s *Scene) Prisms() []trace.Prism {
	return s.prisms
}

// AmbientMedium implements trace.Scene
func (s *Scene) AmbientMedium() optics.Medium {
	return s.ambient
}
