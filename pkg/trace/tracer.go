package trace

import (
	"math"

	"github.com/df07/go-bending-light/pkg/geom"
	"github.com/df07/go-bending-light/pkg/optics"
	"github.com/df07/go-bending-light/pkg/shape"
)

// Logger interface for tracer diagnostics
type Logger interface {
	Printf(format string, args ...interface{})
}

// Prism pairs a shape with the optical medium filling it
type Prism struct {
	Shape  shape.Shape
	Medium optics.Medium
}

// Scene interface to avoid circular imports with the scene package
type Scene interface {
	Prisms() []Prism
	AmbientMedium() optics.Medium
}

// TraceConfig contains light transport configuration
type TraceConfig struct {
	MaxDepth int     // maximum reflection/refraction splits per source ray
	MinPower float64 // rays below this power fraction are dropped
	Extent   float64 // model-space length of rays that exit the scene
}

// DefaultTraceConfig returns sensible default values
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		MaxDepth: 50,
		MinPower: 0.005,
		Extent:   20.0,
	}
}

// Tracer walks light rays through the scene, splitting them at medium
// boundaries into reflected and transmitted segments. It holds no mutable
// state between calls, so a single Tracer is safe to share across
// goroutines.
type Tracer struct {
	scene  Scene
	config TraceConfig
	logger Logger
}

// NewTracer creates a tracer for a scene
func NewTracer(scene Scene) *Tracer {
	return &Tracer{scene: scene, config: DefaultTraceConfig()}
}

// SetConfig updates the transport configuration
func (tr *Tracer) SetConfig(config TraceConfig) {
	tr.config = config
}

// SetLogger installs a diagnostics logger; nil disables logging
func (tr *Tracer) SetLogger(logger Logger) {
	tr.logger = logger
}

func (tr *Tracer) logf(format string, args ...interface{}) {
	if tr.logger != nil {
		tr.logger.Printf(format, args...)
	}
}

// Trace propagates a single source ray of the given wavelength through the
// scene and returns every light segment it produces, in emission order.
// Malformed input produces no segments rather than segments with non-finite
// endpoints, so one bad source ray cannot poison a frame.
func (tr *Tracer) Trace(ray geom.Ray, wavelength float64) []optics.LightRaySegment {
	if !ray.Tail.IsFinite() || !ray.Direction.IsFinite() ||
		math.IsNaN(wavelength) || math.IsInf(wavelength, 0) {
		return nil
	}

	var segments []optics.LightRaySegment
	tr.propagate(ray, wavelength, 1.0, optics.Incident, tr.config.MaxDepth, &segments)
	return segments
}

// TraceSegments propagates source rays sequentially, skipping malformed
// rays so one bad input cannot take down a whole frame.
func (tr *Tracer) TraceSegments(tasks []SourceTask) []optics.LightRaySegment {
	var segments []optics.LightRaySegment
	for _, task := range tasks {
		if !task.Ray.Tail.IsFinite() || !task.Ray.Direction.IsFinite() {
			tr.logf("trace: skipping malformed source ray %+v\n", task.Ray)
			continue
		}
		segments = append(segments, tr.Trace(task.Ray, task.Wavelength)...)
	}
	return segments
}

// surfaceOffset nudges a spawned ray off the boundary it was created on so
// it cannot immediately re-hit the same surface.
const surfaceOffset = 1e-9

// propagate emits the segment from the ray tail to its first boundary hit
// (or to the scene extent) and recurses on the reflected and transmitted
// rays with Fresnel-split power fractions.
func (tr *Tracer) propagate(ray geom.Ray, wavelength, power float64, rayType optics.RayType, depth int, out *[]optics.LightRaySegment) {
	if depth <= 0 || power < tr.config.MinPower {
		return
	}

	color := optics.WavelengthToRGB(wavelength)

	hit, prismIndex, found := tr.nearestIntersection(ray)
	if !found {
		*out = append(*out, optics.LightRaySegment{
			Tail:          ray.Tail,
			Tip:           ray.At(tr.config.Extent),
			Color:         color,
			Wavelength:    wavelength,
			PowerFraction: power,
			Type:          rayType,
		})
		return
	}

	*out = append(*out, optics.LightRaySegment{
		Tail:          ray.Tail,
		Tip:           hit.Point,
		Color:         color,
		Wavelength:    wavelength,
		PowerFraction: power,
		Type:          rayType,
	})

	// Media on each side of the boundary determine the refraction ratio
	n1 := tr.mediumAt(hit.Point.Subtract(ray.Direction.Multiply(1e-6)), prismIndex).IndexAt(wavelength)
	n2 := tr.mediumAt(hit.Point.Add(ray.Direction.Multiply(1e-6)), -1).IndexAt(wavelength)
	etaRatio := n1 / n2

	cosTheta := math.Min(-ray.Direction.Dot(hit.Normal), 1.0)
	reflectedDir := optics.Reflect(ray.Direction, hit.Normal)
	reflectedRay := geom.Ray{
		Tail:      hit.Point.Add(reflectedDir.Multiply(surfaceOffset)),
		Direction: reflectedDir,
	}

	refractedDir, canRefract := optics.Refract(ray.Direction, hit.Normal, etaRatio)
	if !canRefract {
		// Total internal reflection carries all the power
		tr.propagate(reflectedRay, wavelength, power, optics.Reflected, depth-1, out)
		return
	}

	reflectance := optics.Reflectance(cosTheta, etaRatio)
	tr.propagate(reflectedRay, wavelength, power*reflectance, optics.Reflected, depth-1, out)

	refractedRay := geom.Ray{
		Tail:      hit.Point.Add(refractedDir.Multiply(surfaceOffset)),
		Direction: refractedDir,
	}
	tr.propagate(refractedRay, wavelength, power*(1-reflectance), optics.Transmitted, depth-1, out)
}

// nearestIntersection finds the closest boundary crossing across all
// prisms. Shapes impose no ordering on their intersections, so every
// candidate is measured along the ray here.
func (tr *Tracer) nearestIntersection(ray geom.Ray) (shape.Intersection, int, bool) {
	var best shape.Intersection
	bestIndex := -1
	bestT := math.Inf(1)

	for i, prism := range tr.scene.Prisms() {
		for _, hit := range prism.Shape.Intersections(ray) {
			t := hit.Point.Subtract(ray.Tail).Dot(ray.Direction)
			if t > surfaceOffset && t < bestT {
				bestT = t
				best = hit
				bestIndex = i
			}
		}
	}

	return best, bestIndex, bestIndex >= 0
}

// mediumAt returns the medium at a point: the first prism containing it, or
// the ambient medium. preferIndex is checked first so that a point just
// inside the prism that produced a hit resolves to that prism even when
// prisms overlap.
func (tr *Tracer) mediumAt(p geom.Vec2, preferIndex int) optics.Medium {
	prisms := tr.scene.Prisms()
	if preferIndex >= 0 && preferIndex < len(prisms) && prisms[preferIndex].Shape.Contains(p) {
		return prisms[preferIndex].Medium
	}
	for _, prism := range prisms {
		if prism.Shape.Contains(p) {
			return prism.Medium
		}
	}
	return tr.scene.AmbientMedium()
}
