package render

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-bending-light/pkg/geom"
	"github.com/df07/go-bending-light/pkg/optics"
)

// viewTransform maps model coordinates directly onto view pixels (scale 1,
// origin at the top-left, model +Y down-flipped away)
func viewTransform() geom.ModelViewTransform {
	return geom.NewModelViewTransform(1, geom.NewVec2(0, 0))
}

func redSegment(tail, tip geom.Vec2) optics.LightRaySegment {
	return optics.LightRaySegment{
		Tail:          tail,
		Tip:           tip,
		Color:         optics.Color{R: 255},
		Wavelength:    optics.RedWavelength,
		PowerFraction: 1.0,
		Type:          optics.Incident,
	}
}

func TestRenderer_OffCanvasSegmentIsEmpty(t *testing.T) {
	renderer := NewRenderer(100, 100)

	// Both endpoints far outside the output bounds
	splats, err := renderer.Render([]optics.LightRaySegment{
		redSegment(geom.NewVec2(-50, -10), geom.NewVec2(-10, -50)),
	}, viewTransform())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(splats) != 0 {
		t.Errorf("Expected empty pixel map, got %d splats", len(splats))
	}
}

func TestRenderer_SingleRedSegment(t *testing.T) {
	renderer := NewRenderer(100, 100)

	splats, err := renderer.Render([]optics.LightRaySegment{
		redSegment(geom.NewVec2(10, -50), geom.NewVec2(20, -50)),
	}, viewTransform())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 11 pixels walked, each depositing at the pixel and two half-steps
	if len(splats) != 33 {
		t.Errorf("Expected 33 splats, got %d", len(splats))
	}

	for _, s := range splats {
		// A pure red ray normalizes to the white-limited red maximum
		if s.Color.R != 204 {
			t.Errorf("Expected R=204 after normalization, got %d", s.Color.R)
		}
		if s.Color.G != 0 || s.Color.B != 0 {
			t.Errorf("Expected no green/blue, got %+v", s.Color)
		}
		if s.Color.A == 0 || s.Color.A == 255 {
			t.Errorf("Expected partial opacity for a single ray, got %d", s.Color.A)
		}
	}
}

func TestRenderer_AdditiveColorMixing(t *testing.T) {
	renderer := NewRenderer(100, 100)

	// Two coincident full-power rays, one red and one green: additive
	// mixing must trend toward yellow, not average toward half-bright
	red := redSegment(geom.NewVec2(10, -50), geom.NewVec2(30, -50))
	green := red
	green.Color = optics.Color{G: 255}

	splats, err := renderer.Render([]optics.LightRaySegment{red, green}, viewTransform())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(splats) == 0 {
		t.Fatal("Expected lit pixels")
	}

	for _, s := range splats {
		if s.Color.R != 204 || s.Color.G != 204 {
			t.Errorf("Expected both channels at the normalized maximum (204,204), got %+v", s.Color)
		}
	}
}

func TestRenderer_Idempotent(t *testing.T) {
	renderer := NewRenderer(100, 100)
	segments := []optics.LightRaySegment{
		redSegment(geom.NewVec2(5, -20), geom.NewVec2(60, -80)),
		redSegment(geom.NewVec2(0, -50), geom.NewVec2(99, -50)),
	}

	first, err := renderer.Render(segments, viewTransform())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := renderer.Render(segments, viewTransform())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// No state leaks between frames: output is bit-identical
	if len(first) != len(second) {
		t.Fatalf("Expected identical splat counts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Splat %d differs between renders: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRenderer_StartsWalkInBounds(t *testing.T) {
	renderer := NewRenderer(50, 50)

	// Tail far off-canvas, tip inside: the walk must start from the tip
	// side and still light the in-bounds stretch of the line
	splats, err := renderer.Render([]optics.LightRaySegment{
		redSegment(geom.NewVec2(-500, -25), geom.NewVec2(25, -25)),
	}, viewTransform())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 26 pixels from (25,25) back to (0,25), 3 deposits each
	if len(splats) != 78 {
		t.Errorf("Expected 78 splats, got %d", len(splats))
	}
}

func TestRenderer_RejectsNonFiniteCoordinates(t *testing.T) {
	renderer := NewRenderer(100, 100)

	tests := []struct {
		name string
		seg  optics.LightRaySegment
	}{
		{"NaN tail", redSegment(geom.NewVec2(math.NaN(), 0), geom.NewVec2(10, -10))},
		{"infinite tip", redSegment(geom.NewVec2(10, -10), geom.NewVec2(math.Inf(1), 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := renderer.Render([]optics.LightRaySegment{tt.seg}, viewTransform())
			if !errors.Is(err, geom.ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestRenderer_IntensityRaisesOpacity(t *testing.T) {
	renderer := NewRenderer(100, 100)
	tf := viewTransform()

	one, err := renderer.Render([]optics.LightRaySegment{
		redSegment(geom.NewVec2(10, -50), geom.NewVec2(20, -50)),
	}, tf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	many := make([]optics.LightRaySegment, 10)
	for i := range many {
		many[i] = redSegment(geom.NewVec2(10, -50), geom.NewVec2(20, -50))
	}
	stacked, err := renderer.Render(many, tf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(one) == 0 || len(stacked) == 0 {
		t.Fatal("Expected lit pixels in both renders")
	}
	if stacked[0].Color.A <= one[0].Color.A {
		t.Errorf("Expected stacked rays to be more opaque: %d <= %d", stacked[0].Color.A, one[0].Color.A)
	}
}

func TestCompose(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	splats := []Splat{
		{X: 5, Y: 5, Color: color.RGBA{R: 200, A: 255}},
		{X: 50, Y: 50, Color: color.RGBA{R: 200, A: 255}}, // outside, ignored
	}
	Compose(splats, img)

	if got := img.RGBAAt(5, 5); got.R == 0 {
		t.Errorf("Expected red contribution at (5,5), got %+v", got)
	}
	if got := img.RGBAAt(0, 0); got.R != 0 {
		t.Errorf("Expected untouched background at (0,0), got %+v", got)
	}
}
