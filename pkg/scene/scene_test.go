package scene

import (
	"math"
	"testing"

	"github.com/df07/go-bending-light/pkg/geom"
	"github.com/df07/go-bending-light/pkg/optics"
	"github.com/df07/go-bending-light/pkg/trace"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"triangle scene", "triangle", false},
		{"semicircle scene", "semicircle", false},
		{"lens scene", "lens", false},
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ByName(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s == nil {
				t.Fatal("Expected scene, got nil")
			}
			if len(s.Prisms()) == 0 {
				t.Error("Expected at least one prism")
			}
			if s.HalfExtent <= 0 {
				t.Errorf("Expected positive half extent, got %f", s.HalfExtent)
			}
			if s.AmbientMedium().Name != optics.Air.Name {
				t.Errorf("Expected air ambient, got %s", s.AmbientMedium().Name)
			}
		})
	}
}

func TestNames_AllConstructible(t *testing.T) {
	for _, name := range Names() {
		if _, err := ByName(name); err != nil {
			t.Errorf("Listed scene %q failed to build: %v", name, err)
		}
	}
}

func TestLaser_SourceTasks_Monochromatic(t *testing.T) {
	laser := Laser{
		Position:   geom.NewVec2(-2, 1),
		Angle:      -math.Pi / 6,
		Wavelength: 532,
	}

	tasks, err := laser.SourceTasks()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Wavelength != 532 {
		t.Errorf("Expected wavelength 532, got %f", tasks[0].Wavelength)
	}
	if tasks[0].Ray.Tail != laser.Position {
		t.Errorf("Expected ray tail %v, got %v", laser.Position, tasks[0].Ray.Tail)
	}

	// Zero wavelength falls back to the default red laser
	laser.Wavelength = 0
	tasks, err = laser.SourceTasks()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tasks[0].Wavelength != optics.RedWavelength {
		t.Errorf("Expected default wavelength %f, got %f", optics.RedWavelength, tasks[0].Wavelength)
	}
}

func TestLaser_SourceTasks_WhiteLight(t *testing.T) {
	laser := Laser{
		Position: geom.NewVec2(0, 0),
		Angle:    0,
		White:    true,
	}

	tasks, err := laser.SourceTasks()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(tasks) != DefaultSpectrumRays {
		t.Fatalf("Expected %d tasks, got %d", DefaultSpectrumRays, len(tasks))
	}

	// The fan spans the visible band on a single geometric ray
	if tasks[0].Wavelength != optics.MinVisibleWavelength {
		t.Errorf("Expected first wavelength %f, got %f", optics.MinVisibleWavelength, tasks[0].Wavelength)
	}
	last := tasks[len(tasks)-1]
	if last.Wavelength != optics.MaxVisibleWavelength {
		t.Errorf("Expected last wavelength %f, got %f", optics.MaxVisibleWavelength, last.Wavelength)
	}
	for i, task := range tasks {
		if task.TaskID != i {
			t.Errorf("Expected TaskID %d, got %d", i, task.TaskID)
		}
		if task.Ray != tasks[0].Ray {
			t.Errorf("Expected all tasks to share the same geometric ray")
		}
	}
}

func TestLaser_SourceTasks_WhiteSingleRay(t *testing.T) {
	s, err := NewLensScene()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s.Laser = Laser{
		Position:     geom.NewVec2(-3, 0.4),
		Angle:        0,
		White:        true,
		SpectrumRays: 1,
	}

	tasks, err := s.Laser.SourceTasks()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}

	// A one-ray fan gets the midpoint of the visible band, not NaN
	mid := (optics.MinVisibleWavelength + optics.MaxVisibleWavelength) / 2
	if tasks[0].Wavelength != mid {
		t.Errorf("Expected wavelength %f, got %f", mid, tasks[0].Wavelength)
	}

	segments := trace.NewTracer(s).TraceSegments(tasks)
	if len(segments) == 0 {
		t.Fatal("Expected traced segments")
	}
	for i, seg := range segments {
		if !seg.Tail.IsFinite() || !seg.Tip.IsFinite() {
			t.Errorf("Segment %d has non-finite endpoint: %+v", i, seg)
		}
	}
}

func TestLaser_Direction(t *testing.T) {
	laser := Laser{Angle: math.Pi / 2}
	dir := laser.Direction()
	if math.Abs(dir.X) > 1e-9 || math.Abs(dir.Y-1) > 1e-9 {
		t.Errorf("Expected direction (0,1), got %v", dir)
	}
}

func TestSemiCircleScene_ProducesTotalInternalReflection(t *testing.T) {
	s, err := NewSemiCircleScene()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tasks, err := s.Laser.SourceTasks()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tracer := trace.NewTracer(s)
	segments := tracer.TraceSegments(tasks)
	if len(segments) == 0 {
		t.Fatal("Expected traced segments")
	}

	// The demo is built so the beam reflects internally at the flat face
	sawReflected := false
	for _, seg := range segments {
		if seg.Type == optics.Reflected && seg.PowerFraction > 0.5 {
			sawReflected = true
		}
	}
	if !sawReflected {
		t.Error("Expected a high-power internal reflection in the semicircle scene")
	}
}
