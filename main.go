package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"

	"github.com/df07/go-bending-light/pkg/geom"
	"github.com/df07/go-bending-light/pkg/render"
	"github.com/df07/go-bending-light/pkg/scene"
	"github.com/df07/go-bending-light/pkg/trace"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "triangle", "Scene type: 'triangle', 'semicircle' or 'lens'")
	width := flag.Int("width", 800, "Output width in pixels")
	height := flag.Int("height", 600, "Output height in pixels")
	workers := flag.Int("workers", 0, "Trace workers (0 = all CPUs)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Bending Light")
		fmt.Println("Usage: bending-light [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  triangle   - White beam dispersing through a glass triangle")
		fmt.Println("  semicircle - Total internal reflection in a glass half-disc")
		fmt.Println("  lens       - Red beam focused by a circular glass lens")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.png")
		return
	}

	selectedScene, err := scene.ByName(*sceneType)
	if err != nil {
		fmt.Printf("Error: %v (available: %v)\n", err, scene.Names())
		os.Exit(1)
	}

	fmt.Printf("Tracing %q scene...\n", selectedScene.Name)
	startTime := time.Now()

	img, stats, err := renderScene(selectedScene, *width, *height, *workers)
	if err != nil {
		fmt.Printf("Error rendering scene: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Traced %d segments into %d splats in %v\n",
		stats.SegmentCount, stats.SplatCount, time.Since(startTime))

	// Create output directory for this scene type
	outputDir := filepath.Join("output", selectedScene.Name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// renderStats summarizes one snapshot render
type renderStats struct {
	SegmentCount int
	SplatCount   int
}

// renderScene traces the scene's light and composites it over the prism
// outlines, returning the finished frame.
func renderScene(s *scene.Scene, width, height, workers int) (image.Image, renderStats, error) {
	transform := geom.FitTransform(s.HalfExtent, width, height)

	tasks, err := s.Laser.SourceTasks()
	if err != nil {
		return nil, renderStats{}, err
	}

	pool := trace.NewWorkerPool(s, trace.DefaultTraceConfig(), workers)
	segments := pool.TraceAll(tasks)

	splats, err := render.NewRenderer(width, height).Render(segments, transform)
	if err != nil {
		return nil, renderStats{}, err
	}

	// Dark background so additive light reads the way it does against a lab wall
	dc := gg.NewContext(width, height)
	dc.SetRGB(0.05, 0.05, 0.09)
	dc.Clear()
	scene.Draw(dc, s, transform)

	img := dc.Image().(*image.RGBA)
	render.Compose(splats, img)

	return img, renderStats{SegmentCount: len(segments), SplatCount: len(splats)}, nil
}
