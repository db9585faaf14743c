package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-bending-light/pkg/geom"
	"github.com/df07/go-bending-light/pkg/render"
	"github.com/df07/go-bending-light/pkg/scene"
	"github.com/df07/go-bending-light/pkg/trace"
)

// Server handles render requests for the bending-light simulation
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new render server
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	return s
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting render server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// Handler exposes the route table, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.mux
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Preset scene name (e.g., "triangle")
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height
	Workers int    `json:"workers"` // Trace workers (0 = all CPUs)
}

// RenderResponse carries one rendered frame and its statistics
type RenderResponse struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// Stats represents render statistics
type Stats struct {
	SegmentCount int   `json:"segmentCount"`
	SplatCount   int   `json:"splatCount"`
	ElapsedMs    int64 `json:"elapsedMs"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the available preset scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"scenes": scene.Names()})
}

// handleRender traces and rasterizes one frame and returns it as JSON
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	if req.Width <= 0 {
		req.Width = 800
	}
	if req.Height <= 0 {
		req.Height = 600
	}

	selectedScene, err := scene.ByName(req.Scene)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	startTime := time.Now()
	img, stats, err := renderFrame(selectedScene, req.Width, req.Height, req.Workers)
	if err != nil {
		log.Printf("Render failed for scene %q: %v", req.Scene, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	stats.ElapsedMs = time.Since(startTime).Milliseconds()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RenderResponse{
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats:     stats,
	})
}

// renderFrame runs the trace/accumulate pipeline for one frame. The server
// draws no prism overlay; clients lay their own UI over the light image.
func renderFrame(s *scene.Scene, width, height, workers int) (image.Image, Stats, error) {
	transform := geom.FitTransform(s.HalfExtent, width, height)

	tasks, err := s.Laser.SourceTasks()
	if err != nil {
		return nil, Stats{}, err
	}

	pool := trace.NewWorkerPool(s, trace.DefaultTraceConfig(), workers)
	segments := pool.TraceAll(tasks)

	splats, err := render.NewRenderer(width, height).Render(segments, transform)
	if err != nil {
		return nil, Stats{}, err
	}

	// Opaque black background; light is composited over it
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	render.Compose(splats, img)

	return img, Stats{SegmentCount: len(segments), SplatCount: len(splats)}, nil
}
