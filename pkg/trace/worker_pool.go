package trace

import (
	"runtime"
	"sort"
	"sync"

	"github.com/df07/go-bending-light/pkg/geom"
	"github.com/df07/go-bending-light/pkg/optics"
)

// SourceTask represents one source ray to trace through the scene
type SourceTask struct {
	TaskID     int // For deterministic ordering of the assembled output
	Ray        geom.Ray
	Wavelength float64
}

// SourceResult contains the traced segments for one source ray
type SourceResult struct {
	TaskID   int
	Segments []optics.LightRaySegment
}

// WorkerPool traces independent source rays in parallel. Geometry queries
// are pure and the tracer holds no mutable state, so workers share a single
// Tracer instance.
type WorkerPool struct {
	taskQueue   chan SourceTask
	resultQueue chan SourceResult
	tracer      *Tracer
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(scene Scene, config TraceConfig, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	tracer := NewTracer(scene)
	tracer.SetConfig(config)

	return &WorkerPool{
		tracer:     tracer,
		numWorkers: numWorkers,
	}
}

// TraceAll traces every task and returns the combined segments in task
// order, so the output is deterministic regardless of worker scheduling.
func (wp *WorkerPool) TraceAll(tasks []SourceTask) []optics.LightRaySegment {
	wp.taskQueue = make(chan SourceTask, len(tasks))
	wp.resultQueue = make(chan SourceResult, len(tasks))

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}

	for _, task := range tasks {
		wp.taskQueue <- task
	}
	close(wp.taskQueue)

	results := make([]SourceResult, 0, len(tasks))
	for range tasks {
		results = append(results, <-wp.resultQueue)
	}
	wp.wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].TaskID < results[j].TaskID
	})

	var segments []optics.LightRaySegment
	for _, result := range results {
		segments = append(segments, result.Segments...)
	}
	return segments
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.resultQueue <- SourceResult{
			TaskID:   task.TaskID,
			Segments: wp.tracer.Trace(task.Ray, task.Wavelength),
		}
	}
}
