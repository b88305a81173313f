package renderer

import (
	"sync"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RowTask represents a scanline rendering task for the worker pool
type RowTask struct {
	Row int
}

// RowResult contains the pixels of a finished scanline
type RowResult struct {
	Row     int
	Pixels  []core.RGB8
	Samples int // Rays actually traced; canceled pixels contribute none
}

// RowFunc renders the scanline described by a task
type RowFunc func(task RowTask) RowResult

// WorkerPool renders rows in parallel. Results arrive in completion order,
// not row order.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	render      RowFunc
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool of numWorkers workers (at least one) with room
// for queueSize pending tasks
func NewWorkerPool(numWorkers, queueSize int, render RowFunc) *WorkerPool {
	numWorkers = max(numWorkers, 1)
	return &WorkerPool{
		taskQueue:   make(chan RowTask, max(queueSize, 0)),
		resultQueue: make(chan RowResult, numWorkers),
		render:      render,
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop closes the task queue, waits for the workers to drain it and then
// closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row; ok is false once the pool has stopped
// and every result has been read
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) run() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		wp.resultQueue <- wp.render(task)
	}
}
