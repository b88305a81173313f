package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrCanceled is returned when the caller's context ends before the image is written
var ErrCanceled = errors.New("render canceled")

// Renderer renders a world through a camera into an ImageSink
type Renderer struct {
	id        uuid.UUID
	raytracer *Raytracer
	config    RenderConfig
	logger    core.Logger
}

// NewRenderer validates config and sizes the image from the camera's aspect ratio
func NewRenderer(world World, camera Camera, config RenderConfig, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	width := config.Width(camera.AspectRatio())
	return &Renderer{
		id:        uuid.New(),
		raytracer: NewRaytracer(world, camera, width, config.Height, config),
		config:    config,
		logger:    logger,
	}, nil
}

// ID returns the render id used in log records and stats
func (r *Renderer) ID() string {
	return r.id.String()
}

// Size returns the image dimensions
func (r *Renderer) Size() (width, height int) {
	return r.raytracer.Size()
}

// Render computes every pixel and writes the image to sink in row-major
// order, top row first. Render closes the sink before returning.
//
// A write failure stops sampling for the remaining pixels and is returned.
// Canceling ctx does the same and returns an error wrapping ErrCanceled.
func (r *Renderer) Render(ctx context.Context, sink ImageSink) (RenderStats, error) {
	width, height := r.raytracer.Size()
	stats := RenderStats{
		RenderID:        r.ID(),
		Width:           width,
		Height:          height,
		Workers:         r.config.ResolveWorkers(),
		Seed:            r.seed(),
		SamplesPerPixel: r.config.Samples,
	}
	start := time.Now()

	if err := ctx.Err(); err != nil {
		sink.Close()
		return stats, fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	if err := sink.Begin(width, height); err != nil {
		r.logger.Errorf("render %s: %v", r.id, err)
		sink.Close()
		return stats, err
	}

	var canceled atomic.Bool
	stop := context.AfterFunc(ctx, func() { canceled.Store(true) })
	defer stop()

	r.logger.Infof("render %s: %dx%d, %d samples, depth %d, %d workers, seed %d",
		r.id, width, height, r.config.Samples, r.config.MaxDepth, stats.Workers, stats.Seed)

	seed := stats.Seed
	pool := NewWorkerPool(stats.Workers, height, func(task RowTask) RowResult {
		sampler := core.NewSeededSampler(rowSeed(seed, task.Row))
		return r.raytracer.RenderRow(task.Row, sampler, &canceled)
	})
	pool.Start()
	go func() {
		for row := 0; row < height; row++ {
			pool.SubmitTask(RowTask{Row: row})
		}
		pool.Stop()
	}()

	writeErr := writeInOrder(pool, sink, height, &canceled, &stats, r.logger)
	closeErr := sink.Close()
	stats.Duration = time.Since(start)

	switch {
	case writeErr != nil:
		return stats, writeErr
	case ctx.Err() != nil && stats.RowsWritten < height:
		r.logger.Warnf("render %s: canceled after %d of %d rows", r.id, stats.RowsWritten, height)
		return stats, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
	case closeErr != nil:
		r.logger.Errorf("render %s: %v", r.id, closeErr)
		return stats, closeErr
	}

	r.logger.Infof("render %s: %d pixels, %d samples in %v (%.0f pixels/s)",
		r.id, stats.TotalPixels, stats.TotalSamples, stats.Duration.Round(time.Millisecond), stats.PixelsPerSecond())
	return stats, nil
}

// seed returns the configured seed or a fresh one for this render
func (r *Renderer) seed() int64 {
	if r.config.Seed != nil {
		return *r.config.Seed
	}
	return time.Now().UnixNano()
}

// writeInOrder drains the pool and flushes rows to sink in ascending order.
// After a write fails, canceled is set and later rows are drained unwritten.
func writeInOrder(pool *WorkerPool, sink ImageSink, height int, canceled *atomic.Bool, stats *RenderStats, logger core.Logger) error {
	buffer := NewReorderBuffer()
	var writeErr error

	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.TotalSamples += result.Samples
		buffer.Push(result)

		for {
			next, ok := buffer.Pop()
			if !ok {
				break
			}
			if writeErr != nil || canceled.Load() {
				continue
			}
			if err := sink.WriteRow(next.Pixels); err != nil {
				writeErr = fmt.Errorf("failed to write row %d: %w", next.Row, err)
				canceled.Store(true)
				logger.Errorf("%v", writeErr)
				continue
			}
			stats.RowsWritten++
			stats.TotalPixels += len(next.Pixels)
			logger.Debugf("scanlines remaining: %d", height-stats.RowsWritten)
		}
	}

	return writeErr
}
