package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// recordingSink keeps every row and can fail on a chosen row
type recordingSink struct {
	width, height int
	rows          [][]core.RGB8
	failAt        int // -1 never fails
	beginErr      error
	closed        bool
	onClose       func()
}

func newRecordingSink() *recordingSink {
	return &recordingSink{failAt: -1}
}

func (s *recordingSink) Begin(width, height int) error {
	s.width, s.height = width, height
	return s.beginErr
}

func (s *recordingSink) WriteRow(pixels []core.RGB8) error {
	if len(s.rows) == s.failAt {
		return errBrokenPipe
	}
	s.rows = append(s.rows, pixels)
	return nil
}

func (s *recordingSink) Close() error {
	s.closed = true
	if s.onClose != nil {
		s.onClose()
	}
	return nil
}

var errBrokenPipe = errors.New("broken pipe")

func testScene(t *testing.T) (*geometry.World, *geometry.Camera) {
	t.Helper()
	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewColor(0.8, 0.8, 0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewGlass(1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.3)),
	}
	world, err := geometry.NewWorld(objects, nil, 0, 0, core.NewSeededSampler(1))
	require.NoError(t, err)

	config := geometry.DefaultCameraConfig()
	config.AspectRatio = 2
	camera, err := geometry.NewCamera(config)
	require.NoError(t, err)
	return world, camera
}

func renderPPM(t *testing.T, world World, camera Camera, config RenderConfig) string {
	t.Helper()
	renderer, err := NewRenderer(world, camera, config, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = renderer.Render(context.Background(), NewPPMWriter(&buf))
	require.NoError(t, err)
	return buf.String()
}

func TestRender_TwoByOneSphere(t *testing.T) {
	center := core.NewVec3(0, 0, -1)
	world, err := geometry.NewWorld(
		[]geometry.Hittable{geometry.NewSphere(center, 1, normalMaterial{center: center})},
		geometry.SkyBackground, 0, 0, core.NewSeededSampler(1))
	require.NoError(t, err)

	cameraConfig := geometry.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(1.5, 0, 0)
	cameraConfig.LookAt = core.NewVec3(1.5, 0, -1)
	cameraConfig.AspectRatio = 2
	camera, err := geometry.NewCamera(cameraConfig)
	require.NoError(t, err)

	config := RenderConfig{Height: 1, Samples: 1, MaxDepth: 1, Gamma: false, Parallel: false}
	output := renderPPM(t, world, camera, config)

	// Left pixel looks through the lower-left corner and hits the sphere
	leftRay := camera.GetRay(0, 0, nil)
	hit, ok := world.Hit(leftRay, hitEpsilon, math.Inf(1), nil)
	require.True(t, ok)
	left := core.ToRGB8(hit.Material.Emitted(hit.U, hit.V, hit.Point))
	assertNormalColor(t, hit)

	// Right pixel misses and shows the sky
	rightRay := camera.GetRay(0.5, 0, nil)
	_, ok = world.Hit(rightRay, hitEpsilon, math.Inf(1), nil)
	require.False(t, ok)
	right := core.ToRGB8(geometry.SkyBackground(rightRay))

	require.True(t, strings.HasPrefix(output, "P3\n2 1\n255\n"))
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(output, "P3\n2 1\n255\n"), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, fmt.Sprintf("%d %d %d", left.R, left.G, left.B), lines[0])
	assert.Equal(t, fmt.Sprintf("%d %d %d", right.R, right.G, right.B), lines[1])
	assert.NotEqual(t, lines[0], lines[1])
}

// assertNormalColor checks that the test material really shades by the surface normal
func assertNormalColor(t *testing.T, hit *material.HitRecord) {
	t.Helper()
	want := hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
	got := hit.Material.Emitted(hit.U, hit.V, hit.Point)
	assert.InDelta(t, 0, want.Subtract(got).Length(), 1e-9)
}

func TestRender_SeededIsDeterministic(t *testing.T) {
	world, camera := testScene(t)

	config := DefaultRenderConfig().WithSeed(42)
	config.Height = 10
	config.Samples = 4
	config.MaxDepth = 6

	sequential := config
	sequential.Parallel = false
	first := renderPPM(t, world, camera, sequential)
	second := renderPPM(t, world, camera, sequential)
	assert.Equal(t, first, second, "same seed, same bytes")

	parallel := config
	parallel.Workers = 4
	assert.Equal(t, first, renderPPM(t, world, camera, parallel), "parallel output matches sequential output")

	other := sequential.WithSeed(43)
	assert.NotEqual(t, first, renderPPM(t, world, camera, other))
}

func TestRender_Stats(t *testing.T) {
	world, camera := testScene(t)
	config := RenderConfig{Height: 6, Samples: 3, MaxDepth: 4, Gamma: true, Parallel: true, Workers: 3}

	renderer, err := NewRenderer(world, camera, config, nil)
	require.NoError(t, err)
	width, height := renderer.Size()
	assert.Equal(t, 12, width)
	assert.Equal(t, 6, height)

	sink := newRecordingSink()
	stats, err := renderer.Render(context.Background(), sink)
	require.NoError(t, err)

	assert.True(t, sink.closed)
	assert.Len(t, sink.rows, 6)
	assert.Equal(t, renderer.ID(), stats.RenderID)
	assert.Equal(t, 3, stats.Workers)
	assert.Equal(t, 6, stats.RowsWritten)
	assert.Equal(t, 72, stats.TotalPixels)
	assert.Equal(t, 72*3, stats.TotalSamples)
	assert.InDelta(t, 3.0, stats.AverageSamples(), 1e-12)
}

func TestRender_WriteFailureCancels(t *testing.T) {
	world, camera := testScene(t)
	config := RenderConfig{Height: 20, Samples: 2, MaxDepth: 4, Parallel: true, Workers: 4}

	renderer, err := NewRenderer(world, camera, config, nil)
	require.NoError(t, err)

	sink := newRecordingSink()
	sink.failAt = 2
	stats, err := renderer.Render(context.Background(), sink)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBrokenPipe)
	assert.True(t, sink.closed)
	assert.Len(t, sink.rows, 2)
	assert.Equal(t, 2, stats.RowsWritten)
	assert.LessOrEqual(t, stats.TotalSamples, 20*40*2)
}

func TestRender_PPMWriteFailureStopsSampling(t *testing.T) {
	world, camera := testScene(t)
	config := RenderConfig{Height: 60, Samples: 8, MaxDepth: 4, Parallel: false}.WithSeed(1)
	renderer, err := NewRenderer(world, camera, config, nil)
	require.NoError(t, err)

	// The header goes through, the first row does not
	boom := errors.New("disk full")
	out := &limitedWriter{limit: 1, err: boom}
	stats, err := renderer.Render(context.Background(), NewPPMWriter(out))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "row 0")
	assert.Equal(t, 0, stats.RowsWritten)
	assert.Equal(t, "P3\n120 60\n255\n", out.buf.String())

	full := stats.Width * stats.Height * config.Samples
	assert.Less(t, stats.TotalSamples, full/2, "sampling stops soon after the failed row")
}

func TestRender_PPMHeaderFailure(t *testing.T) {
	world, camera := testScene(t)
	renderer, err := NewRenderer(world, camera, RenderConfig{Height: 20, Samples: 4, MaxDepth: 2, Parallel: true}, nil)
	require.NoError(t, err)

	boom := errors.New("disk full")
	stats, err := renderer.Render(context.Background(), NewPPMWriter(failingWriter{err: boom}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, stats.TotalSamples)
}

func TestRender_CancelAfterLastRowIsComplete(t *testing.T) {
	world, camera := testScene(t)
	renderer, err := NewRenderer(world, camera, RenderConfig{Height: 4, Samples: 1, MaxDepth: 2, Parallel: true}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink := newRecordingSink()
	sink.onClose = cancel

	stats, err := renderer.Render(ctx, sink)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.RowsWritten)
	assert.Len(t, sink.rows, 4)
}

func TestRender_HeaderFailureRendersNothing(t *testing.T) {
	world, camera := testScene(t)
	renderer, err := NewRenderer(world, camera, RenderConfig{Height: 4, Samples: 1, MaxDepth: 2, Parallel: true}, nil)
	require.NoError(t, err)

	sink := newRecordingSink()
	sink.beginErr = errBrokenPipe
	stats, err := renderer.Render(context.Background(), sink)
	assert.ErrorIs(t, err, errBrokenPipe)
	assert.Equal(t, 0, stats.TotalSamples)
	assert.True(t, sink.closed)
}

func TestRender_CanceledContext(t *testing.T) {
	world, camera := testScene(t)
	renderer, err := NewRenderer(world, camera, RenderConfig{Height: 4, Samples: 1, MaxDepth: 2, Parallel: true}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := newRecordingSink()
	stats, err := renderer.Render(ctx, sink)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, stats.TotalSamples)
	assert.Empty(t, sink.rows)
}

func TestNewRenderer_InvalidConfig(t *testing.T) {
	world, camera := testScene(t)
	_, err := NewRenderer(world, camera, RenderConfig{Height: 0, Samples: 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRender_NullSink(t *testing.T) {
	world, camera := testScene(t)
	renderer, err := NewRenderer(world, camera, RenderConfig{Height: 4, Samples: 1, MaxDepth: 2, Parallel: true}, nil)
	require.NoError(t, err)

	stats, err := renderer.Render(context.Background(), NewNullSink())
	require.NoError(t, err)
	assert.Equal(t, 32, stats.TotalPixels)
}

func TestWriteInOrder_ReversedCompletion(t *testing.T) {
	const height = 8

	// Row r may only finish after row r+1, so rows complete bottom to top
	done := make([]chan struct{}, height+1)
	for i := range done {
		done[i] = make(chan struct{})
	}
	close(done[height])

	var mu sync.Mutex
	var completed []int
	pool := NewWorkerPool(height, height, func(task RowTask) RowResult {
		<-done[task.Row+1]
		mu.Lock()
		completed = append(completed, task.Row)
		mu.Unlock()
		close(done[task.Row])
		return RowResult{Row: task.Row, Pixels: []core.RGB8{{R: uint8(task.Row)}}, Samples: 1}
	})
	pool.Start()
	go func() {
		for row := 0; row < height; row++ {
			pool.SubmitTask(RowTask{Row: row})
		}
		pool.Stop()
	}()

	var canceled atomic.Bool
	var stats RenderStats
	sink := newRecordingSink()
	require.NoError(t, writeInOrder(pool, sink, height, &canceled, &stats, core.NopLogger{}))

	assert.Equal(t, []int{7, 6, 5, 4, 3, 2, 1, 0}, completed)
	require.Len(t, sink.rows, height)
	for row, pixels := range sink.rows {
		assert.Equal(t, uint8(row), pixels[0].R, "row %d written out of order", row)
	}
	assert.Equal(t, height, stats.RowsWritten)
	assert.Equal(t, height, stats.TotalSamples)
}
