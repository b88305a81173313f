package renderer

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
)

type failingWriter struct{ err error }

func (w failingWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestPPMWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewPPMWriter(&buf)

	require.NoError(t, w.Begin(2, 2))
	require.NoError(t, w.WriteRow([]core.RGB8{{R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 0}}))
	require.NoError(t, w.WriteRow([]core.RGB8{{R: 0, G: 0, B: 255}, {R: 12, G: 34, B: 56}}))
	require.NoError(t, w.Close())

	assert.Equal(t, "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n12 34 56\n", buf.String())
}

// limitedWriter accepts a fixed number of Write calls and then fails
type limitedWriter struct {
	buf   bytes.Buffer
	calls int
	limit int
	err   error
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls > w.limit {
		return 0, w.err
	}
	return w.buf.Write(p)
}

func TestPPMWriter_RowsReachWriterImmediately(t *testing.T) {
	var buf bytes.Buffer
	w := NewPPMWriter(&buf)

	require.NoError(t, w.Begin(1, 2))
	assert.Equal(t, "P3\n1 2\n255\n", buf.String())
	require.NoError(t, w.WriteRow([]core.RGB8{{R: 1, G: 2, B: 3}}))
	assert.Equal(t, "P3\n1 2\n255\n1 2 3\n", buf.String())
}

func TestPPMWriter_WriteErrors(t *testing.T) {
	boom := errors.New("disk full")

	err := NewPPMWriter(failingWriter{err: boom}).Begin(1, 1)
	assert.ErrorIs(t, err, boom, "header failure is reported by Begin")

	lw := &limitedWriter{limit: 1, err: boom}
	w := NewPPMWriter(lw)
	require.NoError(t, w.Begin(2, 2))
	err = w.WriteRow([]core.RGB8{{}, {}})
	assert.ErrorIs(t, err, boom, "first row failure is reported by its WriteRow")
	assert.Equal(t, "P3\n2 2\n255\n", lw.buf.String())
	assert.ErrorIs(t, w.Close(), boom)
}

func TestPNGWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewPNGWriter(&buf)

	require.NoError(t, w.Begin(2, 1))
	require.NoError(t, w.WriteRow([]core.RGB8{{R: 10, G: 20, B: 30}, {R: 200, G: 100, B: 50}}))
	assert.Error(t, w.WriteRow([]core.RGB8{{}}), "image has a single row")
	require.NoError(t, w.Close())

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	r, g, b, a := img.At(1, 0).RGBA()
	assert.Equal(t, []uint32{200, 100, 50, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})
}

func TestCreateFileSink(t *testing.T) {
	dir := t.TempDir()
	pixels := []core.RGB8{{R: 1, G: 2, B: 3}}

	ppmPath := filepath.Join(dir, "out", "image.ppm")
	sink, err := CreateFileSink(ppmPath)
	require.NoError(t, err)
	require.NoError(t, sink.Begin(1, 1))
	require.NoError(t, sink.WriteRow(pixels))
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(ppmPath)
	require.NoError(t, err)
	assert.Equal(t, "P3\n1 1\n255\n1 2 3\n", string(data))

	pngPath := filepath.Join(dir, "image.PNG")
	sink, err = CreateFileSink(pngPath)
	require.NoError(t, err)
	require.NoError(t, sink.Begin(1, 1))
	require.NoError(t, sink.WriteRow(pixels))
	require.NoError(t, sink.Close())

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}
