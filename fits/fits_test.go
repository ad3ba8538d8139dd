package fits

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/astrogo/fitsio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabasset/fftplayground/fft"
)

func writeTestFile(t *testing.T, path string) {
	t.Helper()

	w, err := os.Create(path)
	require.NoError(t, err)
	defer w.Close()

	f, err := fitsio.Create(w)
	require.NoError(t, err)
	defer f.Close()

	// Primary HDU: 2 rows x 3 cols of float64.
	primary := fitsio.NewImage(-64, []int{3, 2})
	defer primary.Close()
	data64 := []float64{1, 2, 3, 4, 5, 6}
	require.NoError(t, primary.Write(&data64))
	require.NoError(t, f.Write(primary))

	// Extension: 2x2 of int16.
	ext := fitsio.NewImage(16, []int{2, 2})
	defer ext.Close()
	data16 := []int16{7, 8, 9, 10}
	require.NoError(t, ext.Write(&data16))
	require.NoError(t, f.Write(ext))
}

func TestOpenMultiExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fits")
	writeTestFile(t, path)

	images, err := Open(path)
	require.NoError(t, err)
	require.Len(t, images, 2)

	assert.Equal(t, fft.Shape{Rows: 2, Cols: 3}, images[0].Shape)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, images[0].Data)

	assert.Equal(t, fft.Shape{Rows: 2, Cols: 2}, images[1].Shape)
	assert.Equal(t, []float64{7, 8, 9, 10}, images[1].Data)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.fits"))
	require.Error(t, err)
}
