package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabasset/fftplayground/fft"
)

func ones(n int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = 1
	}
	return buf
}

func TestRectangle(t *testing.T) {
	buf := ones(8)
	Rectangle(buf)
	assert.Equal(t, ones(8), buf)
}

func TestHann(t *testing.T) {
	buf := ones(8)
	Hann(buf)

	assert.InDelta(t, 0.0, buf[0], 1e-12)
	assert.InDelta(t, 1.0, buf[4], 1e-12)

	for _, v := range buf {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestNamed(t *testing.T) {
	for _, name := range []string{"rect", "rectangle", "hamming", "hann"} {
		fn, err := Named(name)
		require.NoError(t, err, name)
		require.NotNil(t, fn, name)
	}

	hamming, err := Named("hamming")
	require.NoError(t, err)
	got := ones(8)
	hamming(got)
	want := ones(8)
	Hamming(want)
	assert.Equal(t, want, got)

	_, err = Named("lanczos")
	require.Error(t, err)
	_, err = Named("")
	require.Error(t, err)
}

func TestApodize2DIsSeparable(t *testing.T) {
	shape := fft.Shape{Rows: 4, Cols: 6}
	grid := ones(shape.Len())

	Apodize2D(grid, shape, Hamming)

	row := ones(shape.Cols)
	Hamming(row)
	col := ones(shape.Rows)
	Hamming(col)

	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			assert.InDelta(t, row[c]*col[r], grid[r*shape.Cols+c], 1e-12)
		}
	}
}
