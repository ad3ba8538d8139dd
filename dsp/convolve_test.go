package dsp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabasset/fftplayground/fft"
	_ "github.com/kabasset/fftplayground/fft/gonumfft"
)

func testBackend(t *testing.T) fft.Backend {
	t.Helper()

	b, err := fft.InitBackend("gonum")
	require.NoError(t, err)

	return b
}

// naiveConvolve is the O(n^4) reference for the full linear convolution.
func naiveConvolve(image []float64, imageShape fft.Shape, kernel []float64, kernelShape fft.Shape) ([]float64, fft.Shape) {
	full := fft.Shape{
		Rows: imageShape.Rows + kernelShape.Rows - 1,
		Cols: imageShape.Cols + kernelShape.Cols - 1,
	}
	out := make([]float64, full.Len())

	for ir := 0; ir < imageShape.Rows; ir++ {
		for ic := 0; ic < imageShape.Cols; ic++ {
			for kr := 0; kr < kernelShape.Rows; kr++ {
				for kc := 0; kc < kernelShape.Cols; kc++ {
					out[(ir+kr)*full.Cols+(ic+kc)] +=
						image[ir*imageShape.Cols+ic] * kernel[kr*kernelShape.Cols+kc]
				}
			}
		}
	}

	return out, full
}

func TestConvolveMatchesNaive(t *testing.T) {
	b := testBackend(t)

	imageShape := fft.Shape{Rows: 6, Cols: 5}
	kernelShape := fft.Shape{Rows: 3, Cols: 4}

	rng := rand.New(rand.NewSource(1))
	image := make([]float64, imageShape.Len())
	kernel := make([]float64, kernelShape.Len())
	for i := range image {
		image[i] = rng.NormFloat64()
	}
	for i := range kernel {
		kernel[i] = rng.NormFloat64()
	}

	got, gotShape, err := Convolve(b, image, imageShape, kernel, kernelShape, Full)
	require.NoError(t, err)

	want, wantShape := naiveConvolve(image, imageShape, kernel, kernelShape)
	require.Equal(t, wantShape, gotShape)

	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9)
	}
}

func TestConvolveImpulseIsIdentity(t *testing.T) {
	b := testBackend(t)

	imageShape := fft.Square(8)
	kernelShape := fft.Square(3)

	rng := rand.New(rand.NewSource(2))
	image := make([]float64, imageShape.Len())
	for i := range image {
		image[i] = rng.NormFloat64()
	}

	// Unit impulse at the kernel center.
	kernel := make([]float64, kernelShape.Len())
	kernel[1*kernelShape.Cols+1] = 1

	got, gotShape, err := Convolve(b, image, imageShape, kernel, kernelShape, Same)
	require.NoError(t, err)
	require.Equal(t, imageShape, gotShape)

	for i := range image {
		assert.InDelta(t, image[i], got[i], 1e-9)
	}
}

func TestConvolveRejectsMismatchedLengths(t *testing.T) {
	b := testBackend(t)

	_, _, err := Convolve(b, make([]float64, 3), fft.Square(2), make([]float64, 4), fft.Square(2), Full)
	require.Error(t, err)

	_, _, err = Convolve(b, make([]float64, 4), fft.Square(2), make([]float64, 3), fft.Square(2), Full)
	require.Error(t, err)
}
