// Package window provides apodization windows applied to image grids
// before transforming them, to limit spectral leakage.
//
// See https://wikipedia.org/wiki/Window_function
package window

import (
	"math"

	"github.com/pkg/errors"

	"github.com/kabasset/fftplayground/fft"
)

// Function scales a buffer by a window, in place.
type Function func(buf []float64)

// Rectangle leaves the buffer untouched.
func Rectangle([]float64) {}

// CosSum applies the generalized cosine-sum window of coefficient a0.
func CosSum(buf []float64, a0 float64) {
	a1 := 1 - a0
	step := 2 * math.Pi / float64(len(buf))
	for n := range buf {
		buf[n] *= a0 - a1*math.Cos(step*float64(n))
	}
}

// Hamming applies a Hamming window.
func Hamming(buf []float64) {
	CosSum(buf, 25.0/46.0)
}

// Hann applies a Hann window.
func Hann(buf []float64) {
	CosSum(buf, 0.5)
}

// Named resolves a window function from its command-line name.
func Named(name string) (Function, error) {
	switch name {
	case "rect", "rectangle":
		return Rectangle, nil
	case "hamming":
		return Hamming, nil
	case "hann":
		return Hann, nil
	}
	return nil, errors.Errorf("unknown window %q; pick hamming, hann or rect", name)
}

// Apodize2D applies the window separably to a row-major grid: once
// along every row, then along every column.
func Apodize2D(grid []float64, shape fft.Shape, fn Function) {
	for r := 0; r < shape.Rows; r++ {
		fn(grid[r*shape.Cols : (r+1)*shape.Cols])
	}

	col := make([]float64, shape.Rows)
	for c := 0; c < shape.Cols; c++ {
		for r := 0; r < shape.Rows; r++ {
			col[r] = grid[r*shape.Cols+c]
		}
		fn(col)
		for r := 0; r < shape.Rows; r++ {
			grid[r*shape.Cols+c] = col[r]
		}
	}
}
