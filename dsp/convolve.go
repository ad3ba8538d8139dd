// Package dsp provides the signal-processing glue of the playground,
// chiefly FFT convolution over any registered backend.
package dsp

import (
	"github.com/pkg/errors"

	"github.com/kabasset/fftplayground/fft"
)

// Mode selects how much of the linear convolution is returned.
type Mode int

const (
	// Full returns the whole (ir+kr-1) x (ic+kc-1) convolution.
	Full Mode = iota
	// Same returns the centered part with the image shape.
	Same
)

// Convolve computes the linear convolution of a real image with a real
// kernel by zero-padding both to the full output shape, multiplying
// their spectra and running the normalized inverse transform. The
// transforms are owned by the backend; this function is only padding,
// pointwise products and cropping.
func Convolve(b fft.Backend, image []float64, imageShape fft.Shape, kernel []float64, kernelShape fft.Shape, mode Mode) ([]float64, fft.Shape, error) {
	if len(image) != imageShape.Len() {
		return nil, fft.Shape{}, errors.Errorf("image length %d does not match shape %v", len(image), imageShape)
	}
	if len(kernel) != kernelShape.Len() {
		return nil, fft.Shape{}, errors.Errorf("kernel length %d does not match shape %v", len(kernel), kernelShape)
	}

	full := fft.Shape{
		Rows: imageShape.Rows + kernelShape.Rows - 1,
		Cols: imageShape.Cols + kernelShape.Cols - 1,
	}

	plan, err := b.RealPlan(full, fft.Estimate)
	if err != nil {
		return nil, fft.Shape{}, errors.Wrap(err, "planning convolution")
	}

	pad(plan.Input(), full, image, imageShape)
	plan.Forward()

	imageSpectrum := make([]complex128, len(plan.Output()))
	copy(imageSpectrum, plan.Output())

	pad(plan.Input(), full, kernel, kernelShape)
	plan.Forward()

	spectrum := plan.Output()
	for i := range spectrum {
		spectrum[i] *= imageSpectrum[i]
	}

	plan.Backward()

	if mode == Full {
		out := make([]float64, full.Len())
		copy(out, plan.Input())
		return out, full, nil
	}

	// Same: centered crop, as scipy's fftconvolve does it.
	r0 := (kernelShape.Rows - 1) / 2
	c0 := (kernelShape.Cols - 1) / 2
	out := make([]float64, imageShape.Len())
	for r := 0; r < imageShape.Rows; r++ {
		src := plan.Input()[(r+r0)*full.Cols+c0:]
		copy(out[r*imageShape.Cols:(r+1)*imageShape.Cols], src[:imageShape.Cols])
	}

	return out, imageShape, nil
}

// pad writes src into the top-left corner of a zeroed dst grid.
func pad(dst []float64, dstShape fft.Shape, src []float64, srcShape fft.Shape) {
	for i := range dst {
		dst[i] = 0
	}
	for r := 0; r < srcShape.Rows; r++ {
		copy(dst[r*dstShape.Cols:], src[r*srcShape.Cols:(r+1)*srcShape.Cols])
	}
}
