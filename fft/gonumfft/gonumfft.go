// Package gonumfft implements the "gonum" fft backend on top of
// gonum's dsp/fourier package. Gonum only ships 1D transforms, so 2D
// plans run a pass over the rows followed by a pass over the columns.
package gonumfft

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/kabasset/fftplayground/fft"
)

func init() {
	fft.RegisterBackend("gonum", backend{})
}

type backend struct{}

func (backend) Init() error  { return nil }
func (backend) Close() error { return nil }

func (backend) ComplexPlan(shape fft.Shape, _ fft.Flag) (fft.ComplexPlan, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("gonum: invalid plan shape %v", shape)
	}

	return &complexPlan{
		shape:   shape,
		input:   make([]complex128, shape.Len()),
		output:  make([]complex128, shape.Len()),
		rowFFT:  fourier.NewCmplxFFT(shape.Cols),
		colFFT:  fourier.NewCmplxFFT(shape.Rows),
		col:     make([]complex128, shape.Rows),
		scratch: make([]complex128, shape.Rows),
	}, nil
}

func (backend) RealPlan(shape fft.Shape, _ fft.Flag) (fft.RealPlan, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("gonum: invalid plan shape %v", shape)
	}

	half := shape.Half()

	return &realPlan{
		shape:   shape,
		input:   make([]float64, shape.Len()),
		output:  make([]complex128, half.Len()),
		rowFFT:  fourier.NewFFT(shape.Cols),
		colFFT:  fourier.NewCmplxFFT(shape.Rows),
		col:     make([]complex128, shape.Rows),
		scratch: make([]complex128, shape.Rows),
	}, nil
}

// complexPlan composes a 2D c2c transform from 1D passes. Gonum's
// Sequence(Coefficients(x)) round trip scales by the axis length, so
// Backward divides by rows*cols to keep the 1/N contract.
type complexPlan struct {
	shape  fft.Shape
	input  []complex128
	output []complex128

	rowFFT *fourier.CmplxFFT
	colFFT *fourier.CmplxFFT

	col     []complex128
	scratch []complex128
}

func (p *complexPlan) Shape() fft.Shape     { return p.shape }
func (p *complexPlan) Input() []complex128  { return p.input }
func (p *complexPlan) Output() []complex128 { return p.output }

func (p *complexPlan) Forward() {
	cols := p.shape.Cols

	for r := 0; r < p.shape.Rows; r++ {
		row := p.input[r*cols : (r+1)*cols]
		p.rowFFT.Coefficients(p.output[r*cols:(r+1)*cols], row)
	}

	p.overColumns(p.output, cols, func(dst, src []complex128) {
		p.colFFT.Coefficients(dst, src)
	})
}

func (p *complexPlan) Backward() {
	cols := p.shape.Cols

	p.overColumns(p.output, cols, func(dst, src []complex128) {
		p.colFFT.Sequence(dst, src)
	})

	norm := 1.0 / float64(p.shape.Len())
	for r := 0; r < p.shape.Rows; r++ {
		row := p.output[r*cols : (r+1)*cols]
		p.rowFFT.Sequence(p.input[r*cols:(r+1)*cols], row)
	}
	scaleComplex(p.input, norm)

	// Undo the column pass so Output still holds the spectrum.
	p.overColumns(p.output, cols, func(dst, src []complex128) {
		p.colFFT.Coefficients(dst, src)
	})
	scaleComplex(p.output, 1.0/float64(p.shape.Rows))
}

// overColumns applies op column by column on a row-major grid, in place.
func (p *complexPlan) overColumns(grid []complex128, cols int, op func(dst, src []complex128)) {
	rows := p.shape.Rows

	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			p.col[r] = grid[r*cols+c]
		}

		op(p.scratch, p.col)

		for r := 0; r < rows; r++ {
			grid[r*cols+c] = p.scratch[r]
		}
	}
}

// realPlan is the r2c counterpart: real FFT over the rows yields the
// half spectrum, then a complex pass runs over its columns.
type realPlan struct {
	shape  fft.Shape
	input  []float64
	output []complex128

	rowFFT *fourier.FFT
	colFFT *fourier.CmplxFFT

	col     []complex128
	scratch []complex128
}

func (p *realPlan) Shape() fft.Shape     { return p.shape }
func (p *realPlan) Input() []float64     { return p.input }
func (p *realPlan) Output() []complex128 { return p.output }

func (p *realPlan) Forward() {
	cols := p.shape.Cols
	hcols := p.shape.Half().Cols

	for r := 0; r < p.shape.Rows; r++ {
		row := p.input[r*cols : (r+1)*cols]
		p.rowFFT.Coefficients(p.output[r*hcols:(r+1)*hcols], row)
	}

	p.overColumns(hcols, func(dst, src []complex128) {
		p.colFFT.Coefficients(dst, src)
	})
}

func (p *realPlan) Backward() {
	cols := p.shape.Cols
	hcols := p.shape.Half().Cols

	p.overColumns(hcols, func(dst, src []complex128) {
		p.colFFT.Sequence(dst, src)
	})

	norm := 1.0 / float64(p.shape.Len())
	for r := 0; r < p.shape.Rows; r++ {
		half := p.output[r*hcols : (r+1)*hcols]
		p.rowFFT.Sequence(p.input[r*cols:(r+1)*cols], half)
	}
	for i := range p.input {
		p.input[i] *= norm
	}

	// Undo the column pass so Output still holds the spectrum.
	p.overColumns(hcols, func(dst, src []complex128) {
		p.colFFT.Coefficients(dst, src)
	})
	scaleComplex(p.output, 1.0/float64(p.shape.Rows))
}

func (p *realPlan) overColumns(cols int, op func(dst, src []complex128)) {
	rows := p.shape.Rows

	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			p.col[r] = p.output[r*cols+c]
		}

		op(p.scratch, p.col)

		for r := 0; r < rows; r++ {
			p.output[r*cols+c] = p.scratch[r]
		}
	}
}

func scaleComplex(buf []complex128, s float64) {
	c := complex(s, 0)
	for i := range buf {
		buf[i] *= c
	}
}
