// Package godsp implements the "godsp" fft backend on top of
// github.com/mjibson/go-dsp. The library works on nested slices and
// always returns the full spectrum, so the plans here adapt between
// flat row-major buffers and nested rows, and cut or rebuild the
// Hermitian half spectrum for the real transforms.
package godsp

import (
	"fmt"
	"math/cmplx"

	dspfft "github.com/mjibson/go-dsp/fft"

	"github.com/kabasset/fftplayground/fft"
)

func init() {
	fft.RegisterBackend("godsp", backend{})
}

type backend struct{}

func (backend) Init() error  { return nil }
func (backend) Close() error { return nil }

func (backend) ComplexPlan(shape fft.Shape, _ fft.Flag) (fft.ComplexPlan, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("godsp: invalid plan shape %v", shape)
	}

	return &complexPlan{
		shape:  shape,
		input:  make([]complex128, shape.Len()),
		output: make([]complex128, shape.Len()),
		rows:   make([][]complex128, shape.Rows),
	}, nil
}

func (backend) RealPlan(shape fft.Shape, _ fft.Flag) (fft.RealPlan, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("godsp: invalid plan shape %v", shape)
	}

	return &realPlan{
		shape:    shape,
		input:    make([]float64, shape.Len()),
		output:   make([]complex128, shape.Half().Len()),
		realRows: make([][]float64, shape.Rows),
		cplxRows: make([][]complex128, shape.Rows),
	}, nil
}

type complexPlan struct {
	shape  fft.Shape
	input  []complex128
	output []complex128
	rows   [][]complex128
}

func (p *complexPlan) Shape() fft.Shape     { return p.shape }
func (p *complexPlan) Input() []complex128  { return p.input }
func (p *complexPlan) Output() []complex128 { return p.output }

func (p *complexPlan) Forward() {
	p.gather(p.input)
	p.scatter(dspfft.FFT2(p.rows), p.output)
}

func (p *complexPlan) Backward() {
	// go-dsp's inverse is already normalized by 1/N.
	p.gather(p.output)
	p.scatter(dspfft.IFFT2(p.rows), p.input)
}

func (p *complexPlan) gather(flat []complex128) {
	cols := p.shape.Cols
	for r := range p.rows {
		p.rows[r] = flat[r*cols : (r+1)*cols]
	}
}

func (p *complexPlan) scatter(nested [][]complex128, flat []complex128) {
	cols := p.shape.Cols
	for r, row := range nested {
		copy(flat[r*cols:(r+1)*cols], row)
	}
}

type realPlan struct {
	shape    fft.Shape
	input    []float64
	output   []complex128
	realRows [][]float64
	cplxRows [][]complex128
}

func (p *realPlan) Shape() fft.Shape     { return p.shape }
func (p *realPlan) Input() []float64     { return p.input }
func (p *realPlan) Output() []complex128 { return p.output }

func (p *realPlan) Forward() {
	cols := p.shape.Cols
	for r := range p.realRows {
		p.realRows[r] = p.input[r*cols : (r+1)*cols]
	}

	full := dspfft.FFT2Real(p.realRows)

	hcols := p.shape.Half().Cols
	for r, row := range full {
		copy(p.output[r*hcols:(r+1)*hcols], row[:hcols])
	}
}

func (p *realPlan) Backward() {
	rows := p.shape.Rows
	cols := p.shape.Cols
	hcols := p.shape.Half().Cols

	// Rebuild the full spectrum from the half one: the missing columns
	// follow from X[r][c] = conj(X[(R-r)%R][C-c]).
	for r := 0; r < rows; r++ {
		if p.cplxRows[r] == nil {
			p.cplxRows[r] = make([]complex128, cols)
		}
		copy(p.cplxRows[r][:hcols], p.output[r*hcols:(r+1)*hcols])
	}
	for r := 0; r < rows; r++ {
		for c := hcols; c < cols; c++ {
			p.cplxRows[r][c] = cmplx.Conj(p.cplxRows[(rows-r)%rows][cols-c])
		}
	}

	inv := dspfft.IFFT2(p.cplxRows)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p.input[r*cols+c] = real(inv[r][c])
		}
	}
}
