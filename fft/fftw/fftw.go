//go:build cgo

// Package fftw implements the "fftw" backend, a thin cgo binding to the
// native FFTW3 library. It is only available when built with cgo; in a
// pure-Go build the package registers nothing and the registry reports
// the backend as not found.
package fftw

// #cgo pkg-config: fftw3
// #include <fftw3.h>
// #include <stdlib.h>
import "C"

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/kabasset/fftplayground/fft"
)

// The FFTW planner is not thread-safe; plan execution is. Parallel
// drivers replan inside worker goroutines, so creation is serialized.
var planMu sync.Mutex

// Available is true when the native backend was compiled in.
const Available = true

func init() {
	fft.RegisterBackend("fftw", &backend{})
}

type backend struct{}

func (*backend) Init() error  { return nil }
func (*backend) Close() error { return nil }

// ExportWisdom writes the accumulated planner wisdom to a file.
func (*backend) ExportWisdom(path string) error {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	if C.fftw_export_wisdom_to_filename(cpath) == 0 {
		return fmt.Errorf("fftw: failed to export wisdom to %q", path)
	}
	return nil
}

// ImportWisdom loads planner wisdom exported by a previous run.
func (*backend) ImportWisdom(path string) error {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	if C.fftw_import_wisdom_from_filename(cpath) == 0 {
		return fmt.Errorf("fftw: failed to import wisdom from %q", path)
	}
	return nil
}

func cFlags(flags fft.Flag) C.uint {
	var c C.uint

	switch {
	case flags.Has(fft.Patient):
		c |= C.FFTW_PATIENT
	case flags.Has(fft.Estimate):
		c |= C.FFTW_ESTIMATE
	default:
		// The playground default, as in the original scripts.
		c |= C.FFTW_MEASURE
	}

	if flags.Has(fft.DestroyInput) {
		c |= C.FFTW_DESTROY_INPUT
	}
	if flags.Has(fft.WisdomOnly) {
		c |= C.FFTW_WISDOM_ONLY
	}

	return c
}

func (*backend) ComplexPlan(shape fft.Shape, flags fft.Flag) (fft.ComplexPlan, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("fftw: invalid plan shape %v", shape)
	}

	p := &complexPlan{
		shape:  shape,
		input:  make([]complex128, shape.Len()),
		output: make([]complex128, shape.Len()),
	}

	in := (*C.fftw_complex)(unsafe.Pointer(&p.input[0]))
	out := (*C.fftw_complex)(unsafe.Pointer(&p.output[0]))

	planMu.Lock()
	defer planMu.Unlock()

	p.forward = C.fftw_plan_dft_2d(
		C.int(shape.Rows), C.int(shape.Cols),
		in, out, C.FFTW_FORWARD, cFlags(flags))
	p.backward = C.fftw_plan_dft_2d(
		C.int(shape.Rows), C.int(shape.Cols),
		out, in, C.FFTW_BACKWARD, cFlags(flags))

	if p.forward == nil || p.backward == nil {
		p.destroyLocked()
		return nil, fmt.Errorf("fftw: planner refused %v with flags %v", shape, flags)
	}

	// Rely on the runtime to free the C plans.
	runtime.SetFinalizer(p, (*complexPlan).destroy)

	return p, nil
}

func (*backend) RealPlan(shape fft.Shape, flags fft.Flag) (fft.RealPlan, error) {
	if !shape.Valid() {
		return nil, fmt.Errorf("fftw: invalid plan shape %v", shape)
	}

	p := &realPlan{
		shape:  shape,
		input:  make([]float64, shape.Len()),
		output: make([]complex128, shape.Half().Len()),
	}

	in := (*C.double)(unsafe.Pointer(&p.input[0]))
	out := (*C.fftw_complex)(unsafe.Pointer(&p.output[0]))

	planMu.Lock()
	defer planMu.Unlock()

	p.forward = C.fftw_plan_dft_r2c_2d(
		C.int(shape.Rows), C.int(shape.Cols),
		in, out, cFlags(flags))
	// The c2r transform overwrites its input spectrum; that matches the
	// plan contract, which leaves Output unspecified after Backward.
	p.backward = C.fftw_plan_dft_c2r_2d(
		C.int(shape.Rows), C.int(shape.Cols),
		out, in, cFlags(flags)|C.FFTW_DESTROY_INPUT)

	if p.forward == nil || p.backward == nil {
		p.destroyLocked()
		return nil, fmt.Errorf("fftw: planner refused %v with flags %v", shape, flags)
	}

	runtime.SetFinalizer(p, (*realPlan).destroy)

	return p, nil
}

type complexPlan struct {
	shape    fft.Shape
	input    []complex128
	output   []complex128
	forward  C.fftw_plan
	backward C.fftw_plan
}

func (p *complexPlan) Shape() fft.Shape     { return p.shape }
func (p *complexPlan) Input() []complex128  { return p.input }
func (p *complexPlan) Output() []complex128 { return p.output }

func (p *complexPlan) Forward() {
	C.fftw_execute(p.forward)
}

func (p *complexPlan) Backward() {
	C.fftw_execute(p.backward)

	norm := complex(1.0/float64(p.shape.Len()), 0)
	for i := range p.input {
		p.input[i] *= norm
	}
}

func (p *complexPlan) destroy() {
	planMu.Lock()
	defer planMu.Unlock()
	p.destroyLocked()
}

func (p *complexPlan) destroyLocked() {
	if p.forward != nil {
		C.fftw_destroy_plan(p.forward)
		p.forward = nil
	}
	if p.backward != nil {
		C.fftw_destroy_plan(p.backward)
		p.backward = nil
	}
}

type realPlan struct {
	shape    fft.Shape
	input    []float64
	output   []complex128
	forward  C.fftw_plan
	backward C.fftw_plan
}

func (p *realPlan) Shape() fft.Shape     { return p.shape }
func (p *realPlan) Input() []float64     { return p.input }
func (p *realPlan) Output() []complex128 { return p.output }

func (p *realPlan) Forward() {
	C.fftw_execute(p.forward)
}

func (p *realPlan) Backward() {
	C.fftw_execute(p.backward)

	norm := 1.0 / float64(p.shape.Len())
	for i := range p.input {
		p.input[i] *= norm
	}
}

func (p *realPlan) destroy() {
	planMu.Lock()
	defer planMu.Unlock()
	p.destroyLocked()
}

func (p *realPlan) destroyLocked() {
	if p.forward != nil {
		C.fftw_destroy_plan(p.forward)
		p.forward = nil
	}
	if p.backward != nil {
		C.fftw_destroy_plan(p.backward)
		p.backward = nil
	}
}
