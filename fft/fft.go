// Package fft provides planned two-dimensional fourier transforms over
// interchangeable backends.
package fft

import (
	"fmt"

	"github.com/pkg/errors"
)

// Shape is the row-major shape of a 2D array.
type Shape struct {
	Rows int
	Cols int
}

// Len returns the number of elements of an array of this shape.
func (s Shape) Len() int {
	return s.Rows * s.Cols
}

// Half returns the Hermitian half-spectrum shape of a real-to-complex
// transform of this shape: the last axis shrinks to Cols/2 + 1.
func (s Shape) Half() Shape {
	return Shape{Rows: s.Rows, Cols: s.Cols/2 + 1}
}

// Valid reports whether both sides are at least 1.
func (s Shape) Valid() bool {
	return s.Rows > 0 && s.Cols > 0
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// Square returns the shape of a side x side array.
func Square(side int) Shape {
	return Shape{Rows: side, Cols: side}
}

// ComplexPlan is a precomputed complex-to-complex 2D transform. The plan
// owns its input and output buffers; callers fill Input, call Forward,
// and read Output. Backward runs the inverse transform from Output back
// into Input, normalized by 1/N. Plans are not safe for concurrent use.
type ComplexPlan interface {
	Shape() Shape
	Input() []complex128
	Output() []complex128
	Forward()
	Backward()
}

// RealPlan is a precomputed real-to-complex 2D transform. Input has the
// plan shape, Output has the Half() shape. Backward runs the
// complex-to-real inverse from Output back into Input, normalized by
// 1/N. Plans are not safe for concurrent use.
type RealPlan interface {
	Shape() Shape
	Input() []float64
	Output() []complex128
	Forward()
	Backward()
}

// Backend plans transforms for a given shape and planner flags.
type Backend interface {
	// Init should do nothing if called more than once.
	Init() error
	Close() error

	ComplexPlan(shape Shape, flags Flag) (ComplexPlan, error)
	RealPlan(shape Shape, flags Flag) (RealPlan, error)
}

// WisdomKeeper is implemented by backends whose planner knowledge can be
// persisted across processes. Only the native FFTW backend does.
type WisdomKeeper interface {
	ExportWisdom(path string) error
	ImportWisdom(path string) error
}

type NamedBackend struct {
	Name string
	Backend
}

var Backends []NamedBackend

// RegisterBackend registers a backend globally. This function is not
// thread-safe, and most packages should call it on init().
func RegisterBackend(name string, b Backend) {
	Backends = append(Backends, NamedBackend{
		Name:    name,
		Backend: b,
	})
}

// GetAllBackendNames returns all registered backend names.
func GetAllBackendNames() []string {
	out := make([]string, len(Backends))
	for i, backend := range Backends {
		out[i] = backend.Name
	}
	return out
}

// DefaultBackend prefers the native backend when it was compiled in.
func DefaultBackend() string {
	if HasBackend("fftw") {
		return "fftw"
	}
	if HasBackend("gonum") {
		return "gonum"
	}
	if len(Backends) > 0 {
		return Backends[0].Name
	}
	return ""
}

// FindBackend is a helper function that finds a backend. It returns nil
// if the backend is not found.
func FindBackend(name string) Backend {
	for _, backend := range Backends {
		if backend.Name == name {
			return backend
		}
	}
	return nil
}

func HasBackend(name string) bool {
	return FindBackend(name) != nil
}

// InitBackend finds and initializes the named backend. Unknown names
// yield a descriptive error before any planning happens.
func InitBackend(name string) (Backend, error) {
	backend := FindBackend(name)
	if backend == nil {
		return nil, fmt.Errorf("backend not found: %q; check list-backends", name)
	}

	if err := backend.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize fft backend")
	}

	return backend, nil
}
