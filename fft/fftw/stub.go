//go:build !cgo

// Package fftw implements the "fftw" backend, a thin cgo binding to the
// native FFTW3 library. This build has no cgo, so no backend is
// registered and requesting "fftw" fails with a not-found error.
package fftw

// Available is true when the native backend was compiled in.
const Available = false
