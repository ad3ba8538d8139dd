package main

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/kabasset/fftplayground/fft"
	"github.com/kabasset/fftplayground/optics"
)

// Config is the parameter set of the parallel broadband experiment
type config struct {
	// Backend is the backend name from list-backends
	backend string
	// FlagNames are the planner flag strings handed to the backend
	flagNames []string
	// Params is the number of parameters to map over
	params int
	// Branches is the number of parallel workers
	branches int
	// Lambdas is the number of wavelengths per branch
	lambdas int
	// MaskSide is the side size of the input pupil mask
	maskSide int
	// PSFSide is the output broadband PSF side size
	psfSide int
	// WisdomPath stores planner wisdom between runs (fftw backend only)
	wisdomPath string
	// Seed feeds the pupil and wavefront noise generators
	seed int
	// Zernike holds ANSI Zernike coefficient strings; when set the pupil
	// is an aberrated phase mask instead of noise
	zernike []string
	// Spawn runs one goroutine per parameter instead of a fixed pool
	spawn bool
	// PrintProfile logs detailed per-branch DFT timing
	printProfile bool

	// flags is the parsed form of flagNames
	flags fft.Flag
	// zernikeCoeffs is the parsed form of zernike
	zernikeCoeffs []float64
}

// newZeroConfig returns the defaults of the original experiment
func newZeroConfig() config {
	return config{
		flagNames: []string{"FFTW_MEASURE"},
		params:    1,
		branches:  1,
		lambdas:   1,
		maskSide:  1024,
		psfSide:   512,
		seed:      42,
	}
}

// Sanitize validates the parameter combination. Anything it rejects is
// a usage error.
func (cfg *config) Sanitize() error {
	if cfg.backend == "" {
		cfg.backend = fft.DefaultBackend()
	}

	switch {
	case cfg.params < 1:
		return errors.New("at least one parameter required")
	case cfg.branches < 1:
		return errors.New("at least one branch required")
	case cfg.lambdas < 1:
		return errors.New("at least one wavelength required")
	case cfg.maskSide < 2 || cfg.psfSide < 2:
		return errors.New("mask and psf sides must be at least 2")
	case cfg.psfSide > cfg.maskSide:
		return errors.New("psf side larger than mask side")
	}

	flags, err := fft.ParseFlags(cfg.flagNames)
	if err != nil {
		return err
	}
	cfg.flags = flags

	if len(cfg.zernike) > 0 {
		if len(cfg.zernike) > optics.ZernikeCount {
			return errors.Errorf("%d zernike coefficients given, only %d orders implemented",
				len(cfg.zernike), optics.ZernikeCount)
		}
		coeffs := make([]float64, len(cfg.zernike))
		for i, s := range cfg.zernike {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid zernike coefficient %q", s)
			}
			coeffs[i] = v
		}
		cfg.zernikeCoeffs = coeffs
	}

	return nil
}
