// Package optics simulates point-spread-function and
// modulation-transfer-function pipelines on top of the fft backends.
// All transforms are delegated; this package owns the glue between
// pupil, monochromatic PSF, MTF and broadband PSF arrays.
package optics

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/kabasset/fftplayground/fft"
	"github.com/kabasset/fftplayground/timer"
)

// BranchPlans bundles the three plans of one parallel branch with its
// chronometer.
type BranchPlans struct {
	// PupilToPSF turns the complex pupil function into a monochromatic PSF.
	PupilToPSF fft.ComplexPlan
	// PSFToMTF turns the PSF modulus into its half spectrum.
	PSFToMTF fft.RealPlan
	// MTFToBroadband is only executed backward, from the averaged MTF to
	// the broadband PSF.
	MTFToBroadband fft.RealPlan
	// Chrono monitors the transforms of this branch.
	Chrono timer.Timer
}

// NewBranchPlans plans one branch: a maskSide x maskSide complex plan,
// the matching real plan, and a psfSide x psfSide real plan for the
// broadband output.
func NewBranchPlans(b fft.Backend, maskSide, psfSide int, flags fft.Flag) (*BranchPlans, error) {
	pupilToPSF, err := b.ComplexPlan(fft.Square(maskSide), flags)
	if err != nil {
		return nil, errors.Wrap(err, "planning pupil->psf")
	}

	psfToMTF, err := b.RealPlan(fft.Square(maskSide), flags)
	if err != nil {
		return nil, errors.Wrap(err, "planning psf->mtf")
	}

	mtfToBroadband, err := b.RealPlan(fft.Square(psfSide), flags)
	if err != nil {
		return nil, errors.Wrap(err, "planning mtf->broadband")
	}

	return &BranchPlans{
		PupilToPSF:     pupilToPSF,
		PSFToMTF:       psfToMTF,
		MTFToBroadband: mtfToBroadband,
	}, nil
}

// RandPupil generates a random complex pupil array with standard-normal
// real and imaginary parts.
func RandPupil(side int, rng *rand.Rand) []complex128 {
	pupil := make([]complex128, side*side)
	for i := range pupil {
		pupil[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return pupil
}

// ZernikePupil builds a pupil function exp(i*phase) where the phase is
// a Zernike aberration series with the given ANSI coefficients. Points
// outside the pupil disk are zero. At most ZernikeCount coefficients
// are accepted, one per implemented order.
func ZernikePupil(side int, coeffs []float64) ([]complex128, error) {
	if len(coeffs) > ZernikeCount {
		return nil, errors.Errorf("%d zernike coefficients given, only %d orders implemented",
			len(coeffs), ZernikeCount)
	}

	pupil := make([]complex128, side*side)
	radius := float64(side) / 2
	series := make([]float64, len(coeffs))

	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			ZernikeSeries(float64(c), float64(r), radius, series)

			phase := 0.0
			for j, z := range series {
				phase += coeffs[j] * z
			}

			if math.IsNaN(phase) {
				continue
			}
			pupil[r*side+c] = cmplx.Exp(complex(0, phase))
		}
	}

	return pupil, nil
}

// BroadbandConfig parameterizes one broadband PSF computation.
type BroadbandConfig struct {
	MaskSide int      // pupil mask side length
	PSFSide  int      // broadband PSF side length
	Lambdas  int      // number of monochromatic PSFs to accumulate
	Flags    fft.Flag // planner flags for the branch plans
	Seed     int64    // wavefront error noise seed
}

func (cfg BroadbandConfig) validate() error {
	if cfg.MaskSide < 2 || cfg.PSFSide < 2 {
		return errors.New("mask and psf sides must be at least 2")
	}
	if cfg.PSFSide > cfg.MaskSide {
		return errors.Errorf("psf side %d larger than mask side %d", cfg.PSFSide, cfg.MaskSide)
	}
	if cfg.Lambdas < 1 {
		return errors.New("at least one wavelength required")
	}
	return nil
}

// Broadband computes one broadband PSF: for each wavelength it runs the
// forward pupil transform, multiplies by a wavefront-error array, takes
// the modulus, runs the real transform, and accumulates the MTF sum.
// The sum is averaged, cropped to the broadband shape and inverse
// transformed. It returns the psfSide x psfSide broadband PSF and the
// chronometer of the branch.
//
// The plans are built here rather than shared, so each goroutine of a
// parallel driver owns its buffers; with the fftw backend and wisdom in
// place the replanning is cheap.
func Broadband(b fft.Backend, pupil []complex128, cfg BroadbandConfig) ([]float64, *timer.Timer, error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}
	if len(pupil) != cfg.MaskSide*cfg.MaskSide {
		return nil, nil, errors.Errorf("pupil length %d does not match mask side %d", len(pupil), cfg.MaskSide)
	}

	plan, err := NewBranchPlans(b, cfg.MaskSide, cfg.PSFSide, cfg.Flags)
	if err != nil {
		return nil, nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	chrono := &plan.Chrono

	if err := chrono.Start(); err != nil {
		return nil, nil, err
	}

	mtfSum := make([]complex128, len(plan.PSFToMTF.Output()))

	for l := 0; l < cfg.Lambdas; l++ {
		copy(plan.PupilToPSF.Input(), pupil)
		plan.PupilToPSF.Forward()

		// The wavefront error should be pupil * exp(-2i*pi/WFE); random
		// noise keeps the arithmetic honest without the physics.
		psf := plan.PupilToPSF.Output()
		abs := plan.PSFToMTF.Input()
		scale := complex(float64(l), 0)
		for i, v := range psf {
			wfe := complex(rng.NormFloat64(), rng.NormFloat64()) * scale
			abs[i] = cmplx.Abs(v * wfe)
		}

		plan.PSFToMTF.Forward()

		for i, v := range plan.PSFToMTF.Output() {
			mtfSum[i] += v
		}
	}

	norm := complex(1.0/float64(cfg.Lambdas), 0)
	for i := range mtfSum {
		mtfSum[i] *= norm
	}

	// Crop the averaged mask-sized MTF to the broadband half spectrum.
	srcCols := fft.Square(cfg.MaskSide).Half().Cols
	dstShape := fft.Square(cfg.PSFSide).Half()
	spectrum := plan.MTFToBroadband.Output()
	for r := 0; r < dstShape.Rows; r++ {
		copy(spectrum[r*dstShape.Cols:(r+1)*dstShape.Cols], mtfSum[r*srcCols:r*srcCols+dstShape.Cols])
	}

	plan.MTFToBroadband.Backward()

	broadband := make([]float64, len(plan.MTFToBroadband.Input()))
	copy(broadband, plan.MTFToBroadband.Input())

	if _, err := chrono.Stop(); err != nil {
		return nil, nil, err
	}

	return broadband, chrono, nil
}
