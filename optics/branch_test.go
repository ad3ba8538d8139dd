package optics

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

func TestNewBranchPlansShapes(t *testing.T) {
	b := testBackend(t)

	plans, err := NewBranchPlans(b, 16, 8, fft.Measure)
	require.NoError(t, err)

	assert.Equal(t, fft.Square(16), plans.PupilToPSF.Shape())
	assert.Len(t, plans.PupilToPSF.Output(), 16*16)
	assert.Len(t, plans.PSFToMTF.Output(), 16*(16/2+1))
	assert.Len(t, plans.MTFToBroadband.Input(), 8*8)
	assert.Len(t, plans.MTFToBroadband.Output(), 8*(8/2+1))
	assert.False(t, plans.Chrono.Running())
}

func TestRandPupil(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pupil := RandPupil(16, rng)

	require.Len(t, pupil, 256)

	again := RandPupil(16, rand.New(rand.NewSource(7)))
	assert.Equal(t, pupil, again)
}

func TestBroadbandShapeAndDeterminism(t *testing.T) {
	b := testBackend(t)

	cfg := BroadbandConfig{
		MaskSide: 16,
		PSFSide:  8,
		Lambdas:  3,
		Seed:     11,
	}

	pupil := RandPupil(cfg.MaskSide, rand.New(rand.NewSource(1)))

	broadband, chrono, err := Broadband(b, pupil, cfg)
	require.NoError(t, err)

	assert.Len(t, broadband, cfg.PSFSide*cfg.PSFSide)
	require.NotNil(t, chrono)
	assert.Len(t, chrono.Incs(), 1)
	assert.False(t, chrono.Running())

	again, _, err := Broadband(b, pupil, cfg)
	require.NoError(t, err)
	assert.Equal(t, broadband, again)
}

func TestBroadbandRejectsBadConfig(t *testing.T) {
	b := testBackend(t)
	pupil := RandPupil(8, rand.New(rand.NewSource(1)))

	cases := []BroadbandConfig{
		{MaskSide: 8, PSFSide: 16, Lambdas: 1}, // psf larger than mask
		{MaskSide: 8, PSFSide: 4, Lambdas: 0},  // no wavelength
		{MaskSide: 1, PSFSide: 1, Lambdas: 1},  // degenerate sides
	}

	for _, cfg := range cases {
		_, _, err := Broadband(b, pupil, cfg)
		assert.Error(t, err, "%+v", cfg)
	}
}

func TestBroadbandRejectsMismatchedPupil(t *testing.T) {
	b := testBackend(t)

	_, _, err := Broadband(b, make([]complex128, 10), BroadbandConfig{
		MaskSide: 8,
		PSFSide:  4,
		Lambdas:  1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pupil length")
}
