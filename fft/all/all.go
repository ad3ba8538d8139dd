// Package all imports all backends implemented by the fft package.
package all

import (
	_ "github.com/kabasset/fftplayground/fft/fftw"
	_ "github.com/kabasset/fftplayground/fft/godsp"
	_ "github.com/kabasset/fftplayground/fft/gonumfft"
)
