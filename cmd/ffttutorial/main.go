// Command ffttutorial opens a multi-extension FITS file, forward
// transforms every image HDU, convolves them with the first HDU as
// kernel, and inverse transforms, logging the wall-clock time of each
// stage. The FFT backend is selectable to compare them.
package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/kabasset/fftplayground/dsp"
	"github.com/kabasset/fftplayground/dsp/window"
	"github.com/kabasset/fftplayground/fft"
	"github.com/kabasset/fftplayground/fits"
	"github.com/kabasset/fftplayground/timer"

	_ "github.com/kabasset/fftplayground/fft/all"

	"github.com/integrii/flaggy"
)

// AppName is the app name
const AppName = "ffttutorial"

// AppDesc is the app description
const AppDesc = "transform and convolve the HDUs of a FITS file"

var version = "unknown"

type config struct {
	input   string
	backend string
	window  string
}

func main() {
	log.SetFlags(0)

	var cfg config

	if doFlags(&cfg) {
		return
	}

	chk(run(&cfg), "failed to run ffttutorial")
}

func run(cfg *config) error {
	if cfg.input == "" {
		return errors.New("no input fits file given")
	}
	if cfg.backend == "" {
		cfg.backend = fft.DefaultBackend()
	}

	backend, err := fft.InitBackend(cfg.backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	log.Println("#")
	log.Printf("# Entering %s with backend %q", AppName, cfg.backend)
	log.Println("#")

	var t timer.Timer

	log.Println("Opening fits file...")
	t.Start()
	images, err := fits.Open(cfg.input)
	if err != nil {
		return err
	}
	stage(&t)

	if cfg.window != "" {
		apodize, err := window.Named(cfg.window)
		if err != nil {
			return err
		}

		log.Printf("Apodizing all HDUs with a %s window...", cfg.window)
		t.Start()
		for _, img := range images {
			window.Apodize2D(img.Data, img.Shape, apodize)
		}
		stage(&t)
	}

	log.Println("Applying DFT to all HDUs...")
	t.Start()
	spectra := make([][]complex128, 0, len(images))
	for _, img := range images {
		plan, err := backend.RealPlan(img.Shape, fft.Estimate)
		if err != nil {
			return err
		}
		copy(plan.Input(), img.Data)
		plan.Forward()

		spectrum := make([]complex128, len(plan.Output()))
		copy(spectrum, plan.Output())
		spectra = append(spectra, spectrum)
	}
	stage(&t)

	log.Println("Performing convolution with the first HDU as kernel...")
	t.Start()
	kernel := images[0]
	for _, img := range images[1:] {
		if _, _, err := dsp.Convolve(backend,
			img.Data, img.Shape, kernel.Data, kernel.Shape, dsp.Same); err != nil {
			return err
		}
	}
	stage(&t)

	log.Println("Applying inverse DFTs...")
	t.Start()
	for i, img := range images {
		plan, err := backend.RealPlan(img.Shape, fft.Estimate)
		if err != nil {
			return err
		}
		copy(plan.Output(), spectra[i])
		plan.Backward()
	}
	stage(&t)

	log.Println("#")
	log.Printf("# Exiting %s: %d HDUs, %.3f milliseconds total", AppName, len(images), t.Milliseconds())
	log.Println("#")

	return nil
}

func stage(t *timer.Timer) {
	inc, err := t.Stop()
	chk(err, "timer misuse")
	log.Printf("Elapsed time: %.3f milliseconds", float64(inc.Microseconds())/1000.0)
}

func doFlags(cfg *config) bool {

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.Version = version

	listBackendsCmd := flaggy.Subcommand{
		Name:        "list-backends",
		ShortName:   "lb",
		Description: "list all supported backends",
	}

	parser.AttachSubcommand(&listBackendsCmd, 1)

	parser.String(&cfg.backend, "k", "backend", "backend name")
	parser.String(&cfg.window, "a", "apodize", "window applied to each HDU before transforming (hamming, hann, rect)")
	parser.AddPositionalValue(&cfg.input, "input", 1, false, "input fits file to process")

	chk(parser.Parse(), "failed to parse arguments")

	if listBackendsCmd.Used {
		for _, backend := range fft.Backends {
			fmt.Printf("- %s\n", backend.Name)
		}
		return true
	}

	return false
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalf("%s: %v", wrap, err)
	}
}
