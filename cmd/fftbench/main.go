// Command fftbench compares the registered backends on two fixed
// workloads, a real 2D forward transform and an FFT convolution, and
// reports mean wall-clock time per iteration.
package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/kabasset/fftplayground/dsp"
	"github.com/kabasset/fftplayground/fft"
	"github.com/kabasset/fftplayground/util"

	_ "github.com/kabasset/fftplayground/fft/all"

	"github.com/integrii/flaggy"
)

// AppName is the app name
const AppName = "fftbench"

// AppDesc is the app description
const AppDesc = "compare rfft2 and convolution across fft backends"

var version = "unknown"

type config struct {
	xsize int
	ysize int
	iters int
	seed  int
}

func main() {
	log.SetFlags(0)

	cfg := config{
		xsize: 1024,
		ysize: 1024,
		iters: 10,
		seed:  42,
	}

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.Version = version
	parser.Int(&cfg.xsize, "x", "xsize", "array width")
	parser.Int(&cfg.ysize, "y", "ysize", "array height")
	parser.Int(&cfg.iters, "n", "iterations", "iterations per workload")
	parser.Int(&cfg.seed, "r", "seed", "noise seed")
	chk(parser.Parse(), "failed to parse arguments")

	if cfg.xsize < 2 || cfg.ysize < 2 || cfg.iters < 1 {
		log.Fatal("sizes must be at least 2 and iterations at least 1")
	}

	chk(run(&cfg), "failed to run fftbench")
}

func run(cfg *config) error {
	shape := fft.Shape{Rows: cfg.ysize, Cols: cfg.xsize}
	rng := rand.New(rand.NewSource(int64(cfg.seed)))

	a := make([]float64, shape.Len())
	b := make([]float64, shape.Len())
	for i := range a {
		a[i] = rng.NormFloat64()
		b[i] = rng.NormFloat64()
	}

	for _, named := range fft.Backends {
		backend, err := fft.InitBackend(named.Name)
		if err != nil {
			return err
		}

		log.Printf("# Backend %q", named.Name)

		plan, err := backend.RealPlan(shape, fft.Measure)
		if err != nil {
			return err
		}

		stats := util.NewMovingWindow(cfg.iters)
		for i := 0; i < cfg.iters; i++ {
			copy(plan.Input(), a)

			started := time.Now()
			plan.Forward()
			stats.Update(ms(time.Since(started)))
		}
		mean, stddev := stats.Stats()
		log.Printf("rfft2 %v: %.3f +/- %.3f milliseconds per iteration", shape, mean, stddev)

		stats = util.NewMovingWindow(cfg.iters)
		for i := 0; i < cfg.iters; i++ {
			started := time.Now()
			if _, _, err := dsp.Convolve(backend, a, shape, b, shape, dsp.Full); err != nil {
				return err
			}
			stats.Update(ms(time.Since(started)))
		}
		mean, stddev = stats.Stats()
		log.Printf("fftconvolve %v: %.3f +/- %.3f milliseconds per iteration", shape, mean, stddev)

		backend.Close()
	}

	return nil
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalf("%s: %v", wrap, err)
	}
}
