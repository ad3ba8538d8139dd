package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/kabasset/fftplayground/fft"
	"github.com/kabasset/fftplayground/optics"
	"github.com/kabasset/fftplayground/parallel"
	"github.com/kabasset/fftplayground/timer"

	_ "github.com/kabasset/fftplayground/fft/all"

	"github.com/integrii/flaggy"
)

// AppName is the app name
const AppName = "fftparallel"

// AppDesc is the app description
const AppDesc = "parallel broadband PSF experiment over planned DFTs"

var version = "unknown"

const (
	exitOK    = 0
	exitUsage = 64
)

func main() {
	log.SetFlags(0)

	cfg := newZeroConfig()

	if doFlags(&cfg) {
		return
	}

	if err := cfg.Sanitize(); err != nil {
		log.Printf("invalid parameters: %v", err)
		os.Exit(exitUsage)
	}

	chk(run(&cfg), "failed to run fftparallel")
}

// branchResult pairs one broadband PSF with the chronometer of its branch.
type branchResult struct {
	broadband []float64
	chrono    *timer.Timer
}

func run(cfg *config) error {
	backend, err := fft.InitBackend(cfg.backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	log.Println("#")
	log.Printf("# Entering %s with backend %q", AppName, cfg.backend)
	log.Println("#")

	var mainChrono timer.Timer

	// Plan sequentially once, so the parallel branches can replan from
	// accumulated wisdom instead of measuring again.
	log.Println("# Initialize plans sequentially...")
	if err := mainChrono.Start(); err != nil {
		return err
	}
	if _, err := optics.NewBranchPlans(backend, cfg.maskSide, cfg.psfSide, cfg.flags); err != nil {
		return err
	}
	if keeper, ok := backend.(fft.WisdomKeeper); ok && cfg.wisdomPath != "" {
		if err := keeper.ExportWisdom(cfg.wisdomPath); err != nil {
			return err
		}
		log.Printf("# Exported wisdom to %s", cfg.wisdomPath)
	}
	if _, err := mainChrono.Stop(); err != nil {
		return err
	}
	log.Printf("# Elapsed time for planning: %.3f milliseconds", mainChrono.Milliseconds())

	if err := mainChrono.Start(); err != nil {
		return err
	}

	var pupil []complex128
	if len(cfg.zernikeCoeffs) > 0 {
		pupil, err = optics.ZernikePupil(cfg.maskSide, cfg.zernikeCoeffs)
		if err != nil {
			return err
		}
	} else {
		rng := rand.New(rand.NewSource(int64(cfg.seed)))
		pupil = optics.RandPupil(cfg.maskSide, rng)
	}

	params := make([]int, cfg.params)
	for i := range params {
		params[i] = i
	}

	task := func(param int) (branchResult, error) {
		broadband, chrono, err := optics.Broadband(backend, pupil, optics.BroadbandConfig{
			MaskSide: cfg.maskSide,
			PSFSide:  cfg.psfSide,
			Lambdas:  cfg.lambdas,
			Flags:    cfg.flags | fft.WisdomOnly,
			Seed:     int64(cfg.seed) + int64(param),
		})
		return branchResult{broadband: broadband, chrono: chrono}, err
	}

	ctx := context.Background()

	var results []branchResult
	if cfg.spawn {
		results, err = parallel.Map(ctx, params, task)
	} else {
		results, err = parallel.NewPool(cfg.branches, task).Run(ctx, params)
	}
	if err != nil {
		return err
	}

	if cfg.printProfile {
		for i, res := range results {
			log.Println("#")
			log.Printf("# Profiling of DFTs for parameter %d:", i)
			log.Println("# Timing per DFT:")
			log.Println(formatIncs(res.chrono))
			log.Printf("# Total elapsed time for PSF broadband execution %d: %.3f milliseconds",
				i, res.chrono.Milliseconds())
			log.Println("#")
		}
	}

	if _, err := mainChrono.Stop(); err != nil {
		return err
	}

	log.Println("#")
	log.Printf("# Total elapsed time for planning + DFTs in parallel branches: %.3f milliseconds",
		mainChrono.Milliseconds())
	log.Println("#")

	return nil
}

func formatIncs(t *timer.Timer) string {
	out := make([]string, len(t.Incs()))
	for i, inc := range t.Incs() {
		out[i] = fmt.Sprintf("%.3f milliseconds", float64(inc.Microseconds())/1000.0)
	}
	return fmt.Sprint(out)
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
	parser.StringSlice(&cfg.flagNames, "f", "flags", "planner flag strings")
	parser.Int(&cfg.params, "p", "params", "number of parameters")
	parser.Int(&cfg.branches, "b", "branches", "number of workers in parallel")
	parser.Int(&cfg.lambdas, "l", "lambdas", "number of wavelengths")
	parser.Int(&cfg.maskSide, "m", "maskside", "side size of input mask")
	parser.Int(&cfg.psfSide, "s", "psfside", "output PSF side size")
	parser.Int(&cfg.seed, "r", "seed", "noise seed")
	parser.StringSlice(&cfg.zernike, "z", "zernike", "ANSI Zernike phase coefficients for an aberrated pupil instead of noise")
	parser.String(&cfg.wisdomPath, "w", "wisdom", "wisdom file path (fftw backend)")
	parser.Bool(&cfg.spawn, "g", "spawn", "one goroutine per parameter instead of a fixed pool")
	parser.Bool(&cfg.printProfile, "v", "print", "print detailed DFT computation times")

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
