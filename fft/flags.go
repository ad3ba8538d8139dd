package fft

import (
	"fmt"
	"sort"
	"strings"
)

// Flag is a bitmask of planner hints. The names follow the FFTW planner
// flags; pure-Go backends accept any combination and ignore it.
type Flag uint

const (
	Estimate Flag = 1 << iota
	Measure
	Patient
	DestroyInput
	WisdomOnly
)

var flagNames = map[string]Flag{
	"FFTW_ESTIMATE":      Estimate,
	"FFTW_MEASURE":       Measure,
	"FFTW_PATIENT":       Patient,
	"FFTW_DESTROY_INPUT": DestroyInput,
	"FFTW_WISDOM_ONLY":   WisdomOnly,
}

// ParseFlags folds a list of FFTW-style flag strings into a Flag.
// Names are matched case-insensitively, with or without the FFTW_
// prefix. Unknown names error.
func ParseFlags(names []string) (Flag, error) {
	var flags Flag

	for _, name := range names {
		canon := strings.ToUpper(strings.TrimSpace(name))
		if !strings.HasPrefix(canon, "FFTW_") {
			canon = "FFTW_" + canon
		}

		f, ok := flagNames[canon]
		if !ok {
			return 0, fmt.Errorf("unknown planner flag %q", name)
		}

		flags |= f
	}

	return flags, nil
}

// Has reports whether all bits of other are set.
func (f Flag) Has(other Flag) bool {
	return f&other == other
}

func (f Flag) String() string {
	if f == 0 {
		return "0"
	}

	var names []string
	for name, bit := range flagNames {
		if f.Has(bit) {
			names = append(names, name)
		}
	}

	// Map order is random; keep the output stable.
	sort.Strings(names)

	return strings.Join(names, "|")
}
