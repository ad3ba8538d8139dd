// Package fits loads multi-extension FITS image files into float64
// grids, converting whatever BITPIX the file uses, the way the tutorial
// scripts expect their inputs.
package fits

import (
	"os"

	"github.com/astrogo/fitsio"
	"github.com/pkg/errors"

	"github.com/kabasset/fftplayground/fft"
)

// Image is one 2D image HDU converted to float64.
type Image struct {
	Name  string
	Shape fft.Shape
	Data  []float64
}

// Open reads every 2D image HDU of the file. HDUs without data (such
// as an empty primary) are skipped.
func Open(path string) ([]Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open fits file")
	}
	defer f.Close()

	file, err := fitsio.Open(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse fits file")
	}
	defer file.Close()

	var images []Image

	for i := 0; i < len(file.HDUs()); i++ {
		hdu := file.HDU(i)

		img, ok := hdu.(fitsio.Image)
		if !ok {
			continue
		}

		hdr := img.Header()
		axes := hdr.Axes()
		if len(axes) != 2 || axes[0] < 1 || axes[1] < 1 {
			continue
		}

		// NAXIS1 is the fastest-varying axis, so columns.
		shape := fft.Shape{Rows: axes[1], Cols: axes[0]}

		data, err := readData(img, hdr.Bitpix(), shape.Len())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read HDU %d", i)
		}

		images = append(images, Image{
			Name:  hdu.Name(),
			Shape: shape,
			Data:  data,
		})
	}

	if len(images) == 0 {
		return nil, errors.Errorf("no 2D image HDU in %q", path)
	}

	return images, nil
}

func readData(img fitsio.Image, bitpix, n int) ([]float64, error) {
	out := make([]float64, n)

	switch bitpix {
	case 16:
		raw := make([]int16, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}

	case 32:
		raw := make([]int32, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}

	case 64:
		raw := make([]int64, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}

	case -32:
		raw := make([]float32, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}

	case -64:
		if err := img.Read(&out); err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unsupported BITPIX %d", bitpix)
	}

	return out, nil
}
