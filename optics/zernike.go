package optics

import "math"

// ZernikeCount is the number of ANSI-indexed Zernike polynomials
// implemented, orders 0 through 20.
const ZernikeCount = 21

// ZernikeSeries evaluates the first ZernikeCount Zernike polynomials in
// ANSI ordering at pupil coordinates (u, v) for a pupil of the given
// radius, writing at most len(dst) values. Points outside the unit disk
// evaluate to NaN.
//
// Polynomial table from 2011.JMOp.58.545L.
func ZernikeSeries(u, v, radius float64, dst []float64) []float64 {
	x1 := (u - radius) / radius // scaling to [-1, 1]
	y1 := (v - radius) / radius

	x2, x3 := x1*x1, x1*x1*x1
	x4, x5 := x2*x2, x2*x3
	y2, y3 := y1*y1, y1*y1*y1
	y4, y5 := y2*y2, y2*y3

	if x2+y2 > 1 {
		for j := range dst {
			dst[j] = math.NaN()
		}
		return dst
	}

	series := [ZernikeCount]float64{
		1,
		x1,
		y1,
		2 * x1 * y1,
		-1 + 2*x2 + 2*y2,
		-x2 + y2,
		-x3 + 3*x1*y2,
		-2*x1 + 3*x3 + 3*x1*y2,
		-2*y1 + 3*y3 + 3*x2*y1,
		y3 - 3*x2*y1,
		-4*x3*y1 + 4*x1*y3,
		-6*x1*y1 + 8*x3*y1 + 8*x1*y3,
		1 - 6*x2 - 6*y2 + 6*x4 + 12*x2*y2 + 6*y4,
		3*x2 - 3*y2 - 4*x4 + 4*y4,
		x4 - 6*x2*y2 + y4,
		x5 - 10*x3*y2 + 5*x1*y4,
		4*x3 - 12*x1*y2 - 5*x5 + 10*x3*y2 + 15*x1*y4,
		3*x1 - 12*x3 - 12*x1*y2 + 10*x5 + 20*x3*y2 + 10*x1*y4,
		3*y1 - 12*y3 - 12*x2*y1 + 10*y5 + 20*x2*y3 - 15*x4*y1,
		-4*y3 + 12*x2*y1 + 5*y5 - 10*x2*y3 - 15*x4*y1,
		y5 - 10*x2*y3 + 5*x4*y1,
	}

	n := copy(dst, series[:])
	return dst[:n]
}
