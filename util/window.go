// Package util holds small helpers shared by the benchmark drivers.
package util

import "math"

// MovingWindow keeps the last capacity values in a ring buffer and
// maintains their running sum and sum of squares, so mean and standard
// deviation of the most recent samples are O(1).
type MovingWindow struct {
	ring []float64
	head int

	length int

	sum   float64
	sumSq float64
}

// NewMovingWindow returns a new moving window.
func NewMovingWindow(size int) *MovingWindow {
	if size < 1 {
		size = 1
	}
	return &MovingWindow{ring: make([]float64, size)}
}

// Update pushes a value, evicting the oldest when full, and returns the
// updated mean and standard deviation.
func (mw *MovingWindow) Update(value float64) (mean, stddev float64) {
	if mw.length == len(mw.ring) {
		old := mw.ring[mw.head]
		mw.sum -= old
		mw.sumSq -= old * old
	} else {
		mw.length++
	}

	mw.ring[mw.head] = value
	mw.sum += value
	mw.sumSq += value * value
	mw.head = (mw.head + 1) % len(mw.ring)

	return mw.Stats()
}

// Len returns how many items are in the window.
func (mw *MovingWindow) Len() int {
	return mw.length
}

// Cap returns the max size of the window.
func (mw *MovingWindow) Cap() int {
	return len(mw.ring)
}

// Mean is the average of the windowed values.
func (mw *MovingWindow) Mean() float64 {
	if mw.length == 0 {
		return 0
	}
	return mw.sum / float64(mw.length)
}

// StdDev is the sample standard deviation of the windowed values.
func (mw *MovingWindow) StdDev() float64 {
	if mw.length < 2 {
		return 0
	}

	mean := mw.Mean()
	variance := (mw.sumSq - float64(mw.length)*mean*mean) / float64(mw.length-1)

	return math.Sqrt(math.Abs(variance))
}

// Stats returns the mean and standard deviation of the window.
func (mw *MovingWindow) Stats() (mean, stddev float64) {
	return mw.Mean(), mw.StdDev()
}
