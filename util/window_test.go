package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingWindowStats(t *testing.T) {
	mw := NewMovingWindow(4)

	assert.Equal(t, 0, mw.Len())
	assert.Equal(t, 4, mw.Cap())
	assert.Zero(t, mw.Mean())
	assert.Zero(t, mw.StdDev())

	mean, stddev := mw.Update(2)
	assert.Equal(t, 2.0, mean)
	assert.Zero(t, stddev)

	mw.Update(4)
	mw.Update(4)
	mean, stddev = mw.Update(6)

	require.Equal(t, 4, mw.Len())
	assert.InDelta(t, 4.0, mean, 1e-12)
	// Sample stddev of {2, 4, 4, 6}.
	assert.InDelta(t, 1.632993161855452, stddev, 1e-9)
}

func TestMovingWindowEviction(t *testing.T) {
	mw := NewMovingWindow(2)

	mw.Update(100)
	mw.Update(1)
	mean, _ := mw.Update(3)

	// The 100 fell out of the window.
	assert.Equal(t, 2, mw.Len())
	assert.InDelta(t, 2.0, mean, 1e-12)
}

func TestMovingWindowMinimumSize(t *testing.T) {
	mw := NewMovingWindow(0)
	require.Equal(t, 1, mw.Cap())

	mean, _ := mw.Update(5)
	assert.Equal(t, 5.0, mean)
}
