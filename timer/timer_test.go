package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartStopAlternation(t *testing.T) {
	var tm Timer

	require.NoError(t, tm.Start())
	require.True(t, tm.Running())

	err := tm.Start()
	require.Error(t, err)
	var misuse *MisuseError
	require.ErrorAs(t, err, &misuse)
	assert.Equal(t, "start", misuse.Op)

	_, err = tm.Stop()
	require.NoError(t, err)
	require.False(t, tm.Running())

	_, err = tm.Stop()
	require.Error(t, err)
	require.ErrorAs(t, err, &misuse)
	assert.Equal(t, "stop", misuse.Op)
}

func TestStopOnFreshTimer(t *testing.T) {
	var tm Timer

	_, err := tm.Stop()
	require.Error(t, err)
}

func TestElapsedIsSumOfIncs(t *testing.T) {
	var tm Timer

	for i := 0; i < 5; i++ {
		require.NoError(t, tm.Start())
		time.Sleep(time.Millisecond)
		inc, err := tm.Stop()
		require.NoError(t, err)
		assert.Greater(t, inc, time.Duration(0))
	}

	incs := tm.Incs()
	require.Len(t, incs, 5)

	var sum time.Duration
	for _, inc := range incs {
		sum += inc
	}

	assert.Equal(t, sum, tm.Elapsed())
	assert.InDelta(t, float64(sum)/float64(time.Millisecond), tm.Milliseconds(), 1e-9)
}

func TestIncsIsACopy(t *testing.T) {
	var tm Timer

	require.NoError(t, tm.Start())
	_, err := tm.Stop()
	require.NoError(t, err)

	// Corrupting the returned slice must not touch the records.
	incs := tm.Incs()
	require.Len(t, incs, 1)
	incs[0] = -time.Hour

	require.Len(t, tm.Incs(), 1)
	assert.Equal(t, tm.Elapsed(), tm.Incs()[0])
}

func TestZeroTimer(t *testing.T) {
	var tm Timer

	assert.Zero(t, tm.Elapsed())
	assert.Empty(t, tm.Incs())
	assert.False(t, tm.Running())
}
