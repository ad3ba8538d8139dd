package fft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	inited bool
}

func (b *fakeBackend) Init() error  { b.inited = true; return nil }
func (b *fakeBackend) Close() error { return nil }

func (b *fakeBackend) ComplexPlan(Shape, Flag) (ComplexPlan, error) { return nil, nil }
func (b *fakeBackend) RealPlan(Shape, Flag) (RealPlan, error)       { return nil, nil }

func TestRegistry(t *testing.T) {
	saved := Backends
	Backends = nil
	defer func() { Backends = saved }()

	fake := &fakeBackend{}
	RegisterBackend("fake", fake)

	require.True(t, HasBackend("fake"))
	assert.Equal(t, []string{"fake"}, GetAllBackendNames())
	assert.Equal(t, "fake", DefaultBackend())

	b, err := InitBackend("fake")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.True(t, fake.inited)
}

func TestInitBackendUnknownName(t *testing.T) {
	saved := Backends
	Backends = nil
	defer func() { Backends = saved }()

	b, err := InitBackend("pocketfft")
	require.Error(t, err)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), `backend not found: "pocketfft"`)
}

func TestShapeHalf(t *testing.T) {
	assert.Equal(t, Shape{Rows: 8, Cols: 5}, Shape{Rows: 8, Cols: 8}.Half())
	assert.Equal(t, Shape{Rows: 7, Cols: 4}, Shape{Rows: 7, Cols: 7}.Half())
	assert.Equal(t, 1024*1024, Square(1024).Len())
	assert.False(t, Shape{Rows: 0, Cols: 3}.Valid())
}

func TestParseFlags(t *testing.T) {
	flags, err := ParseFlags([]string{"FFTW_MEASURE", "FFTW_DESTROY_INPUT"})
	require.NoError(t, err)
	assert.True(t, flags.Has(Measure))
	assert.True(t, flags.Has(DestroyInput))
	assert.False(t, flags.Has(Patient))

	flags, err = ParseFlags([]string{"estimate", "wisdom_only"})
	require.NoError(t, err)
	assert.True(t, flags.Has(Estimate | WisdomOnly))

	_, err = ParseFlags([]string{"FFTW_EXHAUSTIVE_GUESSING"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown planner flag")
}

func TestFlagString(t *testing.T) {
	assert.Equal(t, "0", Flag(0).String())
	assert.Equal(t, "FFTW_ESTIMATE|FFTW_MEASURE", (Estimate | Measure).String())
}
