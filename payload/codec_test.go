package payload

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt12RoundTrip(t *testing.T) {
	// spec.md §8: a 12-bit link-efficient signed integer stream.
	f := Format{}.WithItemFormat(SignedInt).WithDataItemSize(12).
		WithItemPackingFieldSize(12).WithRealComplex(Real).
		WithRepeatCount(1).WithVectorSize(1)
	require.NoError(t, f.Validate())

	values := []int64{0, 1, -1, 2047, -2048, 42, -42}
	buf := make([]byte, BitsNeeded(f, len(values)))
	for i, v := range values {
		require.NoError(t, PackComponent(f, buf, i, 0, v))
	}
	for i, want := range values {
		got, err := UnpackComponent(f, buf, i, 0)
		require.NoError(t, err)
		require.Equal(t, want, got, "index %d", i)
	}
}

func TestFloat32RoundTrip(t *testing.T) {
	f := Float32()
	values := []float64{0, 1, -1, 3.5, -123.25}
	buf := make([]byte, BitsNeeded(f, len(values)))
	for i, v := range values {
		require.NoError(t, PackReal(f, buf, i, v))
	}
	for i, want := range values {
		got, err := UnpackReal(f, buf, i)
		require.NoError(t, err)
		require.InDelta(t, want, got, 1e-6)
	}
}

func TestComplexCartesianRoundTrip(t *testing.T) {
	f := Int16().AsComplexCartesian()
	buf := make([]byte, BitsNeeded(f, 2))
	require.NoError(t, PackComplex(f, buf, 0, 100, -200))
	require.NoError(t, PackComplex(f, buf, 1, -32768, 32767))
	re, im, err := UnpackComplex(f, buf, 0)
	require.NoError(t, err)
	require.Equal(t, float64(100), re)
	require.Equal(t, float64(-200), im)
	re, im, err = UnpackComplex(f, buf, 1)
	require.NoError(t, err)
	require.Equal(t, float64(-32768), re)
	require.Equal(t, float64(32767), im)
}

func TestVRTFloatSaturates(t *testing.T) {
	raw, err := float64ToVRTFloat(1e9, 16, 0, true)
	require.NoError(t, err)
	require.Equal(t, int64(1<<15-1), raw)

	raw, err = float64ToVRTFloat(-1e9, 16, 0, true)
	require.NoError(t, err)
	require.Equal(t, int64(-(1<<15)), raw)
}

func TestProcessingEfficientPadding(t *testing.T) {
	f := basic(SignedInt, 12).WithProcessingEfficient(true).WithItemPackingFieldSize(16)
	require.Equal(t, 16, ItemBitWidth(f))
	require.Equal(t, 4, BitsNeeded(f, 2)) // 2 items * 16 bits = 32 bits = 4 octets
}

func TestNullFormat(t *testing.T) {
	require.True(t, Null.IsNull())
	require.NoError(t, Null.Validate())
}

func TestFormatRejectsInconsistentWidths(t *testing.T) {
	f := Format{}.WithDataItemSize(32).WithItemPackingFieldSize(16)
	require.Error(t, f.Validate())
}
