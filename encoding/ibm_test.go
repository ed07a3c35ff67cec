package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIBMToFloat32_KnownValues(t *testing.T) {
	tests := []struct {
		ibm  uint32
		want float32
	}{
		{0x00000000, 0},
		{0x41100000, 1.0},
		{0xC1100000, -1.0},
		{0x40800000, 0.5},
		{0xC276A000, -118.625},
		{0x42640000, 100.0},
		{0x40280000, 0.15625},
		{0x80000000, 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, IBMToFloat32(tt.ibm), "ibm=0x%08X", tt.ibm)
	}
}

func TestFloat32ToIBM_KnownValues(t *testing.T) {
	tests := []struct {
		in   float32
		want uint32
	}{
		{0, 0x00000000},
		{1.0, 0x41100000},
		{-1.0, 0xC1100000},
		{0.5, 0x40800000},
		{-118.625, 0xC276A000},
		{100.0, 0x42640000},
		{0.15625, 0x40280000},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Float32ToIBM(tt.in), "in=%v", tt.in)
	}
}

func TestIBMRoundTrip(t *testing.T) {
	// Values with at most 21 significant bits survive the 24-bit IBM fraction
	// regardless of the base-16 normalization shift.
	values := []float32{1, 2, 3, 4, 5, 6, 7, 8, -8, 1024.5, -0.25, 12345, 65535}
	for _, v := range values {
		require.Equal(t, v, IBMToFloat32(Float32ToIBM(v)), "value %v", v)
	}
}

func TestIBMRoundTrip_RelativeError(t *testing.T) {
	for _, v := range []float32{math.Pi, -math.E, 1.0 / 3.0, 6.02e23, 1.6e-19} {
		got := IBMToFloat32(Float32ToIBM(v))
		rel := math.Abs(float64(got-v)) / math.Abs(float64(v))
		require.Less(t, rel, 1e-6, "value %v -> %v", v, got)
	}
}

func TestFloat32ToIBM_Special(t *testing.T) {
	require.Equal(t, uint32(0), Float32ToIBM(float32(math.NaN())))
	require.Equal(t, uint32(0x7FFFFFFF), Float32ToIBM(float32(math.Inf(1))))
	require.Equal(t, uint32(0xFFFFFFFF), Float32ToIBM(float32(math.Inf(-1))))
}
