package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialectString(t *testing.T) {
	for _, d := range Dialects() {
		require.True(t, d.Valid())
		parsed, ok := ParseDialect(d.String())
		require.True(t, ok, d.String())
		require.Equal(t, d, parsed)
	}

	require.Equal(t, "Unknown", Dialect(200).String())
	require.False(t, Dialect(200).Valid())

	_, ok := ParseDialect("segd")
	require.False(t, ok)
}

func TestDialectFamilies(t *testing.T) {
	tests := []struct {
		dialect     Dialect
		su          bool
		fileHeaders bool
	}{
		{DialectStandard, false, true},
		{DialectOBC, false, true},
		{DialectPSEGY, false, false},
		{DialectSU, true, false},
		{DialectSUOnly, true, false},
		{DialectSUBoth, true, false},
		{DialectNone, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String(), func(t *testing.T) {
			require.Equal(t, tt.su, tt.dialect.IsSU())
			require.Equal(t, tt.fileHeaders, tt.dialect.HasFileHeaders())
		})
	}
}

func TestParseWireType(t *testing.T) {
	tests := []struct {
		in   string
		wire WireType
		size int
		ok   bool
	}{
		{"short", WireInt16, 2, true},
		{"INT", WireInt32, 4, true},
		{"ushort", WireUint16, 2, true},
		{"float", WireFloat32, 4, true},
		{"4+2", WireFixed46, 6, true},
		{"string8", WireString, 8, true},
		{"char6", WireString, 6, true},
		{"s4", WireString, 4, true},
		{"string", 0, 0, false},
		{"string0", 0, 0, false},
		{"double", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			wire, size, ok := ParseWireType(tt.in)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			require.Equal(t, tt.wire, wire)
			require.Equal(t, tt.size, size)
		})
	}
}

func TestParseValueType(t *testing.T) {
	tests := []struct {
		in  string
		out ValueType
	}{
		{"int", ValueInt},
		{"int4", ValueInt},
		{"short", ValueInt},
		{"float", ValueFloat},
		{"double", ValueDouble},
		{"int64", ValueInt64},
		{"string", ValueString},
		{"string8", ValueString},
		{"4+2", ValueDouble},
	}

	for _, tt := range tests {
		v, ok := ParseValueType(tt.in)
		require.True(t, ok, tt.in)
		require.Equal(t, tt.out, v, tt.in)
	}

	_, ok := ParseValueType("complex")
	require.False(t, ok)
}

func TestSampleFormat(t *testing.T) {
	require.Equal(t, 4, SampleIBM.Size())
	require.Equal(t, 4, SampleInt32.Size())
	require.Equal(t, 2, SampleInt16.Size())
	require.Equal(t, 4, SampleIEEE.Size())
	require.Equal(t, 0, SampleFormat(4).Size())
	require.False(t, SampleFormat(8).Valid())

	f, ok := ParseSampleFormat("ieee")
	require.True(t, ok)
	require.Equal(t, SampleIEEE, f)

	f, ok = ParseSampleFormat("1")
	require.True(t, ok)
	require.Equal(t, SampleIBM, f)

	_, ok = ParseSampleFormat("int8")
	require.False(t, ok)
}
