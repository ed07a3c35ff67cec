// Package format defines the closed enumerations shared by the codec packages:
// header dialects, field wire types, logical value types and sample formats.
package format

import (
	"strconv"
	"strings"
)

type (
	// Dialect selects a built-in trace header layout and its file bootstrap.
	Dialect uint8
	// WireType is the on-disk representation of one trace header field.
	WireType uint8
	// ValueType is the in-memory representation of one decoded header value.
	ValueType uint8
	// SampleFormat is the SEG-Y data sample format code (binary header bytes 3225-3226).
	SampleFormat uint16
)

const (
	DialectStandard Dialect = iota // DialectStandard is SEG-Y revision 1.
	DialectOBC                     // DialectOBC is SEG-Y with ocean-bottom cable extensions.
	DialectSEND                    // DialectSEND is SEG-Y with SEND node recorder extensions.
	DialectARMSS                   // DialectARMSS is SEG-Y with ARMSS recorder extensions.
	DialectPSEGY                   // DialectPSEGY is PASSCAL SEG-Y (metadata in the trace header).
	DialectNodeOld                 // DialectNodeOld is the legacy node recorder layout.
	DialectNode                    // DialectNode is the current node recorder layout.
	DialectSU                      // DialectSU is Seismic Unix with SU key names.
	DialectSUOnly                  // DialectSUOnly maps only the SU-specific keys.
	DialectSUBoth                  // DialectSUBoth maps SEG-Y names plus the SU extension block.
	DialectNone                    // DialectNone starts with an empty map.
)

const (
	WireInt16   WireType = iota + 1 // WireInt16 is a 2-byte signed integer.
	WireInt32                       // WireInt32 is a 4-byte signed integer.
	WireUint16                      // WireUint16 is a 2-byte unsigned integer.
	WireFloat32                     // WireFloat32 is a 4-byte IEEE float.
	WireString                      // WireString is a fixed-length character field.
	WireFixed46                     // WireFixed46 is a 4-byte mantissa followed by a 2-byte power-of-ten exponent.
)

const (
	ValueInt    ValueType = iota + 1 // ValueInt is a 32-bit signed integer.
	ValueFloat                       // ValueFloat is a 32-bit float.
	ValueDouble                      // ValueDouble is a 64-bit float.
	ValueInt64                       // ValueInt64 is a 64-bit signed integer.
	ValueString                      // ValueString is a string.
)

const (
	SampleUnknown SampleFormat = 0 // SampleUnknown means the code was not set.
	SampleIBM     SampleFormat = 1 // SampleIBM is 4-byte IBM floating point.
	SampleInt32   SampleFormat = 2 // SampleInt32 is a 4-byte two's complement integer.
	SampleInt16   SampleFormat = 3 // SampleInt16 is a 2-byte two's complement integer.
	SampleIEEE    SampleFormat = 5 // SampleIEEE is a 4-byte IEEE floating point.
)

var dialectNames = map[Dialect]string{
	DialectStandard: "standard",
	DialectOBC:      "obc",
	DialectSEND:     "send",
	DialectARMSS:    "armss",
	DialectPSEGY:    "psegy",
	DialectNodeOld:  "node_old",
	DialectNode:     "node",
	DialectSU:       "su",
	DialectSUOnly:   "su_only",
	DialectSUBoth:   "su_both",
	DialectNone:     "none",
}

// Dialects lists every built-in dialect in declaration order.
func Dialects() []Dialect {
	return []Dialect{
		DialectStandard, DialectOBC, DialectSEND, DialectARMSS, DialectPSEGY,
		DialectNodeOld, DialectNode, DialectSU, DialectSUOnly, DialectSUBoth, DialectNone,
	}
}

func (d Dialect) String() string {
	if name, ok := dialectNames[d]; ok {
		return name
	}

	return "Unknown"
}

// Valid reports whether d is one of the built-in dialects.
func (d Dialect) Valid() bool {
	_, ok := dialectNames[d]
	return ok
}

// IsSU reports whether d belongs to the Seismic Unix family, which has no file headers.
func (d Dialect) IsSU() bool {
	return d == DialectSU || d == DialectSUOnly || d == DialectSUBoth
}

// HasFileHeaders reports whether files of this dialect start with the
// 3200-byte text header and the 400-byte binary header.
func (d Dialect) HasFileHeaders() bool {
	return !d.IsSU() && d != DialectPSEGY
}

// ParseDialect parses a dialect name as printed by Dialect.String.
func ParseDialect(s string) (Dialect, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for d, name := range dialectNames {
		if name == key {
			return d, true
		}
	}

	return 0, false
}

// Size returns the byte size of fixed-size wire types, or 0 for WireString.
func (w WireType) Size() int {
	switch w {
	case WireInt16, WireUint16:
		return 2
	case WireInt32, WireFloat32:
		return 4
	case WireFixed46:
		return 6
	default:
		return 0
	}
}

func (w WireType) String() string {
	switch w {
	case WireInt16:
		return "int16"
	case WireInt32:
		return "int32"
	case WireUint16:
		return "uint16"
	case WireFloat32:
		return "float32"
	case WireString:
		return "string"
	case WireFixed46:
		return "fixed4+2"
	default:
		return "Unknown"
	}
}

// ParseWireType parses a wire type token of an external header definition.
//
// Accepted tokens: short/int16/int2, int/int32/int4, ushort/uint16/uint2,
// float/float32/real4, 4+2/fixed4+2, and string<N>/char<N>/s<N> where N is
// the field length in bytes. The returned size is the field byte size.
func ParseWireType(s string) (WireType, int, bool) {
	tok := strings.ToLower(strings.TrimSpace(s))
	switch tok {
	case "short", "int16", "int2", "i2":
		return WireInt16, 2, true
	case "int", "int32", "int4", "i4", "long":
		return WireInt32, 4, true
	case "ushort", "uint16", "uint2", "u2":
		return WireUint16, 2, true
	case "float", "float32", "real4", "f4":
		return WireFloat32, 4, true
	case "4+2", "fixed4+2", "fixed46":
		return WireFixed46, 6, true
	}

	for _, prefix := range []string{"string", "char", "s"} {
		rest, ok := strings.CutPrefix(tok, prefix)
		if !ok || rest == "" {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 {
			return 0, 0, false
		}

		return WireString, n, true
	}

	return 0, 0, false
}

func (v ValueType) String() string {
	switch v {
	case ValueInt:
		return "int"
	case ValueFloat:
		return "float"
	case ValueDouble:
		return "double"
	case ValueInt64:
		return "int64"
	case ValueString:
		return "string"
	default:
		return "Unknown"
	}
}

// IsNumeric reports whether v holds a number.
func (v ValueType) IsNumeric() bool {
	return v == ValueInt || v == ValueFloat || v == ValueDouble || v == ValueInt64
}

// ParseValueType parses a logical type token of an external header definition.
func ParseValueType(s string) (ValueType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int", "int32", "short", "int16", "ushort", "uint16":
		return ValueInt, true
	case "float", "float32":
		return ValueFloat, true
	case "double", "float64", "4+2", "fixed4+2":
		return ValueDouble, true
	case "long", "int64":
		return ValueInt64, true
	}
	if strings.EqualFold(strings.TrimSpace(s), "string") {
		return ValueString, true
	}
	if w, _, ok := ParseWireType(s); ok {
		return w.DefaultValueType(), true
	}

	return 0, false
}

// DefaultValueType returns the natural in-memory type for a wire type.
func (w WireType) DefaultValueType() ValueType {
	switch w {
	case WireFloat32:
		return ValueFloat
	case WireFixed46:
		return ValueDouble
	case WireString:
		return ValueString
	default:
		return ValueInt
	}
}

// Size returns the encoded size in bytes of one sample, or 0 for unsupported codes.
func (f SampleFormat) Size() int {
	switch f {
	case SampleIBM, SampleInt32, SampleIEEE:
		return 4
	case SampleInt16:
		return 2
	default:
		return 0
	}
}

// Valid reports whether f is a supported sample format.
func (f SampleFormat) Valid() bool {
	return f.Size() != 0
}

func (f SampleFormat) String() string {
	switch f {
	case SampleIBM:
		return "IBM"
	case SampleInt32:
		return "Int32"
	case SampleInt16:
		return "Int16"
	case SampleIEEE:
		return "IEEE"
	default:
		return "Unknown"
	}
}

// ParseSampleFormat parses a sample format name (ibm, ieee, int32, int16) or numeric code.
func ParseSampleFormat(s string) (SampleFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ibm", "1":
		return SampleIBM, true
	case "int32", "int", "2":
		return SampleInt32, true
	case "int16", "short", "3":
		return SampleInt16, true
	case "ieee", "float", "5":
		return SampleIEEE, true
	default:
		return SampleUnknown, false
	}
}
