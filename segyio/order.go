package segyio

import (
	"strings"

	"github.com/coreos/pkg/capnslog"

	"github.com/svs590/OpenSeaSeis-sub000/endian"
)

var plog = capnslog.NewPackageLogger("github.com/svs590/OpenSeaSeis-sub000", "segyio")

// ByteOrder selects the byte order of a trace file.
type ByteOrder uint8

const (
	// ByteOrderAuto detects the order from the file: the binary header format
	// code for SEG-Y, the first trace header for SU and PASSCAL. Writers use
	// big-endian for SEG-Y and PASSCAL and the native order for SU.
	ByteOrderAuto ByteOrder = iota
	ByteOrderBig
	ByteOrderLittle
	ByteOrderNative
)

func (o ByteOrder) String() string {
	switch o {
	case ByteOrderAuto:
		return "auto"
	case ByteOrderBig:
		return "big"
	case ByteOrderLittle:
		return "little"
	case ByteOrderNative:
		return "native"
	default:
		return "Unknown"
	}
}

// Valid reports whether o is a known byte order.
func (o ByteOrder) Valid() bool {
	return o <= ByteOrderNative
}

// ParseByteOrder parses "auto", "big", "little" or "native".
func ParseByteOrder(s string) (ByteOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ByteOrderAuto, true
	case "big", "be", "big-endian":
		return ByteOrderBig, true
	case "little", "le", "little-endian":
		return ByteOrderLittle, true
	case "native":
		return ByteOrderNative, true
	default:
		return ByteOrderAuto, false
	}
}

// engine returns the engine of a fixed order, or false for ByteOrderAuto.
func (o ByteOrder) engine() (endian.EndianEngine, bool) {
	switch o {
	case ByteOrderBig:
		return endian.GetBigEndianEngine(), true
	case ByteOrderLittle:
		return endian.GetLittleEndianEngine(), true
	case ByteOrderNative:
		return endian.GetNativeEngine(), true
	default:
		return nil, false
	}
}

// TextEncoding selects the character set of the 3200-byte text header.
type TextEncoding uint8

const (
	TextAuto   TextEncoding = iota // TextAuto detects EBCDIC or ASCII.
	TextEBCDIC                     // TextEBCDIC forces EBCDIC.
	TextASCII                      // TextASCII forces ASCII.
)

func (e TextEncoding) String() string {
	switch e {
	case TextAuto:
		return "auto"
	case TextEBCDIC:
		return "ebcdic"
	case TextASCII:
		return "ascii"
	default:
		return "Unknown"
	}
}

// ParseTextEncoding parses "auto", "ebcdic" or "ascii".
func ParseTextEncoding(s string) (TextEncoding, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return TextAuto, true
	case "ebcdic":
		return TextEBCDIC, true
	case "ascii":
		return TextASCII, true
	default:
		return TextAuto, false
	}
}
