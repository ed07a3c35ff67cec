// Package endian provides byte order utilities for the SEG-Y codecs.
//
// SEG-Y is big-endian by definition, while Seismic Unix files are written in
// the byte order of the machine that produced them. Codecs therefore never
// assume an order: they take an EndianEngine, which is satisfied by
// binary.BigEndian and binary.LittleEndian.
//
//	engine := endian.GetBigEndianEngine()
//	ns := engine.Uint16(hdr[114:116])
//
// Bulk sample regions are normalized to big-endian in place with Swap16 and
// Swap32 before conversion; both are self-inverse.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeBigEndian() {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine is the big-endian engine.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// Opposite returns the engine with the other byte order.
func Opposite(engine EndianEngine) EndianEngine {
	if IsBigEndian(engine) {
		return GetLittleEndianEngine()
	}

	return GetBigEndianEngine()
}

// Name returns "big" or "little".
func Name(engine EndianEngine) string {
	if IsBigEndian(engine) {
		return "big"
	}

	return "little"
}

// Swap16 reverses the byte order of every 2-byte word in b, in place.
// A trailing odd byte is left untouched.
func Swap16(b []byte) {
	for i := 0; i+1 < len(b); i += 2 {
		b[i], b[i+1] = b[i+1], b[i]
	}
}

// Swap32 reverses the byte order of every 4-byte word in b, in place.
// Trailing bytes that do not form a full word are left untouched.
func Swap32(b []byte) {
	for i := 0; i+3 < len(b); i += 4 {
		b[i], b[i+3] = b[i+3], b[i]
		b[i+1], b[i+2] = b[i+2], b[i+1]
	}
}

// SwapWords swaps b in place as a sequence of words of the given size (2 or 4).
func SwapWords(b []byte, wordSize int) {
	switch wordSize {
	case 2:
		Swap16(b)
	case 4:
		Swap32(b)
	}
}
