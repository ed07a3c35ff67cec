// Package hash derives stable 64-bit identifiers for header field names.
package hash

import "github.com/cespare/xxhash/v2"

// FieldID returns the xxHash64 of a header field name. Names are
// case-sensitive, so "SOU_X" and "sou_x" have different ids.
func FieldID(name string) uint64 {
	return xxhash.Sum64String(name)
}
