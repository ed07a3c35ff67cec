package section

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/svs590/OpenSeaSeis-sub000/errs"
)

const (
	asciiSpace  = 0x20
	ebcdicSpace = 0x40
)

// TextHeader is the 3200-byte card-image header. It keeps the bytes as found
// on disk together with their character set.
type TextHeader struct {
	data   [TextHeaderSize]byte
	ebcdic bool
}

// NewTextHeader builds a header from up to 40 lines. Lines are truncated or
// space-padded to 80 characters; characters outside printable ASCII become
// spaces. Missing lines are filled with "C<n>" card labels.
func NewTextHeader(lines []string, ebcdic bool) *TextHeader {
	ascii := bytes.Repeat([]byte{asciiSpace}, TextHeaderSize)
	for i := range TextHeaderLines {
		line := fmt.Sprintf("C%2d", i+1)
		if i < len(lines) {
			line = lines[i]
		}

		card := ascii[i*TextHeaderLineSize : (i+1)*TextHeaderLineSize]
		for j := 0; j < len(line) && j < TextHeaderLineSize; j++ {
			if c := line[j]; c >= asciiSpace && c < 0x7f {
				card[j] = c
			}
		}
	}

	h := &TextHeader{ebcdic: ebcdic}
	if !ebcdic {
		copy(h.data[:], ascii)
		return h
	}
	for i, c := range ascii {
		h.data[i] = asciiToEBCDIC(c)
	}

	return h
}

// ParseTextHeader parses a text header, detecting the character set.
func ParseTextHeader(data []byte) (*TextHeader, error) {
	if len(data) < TextHeaderSize {
		return nil, fmt.Errorf("%w: text header has %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	return ParseTextHeaderAs(data, IsEBCDIC(data[:TextHeaderSize]))
}

// ParseTextHeaderAs parses a text header with a known character set.
func ParseTextHeaderAs(data []byte, ebcdic bool) (*TextHeader, error) {
	if len(data) < TextHeaderSize {
		return nil, fmt.Errorf("%w: text header has %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := &TextHeader{ebcdic: ebcdic}
	copy(h.data[:], data[:TextHeaderSize])

	return h, nil
}

// IsEBCDIC guesses the character set of a text header by counting bytes that
// are printable in ASCII against bytes that are letters, digits or spaces in
// EBCDIC.
func IsEBCDIC(data []byte) bool {
	var asciiCount, ebcdicCount int
	for _, c := range data {
		if c >= asciiSpace && c < 0x7f {
			asciiCount++
		}
		if isEBCDICText(c) {
			ebcdicCount++
		}
	}

	return ebcdicCount > asciiCount
}

func isEBCDICText(c byte) bool {
	switch {
	case c == ebcdicSpace:
		return true
	case c >= 0xC1 && c <= 0xC9, c >= 0xD1 && c <= 0xD9, c >= 0xE2 && c <= 0xE9:
		return true
	case c >= 0xF0 && c <= 0xF9:
		return true
	}

	return false
}

// IsEBCDIC reports whether the stored bytes are EBCDIC.
func (h *TextHeader) IsEBCDIC() bool {
	return h.ebcdic
}

// Bytes returns a copy of the header as stored.
func (h *TextHeader) Bytes() []byte {
	return bytes.Clone(h.data[:])
}

// ASCII returns the header converted to ASCII, one byte per character.
// Characters without an ASCII equivalent become spaces.
func (h *TextHeader) ASCII() []byte {
	out := make([]byte, TextHeaderSize)
	if !h.ebcdic {
		copy(out, h.data[:])
		return out
	}
	for i, c := range h.data {
		r := charmap.CodePage037.DecodeByte(c)
		if r < asciiSpace || r >= 0x7f {
			r = asciiSpace
		}
		out[i] = byte(r)
	}

	return out
}

// EBCDIC returns the header converted to EBCDIC.
func (h *TextHeader) EBCDIC() []byte {
	if h.ebcdic {
		return h.Bytes()
	}

	out := make([]byte, TextHeaderSize)
	for i, c := range h.data {
		out[i] = asciiToEBCDIC(c)
	}

	return out
}

// Lines returns the 40 card images decoded to UTF-8 with trailing blanks
// removed.
func (h *TextHeader) Lines() []string {
	lines := make([]string, TextHeaderLines)

	var dec interface{ Bytes([]byte) ([]byte, error) }
	if h.ebcdic {
		dec = charmap.CodePage037.NewDecoder()
	}

	for i := range lines {
		card := h.data[i*TextHeaderLineSize : (i+1)*TextHeaderLineSize]
		if dec != nil {
			if decoded, err := dec.Bytes(card); err == nil {
				card = decoded
			}
		}
		lines[i] = strings.TrimRight(sanitize(string(card)), " ")
	}

	return lines
}

// Dump writes the 40 card images, one per line.
func (h *TextHeader) Dump(w io.Writer) error {
	for _, line := range h.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

func asciiToEBCDIC(c byte) byte {
	b, ok := charmap.CodePage037.EncodeRune(rune(c))
	if !ok {
		return ebcdicSpace
	}

	return b
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < asciiSpace || r == 0x7f {
			return ' '
		}

		return r
	}, s)
}
