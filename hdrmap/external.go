package hdrmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/svs590/OpenSeaSeis-sub000/errs"
	"github.com/svs590/OpenSeaSeis-sub000/format"
)

// LoadExternal reads field definitions from the file at path. See
// ReadExternal for the format.
func (m *HeaderMap) LoadExternal(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrOpenFailure, err)
	}
	defer f.Close()

	return m.ReadExternal(f)
}

// ReadExternal reads field definitions, one per line:
//
//	byteLoc  wireType  valueType  name  [description...]
//
// byteLoc is one-based (1..240). wireType is one of int16, int32, uint16,
// float, fixed46 or stringN (N bytes); valueType is one of int, float,
// double, int64 or string. Blank lines and lines starting with '#' are
// skipped.
//
// Definitions are applied in replace mode: a definition replaces any existing
// field with the same name or overlapping bytes. The load is all-or-nothing;
// on the first malformed line m is left unchanged.
func (m *HeaderMap) ReadExternal(r io.Reader) error {
	if m.locked {
		return errs.ErrMapLocked
	}

	work := m.Clone()
	work.SetReplaceMode(true)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		f, err := parseDefinition(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := work.Add(f); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	m.fields = work.fields
	m.reindex()

	return nil
}

func parseDefinition(line string) (Field, error) {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return Field{}, fmt.Errorf("%w: %q", errs.ErrMalformedLine, line)
	}

	loc, err := strconv.Atoi(parts[0])
	if err != nil {
		return Field{}, fmt.Errorf("%w: byte location %q", errs.ErrMalformedLine, parts[0])
	}

	wire, size, ok := format.ParseWireType(parts[1])
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", errs.ErrUnknownWireType, parts[1])
	}

	out, ok := format.ParseValueType(parts[2])
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", errs.ErrUnknownValueType, parts[2])
	}

	return Field{
		Name:        parts[3],
		ByteOffset:  loc - 1,
		ByteSize:    size,
		Wire:        wire,
		Out:         out,
		Description: strings.Join(parts[4:], " "),
	}, nil
}
