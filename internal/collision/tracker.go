// Package collision detects hash collisions among header field names.
package collision

import (
	"fmt"

	"github.com/svs590/OpenSeaSeis-sub000/errs"
)

// Tracker records field name ids. Two distinct names sharing an id mark the
// tracker as collided; callers then fall back to comparing names directly.
type Tracker struct {
	names        map[uint64]string
	hasCollision bool
}

// NewTracker creates an empty tracker sized for a typical trace header map.
func NewTracker() *Tracker {
	return &Tracker{names: make(map[uint64]string, 128)}
}

// Track records name under id.
//
// Returns:
//   - error: ErrInvalidFieldName for an empty name, ErrDuplicateHeader when
//     the same name was already tracked
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidFieldName
	}

	if existing, ok := t.names[id]; ok {
		if existing == name {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateHeader, name)
		}
		t.hasCollision = true

		return nil
	}
	t.names[id] = name

	return nil
}

// HasCollision reports whether two tracked names share an id.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Count returns the number of distinct ids tracked.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset forgets all names and the collision state.
func (t *Tracker) Reset() {
	clear(t.names)
	t.hasCollision = false
}
