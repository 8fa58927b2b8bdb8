// Package selection manages the ordered list of timezones a user is comparing.
// The first entry is the reference timezone; every other entry's hour is derived
// from the reference hour.
//
// Every mutation either succeeds or returns a sentinel error and leaves the list
// exactly as it was.
package selection

import (
	"errors"
	"fmt"

	"github.com/codeGROOVE-dev/tzline/pkg/registry"
	"github.com/codeGROOVE-dev/tzline/pkg/tzconvert"
)

var (
	// ErrDuplicate is returned by Add when the identifier is already selected.
	ErrDuplicate = errors.New("timezone already selected")
	// ErrNotFound is returned by Remove when the identifier is not selected.
	ErrNotFound = errors.New("timezone not selected")
	// ErrInvalidIndex is returned by Reorder for positions outside the list.
	ErrInvalidIndex = errors.New("index out of range")
)

// Row is the derived, display-ready view of one selected timezone.
type Row struct {
	registry.Descriptor

	Clock     string           `json:"clock"`
	Hour      float64          `json:"hour"`
	Period    tzconvert.Period `json:"period"`
	DayShift  int              `json:"day_shift"`
	Reference bool             `json:"reference"`
}

// List is an ordered, duplicate-free selection of timezones.
type List struct {
	entries []registry.Descriptor
}

// New returns a list seeded with initial, skipping duplicate identifiers.
func New(initial ...registry.Descriptor) *List {
	l := &List{}
	for _, d := range initial {
		_ = l.Add(d) //nolint:errcheck // duplicates in seed data are dropped
	}
	return l
}

// Len returns the number of selected timezones.
func (l *List) Len() int {
	return len(l.entries)
}

// Empty reports whether nothing is selected.
func (l *List) Empty() bool {
	return len(l.entries) == 0
}

// Entries returns the selection in order. The slice is a copy.
func (l *List) Entries() []registry.Descriptor {
	out := make([]registry.Descriptor, len(l.entries))
	copy(out, l.entries)
	return out
}

// IDs returns the selected identifiers in order.
func (l *List) IDs() []string {
	ids := make([]string, len(l.entries))
	for i, d := range l.entries {
		ids[i] = d.ID
	}
	return ids
}

// Reference returns the first entry, which anchors all derived hours.
func (l *List) Reference() (registry.Descriptor, bool) {
	if len(l.entries) == 0 {
		return registry.Descriptor{}, false
	}
	return l.entries[0], true
}

// Index returns the position of id, or -1.
func (l *List) Index(id string) int {
	for i, d := range l.entries {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is selected.
func (l *List) Contains(id string) bool {
	return l.Index(id) >= 0
}

// Add appends d. Adding an identifier that is already selected returns ErrDuplicate.
func (l *List) Add(d registry.Descriptor) error {
	if l.Contains(d.ID) {
		return fmt.Errorf("%w: %q", ErrDuplicate, d.ID)
	}
	l.entries = append(l.entries, d)
	return nil
}

// Remove deletes the entry with the given identifier.
func (l *List) Remove(id string) error {
	i := l.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return nil
}

// Reorder moves the entry at from to position to, shifting the entries between.
// Both indices must satisfy 0 <= index < Len().
func (l *List) Reorder(from, to int) error {
	n := len(l.entries)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d -> %d in list of %d", ErrInvalidIndex, from, to, n)
	}
	if from == to {
		return nil
	}

	moved := l.entries[from]
	if from < to {
		copy(l.entries[from:to], l.entries[from+1:to+1])
	} else {
		copy(l.entries[to+1:from+1], l.entries[to:from])
	}
	l.entries[to] = moved
	return nil
}

// Derive computes every entry's local hour for referenceHour in the reference
// timezone. It returns nil for an empty selection.
func (l *List) Derive(referenceHour float64) []Row {
	ref, ok := l.Reference()
	if !ok {
		return nil
	}
	referenceHour = tzconvert.Normalize(referenceHour)

	rows := make([]Row, len(l.entries))
	for i, d := range l.entries {
		hour := tzconvert.HourInTarget(referenceHour, ref.Offset, d.Offset)
		rows[i] = Row{
			Descriptor: d,
			Hour:       hour,
			Period:     tzconvert.Classify(hour),
			Clock:      tzconvert.FormatClock(hour),
			DayShift:   tzconvert.DayShift(referenceHour, ref.Offset, d.Offset),
			Reference:  i == 0,
		}
	}
	return rows
}
