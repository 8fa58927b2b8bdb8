// Package registry holds the fixed table of timezones a user can pick from.
// Offsets are plain hours east of UTC and never change at runtime.
package registry

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sahilm/fuzzy"
)

var (
	// ErrNotFound is returned when an identifier is not in the registry.
	ErrNotFound = errors.New("timezone not found")
	// ErrDuplicateID is returned by New when two descriptors share an identifier.
	ErrDuplicateID = errors.New("duplicate timezone id")
	// ErrInvalidOffset is returned by New for offsets outside [-12, +14] or non-finite ones.
	ErrInvalidOffset = errors.New("invalid utc offset")
)

const (
	minOffset = -12.0
	maxOffset = 14.0
)

// Descriptor describes a selectable timezone.
type Descriptor struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	City         string  `json:"city"`
	Abbreviation string  `json:"abbreviation"`
	Offset       float64 `json:"offset"`
}

// Registry is an immutable, ordered set of descriptors.
type Registry struct {
	byID    map[string]int
	entries []Descriptor
	keys    []string // search haystack, parallel to entries
}

// New builds a registry from descs, preserving their order.
func New(descs []Descriptor) (*Registry, error) {
	r := &Registry{
		byID:    make(map[string]int, len(descs)),
		entries: make([]Descriptor, 0, len(descs)),
		keys:    make([]string, 0, len(descs)),
	}
	for _, d := range descs {
		if _, exists := r.byID[d.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, d.ID)
		}
		if math.IsNaN(d.Offset) || math.IsInf(d.Offset, 0) || d.Offset < minOffset || d.Offset > maxOffset {
			return nil, fmt.Errorf("%w: %q has offset %v", ErrInvalidOffset, d.ID, d.Offset)
		}
		r.byID[d.ID] = len(r.entries)
		r.entries = append(r.entries, d)
		r.keys = append(r.keys, strings.Join([]string{d.City, d.Name, d.Abbreviation, d.ID}, " "))
	}
	return r, nil
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (Descriptor, error) {
	i, ok := r.byID[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return r.entries[i], nil
}

// All returns every descriptor in table order. The slice is a copy.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of descriptors.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Search returns descriptors fuzzy-matching query, best match first.
// An empty query returns the table order. limit <= 0 means no limit.
func (r *Registry) Search(query string, limit int) []Descriptor {
	query = strings.TrimSpace(query)
	if query == "" {
		out := r.All()
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return out
	}

	matches := fuzzy.Find(query, r.keys)
	out := make([]Descriptor, 0, len(matches))
	for _, m := range matches {
		out = append(out, r.entries[m.Index])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

var defaultRegistry = mustNew(builtin)

// Default returns the built-in registry.
func Default() *Registry {
	return defaultRegistry
}

func mustNew(descs []Descriptor) *Registry {
	r, err := New(descs)
	if err != nil {
		panic(err)
	}
	return r
}
