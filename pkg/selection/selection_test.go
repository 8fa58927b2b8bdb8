package selection

import (
	"errors"
	"testing"

	"github.com/codeGROOVE-dev/tzline/pkg/registry"
	"github.com/codeGROOVE-dev/tzline/pkg/tzconvert"
	"github.com/google/go-cmp/cmp"
)

var (
	zoneA = registry.Descriptor{ID: "A", City: "Alpha", Offset: 0}
	zoneB = registry.Descriptor{ID: "B", City: "Beta", Offset: 1}
	zoneC = registry.Descriptor{ID: "C", City: "Gamma", Offset: 2}
	zoneD = registry.Descriptor{ID: "D", City: "Delta", Offset: 3}
)

func mustLookup(t *testing.T, id string) registry.Descriptor {
	t.Helper()
	d, err := registry.Default().Lookup(id)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", id, err)
	}
	return d
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name     string
		initial  []registry.Descriptor
		from, to int
		want     []string
		wantErr  error
	}{
		{"first to last", []registry.Descriptor{zoneA, zoneB, zoneC}, 0, 2, []string{"B", "C", "A"}, nil},
		{"last to first", []registry.Descriptor{zoneA, zoneB, zoneC}, 2, 0, []string{"C", "A", "B"}, nil},
		{"adjacent down", []registry.Descriptor{zoneA, zoneB, zoneC, zoneD}, 1, 2, []string{"A", "C", "B", "D"}, nil},
		{"middle up", []registry.Descriptor{zoneA, zoneB, zoneC, zoneD}, 3, 1, []string{"A", "D", "B", "C"}, nil},
		{"same position", []registry.Descriptor{zoneA, zoneB, zoneC}, 1, 1, []string{"A", "B", "C"}, nil},
		{"from out of range", []registry.Descriptor{zoneA, zoneB, zoneC}, 3, 0, []string{"A", "B", "C"}, ErrInvalidIndex},
		{"to out of range", []registry.Descriptor{zoneA, zoneB, zoneC}, 0, 3, []string{"A", "B", "C"}, ErrInvalidIndex},
		{"negative index", []registry.Descriptor{zoneA, zoneB, zoneC}, -1, 1, []string{"A", "B", "C"}, ErrInvalidIndex},
		{"empty list", nil, 0, 0, []string{}, ErrInvalidIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.initial...)
			err := l.Reorder(tt.from, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Reorder(%d, %d) error = %v, want %v", tt.from, tt.to, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, l.IDs()); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReorderNeverLosesEntries(t *testing.T) {
	all := []registry.Descriptor{zoneA, zoneB, zoneC, zoneD}
	for from := -1; from <= len(all); from++ {
		for to := -1; to <= len(all); to++ {
			l := New(all...)
			_ = l.Reorder(from, to) //nolint:errcheck // invalid moves are part of the sweep
			seen := make(map[string]int)
			for _, id := range l.IDs() {
				seen[id]++
			}
			if len(seen) != len(all) || l.Len() != len(all) {
				t.Errorf("Reorder(%d, %d) corrupted list: %v", from, to, l.IDs())
			}
		}
	}
}

func TestAddRejectsDuplicates(t *testing.T) {
	l := New(zoneA, zoneB)

	err := l.Add(registry.Descriptor{ID: "A", City: "Imposter", Offset: 5})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Add(duplicate) error = %v, want ErrDuplicate", err)
	}
	if diff := cmp.Diff([]registry.Descriptor{zoneA, zoneB}, l.Entries()); diff != "" {
		t.Errorf("list changed after duplicate add (-want +got):\n%s", diff)
	}

	if err := l.Add(zoneC); err != nil {
		t.Fatalf("Add(C): %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, l.IDs()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDropsDuplicateSeeds(t *testing.T) {
	l := New(zoneA, zoneB, zoneA)
	if diff := cmp.Diff([]string{"A", "B"}, l.IDs()); diff != "" {
		t.Errorf("seeded ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRemove(t *testing.T) {
	l := New(zoneA, zoneB, zoneC)

	if err := l.Remove("Z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(absent) error = %v, want ErrNotFound", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, l.IDs()); diff != "" {
		t.Errorf("list changed after absent remove (-want +got):\n%s", diff)
	}

	if err := l.Remove("A"); err != nil {
		t.Fatalf("Remove(A): %v", err)
	}
	ref, ok := l.Reference()
	if !ok || ref.ID != "B" {
		t.Errorf("Reference() = %v, %v; want B", ref.ID, ok)
	}

	_ = l.Remove("B") //nolint:errcheck // present
	_ = l.Remove("C") //nolint:errcheck // present
	if !l.Empty() {
		t.Errorf("list not empty after removing all: %v", l.IDs())
	}
	if _, ok := l.Reference(); ok {
		t.Error("empty list reported a reference")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := New(zoneA, zoneB)
	entries := l.Entries()
	entries[0] = zoneD
	if l.IDs()[0] != "A" {
		t.Error("mutating Entries() result changed the list")
	}
}

func TestDeriveEmpty(t *testing.T) {
	if rows := New().Derive(12); rows != nil {
		t.Errorf("Derive on empty list = %v, want nil", rows)
	}
}

func TestDeriveHoChiMinhTokyo(t *testing.T) {
	l := New(mustLookup(t, "Asia/Ho_Chi_Minh"), mustLookup(t, "Asia/Tokyo"))

	rows := l.Derive(12)
	if len(rows) != 2 {
		t.Fatalf("Derive returned %d rows, want 2", len(rows))
	}

	if !rows[0].Reference || rows[0].Hour != 12 || rows[0].Clock != "12:00 PM" {
		t.Errorf("reference row = %+v", rows[0])
	}

	tokyo := rows[1]
	if tokyo.Reference {
		t.Error("Tokyo marked as reference")
	}
	if tokyo.Hour != 14 {
		t.Errorf("Tokyo hour = %v, want 14", tokyo.Hour)
	}
	if tokyo.Clock != "2:00 PM" {
		t.Errorf("Tokyo clock = %q, want 2:00 PM", tokyo.Clock)
	}
	if tokyo.Period != tzconvert.Afternoon {
		t.Errorf("Tokyo period = %v, want afternoon", tokyo.Period)
	}
}

func TestDeriveWrapsAcrossMidnight(t *testing.T) {
	ref := registry.Descriptor{ID: "REF", Offset: 7}
	west := registry.Descriptor{ID: "WEST", Offset: -8}
	l := New(ref, west)

	rows := l.Derive(23)
	got := rows[1]
	if got.Hour != 8 {
		t.Errorf("hour = %v, want 8", got.Hour)
	}
	if got.Clock != "8:00 AM" {
		t.Errorf("clock = %q, want 8:00 AM", got.Clock)
	}
	if got.Period != tzconvert.Morning {
		t.Errorf("period = %v, want morning", got.Period)
	}
	if got.DayShift != 0 {
		t.Errorf("day shift = %d, want 0", got.DayShift)
	}

	// The other direction: 02:00 at +7 is the previous evening at -8.
	rows = l.Derive(2)
	if rows[1].Hour != 11 || rows[1].DayShift != -1 {
		t.Errorf("Derive(2) west row = %+v, want hour 11 on the previous day", rows[1])
	}
}

func TestDeriveFollowsReorderedReference(t *testing.T) {
	l := New(mustLookup(t, "Asia/Ho_Chi_Minh"), mustLookup(t, "Asia/Tokyo"))
	if err := l.Reorder(1, 0); err != nil {
		t.Fatal(err)
	}

	rows := l.Derive(12)
	if rows[0].ID != "Asia/Tokyo" || rows[0].Hour != 12 {
		t.Errorf("reference row = %+v, want Tokyo at 12", rows[0])
	}
	if rows[1].Hour != 10 {
		t.Errorf("Ho Chi Minh hour = %v, want 10", rows[1].Hour)
	}
}
