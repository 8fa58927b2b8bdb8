package tzconvert

import "fmt"

// Period is one of the four fixed six-hour bands used to color the timeline.
type Period int

// Day periods in clock order. Each covers [start, start+6).
const (
	Night Period = iota
	Morning
	Afternoon
	Evening
)

var periodNames = [...]string{"night", "morning", "afternoon", "evening"}

var periodLabels = [...]string{"Night", "Morning", "Afternoon", "Evening"}

// Classify returns the day period containing hour.
// Boundary hours (6, 12, 18) belong to the later period.
func Classify(hour float64) Period {
	h := Normalize(hour)
	switch {
	case h < 6:
		return Night
	case h < 12:
		return Morning
	case h < 18:
		return Afternoon
	default:
		return Evening
	}
}

// Bounds returns the half-open hour range [start, end) of the period.
func (p Period) Bounds() (start, end float64) {
	start = float64(p) * 6
	return start, start + 6
}

// Label returns the display name, e.g. "Afternoon".
func (p Period) Label() string {
	if p < Night || p > Evening {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return periodLabels[p]
}

func (p Period) String() string {
	if p < Night || p > Evening {
		return fmt.Sprintf("period(%d)", int(p))
	}
	return periodNames[p]
}

// MarshalText encodes the period as its lower-case name.
func (p Period) MarshalText() ([]byte, error) {
	if p < Night || p > Evening {
		return nil, fmt.Errorf("invalid period %d", int(p))
	}
	return []byte(periodNames[p]), nil
}

// UnmarshalText decodes a lower-case period name.
func (p *Period) UnmarshalText(text []byte) error {
	for i, name := range periodNames {
		if name == string(text) {
			*p = Period(i)
			return nil
		}
	}
	return fmt.Errorf("unknown period %q", text)
}
