package tzconvert

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestHourInTarget(t *testing.T) {
	tests := []struct {
		name            string
		referenceHour   float64
		referenceOffset float64
		targetOffset    float64
		want            float64
	}{
		{"Ho Chi Minh noon to Tokyo", 12, 7, 9, 14},
		{"Ho Chi Minh 23:00 to Los Angeles wraps back", 23, 7, -8, 8},
		{"Los Angeles 20:00 to Auckland wraps forward", 20, -8, 13, 17},
		{"Auckland 01:00 to Los Angeles", 1, 13, -8, 4},
		{"half-hour offset India from UTC", 10, 0, 5.5, 15.5},
		{"quarter-hour offset Nepal from India", 9.5, 5.5, 5.75, 9.75},
		{"Newfoundland midnight to UTC", 0, -3.5, 0, 3.5},
		{"negative intermediate result", 1, 14, -12, 23},
		{"same offset is identity", 17.25, 3, 3, 17.25},
		{"fractional reference hour", 23.75, 0, 0.5, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HourInTarget(tt.referenceHour, tt.referenceOffset, tt.targetOffset)
			if !approx(got, tt.want) {
				t.Errorf("HourInTarget(%v, %v, %v) = %v, want %v",
					tt.referenceHour, tt.referenceOffset, tt.targetOffset, got, tt.want)
			}
		})
	}
}

func TestHourInTargetIdentity(t *testing.T) {
	offsets := []float64{-12, -8, -3.5, 0, 5.5, 5.75, 9, 13, 14}
	for _, offset := range offsets {
		for h := 0.0; h < 24; h += 0.25 {
			if got := HourInTarget(h, offset, offset); got != h {
				t.Errorf("HourInTarget(%v, %v, %v) = %v, want identity", h, offset, offset, got)
			}
		}
	}
}

func TestHourInTargetAlwaysInRange(t *testing.T) {
	offsets := []float64{-12, -9.5, -8, -3.5, 0, 4.5, 5.75, 9, 12.75, 13, 14}
	for _, ro := range offsets {
		for _, to := range offsets {
			for h := 0.0; h < 24; h += 0.5 {
				got := HourInTarget(h, ro, to)
				if got < 0 || got >= 24 {
					t.Fatalf("HourInTarget(%v, %v, %v) = %v, outside [0, 24)", h, ro, to, got)
				}
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{24, 0},
		{-1, 23},
		{-24.5, 23.5},
		{49.5, 1.5},
		{-1e-18, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); !approx(got, tt.want) {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDayShift(t *testing.T) {
	tests := []struct {
		name   string
		hour   float64
		ro, to float64
		want   int
	}{
		{"same day east", 12, 7, 9, 0},
		{"next day east", 23, 7, 9, 1},
		{"same day west", 23, 7, -8, 0},
		{"previous day west", 2, 7, -8, -1},
		{"identity", 5, 3, 3, 0},
		{"two days ahead", 23, -12, 14, 2},
		{"two days behind", 0, 14, -12, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayShift(tt.hour, tt.ro, tt.to); got != tt.want {
				t.Errorf("DayShift(%v, %v, %v) = %d, want %d", tt.hour, tt.ro, tt.to, got, tt.want)
			}
		})
	}
}

func TestUTCRoundTrip(t *testing.T) {
	for _, offset := range []float64{-8, -3.5, 0, 5.5, 13} {
		for h := 0.0; h < 24; h += 1.5 {
			if got := LocalToUTC(UTCToLocal(h, offset), offset); !approx(got, h) {
				t.Errorf("round trip of %v through offset %v = %v", h, offset, got)
			}
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		hour float64
		want string
	}{
		{0, "12:00 AM"},
		{13.5, "1:30 PM"},
		{12, "12:00 PM"},
		{11.75, "11:45 AM"},
		{9.25, "9:15 AM"},
		{14, "2:00 PM"},
		{8, "8:00 AM"},
		{24, "12:00 AM"},
		{1.0 / 60, "12:01 AM"},
		// Minute rounding reaches 60 and must carry.
		{23.9999, "12:00 AM"},
		{11.9999, "12:00 PM"},
		{9.999, "10:00 AM"},
		{12.99999, "1:00 PM"},
		// Just below the carry threshold.
		{9.99, "9:59 AM"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.hour); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		offset float64
		want   string
	}{
		{0, "UTC"},
		{7, "UTC+7"},
		{-8, "UTC-8"},
		{5.5, "UTC+5:30"},
		{5.75, "UTC+5:45"},
		{-3.5, "UTC-3:30"},
		{13, "UTC+13"},
	}

	for _, tt := range tests {
		if got := FormatOffset(tt.offset); got != tt.want {
			t.Errorf("FormatOffset(%v) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestCurrentHour(t *testing.T) {
	now := time.Date(2025, 3, 14, 22, 30, 0, 0, time.UTC)

	tests := []struct {
		offset float64
		want   float64
	}{
		{0, 22.5},
		{7, 5.5},
		{-8, 14.5},
		{5.5, 4},
	}

	for _, tt := range tests {
		if got := CurrentHour(now, tt.offset); !approx(got, tt.want) {
			t.Errorf("CurrentHour(22:30Z, %v) = %v, want %v", tt.offset, got, tt.want)
		}
	}

	// Non-UTC input times are converted first.
	tokyo := time.FixedZone("JST", 9*3600)
	if got := CurrentHour(now.In(tokyo), 0); !approx(got, 22.5) {
		t.Errorf("CurrentHour(JST time, 0) = %v, want 22.5", got)
	}

	if got := CurrentHourAsFraction(3); got < 0 || got >= 24 {
		t.Errorf("CurrentHourAsFraction(3) = %v, outside [0, 24)", got)
	}
}
