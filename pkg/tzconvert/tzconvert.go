// Package tzconvert provides foolproof hour-of-day arithmetic between fixed UTC offsets.
// Hours are float64 values in [0, 24) where 13.5 means 13:30.
// Offsets are float64 hours east of UTC and may be fractional (+5.5, +5.75, -3.5).
package tzconvert

import (
	"fmt"
	"math"
	"time"
)

// Normalize wraps any hour value onto the 24-hour clock.
// Example: Normalize(24) == 0, Normalize(-1) == 23, Normalize(49.5) == 1.5
//
// Non-finite input returns 0 so callers always get a usable clock position.
func Normalize(hour float64) float64 {
	if math.IsNaN(hour) || math.IsInf(hour, 0) {
		return 0
	}
	h := math.Mod(hour, 24)
	if h < 0 {
		h += 24
	}
	// A tiny negative remainder plus 24 can round up to exactly 24.
	if h >= 24 {
		return 0
	}
	return h
}

// HourInTarget converts an hour in the reference timezone to the target timezone.
// Example: HourInTarget(12, 7, 9) converts noon in Ho Chi Minh City (UTC+7) to 14:00 in Tokyo (UTC+9)
// Example: HourInTarget(23, 7, -8) converts 23:00 UTC+7 to 08:00 UTC-8
//
// Parameters:
//   - referenceHour: Hour in the reference timezone (0-24, fractional allowed)
//   - referenceOffset: UTC offset of the reference timezone
//   - targetOffset: UTC offset of the target timezone
//
// Returns: Target hour in [0, 24), properly wrapped for day boundaries.
func HourInTarget(referenceHour, referenceOffset, targetOffset float64) float64 {
	return Normalize(referenceHour + (targetOffset - referenceOffset))
}

// DayShift reports which calendar day the target hour falls on relative to the reference day.
// Negative values are earlier days, 0 the same day, positive values later days.
// Offsets span UTC-12 to UTC+14, so the result ranges from -2 to +2.
// Example: DayShift(23, 7, 9) == 1 because 23:00 in UTC+7 is 01:00 the next day in UTC+9.
func DayShift(referenceHour, referenceOffset, targetOffset float64) int {
	return int(math.Floor((Normalize(referenceHour) + targetOffset - referenceOffset) / 24))
}

// UTCToLocal converts a UTC hour to local hour given a UTC offset.
// Example: UTCToLocal(15.5, -4) converts 15:30 UTC to 11:30 UTC-4
// Example: UTCToLocal(2.0, 5.5) converts 02:00 UTC to 07:30 UTC+5:30
func UTCToLocal(utcHour, utcOffset float64) float64 {
	return HourInTarget(utcHour, 0, utcOffset)
}

// LocalToUTC converts a local hour to UTC given a UTC offset.
// Example: LocalToUTC(11.5, -4) converts 11:30 UTC-4 to 15:30 UTC
func LocalToUTC(localHour, utcOffset float64) float64 {
	return HourInTarget(localHour, utcOffset, 0)
}

// CurrentHour returns the hour of day at now in a timezone with the given offset.
func CurrentHour(now time.Time, utcOffset float64) float64 {
	utc := now.UTC()
	utcHour := float64(utc.Hour()) + float64(utc.Minute())/60 + float64(utc.Second())/3600
	return UTCToLocal(utcHour, utcOffset)
}

// CurrentHourAsFraction returns the current wall-clock hour in a timezone with the given offset.
func CurrentHourAsFraction(utcOffset float64) float64 {
	return CurrentHour(time.Now(), utcOffset)
}

// FormatClock renders an hour as "H:MM AM/PM".
// Minutes are rounded; a minute count that rounds to 60 carries into the next hour,
// and a carry past 23:59 wraps to 12:00 AM.
// Example: FormatClock(0) == "12:00 AM", FormatClock(13.5) == "1:30 PM"
func FormatClock(hour float64) string {
	h := Normalize(hour)
	whole := int(math.Floor(h))
	minutes := int(math.Round((h - float64(whole)) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}
	whole %= 24

	meridiem := "AM"
	if whole >= 12 {
		meridiem = "PM"
	}
	display := whole % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, meridiem)
}

// FormatOffset renders a UTC offset such as "UTC+5:30", "UTC-8" or "UTC".
func FormatOffset(utcOffset float64) string {
	if utcOffset == 0 {
		return "UTC"
	}
	sign := "+"
	if utcOffset < 0 {
		sign = "-"
		utcOffset = -utcOffset
	}
	totalMinutes := int(math.Round(utcOffset * 60))
	hours, minutes := totalMinutes/60, totalMinutes%60
	if minutes == 0 {
		return fmt.Sprintf("UTC%s%d", sign, hours)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, hours, minutes)
}
