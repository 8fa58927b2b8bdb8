// Package daybar renders reference-aligned 24-hour strips colored by day period.
package daybar

import (
	"fmt"
	"math"
	"strings"

	"github.com/codeGROOVE-dev/tzline/pkg/selection"
	"github.com/codeGROOVE-dev/tzline/pkg/session"
	"github.com/codeGROOVE-dev/tzline/pkg/tzconvert"
	"github.com/fatih/color"
)

// Glyphs per day period, so strips stay readable without color.
var glyphs = map[tzconvert.Period]string{
	tzconvert.Night:     "░",
	tzconvert.Morning:   "▒",
	tzconvert.Afternoon: "█",
	tzconvert.Evening:   "▓",
}

// periodColor returns the color for a day period.
func periodColor(p tzconvert.Period) *color.Color {
	switch p {
	case tzconvert.Night:
		return color.New(color.FgBlue)
	case tzconvert.Morning:
		return color.New(color.FgYellow)
	case tzconvert.Afternoon:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgMagenta)
	}
}

// Columns returns the target city's day period at each of width columns of a
// timeline laid out in reference-timezone hours. Each column is sampled at its center.
func Columns(width int, referenceOffset, targetOffset float64) []tzconvert.Period {
	if width <= 0 {
		return nil
	}
	cols := make([]tzconvert.Period, width)
	step := 24 / float64(width)
	for c := range cols {
		referenceHour := (float64(c) + 0.5) * step
		cols[c] = tzconvert.Classify(tzconvert.HourInTarget(referenceHour, referenceOffset, targetOffset))
	}
	return cols
}

// MarkerColumn returns the column holding hour on a timeline of width columns.
func MarkerColumn(hour float64, width int) int {
	if width <= 0 {
		return 0
	}
	col := int(math.Floor(tzconvert.Normalize(hour) / 24 * float64(width)))
	return min(max(col, 0), width-1)
}

// Strip renders one row's strip with the selected hour marked.
func Strip(row selection.Row, referenceOffset, referenceHour float64, width int) string {
	marker := MarkerColumn(referenceHour, width)
	markerColor := color.New(color.FgHiWhite, color.Bold)

	var b strings.Builder
	for c, p := range Columns(width, referenceOffset, row.Offset) {
		if c == marker {
			b.WriteString(markerColor.Sprint("│"))
			continue
		}
		b.WriteString(periodColor(p).Sprint(glyphs[p]))
	}
	return b.String()
}

// Render formats a snapshot as a comparison table, one line per selected city.
func Render(snap session.Snapshot, width int) string {
	var output strings.Builder

	if snap.Empty {
		output.WriteString("No timezones selected. Add one to start comparing.\n")
		return output.String()
	}

	referenceOffset := snap.Rows[0].Offset

	nameWidth := 0
	for _, row := range snap.Rows {
		nameWidth = max(nameWidth, len([]rune(row.City)))
	}

	output.WriteString(fmt.Sprintf("🕒 %s in %s\n", snap.Clock, snap.Rows[0].City))
	output.WriteString(strings.Repeat("─", nameWidth+width+32) + "\n")

	for _, row := range snap.Rows {
		name := row.City + strings.Repeat(" ", nameWidth-len([]rune(row.City)))
		if row.Reference {
			name = color.New(color.Bold).Sprint(name)
		}
		line := fmt.Sprintf("%s  %-9s %-9s %-4s %s %s",
			name,
			tzconvert.FormatOffset(row.Offset),
			row.Clock,
			dayShiftLabel(row.DayShift),
			periodColor(row.Period).Sprint(fmt.Sprintf("%-9s", row.Period.Label())),
			Strip(row, referenceOffset, snap.ReferenceHour, width))
		output.WriteString(line + "\n")
	}

	output.WriteString(Legend() + "\n")
	return output.String()
}

// Legend explains the strip glyphs.
func Legend() string {
	parts := make([]string, 0, len(glyphs))
	for _, p := range []tzconvert.Period{tzconvert.Night, tzconvert.Morning, tzconvert.Afternoon, tzconvert.Evening} {
		parts = append(parts, periodColor(p).Sprint(glyphs[p])+" "+p.Label())
	}
	return strings.Join(parts, "  ")
}

func dayShiftLabel(shift int) string {
	switch {
	case shift > 0:
		return fmt.Sprintf("+%dd", shift)
	case shift < 0:
		return fmt.Sprintf("%dd", shift)
	default:
		return ""
	}
}
