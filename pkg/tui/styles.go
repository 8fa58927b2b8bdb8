package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/codeGROOVE-dev/tzline/pkg/tzconvert"
)

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorError   = lipgloss.Color("#EF4444")
	colorText    = lipgloss.Color("#F8FAFC")
	colorMarker  = lipgloss.Color("#FFFFFF")

	periodColors = map[tzconvert.Period]lipgloss.Color{
		tzconvert.Night:     lipgloss.Color("#1E3A8A"),
		tzconvert.Morning:   lipgloss.Color("#F59E0B"),
		tzconvert.Afternoon: lipgloss.Color("#10B981"),
		tzconvert.Evening:   lipgloss.Color("#A855F7"),
	}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	clockStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	referenceStyle = lipgloss.NewStyle().
			Bold(true)

	markerStyle = lipgloss.NewStyle().
			Foreground(colorMarker).
			Bold(true)

	draggingMarkerStyle = markerStyle.
				Background(colorPrimary)

	matchStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedMatchStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Foreground(colorPrimary).
				Bold(true)
)

func periodStyle(p tzconvert.Period) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(periodColors[p])
}

func periodBadge(p tzconvert.Period) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(periodColors[p]).
		Foreground(colorText).
		Width(11).
		Align(lipgloss.Center)
}
