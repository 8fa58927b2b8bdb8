// Package tui is the terminal front end: a bubbletea program that drives a
// session from the keyboard and from mouse drags on a timeline row.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/codeGROOVE-dev/tzline/pkg/daybar"
	"github.com/codeGROOVE-dev/tzline/pkg/registry"
	"github.com/codeGROOVE-dev/tzline/pkg/selection"
	"github.com/codeGROOVE-dev/tzline/pkg/session"
	"github.com/codeGROOVE-dev/tzline/pkg/timeline"
	"github.com/codeGROOVE-dev/tzline/pkg/tzconvert"
)

const (
	// Screen layout. The timeline strip sits on timelineY, indented by timelineLeft.
	timelineY    = 2
	timelineLeft = 2

	minTimelineWidth = 24
	nudgeStep        = 0.25
	maxMatches       = 6
)

// mouseTracker switches the terminal to all-motion mouse reporting while a drag
// is active and back to cell motion afterwards. Commands are queued for the next
// Update return because the session calls Attach and Detach synchronously.
type mouseTracker struct {
	pending []tea.Cmd
}

func (t *mouseTracker) Attach() {
	t.pending = append(t.pending, tea.EnableMouseAllMotion)
}

func (t *mouseTracker) Detach() {
	t.pending = append(t.pending, tea.EnableMouseCellMotion)
}

func (t *mouseTracker) drain() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := t.pending
	t.pending = nil
	return tea.Batch(cmds...)
}

// Model is the bubbletea model for tzline.
type Model struct {
	session *session.Session
	tracker *mouseTracker
	logger  *slog.Logger
	snap    session.Snapshot

	help    help.Model
	input   textinput.Model
	matches []registry.Descriptor

	status   string
	cursor   int
	match    int
	width    int
	height   int
	searches bool
	quitting bool
}

// New creates the model. opts configure the underlying session; the model
// installs its own tracker and change callback.
func New(reg *registry.Registry, logger *slog.Logger, opts ...session.Option) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	input := textinput.New()
	input.Placeholder = "city, timezone or abbreviation"
	input.Prompt = "add › "
	input.CharLimit = 48

	m := &Model{
		tracker: &mouseTracker{},
		logger:  logger,
		help:    help.New(),
		input:   input,
		width:   80,
	}
	opts = append(opts,
		session.WithLogger(logger),
		session.WithTracker(m.tracker),
		session.WithOnChange(func(s session.Snapshot) { m.snap = s }))
	m.session = session.New(reg, opts...)
	m.snap = m.session.Snapshot()
	m.layout()
	return m
}

// Snapshot returns the last snapshot the model rendered from.
func (m *Model) Snapshot() session.Snapshot {
	return m.snap
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("tzline")
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		if m.searches {
			cmd = m.handleSearchKey(msg)
		} else {
			cmd = m.handleKey(msg)
		}
	}

	return m, tea.Batch(cmd, m.tracker.drain())
}

func (m *Model) timelineWidth() int {
	return max(m.width-2*timelineLeft, minTimelineWidth)
}

func (m *Model) layout() {
	m.session.SetTimelineBounds(timeline.Bounds{
		Left:  timelineLeft,
		Width: float64(m.timelineWidth()),
	})
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	// Cell centers keep the first and last columns inside the day.
	x := float64(msg.X) + 0.5

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Y == timelineY {
				m.session.Handle(timeline.Event{Kind: timeline.PointerDown, X: x})
			}
		case tea.MouseButtonWheelUp:
			m.session.Nudge(nudgeStep)
		case tea.MouseButtonWheelDown:
			m.session.Nudge(-nudgeStep)
		}
	case tea.MouseActionMotion:
		m.session.Handle(timeline.Event{Kind: timeline.PointerMove, X: x})
	case tea.MouseActionRelease:
		m.session.Handle(timeline.Event{Kind: timeline.PointerUp, X: x})
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	rows := len(m.snap.Rows)

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.session.Close()
		return tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, keys.Down):
		m.cursor = max(min(m.cursor+1, rows-1), 0)
	case key.Matches(msg, keys.MoveUp):
		if m.apply(m.session.Reorder(m.cursor, m.cursor-1)) {
			m.cursor--
		}
	case key.Matches(msg, keys.MoveDown):
		if m.apply(m.session.Reorder(m.cursor, m.cursor+1)) {
			m.cursor++
		}
	case key.Matches(msg, keys.Remove):
		if rows == 0 {
			return nil
		}
		if m.apply(m.session.Remove(m.snap.Rows[m.cursor].ID)) {
			m.cursor = max(min(m.cursor, len(m.snap.Rows)-1), 0)
		}
	case key.Matches(msg, keys.Earlier):
		m.session.Nudge(-nudgeStep)
	case key.Matches(msg, keys.Later):
		m.session.Nudge(nudgeStep)
	case key.Matches(msg, keys.HourBack):
		m.session.Nudge(-1)
	case key.Matches(msg, keys.HourFwd):
		m.session.Nudge(1)
	case key.Matches(msg, keys.Now):
		offset := 0.0
		if rows > 0 {
			offset = m.snap.Rows[0].Offset
		}
		m.session.Nudge(tzconvert.CurrentHourAsFraction(offset) - m.session.Hour())
	case key.Matches(msg, keys.Search):
		m.searches = true
		m.input.Reset()
		m.refreshMatches()
		return m.input.Focus()
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.closeSearch()
		return nil
	case key.Matches(msg, keys.Accept):
		if len(m.matches) > 0 && m.apply(m.session.Add(m.matches[m.match].ID)) {
			m.cursor = len(m.snap.Rows) - 1
		}
		m.closeSearch()
		return nil
	case msg.Type == tea.KeyUp:
		m.match = max(m.match-1, 0)
		return nil
	case msg.Type == tea.KeyDown:
		m.match = max(min(m.match+1, len(m.matches)-1), 0)
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()
	return cmd
}

func (m *Model) refreshMatches() {
	m.matches = m.session.Registry().Search(m.input.Value(), maxMatches)
	m.match = 0
}

func (m *Model) closeSearch() {
	m.searches = false
	m.matches = nil
	m.input.Blur()
}

// apply reports whether a session change succeeded. Rejections are shown in the
// status line and otherwise ignored.
func (m *Model) apply(err error) bool {
	if err == nil {
		return true
	}
	if session.IsRejection(err) {
		m.logger.Debug("ignoring rejected change", "error", err)
		m.status = rejectionText(err)
		return false
	}
	m.logger.Error("session change failed", "error", err)
	m.status = err.Error()
	return false
}

func rejectionText(err error) string {
	switch {
	case errors.Is(err, selection.ErrDuplicate):
		return "Already in the list"
	case errors.Is(err, selection.ErrInvalidIndex):
		return "Can't move further"
	case errors.Is(err, selection.ErrNotFound), errors.Is(err, registry.ErrNotFound):
		return "No such timezone"
	default:
		return err.Error()
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	width := m.timelineWidth()

	// Line 0: title and reference clock. Line 1: blank. Line 2: timeline strip.
	header := titleStyle.Render("tzline")
	if m.snap.Empty {
		header += "  " + clockStyle.Render(m.snap.Clock)
	} else {
		header += "  " + clockStyle.Render(m.snap.Clock) + mutedStyle.Render(" in "+m.snap.Rows[0].City)
	}
	b.WriteString(header + "\n\n")

	referenceOffset := 0.0
	if !m.snap.Empty {
		referenceOffset = m.snap.Rows[0].Offset
	}
	b.WriteString(strings.Repeat(" ", timelineLeft))
	b.WriteString(m.strip(referenceOffset, referenceOffset, width, m.snap.Dragging))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", timelineLeft) + mutedStyle.Render(hourLabels(width)) + "\n\n")

	if m.snap.Empty {
		b.WriteString(mutedStyle.Render("  No timezones selected. Press / to add one.") + "\n")
	}
	for i, row := range m.snap.Rows {
		b.WriteString(m.renderRow(i, row, referenceOffset) + "\n")
	}

	if m.searches {
		b.WriteString("\n  " + m.input.View() + "\n")
		for i, d := range m.matches {
			line := fmt.Sprintf("%s, %s (%s)", d.City, d.Name, tzconvert.FormatOffset(d.Offset))
			if i == m.match {
				b.WriteString(selectedMatchStyle.Render("› "+line) + "\n")
			} else {
				b.WriteString(matchStyle.Render(" "+line) + "\n")
			}
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("  " + errorStyle.Render(m.status) + "\n")
	}
	b.WriteString("  " + m.help.View(keys))
	return b.String()
}

func (m *Model) renderRow(i int, row selection.Row, referenceOffset float64) string {
	cursor := "  "
	if i == m.cursor && !m.searches {
		cursor = cursorStyle.Render("› ")
	}
	city := fmt.Sprintf("%-18s", truncate(row.City, 18))
	if row.Reference {
		city = referenceStyle.Render(city)
	}
	shift := ""
	switch {
	case row.DayShift > 0:
		shift = fmt.Sprintf("+%dd", row.DayShift)
	case row.DayShift < 0:
		shift = fmt.Sprintf("%dd", row.DayShift)
	}
	return fmt.Sprintf("%s%s %-9s %-9s %-4s %s %s",
		cursor,
		city,
		tzconvert.FormatOffset(row.Offset),
		row.Clock,
		shift,
		periodBadge(row.Period).Render(row.Period.Label()),
		m.strip(referenceOffset, row.Offset, 24, false))
}

// strip draws a reference-aligned day strip for a city at targetOffset.
func (m *Model) strip(referenceOffset, targetOffset float64, width int, dragging bool) string {
	marker := daybar.MarkerColumn(m.snap.ReferenceHour, width)
	ms := markerStyle
	if dragging {
		ms = draggingMarkerStyle
	}

	var b strings.Builder
	for c, p := range daybar.Columns(width, referenceOffset, targetOffset) {
		if c == marker {
			b.WriteString(ms.Render("│"))
			continue
		}
		b.WriteString(periodStyle(p).Render("█"))
	}
	return b.String()
}

// hourLabels places 12AM/6AM/12PM/6PM under the matching strip columns.
func hourLabels(width int) string {
	line := []rune(strings.Repeat(" ", width))
	for _, l := range []struct {
		text string
		hour float64
	}{{"12AM", 0}, {"6AM", 6}, {"12PM", 12}, {"6PM", 18}} {
		col := daybar.MarkerColumn(l.hour, width)
		for i, r := range l.text {
			if col+i < width {
				line[col+i] = r
			}
		}
	}
	return string(line)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
