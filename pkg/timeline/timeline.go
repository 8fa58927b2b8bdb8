// Package timeline turns pointer and touch input on a horizontal 24-hour timeline
// into hour-of-day updates.
//
// The Controller is a two-state machine (Idle, Dragging). Pressing anywhere on the
// timeline jumps to that hour and starts a drag; moves while dragging keep emitting;
// releasing anywhere ends the drag. Global move/release tracking is attached through
// a Tracker only for the lifetime of a drag.
package timeline

import (
	"fmt"
	"log/slog"
	"math"
)

// HoursPerDay is the span of the timeline.
const HoursPerDay = 24.0

// State is the interaction state of a Controller.
type State int

// Controller states.
const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Kind identifies an inbound input event.
type Kind int

// Input event kinds.
const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	TouchStart
	TouchMove
	TouchEnd
)

var kindNames = map[Kind]string{
	PointerDown: "pointerdown",
	PointerMove: "pointermove",
	PointerUp:   "pointerup",
	TouchStart:  "touchstart",
	TouchMove:   "touchmove",
	TouchEnd:    "touchend",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a DOM-style event name ("pointerdown", "touchmove", ...) to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", name)
}

func (k Kind) isPress() bool   { return k == PointerDown || k == TouchStart }
func (k Kind) isMove() bool    { return k == PointerMove || k == TouchMove }
func (k Kind) isRelease() bool { return k == PointerUp || k == TouchEnd }

// Event is a single pointer or touch event with its horizontal client coordinate.
type Event struct {
	Kind Kind
	X    float64
}

// Bounds is the horizontal extent of the timeline element in client coordinates.
type Bounds struct {
	Left  float64
	Width float64
}

// Degenerate reports whether the bounds cannot be used for hour mapping,
// for example before the element has been laid out.
func (b Bounds) Degenerate() bool {
	return !(b.Width > 0) || math.IsInf(b.Width, 0) || math.IsNaN(b.Left) || math.IsInf(b.Left, 0)
}

// HourAt maps a horizontal coordinate to an hour in [0, 24].
// Coordinates outside the element clamp to its edges. Degenerate bounds or a
// non-finite coordinate return fallback unchanged.
func HourAt(x float64, b Bounds, fallback float64) float64 {
	if b.Degenerate() || math.IsNaN(x) || math.IsInf(x, 0) {
		return fallback
	}
	percentage := (x - b.Left) / b.Width
	percentage = math.Max(0, math.Min(1, percentage))
	return percentage * HoursPerDay
}

// Tracker attaches and detaches window-level move/release listeners.
// Attach is called when a drag starts and Detach exactly once when it ends.
type Tracker interface {
	Attach()
	Detach()
}

type nopTracker struct{}

func (nopTracker) Attach() {}
func (nopTracker) Detach() {}

// Option configures a Controller.
type Option func(*Controller)

// WithTracker sets the tracker that owns global listeners during a drag.
func WithTracker(t Tracker) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracker = t
		}
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBounds sets the initial timeline bounds.
func WithBounds(b Bounds) Option {
	return func(c *Controller) {
		c.bounds = b
	}
}

// Controller drives the drag lifecycle. It is not safe for concurrent use;
// all events are expected to arrive from one event loop.
type Controller struct {
	tracker Tracker
	logger  *slog.Logger
	emit    func(hour float64)
	current func() float64
	bounds  Bounds
	state   State
}

// New returns an idle controller. emit receives every computed hour; current
// supplies the hour to fall back to when the bounds are degenerate.
func New(emit func(hour float64), current func() float64, opts ...Option) *Controller {
	c := &Controller{
		tracker: nopTracker{},
		logger:  slog.Default(),
		emit:    emit,
		current: current,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.emit == nil {
		c.emit = func(float64) {}
	}
	if c.current == nil {
		c.current = func() float64 { return 0 }
	}
	return c
}

// State returns the current interaction state.
func (c *Controller) State() State {
	return c.state
}

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool {
	return c.state == Dragging
}

// Bounds returns the bounds used for hour mapping.
func (c *Controller) Bounds() Bounds {
	return c.bounds
}

// SetBounds updates the timeline element's horizontal extent, e.g. after a resize.
func (c *Controller) SetBounds(b Bounds) {
	c.bounds = b
}

// Handle applies one input event.
// Presses start a drag (or re-emit during one), moves emit only while dragging,
// and releases end the drag regardless of where they occurred.
func (c *Controller) Handle(ev Event) {
	switch {
	case ev.Kind.isPress():
		if c.state == Idle {
			c.state = Dragging
			c.tracker.Attach()
			c.logger.Debug("timeline drag started", "kind", ev.Kind.String(), "x", ev.X)
		}
		c.emitAt(ev.X)
	case ev.Kind.isMove():
		if c.state != Dragging {
			return
		}
		c.emitAt(ev.X)
	case ev.Kind.isRelease():
		c.end(ev.Kind.String())
	default:
		c.logger.Debug("ignoring unknown timeline event", "kind", ev.Kind.String())
	}
}

// Close ends any active drag without emitting, detaching global listeners.
// It is used on teardown paths where no release event will arrive.
func (c *Controller) Close() {
	c.end("close")
}

func (c *Controller) end(reason string) {
	if c.state != Dragging {
		return
	}
	c.state = Idle
	c.tracker.Detach()
	c.logger.Debug("timeline drag ended", "reason", reason)
}

func (c *Controller) emitAt(x float64) {
	if c.bounds.Degenerate() {
		c.logger.Debug("timeline has no width, keeping current hour", "width", c.bounds.Width)
	}
	c.emit(HourAt(x, c.bounds, c.current()))
}
