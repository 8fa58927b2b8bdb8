// Package session ties the registry, the selection list, the reference hour and the
// timeline controller into one event-driven unit.
//
// A Session is driven by discrete UI events (add, remove, reorder, pointer input) and
// publishes an immutable Snapshot after every change. Front ends render snapshots and
// never mutate session state directly.
package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/tzline/pkg/registry"
	"github.com/codeGROOVE-dev/tzline/pkg/selection"
	"github.com/codeGROOVE-dev/tzline/pkg/timeline"
	"github.com/codeGROOVE-dev/tzline/pkg/tzconvert"
)

// DefaultFallbackHour seeds the reference hour when there is no reference timezone.
const DefaultFallbackHour = 12.0

// Snapshot is the display-ready state published to presentation layers.
type Snapshot struct {
	Rows          []selection.Row  `json:"rows"`
	ReferenceID   string           `json:"reference_id,omitempty"`
	Clock         string           `json:"clock"`
	ReferenceHour float64          `json:"reference_hour"`
	ReferenceUTC  float64          `json:"reference_utc"`
	Period        tzconvert.Period `json:"period"`
	Dragging      bool             `json:"dragging"`
	Empty         bool             `json:"empty"`
}

// Option configures a Session.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	tracker      timeline.Tracker
	onChange     func(Snapshot)
	clock        func() time.Time
	timezones    []string
	fallbackHour float64
	hour         *float64
}

// WithTimezones seeds the selection with registry identifiers, in order.
// Unknown identifiers are logged and skipped.
func WithTimezones(ids ...string) Option {
	return func(o *options) {
		o.timezones = append(o.timezones, ids...)
	}
}

// WithFallbackHour sets the reference hour used when the selection starts empty.
func WithFallbackHour(hour float64) Option {
	return func(o *options) {
		o.fallbackHour = hour
	}
}

// WithHour fixes the initial reference hour instead of reading the clock.
func WithHour(hour float64) Option {
	return func(o *options) {
		o.hour = &hour
	}
}

// WithClock sets the wall clock used to seed the reference hour.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithTracker sets the tracker that owns global listeners during a drag.
func WithTracker(t timeline.Tracker) Option {
	return func(o *options) {
		o.tracker = t
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithOnChange registers the renderer callback invoked with every new Snapshot.
func WithOnChange(fn func(Snapshot)) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

// Session is the top-level state for one user. It is not safe for concurrent use.
type Session struct {
	reg      *registry.Registry
	list     *selection.List
	timeline *timeline.Controller
	logger   *slog.Logger
	onChange func(Snapshot)
	hour     float64
}

// New creates a session backed by reg.
func New(reg *registry.Registry, opts ...Option) *Session {
	o := &options{
		logger:       slog.Default(),
		clock:        time.Now,
		fallbackHour: DefaultFallbackHour,
	}
	for _, opt := range opts {
		opt(o)
	}

	s := &Session{
		reg:      reg,
		list:     selection.New(),
		logger:   o.logger,
		onChange: o.onChange,
	}

	for _, id := range o.timezones {
		d, err := reg.Lookup(id)
		if err != nil {
			s.logger.Warn("skipping unknown timezone", "id", id, "error", err)
			continue
		}
		if err := s.list.Add(d); err != nil {
			s.logger.Debug("skipping duplicate timezone", "id", id)
		}
	}

	switch ref, ok := s.list.Reference(); {
	case o.hour != nil:
		s.hour = tzconvert.Normalize(*o.hour)
	case ok:
		s.hour = tzconvert.CurrentHour(o.clock(), ref.Offset)
	default:
		s.hour = tzconvert.Normalize(o.fallbackHour)
	}

	s.timeline = timeline.New(s.setHour, s.Hour,
		timeline.WithTracker(o.tracker),
		timeline.WithLogger(o.logger))

	s.logger.Debug("session created", "timezones", s.list.IDs(), "reference_hour", s.hour)
	return s
}

// Registry returns the registry the session draws from.
func (s *Session) Registry() *registry.Registry {
	return s.reg
}

// Hour returns the current reference hour in [0, 24).
func (s *Session) Hour() float64 {
	return s.hour
}

// IDs returns the selected identifiers in order.
func (s *Session) IDs() []string {
	return s.list.IDs()
}

// Dragging reports whether a timeline drag is in progress.
func (s *Session) Dragging() bool {
	return s.timeline.Dragging()
}

// Add selects the timezone with the given identifier.
// It returns registry.ErrNotFound or selection.ErrDuplicate without changing state.
func (s *Session) Add(id string) error {
	d, err := s.reg.Lookup(id)
	if err != nil {
		return err
	}
	if err := s.list.Add(d); err != nil {
		return err
	}
	s.logger.Debug("timezone added", "id", id, "count", s.list.Len())
	s.publish()
	return nil
}

// Remove deselects the timezone with the given identifier.
func (s *Session) Remove(id string) error {
	if err := s.list.Remove(id); err != nil {
		return err
	}
	s.logger.Debug("timezone removed", "id", id, "count", s.list.Len())
	s.publish()
	return nil
}

// Reorder moves the selection entry at from to position to.
// Moving a different entry to position 0 changes the reference timezone; the
// reference hour keeps its value and is read in the new reference's local time.
func (s *Session) Reorder(from, to int) error {
	if err := s.list.Reorder(from, to); err != nil {
		return err
	}
	s.logger.Debug("timezones reordered", "from", from, "to", to, "order", s.list.IDs())
	s.publish()
	return nil
}

// SetTimelineBounds records the timeline element's current horizontal extent.
func (s *Session) SetTimelineBounds(b timeline.Bounds) {
	s.timeline.SetBounds(b)
}

// Handle feeds one pointer or touch event to the timeline controller.
func (s *Session) Handle(ev timeline.Event) {
	wasDragging := s.timeline.Dragging()
	s.timeline.Handle(ev)
	// Releases change no hour but do change the published drag flag.
	if wasDragging && !s.timeline.Dragging() {
		s.publish()
	}
}

// Nudge shifts the reference hour by delta hours, wrapping around midnight.
// It is the keyboard counterpart of dragging and uses the same emit path.
func (s *Session) Nudge(delta float64) {
	s.setHour(s.hour + delta)
}

// Close ends any active drag, releasing global listeners.
func (s *Session) Close() {
	if s.timeline.Dragging() {
		s.timeline.Close()
		s.publish()
	}
}

// Snapshot returns the current display state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Rows:          s.list.Derive(s.hour),
		ReferenceHour: s.hour,
		ReferenceUTC:  s.hour,
		Clock:         tzconvert.FormatClock(s.hour),
		Period:        tzconvert.Classify(s.hour),
		Dragging:      s.timeline.Dragging(),
		Empty:         s.list.Empty(),
	}
	if ref, ok := s.list.Reference(); ok {
		snap.ReferenceID = ref.ID
		snap.ReferenceUTC = tzconvert.LocalToUTC(s.hour, ref.Offset)
	}
	return snap
}

// IsRejection reports whether err is one of the no-op rejections a front end may
// ignore: unknown timezone, duplicate add, absent remove or invalid reorder index.
func IsRejection(err error) bool {
	return errors.Is(err, registry.ErrNotFound) ||
		errors.Is(err, selection.ErrDuplicate) ||
		errors.Is(err, selection.ErrNotFound) ||
		errors.Is(err, selection.ErrInvalidIndex)
}

// setHour is the single mutator of the reference hour.
func (s *Session) setHour(hour float64) {
	s.hour = tzconvert.Normalize(hour)
	s.publish()
}

func (s *Session) publish() {
	if s.onChange == nil {
		return
	}
	s.onChange(s.Snapshot())
}
