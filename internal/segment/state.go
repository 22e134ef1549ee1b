package segment

import (
	"strconv"
	"time"
)

// Result is the date composed from the segments. Valid is false for "no date":
// incomplete segments, a day that does not exist in the month, or a date
// outside [Min, Max]. Text is filled by surfaces that report strings.
type Result struct {
	Date  time.Time
	Valid bool
	Text  string
}

// State is everything a date field owns: the format, the raw segment values,
// the focused segment and the inclusive bounds (zero means unbounded).
type State struct {
	Format Format
	Values Values
	Focus  int
	Min    time.Time
	Max    time.Time
	Clock  Clock
}

// New returns an empty state for the given layout and separator.
func New(layout, sep string) State {
	f := ParseFormat(layout, sep)
	return State{
		Format: f,
		Values: make(Values, len(f.Segments)),
		Clock:  RealClock{},
	}
}

// WithFormat rebuilds the format, carrying over the values of known codes
// present in both layouts. Focus returns to the first segment.
func (s State) WithFormat(layout, sep string) State {
	f := ParseFormat(layout, sep)
	vals := make(Values, len(f.Segments))
	for i, seg := range f.Segments {
		if !seg.Code.Known() {
			continue
		}
		if j := s.Format.Index(seg.Code); j >= 0 && j < len(s.Values) {
			vals[i] = s.Values[j]
		}
	}

	s.Format = f
	s.Values = vals
	s.Focus = 0
	return s
}

// WithBounds sets the inclusive bounds. Each bound may be a time.Time or an
// ISO date string; anything unparseable removes that bound.
func (s State) WithBounds(min, max any) State {
	s.Min, _ = ParseValue(min)
	s.Max, _ = ParseValue(max)
	return s
}

// Display is the composed text shown in the field.
func (s State) Display() string {
	return s.Format.Compose(s.Values)
}

// Focused returns the focused segment with its offsets.
func (s State) Focused() Segment {
	if len(s.Format.Segments) == 0 {
		return Segment{}
	}
	return s.Format.Segments[s.focusIndex()]
}

func (s State) focusIndex() int {
	switch {
	case s.Focus < 0:
		return 0
	case s.Focus >= len(s.Format.Segments):
		return len(s.Format.Segments) - 1
	}
	return s.Focus
}

func (s State) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

// Result composes the date. It is recomputed on every call.
func (s State) Result() Result {
	t, ok := s.calendarDate()
	if !ok {
		return Result{}
	}
	if !s.Min.IsZero() && t.Before(s.Min) {
		return Result{}
	}
	if !s.Max.IsZero() && t.After(s.Max) {
		return Result{}
	}
	return Result{Date: t, Valid: true}
}

// Invalid is the accessibility flag: something is typed but it is not a
// complete, in-range date.
func (s State) Invalid() bool {
	return !s.Values.IsEmpty() && !s.Result().Valid
}

// calendarDate parses the DD, MM and YYYY segments as displayed, ignoring
// bounds: each typed value is padded to its width first, so "4" reads as the
// "04" the field shows. Empty or zero segments and dates that time.Date would
// normalize (31.02) are rejected.
func (s State) calendarDate() (time.Time, bool) {
	var parts [3]int
	for i, c := range []Code{Day, Month, Year} {
		idx := s.Format.Index(c)
		if idx < 0 || idx >= len(s.Values) {
			return time.Time{}, false
		}
		raw := s.Values[idx]
		if raw == "" {
			return time.Time{}, false
		}
		n, err := strconv.Atoi(pad(raw, c.Width()))
		if err != nil || n == 0 {
			return time.Time{}, false
		}
		parts[i] = n
	}

	d, m, y := parts[0], parts[1], parts[2]
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m || t.Year() != y {
		return time.Time{}, false
	}
	return t, true
}
