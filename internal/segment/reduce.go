package segment

import (
	"strings"
	"unicode/utf8"
)

// Event is an input to Reduce.
type Event interface {
	event()
}

// Input carries raw text such as a paste: digits and separators only,
// mapped onto segments from the first one.
type Input struct{ Raw string }

// Rune is a single typed character.
type Rune struct{ R rune }

// KeyPress is a navigation or editing key.
type KeyPress struct{ Key Key }

// Caret reports that the surface moved the caret, e.g. after a click.
type Caret struct{ Pos int }

// SetValue replaces the whole content from outside (a controlled value).
// nil, zero and unparseable values clear every segment.
type SetValue struct{ Value any }

func (Input) event()    {}
func (Rune) event()     {}
func (KeyPress) event() {}
func (Caret) event()    {}
func (SetValue) event() {}

// Effect tells the surface what to do after a transition.
type Effect struct {
	// Rejected means the input was refused and the state is unchanged.
	Rejected bool
	// Emit means segment content changed; notify the host with Result.
	Emit bool
	// MoveCaret means focus changed; reposition the caret once the new
	// display has been rendered.
	MoveCaret bool
}

// Reduce applies ev to s.
func Reduce(s State, ev Event) (State, Effect) {
	switch e := ev.(type) {
	case Input:
		return s.input(e.Raw)
	case Rune:
		return s.typeRune(e.R)
	case KeyPress:
		return s.press(e.Key)
	case Caret:
		return s.caret(e.Pos)
	case SetValue:
		return s.setValue(e.Value)
	}
	return s, Effect{}
}

func (s State) input(raw string) (State, Effect) {
	parts, ok := s.split(raw)
	if !ok {
		return s, Effect{Rejected: true}
	}
	return s.apply(parts)
}

// split breaks raw text into per-segment parts. Without a separator the
// digits are cut by segment widths.
func (s State) split(raw string) ([]string, bool) {
	sep := s.Format.Separator
	for _, r := range raw {
		if !isDigit(r) && !strings.ContainsRune(sep, r) {
			return nil, false
		}
	}

	if raw == "" {
		return nil, true
	}
	if sep != "" {
		return strings.Split(raw, sep), true
	}

	var parts []string
	rest := raw
	for _, seg := range s.Format.Segments {
		if rest == "" {
			break
		}
		w := min(seg.Code.Width(), len(rest))
		parts = append(parts, rest[:w])
		rest = rest[w:]
	}
	if rest != "" {
		return nil, false
	}
	return parts, true
}

// apply overwrites the leading segments with parts, all or nothing. Segments
// beyond len(parts) keep their value. When the focused segment changed and is
// now complete, focus moves on past the complete segments parts also wrote.
func (s State) apply(parts []string) (State, Effect) {
	n := len(s.Format.Segments)
	if len(parts) > n {
		return s, Effect{Rejected: true}
	}
	for i, p := range parts {
		if !ValidSegment(s.Format.Segments[i].Code, p) {
			return s, Effect{Rejected: true}
		}
	}

	prev := s.Values.clone(n)
	vals := prev.clone(n)
	copy(vals, parts)

	next := s
	next.Values = vals
	eff := Effect{Emit: !vals.equal(prev)}

	f := s.focusIndex()
	if f < len(parts) && f < n-1 && parts[f] != prev[f] && Complete(s.Format.Segments[f].Code, parts[f]) {
		to := f + 1
		for to < len(parts) && to < n-1 && Complete(s.Format.Segments[to].Code, parts[to]) {
			to++
		}
		next.Focus = to
		eff.MoveCaret = true
	}
	return next, eff
}

func (s State) typeRune(r rune) (State, Effect) {
	switch {
	case isDigit(r):
		return s.typeDigit(r)
	case s.isSeparator(r):
		return s.move(1)
	}
	return s, Effect{Rejected: true}
}

// typeDigit appends to the focused segment, starting over when it is full,
// and validates the result like any raw input.
func (s State) typeDigit(r rune) (State, Effect) {
	n := len(s.Format.Segments)
	if n == 0 {
		return s, Effect{Rejected: true}
	}

	f := s.focusIndex()
	parts := s.Values.clone(n)
	cur := parts[f]
	if utf8.RuneCountInString(cur) >= s.Format.Segments[f].Code.Width() {
		cur = ""
	}
	parts[f] = cur + string(r)

	s.Focus = f
	return s.apply(parts[:f+1])
}

func (s State) isSeparator(r rune) bool {
	return s.Format.Separator != "" && strings.ContainsRune(s.Format.Separator, r)
}

func (s State) caret(pos int) (State, Effect) {
	if i, ok := s.Format.CaretToSegment(pos); ok {
		s.Focus = i
	}
	return s, Effect{}
}

func (s State) setValue(v any) (State, Effect) {
	n := len(s.Format.Segments)
	vals := make(Values, n)
	if t, ok := ParseValue(v); ok {
		vals = s.Format.FromDate(t)
	}
	return s.replace(vals)
}

// replace swaps in new values without validation.
func (s State) replace(vals Values) (State, Effect) {
	eff := Effect{Emit: !vals.equal(s.Values.clone(len(vals)))}
	s.Values = vals
	return s, eff
}
