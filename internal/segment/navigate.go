package segment

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tartampluch/go-dateentry/internal/config"
)

// Key is a navigation or editing key understood by Reduce.
type Key int

const (
	KeyLeft Key = iota + 1
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
)

// CaretToSegment finds the segment whose [Start, End] range contains pos.
// Both ends are inclusive, so a caret on a boundary belongs to the earlier
// segment.
func (f Format) CaretToSegment(pos int) (int, bool) {
	for i, s := range f.Segments {
		if pos >= s.Start && pos <= s.End {
			return i, true
		}
	}
	return -1, false
}

func (s State) press(k Key) (State, Effect) {
	switch k {
	case KeyLeft:
		return s.move(-1)
	case KeyRight:
		return s.move(1)
	case KeyHome:
		return s.focusOn(0)
	case KeyEnd:
		return s.focusOn(len(s.Format.Segments) - 1)
	case KeyUp:
		return s.step(1)
	case KeyDown:
		return s.step(-1)
	case KeyBackspace:
		return s.backspace()
	case KeyDelete:
		return s.clearFocused()
	}
	return s, Effect{}
}

func (s State) move(delta int) (State, Effect) {
	return s.focusOn(s.focusIndex() + delta)
}

func (s State) focusOn(i int) (State, Effect) {
	if i < 0 || i >= len(s.Format.Segments) || i == s.Focus {
		return s, Effect{}
	}
	s.Focus = i
	return s, Effect{MoveCaret: true}
}

// backspace drops the last digit of the focused segment, or moves back to
// the previous segment when it is already empty.
func (s State) backspace() (State, Effect) {
	n := len(s.Format.Segments)
	if n == 0 {
		return s, Effect{}
	}

	f := s.focusIndex()
	vals := s.Values.clone(n)
	if vals[f] == "" {
		return s.move(-1)
	}
	vals[f] = vals[f][:len(vals[f])-1]
	return s.replace(vals)
}

func (s State) clearFocused() (State, Effect) {
	n := len(s.Format.Segments)
	if n == 0 {
		return s, Effect{}
	}

	vals := s.Values.clone(n)
	vals[s.focusIndex()] = ""
	return s.replace(vals)
}

// step adds delta to the focused component. When the segments form a real
// date, time.Date carries overflow into the neighbouring units and every
// segment is rewritten; otherwise the focused segment wraps on its own.
func (s State) step(delta int) (State, Effect) {
	if len(s.Format.Segments) == 0 {
		return s, Effect{}
	}
	code := s.Focused().Code
	if !code.Known() {
		return s, Effect{}
	}

	t, ok := s.calendarDate()
	if !ok {
		return s.stepSegment(code, delta)
	}

	y, m, d := t.Date()
	switch code {
	case Day:
		d += delta
	case Month:
		m += time.Month(delta)
	case Year:
		y += delta
	}

	next := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if next.Year() < config.MinYear || next.Year() > config.MaxYear {
		return s, Effect{}
	}
	return s.replace(s.Format.fill(s.Values, next))
}

func (s State) stepSegment(code Code, delta int) (State, Effect) {
	lo, hi := segmentRange(code)
	f := s.focusIndex()
	vals := s.Values.clone(len(s.Format.Segments))

	n, err := strconv.Atoi(vals[f])
	switch {
	case err != nil || n == 0:
		n = lo
		if code == Year {
			n = s.now().Year()
		}
	default:
		n += delta
	}

	if n < lo || n > hi {
		if code == Year {
			return s, Effect{}
		}
		n = lo
		if delta < 0 {
			n = hi
		}
	}

	vals[f] = fmt.Sprintf("%0*d", code.Width(), n)
	return s.replace(vals)
}

func segmentRange(c Code) (int, int) {
	switch c {
	case Day:
		return config.MinDay, config.MaxDay
	case Month:
		return config.MinMonth, config.MaxMonth
	}
	return config.MinYear, config.MaxYear
}
