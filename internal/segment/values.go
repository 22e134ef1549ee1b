package segment

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tartampluch/go-dateentry/internal/config"
)

// Values holds the raw digits typed so far, one entry per segment of a Format.
// An entry is empty or all digits and never wider than its segment.
type Values []string

func (v Values) clone(n int) Values {
	out := make(Values, n)
	copy(out, v)
	return out
}

// IsEmpty reports whether no segment holds any digit.
func (v Values) IsEmpty() bool {
	for _, s := range v {
		if s != "" {
			return false
		}
	}
	return true
}

func (v Values) equal(o Values) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// Compose renders values as the display string. Empty segments show their
// code as a placeholder, partial ones are left-padded with zeros, so the
// result is always Len() runes long and the segment offsets stay valid.
func (f Format) Compose(v Values) string {
	parts := make([]string, len(f.Segments))
	for i, s := range f.Segments {
		raw := ""
		if i < len(v) {
			raw = v[i]
		}
		if raw == "" {
			parts[i] = string(s.Code)
			continue
		}
		parts[i] = pad(raw, s.Code.Width())
	}
	return strings.Join(parts, f.Separator)
}

func pad(raw string, width int) string {
	if n := utf8.RuneCountInString(raw); n < width {
		return strings.Repeat(config.PadDigit, width-n) + raw
	}
	return raw
}

// FromDate decomposes t into fully padded values for every known segment.
func (f Format) FromDate(t time.Time) Values {
	return f.fill(nil, t)
}

// fill writes the components of t over a copy of base. Opaque segments keep
// whatever base holds. Years outside 1..9999 leave the year segment empty.
func (f Format) fill(base Values, t time.Time) Values {
	out := base.clone(len(f.Segments))
	y, m, d := t.Date()

	for i, s := range f.Segments {
		switch s.Code {
		case Day:
			out[i] = fmt.Sprintf("%02d", d)
		case Month:
			out[i] = fmt.Sprintf("%02d", int(m))
		case Year:
			if y < config.MinYear || y > config.MaxYear {
				out[i] = ""
				continue
			}
			out[i] = fmt.Sprintf("%04d", y)
		}
	}
	return out
}

var valueLayouts = []string{
	config.DateFormatFullDash,
	config.DateFormatFullBasic,
	config.DateFormatRFC3339,
	config.DateFormatFullT,
}

// ParseValue interprets an externally supplied value: a time.Time, a
// *time.Time or an ISO date string. nil, zero and unparseable values report
// false. The result is the calendar day at UTC midnight.
func ParseValue(v any) (time.Time, bool) {
	switch tv := v.(type) {
	case time.Time:
		if tv.IsZero() {
			return time.Time{}, false
		}
		return dateOnly(tv), true
	case *time.Time:
		if tv == nil {
			return time.Time{}, false
		}
		return ParseValue(*tv)
	case string:
		s := strings.TrimSpace(tv)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range valueLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return dateOnly(t), true
			}
		}
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
