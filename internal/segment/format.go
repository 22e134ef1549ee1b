// Package segment implements the state machine behind a segmented date field:
// mapping a layout such as "DD.MM.YYYY" to fixed-width segments, validating
// typed digits per segment, composing the display string and a calendar date,
// and keeping the focused segment in sync with the text caret.
//
// Every transition is a pure function of (State, Event). Rendering surfaces
// feed events into Reduce and act on the returned Effect.
package segment

import (
	"strings"
	"unicode/utf8"

	"github.com/tartampluch/go-dateentry/internal/config"
)

// Code identifies one segment of a date layout.
type Code string

const (
	Day   Code = "DD"
	Month Code = "MM"
	Year  Code = "YYYY"
)

// Width returns the fixed display width of the segment in runes.
// Unknown codes are opaque and as wide as the code itself.
func (c Code) Width() int {
	switch c {
	case Day:
		return config.SegmentWidthDay
	case Month:
		return config.SegmentWidthMonth
	case Year:
		return config.SegmentWidthYear
	}
	return utf8.RuneCountInString(string(c))
}

// Known reports whether c is one of DD, MM or YYYY.
func (c Code) Known() bool {
	return c == Day || c == Month || c == Year
}

// Segment is a code with its [Start, End) rune offsets in the composed display.
type Segment struct {
	Code  Code
	Start int
	End   int
}

// Format is the parsed form of a (layout, separator) pair. It is immutable:
// changing either input means building a new Format.
type Format struct {
	Layout    string
	Separator string
	Segments  []Segment
}

// ParseFormat splits layout on sep into segment codes and computes offsets.
// With an empty separator the layout is tokenized into YYYY/MM/DD runs.
// Codes are not validated; unknown or repeated codes are kept as they are.
func ParseFormat(layout, sep string) Format {
	if layout == "" {
		layout = config.DefaultDateFormat
	}

	var codes []Code
	if sep == "" {
		codes = tokenize(layout)
	} else {
		for _, part := range strings.Split(layout, sep) {
			codes = append(codes, Code(part))
		}
	}

	return Format{
		Layout:    layout,
		Separator: sep,
		Segments:  computeOffsets(codes, sep),
	}
}

// tokenize reads known codes greedily; anything else becomes an opaque run
// of identical characters.
func tokenize(layout string) []Code {
	known := []Code{Year, Month, Day}
	var codes []Code

	for len(layout) > 0 {
		matched := false
		for _, c := range known {
			if strings.HasPrefix(layout, string(c)) {
				codes = append(codes, c)
				layout = layout[len(c):]
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		first, size := utf8.DecodeRuneInString(layout)
		n := size
		for n < len(layout) {
			r, sz := utf8.DecodeRuneInString(layout[n:])
			if r != first {
				break
			}
			n += sz
		}
		codes = append(codes, Code(layout[:n]))
		layout = layout[n:]
	}
	return codes
}

func computeOffsets(codes []Code, sep string) []Segment {
	sepWidth := utf8.RuneCountInString(sep)
	segments := make([]Segment, 0, len(codes))

	pos := 0
	for _, c := range codes {
		segments = append(segments, Segment{Code: c, Start: pos, End: pos + c.Width()})
		pos += c.Width() + sepWidth
	}
	return segments
}

// Len is the rune length of any display composed with this format.
func (f Format) Len() int {
	if len(f.Segments) == 0 {
		return 0
	}
	return f.Segments[len(f.Segments)-1].End
}

// Index returns the position of the first segment with the given code, or -1.
func (f Format) Index(c Code) int {
	for i, s := range f.Segments {
		if s.Code == c {
			return i
		}
	}
	return -1
}

// Placeholder is the display of an entirely empty field, e.g. "DD.MM.YYYY".
func (f Format) Placeholder() string {
	return f.Compose(nil)
}
