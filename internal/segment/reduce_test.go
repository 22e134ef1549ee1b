package segment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dateentry/internal/segment"
)

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// feed runs events in order and returns the final state and the last effect.
func feed(s segment.State, events ...segment.Event) (segment.State, segment.Effect) {
	var eff segment.Effect
	for _, ev := range events {
		s, eff = segment.Reduce(s, ev)
	}
	return s, eff
}

func typed(text string) []segment.Event {
	events := make([]segment.Event, 0, len(text))
	for _, r := range text {
		events = append(events, segment.Rune{R: r})
	}
	return events
}

// -----------------------------------------------------------------------------
// Validator
// -----------------------------------------------------------------------------

func TestValidSegment(t *testing.T) {
	tests := []struct {
		code  segment.Code
		value string
		want  bool
	}{
		{segment.Day, "", true},
		{segment.Day, "0", true},
		{segment.Day, "3", true},
		{segment.Day, "9", true},
		{segment.Day, "01", true},
		{segment.Day, "31", true},
		{segment.Day, "00", false},
		{segment.Day, "32", false},
		{segment.Day, "123", false},
		{segment.Day, "a1", false},
		{segment.Day, "-1", false},
		{segment.Month, "1", true},
		{segment.Month, "12", true},
		{segment.Month, "13", false},
		{segment.Year, "0", true},
		{segment.Year, "9999", true},
		{segment.Year, "12345", false},
		{segment.Year, "20a4", false},
		{segment.Code("QQ"), "99", true},
		{segment.Code("QQ"), "123", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code)+"_"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, segment.ValidSegment(tt.code, tt.value))
		})
	}
}

func TestComplete(t *testing.T) {
	assert.False(t, segment.Complete(segment.Day, "3"))
	assert.True(t, segment.Complete(segment.Day, "03"))
	assert.False(t, segment.Complete(segment.Year, "202"))
	assert.True(t, segment.Complete(segment.Year, "2024"))
}

// -----------------------------------------------------------------------------
// Keystroke Path
// -----------------------------------------------------------------------------

func TestTyping_FullDateAutoAdvances(t *testing.T) {
	s := segment.New("DD.MM.YYYY", ".")

	s, eff := segment.Reduce(s, segment.Rune{R: '0'})
	assert.True(t, eff.Emit)
	assert.False(t, eff.MoveCaret)
	assert.Equal(t, 0, s.Focus)
	assert.Equal(t, "00.MM.YYYY", s.Display())

	s, eff = segment.Reduce(s, segment.Rune{R: '4'})
	assert.True(t, eff.MoveCaret, "Completing the day should advance focus")
	assert.Equal(t, 1, s.Focus)

	s, _ = feed(s, typed("07")...)
	assert.Equal(t, 2, s.Focus)

	s, eff = feed(s, typed("2025")...)
	assert.False(t, eff.MoveCaret, "The last segment has nowhere to advance to")
	assert.Equal(t, 2, s.Focus)
	assert.Equal(t, "04.07.2025", s.Display())

	res := s.Result()
	require.True(t, res.Valid)
	assert.Equal(t, date(2025, time.July, 4), res.Date)
	assert.False(t, s.Invalid())
}

func TestTyping_UnpaddedSegmentsCompose(t *testing.T) {
	typedState, _ := feed(segment.New("DD.MM.YYYY", "."), typed("4.7.2025")...)
	pasted, _ := segment.Reduce(segment.New("DD.MM.YYYY", "."), segment.Input{Raw: "4.7.2025"})

	for name, s := range map[string]segment.State{"Typed": typedState, "Pasted": pasted} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "04.07.2025", s.Display())
			res := s.Result()
			require.True(t, res.Valid)
			assert.Equal(t, date(2025, time.July, 4), res.Date)
			assert.False(t, s.Invalid())
		})
	}

	zero, _ := segment.Reduce(segment.New("DD.MM.YYYY", "."), segment.Input{Raw: "0.7.2025"})
	assert.Equal(t, "00.07.2025", zero.Display())
	assert.False(t, zero.Result().Valid, "A lone zero day pads to 00")
	assert.True(t, zero.Invalid())
}

func TestTyping_FullSegmentStartsOver(t *testing.T) {
	s, _ := feed(segment.New("DD.MM.YYYY", "."), segment.Input{Raw: "31"}, segment.Caret{Pos: 0})
	require.Equal(t, 0, s.Focus)

	s, eff := segment.Reduce(s, segment.Rune{R: '4'})
	assert.False(t, eff.Rejected)
	assert.Equal(t, "04.MM.YYYY", s.Display())
	assert.Equal(t, segment.Values{"4", "", ""}, s.Values)
}

func TestTyping_OutOfRangeDigitRejected(t *testing.T) {
	s, _ := feed(segment.New("DD.MM.YYYY", "."), segment.Rune{R: '3'})

	next, eff := segment.Reduce(s, segment.Rune{R: '9'})
	assert.True(t, eff.Rejected)
	assert.False(t, eff.Emit)
	assert.Equal(t, s, next, "Rejected input must not change state")
}

func TestTyping_SeparatorAdvancesFocus(t *testing.T) {
	s := segment.New("DD/MM/YYYY", "/")

	s, eff := segment.Reduce(s, segment.Rune{R: '/'})
	assert.True(t, eff.MoveCaret)
	assert.False(t, eff.Emit, "Separator must not alter content")
	assert.Equal(t, 1, s.Focus)

	s, _ = feed(s, segment.KeyPress{Key: segment.KeyEnd})
	s, eff = segment.Reduce(s, segment.Rune{R: '/'})
	assert.Equal(t, segment.Effect{}, eff, "No advance past the last segment")
	assert.Equal(t, 2, s.Focus)
}

func TestTyping_OtherCharactersSwallowed(t *testing.T) {
	s := segment.New("DD.MM.YYYY", ".")
	for _, r := range []rune{'a', ' ', '-', 'é'} {
		next, eff := segment.Reduce(s, segment.Rune{R: r})
		assert.True(t, eff.Rejected, "rune %q", r)
		assert.Equal(t, s, next)
	}
}

// -----------------------------------------------------------------------------
// Raw Input Path
// -----------------------------------------------------------------------------

func TestInput_Rejections(t *testing.T) {
	prior, _ := feed(segment.New("DD.MM.YYYY", "."), segment.Input{Raw: "01.01.20"})

	tests := []struct {
		name string
		raw  string
	}{
		{"OutOfRange", "99.99.9999"},
		{"Letters", "04a.07.2025"},
		{"TooManyParts", "01.01.2024.5"},
		{"DayTooWide", "001.01.2024"},
		{"YearTooWide", "01.01.20245"},
		{"ForeignSeparator", "01/01/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, eff := segment.Reduce(prior, segment.Input{Raw: tt.raw})
			assert.True(t, eff.Rejected)
			assert.False(t, eff.Emit, "Rejected input must not notify")
			assert.Equal(t, prior.Display(), next.Display())
			assert.Equal(t, prior.Values, next.Values)
		})
	}
}

// TestInput_InvalidFlagOnlyWithContent checks that a rejected paste leaves
// the invalid flag as it was: false on an empty field, true on a partial one.
func TestInput_InvalidFlagOnlyWithContent(t *testing.T) {
	empty := segment.New("DD.MM.YYYY", ".")
	next, _ := segment.Reduce(empty, segment.Input{Raw: "99.99.9999"})
	assert.False(t, next.Invalid())
	assert.Equal(t, "DD.MM.YYYY", next.Display())

	partial, _ := segment.Reduce(empty, segment.Input{Raw: "01.01"})
	next, _ = segment.Reduce(partial, segment.Input{Raw: "99.99.9999"})
	assert.True(t, next.Invalid())
	assert.Equal(t, "01.01.YYYY", next.Display())
}

func TestInput_KeepsSegmentsNotTyped(t *testing.T) {
	s, _ := feed(segment.New("DD.MM.YYYY", "."), segment.Input{Raw: "04.07.2025"})
	require.Equal(t, 2, s.Focus, "A pasted date leaves focus on the year")

	s, eff := segment.Reduce(s, segment.Input{Raw: "09"})
	assert.True(t, eff.Emit)
	assert.False(t, eff.MoveCaret)
	assert.Equal(t, "09.07.2025", s.Display())
}

func TestInput_EmptyIsIgnored(t *testing.T) {
	s, _ := segment.Reduce(segment.New("DD.MM.YYYY", "."), segment.Input{Raw: "04.07.2025"})

	next, eff := segment.Reduce(s, segment.Input{Raw: ""})
	assert.Equal(t, segment.Effect{}, eff)
	assert.Equal(t, "04.07.2025", next.Display())
	assert.Equal(t, s.Values, next.Values)

	empty, _ := segment.Reduce(segment.New("YYYYMMDD", ""), segment.Input{Raw: ""})
	assert.Equal(t, "YYYYMMDD", empty.Display())
}

func TestInput_PasteAdvancesPastCompleteSegments(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		focus int
	}{
		{"FullDate", "04.07.2025", 2},
		{"DayAndMonth", "04.07", 2},
		{"DayOnly", "04", 1},
		{"PartialMonth", "04.7", 1},
		{"PartialDay", "4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, eff := segment.Reduce(segment.New("DD.MM.YYYY", "."), segment.Input{Raw: tt.raw})
			require.False(t, eff.Rejected)
			assert.Equal(t, tt.focus, s.Focus)
			assert.Equal(t, tt.focus != 0, eff.MoveCaret)
		})
	}

	// Typing into a day keeps the following complete segments reachable.
	s, _ := segment.Reduce(segment.New("DD.MM.YYYY", "."), segment.SetValue{Value: "2025-07-04"})
	s, _ = feed(s, typed("12")...)
	assert.Equal(t, 1, s.Focus)
	assert.Equal(t, "12.07.2025", s.Display())
}

func TestInput_EmptySeparatorChunksByWidth(t *testing.T) {
	s := segment.New("YYYYMMDD", "")

	s, eff := segment.Reduce(s, segment.Input{Raw: "20250704"})
	require.False(t, eff.Rejected)
	assert.Equal(t, "20250704", s.Display())
	assert.Equal(t, date(2025, time.July, 4), s.Result().Date)

	_, eff = segment.Reduce(s, segment.Input{Raw: "202507041"})
	assert.True(t, eff.Rejected)

	partial, _ := segment.Reduce(segment.New("YYYYMMDD", ""), segment.Input{Raw: "202"})
	assert.Equal(t, "0202MMDD", partial.Display())
}

// -----------------------------------------------------------------------------
// Composition
// -----------------------------------------------------------------------------

func TestResult_DayValidOnlyPerMonth(t *testing.T) {
	assert.True(t, segment.ValidSegment(segment.Day, "31"), "Per-segment check must accept 31")

	s, eff := segment.Reduce(segment.New("DD.MM.YYYY", "."), segment.Input{Raw: "31.02.2024"})
	require.False(t, eff.Rejected)
	assert.True(t, eff.Emit)
	assert.False(t, s.Result().Valid, "February 2024 has 29 days")
	assert.True(t, s.Invalid())

	s, _ = segment.Reduce(s, segment.Input{Raw: "29"})
	assert.True(t, s.Result().Valid)
}

func TestResult_Bounds(t *testing.T) {
	base := segment.New("DD.MM.YYYY", ".").WithBounds("2024-01-01", "2025-12-31")

	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"Inside", "04.07.2025", true},
		{"AtMin", "01.01.2024", true},
		{"AtMax", "31.12.2025", true},
		{"BeforeMin", "31.12.2023", false},
		{"AfterMax", "01.01.2026", false},
		{"Incomplete", "04.07.202", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := segment.Reduce(base, segment.Input{Raw: tt.raw})
			assert.Equal(t, tt.valid, s.Result().Valid)
			assert.Equal(t, !tt.valid, s.Invalid())
		})
	}
}

func TestResult_BoundsAsTime(t *testing.T) {
	s := segment.New("DD.MM.YYYY", ".").WithBounds(date(2024, time.January, 1), nil)
	s, _ = segment.Reduce(s, segment.Input{Raw: "04.07.2025"})

	res := s.Result()
	require.True(t, res.Valid)
	assert.Equal(t, date(2025, time.July, 4), res.Date)
	assert.True(t, s.Max.IsZero(), "An absent bound imposes no constraint")
}

func TestResult_MissingCodeIsNoDate(t *testing.T) {
	s, _ := segment.Reduce(segment.New("MM.YYYY", "."), segment.Input{Raw: "07.2025"})
	assert.False(t, s.Result().Valid)
}

func TestResult_Idempotent(t *testing.T) {
	s, _ := segment.Reduce(segment.New("DD.MM.YYYY", "."), segment.Input{Raw: "04.07.2025"})
	first := s.Result()

	s, eff := segment.Reduce(s, segment.Caret{Pos: s.Focused().Start})
	assert.False(t, eff.Emit)
	assert.Equal(t, first, s.Result())
}

// -----------------------------------------------------------------------------
// External Value
// -----------------------------------------------------------------------------

func TestSetValue(t *testing.T) {
	s := segment.New("DD.MM.YYYY", ".")

	s, eff := segment.Reduce(s, segment.SetValue{Value: date(2024, time.May, 20)})
	assert.True(t, eff.Emit)
	assert.Equal(t, "20.05.2024", s.Display())

	_, eff = segment.Reduce(s, segment.SetValue{Value: "2024-05-20"})
	assert.False(t, eff.Emit, "Same value twice must not notify again")

	s, eff = segment.Reduce(s, segment.SetValue{Value: nil})
	assert.True(t, eff.Emit)
	assert.Equal(t, "DD.MM.YYYY", s.Display())
	assert.False(t, s.Invalid())

	s, _ = segment.Reduce(s, segment.SetValue{Value: "2024-05-20"})
	s, _ = segment.Reduce(s, segment.SetValue{Value: "not a date"})
	assert.True(t, s.Values.IsEmpty())
}

func TestSetValue_RoundTrip(t *testing.T) {
	dates := []time.Time{
		date(2024, time.February, 29),
		date(1999, time.December, 31),
		date(2025, time.July, 4),
		date(1, time.January, 1),
	}
	layouts := [][2]string{{"DD.MM.YYYY", "."}, {"YYYY-MM-DD", "-"}, {"MM / DD / YYYY", " / "}, {"YYYYMMDD", ""}}

	for _, l := range layouts {
		for _, d := range dates {
			t.Run(l[0]+"_"+d.Format("2006-01-02"), func(t *testing.T) {
				s, _ := segment.Reduce(segment.New(l[0], l[1]), segment.SetValue{Value: d})
				display := s.Display()

				reparsed, eff := segment.Reduce(segment.New(l[0], l[1]), segment.Input{Raw: display})
				require.False(t, eff.Rejected, "display %q should be accepted as input", display)

				res := reparsed.Result()
				require.True(t, res.Valid)
				assert.True(t, res.Date.Equal(d))
			})
		}
	}
}

func TestWithFormat_CarriesKnownSegments(t *testing.T) {
	s, _ := segment.Reduce(segment.New("DD.MM.YYYY", "."), segment.SetValue{Value: "2024-05-20"})
	s, _ = segment.Reduce(s, segment.KeyPress{Key: segment.KeyEnd})

	s = s.WithFormat("YYYY-MM-DD", "-")
	assert.Equal(t, "2024-05-20", s.Display())
	assert.Equal(t, 0, s.Focus)
	assert.True(t, s.Result().Valid)
}
