package segment_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/segment"
)

// -----------------------------------------------------------------------------
// Format Model
// -----------------------------------------------------------------------------

func TestParseFormat_Offsets(t *testing.T) {
	tests := []struct {
		name    string
		layout  string
		sep     string
		want    []segment.Segment
		wantLen int
	}{
		{
			name:   "Default",
			layout: "DD.MM.YYYY",
			sep:    ".",
			want: []segment.Segment{
				{Code: segment.Day, Start: 0, End: 2},
				{Code: segment.Month, Start: 3, End: 5},
				{Code: segment.Year, Start: 6, End: 10},
			},
			wantLen: 10,
		},
		{
			name:   "ISO",
			layout: "YYYY-MM-DD",
			sep:    "-",
			want: []segment.Segment{
				{Code: segment.Year, Start: 0, End: 4},
				{Code: segment.Month, Start: 5, End: 7},
				{Code: segment.Day, Start: 8, End: 10},
			},
			wantLen: 10,
		},
		{
			name:   "WideSeparator",
			layout: "MM / DD / YYYY",
			sep:    " / ",
			want: []segment.Segment{
				{Code: segment.Month, Start: 0, End: 2},
				{Code: segment.Day, Start: 5, End: 7},
				{Code: segment.Year, Start: 10, End: 14},
			},
			wantLen: 14,
		},
		{
			name:   "NoSeparator",
			layout: "YYYYMMDD",
			sep:    "",
			want: []segment.Segment{
				{Code: segment.Year, Start: 0, End: 4},
				{Code: segment.Month, Start: 4, End: 6},
				{Code: segment.Day, Start: 6, End: 8},
			},
			wantLen: 8,
		},
		{
			name:   "UnknownCodeIsOpaque",
			layout: "DD.QQ.YYYY",
			sep:    ".",
			want: []segment.Segment{
				{Code: segment.Day, Start: 0, End: 2},
				{Code: segment.Code("QQ"), Start: 3, End: 5},
				{Code: segment.Year, Start: 6, End: 10},
			},
			wantLen: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := segment.ParseFormat(tt.layout, tt.sep)
			assert.Equal(t, tt.want, f.Segments)
			assert.Equal(t, tt.wantLen, f.Len())
			assert.Equal(t, tt.layout, f.Placeholder(), "Empty display should echo the layout")
		})
	}
}

func TestParseFormat_EmptyLayoutFallsBackToDefault(t *testing.T) {
	f := segment.ParseFormat("", config.DefaultSeparator)
	assert.Equal(t, config.DefaultDateFormat, f.Layout)
	require.Len(t, f.Segments, 3)
	assert.Equal(t, 0, f.Index(segment.Day))
	assert.Equal(t, -1, f.Index(segment.Code("QQ")))
}

func TestCode_Width(t *testing.T) {
	assert.Equal(t, 2, segment.Day.Width())
	assert.Equal(t, 2, segment.Month.Width())
	assert.Equal(t, 4, segment.Year.Width())
	assert.Equal(t, 3, segment.Code("XXX").Width())
	assert.True(t, segment.Year.Known())
	assert.False(t, segment.Code("XXX").Known())
}

// -----------------------------------------------------------------------------
// Display Composer
// -----------------------------------------------------------------------------

func TestCompose(t *testing.T) {
	f := segment.ParseFormat("DD.MM.YYYY", ".")

	tests := []struct {
		name   string
		values segment.Values
		want   string
	}{
		{"Empty", segment.Values{"", "", ""}, "DD.MM.YYYY"},
		{"Nil", nil, "DD.MM.YYYY"},
		{"PartialDay", segment.Values{"2", "", ""}, "02.MM.YYYY"},
		{"PartialYear", segment.Values{"", "", "19"}, "DD.MM.0019"},
		{"Complete", segment.Values{"04", "07", "2025"}, "04.07.2025"},
		{"ShortSlice", segment.Values{"31"}, "31.MM.YYYY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Compose(tt.values)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, f.Len(), utf8.RuneCountInString(got), "Display length must not depend on completion")
		})
	}
}

// TestCompose_DigitRoundTrip feeds every digit string up to the year width
// into an empty year segment and reads it back zero-padded.
func TestCompose_DigitRoundTrip(t *testing.T) {
	f := segment.ParseFormat("DD.MM.YYYY", ".")
	year := f.Index(segment.Year)

	inputs := []string{"0", "7", "19", "202", "2024", "0001", "9999"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			s := segment.New("DD.MM.YYYY", ".")
			next, eff := segment.Reduce(s, segment.Input{Raw: ".." + in})
			require.False(t, eff.Rejected)

			display := next.Display()
			seg := f.Segments[year]
			got := display[seg.Start:seg.End]
			want := strings.Repeat("0", 4-len(in)) + in
			assert.Equal(t, want, got)
		})
	}
}

func TestFromDate_PadsEverySegment(t *testing.T) {
	f := segment.ParseFormat("YYYY-MM-DD", "-")
	tm, ok := segment.ParseValue("0987-03-04")
	require.True(t, ok)
	assert.Equal(t, segment.Values{"0987", "03", "04"}, f.FromDate(tm))
}

// -----------------------------------------------------------------------------
// External Values
// -----------------------------------------------------------------------------

func TestParseValue(t *testing.T) {
	ref, ok := segment.ParseValue("2024-05-20")
	require.True(t, ok)

	tests := []struct {
		name  string
		value any
		ok    bool
	}{
		{"Nil", nil, false},
		{"EmptyString", "   ", false},
		{"Garbage", "next tuesday", false},
		{"ISO", "2024-05-20", true},
		{"Basic", "20240520", true},
		{"RFC3339", "2024-05-20T23:30:00+02:00", true},
		{"ZuluTime", "2024-05-20T10:00:00Z", true},
		{"Time", ref.Add(15 * time.Hour), true},
		{"TimePointer", &ref, true},
		{"ZeroTime", time.Time{}, false},
		{"Int", 20240520, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := segment.ParseValue(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(ref), "expected %v, got %v", ref, got)
			}
		})
	}
}
