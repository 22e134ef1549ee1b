package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/engine"
)

// -----------------------------------------------------------------------------
// Sorting Logic Tests
// -----------------------------------------------------------------------------

func names(entries []engine.BirthdayEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

// TestSortEntries verifies every column in both directions.
// Sorting by date is the most critical user requirement: "Who is next?".
func TestSortEntries(t *testing.T) {
	dateToday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dateDec := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	dateJan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) // Next year

	data := []engine.BirthdayEntry{
		{Name: "charlie", NextOccurrence: dateJan, AgeNext: 50},
		{Name: "Bob", NextOccurrence: dateDec, AgeNext: 10},
		{Name: "alice", NextOccurrence: dateToday, AgeNext: 30},
		{Name: "Aaron", NextOccurrence: dateDec, AgeNext: 1},
	}

	tests := []struct {
		name string
		col  int
		asc  bool
		want []string
	}{
		{"Date Ascending", config.ColIDDate, true, []string{"alice", "Aaron", "Bob", "charlie"}},
		{"Date Descending", config.ColIDDate, false, []string{"charlie", "Bob", "Aaron", "alice"}},
		{"Name Ascending (case-insensitive)", config.ColIDName, true, []string{"Aaron", "alice", "Bob", "charlie"}},
		{"Name Descending", config.ColIDName, false, []string{"charlie", "Bob", "alice", "Aaron"}},
		{"Age Ascending", config.ColIDAge, true, []string{"Aaron", "Bob", "alice", "charlie"}},
		{"Age Descending", config.ColIDAge, false, []string{"charlie", "alice", "Bob", "Aaron"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortEntries(data, tt.col, tt.asc)
			assert.Equal(t, tt.want, names(got))
		})
	}

	assert.Equal(t, "charlie", data[0].Name, "The input is not reordered")
}

func TestToggleSort(t *testing.T) {
	app := setupTestApp(t, config.DefaultOptions())
	_, err := app.Book.Add("Zoe", time.Date(1990, 6, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = app.Book.Add("Adam", time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	app.refreshContacts()

	assert.Equal(t, []string{"Zoe", "Adam"}, names(app.entries), "Default: next birthday first")
	assert.Equal(t, "Next birthday"+config.SortIconAsc, app.headerText(config.ColIDDate))

	app.toggleSort(config.ColIDName)
	assert.Equal(t, []string{"Adam", "Zoe"}, names(app.entries))
	assert.Equal(t, "Name"+config.SortIconAsc, app.headerText(config.ColIDName))
	assert.Equal(t, "Next birthday", app.headerText(config.ColIDDate))

	app.toggleSort(config.ColIDName)
	assert.Equal(t, []string{"Zoe", "Adam"}, names(app.entries))
	assert.Equal(t, "Name"+config.SortIconDesc, app.headerText(config.ColIDName))
}

// -----------------------------------------------------------------------------
// UI Formatting Tests (View Model Logic)
// -----------------------------------------------------------------------------

// TestTableFormatting verifies that the raw data is correctly converted to display strings.
func TestTableFormatting(t *testing.T) {
	app := setupTestApp(t, config.DefaultOptions())

	tests := []struct {
		name        string
		entry       engine.BirthdayEntry
		expectedAge string
		desc        string
	}{
		{
			name:        "Standard Age Transition",
			entry:       engine.BirthdayEntry{AgeNext: 26},
			expectedAge: "25 → 26",
			desc:        "Should display transition from prev age to next age",
		},
		{
			name:        "Birth Transition (1 year old)",
			entry:       engine.BirthdayEntry{AgeNext: 1},
			expectedAge: "Birth → 1",
			desc:        "Should display Birth -> 1 for first birthday",
		},
		{
			name:        "Newborn (Age 0 - Birth event)",
			entry:       engine.BirthdayEntry{AgeNext: 0},
			expectedAge: "Birth",
			desc:        "Should display the birth label for age 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, app.cellText(tt.entry, config.ColIDAge), tt.desc)
		})
	}

	entry := engine.BirthdayEntry{Name: "Jane", NextOccurrence: time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Jane", app.cellText(entry, config.ColIDName))
	assert.Equal(t, "12/24/2025", app.cellText(entry, config.ColIDDate))

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "24/12/2025", app.cellText(entry, config.ColIDDate), "Dates follow the language")
}
