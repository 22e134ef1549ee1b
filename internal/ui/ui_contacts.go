package ui

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/engine"
)

// sortEntries returns a sorted copy of entries. Ties on the date column fall
// back to the name.
func sortEntries(entries []engine.BirthdayEntry, col int, asc bool) []engine.BirthdayEntry {
	sorted := slices.Clone(entries)

	less := func(a, b engine.BirthdayEntry) bool {
		switch col {
		case config.ColIDName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case config.ColIDAge:
			return a.AgeNext < b.AgeNext
		default: // config.ColIDDate
			if a.NextOccurrence.Equal(b.NextOccurrence) {
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			}
			return a.NextOccurrence.Before(b.NextOccurrence)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if asc {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}

// ageText shows the transition to the next age: "25 → 26", "Birth → 1", or
// the birth label for someone born on the next occurrence.
func (app *BirthdayApp) ageText(e engine.BirthdayEntry) string {
	birth := app.message(config.TKeyAgeBirth, config.AgeBirth)
	switch prev := e.AgeNext - 1; {
	case e.AgeNext == 0:
		return birth
	case prev == 0:
		return fmt.Sprintf(config.FormatAgeFromBirth, birth, e.AgeNext)
	default:
		return fmt.Sprintf(config.FormatAgeTransition, prev, e.AgeNext)
	}
}

// refreshContacts reloads the table from the book with the current sort.
func (app *BirthdayApp) refreshContacts() {
	app.entries = sortEntries(app.Book.Entries(), app.sortCol, app.sortAsc)
	if app.countLabel != nil {
		app.countLabel.SetText(app.Tr.Plural(config.TKeyStatusCount, len(app.entries)))
	}
	if app.table != nil {
		app.table.Refresh()
	}
}

// newContactsTable builds the contacts table. Header buttons toggle the sort.
func (app *BirthdayApp) newContactsTable() *widget.Table {
	table := widget.NewTable(
		func() (int, int) {
			return len(app.entries), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(app.entries) {
				return
			}
			label.SetText(app.cellText(app.entries[id.Row], id.Col))
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.HeaderPlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)
		btn.SetText(app.headerText(id.Col))
		btn.OnTapped = func() { app.toggleSort(id.Col) }
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)
	return table
}

func (app *BirthdayApp) cellText(e engine.BirthdayEntry, col int) string {
	switch col {
	case config.ColIDName:
		return e.Name
	case config.ColIDDate:
		return app.Tr.FormatDate(e.NextOccurrence)
	case config.ColIDAge:
		return app.ageText(e)
	}
	return ""
}

func (app *BirthdayApp) headerText(col int) string {
	var titleKey string
	switch col {
	case config.ColIDName:
		titleKey = config.TKeyColName
	case config.ColIDDate:
		titleKey = config.TKeyColDate
	case config.ColIDAge:
		titleKey = config.TKeyColAge
	}

	text := app.GetMsg(titleKey)
	if col == app.sortCol {
		if app.sortAsc {
			text += config.SortIconAsc
		} else {
			text += config.SortIconDesc
		}
	}
	return text
}

// toggleSort sorts by col, flipping the direction when col is already active.
func (app *BirthdayApp) toggleSort(col int) {
	if app.sortCol == col {
		app.sortAsc = !app.sortAsc
	} else {
		app.sortCol = col
		app.sortAsc = true
	}

	app.log().Debug(config.MsgSorted,
		config.LogKeySortCol, app.sortCol,
		config.LogKeySortAsc, app.sortAsc,
	)
	app.refreshContacts()
}
