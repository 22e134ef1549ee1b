package ui

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/engine"
	"github.com/tartampluch/go-dateentry/internal/locale"
	"github.com/tartampluch/go-dateentry/internal/segment"
)

//go:embed Icon.png
var appIconData []byte

// BirthdayApp is the desktop host of the date entry: a small birthday book
// whose dates are typed through a DateEntry.
type BirthdayApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Tr          *locale.Translator
	Ctx         context.Context

	Book *engine.Book

	// Options come from flags and the YAML file. Saved preferences win.
	Options config.Options

	SupportedLanguages []string

	// schedule overrides DateEntry.Schedule when set.
	schedule func(func())

	nameEntry  *widget.Entry
	dateEntry  *DateEntry
	addBtn     *widget.Button
	dateStatus *widget.Label
	countLabel *widget.Label

	// Contacts table state
	table   *widget.Table
	entries []engine.BirthdayEntry
	sortCol int
	sortAsc bool

	settingsWindow fyne.Window
}

// NewBirthdayApp constructs the application and wires dependencies.
func NewBirthdayApp(a fyne.App, ctx context.Context, opts config.Options) *BirthdayApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &BirthdayApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Book:               engine.NewBook(segment.RealClock{}),
		Options:            opts,
		SupportedLanguages: config.SupportedLanguages,
		sortCol:            config.ColIDDate,
		sortAsc:            true,
	}
}

// Run builds the main window and blocks in the Fyne event loop.
func (app *BirthdayApp) Run() {
	app.SetupI18n()
	app.BuildMainWindow()
	app.Window.ShowAndRun()
}

// BuildMainWindow creates the main window and its content.
func (app *BirthdayApp) BuildMainWindow() {
	app.Window = app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	app.Window.SetMaster()
	app.Window.SetContent(app.buildContent())
}

// EffectiveOptions merges the startup options with the saved preferences.
func (app *BirthdayApp) EffectiveOptions() config.Options {
	o := app.Options
	p := app.Preferences

	o.Locale = app.language()
	o.DateFormat = p.StringWithFallback(config.PrefDateFormat, o.DateFormat)
	o.Separator = p.StringWithFallback(config.PrefSeparator, o.Separator)
	o.Min = p.StringWithFallback(config.PrefMin, o.Min)
	o.Max = p.StringWithFallback(config.PrefMax, o.Max)
	o.ReturnString = p.BoolWithFallback(config.PrefReturnString, o.ReturnString)
	return o
}

// ApplyOptions reloads the language and rebuilds the window content after the
// settings changed. The typed name and a complete date survive.
func (app *BirthdayApp) ApplyOptions() {
	app.UpdateLocalizer()

	var name string
	var date segment.Result
	if app.nameEntry != nil {
		name = app.nameEntry.Text
		date = app.dateEntry.Date()
	}

	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetContent(app.buildContent())

	app.nameEntry.SetText(name)
	if date.Valid {
		app.dateEntry.SetValue(date.Date)
	}
}

func (app *BirthdayApp) newDateEntry(o config.Options) *DateEntry {
	e := NewDateEntry()
	if app.schedule != nil {
		e.Schedule = app.schedule
	}
	e.SetClock(app.Book.Clock)
	e.Configure(o)
	return e
}

func (app *BirthdayApp) buildContent() fyne.CanvasObject {
	o := app.EffectiveOptions()
	o.Required = true

	app.nameEntry = widget.NewEntry()
	app.nameEntry.PlaceHolder = app.GetMsg(config.TKeyLblName)

	app.dateEntry = app.newDateEntry(o)
	app.dateEntry.OnDateChanged = func(segment.Result) { app.refreshDateStatus() }

	app.addBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), app.addContact)
	app.addBtn.Importance = widget.HighImportance

	app.dateStatus = widget.NewLabel("")
	app.dateStatus.TextStyle = fyne.TextStyle{Italic: true}
	app.countLabel = widget.NewLabel("")

	itemDate := widget.NewFormItem(app.GetMsg(config.TKeyLblDate), app.dateEntry)
	itemDate.HintText = app.dateEntry.AccessibleLabel()
	form := widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyLblName), app.nameEntry), itemDate)

	actions := container.NewGridWithColumns(config.LayoutColumnsTriple,
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.FolderOpenIcon(), app.showImportDialog),
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExportVCF), theme.DocumentSaveIcon(), func() {
			app.showExportDialog(config.DefaultExportVCF, app.ExportVCards)
		}),
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExportICS), theme.DocumentSaveIcon(), func() {
			app.showExportDialog(config.DefaultExportICS, app.ExportCalendar)
		}),
	)
	settingsBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	app.table = app.newContactsTable()
	app.refreshContacts()
	app.refreshDateStatus()

	top := container.NewVBox(form, container.NewBorder(nil, nil, nil, app.addBtn, app.dateStatus))
	bottom := container.NewVBox(actions, container.NewBorder(nil, nil, nil, settingsBtn, app.countLabel))
	return container.NewPadded(container.NewBorder(top, bottom, nil, nil, app.table))
}

// refreshDateStatus mirrors the composed date in the status line and gates
// the Add button.
func (app *BirthdayApp) refreshDateStatus() {
	res := app.dateEntry.Date()
	switch {
	case res.Valid:
		text := res.Text
		if text == "" {
			text = app.Tr.FormatDate(res.Date)
		}
		app.dateStatus.SetText(app.Tr.Format(config.TKeyStatusPicked, map[string]any{"Date": text}))
		app.addBtn.Enable()
	case app.dateEntry.Invalid():
		app.dateStatus.SetText(app.message(config.TKeyStatusNoDate, config.MsgTUINoDate))
		app.addBtn.Disable()
	default:
		app.dateStatus.SetText("")
		app.addBtn.Disable()
	}
}

// addContact stores the typed name and date, then resets the form.
func (app *BirthdayApp) addContact() {
	name := strings.TrimSpace(app.nameEntry.Text)
	if name == "" {
		app.showError(errors.New(app.message(config.TKeyErrNameReq, config.FallbackNameRequired)))
		return
	}

	res := app.dateEntry.Date()
	if !res.Valid {
		app.showError(errors.New(app.message(config.TKeyErrDate, config.FallbackDateInvalid)))
		return
	}

	if _, err := app.Book.Add(name, res.Date); err != nil {
		app.showError(err)
		return
	}

	app.nameEntry.SetText("")
	app.dateEntry.SetValue(nil)
	app.refreshContacts()
}

// ImportVCards merges a vCard stream into the book and returns how many
// contacts were stored.
func (app *BirthdayApp) ImportVCards(r io.Reader) (int, error) {
	contacts, err := engine.ReadVCards(app.Ctx, r)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrImport, err)
	}
	n := app.Book.Import(contacts)
	app.refreshContacts()
	return n, nil
}

// ExportVCards writes the book as vCard 4.0.
func (app *BirthdayApp) ExportVCards(w io.Writer) error {
	if err := engine.WriteVCards(w, app.Book.Contacts()); err != nil {
		return fmt.Errorf("%s: %w", config.ErrExport, err)
	}
	return nil
}

// ExportCalendar writes the book as an iCalendar feed with localized summaries.
func (app *BirthdayApp) ExportCalendar(w io.Writer) error {
	err := engine.WriteCalendar(app.Ctx, w, app.Book.Contacts(), app.Book.Clock.Now(), app.buildSummaryFormatter())
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrExport, err)
	}
	return nil
}

func (app *BirthdayApp) showImportDialog() {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			app.showError(err)
			return
		}
		if rc == nil {
			return // Cancelled
		}
		defer func() { _ = rc.Close() }()

		n, err := app.ImportVCards(rc)
		if err != nil {
			app.showError(err)
			return
		}
		app.notify(app.Tr.Plural(config.TKeyNotifImported, n))
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

func (app *BirthdayApp) showExportDialog(fileName string, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			app.showError(err)
			return
		}
		if wc == nil {
			return // Cancelled
		}
		defer func() { _ = wc.Close() }()

		if err := write(wc); err != nil {
			app.showError(err)
			return
		}
		app.notify(app.GetMsg(config.TKeyNotifExported))
	}, app.Window)
	d.SetFileName(fileName)
	d.Show()
}

func (app *BirthdayApp) showError(err error) {
	app.log().Error(config.ErrAppFailed, config.LogKeyError, err)
	if app.Window != nil {
		dialog.ShowError(err, app.Window)
	}
}

func (app *BirthdayApp) notify(msg string) {
	app.App.SendNotification(fyne.NewNotification(config.AppName, msg))
}

func (app *BirthdayApp) message(id, fallback string) string {
	if msg := app.GetMsg(id); msg != id {
		return msg
	}
	return fallback
}

func (app *BirthdayApp) log() *slog.Logger {
	return slog.With(config.LogKeyComponent, config.CompUI)
}
