package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-dateentry/internal/config"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect   *widget.Select
	layoutSelect *widget.Select
	sepSelect    *widget.Select
	minEntry     *DateEntry
	maxEntry     *DateEntry
	returnCheck  *widget.Check
}

// layoutChoice turns "DD.MM.YYYY" with separator "." into "DD MM YYYY".
func layoutChoice(format, sep string) string {
	if sep == "" {
		return format
	}
	return strings.ReplaceAll(format, sep, " ")
}

// layoutFromChoice turns "DD MM YYYY" with separator "/" into "DD/MM/YYYY".
func layoutFromChoice(choice, sep string) string {
	return strings.ReplaceAll(choice, " ", sep)
}

// ShowSettingsWindow displays the settings window, or focuses it if already open.
func (app *BirthdayApp) ShowSettingsWindow() {
	log := slog.With(config.LogKeyComponent, config.CompUISet)
	if app.settingsWindow != nil {
		log.Debug(config.MsgSettingsFocus)
		app.settingsWindow.RequestFocus()
		return
	}

	log.Info(config.MsgOpenSettings)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w
	w.SetOnClosed(func() { app.settingsWindow = nil })

	sw := app.newSettingsWidgets()

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)
	itemMin := widget.NewFormItem(app.GetMsg(config.TKeyLblMin), sw.minEntry)
	itemMin.HintText = app.GetMsg(config.TKeyHelpBounds)
	itemMax := widget.NewFormItem(app.GetMsg(config.TKeyLblMax), sw.maxEntry)
	itemMax.HintText = app.GetMsg(config.TKeyHelpBounds)

	form := widget.NewForm(
		itemLang,
		widget.NewFormItem(app.GetMsg(config.TKeyLblLayout), sw.layoutSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblSeparator), sw.sepSelect),
		itemMin,
		itemMax,
	)

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := app.saveSettings(sw); err != nil {
			dialog.ShowError(err, w)
			return
		}
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	w.SetContent(container.NewPadded(container.NewVBox(
		form,
		sw.returnCheck,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	)))
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, w.Content().MinSize().Height))
	w.Show()
}

// newSettingsWidgets creates the settings controls filled from the current options.
func (app *BirthdayApp) newSettingsWidgets() *settingsWidgets {
	o := app.EffectiveOptions()

	sw := &settingsWidgets{
		langSelect:   widget.NewSelect(app.SupportedLanguages, nil),
		layoutSelect: widget.NewSelect(config.LayoutChoices, nil),
		sepSelect:    widget.NewSelect(config.SeparatorChoices, nil),
		returnCheck:  widget.NewCheck(app.GetMsg(config.TKeyLblReturnStr), nil),
	}
	sw.langSelect.SetSelected(app.Tr.Lang())
	sw.layoutSelect.SetSelected(layoutChoice(o.DateFormat, o.Separator))
	sw.sepSelect.SetSelected(o.Separator)
	sw.returnCheck.SetChecked(o.ReturnString)

	bound := func(value string) *DateEntry {
		bo := o
		bo.Value = value
		bo.Min, bo.Max = "", ""
		bo.Required, bo.Disabled, bo.ReturnString = false, false, false
		return app.newDateEntry(bo)
	}
	sw.minEntry = bound(o.Min)
	sw.maxEntry = bound(o.Max)
	return sw
}

// saveSettings validates the bounds and persists the settings, then applies them.
func (app *BirthdayApp) saveSettings(sw *settingsWidgets) error {
	if sw.minEntry.Invalid() || sw.maxEntry.Invalid() {
		return errors.New(app.message(config.TKeyErrDate, config.FallbackDateInvalid))
	}
	lo, hi := sw.minEntry.Date(), sw.maxEntry.Date()
	if lo.Valid && hi.Valid && lo.Date.After(hi.Date) {
		return errors.New(config.ErrBoundsOrder)
	}

	slog.Info(config.MsgSavePrefs, config.LogKeyComponent, config.CompUISet)

	sep := sw.sepSelect.Selected
	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}
	if sw.layoutSelect.Selected != "" {
		app.Preferences.SetString(config.PrefDateFormat, layoutFromChoice(sw.layoutSelect.Selected, sep))
		app.Preferences.SetString(config.PrefSeparator, sep)
	}
	app.Preferences.SetString(config.PrefMin, isoDate(sw.minEntry))
	app.Preferences.SetString(config.PrefMax, isoDate(sw.maxEntry))
	app.Preferences.SetBool(config.PrefReturnString, sw.returnCheck.Checked)

	app.ApplyOptions()
	return nil
}

// isoDate is the composed date of e as YYYY-MM-DD, or "" for no date.
func isoDate(e *DateEntry) string {
	res := e.Date()
	if !res.Valid {
		return ""
	}
	return res.Date.Format(config.DateFormatFullDash)
}
