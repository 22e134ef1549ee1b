package ui

import (
	"fmt"

	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/engine"
	"github.com/tartampluch/go-dateentry/internal/locale"
)

// SetupI18n loads the embedded translations and detects available languages.
func (app *BirthdayApp) SetupI18n() {
	bundle, langs := locale.NewBundle()
	if len(langs) > 0 {
		app.SupportedLanguages = langs
	}
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *BirthdayApp) UpdateLocalizer() {
	lang, err := locale.Normalize(app.language(), app.SupportedLanguages)
	if err != nil {
		app.log().Warn(config.ErrLocaleTag, config.LogKeyError, err)
	}
	app.Tr = locale.NewWithBundle(app.I18nBundle, lang)
}

// language is the preferred language, falling back to the startup options.
func (app *BirthdayApp) language() string {
	return app.Preferences.StringWithFallback(config.PrefLanguage, app.Options.Locale)
}

// GetMsg is a helper to translate a key safely.
func (app *BirthdayApp) GetMsg(key string) string {
	return app.Tr.Msg(key)
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *BirthdayApp) buildSummaryFormatter() engine.SummaryFunc {
	return func(name string, age int) string {
		if age == 0 {
			msg := app.Tr.Format(config.TKeyEvtSummaryBirth, map[string]any{"Name": name})
			if msg == config.TKeyEvtSummaryBirth {
				return fmt.Sprintf(config.FallbackSummaryBirth, name)
			}
			return msg
		}

		msg := app.Tr.Format(config.TKeyEvtSummaryAge, map[string]any{"Name": name, "Age": age})
		if msg == config.TKeyEvtSummaryAge {
			return fmt.Sprintf(config.FallbackSummaryAge, name, age)
		}
		return msg
	}
}
