// Package locale loads the embedded translations shared by the desktop and
// terminal surfaces and resolves user supplied locale tags against them.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-dateentry/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// NewBundle builds a translation bundle from every embedded active.<lang>.json
// file and returns it together with the detected language codes.
func NewBundle() (*i18n.Bundle, []string) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return bundle, nil
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	return bundle, detectedLangs
}

var shared = sync.OnceValues(NewBundle)

// Languages lists the language codes of the embedded translations.
func Languages() []string {
	_, langs := shared()
	if len(langs) == 0 {
		return config.SupportedLanguages
	}
	return langs
}

// Normalize maps a BCP 47 tag such as "fr-CH" or "de_AT" onto the closest
// supported language. An empty tag selects the default language; a malformed
// one also does, and the parse error is returned.
func Normalize(tag string, supported []string) (string, error) {
	tag = strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if tag == "" || len(supported) == 0 {
		return config.DefaultLanguage, nil
	}

	t, err := language.Parse(tag)
	if err != nil {
		return config.DefaultLanguage, fmt.Errorf("%s: %w", config.ErrLocaleTag, err)
	}

	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		tags = append(tags, language.Make(s))
	}

	_, idx, confidence := language.NewMatcher(tags).Match(t)
	if confidence == language.No || idx < 0 || idx >= len(supported) {
		return config.DefaultLanguage, nil
	}
	return supported[idx], nil
}

// Translator resolves message IDs for one language.
type Translator struct {
	lang      string
	localizer *i18n.Localizer
}

// New returns a Translator over the embedded bundle. The tag is normalized
// first; an unusable tag falls back to the default language.
func New(tag string) *Translator {
	bundle, _ := shared()
	lang, err := Normalize(tag, Languages())
	if err != nil {
		slog.Warn(config.ErrLocaleTag,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, tag,
			config.LogKeyError, err,
		)
	}
	return NewWithBundle(bundle, lang)
}

// NewWithBundle returns a Translator over an explicit bundle.
func NewWithBundle(bundle *i18n.Bundle, lang string) *Translator {
	t := &Translator{lang: lang}
	if bundle != nil {
		t.localizer = i18n.NewLocalizer(bundle, lang)
	}
	return t
}

// Lang is the resolved language code.
func (t *Translator) Lang() string {
	if t == nil {
		return config.DefaultLanguage
	}
	return t.lang
}

// Msg translates a key. A missing key yields the key itself.
func (t *Translator) Msg(key string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key})
}

// Format translates a templated key.
func (t *Translator) Format(key string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
}

// Plural translates a key whose form depends on count. Count is also
// available to the template.
func (t *Translator) Plural(key string, count int) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: map[string]any{"Count": count},
		PluralCount:  count,
	})
}

// DateLayout is the Go time layout used for dates shown as text.
func (t *Translator) DateLayout() string {
	layout := t.Msg(config.TKeyFormatDate)
	if layout == config.TKeyFormatDate {
		return config.DateFormatDisplay
	}
	return layout
}

// FormatDate renders d with DateLayout.
func (t *Translator) FormatDate(d time.Time) string {
	return d.Format(t.DateLayout())
}

func (t *Translator) localize(lc *i18n.LocalizeConfig) string {
	if t == nil || t.localizer == nil {
		return lc.MessageID
	}
	msg, err := t.localizer.Localize(lc)
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}
