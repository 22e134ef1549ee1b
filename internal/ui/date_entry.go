package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/locale"
	"github.com/tartampluch/go-dateentry/internal/segment"
)

var entryKeys = map[fyne.KeyName]segment.Key{
	fyne.KeyLeft:      segment.KeyLeft,
	fyne.KeyRight:     segment.KeyRight,
	fyne.KeyUp:        segment.KeyUp,
	fyne.KeyDown:      segment.KeyDown,
	fyne.KeyHome:      segment.KeyHome,
	fyne.KeyEnd:       segment.KeyEnd,
	fyne.KeyBackspace: segment.KeyBackspace,
	fyne.KeyDelete:    segment.KeyDelete,
}

// DateEntry is a single-line Entry split into day, month and year segments.
// All editing goes through the segment reducer; the Entry only renders the
// composed display and owns the caret.
type DateEntry struct {
	widget.Entry

	// OnDateChanged is called whenever the segment content changes, with the
	// composed date or an invalid Result for "no date".
	OnDateChanged func(segment.Result)

	// ReturnString fills Result.Text with the date in the locale's layout.
	ReturnString bool

	// Schedule defers caret placement until the new text is rendered.
	// Defaults to fyne.Do.
	Schedule func(func())

	state    segment.State
	tr       *locale.Translator
	required bool
	caret    int
}

// NewDateEntry returns an empty DateEntry using the default layout.
func NewDateEntry() *DateEntry {
	e := &DateEntry{
		state:    segment.New(config.DefaultDateFormat, config.DefaultSeparator),
		tr:       locale.New(config.DefaultLanguage),
		Schedule: fyne.Do,
	}
	e.ExtendBaseWidget(e)
	e.Validator = e.validate
	e.render()
	return e
}

// NewDateEntryWithOptions returns a DateEntry configured from o.
func NewDateEntryWithOptions(o config.Options) *DateEntry {
	e := NewDateEntry()
	e.Configure(o)
	return e
}

// Configure applies every option at once. The initial value is set last so
// it is checked against the new bounds.
func (e *DateEntry) Configure(o config.Options) {
	e.tr = locale.New(o.Locale)
	e.state = e.state.WithFormat(o.DateFormat, o.Separator).WithBounds(o.Min, o.Max)
	e.required = o.Required
	e.ReturnString = o.ReturnString
	e.PlaceHolder = o.Placeholder
	if o.Disabled {
		e.Disable()
	} else {
		e.Enable()
	}
	e.render()
	e.SetValue(o.Value)
}

// SetValue replaces the content from outside. Accepts a time.Time, a
// *time.Time, an ISO date string or nil; anything unparseable clears it.
func (e *DateEntry) SetValue(v any) {
	e.dispatch(segment.SetValue{Value: v})
}

// SetFormat changes the layout and separator, keeping the typed values of the
// day, month and year segments.
func (e *DateEntry) SetFormat(layout, sep string) {
	prev := e.state.Result()
	e.state = e.state.WithFormat(layout, sep)

	slog.Debug(config.MsgFormatChanged,
		config.LogKeyComponent, config.CompWidget,
		config.LogKeyFormat, e.state.Format.Layout,
	)
	e.render()
	e.placeCaret()
	e.emitIfChanged(prev)
}

// SetBounds sets the inclusive min and max; nil or unparseable removes a bound.
func (e *DateEntry) SetBounds(min, max any) {
	prev := e.state.Result()
	e.state = e.state.WithBounds(min, max)
	e.Validate()
	e.emitIfChanged(prev)
}

// SetLocale changes the language of the accessible label and of string output.
func (e *DateEntry) SetLocale(tag string) {
	e.tr = locale.New(tag)
	e.Refresh()
	if e.ReturnString && e.state.Result().Valid {
		e.emit()
	}
}

// SetRequired marks the field as required.
func (e *DateEntry) SetRequired(required bool) {
	e.required = required
	e.Validate()
}

// SetClock replaces the clock used to seed an empty year when stepping.
func (e *DateEntry) SetClock(c segment.Clock) {
	e.state.Clock = c
}

// Date returns the composed date.
func (e *DateEntry) Date() segment.Result {
	return e.result()
}

// State exposes the segment state for inspection.
func (e *DateEntry) State() segment.State {
	return e.state
}

// Invalid reports that something is typed but does not form a valid date.
func (e *DateEntry) Invalid() bool {
	return e.state.Invalid()
}

// IsRequired reports whether the field is required.
func (e *DateEntry) IsRequired() bool {
	return e.required
}

// AccessibleLabel names the field and the format it expects.
func (e *DateEntry) AccessibleLabel() string {
	layout := e.state.Format.Layout
	label := e.tr.Format(config.TKeyDateLabel, map[string]any{"Format": layout})
	if label == config.TKeyDateLabel {
		return fmt.Sprintf(config.FallbackDateLabel, layout)
	}
	return label
}

// Keyboard requests the numeric keypad on mobile devices.
func (e *DateEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// TypedRune routes a character through the reducer instead of inserting it.
func (e *DateEntry) TypedRune(r rune) {
	if e.Disabled() {
		return
	}
	e.syncCaret()
	e.dispatch(segment.Rune{R: r})
}

// TypedKey handles navigation and deletion keys. Other keys such as Return
// keep their Entry behavior.
func (e *DateEntry) TypedKey(ev *fyne.KeyEvent) {
	if e.Disabled() {
		return
	}
	k, ok := entryKeys[ev.Name]
	if !ok {
		e.Entry.TypedKey(ev)
		return
	}
	e.syncCaret()
	e.dispatch(segment.KeyPress{Key: k})
}

// TypedShortcut sends pasted text through the raw input path. Copy and select
// all keep working; shortcuts that would edit the text directly are ignored.
func (e *DateEntry) TypedShortcut(s fyne.Shortcut) {
	switch sc := s.(type) {
	case *fyne.ShortcutPaste:
		if e.Disabled() || sc.Clipboard == nil {
			return
		}
		e.syncCaret()
		e.dispatch(segment.Input{Raw: strings.TrimSpace(sc.Clipboard.Content())})
	case *fyne.ShortcutCopy, *fyne.ShortcutSelectAll:
		e.Entry.TypedShortcut(s)
	}
}

// Tapped lets the Entry place the caret, then focuses the segment under it.
func (e *DateEntry) Tapped(ev *fyne.PointEvent) {
	e.Entry.Tapped(ev)
	e.syncCaret()
}

// TappedSecondary is a no-op: the Entry's context menu edits text directly.
func (e *DateEntry) TappedSecondary(*fyne.PointEvent) {}

// FocusGained syncs focus with wherever the caret landed.
func (e *DateEntry) FocusGained() {
	e.Entry.FocusGained()
	e.syncCaret()
}

// syncCaret feeds a caret move made by the Entry (click, tap, focus) to the
// reducer. Positions placed by placeCaret are skipped.
func (e *DateEntry) syncCaret() {
	if e.CursorColumn == e.caret {
		return
	}
	e.caret = e.CursorColumn
	e.state, _ = segment.Reduce(e.state, segment.Caret{Pos: e.CursorColumn})
}

func (e *DateEntry) dispatch(ev segment.Event) {
	next, eff := segment.Reduce(e.state, ev)
	if eff.Rejected {
		slog.Debug(config.MsgInputRejected,
			config.LogKeyComponent, config.CompWidget,
			config.LogKeyDisplay, e.state.Display(),
		)
		return
	}

	e.state = next
	if eff.Emit {
		e.render()
		e.emit()
	}
	if eff.Emit || eff.MoveCaret {
		e.placeCaret()
	}
}

func (e *DateEntry) render() {
	e.Entry.SetText(e.state.Display())
}

// placeCaret moves the caret to the start of the focused segment once the
// text has been rendered.
func (e *DateEntry) placeCaret() {
	col := e.state.Focused().Start
	e.caret = col

	place := func() {
		e.CursorRow = 0
		e.CursorColumn = col
		e.Refresh()
	}
	if e.Schedule == nil {
		place()
		return
	}
	e.Schedule(place)
}

func (e *DateEntry) result() segment.Result {
	res := e.state.Result()
	if res.Valid && e.ReturnString {
		res.Text = e.tr.FormatDate(res.Date)
	}
	return res
}

func (e *DateEntry) emit() {
	res := e.result()
	slog.Debug(config.MsgDateEmitted,
		config.LogKeyComponent, config.CompWidget,
		config.LogKeyDisplay, e.state.Display(),
		config.LogKeyValid, res.Valid,
	)
	if e.OnDateChanged != nil {
		e.OnDateChanged(res)
	}
}

func (e *DateEntry) emitIfChanged(prev segment.Result) {
	if next := e.state.Result(); next.Valid != prev.Valid || !next.Date.Equal(prev.Date) {
		e.emit()
	}
}

func (e *DateEntry) validate(string) error {
	switch {
	case e.state.Invalid():
		return errors.New(e.message(config.TKeyErrDate, config.FallbackDateInvalid))
	case e.required && e.state.Values.IsEmpty():
		return errors.New(e.message(config.TKeyErrDateReq, config.FallbackDateRequired))
	}
	return nil
}

func (e *DateEntry) message(id, fallback string) string {
	if msg := e.tr.Msg(id); msg != id {
		return msg
	}
	return fallback
}
