// Package tui renders the segmented date field in a terminal with Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/locale"
	"github.com/tartampluch/go-dateentry/internal/segment"
)

// ErrCanceled is returned by Run when the user leaves without confirming.
var ErrCanceled = errors.New(config.ErrInputCanceled)

var (
	labelStyle       = lipgloss.NewStyle().Bold(true)
	fieldStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(config.TUIColorAccent)).Padding(0, 1)
	invalidStyle     = fieldStyle.BorderForeground(lipgloss.Color(config.TUIColorError))
	focusStyle       = lipgloss.NewStyle().Reverse(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(config.TUIColorMuted))
	separatorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(config.TUIColorMuted))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(config.TUIColorSuccess))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(config.TUIColorError))
)

// DateInput is a Bubble Tea model for one segmented date field.
type DateInput struct {
	// OnDateChanged is called on every content change.
	OnDateChanged func(segment.Result)

	// Paste reads the clipboard for ctrl+v. Defaults to clipboard.ReadAll.
	Paste func() (string, error)

	state        segment.State
	tr           *locale.Translator
	keys         keyMap
	help         help.Model
	width        int
	required     bool
	disabled     bool
	returnString bool

	status    string
	statusErr bool
	done      bool
	canceled  bool
}

// New returns a DateInput configured from o.
func New(o config.Options) DateInput {
	m := DateInput{
		Paste:        clipboard.ReadAll,
		state:        segment.New(o.DateFormat, o.Separator).WithBounds(o.Min, o.Max),
		tr:           locale.New(o.Locale),
		keys:         defaultKeyMap(),
		help:         help.New(),
		required:     o.Required,
		disabled:     o.Disabled,
		returnString: o.ReturnString,
	}
	m.state, _ = segment.Reduce(m.state, segment.SetValue{Value: o.Value})
	return m
}

// Init implements tea.Model.
func (m DateInput) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DateInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DateInput) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.canceled = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case m.disabled:
		return m, nil
	case msg.Paste:
		return m.dispatch(segment.Input{Raw: strings.TrimSpace(string(msg.Runes))}), nil
	case key.Matches(msg, m.keys.Paste):
		text, err := m.Paste()
		if err != nil {
			slog.Warn(config.ErrClipboard,
				config.LogKeyComponent, config.CompTUI,
				config.LogKeyError, err,
			)
			m.setError(config.ErrClipboard)
			return m, nil
		}
		return m.dispatch(segment.Input{Raw: strings.TrimSpace(text)}), nil
	}

	if k, ok := m.keys.segmentKey(msg); ok {
		return m.dispatch(segment.KeyPress{Key: k}), nil
	}
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		for _, r := range msg.Runes {
			m = m.dispatch(segment.Rune{R: r})
		}
	}
	return m, nil
}

func (m DateInput) submit() (tea.Model, tea.Cmd) {
	switch {
	case m.state.Invalid():
		m.setError(m.message(config.TKeyErrDate, config.FallbackDateInvalid))
		return m, nil
	case m.required && !m.state.Result().Valid:
		m.setError(m.message(config.TKeyErrDateReq, config.FallbackDateRequired))
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m DateInput) dispatch(ev segment.Event) DateInput {
	next, eff := segment.Reduce(m.state, ev)
	if eff.Rejected {
		slog.Debug(config.MsgInputRejected,
			config.LogKeyComponent, config.CompTUI,
			config.LogKeyDisplay, m.state.Display(),
		)
		return m
	}

	m.state = next
	if eff.Emit {
		res := m.Result()
		m.status, m.statusErr = "", false
		slog.Debug(config.MsgDateEmitted,
			config.LogKeyComponent, config.CompTUI,
			config.LogKeyDisplay, m.state.Display(),
			config.LogKeyValid, res.Valid,
		)
		if m.OnDateChanged != nil {
			m.OnDateChanged(res)
		}
	}
	return m
}

func (m *DateInput) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

func (m DateInput) message(id, fallback string) string {
	if msg := m.tr.Msg(id); msg != id {
		return msg
	}
	return fallback
}

// Result is the composed date, with Text set when string output is enabled.
func (m DateInput) Result() segment.Result {
	res := m.state.Result()
	if res.Valid && m.returnString {
		res.Text = m.tr.FormatDate(res.Date)
	}
	return res
}

// State exposes the segment state.
func (m DateInput) State() segment.State {
	return m.state
}

// Done reports that the user confirmed the field.
func (m DateInput) Done() bool {
	return m.done
}

// Canceled reports that the user left without confirming.
func (m DateInput) Canceled() bool {
	return m.canceled
}

// AccessibleLabel names the field and the format it expects.
func (m DateInput) AccessibleLabel() string {
	layout := m.state.Format.Layout
	label := m.tr.Format(config.TKeyDateLabel, map[string]any{"Format": layout})
	if label == config.TKeyDateLabel {
		return fmt.Sprintf(config.FallbackDateLabel, layout)
	}
	return label
}

// View implements tea.Model.
func (m DateInput) View() string {
	var b strings.Builder

	label := m.AccessibleLabel()
	if m.required {
		label += " *"
	}
	b.WriteString(labelStyle.Render(label))
	b.WriteString("\n")

	style := fieldStyle
	if m.state.Invalid() {
		style = invalidStyle
	}
	b.WriteString(style.Render(m.renderSegments()))
	b.WriteString("\n")

	if status := m.statusLine(); status != "" {
		if m.width > 0 {
			status = wordwrap.String(status, m.width)
		}
		if m.statusErr {
			b.WriteString(errorStyle.Render(status))
		} else {
			b.WriteString(statusStyle.Render(status))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m DateInput) renderSegments() string {
	display := []rune(m.state.Display())
	sep := separatorStyle.Render(m.state.Format.Separator)

	parts := make([]string, 0, len(m.state.Format.Segments))
	for i, s := range m.state.Format.Segments {
		text := string(display[s.Start:s.End])
		switch {
		case i == m.state.Focus && !m.disabled:
			text = focusStyle.Render(text)
		case i >= len(m.state.Values) || m.state.Values[i] == "":
			text = placeholderStyle.Render(text)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, sep)
}

func (m DateInput) statusLine() string {
	if m.status != "" {
		return m.status
	}
	res := m.Result()
	if !res.Valid {
		if m.state.Invalid() {
			return m.message(config.TKeyStatusNoDate, config.MsgTUINoDate)
		}
		return ""
	}
	text := res.Text
	if text == "" {
		text = m.tr.FormatDate(res.Date)
	}
	return m.tr.Format(config.TKeyStatusPicked, map[string]any{"Date": text})
}

// Run shows a DateInput until the user confirms or cancels. ctx cancellation
// stops the program.
func Run(ctx context.Context, o config.Options, opts ...tea.ProgramOption) (segment.Result, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(New(o), opts...).Run()
	if err != nil {
		return segment.Result{}, fmt.Errorf("%s: %w", config.ErrTUIFailed, err)
	}

	m, ok := final.(DateInput)
	if !ok || m.Canceled() {
		return segment.Result{}, ErrCanceled
	}
	return m.Result(), nil
}
