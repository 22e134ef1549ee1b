package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/segment"
)

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Paste     key.Binding
	Submit    key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp(config.TUIHelpMoveKeys, config.TUIHelpMove)),
		Right:     key.NewBinding(key.WithKeys("right", "tab")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp(config.TUIHelpStepKeys, config.TUIHelpStep)),
		Down:      key.NewBinding(key.WithKeys("down")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp(config.TUIHelpHomeEnd, config.TUIHelpFirstLast)),
		End:       key.NewBinding(key.WithKeys("end")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", config.TUIHelpErase)),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("delete", config.TUIHelpClear)),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp(config.TUIHelpPasteKeys, config.TUIHelpPaste)),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp(config.TUIHelpSubmitKeys, config.TUIHelpSubmit)),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp(config.TUIHelpQuitKeys, config.TUIHelpQuit)),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.Submit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Up, k.Home},
		{k.Backspace, k.Delete, k.Paste},
		{k.Submit, k.Quit},
	}
}

// segmentKey maps a key press onto a reducer key.
func (k keyMap) segmentKey(msg tea.KeyMsg) (segment.Key, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return segment.KeyLeft, true
	case key.Matches(msg, k.Right):
		return segment.KeyRight, true
	case key.Matches(msg, k.Up):
		return segment.KeyUp, true
	case key.Matches(msg, k.Down):
		return segment.KeyDown, true
	case key.Matches(msg, k.Home):
		return segment.KeyHome, true
	case key.Matches(msg, k.End):
		return segment.KeyEnd, true
	case key.Matches(msg, k.Backspace):
		return segment.KeyBackspace, true
	case key.Matches(msg, k.Delete):
		return segment.KeyDelete, true
	}
	return 0, false
}
