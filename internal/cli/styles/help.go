package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// PlaygroundKeyMap defines keybindings for the frame playground.
type PlaygroundKeyMap struct {
	Next      key.Binding
	New       key.Binding
	Detach    key.Binding
	Attach    key.Binding
	Maximize  key.Binding
	DockLeft  key.Binding
	DockRight key.Binding
	Undock    key.Binding
	Throw     key.Binding
	Move      key.Binding
	Grow      key.Binding
	Shrink    key.Binding
	Close     key.Binding
	Table     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k PlaygroundKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.New, k.Detach, k.Maximize, k.Throw, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k PlaygroundKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.New, k.Close},
		{k.Detach, k.Attach, k.Maximize},
		{k.DockLeft, k.DockRight, k.Undock},
		{k.Move, k.Throw, k.Grow, k.Shrink},
		{k.Table, k.Help, k.Quit},
	}
}

// DefaultPlaygroundKeyMap returns the default playground keybindings.
func DefaultPlaygroundKeyMap() PlaygroundKeyMap {
	return PlaygroundKeyMap{
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next frame")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new frame")),
		Detach:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "detach")),
		Attach:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attach")),
		Maximize:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "maximize/restore")),
		DockLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "dock left")),
		DockRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "dock right")),
		Undock:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undock")),
		Throw:     key.NewBinding(key.WithKeys("H", "J", "K", "L"), key.WithHelp("HJKL", "throw")),
		Move:      key.NewBinding(key.WithKeys("h", "j", "k", "l", "left", "down", "up", "right"), key.WithHelp("hjkl", "move")),
		Grow:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "grow")),
		Shrink:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shrink")),
		Close:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close")),
		Table:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "frame table")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// NewHelp creates a themed help model.
func NewHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = theme.HelpKey
	h.Styles.ShortDesc = theme.HelpDesc
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = theme.HelpKey
	h.Styles.FullDesc = theme.HelpDesc
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
