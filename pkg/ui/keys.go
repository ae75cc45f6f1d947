package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings of the browse mode. It satisfies help.KeyMap.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Activate key.Binding
	Back     key.Binding
	Search   key.Binding
	NextHit  key.Binding
	PrevHit  key.Binding
	GoTo     key.Binding
	Copy     key.Binding
	Details  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap is the vi-flavoured binding set.
var DefaultKeyMap = KeyMap{
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Expand:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "expand")),
	Collapse: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "collapse/parent")),
	Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "follow is_a")),
	Back:     key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search names")),
	NextHit:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
	PrevHit:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),
	GoTo:     key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "go to id")),
	Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
	Details:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "details")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp is shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Back, k.Search, k.GoTo, k.Details, k.Help, k.Quit}
}

// FullHelp is shown by the help overlay, one column per group.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Expand, k.Collapse, k.Activate, k.Back},
		{k.Search, k.NextHit, k.PrevHit, k.GoTo},
		{k.Copy, k.Details, k.Help, k.Quit},
	}
}
