package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the table keymap.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Open        key.Binding
	ColPrev     key.Binding
	ColNext     key.Binding
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Sort        key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Search      key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Bigger      key.Binding
	Smaller     key.Binding
	Mode        key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "details"),
		),
		ColPrev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev column"),
		),
		ColNext: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "scroll left"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "scroll right"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort column"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("t", "tab"),
			key.WithHelp("t", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("T", "shift+tab"),
			key.WithHelp("T", "prev tab"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev page"),
		),
		Bigger: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more per page"),
		),
		Smaller: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer per page"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "infinite/pages"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Sort, k.NextTab, k.Search, k.Mode, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Open},
		{k.ColPrev, k.ColNext, k.ScrollLeft, k.ScrollRight, k.Sort, k.Search},
		{k.NextTab, k.PrevTab, k.NextPage, k.PrevPage, k.Bigger, k.Smaller},
		{k.Mode, k.Refresh, k.Help, k.Quit},
	}
}

// detailKeyMap is active while a task is open.
type detailKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Status []key.Binding
	Close  key.Binding
}

func newDetailKeyMap() detailKeyMap {
	return detailKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "previous task"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "next task"),
		),
		Status: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "open")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "in progress")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "closed")),
		},
		Close: key.NewBinding(
			key.WithKeys("esc", "q", "backspace"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k detailKeyMap) ShortHelp() []key.Binding {
	keys := []key.Binding{k.Prev, k.Next}
	keys = append(keys, k.Status...)
	return append(keys, k.Close)
}

// FullHelp implements help.KeyMap.
func (k detailKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// dialogKeyMap is active in the search bar and the status dialog.
type dialogKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Cycle   key.Binding
}

func newDialogKeyMap() dialogKeyMap {
	return dialogKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "search column"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k dialogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel, k.Cycle}
}

// FullHelp implements help.KeyMap.
func (k dialogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
