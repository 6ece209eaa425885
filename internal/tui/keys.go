package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Commit     key.Binding
	Ship       key.Binding
	NotToday   key.Binding
	PrevWindow key.Binding
	NextWindow key.Binding
	Edit       key.Binding
	Tab        key.Binding
	PrevTab    key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "commit"),
	),
	Ship: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "shipped"),
	),
	NotToday: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "not today"),
	),
	PrevWindow: key.NewBinding(
		key.WithKeys("[", "left", "h"),
		key.WithHelp("[", "shorter window"),
	),
	NextWindow: key.NewBinding(
		key.WithKeys("]", "right", "l"),
		key.WithHelp("]", "longer window"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit profile"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous view"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
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

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Ship, k.NotToday, k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Commit, k.Ship, k.NotToday},
		{k.PrevWindow, k.NextWindow, k.Edit},
		{k.Tab, k.PrevTab, k.Back, k.Help, k.Quit},
	}
}
