package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start  key.Binding
	Pause  key.Binding
	Toggle key.Binding
	Reset  key.Binding
	Work   key.Binding
	Short  key.Binding
	Long   key.Binding
	Edit   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Save   key.Binding
	Cancel key.Binding
	Yes    key.Binding
	No     key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Toggle: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "start/pause")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Work:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "work")),
		Short:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "short break")),
		Long:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "long break")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "settings")),
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:    key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "switch")),
		No:     key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "keep running")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Work, k.Short, k.Long, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Toggle, k.Reset},
		{k.Work, k.Short, k.Long, k.Edit},
		{k.Help, k.Quit},
	}
}

// confirmKeys is shown while a mode switch waits for an answer.
type confirmKeys struct{ keyMap }

func (k confirmKeys) ShortHelp() []key.Binding { return []key.Binding{k.Yes, k.No} }

func (k confirmKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// formKeys is shown while the settings form is open.
type formKeys struct{ keyMap }

func (k formKeys) ShortHelp() []key.Binding { return []key.Binding{k.Next, k.Prev, k.Save, k.Cancel} }

func (k formKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
