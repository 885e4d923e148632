package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ChooseAM key.Binding
	ChoosePM key.Binding
	Submit   key.Binding
	Print    key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Up       key.Binding
	Down     key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		ChooseAM: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "AM file")),
		ChoosePM: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "PM file")),
		Submit:   key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "submit")),
		Print:    key.NewBinding(key.WithKeys("P", "ctrl+p"), key.WithHelp("P", "print")),
		NextTab:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next view")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev view")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Reset:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear files")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ChooseAM, k.ChoosePM, k.Submit, k.Print, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ChooseAM, k.ChoosePM, k.Submit, k.Print, k.Reset},
		{k.NextTab, k.PrevTab, k.Up, k.Down},
		{k.Help, k.Quit},
	}
}
