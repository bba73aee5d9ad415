package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/coderain/internal/overlay"
)

// Printable keys type into the overlay message, so every binding here is a
// non-printable key.
type keyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Reset key.Binding
	Debug key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab/click", "faster")),
		Prev:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "slower")),
		Reset: key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5/shake", "reset")),
		Debug: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "fps")),
		Help:  key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Reset},
		{k.Debug, k.Help, k.Quit},
	}
}

// messageKey maps a key press onto the overlay message editor.
func messageKey(msg tea.KeyMsg) (overlay.Key, []rune) {
	switch msg.Type {
	case tea.KeyRunes:
		return overlay.KeyRune, msg.Runes
	case tea.KeySpace:
		return overlay.KeyRune, []rune{' '}
	case tea.KeyBackspace:
		return overlay.KeyBackspace, nil
	case tea.KeyDelete:
		return overlay.KeyDelete, nil
	case tea.KeyEsc:
		return overlay.KeyEscape, nil
	}
	return overlay.KeyOther, nil
}
