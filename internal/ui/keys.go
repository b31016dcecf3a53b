package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Press  key.Binding
	Submit key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Press: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("enter", "submit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// helpKeys adapts the bindings of whatever has focus to help.KeyMap.
type helpKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding  { return h.short }
func (h helpKeys) FullHelp() [][]key.Binding { return h.full }

func (m Model) helpKeys() helpKeys {
	k := m.keys
	var focused []key.Binding
	if p, ok := m.focusedPicker(); ok {
		focused = p.Help()
	} else if m.focus == m.submitIndex() {
		focused = []key.Binding{k.Press, k.Next}
	} else {
		focused = []key.Binding{k.Next}
	}

	global := []key.Binding{k.Submit, k.Help, k.Quit}
	h := helpKeys{short: append(append([]key.Binding{}, focused...), global...)}
	h.full = [][]key.Binding{focused, global}
	if p, ok := m.focusedPicker(); ok && p.IsOpen() {
		h.full = append(h.full, p.Calendar().KeyMap.FullHelp()...)
	}
	return h
}
