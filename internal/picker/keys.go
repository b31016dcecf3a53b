package picker

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mph-llm-experiments/adate/internal/calendar"
)

// KeyMap holds the picker's own bindings. Keys inside the calendar are
// handled by the calendar's KeyMap.
type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Close    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("enter", "open/close"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Activate, k.Close}}
}

// Help returns the bindings that apply to whatever has focus, for a help bar.
func (m Model) Help() []key.Binding {
	switch m.focus {
	case areaInput:
		return []key.Binding{m.KeyMap.Next, m.KeyMap.Prev}
	case areaToggle:
		return []key.Binding{m.KeyMap.Activate, m.KeyMap.Next, m.KeyMap.Prev}
	case areaClose:
		return []key.Binding{m.KeyMap.Activate, m.KeyMap.Close, m.KeyMap.Next}
	case areaCalendar:
		ck := m.calendar.KeyMap
		if m.calendar.FocusedRegion() == calendar.RegionDay {
			return []key.Binding{ck.NextDay, ck.NextWeek, ck.NextMonth, ck.NextYear, ck.Select, m.KeyMap.Close}
		}
		return []key.Binding{ck.NextOption, ck.Select, m.KeyMap.Next, m.KeyMap.Close}
	}
	return nil
}
