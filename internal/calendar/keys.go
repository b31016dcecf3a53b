package calendar

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the keyboard surface of the calendar.
type KeyMap struct {
	NextDay    key.Binding
	PrevDay    key.Binding
	NextWeek   key.Binding
	PrevWeek   key.Binding
	WeekStart  key.Binding
	WeekEnd    key.Binding
	NextMonth  key.Binding
	PrevMonth  key.Binding
	NextYear   key.Binding
	PrevYear   key.Binding
	Select     key.Binding
	NextOption key.Binding
	PrevOption key.Binding
	NextRegion key.Binding
	PrevRegion key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("←/→", "day"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "day"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓", "week"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "week"),
		),
		WeekStart: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home/end", "week start/end"),
		),
		WeekEnd: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("home/end", "week start/end"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("pgdown", "]"),
			key.WithHelp("pgup/pgdn", "month"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("pgup", "["),
			key.WithHelp("pgup/pgdn", "month"),
		),
		NextYear: key.NewBinding(
			key.WithKeys("ctrl+pgdown", "}"),
			key.WithHelp("ctrl+pgup/pgdn", "year"),
		),
		PrevYear: key.NewBinding(
			key.WithKeys("ctrl+pgup", "{"),
			key.WithHelp("ctrl+pgup/pgdn", "year"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("enter/space", "select"),
		),
		NextOption: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓", "change"),
		),
		PrevOption: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "change"),
		),
		NextRegion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next control"),
		),
		PrevRegion: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous control"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextDay, k.NextWeek, k.NextMonth, k.Select}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextDay, k.NextWeek, k.WeekStart},
		{k.NextMonth, k.NextYear},
		{k.Select, k.NextRegion, k.PrevRegion},
	}
}
