package calendar

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles keys while focused and mouse events in calendar-local
// coordinates. Hosts translate mouse positions before forwarding.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.KeyMap.NextRegion):
		if !m.FocusNext() {
			m.FocusFirst()
		}
		return m, nil
	case key.Matches(msg, m.KeyMap.PrevRegion):
		if !m.FocusPrev() {
			m.FocusLast()
		}
		return m, nil
	}

	switch m.region {
	case RegionDay:
		return m.handleDayKey(msg)
	case RegionMonth:
		if v, ok := m.optionKey(msg, m.MonthOptions(), int(m.focusedDay.Month())); ok {
			m.SetMonth(time.Month(v))
		}
	case RegionYear:
		if v, ok := m.optionKey(msg, m.YearOptions(), m.focusedDay.Year()); ok {
			m.SetYear(v)
		}
	case RegionPrev:
		if key.Matches(msg, m.KeyMap.Select) {
			m.pressPrev()
		}
	case RegionNext:
		if key.Matches(msg, m.KeyMap.Select) {
			m.pressNext()
		}
	}
	return m, nil
}

func (m Model) handleDayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := m.KeyMap
	switch {
	case key.Matches(msg, k.Select):
		return m, m.SelectDay(m.focusedDay)
	case key.Matches(msg, k.NextDay):
		m.Navigate(NextDay)
	case key.Matches(msg, k.PrevDay):
		m.Navigate(PrevDay)
	case key.Matches(msg, k.NextWeek):
		m.Navigate(NextWeek)
	case key.Matches(msg, k.PrevWeek):
		m.Navigate(PrevWeek)
	case key.Matches(msg, k.WeekStart):
		m.Navigate(StartOfWeek)
	case key.Matches(msg, k.WeekEnd):
		m.Navigate(EndOfWeek)
	case key.Matches(msg, k.NextYear):
		m.Navigate(NextYear)
	case key.Matches(msg, k.PrevYear):
		m.Navigate(PrevYear)
	case key.Matches(msg, k.NextMonth):
		m.Navigate(NextMonth)
	case key.Matches(msg, k.PrevMonth):
		m.Navigate(PrevMonth)
	}
	return m, nil
}

func (m Model) optionKey(msg tea.KeyMsg, opts []Option, current int) (int, bool) {
	switch {
	case key.Matches(msg, m.KeyMap.NextOption):
		return nextOption(opts, current, false)
	case key.Matches(msg, m.KeyMap.PrevOption):
		return nextOption(opts, current, true)
	}
	return 0, false
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	target := m.HitTest(msg.X, msg.Y)
	if target.Kind == TargetNone {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		m.scroll(target, msg.Button == tea.MouseButtonWheelUp)
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
	default:
		return m, nil
	}

	switch target.Kind {
	case TargetPrev:
		if !m.PrevMonthDisabled() {
			m.focusRegion(RegionPrev)
			m.pressPrev()
		}
	case TargetNext:
		if !m.NextMonthDisabled() {
			m.focusRegion(RegionNext)
			m.pressNext()
		}
	case TargetMonth:
		m.focusRegion(RegionMonth)
	case TargetYear:
		m.focusRegion(RegionYear)
	case TargetDay:
		m.focused = true
		m.region = RegionDay
		return m, m.SelectDay(target.Date)
	}
	return m, nil
}

// scroll changes the option under the pointer, or the month anywhere else.
func (m *Model) scroll(target Target, up bool) {
	switch target.Kind {
	case TargetMonth:
		if v, ok := nextOption(m.MonthOptions(), int(m.focusedDay.Month()), up); ok {
			m.SetMonth(time.Month(v))
		}
	case TargetYear:
		if v, ok := nextOption(m.YearOptions(), m.focusedDay.Year(), up); ok {
			m.SetYear(v)
		}
	default:
		if up {
			m.AddMonths(-1)
		} else {
			m.AddMonths(1)
		}
	}
}

func (m *Model) pressPrev() {
	if m.PrevMonthDisabled() {
		return
	}
	m.AddMonths(-1)
	if m.PrevMonthDisabled() {
		m.region = RegionDay
	}
}

func (m *Model) pressNext() {
	if m.NextMonthDisabled() {
		return
	}
	m.AddMonths(1)
	if m.NextMonthDisabled() {
		m.region = RegionDay
	}
}

// Focus gives the calendar input focus on target. Unknown targets are a
// programming error.
func (m *Model) Focus(target FocusTarget) {
	switch target {
	case FocusDay:
		m.focused = true
		m.region = RegionDay
	case FocusMonth:
		m.focusRegion(RegionMonth)
	default:
		panic(fmt.Sprintf("calendar: unknown focus target %d", target))
	}
}

// Blur removes input focus. The focused region is remembered.
func (m *Model) Blur() {
	m.focused = false
}

// Focused reports whether the calendar holds input focus.
func (m Model) Focused() bool { return m.focused }

// FocusedRegion returns the region that has, or last had, input focus.
func (m Model) FocusedRegion() Region { return m.region }

// FocusNext moves focus to the next enabled region. It returns false, without
// moving, when the focused region is the last one.
func (m *Model) FocusNext() bool {
	for r := m.region + 1; r <= RegionDay; r++ {
		if m.regionEnabled(r) {
			m.focusRegion(r)
			return true
		}
	}
	return false
}

// FocusPrev moves focus to the previous enabled region. It returns false,
// without moving, when the focused region is the first one.
func (m *Model) FocusPrev() bool {
	for r := m.region - 1; r >= RegionMonth; r-- {
		if m.regionEnabled(r) {
			m.focusRegion(r)
			return true
		}
	}
	return false
}

// FocusFirst focuses the month select.
func (m *Model) FocusFirst() {
	m.focusRegion(RegionMonth)
}

// FocusLast focuses the focused day of the grid.
func (m *Model) FocusLast() {
	m.focusRegion(RegionDay)
}

func (m *Model) focusRegion(r Region) {
	m.focused = true
	m.region = r
	if r != RegionDay {
		m.DisableActiveFocus()
	}
}

func (m Model) regionEnabled(r Region) bool {
	switch r {
	case RegionPrev:
		return !m.PrevMonthDisabled()
	case RegionNext:
		return !m.NextMonthDisabled()
	}
	return true
}
