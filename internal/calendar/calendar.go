// Package calendar implements a month grid for picking a single day.
//
// The model owns the focused day, the selected value and whether focus moves
// were keyboard driven. Rendering is derived on every View from that state;
// Grid exposes the same data as a view model for other renderers.
package calendar

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mph-llm-experiments/acore"
	"github.com/mph-llm-experiments/adate/internal/date"
	"github.com/mph-llm-experiments/adate/internal/localization"
)

// Region is a focusable part of the calendar, in tab order.
type Region int

const (
	RegionMonth Region = iota
	RegionYear
	RegionPrev
	RegionNext
	RegionDay
)

// FocusTarget names what Focus moves input focus to.
type FocusTarget int

const (
	FocusDay FocusTarget = iota
	FocusMonth
)

// Action is a keyboard navigation step.
type Action int

const (
	NextDay Action = iota
	PrevDay
	NextWeek
	PrevWeek
	StartOfWeek
	EndOfWeek
	NextMonth
	PrevMonth
	NextYear
	PrevYear
)

// ChangeMsg is emitted when a day is committed as the value.
type ChangeMsg struct {
	ID    string
	Value string
	Date  date.Date
}

// Config is the initial configuration of a calendar. Value, Min and Max are
// ISO dates; empty or malformed strings mean "unset".
type Config struct {
	Value          string
	Min            string
	Max            string
	FirstDayOfWeek time.Weekday
	IsDateDisabled func(date.Date) bool
	Localization   localization.Text
	Today          func() date.Date
}

// Model is the calendar state.
type Model struct {
	id string

	focusedDay  date.Date
	activeFocus bool
	value       date.Date

	min, max       date.Date
	firstDayOfWeek time.Weekday
	isDateDisabled func(date.Date) bool
	text           localization.Text
	today          func() date.Date

	region  Region
	focused bool

	KeyMap KeyMap
	Styles Styles
}

// New creates a calendar from cfg. FirstDayOfWeek defaults to Sunday, the zero
// time.Weekday; a nil predicate disables nothing and a nil Today uses the clock.
func New(cfg Config) Model {
	m := Model{
		id:             fmt.Sprintf("calendar-%s", acore.NewID()),
		isDateDisabled: cfg.IsDateDisabled,
		text:           cfg.Localization,
		today:          cfg.Today,
		region:         RegionDay,
		KeyMap:         DefaultKeyMap(),
		Styles:         DefaultStyles(),
	}
	if m.isDateDisabled == nil {
		m.isDateDisabled = func(date.Date) bool { return false }
	}
	if m.text.DayNames == nil {
		m.text = localization.En
	}
	if m.today == nil {
		m.today = date.Today
	}
	m.SetFirstDayOfWeek(cfg.FirstDayOfWeek)
	m.min, _ = date.ParseISO(cfg.Min)
	m.max, _ = date.ParseISO(cfg.Max)
	m.SetValue(cfg.Value)
	return m
}

// ID identifies the calendar in the messages it emits.
func (m Model) ID() string { return m.id }

// Value returns the selected day as an ISO string, "" when unset.
func (m Model) Value() string { return date.FormatISO(m.value) }

// ValueDate returns the selected day, zero when unset.
func (m Model) ValueDate() date.Date { return m.value }

// FocusedDay returns the roving focus target of the grid.
func (m Model) FocusedDay() date.Date { return m.focusedDay }

// ActiveFocus reports whether the last focus move came from the keyboard.
func (m Model) ActiveFocus() bool { return m.activeFocus }

func (m Model) Min() date.Date                  { return m.min }
func (m Model) Max() date.Date                  { return m.max }
func (m Model) FirstDayOfWeek() time.Weekday    { return m.firstDayOfWeek }
func (m Model) Localization() localization.Text { return m.text }

// SetValue replaces the value from an ISO string. A malformed or empty string
// clears the value and focuses today. No ChangeMsg is emitted.
func (m *Model) SetValue(s string) {
	d, ok := date.ParseISO(s)
	if !ok {
		m.value = date.Date{}
		m.setFocusedDay(m.today())
		return
	}
	m.value = d
	m.setFocusedDay(d)
}

// SetMin sets the earliest selectable day. The focused day is re-clamped.
func (m *Model) SetMin(s string) {
	m.min, _ = date.ParseISO(s)
	m.setFocusedDay(m.focusedDay)
}

// SetMax sets the latest selectable day. The focused day is re-clamped.
func (m *Model) SetMax(s string) {
	m.max, _ = date.ParseISO(s)
	m.setFocusedDay(m.focusedDay)
}

// SetFirstDayOfWeek sets the first grid column, 0 for Sunday. Values outside
// 0-6 wrap around.
func (m *Model) SetFirstDayOfWeek(wd time.Weekday) {
	m.firstDayOfWeek = time.Weekday((int(wd)%7 + 7) % 7)
}

// SetDisabledFunc replaces the predicate of days that cannot be selected.
func (m *Model) SetDisabledFunc(fn func(date.Date) bool) {
	if fn == nil {
		fn = func(date.Date) bool { return false }
	}
	m.isDateDisabled = fn
}

func (m *Model) SetLocalization(t localization.Text) {
	m.text = t
}

// IsDateDisabled reports whether the predicate excludes d.
func (m Model) IsDateDisabled(d date.Date) bool {
	return m.isDateDisabled(d)
}

// Navigate applies a keyboard step. The result is clamped into [min, max]
// and focus is marked active so the focused cell takes input focus.
func (m *Model) Navigate(a Action) {
	switch a {
	case NextDay:
		m.setFocusedDay(m.focusedDay.AddDays(1))
	case PrevDay:
		m.setFocusedDay(m.focusedDay.AddDays(-1))
	case NextWeek:
		m.setFocusedDay(m.focusedDay.AddDays(7))
	case PrevWeek:
		m.setFocusedDay(m.focusedDay.AddDays(-7))
	case StartOfWeek:
		m.setFocusedDay(date.StartOfWeek(m.focusedDay, m.firstDayOfWeek))
	case EndOfWeek:
		m.setFocusedDay(date.EndOfWeek(m.focusedDay, m.firstDayOfWeek))
	case NextMonth:
		m.AddMonths(1)
	case PrevMonth:
		m.AddMonths(-1)
	case NextYear:
		m.AddYears(1)
	case PrevYear:
		m.AddYears(-1)
	default:
		return
	}
	m.activeFocus = true
	m.region = RegionDay
}

// AddMonths moves the focused day by n months, keeping the day inside the
// target month before applying min and max.
func (m *Model) AddMonths(n int) {
	m.SetMonth(m.focusedDay.Month() + time.Month(n))
}

// AddYears moves the focused day by n years.
func (m *Model) AddYears(n int) {
	m.SetYear(m.focusedDay.Year() + n)
}

// SetMonth focuses the same day in month of the focused year. Months outside
// 1-12 carry into the neighbouring years.
func (m *Model) SetMonth(month time.Month) {
	target := date.StartOfMonth(m.focusedDay).SetMonth(month)
	m.setFocusedDay(date.ClampToMonth(m.focusedDay, target.Year(), target.Month()))
}

// SetYear focuses the same day and month in year.
func (m *Model) SetYear(year int) {
	m.setFocusedDay(date.ClampToMonth(m.focusedDay, year, m.focusedDay.Month()))
}

// SelectDay commits d as the value when it is in range and not disabled and
// returns a command emitting ChangeMsg. Otherwise only the focused day moves
// and the returned command is nil.
func (m *Model) SelectDay(d date.Date) tea.Cmd {
	if !date.InRange(d, m.min, m.max) || m.isDateDisabled(d) {
		m.setFocusedDay(d)
		return nil
	}

	m.value = d
	m.setFocusedDay(d)
	msg := ChangeMsg{ID: m.id, Value: date.FormatISO(d), Date: d}
	return func() tea.Msg { return msg }
}

// ClearValue removes the value and emits ChangeMsg with an empty value.
func (m *Model) ClearValue() tea.Cmd {
	m.value = date.Date{}
	msg := ChangeMsg{ID: m.id}
	return func() tea.Msg { return msg }
}

// DisableActiveFocus marks the next focus moves as not keyboard driven, used
// when focus enters from outside the grid.
func (m *Model) DisableActiveFocus() {
	m.activeFocus = false
}

func (m *Model) setFocusedDay(d date.Date) {
	m.focusedDay = date.Clamp(d, m.min, m.max)
}
