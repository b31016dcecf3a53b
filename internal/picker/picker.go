// Package picker implements a date input with a calendar popover.
//
// The picker owns the popover state and the focus inside it. Events are
// delivered as messages: OpenMsg, CloseMsg, FocusMsg, BlurMsg, ChangeMsg and
// ExitMsg when keyboard focus leaves the picker.
package picker

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mph-llm-experiments/acore"
	"github.com/mph-llm-experiments/adate/internal/calendar"
	"github.com/mph-llm-experiments/adate/internal/date"
	"github.com/mph-llm-experiments/adate/internal/localization"
)

// TransitionDuration matches the popover open animation. Focus moves into the
// calendar only once it has elapsed.
const TransitionDuration = 300 * time.Millisecond

// focusReturnDelay is the extra wait before focus returns to the toggle on close.
const focusReturnDelay = 200 * time.Millisecond

// ErrRequired is returned by Validate for a required picker without a value.
var ErrRequired = errors.New("value is required")

// State is the popover state.
type State int

const (
	Closed State = iota
	Opening
	Open
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Direction biases where the popover opens relative to the input.
type Direction string

const (
	DirectionRight Direction = "right"
	DirectionLeft  Direction = "left"
)

// ParseDirection accepts "left", "right" or "" (right).
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", DirectionRight:
		return DirectionRight, nil
	case DirectionLeft:
		return DirectionLeft, nil
	}
	return "", fmt.Errorf("invalid direction %q: must be left or right", s)
}

// FocusTarget names what Focus moves input focus to.
type FocusTarget int

const (
	FocusInput FocusTarget = iota
	FocusDay
	FocusMonth
)

// Message types
type OpenMsg struct{ ID string }

type CloseMsg struct{ ID string }

type FocusMsg struct{ ID string }

type BlurMsg struct{ ID string }

// ChangeMsg carries the new value as an ISO string and as a date. Both are
// empty when the value was cleared.
type ChangeMsg struct {
	ID    string
	Name  string
	Value string
	Date  date.Date
}

// ExitMsg asks the host to move focus past the picker.
type ExitMsg struct {
	ID      string
	Reverse bool
}

type focusDayMsg struct {
	id  string
	tag int
}

type focusToggleMsg struct {
	id  string
	tag int
}

type area int

const (
	areaNone area = iota
	areaInput
	areaToggle
	areaClose
	areaCalendar
)

// Config is the initial configuration of a picker.
type Config struct {
	Name           string
	Value          string
	Min            string
	Max            string
	FirstDayOfWeek time.Weekday
	IsDateDisabled func(date.Date) bool
	Localization   localization.Text
	Adapter        date.Adapter
	Direction      Direction
	Disabled       bool
	Required       bool
	Today          func() date.Date

	// Transition overrides TransitionDuration.
	Transition time.Duration
}

// Model is a date picker.
type Model struct {
	id   string
	name string

	value    date.Date
	adapter  date.Adapter
	text     localization.Text
	input    textinput.Model
	calendar calendar.Model

	state State
	tag   int
	focus area

	disabled   bool
	required   bool
	direction  Direction
	transition time.Duration

	x, y int

	KeyMap KeyMap
	Styles Styles
}

// New creates a picker from cfg.
func New(cfg Config) Model {
	m := Model{
		id:         fmt.Sprintf("picker-%s", acore.NewID()),
		name:       cfg.Name,
		adapter:    cfg.Adapter,
		text:       cfg.Localization,
		disabled:   cfg.Disabled,
		required:   cfg.Required,
		direction:  cfg.Direction,
		transition: cfg.Transition,
		KeyMap:     DefaultKeyMap(),
		Styles:     DefaultStyles(),
	}
	if m.name == "" {
		m.name = "date"
	}
	if m.adapter == nil {
		m.adapter = date.ISO
	}
	if m.text.DayNames == nil {
		m.text = localization.En
	}
	if m.direction == "" {
		m.direction = DirectionRight
	}
	if m.transition <= 0 {
		m.transition = TransitionDuration
	}

	m.calendar = calendar.New(calendar.Config{
		Min:            cfg.Min,
		Max:            cfg.Max,
		FirstDayOfWeek: cfg.FirstDayOfWeek,
		IsDateDisabled: cfg.IsDateDisabled,
		Localization:   m.text,
		Today:          cfg.Today,
	})

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.CharLimit = inputWidth - 2
	m.input.Cursor.SetMode(cursor.CursorStatic)

	m.SetValue(cfg.Value)
	return m
}

func (m Model) ID() string               { return m.id }
func (m Model) Name() string             { return m.name }
func (m Model) State() State             { return m.state }
func (m Model) Disabled() bool           { return m.disabled }
func (m Model) Required() bool           { return m.required }
func (m Model) Direction() Direction     { return m.direction }
func (m Model) Calendar() calendar.Model { return m.calendar }

// IsOpen reports whether the popover is shown, including while it opens.
func (m Model) IsOpen() bool { return m.state != Closed }

// Focused reports whether any part of the picker holds input focus.
func (m Model) Focused() bool { return m.focus != areaNone }

// InputFocused reports whether the text input has focus. Printable keys are
// text while it does.
func (m Model) InputFocused() bool { return m.focus == areaInput }

// Value returns the ISO value, "" when unset.
func (m Model) Value() string { return date.FormatISO(m.value) }

// ValueDate returns the value, zero when unset.
func (m Model) ValueDate() date.Date { return m.value }

// InputText returns the current text of the input.
func (m Model) InputText() string { return m.input.Value() }

// SetValue replaces the value from an ISO string without emitting ChangeMsg.
// Invalid strings clear it.
func (m *Model) SetValue(s string) {
	d, _ := date.ParseISO(s)
	m.value = d
	m.input.SetValue(m.adapter.Format(d))
	m.calendar.SetValue(s)
}

func (m *Model) SetMin(s string)                         { m.calendar.SetMin(s) }
func (m *Model) SetMax(s string)                         { m.calendar.SetMax(s) }
func (m *Model) SetFirstDayOfWeek(wd time.Weekday)       { m.calendar.SetFirstDayOfWeek(wd) }
func (m *Model) SetDisabledFunc(fn func(date.Date) bool) { m.calendar.SetDisabledFunc(fn) }
func (m *Model) SetRequired(required bool)               { m.required = required }
func (m *Model) SetDirection(d Direction)                { m.direction = d }

// SetDisabled disables the picker. A disabled picker closes, drops focus and
// is left out of form values.
func (m *Model) SetDisabled(disabled bool) tea.Cmd {
	m.disabled = disabled
	if !disabled {
		return nil
	}
	var cmds []tea.Cmd
	if m.IsOpen() {
		cmds = append(cmds, m.Hide(false))
	}
	cmds = append(cmds, m.Blur())
	return tea.Batch(cmds...)
}

// SetLocalization replaces the labels of the picker and its calendar.
func (m *Model) SetLocalization(t localization.Text) {
	m.text = t
	m.calendar.SetLocalization(t)
}

// SetAdapter replaces the input format.
func (m *Model) SetAdapter(a date.Adapter) {
	m.adapter = a
	m.input.SetValue(a.Format(m.value))
}

// SetOrigin places the picker at x, y in host coordinates. Mouse events are
// interpreted against this origin.
func (m *Model) SetOrigin(x, y int) {
	m.x, m.y = x, y
}

// Origin returns the position set by SetOrigin.
func (m Model) Origin() (int, int) { return m.x, m.y }

// FormValue returns the name and ISO value submitted with a form. ok is
// false for a disabled picker.
func (m Model) FormValue() (name, value string, ok bool) {
	if m.disabled {
		return m.name, "", false
	}
	return m.name, m.Value(), true
}

// Validate reports ErrRequired for an enabled, required picker with no value.
func (m Model) Validate() error {
	if m.required && !m.disabled && m.value.IsZero() {
		return fmt.Errorf("%s: %w", m.name, ErrRequired)
	}
	return nil
}

// ButtonLabel is the accessible label of the toggle button.
func (m Model) ButtonLabel() string {
	if m.value.IsZero() {
		return m.text.ButtonLabel
	}
	return fmt.Sprintf("%s, %s %s", m.text.ButtonLabel, m.text.SelectedDateMessage, m.text.LongLabel(m.value))
}

// Announcement describes what currently has focus, for status lines and
// screen readers.
func (m Model) Announcement() string {
	switch m.focus {
	case areaToggle:
		return m.ButtonLabel()
	case areaClose:
		return m.text.CloseLabel
	case areaCalendar:
		switch m.calendar.FocusedRegion() {
		case calendar.RegionMonth:
			return m.text.MonthSelectLabel + ": " + m.text.MonthName(m.calendar.FocusedDay().Month())
		case calendar.RegionYear:
			return fmt.Sprintf("%s: %d", m.text.YearSelectLabel, m.calendar.FocusedDay().Year())
		case calendar.RegionPrev:
			return m.text.PrevMonthLabel
		case calendar.RegionNext:
			return m.text.NextMonthLabel
		}
		return m.text.DayLabel(m.calendar.FocusedDay()) + ", " + m.calendar.Heading()
	}
	return ""
}

// Show opens the popover. Focus moves to the calendar's focused day after the
// open transition.
func (m *Model) Show() tea.Cmd {
	m.state = Opening
	m.tag++

	id, tag := m.id, m.tag
	return tea.Batch(
		emit(OpenMsg{ID: m.id}),
		tea.Tick(m.transition, func(time.Time) tea.Msg {
			return focusDayMsg{id: id, tag: tag}
		}),
	)
}

// Hide closes the popover and cancels a pending focus transfer. With
// moveFocusBack set, focus returns to the toggle once the close transition
// has finished.
func (m *Model) Hide(moveFocusBack bool) tea.Cmd {
	m.state = Closed
	m.tag++

	if m.focus == areaClose || m.focus == areaCalendar {
		m.calendar.Blur()
		m.focus = areaNone
	}

	cmds := []tea.Cmd{emit(CloseMsg{ID: m.id})}
	if moveFocusBack {
		id, tag := m.id, m.tag
		cmds = append(cmds, tea.Tick(m.transition+focusReturnDelay, func(time.Time) tea.Msg {
			return focusToggleMsg{id: id, tag: tag}
		}))
	}
	return tea.Batch(cmds...)
}

// Focus moves input focus to target. The calendar targets only exist while
// the popover is open; asking for them otherwise is a programming error.
func (m *Model) Focus(target FocusTarget) tea.Cmd {
	switch target {
	case FocusInput:
		return m.focusInput()
	case FocusDay, FocusMonth:
		if !m.IsOpen() {
			panic(fmt.Sprintf("picker: focus target %d needs an open popover", target))
		}
		if target == FocusDay {
			return m.focusCalendar(calendar.FocusDay)
		}
		return m.focusCalendar(calendar.FocusMonth)
	}
	panic(fmt.Sprintf("picker: unknown focus target %d", target))
}

// FocusLast focuses the toggle, used when focus enters backwards.
func (m *Model) FocusLast() tea.Cmd {
	cmd := m.leave()
	m.focus = areaToggle
	return cmd
}

// Blur removes focus from every part of the picker.
func (m *Model) Blur() tea.Cmd {
	cmd := m.leave()
	m.focus = areaNone
	return cmd
}

func (m *Model) focusInput() tea.Cmd {
	if m.focus == areaInput {
		return nil
	}
	m.leave()
	m.focus = areaInput
	return tea.Batch(m.input.Focus(), emit(FocusMsg{ID: m.id}))
}

func (m *Model) focusToggle() tea.Cmd {
	cmd := m.leave()
	m.focus = areaToggle
	return cmd
}

func (m *Model) focusClose() tea.Cmd {
	cmd := m.leave()
	m.focus = areaClose
	return cmd
}

func (m *Model) focusCalendar(target calendar.FocusTarget) tea.Cmd {
	cmd := m.leave()
	m.focus = areaCalendar
	m.calendar.Focus(target)
	return cmd
}

// leave releases the focused part, emitting BlurMsg when it was the input.
func (m *Model) leave() tea.Cmd {
	switch m.focus {
	case areaInput:
		m.input.Blur()
		return emit(BlurMsg{ID: m.id})
	case areaCalendar:
		m.calendar.Blur()
	}
	return nil
}

func (m *Model) toggleOpen() tea.Cmd {
	if m.disabled {
		return nil
	}
	if m.IsOpen() {
		return m.Hide(false)
	}
	return m.Show()
}

// commit stores d, typed or picked, and emits ChangeMsg.
func (m *Model) commit(d date.Date) tea.Cmd {
	m.value = d
	m.calendar.SetValue(date.FormatISO(d))
	return emit(ChangeMsg{ID: m.id, Name: m.name, Value: date.FormatISO(d), Date: d})
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
