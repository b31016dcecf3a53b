package picker

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mph-llm-experiments/adate/internal/calendar"
	"github.com/mph-llm-experiments/adate/internal/date"
)

// Update handles keys while the picker has focus, every mouse event in host
// coordinates, and its own timers and calendar messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case focusDayMsg:
		if msg.id != m.id || msg.tag != m.tag || m.state != Opening {
			return m, nil
		}
		m.state = Open
		return m, m.focusCalendar(calendar.FocusDay)

	case focusToggleMsg:
		if msg.id != m.id || msg.tag != m.tag || m.state != Closed {
			return m, nil
		}
		return m, m.focusToggle()

	case calendar.ChangeMsg:
		if msg.ID != m.calendar.ID() {
			return m, nil
		}
		m.input.SetValue(m.adapter.Format(msg.Date))
		return m, tea.Batch(m.commit(msg.Date), m.Hide(true))

	case tea.KeyMsg:
		if m.focus == areaNone || m.disabled {
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := m.KeyMap

	if (m.focus == areaClose || m.focus == areaCalendar) && key.Matches(msg, k.Close) {
		return m, m.Hide(true)
	}

	switch m.focus {
	case areaInput:
		switch {
		case key.Matches(msg, k.Next):
			return m, m.focusToggle()
		case key.Matches(msg, k.Prev):
			return m, m.exit(true)
		}
		return m.handleInput(msg)

	case areaToggle:
		switch {
		case key.Matches(msg, k.Activate):
			return m, m.toggleOpen()
		case key.Matches(msg, k.Next):
			if m.IsOpen() {
				return m, m.focusClose()
			}
			return m, m.exit(false)
		case key.Matches(msg, k.Prev):
			return m, m.focusInput()
		}

	case areaClose:
		switch {
		case key.Matches(msg, k.Activate):
			return m, m.Hide(true)
		case key.Matches(msg, k.Next):
			m.focus = areaCalendar
			m.calendar.FocusFirst()
		case key.Matches(msg, k.Prev):
			m.focus = areaCalendar
			m.calendar.FocusLast()
		}

	case areaCalendar:
		switch {
		case key.Matches(msg, k.Next):
			if !m.calendar.FocusNext() {
				return m, m.focusClose()
			}
			return m, nil
		case key.Matches(msg, k.Prev):
			if !m.calendar.FocusPrev() {
				return m, m.focusClose()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.calendar, cmd = m.calendar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// exit drops focus and asks the host to move past the picker.
func (m *Model) exit(reverse bool) tea.Cmd {
	return tea.Batch(m.Blur(), emit(ExitMsg{ID: m.id, Reverse: reverse}))
}

// handleInput edits the text field. Characters the adapter disallows are
// stripped, keeping the cursor where it was relative to the surviving text.
// A changed text that parses, or is empty, becomes the new value.
func (m Model) handleInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if re := m.adapter.Disallowed(); re != nil {
		v, pos := CleanValue(m.input.Value(), m.input.Position(), re)
		if v != m.input.Value() {
			m.input.SetValue(v)
		}
		m.input.SetCursor(pos)
	}

	text := m.input.Value()
	if text == before {
		return m, cmd
	}
	if text == "" {
		return m, tea.Batch(cmd, m.commit(date.Date{}))
	}
	if d, ok := m.adapter.Parse(text); ok {
		return m, tea.Batch(cmd, m.commit(d))
	}
	return m, cmd
}

// handleMouse receives every mouse event of the host. A press outside both the
// popover and the toggle closes an open popover without moving focus back.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	path := m.HitTest(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if m.IsOpen() && path.Target() == PartCalendar {
			var cmd tea.Cmd
			m.calendar, cmd = m.calendar.Update(m.toCalendar(msg))
			return m, cmd
		}
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
	default:
		return m, nil
	}

	var cmds []tea.Cmd
	if m.IsOpen() && !path.Contains(PartPopover) && !path.Contains(PartToggle) {
		cmds = append(cmds, m.Hide(false))
	}

	switch path.Target() {
	case PartNone:
		if m.focus != areaNone {
			cmds = append(cmds, m.Blur())
		}
	case PartInput:
		if !m.disabled {
			cmds = append(cmds, m.focusInput())
			m.input.SetCursor(msg.X - m.x)
		}
	case PartToggle:
		if !m.disabled {
			cmds = append(cmds, m.focusToggle(), m.toggleOpen())
		}
	case PartClose:
		cmds = append(cmds, m.Hide(true))
	case PartCalendar:
		if m.state == Opening {
			m.state = Open
		}
		if m.focus != areaCalendar {
			cmds = append(cmds, m.leave())
			m.focus = areaCalendar
		}
		var cmd tea.Cmd
		m.calendar, cmd = m.calendar.Update(m.toCalendar(msg))
		if !m.calendar.Focused() {
			m.calendar.Focus(calendar.FocusDay)
		}
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) toCalendar(msg tea.MouseMsg) tea.MouseMsg {
	x, y := m.calendarOrigin()
	msg.X -= x
	msg.Y -= y
	return msg
}
