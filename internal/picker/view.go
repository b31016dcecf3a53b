package picker

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mph-llm-experiments/adate/internal/calendar"
)

// Layout in terminal cells. The input and toggle share the first row, the
// popover opens on the row below. Its border and padding take two cells on
// each side, the first content row holds the heading and the close button.
const (
	inputWidth   = 12
	toggleWidth  = 3
	FieldWidth   = inputWidth + 1 + toggleWidth
	PopoverWidth = calendar.Width + 4
	closeWidth   = 3
)

// Part is a piece of the rendered picker.
type Part int

const (
	PartNone Part = iota
	PartInput
	PartToggle
	PartPopover
	PartClose
	PartCalendar
)

// Path lists the parts under a point, outermost first.
type Path []Part

// Contains reports whether part is on the path.
func (p Path) Contains(part Part) bool {
	for _, q := range p {
		if q == part {
			return true
		}
	}
	return false
}

// Target returns the innermost part, PartNone for an empty path.
func (p Path) Target() Part {
	if len(p) == 0 {
		return PartNone
	}
	return p[len(p)-1]
}

// Styles used by View.
type Styles struct {
	Input          lipgloss.Style
	InputFocused   lipgloss.Style
	InputDisabled  lipgloss.Style
	Placeholder    lipgloss.Style
	Toggle         lipgloss.Style
	ToggleFocused  lipgloss.Style
	ToggleDisabled lipgloss.Style
	Popover        lipgloss.Style
	Heading        lipgloss.Style
	Close          lipgloss.Style
	CloseFocused   lipgloss.Style
}

func DefaultStyles() Styles {
	accent := lipgloss.Color("39")
	muted := lipgloss.Color("241")

	return Styles{
		Input:          lipgloss.NewStyle().Background(lipgloss.Color("236")),
		InputFocused:   lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(accent),
		InputDisabled:  lipgloss.NewStyle().Foreground(muted),
		Placeholder:    lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(muted),
		Toggle:         lipgloss.NewStyle(),
		ToggleFocused:  lipgloss.NewStyle().Reverse(true),
		ToggleDisabled: lipgloss.NewStyle().Foreground(muted),
		Popover:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		Heading:        lipgloss.NewStyle().Bold(true),
		Close:          lipgloss.NewStyle(),
		CloseFocused:   lipgloss.NewStyle().Reverse(true),
	}
}

// Height is the number of rows View renders.
func (m Model) Height() int {
	if !m.IsOpen() {
		return 1
	}
	return 1 + m.popoverHeight()
}

func (m Model) popoverHeight() int {
	return 3 + m.calendar.Height()
}

// popoverX is the left edge of the popover. Opening to the left aligns its
// right edge with the toggle, without crossing the left edge of the screen.
func (m Model) popoverX() int {
	if m.direction == DirectionLeft {
		return max(m.x+FieldWidth-PopoverWidth, 0)
	}
	return m.x
}

func (m Model) calendarOrigin() (int, int) {
	return m.popoverX() + 2, m.y + 3
}

// View renders the picker at its origin column. Lines are padded from column
// zero so the host can stack them as they are.
func (m Model) View() string {
	row := strings.Repeat(" ", m.x) + m.inputView() + " " + m.toggleView()
	if !m.IsOpen() {
		return row
	}

	pad := strings.Repeat(" ", m.popoverX())
	lines := strings.Split(m.popoverView(), "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return row + "\n" + strings.Join(lines, "\n")
}

func (m Model) inputView() string {
	style := m.Styles.Input
	switch {
	case m.disabled:
		style = m.Styles.InputDisabled
	case m.focus == areaInput:
		style = m.Styles.InputFocused
	}
	content := m.input.View()
	if m.input.Value() == "" && m.focus != areaInput {
		content = m.text.Placeholder
		if !m.disabled {
			style = m.Styles.Placeholder
		}
	}
	return style.Width(inputWidth).MaxWidth(inputWidth).Render(content)
}

func (m Model) toggleView() string {
	style := m.Styles.Toggle
	switch {
	case m.disabled:
		style = m.Styles.ToggleDisabled
	case m.focus == areaToggle:
		style = m.Styles.ToggleFocused
	}
	return style.Render(" ▦ ")
}

func (m Model) popoverView() string {
	closeStyle := m.Styles.Close
	if m.focus == areaClose {
		closeStyle = m.Styles.CloseFocused
	}
	heading := m.Styles.Heading.Render(fit(m.text.CalendarHeading, calendar.Width-closeWidth)) +
		closeStyle.Render(" ✕ ")
	return m.Styles.Popover.Render(heading + "\n" + m.calendar.View())
}

// HitTest returns the parts under x, y in host coordinates.
func (m Model) HitTest(x, y int) Path {
	if y == m.y {
		switch {
		case x >= m.x && x < m.x+inputWidth:
			return Path{PartInput}
		case x >= m.x+inputWidth+1 && x < m.x+FieldWidth:
			return Path{PartToggle}
		}
		return nil
	}
	if !m.IsOpen() {
		return nil
	}

	px, py := m.popoverX(), m.y+1
	if x < px || x >= px+PopoverWidth || y < py || y >= py+m.popoverHeight() {
		return nil
	}

	cx, cy := m.calendarOrigin()
	switch {
	case y == cy-1 && x >= cx+calendar.Width-closeWidth && x < cx+calendar.Width:
		return Path{PartPopover, PartClose}
	case y >= cy && y < cy+m.calendar.Height() && x >= cx && x < cx+calendar.Width:
		return Path{PartPopover, PartCalendar}
	}
	return Path{PartPopover}
}

func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
