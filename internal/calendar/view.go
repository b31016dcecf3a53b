package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mph-llm-experiments/adate/internal/date"
)

// Layout of the rendered calendar, in terminal cells. Row 0 holds the
// previous button, the month and year selects and the next button, row 1 the
// weekday names and the rows after it one week each.
const (
	CellWidth = 4
	Width     = 7 * CellWidth

	headerRows = 2

	prevStart, prevEnd   = 0, 3
	monthStart, monthEnd = 4, 15
	yearStart, yearEnd   = 16, 22
	nextStart, nextEnd   = 25, 28
)

// TargetKind is what a point of the rendered calendar belongs to.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetPrev
	TargetNext
	TargetMonth
	TargetYear
	TargetDay
)

// Target is the result of a hit test.
type Target struct {
	Kind TargetKind
	Date date.Date
}

// Styles used by View.
type Styles struct {
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	Select         lipgloss.Style
	Focus          lipgloss.Style
	Weekday        lipgloss.Style
	Day            lipgloss.Style
	Outside        lipgloss.Style
	Today          lipgloss.Style
	Selected       lipgloss.Style
	Disabled       lipgloss.Style
	OutOfRange     lipgloss.Style
	FocusedDay     lipgloss.Style
	Cursor         lipgloss.Style
}

// DefaultStyles returns the default look.
func DefaultStyles() Styles {
	accent := lipgloss.Color("39")
	muted := lipgloss.Color("241")

	return Styles{
		Button:         lipgloss.NewStyle().Bold(true),
		ButtonDisabled: lipgloss.NewStyle().Foreground(muted),
		Select:         lipgloss.NewStyle().Bold(true),
		Focus:          lipgloss.NewStyle().Reverse(true),
		Weekday:        lipgloss.NewStyle().Foreground(muted),
		Day:            lipgloss.NewStyle(),
		Outside:        lipgloss.NewStyle().Foreground(muted),
		Today:          lipgloss.NewStyle().Bold(true).Foreground(accent),
		Selected:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(accent),
		Disabled:       lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		OutOfRange:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		FocusedDay:     lipgloss.NewStyle().Underline(true),
		Cursor:         lipgloss.NewStyle().Reverse(true).Bold(true),
	}
}

// Height is the number of rows View renders.
func (m Model) Height() int {
	return headerRows + len(date.ViewOfMonth(m.focusedDay, m.firstDayOfWeek))/7
}

// View renders the calendar.
func (m Model) View() string {
	g := m.Grid()

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteByte('\n')

	for _, wd := range g.Weekdays {
		b.WriteString(m.Styles.Weekday.Render(fmt.Sprintf("%3s", wd.Short)))
		b.WriteByte(' ')
	}

	for _, week := range g.Weeks {
		b.WriteByte('\n')
		for _, c := range week {
			b.WriteString(m.cellStyle(c).Render(fmt.Sprintf("%3d", c.Date.Day())))
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func (m Model) headerView() string {
	s := m.Styles

	button := func(label string, region Region, disabled bool) string {
		style := s.Button
		switch {
		case disabled:
			style = s.ButtonDisabled
		case m.focused && m.region == region:
			style = s.Focus
		}
		return style.Render(" " + label + " ")
	}
	sel := func(label string, region Region, width int) string {
		style := s.Select
		if m.focused && m.region == region {
			style = s.Focus
		}
		return style.Render(fit(label+" ▾", width))
	}

	return button("‹", RegionPrev, m.PrevMonthDisabled()) +
		" " +
		sel(m.text.MonthName(m.focusedDay.Month()), RegionMonth, monthEnd-monthStart) +
		" " +
		sel(fmt.Sprint(m.focusedDay.Year()), RegionYear, yearEnd-yearStart) +
		strings.Repeat(" ", nextStart-yearEnd) +
		button("›", RegionNext, m.NextMonthDisabled())
}

func (m Model) cellStyle(c Cell) lipgloss.Style {
	s := m.Styles
	switch {
	case c.Focused && m.focused && m.region == RegionDay:
		return s.Cursor
	case c.Selected:
		return s.Selected
	case c.OutsideRange:
		return s.OutOfRange
	case c.Disabled:
		return s.Disabled
	case c.Focused:
		return s.FocusedDay
	case c.Today:
		return s.Today
	case !c.InMonth:
		return s.Outside
	}
	return s.Day
}

// HitTest maps calendar-local coordinates to the control or day under them.
func (m Model) HitTest(x, y int) Target {
	if x < 0 || x >= Width || y < 0 {
		return Target{}
	}

	switch y {
	case 0:
		switch {
		case x >= prevStart && x < prevEnd:
			return Target{Kind: TargetPrev}
		case x >= monthStart && x < monthEnd:
			return Target{Kind: TargetMonth}
		case x >= yearStart && x < yearEnd:
			return Target{Kind: TargetYear}
		case x >= nextStart && x < nextEnd:
			return Target{Kind: TargetNext}
		}
		return Target{}
	case 1:
		return Target{}
	}

	days := date.ViewOfMonth(m.focusedDay, m.firstDayOfWeek)
	i := (y-headerRows)*7 + x/CellWidth
	if i >= len(days) {
		return Target{}
	}
	return Target{Kind: TargetDay, Date: days[i]}
}

// fit truncates or pads s to exactly width runes.
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
