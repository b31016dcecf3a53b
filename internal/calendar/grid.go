package calendar

import (
	"strconv"
	"time"

	"github.com/mph-llm-experiments/adate/internal/date"
)

// Cell is one day of the month grid.
type Cell struct {
	Date  date.Date `json:"date"`
	Label string    `json:"label"` // "19 April", for assistive output

	Today        bool `json:"today"`
	InMonth      bool `json:"in_month"`
	Focused      bool `json:"focused"`
	Selected     bool `json:"selected"`
	Disabled     bool `json:"disabled"`      // excluded by the disabled predicate
	OutsideRange bool `json:"outside_range"` // before min or after max

	// TabIndex is 0 for the single focusable day and -1 for every other.
	TabIndex int `json:"tab_index"`
}

// WeekdayHeader is a column heading.
type WeekdayHeader struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

// Grid is the view model of the focused month.
type Grid struct {
	Heading  string          `json:"heading"`
	Weekdays []WeekdayHeader `json:"weekdays"`
	Weeks    [][]Cell        `json:"weeks"`

	// Focused is the row-major index of the cell with TabIndex 0.
	Focused int `json:"focused"`
}

// Cell returns the cell at row-major index i.
func (g Grid) Cell(i int) Cell {
	return g.Weeks[i/7][i%7]
}

// Option is an entry of the month or year select.
type Option struct {
	Label    string
	Value    int
	Selected bool
	Disabled bool
}

// Heading is the live label of the focused month, e.g. "April 2020".
func (m Model) Heading() string {
	return m.text.MonthYear(m.focusedDay)
}

// Grid computes the month grid for the focused day.
func (m Model) Grid() Grid {
	today := m.today()
	days := date.ViewOfMonth(m.focusedDay, m.firstDayOfWeek)

	g := Grid{Heading: m.Heading(), Focused: -1}
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(m.firstDayOfWeek) + i) % 7)
		g.Weekdays = append(g.Weekdays, WeekdayHeader{
			Short: m.text.WeekdayShort(wd),
			Long:  m.text.DayName(wd),
		})
	}

	for i, week := range date.Weeks(days) {
		row := make([]Cell, 0, len(week))
		for j, d := range week {
			c := Cell{
				Date:         d,
				Label:        m.text.DayLabel(d),
				Today:        date.IsEqual(d, today),
				InMonth:      date.IsEqualMonth(d, m.focusedDay),
				Focused:      date.IsEqual(d, m.focusedDay),
				Selected:     date.IsEqual(d, m.value),
				Disabled:     m.isDateDisabled(d),
				OutsideRange: !date.InRange(d, m.min, m.max),
				TabIndex:     -1,
			}
			if c.Focused {
				c.TabIndex = 0
				g.Focused = i*7 + j
			}
			row = append(row, c)
		}
		g.Weeks = append(g.Weeks, row)
	}
	return g
}

// MonthOptions lists the months of the focused year. Months entirely outside
// [min, max] are disabled.
func (m Model) MonthOptions() []Option {
	var lo, hi date.Date
	if !m.min.IsZero() {
		lo = date.StartOfMonth(m.min)
	}
	if !m.max.IsZero() {
		hi = date.EndOfMonth(m.max)
	}

	year := m.focusedDay.Year()
	opts := make([]Option, 0, 12)
	for month := time.January; month <= time.December; month++ {
		opts = append(opts, Option{
			Label:    m.text.MonthName(month),
			Value:    int(month),
			Selected: month == m.focusedDay.Month(),
			Disabled: !date.InRange(date.New(year, month, 1), lo, hi),
		})
	}
	return opts
}

// YearOptions lists the selectable years: from min's year, or ten years
// before the selected year, through max's year, or ten years after.
func (m Model) YearOptions() []Option {
	selected := m.value
	if selected.IsZero() {
		selected = m.focusedDay
	}

	minYear := selected.Year() - 10
	if !m.min.IsZero() {
		minYear = m.min.Year()
	}
	maxYear := selected.Year() + 10
	if !m.max.IsZero() {
		maxYear = m.max.Year()
	}

	var opts []Option
	for y := minYear; y <= maxYear; y++ {
		opts = append(opts, Option{
			Label:    strconv.Itoa(y),
			Value:    y,
			Selected: y == m.focusedDay.Year(),
		})
	}
	return opts
}

// PrevMonthDisabled reports whether the focused month is min's month.
func (m Model) PrevMonthDisabled() bool {
	return !m.min.IsZero() && date.IsEqualMonth(m.min, m.focusedDay)
}

// NextMonthDisabled reports whether the focused month is max's month.
func (m Model) NextMonthDisabled() bool {
	return !m.max.IsZero() && date.IsEqualMonth(m.max, m.focusedDay)
}

// nextOption returns the first enabled option after current, or before it
// when reverse is set.
func nextOption(opts []Option, current int, reverse bool) (int, bool) {
	if reverse {
		for i := len(opts) - 1; i >= 0; i-- {
			if opts[i].Value < current && !opts[i].Disabled {
				return opts[i].Value, true
			}
		}
		return 0, false
	}
	for _, o := range opts {
		if o.Value > current && !o.Disabled {
			return o.Value, true
		}
	}
	return 0, false
}
