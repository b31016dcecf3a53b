package localization

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mph-llm-experiments/adate/internal/date"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Text holds every user-visible label of the calendar and the date picker.
type Text struct {
	PrevMonthLabel      string   `yaml:"prev_month_label"`
	NextMonthLabel      string   `yaml:"next_month_label"`
	MonthSelectLabel    string   `yaml:"month_select_label"`
	YearSelectLabel     string   `yaml:"year_select_label"`
	CalendarHeading     string   `yaml:"calendar_heading"`
	ButtonLabel         string   `yaml:"button_label"`
	Placeholder         string   `yaml:"placeholder"`
	SelectedDateMessage string   `yaml:"selected_date_message"`
	CloseLabel          string   `yaml:"close_label"`
	DayNames            []string `yaml:"day_names"` // Sunday first
	MonthNames          []string `yaml:"month_names"`
	MonthNamesShort     []string `yaml:"month_names_short"`
	Locale              string   `yaml:"locale"`
}

// En is the default English text.
var En = Text{
	PrevMonthLabel:      "Previous month",
	NextMonthLabel:      "Next month",
	MonthSelectLabel:    "Month",
	YearSelectLabel:     "Year",
	CalendarHeading:     "Choose a date",
	ButtonLabel:         "Choose date",
	Placeholder:         "YYYY-MM-DD",
	SelectedDateMessage: "Selected date is",
	CloseLabel:          "Close window",
	DayNames:            []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	MonthNames: []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	MonthNamesShort: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	Locale:          "en-GB",
}

// Load reads a YAML localization file. Keys missing from the file keep their
// English defaults.
func Load(path string) (Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Text{}, fmt.Errorf("error reading localization file: %w", err)
	}

	text := En.clone()
	if err := yaml.Unmarshal(data, &text); err != nil {
		return Text{}, fmt.Errorf("error parsing localization file %s: %w", path, err)
	}
	if err := text.Validate(); err != nil {
		return Text{}, fmt.Errorf("invalid localization file %s: %w", path, err)
	}
	if text.Locale != "" {
		text.Locale = text.Tag().String()
	}
	return text, nil
}

// Validate checks the locale is a BCP 47 tag and the name tables have the
// right number of entries.
func (t Text) Validate() error {
	if t.Locale != "" {
		if _, err := language.Parse(t.Locale); err != nil {
			return fmt.Errorf("invalid locale %q: %w", t.Locale, err)
		}
	}
	if len(t.DayNames) != 7 {
		return fmt.Errorf("day_names must have 7 entries, got %d", len(t.DayNames))
	}
	if len(t.MonthNames) != 12 {
		return fmt.Errorf("month_names must have 12 entries, got %d", len(t.MonthNames))
	}
	if len(t.MonthNamesShort) != 12 {
		return fmt.Errorf("month_names_short must have 12 entries, got %d", len(t.MonthNamesShort))
	}
	return nil
}

// Tag returns the parsed locale, or language.Und when it is unset or invalid.
func (t Text) Tag() language.Tag {
	tag, err := language.Parse(t.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

func (t Text) clone() Text {
	c := t
	c.DayNames = append([]string(nil), t.DayNames...)
	c.MonthNames = append([]string(nil), t.MonthNames...)
	c.MonthNamesShort = append([]string(nil), t.MonthNamesShort...)
	return c
}

// MonthName returns the full name of m.
func (t Text) MonthName(m time.Month) string {
	return t.MonthNames[m-1]
}

// MonthNameShort returns the abbreviated name of m.
func (t Text) MonthNameShort(m time.Month) string {
	return t.MonthNamesShort[m-1]
}

// DayName returns the full name of wd.
func (t Text) DayName(wd time.Weekday) string {
	return t.DayNames[wd]
}

// WeekdayShort returns the first two characters of the day name, as shown in
// the calendar column headers.
func (t Text) WeekdayShort(wd time.Weekday) string {
	r := []rune(t.DayNames[wd])
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}

// DayLabel formats d as "19 April".
func (t Text) DayLabel(d date.Date) string {
	return strconv.Itoa(d.Day()) + " " + t.MonthName(d.Month())
}

// LongLabel formats d as "19 April 2020".
func (t Text) LongLabel(d date.Date) string {
	return t.DayLabel(d) + " " + strconv.Itoa(d.Year())
}

// MonthYear formats d as "April 2020".
func (t Text) MonthYear(d date.Date) string {
	return t.MonthName(d.Month()) + " " + strconv.Itoa(d.Year())
}
