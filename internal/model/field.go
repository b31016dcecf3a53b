package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mph-llm-experiments/adate/internal/date"
)

// Field describes one date field of the form
type Field struct {
	Name             string   `toml:"name" json:"name"`
	Label            string   `toml:"label" json:"label,omitempty"`
	Value            string   `toml:"value" json:"value,omitempty"`
	Min              string   `toml:"min" json:"min,omitempty"`
	Max              string   `toml:"max" json:"max,omitempty"`
	FirstDayOfWeek   string   `toml:"first_day_of_week" json:"first_day_of_week,omitempty"`
	Direction        string   `toml:"direction" json:"direction,omitempty"`
	Disabled         bool     `toml:"disabled" json:"disabled,omitempty"`
	Required         bool     `toml:"required" json:"required,omitempty"`
	DisabledWeekdays []string `toml:"disabled_weekdays" json:"disabled_weekdays,omitempty"`
	DisabledDates    []string `toml:"disabled_dates" json:"disabled_dates,omitempty"`
}

// DisplayLabel returns the label, falling back to the name
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Validate checks the field can be turned into a picker
func (f Field) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("field name is required")
	}

	var lo, hi date.Date
	for _, v := range []struct {
		key   string
		value string
		dst   *date.Date
	}{
		{"value", f.Value, nil},
		{"min", f.Min, &lo},
		{"max", f.Max, &hi},
	} {
		if v.value == "" {
			continue
		}
		d, ok := date.ParseISO(v.value)
		if !ok {
			return fmt.Errorf("field %s: %s %q is not a YYYY-MM-DD date", f.Name, v.key, v.value)
		}
		if v.dst != nil {
			*v.dst = d
		}
	}
	if !lo.IsZero() && !hi.IsZero() && hi.Before(lo) {
		return fmt.Errorf("field %s: max %s is before min %s", f.Name, f.Max, f.Min)
	}

	if f.FirstDayOfWeek != "" {
		if _, err := ParseWeekday(f.FirstDayOfWeek); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	switch f.Direction {
	case "", "left", "right":
	default:
		return fmt.Errorf("field %s: invalid direction %q: must be left or right", f.Name, f.Direction)
	}

	if _, err := f.DisabledFunc(); err != nil {
		return err
	}
	return nil
}

// Weekday returns the configured first day of the week, if any
func (f Field) Weekday() (time.Weekday, bool) {
	if f.FirstDayOfWeek == "" {
		return 0, false
	}
	wd, err := ParseWeekday(f.FirstDayOfWeek)
	if err != nil {
		return 0, false
	}
	return wd, true
}

// DisabledFunc builds the predicate for days that cannot be picked. It
// returns nil when the field disables nothing.
func (f Field) DisabledFunc() (func(date.Date) bool, error) {
	if len(f.DisabledWeekdays) == 0 && len(f.DisabledDates) == 0 {
		return nil, nil
	}

	var weekdays [7]bool
	for _, s := range f.DisabledWeekdays {
		wd, err := ParseWeekday(s)
		if err != nil {
			return nil, fmt.Errorf("field %s: disabled_weekdays: %w", f.Name, err)
		}
		weekdays[wd] = true
	}

	dates := make(map[date.Date]bool, len(f.DisabledDates))
	for _, s := range f.DisabledDates {
		d, ok := date.ParseISO(s)
		if !ok {
			return nil, fmt.Errorf("field %s: disabled_dates: %q is not a YYYY-MM-DD date", f.Name, s)
		}
		dates[d] = true
	}

	return func(d date.Date) bool {
		return weekdays[d.Weekday()] || dates[d]
	}, nil
}

// ParseWeekday accepts English day names, three letter abbreviations and the
// numbers 0 (Sunday) to 6.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("invalid weekday %q: must be 0-6", s)
		}
		return time.Weekday(n), nil
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if s == name || s == name[:3] {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}
