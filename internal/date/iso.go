package date

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var isoPattern = regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})$`)

// Create builds a date from its parts. Each part must be positive, month in
// 1-12 and day in 1-31; days past the end of the month (30 February) are
// rejected rather than rolled over.
func Create(year, month, day int) (Date, bool) {
	if year <= 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, false
	}

	d := New(year, time.Month(month), day)
	if d.year != year || int(d.month) != month || d.day != day {
		return Date{}, false
	}
	return d, true
}

// ParseISO parses a YYYY-MM-DD string. Any other layout, including surrounding
// whitespace, is rejected.
func ParseISO(s string) (Date, bool) {
	if s == "" {
		return Date{}, false
	}
	return ParseFromRegexp(isoPattern, s)
}

// ParseFromRegexp parses s with a pattern that captures the named groups
// year, month and day.
func ParseFromRegexp(pattern *regexp.Regexp, s string) (Date, bool) {
	match := pattern.FindStringSubmatch(s)
	if match == nil {
		return Date{}, false
	}

	parts := make(map[string]int, 3)
	for _, name := range []string{"year", "month", "day"} {
		idx := pattern.SubexpIndex(name)
		if idx < 0 {
			return Date{}, false
		}
		n, err := strconv.Atoi(match[idx])
		if err != nil {
			return Date{}, false
		}
		parts[name] = n
	}

	return Create(parts["year"], parts["month"], parts["day"])
}

// FormatISO prints d as YYYY-MM-DD, or "" for the zero date.
func FormatISO(d Date) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// MustParseISO is ParseISO for literals known to be valid.
func MustParseISO(s string) Date {
	d, ok := ParseISO(s)
	if !ok {
		panic(fmt.Sprintf("date: invalid ISO date %q", s))
	}
	return d
}

// MarshalText implements encoding.TextMarshaler with the ISO form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(FormatISO(d)), nil
}

// UnmarshalText accepts an ISO date or an empty string for the zero date.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	v, ok := ParseISO(string(b))
	if !ok {
		return fmt.Errorf("date: invalid ISO date %q", b)
	}
	*d = v
	return nil
}
