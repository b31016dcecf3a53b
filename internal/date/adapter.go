package date

import (
	"regexp"
	"strconv"
)

// Adapter converts between dates and the text shown in a date input.
type Adapter interface {
	Parse(s string) (Date, bool)
	Format(d Date) string
	// Disallowed matches characters that are stripped while typing.
	// A nil pattern allows everything.
	Disallowed() *regexp.Regexp
}

// ISO is the default adapter: YYYY-MM-DD with only digits and dashes allowed.
var ISO Adapter = isoAdapter{}

var isoDisallowed = regexp.MustCompile(`[^0-9-]+`)

// DefaultDisallowed strips everything but digits and the usual date separators.
var DefaultDisallowed = regexp.MustCompile(`[^0-9./-]+`)

type isoAdapter struct{}

func (isoAdapter) Parse(s string) (Date, bool) { return ParseISO(s) }
func (isoAdapter) Format(d Date) string        { return FormatISO(d) }
func (isoAdapter) Disallowed() *regexp.Regexp  { return isoDisallowed }

// PatternAdapter parses with a regexp capturing year, month and day groups and
// formats with a layout such as "dd.mm.yyyy".
type PatternAdapter struct {
	pattern    *regexp.Regexp
	layout     string
	disallowed *regexp.Regexp
}

// NewPatternAdapter returns an adapter for a custom input format. A nil
// disallowed pattern falls back to DefaultDisallowed.
func NewPatternAdapter(pattern *regexp.Regexp, layout string, disallowed *regexp.Regexp) *PatternAdapter {
	if disallowed == nil {
		disallowed = DefaultDisallowed
	}
	return &PatternAdapter{pattern: pattern, layout: layout, disallowed: disallowed}
}

func (a *PatternAdapter) Parse(s string) (Date, bool) {
	if s == "" {
		return Date{}, false
	}
	return ParseFromRegexp(a.pattern, s)
}

func (a *PatternAdapter) Format(d Date) string {
	if d.IsZero() {
		return ""
	}
	return FormatLayout(a.layout, d)
}

func (a *PatternAdapter) Disallowed() *regexp.Regexp { return a.disallowed }

var (
	layoutMonth = regexp.MustCompile(`(?i)mm`)
	layoutYear  = regexp.MustCompile(`(?i)yyyy`)
	layoutDay   = regexp.MustCompile(`(?i)dd`)
)

// FormatLayout replaces the first "mm", "yyyy" and "dd" (any case) in layout
// with the zero padded month, year and day of d.
func FormatLayout(layout string, d Date) string {
	day := pad2(d.day)
	month := pad2(int(d.month))
	year := strconv.Itoa(d.year)

	out := replaceFirst(layoutMonth, layout, month)
	out = replaceFirst(layoutYear, out, year)
	return replaceFirst(layoutDay, out, day)
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
