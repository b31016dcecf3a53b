package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mph-llm-experiments/adate/internal/calendar"
	"github.com/mph-llm-experiments/adate/internal/config"
	"github.com/mph-llm-experiments/adate/internal/date"
	"github.com/mph-llm-experiments/adate/internal/localization"
	"github.com/mph-llm-experiments/adate/internal/model"
	"github.com/mph-llm-experiments/adate/internal/store"
	"github.com/mph-llm-experiments/adate/internal/ui"
)

// runProgram runs the form full screen with mouse reporting and returns its
// final state.
var runProgram = func(m ui.Model) (ui.Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("TUI error: %w", err)
	}
	return final.(ui.Model), nil
}

func pickCommand(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fresh := fs.Bool("fresh", false, "Start empty instead of restoring the last submission")
	stay := fs.Bool("stay", false, "Keep the form open after submitting")
	only := fs.String("fields", "", "Comma separated field names to show (default all)")
	pattern := fs.String("pattern", "", "Input regexp with year, month and day groups")
	layout := fs.String("layout", "", "Display layout for --pattern, e.g. dd.mm.yyyy")

	return &Command{
		Name:        "pick",
		Usage:       "adate pick [options]",
		Description: "Fill in the configured date fields and print the submitted values",
		Flags:       fs,
		Run: func(cmd *Command, args []string) error {
			fields, err := selectFields(cfg.Fields, *only)
			if err != nil {
				return err
			}
			adapter, err := newAdapter(*pattern, *layout)
			if err != nil {
				return err
			}
			text, err := loadText(cfg)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.StateFile)
			if err != nil {
				return err
			}

			logger, closeLog, err := openLogger(cfg.LogFile)
			if err != nil {
				return err
			}
			defer closeLog()
			logger.Info("starting form", "fields", len(fields), "state", st.Path())

			m, err := ui.New(ui.Options{
				Fields:       fields,
				Localization: text,
				Adapter:      adapter,
				Store:        st,
				Logger:       logger,
				Restore:      !*fresh,
				QuitOnSubmit: !*stay,
				NoColor:      globalFlags.NoColor,
			})
			if err != nil {
				return err
			}

			final, err := runProgram(m)
			if err != nil {
				return err
			}

			sub := final.Submission()
			if sub == nil {
				if !globalFlags.Quiet && !globalFlags.JSON {
					fmt.Fprintln(stdout, "Nothing submitted.")
				}
				return nil
			}
			return printSubmission(*sub)
		},
	}
}

func viewCommand(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	field := fs.String("field", "", "Take value, range and disabled days from a configured field")
	value := fs.String("value", "", "Mark DATE as selected")
	minDate := fs.String("min", "", "Earliest selectable date")
	maxDate := fs.String("max", "", "Latest selectable date")
	firstDay := fs.String("first-day", "", "First day of the week (default from config)")
	today := fs.String("today", "", "Treat DATE as today")

	return &Command{
		Name:        "view",
		Usage:       "adate view [YYYY-MM] [options]",
		Description: "Print the month grid of the selected date, today or the given month",
		Flags:       fs,
		Run: func(cmd *Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("usage: adate view [YYYY-MM]")
			}

			text, err := loadText(cfg)
			if err != nil {
				return err
			}
			wd, err := model.ParseWeekday(cfg.FirstDayOfWeek)
			if err != nil {
				return err
			}
			cc := calendar.Config{FirstDayOfWeek: wd, Localization: text}

			if *field != "" {
				f, ok := findField(cfg.Fields, *field)
				if !ok {
					return fmt.Errorf("unknown field %q", *field)
				}
				disabled, err := f.DisabledFunc()
				if err != nil {
					return err
				}
				cc.Value, cc.Min, cc.Max = f.Value, f.Min, f.Max
				cc.IsDateDisabled = disabled
				if fwd, ok := f.Weekday(); ok {
					cc.FirstDayOfWeek = fwd
				}
			}

			for _, opt := range []struct {
				name string
				val  string
				dst  *string
			}{
				{"value", *value, &cc.Value},
				{"min", *minDate, &cc.Min},
				{"max", *maxDate, &cc.Max},
			} {
				if opt.val == "" {
					continue
				}
				if _, err := parseDateArg(opt.name, opt.val); err != nil {
					return err
				}
				*opt.dst = opt.val
			}

			if *firstDay != "" {
				if cc.FirstDayOfWeek, err = model.ParseWeekday(*firstDay); err != nil {
					return err
				}
			}
			if *today != "" {
				t, err := parseDateArg("today", *today)
				if err != nil {
					return err
				}
				cc.Today = func() date.Date { return t }
			}

			c := calendar.New(cc)
			if len(args) == 1 {
				d, ok := date.ParseISO(args[0])
				if !ok {
					d, ok = date.ParseISO(args[0] + "-01")
				}
				if !ok {
					return fmt.Errorf("invalid month %q: want YYYY-MM", args[0])
				}
				c.SetYear(d.Year())
				c.SetMonth(d.Month())
			}

			g := c.Grid()
			if globalFlags.JSON {
				data, err := json.MarshalIndent(g, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Fprintln(stdout, string(data))
				return nil
			}

			fmt.Fprint(stdout, renderMonth(g))
			if !globalFlags.Quiet {
				fmt.Fprintln(stdout)
				fmt.Fprintln(stdout, "[d] selected  d* today  d- unavailable  (d) other month")
			}
			return nil
		},
	}
}

// parseResult is the JSON form of a parsed date.
type parseResult struct {
	Input     string    `json:"input"`
	Date      date.Date `json:"date"`
	Weekday   string    `json:"weekday"`
	Label     string    `json:"label"`
	Formatted string    `json:"formatted"`
	Locale    string    `json:"locale"`
}

func parseCommand(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	pattern := fs.String("pattern", "", "Input regexp with year, month and day groups (default ISO)")
	layout := fs.String("layout", "", "Output layout for --pattern, e.g. dd.mm.yyyy")

	return &Command{
		Name:        "parse",
		Usage:       "adate parse <text> [options]",
		Description: "Parse a typed date, the way a date field reads its input",
		Flags:       fs,
		Run: func(cmd *Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: adate parse <text>")
			}

			adapter, err := newAdapter(*pattern, *layout)
			if err != nil {
				return err
			}
			text, err := loadText(cfg)
			if err != nil {
				return err
			}

			d, ok := adapter.Parse(args[0])
			if !ok {
				return fmt.Errorf("invalid date: %q", args[0])
			}

			res := parseResult{
				Input:     args[0],
				Date:      d,
				Weekday:   text.DayName(d.Weekday()),
				Label:     text.LongLabel(d),
				Formatted: adapter.Format(d),
				Locale:    text.Tag().String(),
			}

			if globalFlags.JSON {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Fprintln(stdout, string(data))
				return nil
			}

			if globalFlags.Quiet {
				fmt.Fprintln(stdout, date.FormatISO(d))
				return nil
			}
			fmt.Fprintf(stdout, "%s  %s, %s\n", date.FormatISO(d), res.Weekday, res.Label)
			return nil
		},
	}
}

var offsetPattern = regexp.MustCompile(`^([+-]?\d+)([dwmy])$`)

func shiftCommand() *Command {
	fs := flag.NewFlagSet("shift", flag.ContinueOnError)
	clamp := fs.Bool("clamp", false, "Keep the day inside the target month instead of rolling over")

	return &Command{
		Name:  "shift",
		Usage: "adate shift <date> <offset>... [options]",
		Description: `Move a date by offsets such as +3d, -2w, 1m or -1y

Offsets apply left to right. Month and year offsets roll over into the
next month (2021-01-31 +1m is 2021-03-03) unless --clamp is given.`,
		Flags: fs,
		Run: func(cmd *Command, args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("usage: adate shift <date> <offset>...")
			}

			d, err := parseDateArg("date", args[0])
			if err != nil {
				return err
			}
			for _, offset := range args[1:] {
				if d, err = shiftDate(d, offset, *clamp); err != nil {
					return err
				}
			}

			if globalFlags.JSON {
				data, err := json.MarshalIndent(map[string]any{
					"from":    args[0],
					"offsets": args[1:],
					"date":    d,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Fprintln(stdout, string(data))
				return nil
			}

			fmt.Fprintln(stdout, date.FormatISO(d))
			return nil
		},
	}
}

// shiftDate applies one offset such as "-2w" to d.
func shiftDate(d date.Date, offset string, clamp bool) (date.Date, error) {
	match := offsetPattern.FindStringSubmatch(offset)
	if match == nil {
		return date.Date{}, fmt.Errorf("invalid offset %q: want a number followed by d, w, m or y", offset)
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid offset %q: %w", offset, err)
	}

	switch match[2] {
	case "d":
		return d.AddDays(n), nil
	case "w":
		return d.AddDays(7 * n), nil
	case "m":
		if clamp {
			target := date.New(d.Year(), d.Month()+time.Month(n), 1)
			return date.ClampToMonth(d, target.Year(), target.Month()), nil
		}
		return d.AddMonths(n), nil
	default:
		if clamp {
			return date.ClampToMonth(d, d.Year()+n, d.Month()), nil
		}
		return d.AddYears(n), nil
	}
}

func clampCommand() *Command {
	fs := flag.NewFlagSet("clamp", flag.ContinueOnError)
	minDate := fs.String("min", "", "Earliest allowed date")
	maxDate := fs.String("max", "", "Latest allowed date")

	return &Command{
		Name:        "clamp",
		Usage:       "adate clamp <date> [--min DATE] [--max DATE]",
		Description: "Clamp a date into [min, max]; an empty bound imposes no limit",
		Flags:       fs,
		Run: func(cmd *Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: adate clamp <date> [--min DATE] [--max DATE]")
			}

			d, err := parseDateArg("date", args[0])
			if err != nil {
				return err
			}
			lo, err := parseOptionalDate("min", *minDate)
			if err != nil {
				return err
			}
			hi, err := parseOptionalDate("max", *maxDate)
			if err != nil {
				return err
			}
			if !lo.IsZero() && !hi.IsZero() && hi.Before(lo) {
				return errors.New("max is before min")
			}

			inRange := date.InRange(d, lo, hi)
			clamped := date.Clamp(d, lo, hi)

			if globalFlags.JSON {
				data, err := json.MarshalIndent(map[string]any{
					"input":    d,
					"min":      lo,
					"max":      hi,
					"date":     clamped,
					"in_range": inRange,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				fmt.Fprintln(stdout, string(data))
				return nil
			}

			if inRange || globalFlags.Quiet {
				fmt.Fprintln(stdout, date.FormatISO(clamped))
				return nil
			}
			fmt.Fprintf(stdout, "%s  (clamped from %s)\n", date.FormatISO(clamped), date.FormatISO(d))
			return nil
		},
	}
}

func lastCommand(cfg *config.Config) *Command {
	return &Command{
		Name:        "last",
		Usage:       "adate last",
		Description: "Show the values of the last submission",
		Run: func(cmd *Command, args []string) error {
			st, err := store.Open(cfg.StateFile)
			if err != nil {
				return err
			}

			if st.Last == nil {
				if globalFlags.JSON {
					fmt.Fprintln(stdout, "null")
				} else if !globalFlags.Quiet {
					fmt.Fprintln(stdout, "No submissions yet.")
				}
				return nil
			}

			if !globalFlags.JSON && !globalFlags.Quiet {
				fmt.Fprintf(stdout, "Submitted %s (%d total)\n\n",
					st.Last.SubmittedAt.Local().Format("2006-01-02 15:04"), st.Submissions)
			}
			return printSubmission(*st.Last)
		},
	}
}

func printSubmission(sub model.Submission) error {
	if globalFlags.JSON {
		data, err := json.MarshalIndent(sub, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	for _, name := range sub.Names() {
		fmt.Fprintf(stdout, "%s=%s\n", name, sub.Values[name])
	}
	return nil
}

// renderMonth draws g as plain text, one week per line.
func renderMonth(g calendar.Grid) string {
	var b strings.Builder
	b.WriteString(g.Heading)
	b.WriteByte('\n')

	var row strings.Builder
	for _, wd := range g.Weekdays {
		fmt.Fprintf(&row, "%3s ", wd.Short)
	}
	b.WriteString(strings.TrimRight(row.String(), " "))
	b.WriteByte('\n')

	for _, week := range g.Weeks {
		row.Reset()
		for _, c := range week {
			row.WriteString(cellText(c))
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func cellText(c calendar.Cell) string {
	n := fmt.Sprintf("%2d", c.Date.Day())
	switch {
	case c.Selected:
		return "[" + n + "]"
	case c.Disabled || c.OutsideRange:
		return " " + n + "-"
	case c.Today:
		return " " + n + "*"
	case !c.InMonth:
		return "(" + n + ")"
	}
	return " " + n + " "
}

func selectFields(fields []model.Field, only string) ([]model.Field, error) {
	if only == "" {
		return fields, nil
	}

	var selected []model.Field
	for _, name := range strings.Split(only, ",") {
		name = strings.TrimSpace(name)
		f, ok := findField(fields, name)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		selected = append(selected, f)
	}
	return selected, nil
}

func findField(fields []model.Field, name string) (model.Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return model.Field{}, false
}

// newAdapter returns the ISO adapter, or a pattern adapter when both pattern
// and layout are given.
func newAdapter(pattern, layout string) (date.Adapter, error) {
	if pattern == "" && layout == "" {
		return date.ISO, nil
	}
	if pattern == "" || layout == "" {
		return nil, errors.New("--pattern and --layout must be used together")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	for _, group := range []string{"year", "month", "day"} {
		if re.SubexpIndex(group) < 0 {
			return nil, fmt.Errorf("pattern must capture a %q group", group)
		}
	}
	return date.NewPatternAdapter(re, layout, date.DefaultDisallowed), nil
}

func loadText(cfg *config.Config) (localization.Text, error) {
	if cfg.LocaleFile == "" {
		return localization.En, nil
	}
	return localization.Load(cfg.LocaleFile)
}

func parseDateArg(name, s string) (date.Date, error) {
	d, ok := date.ParseISO(s)
	if !ok {
		return date.Date{}, fmt.Errorf("invalid %s %q: want YYYY-MM-DD", name, s)
	}
	return d, nil
}

func parseOptionalDate(name, s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return parseDateArg(name, s)
}
