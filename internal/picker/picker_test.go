package picker

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mph-llm-experiments/adate/internal/calendar"
	"github.com/mph-llm-experiments/adate/internal/date"
	"github.com/mph-llm-experiments/adate/internal/localization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = date.MustParseISO("2020-01-15")

func newTestPicker(cfg Config) Model {
	if cfg.Today == nil {
		cfg.Today = func() date.Date { return testToday }
	}
	if cfg.Transition == 0 {
		cfg.Transition = time.Millisecond
	}
	if cfg.FirstDayOfWeek == 0 {
		cfg.FirstDayOfWeek = time.Monday
	}
	return New(cfg)
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runeMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// settle feeds the messages produced by cmd back into m until nothing is
// left, returning every message seen along the way.
func settle(m Model, cmd tea.Cmd) (Model, []tea.Msg) {
	var seen []tea.Msg
	pending := collect(cmd)
	for len(pending) > 0 {
		msg := pending[0]
		pending = pending[1:]
		seen = append(seen, msg)

		var next tea.Cmd
		m, next = m.Update(msg)
		pending = append(pending, collect(next)...)
	}
	return m, seen
}

func send(m Model, msg tea.Msg) (Model, []tea.Msg) {
	m, cmd := m.Update(msg)
	return settle(m, cmd)
}

func typeText(m Model, s string) (Model, []tea.Msg) {
	var all []tea.Msg
	for _, r := range s {
		var msgs []tea.Msg
		m, msgs = send(m, runeMsg(r))
		all = append(all, msgs...)
	}
	return m, all
}

func changes(msgs []tea.Msg) []ChangeMsg {
	var out []ChangeMsg
	for _, msg := range msgs {
		if c, ok := msg.(ChangeMsg); ok {
			out = append(out, c)
		}
	}
	return out
}

func has[T any](msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(T); ok {
			return true
		}
	}
	return false
}

func open(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.Show()
	m, _ = settle(m, cmd)
	require.Equal(t, Open, m.State())
	require.True(t, m.Calendar().Focused())
	return m
}

// dayPos returns the host coordinates of d in an open picker.
func dayPos(t *testing.T, m Model, d date.Date) (int, int) {
	t.Helper()
	cx, cy := m.calendarOrigin()
	cal := m.Calendar()
	for i, day := range date.ViewOfMonth(cal.FocusedDay(), cal.FirstDayOfWeek()) {
		if day == d {
			return cx + (i%7)*calendar.CellWidth + 1, cy + 2 + i/7
		}
	}
	t.Fatalf("%s is not in the grid", d)
	return 0, 0
}

func TestNewDefaults(t *testing.T) {
	m := newTestPicker(Config{})
	assert.Equal(t, Closed, m.State())
	assert.Equal(t, "", m.Value())
	assert.Equal(t, "date", m.Name())
	assert.Equal(t, DirectionRight, m.Direction())
	assert.False(t, m.Focused())
	assert.Equal(t, 1, m.Height())
	assert.Contains(t, m.View(), "YYYY-MM-DD")

	name, value, ok := m.FormValue()
	assert.Equal(t, "date", name)
	assert.Equal(t, "", value)
	assert.True(t, ok)
}

func TestNewWithValue(t *testing.T) {
	m := newTestPicker(Config{Name: "start", Value: "2020-04-19"})
	assert.Equal(t, "2020-04-19", m.Value())
	assert.Equal(t, "2020-04-19", m.InputText())
	assert.Equal(t, "2020-04-19", m.Calendar().Value())
	assert.Equal(t, date.MustParseISO("2020-04-19"), m.Calendar().FocusedDay())
}

func TestSetValueInvalidClears(t *testing.T) {
	m := newTestPicker(Config{Value: "2020-04-19"})
	m.SetValue("2020-02-30")
	assert.Equal(t, "", m.Value())
	assert.Equal(t, "", m.InputText())
	assert.Equal(t, "", m.Calendar().Value())
}

func TestShowFocusesDayAfterTransition(t *testing.T) {
	m := newTestPicker(Config{})

	msgs := collect(m.Show())
	assert.Equal(t, Opening, m.State())
	assert.True(t, m.IsOpen())
	assert.True(t, has[OpenMsg](msgs))
	assert.False(t, m.Calendar().Focused())

	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	assert.Equal(t, Open, m.State())
	assert.True(t, m.Calendar().Focused())
	assert.Equal(t, calendar.RegionDay, m.Calendar().FocusedRegion())
	assert.Equal(t, testToday, m.Calendar().FocusedDay())
}

func TestHideCancelsPendingFocusTransfer(t *testing.T) {
	m := newTestPicker(Config{})

	msgs := collect(m.Show())
	hide := collect(m.Hide(false))
	assert.True(t, has[CloseMsg](hide))
	assert.False(t, has[focusToggleMsg](hide))

	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	assert.Equal(t, Closed, m.State())
	assert.False(t, m.Calendar().Focused())
	assert.False(t, m.Focused())
}

func TestHideMovesFocusBackToToggle(t *testing.T) {
	m := open(t, newTestPicker(Config{}))

	cmd := m.Hide(true)
	m, msgs := settle(m, cmd)
	assert.True(t, has[CloseMsg](msgs))
	assert.Equal(t, Closed, m.State())
	assert.Equal(t, areaToggle, m.focus)
	assert.False(t, m.Calendar().Focused())
}

func TestShowCancelsFocusReturn(t *testing.T) {
	m := open(t, newTestPicker(Config{}))

	back := collect(m.Hide(true))
	m.Show()
	for _, msg := range back {
		m, _ = m.Update(msg)
	}
	assert.Equal(t, Opening, m.State())
	assert.NotEqual(t, areaToggle, m.focus)
}

func TestKeyboardSelection(t *testing.T) {
	m := open(t, newTestPicker(Config{}))

	for i := 0; i < 3; i++ {
		m, _ = send(m, keyMsg(tea.KeyPgDown))
	}
	for i := 0; i < 4; i++ {
		m, _ = send(m, keyMsg(tea.KeyRight))
	}
	require.Equal(t, date.MustParseISO("2020-04-19"), m.Calendar().FocusedDay())

	m, msgs := send(m, keyMsg(tea.KeyEnter))
	got := changes(msgs)
	require.Len(t, got, 1)
	assert.Equal(t, "2020-04-19", got[0].Value)
	assert.Equal(t, m.ID(), got[0].ID)
	assert.Equal(t, "date", got[0].Name)

	assert.Equal(t, "2020-04-19", m.Value())
	assert.Equal(t, "2020-04-19", m.InputText())
	assert.Equal(t, Closed, m.State())
	assert.True(t, has[CloseMsg](msgs))
	assert.Equal(t, areaToggle, m.focus)
}

func TestClickDaySelects(t *testing.T) {
	m := newTestPicker(Config{})
	m.SetOrigin(4, 2)
	m = open(t, m)

	x, y := dayPos(t, m, date.MustParseISO("2020-01-19"))
	m, msgs := send(m, click(x, y))

	got := changes(msgs)
	require.Len(t, got, 1)
	assert.Equal(t, "2020-01-19", got[0].Value)
	assert.Equal(t, Closed, m.State())
}

func TestClickDayPosition(t *testing.T) {
	m := open(t, newTestPicker(Config{}))

	// January 2020 starts on a Wednesday, so a Monday grid opens on
	// December 30 and the 19th is the last cell of the third row.
	x, y := dayPos(t, m, date.MustParseISO("2020-01-19"))
	assert.Equal(t, 2+6*calendar.CellWidth+1, x)
	assert.Equal(t, 7, y)
	assert.Equal(t, Path{PartPopover, PartCalendar}, m.HitTest(x, y))
}

func TestClickDisabledDayEmitsNothing(t *testing.T) {
	m := newTestPicker(Config{
		IsDateDisabled: func(d date.Date) bool { return d.Weekday() == time.Sunday },
	})
	m = open(t, m)

	x, y := dayPos(t, m, date.MustParseISO("2020-01-19"))
	m, msgs := send(m, click(x, y))
	assert.Empty(t, changes(msgs))
	assert.Equal(t, Open, m.State())
	assert.Equal(t, "", m.Value())
}

func TestClickOutsideCloses(t *testing.T) {
	m := open(t, newTestPicker(Config{}))

	m, msgs := send(m, click(60, 30))
	assert.Equal(t, Closed, m.State())
	assert.True(t, has[CloseMsg](msgs))
	assert.False(t, has[focusToggleMsg](msgs))
	assert.False(t, m.Focused())
}

func TestClickInsidePopoverKeepsOpen(t *testing.T) {
	m := open(t, newTestPicker(Config{}))

	// heading text, left of the close button
	m, msgs := send(m, click(3, 2))
	assert.Equal(t, Open, m.State())
	assert.False(t, has[CloseMsg](msgs))
}

func TestClickCloseButton(t *testing.T) {
	m := open(t, newTestPicker(Config{}))

	cx, cy := m.calendarOrigin()
	require.Equal(t, Path{PartPopover, PartClose}, m.HitTest(cx+calendar.Width-2, cy-1))

	m, msgs := send(m, click(cx+calendar.Width-2, cy-1))
	assert.Equal(t, Closed, m.State())
	assert.True(t, has[focusToggleMsg](msgs))
	assert.Equal(t, areaToggle, m.focus)
}

func TestToggleClick(t *testing.T) {
	m := newTestPicker(Config{})

	m, msgs := send(m, click(inputWidth+2, 0))
	assert.Equal(t, Open, m.State())
	assert.True(t, has[OpenMsg](msgs))

	m, msgs = send(m, click(inputWidth+2, 0))
	assert.Equal(t, Closed, m.State())
	assert.True(t, has[CloseMsg](msgs))
	assert.False(t, has[OpenMsg](msgs))
	assert.False(t, has[focusToggleMsg](msgs))
	assert.Equal(t, areaToggle, m.focus)
}

func TestToggleKeyboard(t *testing.T) {
	m := newTestPicker(Config{})
	m.focus = areaToggle

	m, msgs := send(m, keyMsg(tea.KeyEnter))
	assert.True(t, has[OpenMsg](msgs))
	assert.Equal(t, Open, m.State())
	assert.Equal(t, areaCalendar, m.focus)
}

func TestEscapeClosesAndReturnsFocus(t *testing.T) {
	m := open(t, newTestPicker(Config{}))

	m, msgs := send(m, keyMsg(tea.KeyEsc))
	assert.Equal(t, Closed, m.State())
	assert.True(t, has[CloseMsg](msgs))
	assert.Equal(t, areaToggle, m.focus)
}

func TestEscapeOutsidePopoverIgnored(t *testing.T) {
	m := open(t, newTestPicker(Config{}))
	m.Focus(FocusInput)

	m, msgs := send(m, keyMsg(tea.KeyEsc))
	assert.Equal(t, Open, m.State())
	assert.False(t, has[CloseMsg](msgs))
}

func TestFocusTrap(t *testing.T) {
	m := open(t, newTestPicker(Config{}))
	require.Equal(t, calendar.RegionDay, m.Calendar().FocusedRegion())

	m, _ = send(m, keyMsg(tea.KeyTab))
	assert.Equal(t, areaClose, m.focus)
	assert.False(t, m.Calendar().Focused())

	m, _ = send(m, keyMsg(tea.KeyTab))
	assert.Equal(t, areaCalendar, m.focus)
	assert.Equal(t, calendar.RegionMonth, m.Calendar().FocusedRegion())

	m, _ = send(m, keyMsg(tea.KeyShiftTab))
	assert.Equal(t, areaClose, m.focus)

	m, _ = send(m, keyMsg(tea.KeyShiftTab))
	assert.Equal(t, areaCalendar, m.focus)
	assert.Equal(t, calendar.RegionDay, m.Calendar().FocusedRegion())
}

func TestTabThroughClosedPicker(t *testing.T) {
	m := newTestPicker(Config{})

	cmd := m.Focus(FocusInput)
	m, msgs := settle(m, cmd)
	assert.True(t, has[FocusMsg](msgs))
	assert.Equal(t, areaInput, m.focus)

	m, msgs = send(m, keyMsg(tea.KeyTab))
	assert.True(t, has[BlurMsg](msgs))
	assert.Equal(t, areaToggle, m.focus)

	m, msgs = send(m, keyMsg(tea.KeyTab))
	require.True(t, has[ExitMsg](msgs))
	for _, msg := range msgs {
		if e, ok := msg.(ExitMsg); ok {
			assert.False(t, e.Reverse)
			assert.Equal(t, m.ID(), e.ID)
		}
	}
	assert.False(t, m.Focused())
}

func TestShiftTabFromInputExits(t *testing.T) {
	m := newTestPicker(Config{})
	cmd := m.Focus(FocusInput)
	m, _ = settle(m, cmd)

	m, msgs := send(m, keyMsg(tea.KeyShiftTab))
	assert.True(t, has[BlurMsg](msgs))
	for _, msg := range msgs {
		if e, ok := msg.(ExitMsg); ok {
			assert.True(t, e.Reverse)
		}
	}
	assert.False(t, m.Focused())
}

func TestTypingCommitsOnlyValidDates(t *testing.T) {
	m := newTestPicker(Config{})
	cmd := m.Focus(FocusInput)
	m, _ = settle(m, cmd)

	m, msgs := typeText(m, "2020-01-1")
	assert.Empty(t, changes(msgs))
	assert.Equal(t, "", m.Value())

	m, msgs = typeText(m, "9")
	got := changes(msgs)
	require.Len(t, got, 1)
	assert.Equal(t, "2020-01-19", got[0].Value)
	assert.Equal(t, "2020-01-19", m.Value())
	assert.Equal(t, "2020-01-19", m.Calendar().Value())
}

func TestTypingDisallowedCharacter(t *testing.T) {
	m := newTestPicker(Config{})
	cmd := m.Focus(FocusInput)
	m, _ = settle(m, cmd)
	m, _ = typeText(m, "2020-01-1")

	m, msgs := typeText(m, "a")
	assert.Empty(t, changes(msgs))
	assert.Equal(t, "2020-01-1", m.InputText())
	assert.Equal(t, 9, m.input.Position())
}

func TestTypingDisallowedMidText(t *testing.T) {
	m := newTestPicker(Config{Value: "2020-01-19"})
	cmd := m.Focus(FocusInput)
	m, _ = settle(m, cmd)
	m.input.SetCursor(4)

	m, msgs := typeText(m, "x")
	assert.Empty(t, changes(msgs))
	assert.Equal(t, "2020-01-19", m.InputText())
	assert.Equal(t, 4, m.input.Position())
}

var dottedPattern = regexp.MustCompile(`^(?P<day>\d{1,2})\.(?P<month>\d{1,2})\.(?P<year>\d{4})$`)

func TestTypingMasksWithPatternAdapter(t *testing.T) {
	m := newTestPicker(Config{Adapter: date.NewPatternAdapter(dottedPattern, "dd.mm.yyyy", nil)})
	cmd := m.Focus(FocusInput)
	m, _ = settle(m, cmd)

	m, msgs := typeText(m, "1x9")
	assert.Empty(t, changes(msgs))
	assert.Equal(t, "19", m.InputText())
	assert.Equal(t, 2, m.input.Position())

	m, msgs = typeText(m, ".04.2020")
	got := changes(msgs)
	require.Len(t, got, 1)
	assert.Equal(t, "2020-04-19", got[0].Value)
}

func TestClearingInputClearsValue(t *testing.T) {
	m := newTestPicker(Config{Value: "2020-01-19"})
	cmd := m.Focus(FocusInput)
	m, _ = settle(m, cmd)
	m.input.CursorEnd()

	var all []tea.Msg
	for i := 0; i < len("2020-01-19"); i++ {
		var msgs []tea.Msg
		m, msgs = send(m, keyMsg(tea.KeyBackspace))
		all = append(all, msgs...)
	}

	got := changes(all)
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Value)
	assert.True(t, got[0].Date.IsZero())
	assert.Equal(t, "", m.Value())
}

func TestCleanValue(t *testing.T) {
	re := regexp.MustCompile(`[^0-9-]+`)

	tests := []struct {
		value      string
		cursor     int
		wantValue  string
		wantCursor int
	}{
		{"2020-01-19", 10, "2020-01-19", 10},
		{"20a20-01", 3, "2020-01", 2},
		{"2020-01-1a", 10, "2020-01-1", 9},
		{"ab2020", 2, "2020", 0},
		{"2020 x-01", 9, "2020-01", 7},
		{"2020-ä01", 6, "2020-01", 5},
		{"2020", 99, "2020", 4},
		{"2020", -1, "2020", 0},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v, c := CleanValue(tt.value, tt.cursor, re)
			assert.Equal(t, tt.wantValue, v)
			assert.Equal(t, tt.wantCursor, c)
		})
	}
}

func TestCalendarChangeFromOtherPickerIgnored(t *testing.T) {
	m := open(t, newTestPicker(Config{}))

	m, msgs := send(m, calendar.ChangeMsg{ID: "calendar-other", Value: "2020-01-19"})
	assert.Empty(t, changes(msgs))
	assert.Equal(t, Open, m.State())
	assert.Equal(t, "", m.Value())
}

func TestTwoPickersOutsideClick(t *testing.T) {
	a := newTestPicker(Config{Name: "a"})
	b := newTestPicker(Config{Name: "b"})

	b.SetOrigin(40, 0)
	a = open(t, a)

	// Every picker sees every press. Opening b closes a.
	press := click(40+inputWidth+1, 0)
	a, _ = send(a, press)
	b, _ = send(b, press)
	assert.Equal(t, Closed, a.State())
	assert.False(t, a.Focused())
	assert.Equal(t, Open, b.State())
}

func TestValidateRequired(t *testing.T) {
	m := newTestPicker(Config{Name: "start", Required: true})
	err := m.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequired))
	assert.Contains(t, err.Error(), "start")

	m.SetValue("2020-01-19")
	assert.NoError(t, m.Validate())

	m.SetValue("")
	m.SetDisabled(true)
	assert.NoError(t, m.Validate())
}

func TestDisabled(t *testing.T) {
	m := open(t, newTestPicker(Config{Value: "2020-01-19"}))

	cmd := m.SetDisabled(true)
	m, msgs := settle(m, cmd)
	assert.True(t, has[CloseMsg](msgs))
	assert.Equal(t, Closed, m.State())
	assert.False(t, m.Focused())

	_, _, ok := m.FormValue()
	assert.False(t, ok)

	m, msgs = send(m, click(inputWidth+2, 0))
	assert.False(t, has[OpenMsg](msgs))
	assert.Equal(t, Closed, m.State())
}

func TestSetters(t *testing.T) {
	m := newTestPicker(Config{Name: "start"})

	m.SetMin("2020-02-01")
	assert.Equal(t, "2020-02-01", m.Calendar().FocusedDay().String())
	m.SetMax("2020-02-10")
	assert.Equal(t, "2020-02-10", m.Calendar().Max().String())

	m.SetRequired(true)
	assert.True(t, errors.Is(m.Validate(), ErrRequired))
	m.SetRequired(false)
	assert.NoError(t, m.Validate())

	weekends := func(d date.Date) bool {
		return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
	}
	m.SetDisabledFunc(weekends)
	assert.True(t, m.Calendar().IsDateDisabled(date.MustParseISO("2020-02-01")))
	assert.False(t, m.Calendar().IsDateDisabled(date.MustParseISO("2020-02-03")))

	m.SetFirstDayOfWeek(time.Sunday)
	assert.Equal(t, time.Sunday, m.Calendar().FirstDayOfWeek())

	fi := localization.En
	fi.ButtonLabel = "Valitse päivä"
	fi.SelectedDateMessage = "Valittu päivä on"
	m.SetLocalization(fi)
	m.SetValue("2020-02-05")
	assert.Equal(t, "Valitse päivä, Valittu päivä on 5 February 2020", m.ButtonLabel())
	assert.Equal(t, "Valitse päivä", m.Calendar().Localization().ButtonLabel)

	m.SetAdapter(date.NewPatternAdapter(dottedPattern, "dd.mm.yyyy", nil))
	assert.Equal(t, "05.02.2020", m.InputText())
	assert.Equal(t, "2020-02-05", m.Value())
}

func TestFocusPanics(t *testing.T) {
	m := newTestPicker(Config{})
	assert.Panics(t, func() { m.Focus(FocusDay) })
	assert.Panics(t, func() { m.Focus(FocusTarget(42)) })

	m = open(t, m)
	assert.NotPanics(t, func() { m.Focus(FocusMonth) })
	assert.Equal(t, calendar.RegionMonth, m.Calendar().FocusedRegion())
}

func TestPopoverDirection(t *testing.T) {
	m := newTestPicker(Config{Direction: DirectionLeft})

	m.SetOrigin(40, 0)
	assert.Equal(t, 40+FieldWidth-PopoverWidth, m.popoverX())

	m.SetOrigin(5, 0)
	assert.Equal(t, 0, m.popoverX())

	m.SetDirection(DirectionRight)
	assert.Equal(t, 5, m.popoverX())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, DirectionRight, d)

	d, err = ParseDirection("left")
	require.NoError(t, err)
	assert.Equal(t, DirectionLeft, d)

	_, err = ParseDirection("up")
	assert.Error(t, err)
}

func TestButtonLabel(t *testing.T) {
	m := newTestPicker(Config{})
	assert.Equal(t, "Choose date", m.ButtonLabel())

	m.SetValue("2020-04-19")
	assert.Equal(t, "Choose date, Selected date is 19 April 2020", m.ButtonLabel())
}

func TestAnnouncement(t *testing.T) {
	m := open(t, newTestPicker(Config{}))
	assert.Contains(t, m.Announcement(), "15 January")
	assert.Contains(t, m.Announcement(), "January 2020")
}

func TestView(t *testing.T) {
	m := newTestPicker(Config{Value: "2020-04-19"})
	m.SetOrigin(2, 0)

	v := m.View()
	assert.True(t, strings.HasPrefix(v, "  "))
	assert.Contains(t, v, "2020-04-19")
	assert.Contains(t, v, "▦")
	assert.Equal(t, 1, len(strings.Split(v, "\n")))

	m = open(t, m)
	v = m.View()
	assert.Contains(t, v, "✕")
	assert.Contains(t, v, "April")
	assert.Equal(t, m.Height(), len(strings.Split(v, "\n")))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "opening", Opening.String())
	assert.Equal(t, "open", Open.String())
}
