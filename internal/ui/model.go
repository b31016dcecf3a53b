package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mph-llm-experiments/adate/internal/date"
	"github.com/mph-llm-experiments/adate/internal/localization"
	"github.com/mph-llm-experiments/adate/internal/model"
	"github.com/mph-llm-experiments/adate/internal/picker"
	"github.com/mph-llm-experiments/adate/internal/store"
)

const (
	maxEvents     = 6
	fieldIndent   = 2
	headerHeight  = 2
	submitLabel   = "[ Submit ]"
	messageExpiry = 3 * time.Second
)

// Options configures the form.
type Options struct {
	Fields       []model.Field
	Localization localization.Text
	Adapter      date.Adapter
	Store        *store.Store
	Logger       *slog.Logger

	// Restore prefills fields from the last submission in Store.
	Restore bool

	// QuitOnSubmit ends the program after a successful submission.
	QuitOnSubmit bool
	NoColor      bool

	Today      func() date.Date
	Now        func() time.Time
	Transition time.Duration

	// MessageExpiry overrides how long status messages stay visible.
	MessageExpiry time.Duration
}

// Model is the form hosting one date picker per field.
type Model struct {
	fields  []model.Field
	pickers []picker.Model
	errs    []error
	index   map[string]int

	// focus is a position in the tab ring: a picker index, the submit
	// button at len(pickers), or -1 for nothing.
	focus   int
	submitY int

	events    []string
	message   string
	isError   bool
	submitted *model.Submission

	store         *store.Store
	logger        *slog.Logger
	now           func() time.Time
	quitOnSubmit  bool
	messageExpiry time.Duration

	keys     keyMap
	help     help.Model
	styles   styles
	width    int
	initCmd  tea.Cmd
	quitting bool
}

// New builds the form. Field values come from the config, or from the last
// submission when opts.Restore is set.
func New(opts Options) (Model, error) {
	if len(opts.Fields) == 0 {
		return Model{}, errors.New("no fields configured")
	}

	m := Model{
		fields:        opts.Fields,
		errs:          make([]error, len(opts.Fields)),
		index:         make(map[string]int, len(opts.Fields)),
		focus:         -1,
		store:         opts.Store,
		logger:        opts.Logger,
		now:           opts.Now,
		quitOnSubmit:  opts.QuitOnSubmit,
		messageExpiry: opts.MessageExpiry,
		keys:          defaultKeyMap(),
		help:          help.New(),
		styles:        defaultStyles(opts.NoColor),
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.messageExpiry <= 0 {
		m.messageExpiry = messageExpiry
	}

	for i, f := range opts.Fields {
		if opts.Restore && opts.Store != nil {
			if v, ok := opts.Store.Value(f.Name); ok {
				f.Value = v
			}
		}
		p, err := newPicker(f, opts)
		if err != nil {
			return Model{}, err
		}
		m.pickers = append(m.pickers, p)
		m.index[p.ID()] = i
	}

	m.layout()
	m.initCmd = m.moveFocus(-1, false)
	return m, nil
}

func newPicker(f model.Field, opts Options) (picker.Model, error) {
	if err := f.Validate(); err != nil {
		return picker.Model{}, err
	}
	disabled, err := f.DisabledFunc()
	if err != nil {
		return picker.Model{}, err
	}
	dir, err := picker.ParseDirection(f.Direction)
	if err != nil {
		return picker.Model{}, fmt.Errorf("field %s: %w", f.Name, err)
	}
	wd, _ := f.Weekday()

	return picker.New(picker.Config{
		Name:           f.Name,
		Value:          f.Value,
		Min:            f.Min,
		Max:            f.Max,
		FirstDayOfWeek: wd,
		IsDateDisabled: disabled,
		Localization:   opts.Localization,
		Adapter:        opts.Adapter,
		Direction:      dir,
		Disabled:       f.Disabled,
		Required:       f.Required,
		Today:          opts.Today,
		Transition:     opts.Transition,
	}), nil
}

func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Submission returns the last successful submission, nil if there was none.
func (m Model) Submission() *model.Submission {
	return m.submitted
}

// Picker returns the picker of the named field.
func (m Model) Picker(name string) (picker.Model, bool) {
	for i, f := range m.fields {
		if f.Name == name {
			return m.pickers[i], true
		}
	}
	return picker.Model{}, false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m, cmd = m.update(msg)
	m.layout()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case picker.OpenMsg:
		m.event(msg.ID, "open", "")
		return m, nil
	case picker.CloseMsg:
		m.event(msg.ID, "close", "")
		return m, nil
	case picker.FocusMsg:
		m.event(msg.ID, "focus", "")
		return m, nil
	case picker.BlurMsg:
		m.event(msg.ID, "blur", "")
		return m, nil
	case picker.ChangeMsg:
		m.event(msg.ID, "change", msg.Value)
		if i, ok := m.index[msg.ID]; ok {
			m.errs[i] = nil
		}
		return m, nil
	case picker.ExitMsg:
		i, ok := m.index[msg.ID]
		if !ok {
			return m, nil
		}
		return m, m.moveFocus(i, msg.Reverse)

	case submittedMsg:
		m.submitted = &msg.submission
		m.setMessage(msg.message, false)
		m.logger.Info("form submitted", "fields", len(msg.submission.Values))
		if m.quitOnSubmit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, clearMessageAfter(m.messageExpiry)

	case errorMsg:
		m.setMessage(msg.err.Error(), true)
		m.logger.Error("form error", "error", msg.err)
		return m, clearMessageAfter(m.messageExpiry)

	case clearMessageMsg:
		m.message = ""
		m.isError = false
		return m, nil
	}

	return m.broadcast(msg)
}

// broadcast hands msg to every picker. Pickers ignore messages addressed to
// other instances.
func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	before := m.focusedSet()
	cmds := make([]tea.Cmd, 0, len(m.pickers))
	for i := range m.pickers {
		var cmd tea.Cmd
		m.pickers[i], cmd = m.pickers[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.syncFocus(before))
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.Submit):
		return m, m.submit()
	}

	if i, ok := m.focusedIndex(); ok {
		if key.Matches(msg, k.Help) && !m.pickers[i].InputFocused() {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		var cmd tea.Cmd
		m.pickers[i], cmd = m.pickers[i].Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.Next):
		return m, m.moveFocus(m.focus, false)
	case key.Matches(msg, k.Prev):
		return m, m.moveFocus(m.focus, true)
	case key.Matches(msg, k.Press):
		if m.focus == m.submitIndex() {
			return m, m.submit()
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	onSubmit := msg.Y == m.submitY && msg.X >= fieldIndent && msg.X < fieldIndent+len(submitLabel)
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	m, cmd := m.broadcast(msg)
	if !press {
		return m, cmd
	}

	if onSubmit {
		m.focus = m.submitIndex()
		return m, tea.Batch(cmd, m.submit())
	}
	if !m.pickerFocused() {
		m.focus = -1
	}
	return m, cmd
}

// moveFocus moves keyboard focus from position from to the next enabled
// stop of the tab ring, or the previous one when reverse is set. Entering a
// picker backwards lands on its toggle.
func (m *Model) moveFocus(from int, reverse bool) tea.Cmd {
	ring := len(m.pickers) + 1
	step := 1
	if reverse {
		step = -1
	}

	var cmds []tea.Cmd
	if i, ok := m.focusedIndex(); ok && m.pickers[i].Focused() {
		cmds = append(cmds, m.pickers[i].Blur())
	}

	next := from
	for n := 0; n < ring; n++ {
		next = ((next+step)%ring + ring) % ring
		if next == m.submitIndex() || !m.pickers[next].Disabled() {
			break
		}
	}

	m.focus = next
	if next < len(m.pickers) {
		if reverse {
			cmds = append(cmds, m.pickers[next].FocusLast())
		} else {
			cmds = append(cmds, m.pickers[next].Focus(picker.FocusInput))
		}
	}
	return tea.Batch(cmds...)
}

// focusedSet records which pickers hold focus.
func (m Model) focusedSet() []bool {
	set := make([]bool, len(m.pickers))
	for i, p := range m.pickers {
		set[i] = p.Focused()
	}
	return set
}

// syncFocus follows focus that a picker took on its own, from a click or a
// timer, and blurs any other picker still holding it.
func (m *Model) syncFocus(before []bool) tea.Cmd {
	for i, p := range m.pickers {
		if p.Focused() && !before[i] {
			m.focus = i
		}
	}
	if _, ok := m.focusedIndex(); !ok {
		return nil
	}

	var cmds []tea.Cmd
	for i := range m.pickers {
		if i != m.focus && m.pickers[i].Focused() {
			cmds = append(cmds, m.pickers[i].Blur())
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) pickerFocused() bool {
	for _, p := range m.pickers {
		if p.Focused() {
			return true
		}
	}
	return false
}

func (m Model) submitIndex() int { return len(m.pickers) }

func (m Model) focusedIndex() (int, bool) {
	if m.focus < 0 || m.focus >= len(m.pickers) {
		return 0, false
	}
	return m.focus, true
}

func (m Model) focusedPicker() (picker.Model, bool) {
	i, ok := m.focusedIndex()
	if !ok {
		return picker.Model{}, false
	}
	return m.pickers[i], true
}

// submit validates required fields and saves the form values. Focus moves to
// the first invalid field.
func (m *Model) submit() tea.Cmd {
	values := make(map[string]string, len(m.pickers))
	firstInvalid := -1
	for i, p := range m.pickers {
		m.errs[i] = p.Validate()
		if m.errs[i] != nil && firstInvalid < 0 {
			firstInvalid = i
		}
		if name, value, ok := p.FormValue(); ok {
			values[name] = value
		}
	}

	if firstInvalid >= 0 {
		m.setMessage(m.errs[firstInvalid].Error(), true)
		m.logger.Warn("form invalid", "field", m.fields[firstInvalid].Name, "error", m.errs[firstInvalid])
		return m.moveFocus(firstInvalid-1, false)
	}

	return saveSubmission(m.store, model.NewSubmission(values, m.now()))
}

func (m *Model) event(id, name, value string) {
	i, ok := m.index[id]
	if !ok {
		return
	}
	field := m.fields[i].Name

	line := name + " " + field
	if name == "change" {
		if value == "" {
			value = "(empty)"
		}
		line += " " + value
	}
	m.events = append(m.events, line)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}

	m.logger.Debug("picker event", "event", name, "field", field, "value", value)
}

func (m *Model) setMessage(text string, isError bool) {
	m.message = text
	m.isError = isError
}

// layout assigns every picker its origin. Open popovers push the fields
// below them down.
func (m *Model) layout() {
	y := headerHeight
	for i := range m.pickers {
		m.pickers[i].SetOrigin(fieldIndent, y+1)
		y += 1 + m.pickers[i].Height() + 1
	}
	m.submitY = y
}
