package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	Title         lipgloss.Style
	Label         lipgloss.Style
	Marker        lipgloss.Style
	FieldError    lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	EventsTitle   lipgloss.Style
	Event         lipgloss.Style
	Message       lipgloss.Style
	Error         lipgloss.Style
	Status        lipgloss.Style
}

func defaultStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			Title:         plain.Bold(true),
			Label:         plain,
			Marker:        plain,
			FieldError:    plain,
			Button:        plain,
			ButtonFocused: plain.Reverse(true),
			EventsTitle:   plain.Bold(true),
			Event:         plain,
			Message:       plain,
			Error:         plain,
			Status:        plain,
		}
	}

	accent := lipgloss.Color("39")
	muted := lipgloss.Color("241")
	red := lipgloss.Color("196")

	return styles{
		Title:         lipgloss.NewStyle().Bold(true).Foreground(accent),
		Label:         lipgloss.NewStyle().Bold(true),
		Marker:        lipgloss.NewStyle().Foreground(red),
		FieldError:    lipgloss.NewStyle().Foreground(red),
		Button:        lipgloss.NewStyle().Bold(true),
		ButtonFocused: lipgloss.NewStyle().Bold(true).Reverse(true),
		EventsTitle:   lipgloss.NewStyle().Bold(true).Foreground(muted),
		Event:         lipgloss.NewStyle().Foreground(muted),
		Message:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:         lipgloss.NewStyle().Foreground(red),
		Status:        lipgloss.NewStyle().Italic(true).Foreground(muted),
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.styles
	indent := strings.Repeat(" ", fieldIndent)

	var b strings.Builder
	b.WriteString(s.Title.Render("adate"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		p := m.pickers[i]

		label := indent + s.Label.Render(f.DisplayLabel())
		if p.Required() {
			label += s.Marker.Render(" *")
		}
		if p.Disabled() {
			label += " (disabled)"
		}
		if m.errs[i] != nil {
			label += "  " + s.FieldError.Render(m.errs[i].Error())
		}
		b.WriteString(label)
		b.WriteByte('\n')
		b.WriteString(p.View())
		b.WriteString("\n\n")
	}

	button := s.Button
	if m.focus == m.submitIndex() {
		button = s.ButtonFocused
	}
	b.WriteString(indent + button.Render(submitLabel))
	b.WriteString("\n\n")

	if m.message != "" {
		style := s.Message
		if m.isError {
			style = s.Error
		}
		b.WriteString(indent + style.Render(m.message) + "\n")
	}
	if p, ok := m.focusedPicker(); ok {
		if a := p.Announcement(); a != "" {
			b.WriteString(indent + s.Status.Render(a) + "\n")
		}
	}

	b.WriteString(indent + s.EventsTitle.Render("Events") + "\n")
	if len(m.events) == 0 {
		b.WriteString(indent + s.Event.Render("none yet") + "\n")
	}
	for _, e := range m.events {
		b.WriteString(indent + s.Event.Render(e) + "\n")
	}

	b.WriteByte('\n')
	b.WriteString(indent + m.help.View(m.helpKeys()))
	return b.String()
}
