package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mph-llm-experiments/adate/internal/model"
	"github.com/mph-llm-experiments/adate/internal/store"
)

// Message types
type errorMsg struct {
	err error
}

type submittedMsg struct {
	submission model.Submission
	message    string
}

type clearMessageMsg struct{}

// saveSubmission returns a command that persists the submitted values
func saveSubmission(s *store.Store, sub model.Submission) tea.Cmd {
	return func() tea.Msg {
		message := fmt.Sprintf("Submitted %d field(s)", len(sub.Values))
		if s == nil {
			return submittedMsg{submission: sub, message: message}
		}

		if err := s.Save(sub); err != nil {
			return errorMsg{err: fmt.Errorf("failed to save submission: %w", err)}
		}

		return submittedMsg{
			submission: sub,
			message:    fmt.Sprintf("%s (saved to %s)", message, s.Path()),
		}
	}
}

// clearMessageAfter returns a command that clears the message after a delay
func clearMessageAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearMessageMsg{}
	})
}
