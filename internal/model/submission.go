package model

import (
	"sort"
	"time"
)

// Submission is the set of name/value pairs a form was submitted with.
// Disabled fields are left out, empty values are kept.
type Submission struct {
	SubmittedAt time.Time         `json:"submitted_at"`
	Values      map[string]string `json:"values"`
}

// NewSubmission copies values into a submission stamped with now
func NewSubmission(values map[string]string, now time.Time) Submission {
	s := Submission{SubmittedAt: now.UTC(), Values: make(map[string]string, len(values))}
	for k, v := range values {
		s.Values[k] = v
	}
	return s
}

// Names returns the submitted field names in sorted order
func (s Submission) Names() []string {
	names := make([]string, 0, len(s.Values))
	for name := range s.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
