package entities

import (
	"time"

	"github.com/google/uuid"
)

// EditSession is the session-scoped single source of truth for one
// agenda being edited. It keeps the original submission so a
// regeneration can resend the same grounding context.
type EditSession struct {
	ID         string         `json:"id"`
	Agenda     AgendaData     `json:"agenda"`
	Submission FormSubmission `json:"submission"`
	Language   string         `json:"language"`
	LastError  string         `json:"lastError,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// NewEditSession creates a session around a freshly generated agenda.
func NewEditSession(agenda AgendaData, submission FormSubmission, language string) *EditSession {
	now := time.Now()
	return &EditSession{
		ID:         uuid.NewString(),
		Agenda:     agenda.Normalize(),
		Submission: submission,
		Language:   language,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch bumps the update timestamp.
func (s *EditSession) Touch() {
	s.UpdatedAt = time.Now()
}
