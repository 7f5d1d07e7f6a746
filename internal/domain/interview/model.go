package interview

import (
	"errors"
	"time"
)

// Interview statuses
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
)

// Interview outcomes. Empty means no outcome recorded yet; "pending" means
// the company has been asked but has not answered.
const (
	OutcomePending  = "pending"
	OutcomePassed   = "passed"
	OutcomeRejected = "rejected"
)

// ValidStatuses contains all valid interview statuses.
var ValidStatuses = []string{StatusScheduled, StatusCompleted}

// ValidOutcomes contains all valid interview outcomes.
var ValidOutcomes = []string{OutcomePending, OutcomePassed, OutcomeRejected}

// Domain errors
var (
	ErrEmptyCompany     = errors.New("interview company cannot be empty")
	ErrEmptyPosition    = errors.New("interview position cannot be empty")
	ErrInvalidStatus    = errors.New("interview status must be one of: scheduled, completed")
	ErrInvalidOutcome   = errors.New("interview outcome must be one of: pending, passed, rejected")
	ErrAlreadyCompleted = errors.New("interview is already completed")
	ErrNotCompleted     = errors.New("interview is not completed")
	ErrNoInterviewTime  = errors.New("interview date/time is required")
)

// FollowUp records one follow-up communication sent for this interview.
// The slice on Interview is append-only: prior records are never edited or
// removed, because due-action suppression is derived from them.
type FollowUp struct {
	Kind   string // thank_you, status_inquiry, feedback_request
	SentAt time.Time
	Status string // sent, pending
}

// Interview represents one interview round with a company.
type Interview struct {
	ID          string
	ContactID   string // Contact who arranged or conducted the interview (optional)
	Company     string
	Position    string
	Round       string // free text, e.g. "phone screen", "onsite"
	Status      string // scheduled, completed
	InterviewAt time.Time
	Outcome     string // empty, pending, passed, rejected
	FollowUps   []FollowUp
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks if the Interview has valid data.
// PRE: Interview struct is populated
// POST: Returns nil if valid, error otherwise
func (iv *Interview) Validate() error {
	if iv.Company == "" {
		return ErrEmptyCompany
	}
	if iv.Position == "" {
		return ErrEmptyPosition
	}
	if !isValidStatus(iv.Status) {
		return ErrInvalidStatus
	}
	if iv.Outcome != "" && !isValidOutcome(iv.Outcome) {
		return ErrInvalidOutcome
	}
	return nil
}

// IsCompleted returns true if the interview has taken place.
// INVARIANT: Status field is not mutated
func (iv *Interview) IsCompleted() bool {
	return iv.Status == StatusCompleted
}

// Complete transitions the interview from scheduled to completed.
// PRE: Status is scheduled and InterviewAt is set
// POST: Status is completed, UpdatedAt set
func (iv *Interview) Complete(now time.Time) error {
	if iv.IsCompleted() {
		return ErrAlreadyCompleted
	}
	if iv.InterviewAt.IsZero() {
		return ErrNoInterviewTime
	}
	iv.Status = StatusCompleted
	iv.UpdatedAt = now
	return nil
}

// RecordOutcome sets the interview outcome.
// PRE: Interview is completed; outcome is a valid outcome
// POST: Outcome is set
func (iv *Interview) RecordOutcome(outcome string, now time.Time) error {
	if !iv.IsCompleted() {
		return ErrNotCompleted
	}
	if !isValidOutcome(outcome) {
		return ErrInvalidOutcome
	}
	iv.Outcome = outcome
	iv.UpdatedAt = now
	return nil
}

// AppendFollowUp appends a follow-up record. Append-only: existing records
// are left untouched.
func (iv *Interview) AppendFollowUp(f FollowUp) {
	iv.FollowUps = append(iv.FollowUps, f)
}

func isValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func isValidOutcome(o string) bool {
	for _, v := range ValidOutcomes {
		if v == o {
			return true
		}
	}
	return false
}
