package referral

import (
	"errors"
	"time"
)

// Referral statuses
const (
	StatusPending   = "pending"   // not yet asked
	StatusRequested = "requested" // contact has been asked
	StatusAccepted  = "accepted"  // contact agreed and referred
	StatusDeclined  = "declined"
	StatusCompleted = "completed" // referral submitted by the contact
)

// DefaultFollowUpDays is how many days after the request a follow-up is
// scheduled when the operator does not pick a date.
const DefaultFollowUpDays = 7

// ValidStatuses contains all valid referral statuses.
var ValidStatuses = []string{StatusPending, StatusRequested, StatusAccepted, StatusDeclined, StatusCompleted}

// Domain errors
var (
	ErrEmptyContact  = errors.New("referral contact cannot be empty")
	ErrEmptyCompany  = errors.New("referral company cannot be empty")
	ErrEmptyPosition = errors.New("referral position cannot be empty")
	ErrInvalidStatus = errors.New("referral status must be one of: pending, requested, accepted, declined, completed")
	ErrNotPending    = errors.New("referral has already been requested")
	ErrNotRequested  = errors.New("referral is not in requested state")
	ErrNotAccepted   = errors.New("referral has not been accepted")
)

// FollowUp records one follow-up communication sent for this referral.
// Append-only, same as interview follow-ups.
type FollowUp struct {
	Kind    string // follow_up
	Subkind string // standard, thank_you
	SentAt  time.Time
	Status  string // sent, pending
}

// Referral tracks asking a contact for a referral to a position.
// RequestDate and FollowUpDate are calendar dates; time-of-day is ignored
// everywhere they are compared.
type Referral struct {
	ID           string
	ContactID    string
	Company      string
	Position     string
	Status       string // pending, requested, accepted, declined, completed
	RequestDate  time.Time
	FollowUpDate time.Time
	FollowUps    []FollowUp
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks if the Referral has valid data.
// PRE: Referral struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Referral) Validate() error {
	if r.ContactID == "" {
		return ErrEmptyContact
	}
	if r.Company == "" {
		return ErrEmptyCompany
	}
	if r.Position == "" {
		return ErrEmptyPosition
	}
	if !isValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// MarkRequested transitions pending -> requested. When no follow-up date has
// been chosen, it defaults to the request day plus DefaultFollowUpDays so the
// standard follow-up has a date to come due on.
// PRE: Status is pending
// POST: Status is requested, FollowUpDate is set
func (r *Referral) MarkRequested(now time.Time) error {
	if r.Status != StatusPending {
		return ErrNotPending
	}
	r.Status = StatusRequested
	if r.FollowUpDate.IsZero() {
		d := now.AddDate(0, 0, DefaultFollowUpDays)
		r.FollowUpDate = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	r.UpdatedAt = now
	return nil
}

// Accept transitions requested -> accepted.
// PRE: Status is requested
// POST: Status is accepted
func (r *Referral) Accept(now time.Time) error {
	if r.Status != StatusRequested {
		return ErrNotRequested
	}
	r.Status = StatusAccepted
	r.UpdatedAt = now
	return nil
}

// Decline transitions requested -> declined.
// PRE: Status is requested
// POST: Status is declined
func (r *Referral) Decline(now time.Time) error {
	if r.Status != StatusRequested {
		return ErrNotRequested
	}
	r.Status = StatusDeclined
	r.UpdatedAt = now
	return nil
}

// Complete transitions accepted -> completed (the contact submitted the
// referral).
// PRE: Status is accepted
// POST: Status is completed
func (r *Referral) Complete(now time.Time) error {
	if r.Status != StatusAccepted {
		return ErrNotAccepted
	}
	r.Status = StatusCompleted
	r.UpdatedAt = now
	return nil
}

// AppendFollowUp appends a follow-up record. Append-only: existing records
// are left untouched.
func (r *Referral) AppendFollowUp(f FollowUp) {
	r.FollowUps = append(r.FollowUps, f)
}

func isValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
