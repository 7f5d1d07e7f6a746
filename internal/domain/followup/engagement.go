package followup

import (
	"time"

	"pursuit/internal/domain/interview"
	"pursuit/internal/domain/referral"
)

// Engagement kinds
const (
	KindInterview = "interview"
	KindReferral  = "referral"
)

// Directory resolves contact IDs to display names for suggested messages.
// It is a read-only lookup passed into evaluation by the caller; the engine
// never reads ambient state.
type Directory interface {
	ContactName(id string) (string, bool)
}

// DirectoryMap is a map-backed Directory.
type DirectoryMap map[string]string

// ContactName implements Directory.
func (d DirectoryMap) ContactName(id string) (string, bool) {
	name, ok := d[id]
	return name, ok
}

// Engagement is the normalized representation of one interview or referral:
// everything the rule table needs, in one shape.
type Engagement struct {
	ID     string
	Kind   string // interview, referral
	Status string

	// Reference instants. InterviewAt is set for interviews; RequestDate and
	// FollowUpDate (calendar dates) for referrals.
	InterviewAt  time.Time
	RequestDate  time.Time
	FollowUpDate time.Time

	Outcome string // interview only

	ContactID   string
	ContactName string
	Company     string
	Position    string

	Sent []ActionRecord
}

// HasSent reports whether a confirmed ("sent") record exists for the given
// action kind and subkind. Pending records do not suppress: suppression is
// derived only from confirmed persisted history, so a failed dispatch leaves
// the candidate due on the next pass.
func (e *Engagement) HasSent(kind, subkind string) bool {
	for _, rec := range e.Sent {
		if rec.Kind == kind && rec.Subkind == subkind && rec.Status == ActionStatusSent {
			return true
		}
	}
	return false
}

// OutcomeDecided reports whether the interview outcome is a final answer.
// "pending" means the company has been asked but has not answered, so it
// counts as undecided for rule purposes.
func (e *Engagement) OutcomeDecided() bool {
	return e.Outcome == interview.OutcomePassed || e.Outcome == interview.OutcomeRejected
}

// NormalizeInterview maps an interview record into an Engagement.
// PRE: iv is a persisted interview record
// POST: Returns the engagement, or a *ValidationError when a timestamp
// required by the current status is absent
func NormalizeInterview(iv interview.Interview, dir Directory) (Engagement, error) {
	if iv.Status == interview.StatusCompleted && iv.InterviewAt.IsZero() {
		return Engagement{}, &ValidationError{EntityID: iv.ID, Kind: KindInterview, Field: "interview_at", Status: iv.Status}
	}

	e := Engagement{
		ID:          iv.ID,
		Kind:        KindInterview,
		Status:      iv.Status,
		InterviewAt: iv.InterviewAt,
		Outcome:     iv.Outcome,
		ContactID:   iv.ContactID,
		Company:     iv.Company,
		Position:    iv.Position,
		Sent:        make([]ActionRecord, 0, len(iv.FollowUps)),
	}
	for _, f := range iv.FollowUps {
		e.Sent = append(e.Sent, ActionRecord{Kind: f.Kind, SentAt: f.SentAt, Status: f.Status})
	}
	if dir != nil {
		if name, ok := dir.ContactName(iv.ContactID); ok {
			e.ContactName = name
		}
	}
	return e, nil
}

// NormalizeReferral maps a referral record into an Engagement.
// PRE: r is a persisted referral record
// POST: Returns the engagement, or a *ValidationError when a date required
// by the current status is absent
func NormalizeReferral(r referral.Referral, dir Directory) (Engagement, error) {
	switch r.Status {
	case referral.StatusPending:
		if r.RequestDate.IsZero() {
			return Engagement{}, &ValidationError{EntityID: r.ID, Kind: KindReferral, Field: "request_date", Status: r.Status}
		}
	case referral.StatusRequested, referral.StatusAccepted, referral.StatusCompleted:
		if r.FollowUpDate.IsZero() {
			return Engagement{}, &ValidationError{EntityID: r.ID, Kind: KindReferral, Field: "follow_up_date", Status: r.Status}
		}
	}

	e := Engagement{
		ID:           r.ID,
		Kind:         KindReferral,
		Status:       r.Status,
		RequestDate:  r.RequestDate,
		FollowUpDate: r.FollowUpDate,
		ContactID:    r.ContactID,
		Company:      r.Company,
		Position:     r.Position,
		Sent:         make([]ActionRecord, 0, len(r.FollowUps)),
	}
	for _, f := range r.FollowUps {
		e.Sent = append(e.Sent, ActionRecord{Kind: f.Kind, Subkind: f.Subkind, SentAt: f.SentAt, Status: f.Status})
	}
	if dir != nil {
		if name, ok := dir.ContactName(r.ContactID); ok {
			e.ContactName = name
		}
	}
	return e, nil
}
