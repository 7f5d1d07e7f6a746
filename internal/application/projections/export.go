package projections

import (
	"context"
	"time"

	contactStore "pursuit/internal/adapters/storage/contact"
	interviewStore "pursuit/internal/adapters/storage/interview"
	referralStore "pursuit/internal/adapters/storage/referral"
	domainContact "pursuit/internal/domain/contact"
	domainInterview "pursuit/internal/domain/interview"
	domainReferral "pursuit/internal/domain/referral"
)

// ExportDeps holds dependencies for the export projection.
type ExportDeps struct {
	ContactStore   ContactStore
	InterviewStore InterviewStore
	ReferralStore  ReferralStore
	Now            func() time.Time // nil means time.Now
}

// Export DTOs: stable snake_case JSON independent of the domain structs.

type ExportFollowUp struct {
	Kind    string    `json:"kind"`
	Subkind string    `json:"subkind,omitempty"`
	SentAt  time.Time `json:"sent_at"`
	Status  string    `json:"status"`
}

type ExportContact struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Company      string    `json:"company,omitempty"`
	Position     string    `json:"position,omitempty"`
	Relationship string    `json:"relationship,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ExportInterview struct {
	ID          string           `json:"id"`
	ContactID   string           `json:"contact_id,omitempty"`
	Company     string           `json:"company"`
	Position    string           `json:"position"`
	Round       string           `json:"round,omitempty"`
	Status      string           `json:"status"`
	InterviewAt *time.Time       `json:"interview_at,omitempty"`
	Outcome     string           `json:"outcome,omitempty"`
	FollowUps   []ExportFollowUp `json:"follow_ups"`
	CreatedAt   time.Time        `json:"created_at"`
}

type ExportReferral struct {
	ID           string           `json:"id"`
	ContactID    string           `json:"contact_id"`
	Company      string           `json:"company"`
	Position     string           `json:"position"`
	Status       string           `json:"status"`
	RequestDate  string           `json:"request_date,omitempty"`  // YYYY-MM-DD
	FollowUpDate string           `json:"follow_up_date,omitempty"` // YYYY-MM-DD
	FollowUps    []ExportFollowUp `json:"follow_ups"`
	CreatedAt    time.Time        `json:"created_at"`
}

// ExportResult is the full CRM snapshot, shaped for JSON output.
type ExportResult struct {
	ExportedAt time.Time         `json:"exported_at"`
	Contacts   []ExportContact   `json:"contacts"`
	Interviews []ExportInterview `json:"interviews"`
	Referrals  []ExportReferral  `json:"referrals"`
}

// QueryExport collects every contact, interview and referral, follow-up
// histories included, for backup or offline inspection.
func QueryExport(ctx context.Context, deps ExportDeps) (ExportResult, error) {
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	contacts, err := deps.ContactStore.List(ctx, contactStore.ListFilter{})
	if err != nil {
		return ExportResult{}, err
	}
	interviews, err := deps.InterviewStore.List(ctx, interviewStore.ListFilter{})
	if err != nil {
		return ExportResult{}, err
	}
	referrals, err := deps.ReferralStore.List(ctx, referralStore.ListFilter{})
	if err != nil {
		return ExportResult{}, err
	}

	result := ExportResult{
		ExportedAt: now,
		Contacts:   make([]ExportContact, 0, len(contacts)),
		Interviews: make([]ExportInterview, 0, len(interviews)),
		Referrals:  make([]ExportReferral, 0, len(referrals)),
	}
	for _, c := range contacts {
		result.Contacts = append(result.Contacts, exportContact(c))
	}
	for _, iv := range interviews {
		result.Interviews = append(result.Interviews, exportInterview(iv))
	}
	for _, r := range referrals {
		result.Referrals = append(result.Referrals, exportReferral(r))
	}
	return result, nil
}

func exportContact(c domainContact.Contact) ExportContact {
	return ExportContact{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Company:      c.Company,
		Position:     c.Position,
		Relationship: c.Relationship,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt,
	}
}

func exportInterview(iv domainInterview.Interview) ExportInterview {
	out := ExportInterview{
		ID:        iv.ID,
		ContactID: iv.ContactID,
		Company:   iv.Company,
		Position:  iv.Position,
		Round:     iv.Round,
		Status:    iv.Status,
		Outcome:   iv.Outcome,
		FollowUps: make([]ExportFollowUp, 0, len(iv.FollowUps)),
		CreatedAt: iv.CreatedAt,
	}
	if !iv.InterviewAt.IsZero() {
		at := iv.InterviewAt
		out.InterviewAt = &at
	}
	for _, f := range iv.FollowUps {
		out.FollowUps = append(out.FollowUps, ExportFollowUp{Kind: f.Kind, SentAt: f.SentAt, Status: f.Status})
	}
	return out
}

func exportReferral(r domainReferral.Referral) ExportReferral {
	out := ExportReferral{
		ID:        r.ID,
		ContactID: r.ContactID,
		Company:   r.Company,
		Position:  r.Position,
		Status:    r.Status,
		FollowUps: make([]ExportFollowUp, 0, len(r.FollowUps)),
		CreatedAt: r.CreatedAt,
	}
	if !r.RequestDate.IsZero() {
		out.RequestDate = r.RequestDate.Format("2006-01-02")
	}
	if !r.FollowUpDate.IsZero() {
		out.FollowUpDate = r.FollowUpDate.Format("2006-01-02")
	}
	for _, f := range r.FollowUps {
		out.FollowUps = append(out.FollowUps, ExportFollowUp{Kind: f.Kind, Subkind: f.Subkind, SentAt: f.SentAt, Status: f.Status})
	}
	return out
}
