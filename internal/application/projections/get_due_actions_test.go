package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	contactStore "pursuit/internal/adapters/storage/contact"
	interviewStore "pursuit/internal/adapters/storage/interview"
	referralStore "pursuit/internal/adapters/storage/referral"
	"pursuit/internal/domain/contact"
	"pursuit/internal/domain/followup"
	"pursuit/internal/domain/interview"
	"pursuit/internal/domain/referral"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// mockContactStore implements ContactStore for testing.
type mockContactStore struct {
	contacts []contact.Contact
	err      error
}

func (m *mockContactStore) GetByID(_ context.Context, id string) (contact.Contact, error) {
	for _, c := range m.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return contact.Contact{}, errors.New("not found")
}

func (m *mockContactStore) List(_ context.Context, _ contactStore.ListFilter) ([]contact.Contact, error) {
	return m.contacts, m.err
}

// mockInterviewStore implements InterviewStore for testing.
type mockInterviewStore struct {
	interviews []interview.Interview
	err        error
}

func (m *mockInterviewStore) GetByID(_ context.Context, id string) (interview.Interview, error) {
	for _, iv := range m.interviews {
		if iv.ID == id {
			return iv, nil
		}
	}
	return interview.Interview{}, errors.New("not found")
}

func (m *mockInterviewStore) List(_ context.Context, filter interviewStore.ListFilter) ([]interview.Interview, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []interview.Interview
	for _, iv := range m.interviews {
		if filter.Status != "" && iv.Status != filter.Status {
			continue
		}
		out = append(out, iv)
	}
	return out, nil
}

// mockReferralStore implements ReferralStore for testing.
type mockReferralStore struct {
	referrals []referral.Referral
	err       error
}

func (m *mockReferralStore) GetByID(_ context.Context, id string) (referral.Referral, error) {
	for _, r := range m.referrals {
		if r.ID == id {
			return r, nil
		}
	}
	return referral.Referral{}, errors.New("not found")
}

func (m *mockReferralStore) List(_ context.Context, filter referralStore.ListFilter) ([]referral.Referral, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []referral.Referral
	for _, r := range m.referrals {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func dueDeps(cs *mockContactStore, is *mockInterviewStore, rs *mockReferralStore) GetDueActionsDeps {
	return GetDueActionsDeps{
		ContactStore:   cs,
		InterviewStore: is,
		ReferralStore:  rs,
		Now:            fixedNow,
	}
}

func TestQueryGetDueActions_RanksAcrossKinds(t *testing.T) {
	cs := &mockContactStore{contacts: []contact.Contact{
		{ID: "c1", Name: "Dana Reyes", CreatedAt: testNow},
	}}
	// Completed 10 hours ago: thank-you due at high urgency.
	is := &mockInterviewStore{interviews: []interview.Interview{
		{
			ID: "iv1", ContactID: "c1", Company: "Acme", Position: "Backend Engineer",
			Status: interview.StatusCompleted, Outcome: interview.OutcomePending,
			InterviewAt: testNow.Add(-10 * time.Hour), CreatedAt: testNow.Add(-72 * time.Hour),
		},
	}}
	// Follow-up date passed yesterday: high urgency, more overdue hours.
	rs := &mockReferralStore{referrals: []referral.Referral{
		{
			ID: "r1", ContactID: "c1", Company: "Initech", Position: "Platform Engineer",
			Status: referral.StatusRequested, RequestDate: testNow.AddDate(0, 0, -8),
			FollowUpDate: testNow.AddDate(0, 0, -1), CreatedAt: testNow.AddDate(0, 0, -9),
		},
	}}

	result, err := QueryGetDueActions(context.Background(), dueDeps(cs, is, rs))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Now.Equal(testNow) {
		t.Errorf("Now = %v, want %v", result.Now, testNow)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2: %+v", len(result.Candidates), result.Candidates)
	}
	// Both high urgency; the referral has been overdue longer.
	if result.Candidates[0].EntityID != "r1" || result.Candidates[0].Urgency != followup.UrgencyHigh {
		t.Errorf("first candidate = %+v, want r1 at high urgency", result.Candidates[0])
	}
	if result.Candidates[1].EntityID != "iv1" {
		t.Errorf("second candidate = %+v, want iv1", result.Candidates[1])
	}
	if result.Candidates[0].SuggestedMessage == "" {
		t.Error("expected a suggested message on the candidate")
	}
}

// A record missing a required field is skipped, not fatal to the scan.
func TestQueryGetDueActions_SkipsMalformedRecords(t *testing.T) {
	cs := &mockContactStore{}
	is := &mockInterviewStore{interviews: []interview.Interview{
		{
			// Completed but no interview time: normalization fails.
			ID: "iv-bad", Company: "Acme", Position: "Backend Engineer",
			Status: interview.StatusCompleted, Outcome: interview.OutcomePending,
			CreatedAt: testNow.Add(-72 * time.Hour),
		},
		{
			ID: "iv-good", Company: "Acme", Position: "Backend Engineer",
			Status: interview.StatusCompleted, Outcome: interview.OutcomePending,
			InterviewAt: testNow.Add(-10 * time.Hour), CreatedAt: testNow.Add(-72 * time.Hour),
		},
	}}
	rs := &mockReferralStore{}

	result, err := QueryGetDueActions(context.Background(), dueDeps(cs, is, rs))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Candidates) != 1 || result.Candidates[0].EntityID != "iv-good" {
		t.Errorf("candidates = %+v, want only iv-good", result.Candidates)
	}
}

func TestQueryGetDueActions_StoreError(t *testing.T) {
	cs := &mockContactStore{}
	is := &mockInterviewStore{err: errors.New("db closed")}
	rs := &mockReferralStore{}

	if _, err := QueryGetDueActions(context.Background(), dueDeps(cs, is, rs)); err == nil {
		t.Fatal("expected error when a store fails")
	}
}

func TestQueryGetDashboard_Counts(t *testing.T) {
	cs := &mockContactStore{contacts: []contact.Contact{{ID: "c1", Name: "Dana Reyes", CreatedAt: testNow}}}
	is := &mockInterviewStore{interviews: []interview.Interview{
		{
			ID: "iv1", ContactID: "c1", Company: "Acme", Position: "Backend Engineer",
			Status: interview.StatusCompleted, Outcome: interview.OutcomePending,
			InterviewAt: testNow.Add(-10 * time.Hour), CreatedAt: testNow.Add(-72 * time.Hour),
		},
		{
			ID: "iv2", Company: "Initech", Position: "SRE",
			Status: interview.StatusScheduled, InterviewAt: testNow.Add(48 * time.Hour),
			CreatedAt: testNow.Add(-24 * time.Hour),
		},
	}}
	rs := &mockReferralStore{referrals: []referral.Referral{
		{
			ID: "r1", ContactID: "c1", Company: "Hooli", Position: "Platform Engineer",
			Status: referral.StatusDeclined, RequestDate: testNow.AddDate(0, 0, -10),
			CreatedAt: testNow.AddDate(0, 0, -11),
		},
	}}

	result, err := QueryGetDashboard(context.Background(), GetDashboardDeps{
		DueActionsDeps: dueDeps(cs, is, rs),
		InterviewStore: is,
		ReferralStore:  rs,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HighCount != 1 || result.MediumCount != 0 || result.LowCount != 0 {
		t.Errorf("counts = %d/%d/%d, want 1/0/0", result.HighCount, result.MediumCount, result.LowCount)
	}
	if len(result.UpcomingInterviews) != 1 || result.UpcomingInterviews[0].ID != "iv2" {
		t.Errorf("upcoming = %+v, want [iv2]", result.UpcomingInterviews)
	}
	if len(result.ActiveReferrals) != 0 {
		t.Errorf("declined referral must not be active, got %+v", result.ActiveReferrals)
	}
}

func TestQueryExport_Shapes(t *testing.T) {
	cs := &mockContactStore{contacts: []contact.Contact{{ID: "c1", Name: "Dana Reyes", CreatedAt: testNow}}}
	is := &mockInterviewStore{interviews: []interview.Interview{
		{
			ID: "iv1", Company: "Acme", Position: "Backend Engineer",
			Status: interview.StatusCompleted, Outcome: interview.OutcomePending,
			InterviewAt: testNow.Add(-10 * time.Hour),
			FollowUps: []interview.FollowUp{
				{Kind: "thank_you", SentAt: testNow.Add(-5 * time.Hour), Status: "sent"},
			},
			CreatedAt: testNow.Add(-72 * time.Hour),
		},
	}}
	rs := &mockReferralStore{referrals: []referral.Referral{
		{
			ID: "r1", ContactID: "c1", Company: "Initech", Position: "Platform Engineer",
			Status: referral.StatusRequested, RequestDate: testNow.AddDate(0, 0, -8),
			FollowUpDate: testNow.AddDate(0, 0, -1), CreatedAt: testNow.AddDate(0, 0, -9),
		},
	}}

	result, err := QueryExport(context.Background(), ExportDeps{
		ContactStore: cs, InterviewStore: is, ReferralStore: rs, Now: fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Contacts) != 1 || len(result.Interviews) != 1 || len(result.Referrals) != 1 {
		t.Fatalf("export sizes = %d/%d/%d, want 1/1/1", len(result.Contacts), len(result.Interviews), len(result.Referrals))
	}
	iv := result.Interviews[0]
	if iv.InterviewAt == nil || !iv.InterviewAt.Equal(testNow.Add(-10*time.Hour)) {
		t.Errorf("interview_at = %v", iv.InterviewAt)
	}
	if len(iv.FollowUps) != 1 || iv.FollowUps[0].Kind != "thank_you" {
		t.Errorf("follow-ups = %+v", iv.FollowUps)
	}
	r := result.Referrals[0]
	if r.RequestDate != "2025-03-02" {
		t.Errorf("request_date = %q, want 2025-03-02", r.RequestDate)
	}
	if r.FollowUpDate != "2025-03-09" {
		t.Errorf("follow_up_date = %q, want 2025-03-09", r.FollowUpDate)
	}
}
