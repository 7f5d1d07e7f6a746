package followup_test

import (
	"strings"
	"testing"
	"time"

	"pursuit/internal/domain/followup"
	"pursuit/internal/domain/interview"
	"pursuit/internal/domain/referral"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// completedInterview builds an interview engagement completed `ago` before
// testNow.
func completedInterview(id string, ago time.Duration) followup.Engagement {
	return followup.Engagement{
		ID:          id,
		Kind:        followup.KindInterview,
		Status:      interview.StatusCompleted,
		InterviewAt: testNow.Add(-ago),
		ContactName: "Dana",
		Company:     "Acme",
		Position:    "Backend Engineer",
	}
}

func dateDaysAgo(days int) time.Time {
	d := testNow.AddDate(0, 0, -days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// evalOne evaluates a single engagement.
func evalOne(e followup.Engagement) []followup.Candidate {
	return followup.Evaluate([]followup.Engagement{e}, testNow)
}

// candidatesFor filters candidates by action and subkind.
func candidatesFor(cands []followup.Candidate, action, subkind string) []followup.Candidate {
	var out []followup.Candidate
	for _, c := range cands {
		if c.Action == action && c.Subkind == subkind {
			out = append(out, c)
		}
	}
	return out
}

// TestEvaluate_ThankYou covers the thank-you windows and the day-3 expiry.
func TestEvaluate_ThankYou(t *testing.T) {
	tests := []struct {
		name        string
		ago         time.Duration
		wantUrgency string // empty = should not fire
	}{
		{"5 hours after interview", 5 * time.Hour, followup.UrgencyHigh},
		{"exactly 24 hours", 24 * time.Hour, followup.UrgencyHigh},
		{"30 hours after interview", 30 * time.Hour, followup.UrgencyMedium},
		{"3 days after interview", 72 * time.Hour, followup.UrgencyMedium},
		{"just inside day 3", 3*24*time.Hour + 23*time.Hour, followup.UrgencyMedium},
		{"after day 3 the opportunity expires", 4*24*time.Hour + time.Hour, ""},
		{"interview in the future", -2 * time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := candidatesFor(evalOne(completedInterview("iv-1", tt.ago)), followup.ActionThankYou, "")
			if tt.wantUrgency == "" {
				if len(got) != 0 {
					t.Fatalf("expected no thank-you candidate, got %+v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected exactly one thank-you candidate, got %d", len(got))
			}
			if got[0].Urgency != tt.wantUrgency {
				t.Errorf("urgency = %q, want %q", got[0].Urgency, tt.wantUrgency)
			}
		})
	}
}

// TestEvaluate_ThankYou_Scheduled verifies nothing fires before completion.
func TestEvaluate_ThankYou_Scheduled(t *testing.T) {
	e := completedInterview("iv-1", 5*time.Hour)
	e.Status = interview.StatusScheduled
	if got := evalOne(e); len(got) != 0 {
		t.Errorf("expected no candidates for a scheduled interview, got %+v", got)
	}
}

// TestEvaluate_ThankYou_Suppression verifies a sent record suppresses the
// rule while the window is still open, but a pending record does not.
func TestEvaluate_ThankYou_Suppression(t *testing.T) {
	t.Run("sent record suppresses", func(t *testing.T) {
		e := completedInterview("iv-1", 5*time.Hour)
		e.Sent = []followup.ActionRecord{
			{Kind: followup.ActionThankYou, SentAt: testNow.Add(-time.Hour), Status: followup.ActionStatusSent},
		}
		if got := candidatesFor(evalOne(e), followup.ActionThankYou, ""); len(got) != 0 {
			t.Errorf("expected thank-you suppressed after sent record, got %+v", got)
		}
	})

	t.Run("pending record does not suppress", func(t *testing.T) {
		e := completedInterview("iv-1", 5*time.Hour)
		e.Sent = []followup.ActionRecord{
			{Kind: followup.ActionThankYou, SentAt: testNow.Add(-time.Hour), Status: followup.ActionStatusPending},
		}
		if got := candidatesFor(evalOne(e), followup.ActionThankYou, ""); len(got) != 1 {
			t.Errorf("expected thank-you still due with only a pending record, got %+v", got)
		}
	})
}

// TestEvaluate_StatusInquiry covers the inquiry gating and escalation.
func TestEvaluate_StatusInquiry(t *testing.T) {
	thankYouSent := []followup.ActionRecord{
		{Kind: followup.ActionThankYou, SentAt: testNow.Add(-100 * time.Hour), Status: followup.ActionStatusSent},
	}

	tests := []struct {
		name        string
		ago         time.Duration
		sent        []followup.ActionRecord
		outcome     string
		wantUrgency string
	}{
		{"day 4 is too early", 4 * 24 * time.Hour, thankYouSent, "", ""},
		{"day 5 is medium", 5 * 24 * time.Hour, thankYouSent, "", followup.UrgencyMedium},
		{"day 9 is medium", 9 * 24 * time.Hour, thankYouSent, "", followup.UrgencyMedium},
		{"day 10 escalates to high", 10 * 24 * time.Hour, thankYouSent, "", followup.UrgencyHigh},
		{"no thank-you sent yet", 6 * 24 * time.Hour, nil, "", ""},
		{"outcome decided stops the inquiry", 6 * 24 * time.Hour, thankYouSent, interview.OutcomePassed, ""},
		{"outcome pending keeps the inquiry", 6 * 24 * time.Hour, thankYouSent, interview.OutcomePending, followup.UrgencyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := completedInterview("iv-1", tt.ago)
			e.Sent = tt.sent
			e.Outcome = tt.outcome
			got := candidatesFor(evalOne(e), followup.ActionStatusInquiry, "")
			if tt.wantUrgency == "" {
				if len(got) != 0 {
					t.Fatalf("expected no status-inquiry candidate, got %+v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected exactly one status-inquiry candidate, got %d", len(got))
			}
			if got[0].Urgency != tt.wantUrgency {
				t.Errorf("urgency = %q, want %q", got[0].Urgency, tt.wantUrgency)
			}
		})
	}
}

// TestEvaluate_FeedbackRequest covers the outcome gate and the message split
// between passed and rejected.
func TestEvaluate_FeedbackRequest(t *testing.T) {
	t.Run("no outcome means no feedback request even at day 10", func(t *testing.T) {
		e := completedInterview("iv-1", 10*24*time.Hour)
		e.Sent = []followup.ActionRecord{
			{Kind: followup.ActionThankYou, SentAt: testNow.Add(-200 * time.Hour), Status: followup.ActionStatusSent},
		}
		cands := evalOne(e)
		if got := candidatesFor(cands, followup.ActionFeedbackRequest, ""); len(got) != 0 {
			t.Errorf("expected no feedback-request without an outcome, got %+v", got)
		}
		// Only the status-inquiry path applies here.
		if got := candidatesFor(cands, followup.ActionStatusInquiry, ""); len(got) != 1 {
			t.Errorf("expected the status-inquiry candidate instead, got %+v", cands)
		}
	})

	t.Run("passed outcome asks for onboarding tips", func(t *testing.T) {
		e := completedInterview("iv-1", 5*24*time.Hour)
		e.Outcome = interview.OutcomePassed
		got := candidatesFor(evalOne(e), followup.ActionFeedbackRequest, "")
		if len(got) != 1 {
			t.Fatalf("expected exactly one feedback-request candidate, got %d", len(got))
		}
		if got[0].Urgency != followup.UrgencyLow {
			t.Errorf("urgency = %q, want %q", got[0].Urgency, followup.UrgencyLow)
		}
		if !strings.Contains(got[0].SuggestedMessage, "onboarding tips") {
			t.Errorf("message should mention onboarding tips, got %q", got[0].SuggestedMessage)
		}
	})

	t.Run("rejected outcome asks for feedback", func(t *testing.T) {
		e := completedInterview("iv-1", 5*24*time.Hour)
		e.Outcome = interview.OutcomeRejected
		got := candidatesFor(evalOne(e), followup.ActionFeedbackRequest, "")
		if len(got) != 1 {
			t.Fatalf("expected exactly one feedback-request candidate, got %d", len(got))
		}
		if !strings.Contains(got[0].SuggestedMessage, "feedback") {
			t.Errorf("message should ask for feedback, got %q", got[0].SuggestedMessage)
		}
	})

	t.Run("too early at day 2", func(t *testing.T) {
		e := completedInterview("iv-1", 2*24*time.Hour)
		e.Outcome = interview.OutcomeRejected
		if got := candidatesFor(evalOne(e), followup.ActionFeedbackRequest, ""); len(got) != 0 {
			t.Errorf("expected no feedback-request before day 3, got %+v", got)
		}
	})

	t.Run("one-shot suppression", func(t *testing.T) {
		e := completedInterview("iv-1", 5*24*time.Hour)
		e.Outcome = interview.OutcomeRejected
		e.Sent = []followup.ActionRecord{
			{Kind: followup.ActionFeedbackRequest, SentAt: testNow.Add(-time.Hour), Status: followup.ActionStatusSent},
		}
		if got := candidatesFor(evalOne(e), followup.ActionFeedbackRequest, ""); len(got) != 0 {
			t.Errorf("expected feedback-request suppressed after sent record, got %+v", got)
		}
	})
}

// TestEvaluate_ReferralRequestDue covers the pending-request date gate.
func TestEvaluate_ReferralRequestDue(t *testing.T) {
	base := followup.Engagement{
		ID:          "ref-1",
		Kind:        followup.KindReferral,
		Status:      referral.StatusPending,
		ContactName: "Priya",
		Company:     "Acme",
		Position:    "Backend Engineer",
	}

	t.Run("request date yesterday fires", func(t *testing.T) {
		e := base
		e.RequestDate = dateDaysAgo(1)
		got := evalOne(e)
		if len(got) != 1 {
			t.Fatalf("expected exactly one candidate, got %d", len(got))
		}
		if got[0].Urgency != followup.UrgencyHigh {
			t.Errorf("urgency = %q, want high", got[0].Urgency)
		}
		if got[0].Action != followup.ActionFollowUp || got[0].Subkind != "" {
			t.Errorf("unexpected action %q/%q", got[0].Action, got[0].Subkind)
		}
	})

	t.Run("request date tomorrow does not fire", func(t *testing.T) {
		e := base
		e.RequestDate = dateDaysAgo(-1)
		if got := evalOne(e); len(got) != 0 {
			t.Errorf("expected no candidate for a future request date, got %+v", got)
		}
	})
}

// TestEvaluate_ReferralStandardFollowUp covers the requested-state follow-up
// and its suppression.
func TestEvaluate_ReferralStandardFollowUp(t *testing.T) {
	base := followup.Engagement{
		ID:           "ref-2",
		Kind:         followup.KindReferral,
		Status:       referral.StatusRequested,
		RequestDate:  dateDaysAgo(10),
		FollowUpDate: dateDaysAgo(3),
		ContactName:  "Priya",
		Company:      "Acme",
		Position:     "Backend Engineer",
	}

	t.Run("due and unsent fires high", func(t *testing.T) {
		got := candidatesFor(evalOne(base), followup.ActionFollowUp, followup.SubkindStandard)
		if len(got) != 1 {
			t.Fatalf("expected exactly one standard follow-up, got %d", len(got))
		}
		if got[0].Urgency != followup.UrgencyHigh {
			t.Errorf("urgency = %q, want high", got[0].Urgency)
		}
	})

	t.Run("sent standard record suppresses", func(t *testing.T) {
		e := base
		e.Sent = []followup.ActionRecord{
			{Kind: followup.ActionFollowUp, Subkind: followup.SubkindStandard, SentAt: testNow.Add(-48 * time.Hour), Status: followup.ActionStatusSent},
		}
		if got := candidatesFor(evalOne(e), followup.ActionFollowUp, followup.SubkindStandard); len(got) != 0 {
			t.Errorf("expected standard follow-up suppressed, got %+v", got)
		}
	})

	t.Run("thank-you record does not suppress the standard track", func(t *testing.T) {
		e := base
		e.Sent = []followup.ActionRecord{
			{Kind: followup.ActionFollowUp, Subkind: followup.SubkindThankYou, SentAt: testNow.Add(-48 * time.Hour), Status: followup.ActionStatusSent},
		}
		if got := candidatesFor(evalOne(e), followup.ActionFollowUp, followup.SubkindStandard); len(got) != 1 {
			t.Errorf("expected standard follow-up still due, got %+v", got)
		}
	})
}

// TestEvaluate_ReferralThankYou covers the accepted/completed thank-you track.
func TestEvaluate_ReferralThankYou(t *testing.T) {
	for _, status := range []string{referral.StatusAccepted, referral.StatusCompleted} {
		t.Run("fires for status "+status, func(t *testing.T) {
			e := followup.Engagement{
				ID:           "ref-3",
				Kind:         followup.KindReferral,
				Status:       status,
				FollowUpDate: dateDaysAgo(1),
				ContactName:  "Priya",
				Company:      "Acme",
				Position:     "Backend Engineer",
			}
			got := candidatesFor(evalOne(e), followup.ActionFollowUp, followup.SubkindThankYou)
			if len(got) != 1 {
				t.Fatalf("expected exactly one referral thank-you, got %d", len(got))
			}
			if !strings.Contains(got[0].SuggestedMessage, "thank you") {
				t.Errorf("message should thank the contact, got %q", got[0].SuggestedMessage)
			}
		})
	}

	t.Run("declined referral never fires", func(t *testing.T) {
		e := followup.Engagement{
			ID:           "ref-4",
			Kind:         followup.KindReferral,
			Status:       referral.StatusDeclined,
			FollowUpDate: dateDaysAgo(5),
		}
		if got := evalOne(e); len(got) != 0 {
			t.Errorf("expected no candidates for declined referral, got %+v", got)
		}
	})
}

// TestEvaluate_MessageSubstitution verifies messages substitute contact
// fields and fall back when the directory has no name.
func TestEvaluate_MessageSubstitution(t *testing.T) {
	e := completedInterview("iv-1", 5*time.Hour)
	got := evalOne(e)
	if len(got) != 1 {
		t.Fatalf("expected one candidate, got %d", len(got))
	}
	msg := got[0].SuggestedMessage
	for _, want := range []string{"Dana", "Backend Engineer", "Acme"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q: %q", want, msg)
		}
	}

	e.ContactName = ""
	got = evalOne(e)
	if !strings.Contains(got[0].SuggestedMessage, "Hi there") {
		t.Errorf("expected fallback greeting, got %q", got[0].SuggestedMessage)
	}
}

// TestEvaluate_MultipleEngagements verifies candidates accumulate across
// entities in discovery order.
func TestEvaluate_MultipleEngagements(t *testing.T) {
	engs := []followup.Engagement{
		completedInterview("iv-1", 5*time.Hour),
		{
			ID:          "ref-1",
			Kind:        followup.KindReferral,
			Status:      referral.StatusPending,
			RequestDate: dateDaysAgo(1),
		},
	}
	got := followup.Evaluate(engs, testNow)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].EntityID != "iv-1" || got[1].EntityID != "ref-1" {
		t.Errorf("discovery order not preserved: %+v", got)
	}
}
