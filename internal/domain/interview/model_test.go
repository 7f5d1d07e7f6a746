package interview_test

import (
	"testing"
	"time"

	"pursuit/internal/domain/interview"
)

// TestInterview_Validate tests validation of Interview.
func TestInterview_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		iv      interview.Interview
		wantErr bool
	}{
		{
			name: "valid scheduled interview",
			iv: interview.Interview{
				ID: "1", Company: "Acme", Position: "Backend Engineer",
				Status: interview.StatusScheduled, InterviewAt: now.Add(48 * time.Hour),
			},
			wantErr: false,
		},
		{
			name: "valid completed interview with outcome",
			iv: interview.Interview{
				ID: "2", Company: "Acme", Position: "Backend Engineer",
				Status: interview.StatusCompleted, InterviewAt: now.Add(-48 * time.Hour),
				Outcome: interview.OutcomePassed,
			},
			wantErr: false,
		},
		{
			name:    "empty company",
			iv:      interview.Interview{ID: "3", Position: "BE", Status: interview.StatusScheduled},
			wantErr: true,
		},
		{
			name:    "empty position",
			iv:      interview.Interview{ID: "4", Company: "Acme", Status: interview.StatusScheduled},
			wantErr: true,
		},
		{
			name:    "invalid status",
			iv:      interview.Interview{ID: "5", Company: "Acme", Position: "BE", Status: "bogus"},
			wantErr: true,
		},
		{
			name:    "invalid outcome",
			iv:      interview.Interview{ID: "6", Company: "Acme", Position: "BE", Status: interview.StatusCompleted, Outcome: "maybe"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.iv.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestInterview_Complete tests the scheduled -> completed transition.
func TestInterview_Complete(t *testing.T) {
	now := time.Now()

	t.Run("complete scheduled interview", func(t *testing.T) {
		iv := interview.Interview{
			ID: "1", Company: "Acme", Position: "BE",
			Status: interview.StatusScheduled, InterviewAt: now.Add(-time.Hour),
		}
		if err := iv.Complete(now); err != nil {
			t.Fatalf("Complete() unexpected error: %v", err)
		}
		if !iv.IsCompleted() {
			t.Error("expected interview to be completed")
		}
	})

	t.Run("complete without interview time", func(t *testing.T) {
		iv := interview.Interview{ID: "2", Company: "Acme", Position: "BE", Status: interview.StatusScheduled}
		if err := iv.Complete(now); err != interview.ErrNoInterviewTime {
			t.Errorf("expected ErrNoInterviewTime, got %v", err)
		}
	})

	t.Run("complete twice", func(t *testing.T) {
		iv := interview.Interview{
			ID: "3", Company: "Acme", Position: "BE",
			Status: interview.StatusCompleted, InterviewAt: now.Add(-time.Hour),
		}
		if err := iv.Complete(now); err != interview.ErrAlreadyCompleted {
			t.Errorf("expected ErrAlreadyCompleted, got %v", err)
		}
	})
}

// TestInterview_RecordOutcome tests outcome recording rules.
func TestInterview_RecordOutcome(t *testing.T) {
	now := time.Now()

	t.Run("record outcome on completed interview", func(t *testing.T) {
		iv := interview.Interview{
			ID: "1", Company: "Acme", Position: "BE",
			Status: interview.StatusCompleted, InterviewAt: now.Add(-time.Hour),
		}
		if err := iv.RecordOutcome(interview.OutcomeRejected, now); err != nil {
			t.Fatalf("RecordOutcome() unexpected error: %v", err)
		}
		if iv.Outcome != interview.OutcomeRejected {
			t.Errorf("outcome = %q, want rejected", iv.Outcome)
		}
	})

	t.Run("record outcome before completion", func(t *testing.T) {
		iv := interview.Interview{ID: "2", Company: "Acme", Position: "BE", Status: interview.StatusScheduled}
		if err := iv.RecordOutcome(interview.OutcomePassed, now); err != interview.ErrNotCompleted {
			t.Errorf("expected ErrNotCompleted, got %v", err)
		}
	})

	t.Run("invalid outcome", func(t *testing.T) {
		iv := interview.Interview{ID: "3", Company: "Acme", Position: "BE", Status: interview.StatusCompleted}
		if err := iv.RecordOutcome("maybe", now); err != interview.ErrInvalidOutcome {
			t.Errorf("expected ErrInvalidOutcome, got %v", err)
		}
	})
}

// TestInterview_AppendFollowUp verifies append-only behavior.
func TestInterview_AppendFollowUp(t *testing.T) {
	now := time.Now()
	iv := interview.Interview{ID: "1", Company: "Acme", Position: "BE", Status: interview.StatusCompleted}
	iv.AppendFollowUp(interview.FollowUp{Kind: "thank_you", SentAt: now, Status: "sent"})
	iv.AppendFollowUp(interview.FollowUp{Kind: "status_inquiry", SentAt: now, Status: "sent"})
	if len(iv.FollowUps) != 2 {
		t.Fatalf("expected 2 follow-ups, got %d", len(iv.FollowUps))
	}
	if iv.FollowUps[0].Kind != "thank_you" {
		t.Error("expected first record untouched")
	}
}
