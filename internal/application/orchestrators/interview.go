package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pursuit/internal/domain/interview"
)

// InterviewStoreForOrchestrator defines the store interface needed by interview orchestrators.
type InterviewStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (interview.Interview, error)
	Save(ctx context.Context, iv interview.Interview) error
	Delete(ctx context.Context, id string) error
}

// --- Schedule Interview ---

// ScheduleInterviewInput carries input for the schedule interview orchestrator.
type ScheduleInterviewInput struct {
	ContactID   string
	Company     string
	Position    string
	Round       string
	InterviewAt time.Time
}

// ScheduleInterviewDeps holds dependencies for ScheduleInterview.
type ScheduleInterviewDeps struct {
	InterviewStore InterviewStoreForOrchestrator
	GenerateID     func() string
	Now            func() time.Time
}

// ExecuteScheduleInterview creates a new interview in scheduled status.
// PRE: Company and Position must be non-empty
// POST: Interview created with status=scheduled and generated ID
func ExecuteScheduleInterview(ctx context.Context, input ScheduleInterviewInput, deps ScheduleInterviewDeps) (interview.Interview, error) {
	iv := interview.Interview{
		ID:          deps.GenerateID(),
		ContactID:   input.ContactID,
		Company:     input.Company,
		Position:    input.Position,
		Round:       input.Round,
		Status:      interview.StatusScheduled,
		InterviewAt: input.InterviewAt,
		CreatedAt:   deps.Now(),
	}

	if err := iv.Validate(); err != nil {
		return interview.Interview{}, err
	}

	if err := deps.InterviewStore.Save(ctx, iv); err != nil {
		return interview.Interview{}, err
	}

	slog.Info("interview_event", "event", "interview_scheduled", "interview_id", iv.ID, "company", iv.Company, "round", iv.Round)
	return iv, nil
}

// --- Complete Interview ---

// CompleteInterviewInput carries input for the complete interview orchestrator.
// InterviewAt is optional: it backfills the interview time for records that
// were created without one, and is required if the record has none.
type CompleteInterviewInput struct {
	InterviewID string
	InterviewAt time.Time
}

// CompleteInterviewDeps holds dependencies for CompleteInterview.
type CompleteInterviewDeps struct {
	InterviewStore InterviewStoreForOrchestrator
	Now            func() time.Time
}

// ExecuteCompleteInterview marks an interview as completed.
// PRE: InterviewID refers to a scheduled interview with a known interview time
// POST: Interview has status=completed, outcome=pending, UpdatedAt=now
func ExecuteCompleteInterview(ctx context.Context, input CompleteInterviewInput, deps CompleteInterviewDeps) (interview.Interview, error) {
	if input.InterviewID == "" {
		return interview.Interview{}, errors.New("interview ID is required")
	}

	iv, err := deps.InterviewStore.GetByID(ctx, input.InterviewID)
	if err != nil {
		return interview.Interview{}, errors.New("interview not found")
	}

	if iv.InterviewAt.IsZero() && !input.InterviewAt.IsZero() {
		iv.InterviewAt = input.InterviewAt
	}

	if err := iv.Complete(deps.Now()); err != nil {
		return interview.Interview{}, err
	}

	if err := deps.InterviewStore.Save(ctx, iv); err != nil {
		return interview.Interview{}, err
	}

	slog.Info("interview_event", "event", "interview_completed", "interview_id", iv.ID, "company", iv.Company)
	return iv, nil
}

// --- Record Outcome ---

// RecordOutcomeInput carries input for the record outcome orchestrator.
type RecordOutcomeInput struct {
	InterviewID string
	Outcome     string
}

// RecordOutcomeDeps holds dependencies for RecordOutcome.
type RecordOutcomeDeps struct {
	InterviewStore InterviewStoreForOrchestrator
	Now            func() time.Time
}

// ExecuteRecordOutcome records the outcome of a completed interview.
// PRE: InterviewID refers to a completed interview; Outcome is valid
// POST: Interview outcome updated, UpdatedAt=now
func ExecuteRecordOutcome(ctx context.Context, input RecordOutcomeInput, deps RecordOutcomeDeps) (interview.Interview, error) {
	if input.InterviewID == "" {
		return interview.Interview{}, errors.New("interview ID is required")
	}

	iv, err := deps.InterviewStore.GetByID(ctx, input.InterviewID)
	if err != nil {
		return interview.Interview{}, errors.New("interview not found")
	}

	if err := iv.RecordOutcome(input.Outcome, deps.Now()); err != nil {
		return interview.Interview{}, err
	}

	if err := deps.InterviewStore.Save(ctx, iv); err != nil {
		return interview.Interview{}, err
	}

	slog.Info("interview_event", "event", "outcome_recorded", "interview_id", iv.ID, "outcome", iv.Outcome)
	return iv, nil
}

// --- Delete Interview ---

// DeleteInterviewDeps holds dependencies for DeleteInterview.
type DeleteInterviewDeps struct {
	InterviewStore InterviewStoreForOrchestrator
}

// ExecuteDeleteInterview removes an interview and its follow-up history.
// PRE: InterviewID refers to an existing interview
// POST: Interview removed
func ExecuteDeleteInterview(ctx context.Context, interviewID string, deps DeleteInterviewDeps) error {
	if interviewID == "" {
		return errors.New("interview ID is required")
	}

	if _, err := deps.InterviewStore.GetByID(ctx, interviewID); err != nil {
		return errors.New("interview not found")
	}

	if err := deps.InterviewStore.Delete(ctx, interviewID); err != nil {
		return err
	}

	slog.Info("interview_event", "event", "interview_deleted", "interview_id", interviewID)
	return nil
}
