package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pursuit/internal/domain/followup"
	"pursuit/internal/domain/interview"
	"pursuit/internal/domain/referral"
)

// RecordFollowUpInput carries input for the record follow-up orchestrator.
type RecordFollowUpInput struct {
	EntityKind string // "interview" or "referral"
	EntityID   string
	Action     string // followup action kind
	Subkind    string // referral follow_up subkind, empty otherwise
}

// RecordFollowUpDeps holds dependencies for RecordFollowUp.
type RecordFollowUpDeps struct {
	InterviewStore InterviewStoreForOrchestrator
	ReferralStore  ReferralStoreForOrchestrator
	Now            func() time.Time
}

// ExecuteRecordFollowUp appends a sent follow-up action to the entity's
// history and writes the whole record back. There is no retry and no queue:
// a failed write surfaces immediately as a DispatchError and the caller
// decides whether to try again.
// PRE: EntityKind and EntityID identify an existing record; Action is valid
// POST: Record saved with the new action appended, status=sent
func ExecuteRecordFollowUp(ctx context.Context, input RecordFollowUpInput, deps RecordFollowUpDeps) error {
	if input.EntityID == "" {
		return errors.New("entity ID is required")
	}
	if !followup.IsValidAction(input.Action) {
		return fmt.Errorf("unknown follow-up action %q", input.Action)
	}

	now := deps.Now()
	var err error
	switch input.EntityKind {
	case followup.KindInterview:
		err = recordInterviewFollowUp(ctx, input, now, deps.InterviewStore)
	case followup.KindReferral:
		err = recordReferralFollowUp(ctx, input, now, deps.ReferralStore)
	default:
		return fmt.Errorf("unknown entity kind %q", input.EntityKind)
	}
	if err != nil {
		return err
	}

	slog.Info("followup_event", "event", "followup_recorded",
		"entity_kind", input.EntityKind, "entity_id", input.EntityID,
		"action", input.Action, "subkind", input.Subkind)
	return nil
}

func recordInterviewFollowUp(ctx context.Context, input RecordFollowUpInput, now time.Time, store InterviewStoreForOrchestrator) error {
	iv, err := store.GetByID(ctx, input.EntityID)
	if err != nil {
		return &followup.DispatchError{
			EntityKind: input.EntityKind, EntityID: input.EntityID, Action: input.Action,
			Err: fmt.Errorf("load: %w", err),
		}
	}

	iv.AppendFollowUp(interview.FollowUp{
		Kind:   input.Action,
		SentAt: now,
		Status: followup.ActionStatusSent,
	})
	iv.UpdatedAt = now

	if err := store.Save(ctx, iv); err != nil {
		return &followup.DispatchError{
			EntityKind: input.EntityKind, EntityID: input.EntityID, Action: input.Action,
			Err: fmt.Errorf("save: %w", err),
		}
	}
	return nil
}

func recordReferralFollowUp(ctx context.Context, input RecordFollowUpInput, now time.Time, store ReferralStoreForOrchestrator) error {
	r, err := store.GetByID(ctx, input.EntityID)
	if err != nil {
		return &followup.DispatchError{
			EntityKind: input.EntityKind, EntityID: input.EntityID, Action: input.Action,
			Err: fmt.Errorf("load: %w", err),
		}
	}

	r.AppendFollowUp(referral.FollowUp{
		Kind:    input.Action,
		Subkind: input.Subkind,
		SentAt:  now,
		Status:  followup.ActionStatusSent,
	})
	r.UpdatedAt = now

	if err := store.Save(ctx, r); err != nil {
		return &followup.DispatchError{
			EntityKind: input.EntityKind, EntityID: input.EntityID, Action: input.Action,
			Err: fmt.Errorf("save: %w", err),
		}
	}
	return nil
}
