package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pursuit/internal/domain/referral"
)

// ReferralStoreForOrchestrator defines the store interface needed by referral orchestrators.
type ReferralStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (referral.Referral, error)
	Save(ctx context.Context, r referral.Referral) error
	Delete(ctx context.Context, id string) error
}

// --- Create Referral ---

// CreateReferralInput carries input for the create referral orchestrator.
type CreateReferralInput struct {
	ContactID   string
	Company     string
	Position    string
	RequestDate time.Time // when the ask is planned; defaults to today
}

// CreateReferralDeps holds dependencies for CreateReferral.
type CreateReferralDeps struct {
	ReferralStore ReferralStoreForOrchestrator
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteCreateReferral creates a new referral in pending status.
// PRE: ContactID, Company and Position must be non-empty
// POST: Referral created with status=pending and a request date
func ExecuteCreateReferral(ctx context.Context, input CreateReferralInput, deps CreateReferralDeps) (referral.Referral, error) {
	now := deps.Now()
	requestDate := input.RequestDate
	if requestDate.IsZero() {
		requestDate = now
	}

	r := referral.Referral{
		ID:          deps.GenerateID(),
		ContactID:   input.ContactID,
		Company:     input.Company,
		Position:    input.Position,
		Status:      referral.StatusPending,
		RequestDate: requestDate,
		CreatedAt:   now,
	}

	if err := r.Validate(); err != nil {
		return referral.Referral{}, err
	}

	if err := deps.ReferralStore.Save(ctx, r); err != nil {
		return referral.Referral{}, err
	}

	slog.Info("referral_event", "event", "referral_created", "referral_id", r.ID, "company", r.Company)
	return r, nil
}

// --- Advance Referral ---

// AdvanceReferralInput carries input for the advance referral orchestrator.
// Target is the status to move to: requested, accepted, declined or completed.
// FollowUpDate overrides the default follow-up date when moving to requested.
type AdvanceReferralInput struct {
	ReferralID   string
	Target       string
	FollowUpDate time.Time
}

// AdvanceReferralDeps holds dependencies for AdvanceReferral.
type AdvanceReferralDeps struct {
	ReferralStore ReferralStoreForOrchestrator
	Now           func() time.Time
}

// ExecuteAdvanceReferral moves a referral along its lifecycle.
// PRE: ReferralID refers to an existing referral; Target is a valid transition
// POST: Referral status updated, UpdatedAt=now
func ExecuteAdvanceReferral(ctx context.Context, input AdvanceReferralInput, deps AdvanceReferralDeps) (referral.Referral, error) {
	if input.ReferralID == "" {
		return referral.Referral{}, errors.New("referral ID is required")
	}

	r, err := deps.ReferralStore.GetByID(ctx, input.ReferralID)
	if err != nil {
		return referral.Referral{}, errors.New("referral not found")
	}

	now := deps.Now()
	switch input.Target {
	case referral.StatusRequested:
		err = r.MarkRequested(now)
		if err == nil && !input.FollowUpDate.IsZero() {
			r.FollowUpDate = input.FollowUpDate
		}
	case referral.StatusAccepted:
		err = r.Accept(now)
	case referral.StatusDeclined:
		err = r.Decline(now)
	case referral.StatusCompleted:
		err = r.Complete(now)
	default:
		err = fmt.Errorf("unknown referral status %q", input.Target)
	}
	if err != nil {
		return referral.Referral{}, err
	}

	if err := deps.ReferralStore.Save(ctx, r); err != nil {
		return referral.Referral{}, err
	}

	slog.Info("referral_event", "event", "referral_advanced", "referral_id", r.ID, "status", r.Status)
	return r, nil
}

// --- Delete Referral ---

// DeleteReferralDeps holds dependencies for DeleteReferral.
type DeleteReferralDeps struct {
	ReferralStore ReferralStoreForOrchestrator
}

// ExecuteDeleteReferral removes a referral and its follow-up history.
// PRE: ReferralID refers to an existing referral
// POST: Referral removed
func ExecuteDeleteReferral(ctx context.Context, referralID string, deps DeleteReferralDeps) error {
	if referralID == "" {
		return errors.New("referral ID is required")
	}

	if _, err := deps.ReferralStore.GetByID(ctx, referralID); err != nil {
		return errors.New("referral not found")
	}

	if err := deps.ReferralStore.Delete(ctx, referralID); err != nil {
		return err
	}

	slog.Info("referral_event", "event", "referral_deleted", "referral_id", referralID)
	return nil
}
