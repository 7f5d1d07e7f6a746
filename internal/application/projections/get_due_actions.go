package projections

import (
	"context"
	"errors"
	"log/slog"
	"time"

	contactStore "pursuit/internal/adapters/storage/contact"
	interviewStore "pursuit/internal/adapters/storage/interview"
	referralStore "pursuit/internal/adapters/storage/referral"
	"pursuit/internal/domain/followup"
)

// GetDueActionsDeps holds dependencies for the due actions projection.
type GetDueActionsDeps struct {
	ContactStore   ContactStore
	InterviewStore InterviewStore
	ReferralStore  ReferralStore
	Now            func() time.Time // nil means time.Now
}

// DueActionsResult carries the ranked follow-up candidates and the instant
// they were evaluated at. Every candidate in the list is due as of Now.
type DueActionsResult struct {
	Now        time.Time
	Candidates []followup.Candidate
}

// QueryGetDueActions evaluates every interview and referral against the
// follow-up rules and returns the due candidates ranked by urgency. The
// clock is sampled exactly once so one scan cannot straddle a threshold.
// Records that fail normalization are logged and skipped rather than
// failing the whole scan.
func QueryGetDueActions(ctx context.Context, deps GetDueActionsDeps) (DueActionsResult, error) {
	now := time.Now()
	if deps.Now != nil {
		now = deps.Now()
	}

	contacts, err := deps.ContactStore.List(ctx, contactStore.ListFilter{})
	if err != nil {
		return DueActionsResult{}, err
	}
	dir := followup.DirectoryMap{}
	for _, c := range contacts {
		dir[c.ID] = c.Name
	}

	interviews, err := deps.InterviewStore.List(ctx, interviewStore.ListFilter{})
	if err != nil {
		return DueActionsResult{}, err
	}
	referrals, err := deps.ReferralStore.List(ctx, referralStore.ListFilter{})
	if err != nil {
		return DueActionsResult{}, err
	}

	engagements := make([]followup.Engagement, 0, len(interviews)+len(referrals))
	for _, iv := range interviews {
		e, err := followup.NormalizeInterview(iv, dir)
		if err != nil {
			logSkipped(err)
			continue
		}
		engagements = append(engagements, e)
	}
	for _, r := range referrals {
		e, err := followup.NormalizeReferral(r, dir)
		if err != nil {
			logSkipped(err)
			continue
		}
		engagements = append(engagements, e)
	}

	candidates := followup.Rank(followup.Evaluate(engagements, now))
	return DueActionsResult{Now: now, Candidates: candidates}, nil
}

// logSkipped logs a record excluded from evaluation for missing fields.
func logSkipped(err error) {
	var ve *followup.ValidationError
	if errors.As(err, &ve) {
		slog.Warn("followup_scan_skip", "entity_kind", ve.Kind, "entity_id", ve.EntityID,
			"field", ve.Field, "status", ve.Status)
		return
	}
	slog.Warn("followup_scan_skip", "error", err)
}
