package projections

import (
	"context"

	interviewStore "pursuit/internal/adapters/storage/interview"
	referralStore "pursuit/internal/adapters/storage/referral"
	"pursuit/internal/domain/followup"
	domainInterview "pursuit/internal/domain/interview"
	domainReferral "pursuit/internal/domain/referral"
)

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	DueActionsDeps GetDueActionsDeps
	InterviewStore InterviewStore
	ReferralStore  ReferralStore
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	// Ranked follow-up candidates, most urgent first.
	DueActions []followup.Candidate

	// Counts by urgency for the header badges.
	HighCount   int
	MediumCount int
	LowCount    int

	// Upcoming scheduled interviews, soonest first.
	UpcomingInterviews []domainInterview.Interview

	// Referrals still in flight (pending, requested or accepted).
	ActiveReferrals []domainReferral.Referral
}

// QueryGetDashboard aggregates the operator's home screen: what to send
// today, what is coming up and which referrals are still open.
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (DashboardResult, error) {
	due, err := QueryGetDueActions(ctx, deps.DueActionsDeps)
	if err != nil {
		return DashboardResult{}, err
	}

	result := DashboardResult{DueActions: due.Candidates}
	for _, c := range due.Candidates {
		switch c.Urgency {
		case followup.UrgencyHigh:
			result.HighCount++
		case followup.UrgencyMedium:
			result.MediumCount++
		case followup.UrgencyLow:
			result.LowCount++
		}
	}

	scheduled, err := deps.InterviewStore.List(ctx, interviewStore.ListFilter{Status: domainInterview.StatusScheduled})
	if err != nil {
		return DashboardResult{}, err
	}
	// List returns most recent first; upcoming reads better soonest first.
	for i := len(scheduled) - 1; i >= 0; i-- {
		if scheduled[i].InterviewAt.After(due.Now) || scheduled[i].InterviewAt.IsZero() {
			result.UpcomingInterviews = append(result.UpcomingInterviews, scheduled[i])
		}
	}

	for _, status := range []string{domainReferral.StatusPending, domainReferral.StatusRequested, domainReferral.StatusAccepted} {
		referrals, err := deps.ReferralStore.List(ctx, referralStore.ListFilter{Status: status})
		if err != nil {
			return DashboardResult{}, err
		}
		result.ActiveReferrals = append(result.ActiveReferrals, referrals...)
	}

	return result, nil
}
