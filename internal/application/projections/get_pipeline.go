package projections

import (
	"context"

	interviewStore "pursuit/internal/adapters/storage/interview"
	referralStore "pursuit/internal/adapters/storage/referral"
	domainInterview "pursuit/internal/domain/interview"
	domainReferral "pursuit/internal/domain/referral"
)

// GetPipelineDeps holds dependencies for the pipeline projection.
type GetPipelineDeps struct {
	InterviewStore InterviewStore
	ReferralStore  ReferralStore
}

// PipelineResult groups every engagement by where it sits in the process.
type PipelineResult struct {
	ScheduledInterviews []domainInterview.Interview
	AwaitingOutcome     []domainInterview.Interview // completed, outcome pending
	Passed              []domainInterview.Interview
	Rejected            []domainInterview.Interview

	ReferralsByStatus map[string][]domainReferral.Referral
}

// QueryGetPipeline builds the pipeline view across interviews and referrals.
func QueryGetPipeline(ctx context.Context, deps GetPipelineDeps) (PipelineResult, error) {
	interviews, err := deps.InterviewStore.List(ctx, interviewStore.ListFilter{})
	if err != nil {
		return PipelineResult{}, err
	}

	result := PipelineResult{
		ReferralsByStatus: make(map[string][]domainReferral.Referral),
	}
	for _, iv := range interviews {
		switch {
		case iv.Status == domainInterview.StatusScheduled:
			result.ScheduledInterviews = append(result.ScheduledInterviews, iv)
		case iv.Outcome == domainInterview.OutcomePassed:
			result.Passed = append(result.Passed, iv)
		case iv.Outcome == domainInterview.OutcomeRejected:
			result.Rejected = append(result.Rejected, iv)
		default:
			result.AwaitingOutcome = append(result.AwaitingOutcome, iv)
		}
	}

	referrals, err := deps.ReferralStore.List(ctx, referralStore.ListFilter{})
	if err != nil {
		return PipelineResult{}, err
	}
	for _, r := range referrals {
		result.ReferralsByStatus[r.Status] = append(result.ReferralsByStatus[r.Status], r)
	}

	return result, nil
}
