package followup

import (
	"fmt"
	"time"

	"pursuit/internal/domain/interview"
	"pursuit/internal/domain/referral"
)

// Thank-you rule thresholds, in hours/days since the interview.
const (
	thankYouHighHours = 24 // within a day: high urgency
	thankYouMaxDays   = 3  // after day 3 the opportunity silently expires
)

// Status-inquiry thresholds, in days since the interview.
const (
	inquiryMinDays  = 5
	inquiryHighDays = 10
)

// Feedback-request threshold, in days since the interview.
const feedbackMinDays = 3

// verdict is what a rule's due function reports when it fires.
type verdict struct {
	urgency      string
	overdueHours int
	reason       string
}

// rule is one entry in the generic rule table: a kind gate, a suppression
// key, and a pure due predicate over (Engagement, now). Both engagement
// kinds share this shape; the table replaces per-kind branching duplicated
// across views in earlier iterations.
type rule struct {
	kind    string // engagement kind the rule applies to
	action  string
	subkind string

	// oneShot rules fire at most once per engagement: a confirmed sent
	// record for (action, subkind) suppresses them forever.
	oneShot bool

	due func(e *Engagement, now time.Time) (verdict, bool)
}

// rules is the full table, in discovery order. Order matters only as the
// final tie-break of the ranker.
var rules = []rule{
	{
		kind: KindInterview, action: ActionThankYou, oneShot: true,
		due: dueThankYou,
	},
	{
		kind: KindInterview, action: ActionStatusInquiry,
		due: dueStatusInquiry,
	},
	{
		kind: KindInterview, action: ActionFeedbackRequest, oneShot: true,
		due: dueFeedbackRequest,
	},
	{
		kind: KindReferral, action: ActionFollowUp, subkind: "",
		due: dueReferralRequest,
	},
	{
		kind: KindReferral, action: ActionFollowUp, subkind: SubkindStandard, oneShot: true,
		due: dueReferralStandard,
	},
	{
		kind: KindReferral, action: ActionFollowUp, subkind: SubkindThankYou, oneShot: true,
		due: dueReferralThankYou,
	},
}

// Evaluate runs the rule table over every engagement with one shared now and
// returns the candidates in discovery order. Callers rank with Rank.
// INVARIANT: pure; all suppression state derives from e.Sent
func Evaluate(engagements []Engagement, now time.Time) []Candidate {
	var out []Candidate
	for i := range engagements {
		e := &engagements[i]
		for _, r := range rules {
			if r.kind != e.Kind {
				continue
			}
			if r.oneShot && e.HasSent(r.action, r.subkind) {
				continue
			}
			v, ok := r.due(e, now)
			if !ok {
				continue
			}
			out = append(out, Candidate{
				EntityID:         e.ID,
				EntityKind:       e.Kind,
				Action:           r.action,
				Subkind:          r.subkind,
				Urgency:          v.urgency,
				DueReason:        v.reason,
				SuggestedMessage: SuggestedMessage(r.action, r.subkind, e),
				OverdueHours:     v.overdueHours,
			})
		}
	}
	return out
}

// dueThankYou: high within 24h of a completed interview, medium through day
// 3, then the opportunity expires and never surfaces again.
func dueThankYou(e *Engagement, now time.Time) (verdict, bool) {
	if e.Status != interview.StatusCompleted {
		return verdict{}, false
	}
	hours := HoursSince(e.InterviewAt, now)
	if hours < 0 {
		return verdict{}, false
	}
	days := DaysSince(e.InterviewAt, now)
	switch {
	case hours <= thankYouHighHours:
		return verdict{
			urgency:      UrgencyHigh,
			overdueHours: hours,
			reason:       fmt.Sprintf("interview completed %d hours ago; thank-you not sent yet", hours),
		}, true
	case days <= thankYouMaxDays:
		return verdict{
			urgency:      UrgencyMedium,
			overdueHours: hours,
			reason:       fmt.Sprintf("interview completed %d days ago; thank-you not sent yet", days),
		}, true
	}
	return verdict{}, false
}

// dueStatusInquiry: once the thank-you is out and no outcome has been
// decided, nudge at day 5 and escalate at day 10. Not one-shot: it keeps
// surfacing each pass until an outcome lands.
func dueStatusInquiry(e *Engagement, now time.Time) (verdict, bool) {
	if e.Status != interview.StatusCompleted {
		return verdict{}, false
	}
	if !e.HasSent(ActionThankYou, "") || e.OutcomeDecided() {
		return verdict{}, false
	}
	days := DaysSince(e.InterviewAt, now)
	hours := HoursSince(e.InterviewAt, now)
	switch {
	case days >= inquiryHighDays:
		return verdict{
			urgency:      UrgencyHigh,
			overdueHours: hours,
			reason:       fmt.Sprintf("no outcome %d days after the interview", days),
		}, true
	case days >= inquiryMinDays:
		return verdict{
			urgency:      UrgencyMedium,
			overdueHours: hours,
			reason:       fmt.Sprintf("no outcome %d days after the interview", days),
		}, true
	}
	return verdict{}, false
}

// dueFeedbackRequest: once an outcome is decided and at least 3 days have
// passed since the interview, suggest asking for feedback (or onboarding
// tips after a pass).
func dueFeedbackRequest(e *Engagement, now time.Time) (verdict, bool) {
	if e.Status != interview.StatusCompleted || !e.OutcomeDecided() {
		return verdict{}, false
	}
	days := DaysSince(e.InterviewAt, now)
	if days < feedbackMinDays {
		return verdict{}, false
	}
	what := "feedback"
	if e.Outcome == interview.OutcomePassed {
		what = "onboarding tips"
	}
	return verdict{
		urgency:      UrgencyLow,
		overdueHours: HoursSince(e.InterviewAt, now),
		reason:       fmt.Sprintf("outcome %q recorded; %s not requested yet", e.Outcome, what),
	}, true
}

// dueReferralRequest: the planned request date has arrived and the ask has
// not been made. Binary alert, ranked High.
func dueReferralRequest(e *Engagement, now time.Time) (verdict, bool) {
	if e.Status != referral.StatusPending || !DateDue(e.RequestDate, now) {
		return verdict{}, false
	}
	return verdict{
		urgency:      UrgencyHigh,
		overdueHours: hoursSinceDate(e.RequestDate, now),
		reason:       fmt.Sprintf("referral request due since %s", e.RequestDate.Format("2 Jan")),
	}, true
}

// dueReferralStandard: the follow-up date on an outstanding request has
// arrived. One-shot on (follow_up, standard).
func dueReferralStandard(e *Engagement, now time.Time) (verdict, bool) {
	if e.Status != referral.StatusRequested || !DateDue(e.FollowUpDate, now) {
		return verdict{}, false
	}
	return verdict{
		urgency:      UrgencyHigh,
		overdueHours: hoursSinceDate(e.FollowUpDate, now),
		reason:       fmt.Sprintf("referral follow-up due since %s", e.FollowUpDate.Format("2 Jan")),
	}, true
}

// dueReferralThankYou: the referral came through; thank the contact. One-shot
// on (follow_up, thank_you).
func dueReferralThankYou(e *Engagement, now time.Time) (verdict, bool) {
	if e.Status != referral.StatusAccepted && e.Status != referral.StatusCompleted {
		return verdict{}, false
	}
	if !DateDue(e.FollowUpDate, now) {
		return verdict{}, false
	}
	return verdict{
		urgency:      UrgencyHigh,
		overdueHours: hoursSinceDate(e.FollowUpDate, now),
		reason:       fmt.Sprintf("referral %s; thank-you due since %s", e.Status, e.FollowUpDate.Format("2 Jan")),
	}, true
}
