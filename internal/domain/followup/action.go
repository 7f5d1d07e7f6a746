package followup

import "time"

// Action kind constants for follow-up communications.
const (
	ActionThankYou        = "thank_you"
	ActionStatusInquiry   = "status_inquiry"
	ActionFeedbackRequest = "feedback_request"
	ActionFollowUp        = "follow_up"
)

// Subkind constants for referral follow_up actions.
const (
	SubkindStandard = "standard"
	SubkindThankYou = "thank_you"
)

// Action record statuses. Only a "sent" record counts as suppression
// evidence; a "pending" record leaves the candidate due.
const (
	ActionStatusSent    = "sent"
	ActionStatusPending = "pending"
)

// ValidActions contains all valid action kinds.
var ValidActions = []string{ActionThankYou, ActionStatusInquiry, ActionFeedbackRequest, ActionFollowUp}

// ActionRecord is an immutable record of a follow-up action that has been
// sent (or recorded as pending). Records are append-only on the owning
// engagement; nothing edits or removes a prior record.
type ActionRecord struct {
	Kind    string
	Subkind string // set only for follow_up records
	SentAt  time.Time
	Status  string // sent, pending
}

// IsValidAction reports whether kind is a known action kind.
func IsValidAction(kind string) bool {
	for _, v := range ValidActions {
		if v == kind {
			return true
		}
	}
	return false
}
