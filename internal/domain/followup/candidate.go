package followup

// Urgency tiers for ranking candidates.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// urgencyRank orders tiers for sorting: High > Medium > Low.
var urgencyRank = map[string]int{
	UrgencyHigh:   3,
	UrgencyMedium: 2,
	UrgencyLow:    1,
}

// Candidate is a computed, not-yet-dispatched recommendation that a
// specific follow-up action is due. Candidates are never persisted; the
// only persisted artifact is the ActionRecord written when the operator
// confirms one.
type Candidate struct {
	EntityID   string `json:"EntityID"`
	EntityKind string `json:"EntityKind"` // interview, referral
	Action     string `json:"Action"`
	Subkind    string `json:"Subkind,omitempty"`
	Urgency    string `json:"Urgency"` // high, medium, low

	// DueReason is a human-readable explanation of why this action is due.
	DueReason string `json:"DueReason"`

	// SuggestedMessage is a literal template with field substitutions only
	// (contact name, company, position). The operator may edit it before
	// sending.
	SuggestedMessage string `json:"SuggestedMessage"`

	// OverdueHours orders candidates within an urgency tier, most overdue
	// first. For date-based referral rules it counts from local midnight of
	// the due date.
	OverdueHours int `json:"OverdueHours"`
}
