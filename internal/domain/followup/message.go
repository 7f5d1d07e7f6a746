package followup

import (
	"fmt"

	"pursuit/internal/domain/interview"
)

// SuggestedMessage builds the literal message template for an action,
// substituting only fields already present on the engagement. No generation
// beyond string substitution.
func SuggestedMessage(action, subkind string, e *Engagement) string {
	name := e.ContactName
	if name == "" {
		name = "there"
	}

	switch action {
	case ActionThankYou:
		return fmt.Sprintf(
			"Hi %s, thank you for taking the time to speak with me about the %s role at %s. I really enjoyed our conversation and I'm excited about the opportunity.",
			name, e.Position, e.Company)
	case ActionStatusInquiry:
		return fmt.Sprintf(
			"Hi %s, I wanted to check in on the status of my application for the %s role at %s. Is there any update you can share?",
			name, e.Position, e.Company)
	case ActionFeedbackRequest:
		if e.Outcome == interview.OutcomePassed {
			return fmt.Sprintf(
				"Hi %s, I'm thrilled about moving forward with the %s role at %s. Could you share any onboarding tips as I get ready for the next step?",
				name, e.Position, e.Company)
		}
		return fmt.Sprintf(
			"Hi %s, thank you again for considering me for the %s role at %s. I'd appreciate any feedback from my interview that could help me improve.",
			name, e.Position, e.Company)
	case ActionFollowUp:
		switch subkind {
		case SubkindStandard:
			return fmt.Sprintf(
				"Hi %s, I wanted to follow up on my referral request for the %s role at %s. I know you're busy; any update would be appreciated.",
				name, e.Position, e.Company)
		case SubkindThankYou:
			return fmt.Sprintf(
				"Hi %s, thank you so much for referring me for the %s role at %s. I really appreciate you putting your name behind me.",
				name, e.Position, e.Company)
		default:
			return fmt.Sprintf(
				"Hi %s, I wanted to reach out about a referral for the %s role at %s. Would you be open to referring me?",
				name, e.Position, e.Company)
		}
	}
	return ""
}
