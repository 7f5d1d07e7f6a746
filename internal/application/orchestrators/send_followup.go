package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	emailAdapter "pursuit/internal/adapters/email"
	"pursuit/internal/domain/contact"
	"pursuit/internal/domain/followup"
)

// mdRenderer converts markdown bodies to HTML for the email provider.
// Raw HTML in the input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// ContactLookup resolves the recipient for a follow-up email.
type ContactLookup interface {
	GetByID(ctx context.Context, id string) (contact.Contact, error)
}

// SendFollowUpInput carries input for the send follow-up orchestrator.
// Body is markdown; when empty the candidate's suggested message is used.
type SendFollowUpInput struct {
	EntityKind string
	EntityID   string
	ContactID  string
	Action     string
	Subkind    string
	Subject    string
	Body       string
}

// SendFollowUpDeps holds dependencies for SendFollowUp.
type SendFollowUpDeps struct {
	InterviewStore InterviewStoreForOrchestrator
	ReferralStore  ReferralStoreForOrchestrator
	ContactStore   ContactLookup
	Sender         emailAdapter.Sender
	From           string // sender address; empty falls back to the sender's default
	ReplyTo        string
	Now            func() time.Time
}

var ErrContactHasNoEmail = errors.New("contact has no email address")

// ExecuteSendFollowUp sends a follow-up email and then records the action on
// the entity. The send happens first; if recording fails afterwards the email
// is already out, so the error says so and the caller must not resend.
// PRE: Entity and contact exist; contact has an email address; Body or a
// suggested message is available
// POST: Email sent and action recorded with status=sent
func ExecuteSendFollowUp(ctx context.Context, input SendFollowUpInput, deps SendFollowUpDeps) error {
	if input.ContactID == "" {
		return errors.New("contact ID is required")
	}
	if !followup.IsValidAction(input.Action) {
		return fmt.Errorf("unknown follow-up action %q", input.Action)
	}

	c, err := deps.ContactStore.GetByID(ctx, input.ContactID)
	if err != nil {
		return errors.New("contact not found")
	}
	if c.Email == "" {
		return ErrContactHasNoEmail
	}

	body := input.Body
	if body == "" {
		return errors.New("message body is required")
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(body), &buf); err != nil {
		return fmt.Errorf("render message body: %w", err)
	}

	subject := input.Subject
	if subject == "" {
		subject = defaultSubject(input.Action, input.Subkind)
	}

	if _, err := deps.Sender.Send(ctx, emailAdapter.SendRequest{
		To:      c.Email,
		From:    deps.From,
		Subject: subject,
		HTML:    buf.String(),
		ReplyTo: deps.ReplyTo,
	}); err != nil {
		return &followup.DispatchError{
			EntityKind: input.EntityKind, EntityID: input.EntityID, Action: input.Action,
			Err: fmt.Errorf("send: %w", err),
		}
	}

	if err := ExecuteRecordFollowUp(ctx, RecordFollowUpInput{
		EntityKind: input.EntityKind,
		EntityID:   input.EntityID,
		Action:     input.Action,
		Subkind:    input.Subkind,
	}, RecordFollowUpDeps{
		InterviewStore: deps.InterviewStore,
		ReferralStore:  deps.ReferralStore,
		Now:            deps.Now,
	}); err != nil {
		slog.Error("followup_event", "event", "followup_sent_unrecorded",
			"entity_kind", input.EntityKind, "entity_id", input.EntityID,
			"action", input.Action, "error", err)
		return &followup.DispatchError{
			EntityKind: input.EntityKind, EntityID: input.EntityID, Action: input.Action,
			Err: fmt.Errorf("email sent but recording failed, do not resend: %w", err),
		}
	}

	slog.Info("followup_event", "event", "followup_sent",
		"entity_kind", input.EntityKind, "entity_id", input.EntityID,
		"action", input.Action, "to", c.Email)
	return nil
}

// defaultSubject maps an action to a reasonable email subject.
func defaultSubject(action, subkind string) string {
	switch action {
	case followup.ActionThankYou:
		return "Thank you for your time"
	case followup.ActionStatusInquiry:
		return "Checking in on next steps"
	case followup.ActionFeedbackRequest:
		return "Request for feedback"
	case followup.ActionFollowUp:
		if subkind == followup.SubkindThankYou {
			return "Thank you for the referral"
		}
		return "Following up"
	}
	return "Following up"
}
