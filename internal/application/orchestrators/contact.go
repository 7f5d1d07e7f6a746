package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pursuit/internal/domain/contact"
)

// ContactStoreForOrchestrator defines the store interface needed by contact orchestrators.
type ContactStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (contact.Contact, error)
	Save(ctx context.Context, c contact.Contact) error
	Delete(ctx context.Context, id string) error
}

// --- Create Contact ---

// CreateContactInput carries input for the create contact orchestrator.
type CreateContactInput struct {
	Name         string
	Email        string
	Company      string
	Position     string
	Relationship string
	Notes        string
}

// CreateContactDeps holds dependencies for CreateContact.
type CreateContactDeps struct {
	ContactStore ContactStoreForOrchestrator
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteCreateContact creates a new contact.
// PRE: Name must be non-empty; Relationship (if set) must be valid
// POST: Contact created with generated ID
func ExecuteCreateContact(ctx context.Context, input CreateContactInput, deps CreateContactDeps) (contact.Contact, error) {
	c := contact.Contact{
		ID:           deps.GenerateID(),
		Name:         input.Name,
		Email:        input.Email,
		Company:      input.Company,
		Position:     input.Position,
		Relationship: input.Relationship,
		Notes:        input.Notes,
		CreatedAt:    deps.Now(),
	}

	if err := c.Validate(); err != nil {
		return contact.Contact{}, err
	}

	if err := deps.ContactStore.Save(ctx, c); err != nil {
		return contact.Contact{}, err
	}

	slog.Info("contact_event", "event", "contact_created", "contact_id", c.ID, "name", c.Name)
	return c, nil
}

// --- Edit Contact ---

// EditContactInput carries input for the edit contact orchestrator.
// Partial-update semantics:
//   - Name, Relationship: only updated when the input value is non-empty.
//   - Email, Company, Position, Notes: always overwritten (can be cleared by
//     sending zero-values).
type EditContactInput struct {
	ContactID    string
	Name         string
	Email        string
	Company      string
	Position     string
	Relationship string
	Notes        string
}

// EditContactDeps holds dependencies for EditContact.
type EditContactDeps struct {
	ContactStore ContactStoreForOrchestrator
	Now          func() time.Time
}

// ExecuteEditContact updates fields on an existing contact.
// PRE: ContactID refers to an existing contact
// POST: Contact updated with UpdatedAt=now
func ExecuteEditContact(ctx context.Context, input EditContactInput, deps EditContactDeps) (contact.Contact, error) {
	if input.ContactID == "" {
		return contact.Contact{}, errors.New("contact ID is required")
	}

	c, err := deps.ContactStore.GetByID(ctx, input.ContactID)
	if err != nil {
		return contact.Contact{}, errors.New("contact not found")
	}

	if input.Name != "" {
		c.Name = input.Name
	}
	if input.Relationship != "" {
		c.Relationship = input.Relationship
	}
	c.Email = input.Email
	c.Company = input.Company
	c.Position = input.Position
	c.Notes = input.Notes
	c.UpdatedAt = deps.Now()

	if err := c.Validate(); err != nil {
		return contact.Contact{}, err
	}

	if err := deps.ContactStore.Save(ctx, c); err != nil {
		return contact.Contact{}, err
	}

	slog.Info("contact_event", "event", "contact_updated", "contact_id", c.ID)
	return c, nil
}

// --- Delete Contact ---

// DeleteContactDeps holds dependencies for DeleteContact.
type DeleteContactDeps struct {
	ContactStore ContactStoreForOrchestrator
}

// ExecuteDeleteContact removes a contact.
// PRE: ContactID refers to an existing contact
// POST: Contact removed; interviews and referrals keep their contact_id and
// fall back to a generic greeting when the name can no longer be resolved
func ExecuteDeleteContact(ctx context.Context, contactID string, deps DeleteContactDeps) error {
	if contactID == "" {
		return errors.New("contact ID is required")
	}

	if _, err := deps.ContactStore.GetByID(ctx, contactID); err != nil {
		return errors.New("contact not found")
	}

	if err := deps.ContactStore.Delete(ctx, contactID); err != nil {
		return err
	}

	slog.Info("contact_event", "event", "contact_deleted", "contact_id", contactID)
	return nil
}
