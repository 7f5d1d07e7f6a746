package contact

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 120
	MaxNotesLength = 20000
)

// Relationship constants
const (
	RelationshipRecruiter = "recruiter"
	RelationshipReferrer  = "referrer"
	RelationshipPeer      = "peer"
	RelationshipManager   = "manager"
	RelationshipOther     = "other"
)

// ValidRelationships contains all valid relationship values.
var ValidRelationships = []string{RelationshipRecruiter, RelationshipReferrer, RelationshipPeer, RelationshipManager, RelationshipOther}

// Domain errors
var (
	ErrEmptyName           = errors.New("contact name cannot be empty")
	ErrNameTooLong         = errors.New("contact name cannot exceed 120 characters")
	ErrInvalidEmail        = errors.New("contact email must contain '@'")
	ErrInvalidRelationship = errors.New("relationship must be one of: recruiter, referrer, peer, manager, other")
	ErrNotesTooLong        = errors.New("contact notes cannot exceed 20000 characters")
)

// Contact is a person in the operator's job-search network.
// Notes supports Markdown formatting.
type Contact struct {
	ID           string
	Name         string
	Email        string
	Company      string
	Position     string // the contact's own role, display only
	Relationship string // recruiter, referrer, peer, manager, other
	Notes        string // Markdown content
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks if the Contact has valid data.
// PRE: Contact struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	if c.Relationship != "" && !isValidRelationship(c.Relationship) {
		return ErrInvalidRelationship
	}
	if len(c.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	return nil
}

func isValidRelationship(r string) bool {
	for _, v := range ValidRelationships {
		if v == r {
			return true
		}
	}
	return false
}
