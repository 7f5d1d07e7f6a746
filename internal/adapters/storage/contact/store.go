package contact

import (
	"context"

	domain "pursuit/internal/domain/contact"
)

// Store persists Contact state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Contact, error)
	Save(ctx context.Context, value domain.Contact) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Contact, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Relationship string
	Company      string
	Search       string // substring match on name
	Limit        int
	Offset       int
}
