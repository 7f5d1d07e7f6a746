package interview

import (
	"context"

	domain "pursuit/internal/domain/interview"
)

// Store persists Interview state. Save is a whole-record update: it writes
// the row and its follow-up history from the full record, so callers must
// merge new follow-ups into the loaded record before saving.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Interview, error)
	Save(ctx context.Context, value domain.Interview) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Interview, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status    string
	ContactID string
	Limit     int
	Offset    int
}
