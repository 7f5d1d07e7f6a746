package referral

import (
	"context"

	domain "pursuit/internal/domain/referral"
)

// Store persists Referral state. Save is a whole-record update, same as the
// interview store: the record and its follow-up history are written from the
// full merged record.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Referral, error)
	Save(ctx context.Context, value domain.Referral) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Referral, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status    string
	ContactID string
	Limit     int
	Offset    int
}
