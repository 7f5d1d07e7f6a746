package projections

import (
	"context"

	contactStore "pursuit/internal/adapters/storage/contact"
	interviewStore "pursuit/internal/adapters/storage/interview"
	referralStore "pursuit/internal/adapters/storage/referral"
	domainContact "pursuit/internal/domain/contact"
	domainInterview "pursuit/internal/domain/interview"
	domainReferral "pursuit/internal/domain/referral"
)

// ContactStore interface for contact queries.
type ContactStore interface {
	GetByID(ctx context.Context, id string) (domainContact.Contact, error)
	List(ctx context.Context, filter contactStore.ListFilter) ([]domainContact.Contact, error)
}

// InterviewStore interface for interview queries.
type InterviewStore interface {
	GetByID(ctx context.Context, id string) (domainInterview.Interview, error)
	List(ctx context.Context, filter interviewStore.ListFilter) ([]domainInterview.Interview, error)
}

// ReferralStore interface for referral queries.
type ReferralStore interface {
	GetByID(ctx context.Context, id string) (domainReferral.Referral, error)
	List(ctx context.Context, filter referralStore.ListFilter) ([]domainReferral.Referral, error)
}
