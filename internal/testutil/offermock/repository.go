package offermock

import (
	"context"

	domain "autolend-backend/internal/domain/offer"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies offer.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, o *domain.Offer) error
	GetByOfferIDFn          func(ctx context.Context, offerID string) (*domain.Offer, error)
	ListByLoanIDFn          func(ctx context.Context, loanID uint64) ([]domain.Offer, error)
	SaveFn                  func(ctx context.Context, o *domain.Offer) error
	RejectPendingSiblingsFn func(ctx context.Context, loanID, keepID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, o *domain.Offer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByOfferID(ctx context.Context, offerID string) (*domain.Offer, error) {
	if m.GetByOfferIDFn != nil {
		return m.GetByOfferIDFn(ctx, offerID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Offer, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, o *domain.Offer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

func (m *Repo) RejectPendingSiblings(ctx context.Context, loanID, keepID uint64) (int64, error) {
	if m.RejectPendingSiblingsFn != nil {
		return m.RejectPendingSiblingsFn(ctx, loanID, keepID)
	}
	return 0, nil
}
