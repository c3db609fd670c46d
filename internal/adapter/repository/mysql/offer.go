package mysql

import (
	"context"

	offerDomain "autolend-backend/internal/domain/offer"

	"gorm.io/gorm"
)

type OfferRepository struct{ db *gorm.DB }

func NewOfferRepository(db *gorm.DB) *OfferRepository { return &OfferRepository{db: db} }

func (r *OfferRepository) Create(ctx context.Context, o *offerDomain.Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfferRepository) Save(ctx context.Context, o *offerDomain.Offer) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OfferRepository) GetByOfferID(ctx context.Context, offerID string) (*offerDomain.Offer, error) {
	var out offerDomain.Offer
	res := r.db.WithContext(ctx).Where("offer_id = ?", offerID).First(&out)
	return &out, res.Error
}

func (r *OfferRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]offerDomain.Offer, error) {
	var out []offerDomain.Offer
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *OfferRepository) RejectPendingSiblings(ctx context.Context, loanID, keepID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&offerDomain.Offer{}).
		Where("loan_id = ? AND id <> ? AND status = ?", loanID, keepID, offerDomain.StatusPending).
		Update("status", offerDomain.StatusRejected)
	return res.RowsAffected, res.Error
}
