package offer

import "context"

type Repository interface {
	Create(ctx context.Context, o *Offer) error
	GetByOfferID(ctx context.Context, offerID string) (*Offer, error)
	// ListByLoanID returns all offers for the loan, oldest first. Empty is not
	// an error here; callers decide whether empty means anything.
	ListByLoanID(ctx context.Context, loanID uint64) ([]Offer, error)
	Save(ctx context.Context, o *Offer) error
	// RejectPendingSiblings marks every pending offer on the loan other than
	// keepID as rejected. Returns the number of offers rejected.
	RejectPendingSiblings(ctx context.Context, loanID, keepID uint64) (int64, error)
}
