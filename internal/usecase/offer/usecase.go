package offer

import (
	"context"
	"errors"
	"time"

	domainLoan "autolend-backend/internal/domain/loan"
	domain "autolend-backend/internal/domain/offer"
	"autolend-backend/internal/domain/uow"
	"autolend-backend/internal/infrastructure/metrics"
	"autolend-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	loans  domainLoan.Repository
	offers domain.Repository
	uow    uow.UnitOfWork
}

func NewUsecase(loans domainLoan.Repository, offers domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, offers: offers, uow: tx}
}

type CreateInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	TenureMonths int     `json:"tenure_months"`
}

type OfferDTO struct {
	OfferID      string    `json:"offer_id"`
	LoanID       string    `json:"loan_id"`
	Amount       float64   `json:"amount"`
	InterestRate float64   `json:"interest_rate"`
	TenureMonths int       `json:"tenure_months"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateForLoan attaches a pending offer to an existing loan. The loan's own
// status is deliberately not checked: lenders may tender against any loan,
// and acceptance is where terminal loans are refused.
func (u *Usecase) CreateForLoan(ctx context.Context, loanID string, in CreateInput) (*OfferDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}

	o := &domain.Offer{
		OfferID:      id.NewID32(),
		LoanID:       l.ID,
		Amount:       in.Amount,
		InterestRate: in.InterestRate,
		TenureMonths: in.TenureMonths,
		Status:       domain.StatusPending,
	}
	if err := u.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	return toDTO(o, l.LoanID), nil
}

// ListForLoan returns the loan's offers, oldest first. A loan with no offers
// yields an empty slice, not an error.
func (u *Usecase) ListForLoan(ctx context.Context, loanID string) ([]OfferDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	os, err := u.offers.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]OfferDTO, 0, len(os))
	for i := range os {
		out = append(out, *toDTO(&os[i], l.LoanID))
	}
	return out, nil
}

// Accept settles the offer sequence for a loan in one transaction: the loan
// row is locked, the chosen offer becomes accepted, every sibling still
// pending is rejected, and the loan moves to approved. Terminal loans refuse
// the acceptance outright.
func (u *Usecase) Accept(ctx context.Context, offerID string) (*OfferDTO, error) {
	o, err := u.offers.GetByOfferID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var dto *OfferDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByIDForUpdate(ctx, o.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainLoan.ErrNotFound
			}
			return err
		}
		if l.Status.Terminal() {
			return domainLoan.ErrInvalidTransition
		}

		// Re-read inside the tx so two racing acceptances serialize on the
		// loan lock and the loser sees the settled state.
		cur, err := r.Offers.GetByOfferID(ctx, offerID)
		if err != nil {
			return domain.ErrNotFound
		}
		if cur.Status != domain.StatusPending {
			return domainLoan.ErrInvalidTransition
		}

		cur.Status = domain.StatusAccepted
		if err := r.Offers.Save(ctx, cur); err != nil {
			return err
		}
		if _, err := r.Offers.RejectPendingSiblings(ctx, l.ID, cur.ID); err != nil {
			return err
		}

		if l.Status != domainLoan.StatusApproved {
			l.Status = domainLoan.StatusApproved
			l.StatusUpdatedAt = time.Now().UTC()
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
		}

		dto = toDTO(cur, l.LoanID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OffersAccepted.Inc()
	return dto, nil
}

func toDTO(o *domain.Offer, loanID string) *OfferDTO {
	return &OfferDTO{
		OfferID:      o.OfferID,
		LoanID:       loanID,
		Amount:       o.Amount,
		InterestRate: o.InterestRate,
		TenureMonths: o.TenureMonths,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
	}
}
