package uow

import (
	"context"

	"autolend-backend/internal/domain/loan"
	"autolend-backend/internal/domain/offer"
)

type Repos struct {
	Loans  loan.Repository
	Offers offer.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn in one storage transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it to fn.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
