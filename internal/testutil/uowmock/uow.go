package uowmock

import (
	"context"

	"autolend-backend/internal/domain/loan"
	"autolend-backend/internal/domain/uow"
)

// UoW runs the callback against the given repos with no real transaction.
// Rollback semantics are not simulated; tests assert on the calls made.
type UoW struct {
	Repos uow.Repos
}

func New(r uow.Repos) *UoW { return &UoW{Repos: r} }

func (u *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return fn(u.Repos)
}

func (u *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	l, err := u.Repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return err
	}
	return fn(u.Repos, l)
}
