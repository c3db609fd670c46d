package loanmock

import (
	"context"

	domain "autolend-backend/internal/domain/loan"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies loan.Repository.
// Only the methods a test cares about need to be set.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByIDFn              func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByIDForUpdateFn     func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListFn                 func(ctx context.Context, f domain.Filter) ([]domain.Loan, error)
	CountByVehicleIDFn     func(ctx context.Context, vehicleID uint64) (int64, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	DeleteFn               func(ctx context.Context, l *domain.Loan) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return m.GetByLoanID(ctx, loanID)
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) CountByVehicleID(ctx context.Context, vehicleID uint64) (int64, error) {
	if m.CountByVehicleIDFn != nil {
		return m.CountByVehicleIDFn(ctx, vehicleID)
	}
	return 0, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, l *domain.Loan) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, l)
	}
	return nil
}
