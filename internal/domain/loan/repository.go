package loan

import "context"

type Filter struct {
	// Status restricts the result to one status when non-empty.
	Status Status
	// ApplicantEmail restricts the result to one applicant when non-empty.
	ApplicantEmail string
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the remainder of the
	// surrounding transaction. Outside a transaction it behaves like GetByLoanID.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByIDForUpdate is GetByID with the row locked for the surrounding
	// transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	// List returns loans matching f ordered newest-created-first.
	List(ctx context.Context, f Filter) ([]Loan, error)
	CountByVehicleID(ctx context.Context, vehicleID uint64) (int64, error)
	Save(ctx context.Context, l *Loan) error
	// Delete removes the loan and all offers owned by it.
	Delete(ctx context.Context, l *Loan) error
}
