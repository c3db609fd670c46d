package mysql

import (
	"context"

	loanDomain "autolend-backend/internal/domain/loan"
	offerDomain "autolend-backend/internal/domain/offer"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.Filter) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ApplicantEmail != "" {
		q = q.Where("applicant_email = ?", f.ApplicantEmail)
	}
	var out []loanDomain.Loan
	res := q.Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CountByVehicleID(ctx context.Context, vehicleID uint64) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&n)
	return n, res.Error
}

// Delete removes the loan together with the offers it owns, in one tx.
func (r *LoanRepository) Delete(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("loan_id = ?", l.ID).Delete(&offerDomain.Offer{}).Error; err != nil {
			return err
		}
		return tx.Delete(l).Error
	})
}
