package loan

import (
	"context"
	"errors"
	"time"

	domain "autolend-backend/internal/domain/loan"
	"autolend-backend/internal/domain/uow"
	domainUser "autolend-backend/internal/domain/user"
	domainVehicle "autolend-backend/internal/domain/vehicle"
	"autolend-backend/internal/infrastructure/metrics"
	"autolend-backend/internal/usecase/valuation"
	"autolend-backend/pkg/id"

	"gorm.io/gorm"
)

// Valuer supplies a fresh vehicle valuation. Implemented by the valuation
// usecase; never fails.
type Valuer interface {
	Estimate(ctx context.Context, vin string) valuation.Valuation
}

type Usecase struct {
	loans    domain.Repository
	vehicles domainVehicle.Repository
	users    domainUser.Repository
	valuer   Valuer
	uow      uow.UnitOfWork
}

func NewUsecase(loans domain.Repository, vehicles domainVehicle.Repository, users domainUser.Repository, valuer Valuer, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, vehicles: vehicles, users: users, valuer: valuer, uow: tx}
}

type SubmitInput struct {
	VehicleID       string  `json:"vehicle_id"`
	UserID          string  `json:"user_id,omitempty"`
	ApplicantName   string  `json:"applicant_name"`
	ApplicantEmail  string  `json:"applicant_email"`
	RequestedAmount float64 `json:"requested_amount"`
	TermMonths      int     `json:"term_months"`
}

type LoanDTO struct {
	LoanID          string    `json:"loan_id"`
	ApplicantName   string    `json:"applicant_name"`
	ApplicantEmail  string    `json:"applicant_email"`
	RequestedAmount float64   `json:"requested_amount"`
	ApprovedAmount  float64   `json:"approved_amount"`
	TermMonths      int       `json:"term_months"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type VehicleSummary struct {
	VIN   string `json:"vin"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

type ValuationSummary struct {
	EstimatedValue float64 `json:"estimated_value"`
	Confidence     string  `json:"confidence"`
}

type Summary struct {
	LoanID          string           `json:"loan_id"`
	ApplicantName   string           `json:"applicant_name"`
	Status          string           `json:"status"`
	RequestedAmount float64          `json:"requested_amount"`
	ApprovedAmount  float64          `json:"approved_amount"`
	Vehicle         VehicleSummary   `json:"vehicle"`
	Valuation       ValuationSummary `json:"valuation"`
}

// Submit runs the only eligibility-checked path into the loan book: resolve
// the vehicle, price it, clamp the request at the loan-to-value ceiling, and
// persist the loan in its initial status.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*LoanDTO, error) {
	v, err := u.vehicles.GetByVehicleID(ctx, in.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainVehicle.ErrNotFound
		}
		return nil, err
	}

	var userRef *uint64
	if in.UserID != "" {
		usr, err := u.users.GetByUserID(ctx, in.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domainUser.ErrNotFound
			}
			return nil, err
		}
		userRef = &usr.ID
	}

	val := u.valuer.Estimate(ctx, v.VINString())
	approved := ApprovedAmount(in.RequestedAmount, val.EstimatedValue)
	status := InitialStatus(in.RequestedAmount, approved)

	l := &domain.Loan{
		LoanID:          id.NewID32(),
		VehicleID:       v.ID,
		UserID:          userRef,
		ApplicantName:   in.ApplicantName,
		ApplicantEmail:  in.ApplicantEmail,
		RequestedAmount: in.RequestedAmount,
		ApprovedAmount:  approved,
		TermMonths:      in.TermMonths,
		Status:          status,
		StatusUpdatedAt: time.Now().UTC(),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}

	metrics.LoansSubmitted.WithLabelValues(string(status)).Inc()
	return toDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

// List returns all loans newest-first, optionally restricted to one status.
func (u *Usecase) List(ctx context.Context, status string) ([]LoanDTO, error) {
	f := domain.Filter{}
	// An unknown status filter is ignored rather than rejected.
	if s := domain.Status(status); s.Valid() {
		f.Status = s
	}
	ls, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out, nil
}

// ListByApplicant returns the applicant's loans newest-first. Zero loans is
// reported as not-found: this design cannot tell an unknown applicant from
// one who never applied.
func (u *Usecase) ListByApplicant(ctx context.Context, email string) ([]LoanDTO, error) {
	ls, err := u.loans.List(ctx, domain.Filter{ApplicantEmail: email})
	if err != nil {
		return nil, err
	}
	if len(ls) == 0 {
		return nil, domain.ErrNotFound
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i]))
	}
	return out, nil
}

// SetStatus moves the loan to newStatus under the transition table, with the
// loan row locked for the duration of the update.
func (u *Usecase) SetStatus(ctx context.Context, loanID string, newStatus string) (*LoanDTO, error) {
	target := domain.Status(newStatus)
	if !target.Valid() {
		return nil, domain.ErrInvalidTransition
	}

	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if !l.Status.CanTransitionTo(target) {
			return domain.ErrInvalidTransition
		}
		l.Status = target
		l.StatusUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Summarize composes the loan, its vehicle, and a fresh valuation into one
// read view. The valuation is re-quoted on every call, so it can differ from
// the one that drove the original approval.
func (u *Usecase) Summarize(ctx context.Context, loanID string) (*Summary, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	v, err := u.vehicles.GetByID(ctx, l.VehicleID)
	if err != nil {
		// A loan pointing at a deleted vehicle is an inconsistency we surface
		// rather than paper over.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainVehicle.ErrNotFound
		}
		return nil, err
	}

	val := u.valuer.Estimate(ctx, v.VINString())
	confidence := val.Confidence
	if confidence == "" {
		confidence = "moderate"
	}

	return &Summary{
		LoanID:          l.LoanID,
		ApplicantName:   l.ApplicantName,
		Status:          string(l.Status),
		RequestedAmount: l.RequestedAmount,
		ApprovedAmount:  l.ApprovedAmount,
		Vehicle: VehicleSummary{
			VIN:   v.VINString(),
			Make:  v.Make,
			Model: v.Model,
			Year:  v.Year,
		},
		Valuation: ValuationSummary{
			EstimatedValue: val.EstimatedValue,
			Confidence:     confidence,
		},
	}, nil
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:          l.LoanID,
		ApplicantName:   l.ApplicantName,
		ApplicantEmail:  l.ApplicantEmail,
		RequestedAmount: l.RequestedAmount,
		ApprovedAmount:  l.ApprovedAmount,
		TermMonths:      l.TermMonths,
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}
