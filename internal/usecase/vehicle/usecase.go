package vehicle

import (
	"context"
	"errors"
	"strings"
	"time"

	domainLoan "autolend-backend/internal/domain/loan"
	domain "autolend-backend/internal/domain/vehicle"
	"autolend-backend/internal/usecase/valuation"
	"autolend-backend/pkg/id"

	"gorm.io/gorm"
)

var ErrSearchTermTooShort = errors.New("search term must be at least 2 characters")

type Valuer interface {
	Estimate(ctx context.Context, vin string) valuation.Valuation
}

type Usecase struct {
	vehicles domain.Repository
	loans    domainLoan.Repository
	valuer   Valuer
}

func NewUsecase(vehicles domain.Repository, loans domainLoan.Repository, valuer Valuer) *Usecase {
	return &Usecase{vehicles: vehicles, loans: loans, valuer: valuer}
}

type CreateInput struct {
	VIN     string `json:"vin"`
	Make    string `json:"make"`
	Model   string `json:"model"`
	Year    int    `json:"year"`
	Mileage int    `json:"mileage"`
}

type UpdateInput struct {
	Make    *string `json:"make"`
	Model   *string `json:"model"`
	Year    *int    `json:"year"`
	Mileage *int    `json:"mileage"`
}

type VehicleDTO struct {
	VehicleID string    `json:"vehicle_id"`
	VIN       string    `json:"vin,omitempty"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Mileage   int       `json:"mileage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ValuationResult struct {
	valuation.Valuation
	Vehicle VehicleDTO `json:"vehicle"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*VehicleDTO, error) {
	if in.VIN != "" {
		if _, err := u.vehicles.GetByVIN(ctx, in.VIN); err == nil {
			return nil, domain.ErrVINExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	v := &domain.Vehicle{
		VehicleID: id.NewID32(),
		Make:      in.Make,
		Model:     in.Model,
		Year:      in.Year,
		Mileage:   in.Mileage,
	}
	if in.VIN != "" {
		vin := in.VIN
		v.VIN = &vin
	}
	if err := u.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	return toDTO(v), nil
}

func (u *Usecase) List(ctx context.Context, f domain.Filter) ([]VehicleDTO, error) {
	vs, err := u.vehicles.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toDTOs(vs), nil
}

func (u *Usecase) Search(ctx context.Context, term string) ([]VehicleDTO, error) {
	if len(strings.TrimSpace(term)) < 2 {
		return nil, ErrSearchTermTooShort
	}
	vs, err := u.vehicles.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}
	return toDTOs(vs), nil
}

// GetByIDOrVIN resolves the argument as a public vehicle id when it looks
// like one (32-char hex), otherwise as a VIN.
func (u *Usecase) GetByIDOrVIN(ctx context.Context, idOrVin string) (*VehicleDTO, error) {
	v, err := u.resolve(ctx, idOrVin)
	if err != nil {
		return nil, err
	}
	return toDTO(v), nil
}

func (u *Usecase) Update(ctx context.Context, idOrVin string, in UpdateInput) (*VehicleDTO, error) {
	v, err := u.resolve(ctx, idOrVin)
	if err != nil {
		return nil, err
	}
	if in.Make != nil {
		v.Make = *in.Make
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.Year != nil {
		v.Year = *in.Year
	}
	if in.Mileage != nil {
		v.Mileage = *in.Mileage
	}
	if err := u.vehicles.Save(ctx, v); err != nil {
		return nil, err
	}
	return toDTO(v), nil
}

// Remove deletes the vehicle unless loans still reference it. Loans do not
// cascade from vehicles, so deleting one out from under a live loan would
// leave the book inconsistent.
func (u *Usecase) Remove(ctx context.Context, idOrVin string) error {
	v, err := u.resolve(ctx, idOrVin)
	if err != nil {
		return err
	}
	n, err := u.loans.CountByVehicleID(ctx, v.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse
	}
	return u.vehicles.Delete(ctx, v)
}

// ValuationByVIN quotes a registered vehicle. The VIN must belong to a known
// vehicle; the quote itself never fails.
func (u *Usecase) ValuationByVIN(ctx context.Context, vin string) (*ValuationResult, error) {
	v, err := u.vehicles.GetByVIN(ctx, vin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	val := u.valuer.Estimate(ctx, vin)
	return &ValuationResult{Valuation: val, Vehicle: *toDTO(v)}, nil
}

func (u *Usecase) ManufacturerStats(ctx context.Context) ([]domain.MakeCount, error) {
	return u.vehicles.CountByMake(ctx)
}

func (u *Usecase) resolve(ctx context.Context, idOrVin string) (*domain.Vehicle, error) {
	var (
		v   *domain.Vehicle
		err error
	)
	if id.IsID32(idOrVin) {
		v, err = u.vehicles.GetByVehicleID(ctx, idOrVin)
	} else {
		v, err = u.vehicles.GetByVIN(ctx, idOrVin)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func toDTO(v *domain.Vehicle) *VehicleDTO {
	return &VehicleDTO{
		VehicleID: v.VehicleID,
		VIN:       v.VINString(),
		Make:      v.Make,
		Model:     v.Model,
		Year:      v.Year,
		Mileage:   v.Mileage,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func toDTOs(vs []domain.Vehicle) []VehicleDTO {
	out := make([]VehicleDTO, 0, len(vs))
	for i := range vs {
		out = append(out, *toDTO(&vs[i]))
	}
	return out
}
