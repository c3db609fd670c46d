package vehiclemock

import (
	"context"

	domain "autolend-backend/internal/domain/vehicle"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies vehicle.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, v *domain.Vehicle) error
	GetByVehicleIDFn func(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	GetByVINFn       func(ctx context.Context, vin string) (*domain.Vehicle, error)
	GetByIDFn        func(ctx context.Context, id uint64) (*domain.Vehicle, error)
	ListFn           func(ctx context.Context, f domain.Filter) ([]domain.Vehicle, error)
	SearchFn         func(ctx context.Context, term string) ([]domain.Vehicle, error)
	SaveFn           func(ctx context.Context, v *domain.Vehicle) error
	DeleteFn         func(ctx context.Context, v *domain.Vehicle) error
	CountByMakeFn    func(ctx context.Context) ([]domain.MakeCount, error)
}

func (m *Repo) Create(ctx context.Context, v *domain.Vehicle) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}

func (m *Repo) GetByVehicleID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if m.GetByVehicleIDFn != nil {
		return m.GetByVehicleIDFn(ctx, vehicleID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByVIN(ctx context.Context, vin string) (*domain.Vehicle, error) {
	if m.GetByVINFn != nil {
		return m.GetByVINFn(ctx, vin)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Vehicle, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Vehicle, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) Search(ctx context.Context, term string) ([]domain.Vehicle, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, v *domain.Vehicle) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, v)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, v *domain.Vehicle) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, v)
	}
	return nil
}

func (m *Repo) CountByMake(ctx context.Context) ([]domain.MakeCount, error) {
	if m.CountByMakeFn != nil {
		return m.CountByMakeFn(ctx)
	}
	return nil, nil
}
