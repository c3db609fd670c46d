package mysql

import (
	"context"

	vehicleDomain "autolend-backend/internal/domain/vehicle"

	"gorm.io/gorm"
)

type VehicleRepository struct{ db *gorm.DB }

func NewVehicleRepository(db *gorm.DB) *VehicleRepository { return &VehicleRepository{db: db} }

func (r *VehicleRepository) Create(ctx context.Context, v *vehicleDomain.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VehicleRepository) Save(ctx context.Context, v *vehicleDomain.Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VehicleRepository) GetByVehicleID(ctx context.Context, vehicleID string) (*vehicleDomain.Vehicle, error) {
	var out vehicleDomain.Vehicle
	res := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).First(&out)
	return &out, res.Error
}

func (r *VehicleRepository) GetByVIN(ctx context.Context, vin string) (*vehicleDomain.Vehicle, error) {
	var out vehicleDomain.Vehicle
	res := r.db.WithContext(ctx).Where("vin = ?", vin).First(&out)
	return &out, res.Error
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uint64) (*vehicleDomain.Vehicle, error) {
	var out vehicleDomain.Vehicle
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *VehicleRepository) List(ctx context.Context, f vehicleDomain.Filter) ([]vehicleDomain.Vehicle, error) {
	q := r.db.WithContext(ctx).Model(&vehicleDomain.Vehicle{})
	if f.Make != "" {
		q = q.Where("make LIKE ?", "%"+f.Make+"%")
	}
	if f.Model != "" {
		q = q.Where("model LIKE ?", "%"+f.Model+"%")
	}
	if f.Year != 0 {
		q = q.Where("year = ?", f.Year)
	}
	var out []vehicleDomain.Vehicle
	res := q.Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *VehicleRepository) Search(ctx context.Context, term string) ([]vehicleDomain.Vehicle, error) {
	like := "%" + term + "%"
	var out []vehicleDomain.Vehicle
	res := r.db.WithContext(ctx).
		Where("make LIKE ? OR model LIKE ? OR vin LIKE ?", like, like, like).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *VehicleRepository) Delete(ctx context.Context, v *vehicleDomain.Vehicle) error {
	return r.db.WithContext(ctx).Delete(v).Error
}

func (r *VehicleRepository) CountByMake(ctx context.Context) ([]vehicleDomain.MakeCount, error) {
	var out []vehicleDomain.MakeCount
	res := r.db.WithContext(ctx).
		Model(&vehicleDomain.Vehicle{}).
		Select("make, COUNT(id) AS count").
		Group("make").
		Order("count DESC").
		Scan(&out)
	return out, res.Error
}
