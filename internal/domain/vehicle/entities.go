package vehicle

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("vehicle not found")
	ErrVINExists = errors.New("vehicle with this VIN already exists")
	// ErrInUse is returned when a delete would orphan loans that still
	// reference the vehicle.
	ErrInUse = errors.New("vehicle is referenced by existing loans")
)

type Vehicle struct {
	ID        uint64         `gorm:"primaryKey;column:id" json:"-"`
	VehicleID string         `gorm:"size:32;uniqueIndex:ux_vehicles_vehicle_id_active" json:"vehicle_id"`
	VIN       *string        `gorm:"column:vin;size:17;uniqueIndex:ux_vehicles_vin_active" json:"vin"`
	Make      string         `gorm:"size:60" json:"make"`
	Model     string         `gorm:"size:60" json:"model"`
	Year      int            `gorm:"column:year" json:"year"`
	Mileage   int            `gorm:"column:mileage;default:0" json:"mileage"`
	OwnerID   *uint64        `gorm:"column:owner_id;index" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Vehicle) TableName() string { return "vehicles" }

// VINString returns the VIN or "" when none is recorded.
func (v *Vehicle) VINString() string {
	if v.VIN == nil {
		return ""
	}
	return *v.VIN
}
