package vehicle

import "context"

type Filter struct {
	// Make and Model are matched as case-insensitive substrings.
	Make  string
	Model string
	// Year restricts to an exact year when non-zero.
	Year int
}

type MakeCount struct {
	Make  string `json:"make"`
	Count int64  `json:"count"`
}

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByVehicleID(ctx context.Context, vehicleID string) (*Vehicle, error)
	GetByVIN(ctx context.Context, vin string) (*Vehicle, error)
	GetByID(ctx context.Context, id uint64) (*Vehicle, error)
	// List returns vehicles matching f ordered newest-created-first.
	List(ctx context.Context, f Filter) ([]Vehicle, error)
	// Search matches term as a substring of make, model, or VIN.
	Search(ctx context.Context, term string) ([]Vehicle, error)
	Save(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, v *Vehicle) error
	// CountByMake groups vehicles per manufacturer, most common first.
	CountByMake(ctx context.Context) ([]MakeCount, error)
}
