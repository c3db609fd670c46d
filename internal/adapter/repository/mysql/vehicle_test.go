package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "autolend-backend/internal/domain/vehicle"
	"autolend-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type vehicleSQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id"`
	VehicleID string         `gorm:"size:32;column:vehicle_id"`
	VIN       *string        `gorm:"column:vin"`
	Make      string         `gorm:"column:make"`
	Model     string         `gorm:"column:model"`
	Year      int            `gorm:"column:year"`
	Mileage   int            `gorm:"column:mileage"`
	OwnerID   *uint64        `gorm:"column:owner_id"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (vehicleSQLite) TableName() string { return "vehicles" }

func openVehicleTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&vehicleSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeVehicle(vin, mk, model string, year int) *domain.Vehicle {
	v := &domain.Vehicle{
		VehicleID: id.NewID32(),
		Make:      mk,
		Model:     model,
		Year:      year,
		Mileage:   42_000,
	}
	if vin != "" {
		v.VIN = &vin
	}
	return v
}

func TestVehicleCreateAndGet(t *testing.T) {
	db := openVehicleTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	v := makeVehicle("1HGCM82633A004352", "Honda", "Accord", 2019)
	if err := repo.Create(ctx, v); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	byVIN, err := repo.GetByVIN(ctx, "1HGCM82633A004352")
	if err != nil {
		t.Fatalf("GetByVIN: %v", err)
	}
	if byVIN.VehicleID != v.VehicleID {
		t.Errorf("unexpected vehicle: %+v", byVIN)
	}

	byID, err := repo.GetByVehicleID(ctx, v.VehicleID)
	if err != nil {
		t.Fatalf("GetByVehicleID: %v", err)
	}
	if byID.VINString() != "1HGCM82633A004352" {
		t.Errorf("unexpected VIN: %q", byID.VINString())
	}
}

func TestVehicleGetByVIN_NotFound(t *testing.T) {
	db := openVehicleTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	_, err := repo.GetByVIN(ctx, "UNKNOWNVIN1234567")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestVehicleList_Filters(t *testing.T) {
	db := openVehicleTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	seeds := []*domain.Vehicle{
		makeVehicle("1HGCM82633A004352", "Honda", "Accord", 2019),
		makeVehicle("2HGFC2F59KH500001", "Honda", "Civic", 2021),
		makeVehicle("WDBRF61J13F379863", "Mercedes-Benz", "C240", 2003),
	}
	for _, v := range seeds {
		if err := repo.Create(ctx, v); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	hondas, err := repo.List(ctx, domain.Filter{Make: "Honda"})
	if err != nil {
		t.Fatalf("List by make: %v", err)
	}
	if len(hondas) != 2 {
		t.Fatalf("expected 2 Hondas, got %d", len(hondas))
	}

	y2021, err := repo.List(ctx, domain.Filter{Year: 2021})
	if err != nil {
		t.Fatalf("List by year: %v", err)
	}
	if len(y2021) != 1 || y2021[0].Model != "Civic" {
		t.Fatalf("unexpected year filter result: %+v", y2021)
	}

	all, err := repo.List(ctx, domain.Filter{})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	// Newest first (id breaks ties on equal created_at)
	if len(all) != 3 || all[0].Model != "C240" {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestVehicleSearch(t *testing.T) {
	db := openVehicleTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	seeds := []*domain.Vehicle{
		makeVehicle("1HGCM82633A004352", "Honda", "Accord", 2019),
		makeVehicle("2HGFC2F59KH500001", "Honda", "Civic", 2021),
		makeVehicle("WDBRF61J13F379863", "Mercedes-Benz", "C240", 2003),
	}
	for _, v := range seeds {
		if err := repo.Create(ctx, v); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	byMake, err := repo.Search(ctx, "Hond")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byMake) != 2 {
		t.Fatalf("expected 2 matches for make, got %d", len(byMake))
	}

	byModel, err := repo.Search(ctx, "Civ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Model != "Civic" {
		t.Fatalf("unexpected model match: %+v", byModel)
	}

	byVIN, err := repo.Search(ctx, "WDBRF61J")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byVIN) != 1 || byVIN[0].Make != "Mercedes-Benz" {
		t.Fatalf("unexpected vin match: %+v", byVIN)
	}

	none, err := repo.Search(ctx, "Toyota")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}
}

func TestVehicleDelete_SoftDeletes(t *testing.T) {
	db := openVehicleTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	v := makeVehicle("1HGCM82633A004352", "Honda", "Accord", 2019)
	if err := repo.Create(ctx, v); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, v); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.GetByVIN(ctx, "1HGCM82633A004352"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected vehicle gone, got %v", err)
	}

	// Row still present with deleted_at set
	var raw vehicleSQLite
	if err := db.Unscoped().Where("vehicle_id = ?", v.VehicleID).First(&raw).Error; err != nil {
		t.Fatalf("raw fetch: %v", err)
	}
	if !raw.DeletedAt.Valid {
		t.Fatalf("expected deleted_at set, got %+v", raw.DeletedAt)
	}
}

func TestVehicleCountByMake(t *testing.T) {
	db := openVehicleTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	seeds := []*domain.Vehicle{
		makeVehicle("1HGCM82633A004352", "Honda", "Accord", 2019),
		makeVehicle("2HGFC2F59KH500001", "Honda", "Civic", 2021),
		makeVehicle("WDBRF61J13F379863", "Mercedes-Benz", "C240", 2003),
	}
	for _, v := range seeds {
		if err := repo.Create(ctx, v); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	stats, err := repo.CountByMake(ctx)
	if err != nil {
		t.Fatalf("CountByMake: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 makes, got %d", len(stats))
	}
	if stats[0].Make != "Honda" || stats[0].Count != 2 {
		t.Fatalf("expected Honda first with 2, got %+v", stats[0])
	}
	if stats[1].Make != "Mercedes-Benz" || stats[1].Count != 1 {
		t.Fatalf("unexpected second entry: %+v", stats[1])
	}
}
