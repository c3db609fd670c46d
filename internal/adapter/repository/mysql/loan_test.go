package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "autolend-backend/internal/domain/loan"
	offerDomain "autolend-backend/internal/domain/offer"
	"autolend-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type loanSQLite struct {
	ID              uint64         `gorm:"primaryKey;column:id"`
	LoanID          string         `gorm:"size:32;column:loan_id"`
	VehicleID       uint64         `gorm:"column:vehicle_id"`
	UserID          *uint64        `gorm:"column:user_id"`
	ApplicantName   string         `gorm:"column:applicant_name"`
	ApplicantEmail  string         `gorm:"column:applicant_email"`
	RequestedAmount float64        `gorm:"column:requested_amount"`
	ApprovedAmount  float64        `gorm:"column:approved_amount"`
	TermMonths      int            `gorm:"column:term_months"`
	Status          string         `gorm:"type:text;column:status"` // ← no enum
	StatusUpdatedAt time.Time      `gorm:"column:status_updated_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type offerSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	OfferID      string         `gorm:"size:32;column:offer_id"`
	LoanID       uint64         `gorm:"column:loan_id"`
	Amount       float64        `gorm:"column:amount"`
	InterestRate float64        `gorm:"column:interest_rate"`
	TenureMonths int            `gorm:"column:tenure_months"`
	Status       string         `gorm:"type:text;column:status"` // ← no enum
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (offerSQLite) TableName() string { return "offers" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// IMPORTANT: migrate the sqlite-safe models, NOT the domain models.
	if err := db.AutoMigrate(&loanSQLite{}, &offerSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID string, vehicleID uint64) *domain.Loan {
	return &domain.Loan{
		LoanID:          loanID,
		VehicleID:       vehicleID,
		ApplicantName:   "Jane Doe",
		ApplicantEmail:  "jane@example.com",
		RequestedAmount: 8_000.00,
		ApprovedAmount:  8_000.00,
		TermMonths:      36,
		Status:          domain.StatusApproved,
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func TestLoanCreateAndGetByLoanID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	l := makeLoan(loanID, 7)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != loanID || got.VehicleID != 7 || got.Status != domain.StatusApproved {
		t.Errorf("unexpected loan: %+v", got)
	}
}

func TestLoanSaveUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	l := makeLoan(loanID, 7)
	l.Status = domain.StatusPending

	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	l.Status = domain.StatusDisbursed
	l.StatusUpdatedAt = time.Now().UTC()
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.Status != domain.StatusDisbursed {
		t.Errorf("status not updated, got=%s want=%s", got.Status, domain.StatusDisbursed)
	}
}

func TestLoanGetByLoanID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	_, err := repo.GetByLoanID(ctx, "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestLoanList_FiltersAndOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	first := makeLoan(id.NewID32(), 1)
	first.Status = domain.StatusPending
	second := makeLoan(id.NewID32(), 2)
	second.ApplicantEmail = "other@example.com"
	third := makeLoan(id.NewID32(), 3)
	third.Status = domain.StatusPending
	for _, l := range []*domain.Loan{first, second, third} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// Newest first (id breaks ties on equal created_at)
	all, err := repo.List(ctx, domain.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].LoanID != third.LoanID || all[2].LoanID != first.LoanID {
		t.Fatalf("unexpected order: %+v", all)
	}

	pending, err := repo.List(ctx, domain.Filter{Status: domain.StatusPending})
	if err != nil {
		t.Fatalf("List by status: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending loans, got %d", len(pending))
	}

	byEmail, err := repo.List(ctx, domain.Filter{ApplicantEmail: "other@example.com"})
	if err != nil {
		t.Fatalf("List by email: %v", err)
	}
	if len(byEmail) != 1 || byEmail[0].LoanID != second.LoanID {
		t.Fatalf("unexpected email filter result: %+v", byEmail)
	}
}

func TestLoanCountByVehicleID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	for _, vehicleID := range []uint64{5, 5, 9} {
		if err := repo.Create(ctx, makeLoan(id.NewID32(), vehicleID)); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	n, err := repo.CountByVehicleID(ctx, 5)
	if err != nil {
		t.Fatalf("CountByVehicleID: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 loans on vehicle 5, got %d", n)
	}

	n, err = repo.CountByVehicleID(ctx, 42)
	if err != nil {
		t.Fatalf("CountByVehicleID: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 loans on vehicle 42, got %d", n)
	}
}

func TestLoanDelete_RemovesOwnedOffers(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	offers := NewOfferRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), 7)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create loan: %v", err)
	}
	o := &offerDomain.Offer{
		OfferID: id.NewID32(), LoanID: l.ID,
		Amount: 6_000, InterestRate: 0.12, TenureMonths: 24,
		Status: offerDomain.StatusPending,
	}
	if err := offers.Create(ctx, o); err != nil {
		t.Fatalf("Create offer: %v", err)
	}

	if err := repo.Delete(ctx, l); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := repo.GetByLoanID(ctx, l.LoanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected loan gone, got %v", err)
	}
	left, err := offers.ListByLoanID(ctx, l.ID)
	if err != nil {
		t.Fatalf("ListByLoanID: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected offers removed with the loan, got %d", len(left))
	}
}
