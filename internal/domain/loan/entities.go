package loan

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan status transition")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusOffered   Status = "offered"
	StatusDisbursed Status = "disbursed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known loan statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusOffered, StatusDisbursed, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses have no outgoing transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusDisbursed, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the allowed status transitions:
// pending may move to any decision state or be cancelled; approved and
// offered may be disbursed or cancelled; terminal states never move.
func (s Status) CanTransitionTo(to Status) bool {
	if s.Terminal() || s == to {
		return false
	}
	switch s {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected || to == StatusOffered || to == StatusCancelled
	case StatusApproved, StatusOffered:
		return to == StatusDisbursed || to == StatusCancelled
	}
	return false
}

type Loan struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID          string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	VehicleID       uint64         `gorm:"column:vehicle_id;not null;index:idx_loans_vehicle" json:"-"`
	UserID          *uint64        `gorm:"column:user_id;index" json:"-"`
	ApplicantName   string         `gorm:"size:120" json:"applicant_name"`
	ApplicantEmail  string         `gorm:"size:254;index:idx_loans_applicant_email" json:"applicant_email"`
	RequestedAmount float64        `gorm:"type:decimal(18,2)" json:"requested_amount"`
	ApprovedAmount  float64        `gorm:"type:decimal(18,2)" json:"approved_amount"`
	TermMonths      int            `gorm:"column:term_months" json:"term_months"`
	Status          Status         `gorm:"type:enum('pending','approved','rejected','offered','disbursed','cancelled');default:'pending'" json:"status"`
	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
