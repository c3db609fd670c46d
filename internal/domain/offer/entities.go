package offer

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("offer not found")

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type Offer struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"-"`
	OfferID      string         `gorm:"size:32;uniqueIndex:ux_offers_offer_id_active" json:"offer_id"`
	LoanID       uint64         `gorm:"column:loan_id;not null;index:idx_offers_loan" json:"-"`
	Amount       float64        `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate float64        `gorm:"type:decimal(6,4)" json:"interest_rate"`
	TenureMonths int            `gorm:"column:tenure_months" json:"tenure_months"`
	Status       Status         `gorm:"type:enum('pending','accepted','rejected');default:'pending'" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Offer) TableName() string { return "offers" }
