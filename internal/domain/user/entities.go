package user

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID          uint64         `gorm:"primaryKey;column:id" json:"-"`
	UserID      string         `gorm:"size:32;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	FullName    string         `gorm:"size:120" json:"full_name"`
	Email       string         `gorm:"size:254;uniqueIndex:ux_users_email_active" json:"email"`
	PhoneNumber string         `gorm:"size:32" json:"phone_number"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
