package user

import (
	"context"
	"errors"
	"time"

	domain "autolend-backend/internal/domain/user"
	"autolend-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

type CreateInput struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type UpdateInput struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
}

type UserDTO struct {
	UserID      string    `json:"user_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*UserDTO, error) {
	usr := &domain.User{
		UserID:      id.NewID32(),
		FullName:    in.FullName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
	}
	if err := u.repo.Create(ctx, usr); err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*UserDTO, error) {
	usr, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(usr), nil
}

func (u *Usecase) Update(ctx context.Context, userID string, in UpdateInput) (*UserDTO, error) {
	usr, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if in.FullName != nil {
		usr.FullName = *in.FullName
	}
	if in.PhoneNumber != nil {
		usr.PhoneNumber = *in.PhoneNumber
	}
	if err := u.repo.Save(ctx, usr); err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

func toDTO(u *domain.User) *UserDTO {
	return &UserDTO{
		UserID:      u.UserID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
}
