package repository

import (
	"context"

	"github.com/hywel/accountd/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SearchByName(ctx context.Context, name string, limit int) ([]*domain.User, error)
	// Delete removes the user and all of its devices in one transaction.
	Delete(ctx context.Context, id int64) error
}

type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) error
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Device, error)
	DeleteByUserID(ctx context.Context, userID int64) error
	DeleteByUserIDAndToken(ctx context.Context, userID int64, token string) error
}

type Repositories struct {
	User   UserRepository
	Device DeviceRepository
}
