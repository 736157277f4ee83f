package postgres

import (
	"context"

	"github.com/hywel/accountd/internal/domain"
	"gorm.io/gorm"
)

type deviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *deviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) Create(ctx context.Context, device *domain.Device) error {
	return r.db.WithContext(ctx).Create(device).Error
}

func (r *deviceRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Device, error) {
	var devices []*domain.Device
	err := r.db.WithContext(ctx).Find(&devices, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *deviceRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Device{}, "user_id = ?", userID).Error
}

func (r *deviceRepository) DeleteByUserIDAndToken(ctx context.Context, userID int64, token string) error {
	return r.db.WithContext(ctx).Delete(&domain.Device{}, "user_id = ? AND token = ?", userID, token).Error
}
