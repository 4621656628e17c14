package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/zapshift/zapshift-server/internal/models"
)

type gormParcelStore struct {
	db *gorm.DB
}

func NewParcelStore(db *gorm.DB) ParcelStore {
	return &gormParcelStore{db: db}
}

func (s *gormParcelStore) List(ctx context.Context, senderEmail string) ([]models.Parcel, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if senderEmail != "" {
		query = query.Where("sender_email = ?", senderEmail)
	}

	var parcels []models.Parcel
	if err := query.Find(&parcels).Error; err != nil {
		return nil, err
	}
	return parcels, nil
}

func (s *gormParcelStore) Get(ctx context.Context, id uint) (*models.Parcel, error) {
	var parcel models.Parcel
	if err := s.db.WithContext(ctx).First(&parcel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &parcel, nil
}

func (s *gormParcelStore) Create(ctx context.Context, parcel *models.Parcel) error {
	return s.db.WithContext(ctx).Create(parcel).Error
}

func (s *gormParcelStore) Delete(ctx context.Context, id uint) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.Parcel{}, id)
	return res.RowsAffected, res.Error
}

func (s *gormParcelStore) MarkPaid(ctx context.Context, id uint, paidAt time.Time, transactionID, trackingID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Parcel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
		"payment_date":   paidAt,
		"transaction_id": transactionID,
		"tracking_id":    trackingID,
	})
	return res.RowsAffected, res.Error
}
