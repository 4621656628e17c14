package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/zapshift/zapshift-server/internal/models"
)

type gormPaymentStore struct {
	db *gorm.DB
}

func NewPaymentStore(db *gorm.DB) PaymentStore {
	return &gormPaymentStore{db: db}
}

func (s *gormPaymentStore) List(ctx context.Context, email string) ([]models.Payment, error) {
	query := s.db.WithContext(ctx)
	if email != "" {
		query = query.Where("email = ?", email)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *gormPaymentStore) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (s *gormPaymentStore) Create(ctx context.Context, payment *models.Payment) error {
	return s.db.WithContext(ctx).Create(payment).Error
}
