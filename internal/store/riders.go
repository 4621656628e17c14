package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/zapshift/zapshift-server/internal/models"
)

type gormRiderStore struct {
	db *gorm.DB
}

func NewRiderStore(db *gorm.DB) RiderStore {
	return &gormRiderStore{db: db}
}

func (s *gormRiderStore) List(ctx context.Context) ([]models.Rider, error) {
	var riders []models.Rider
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&riders).Error; err != nil {
		return nil, err
	}
	return riders, nil
}

func (s *gormRiderStore) Get(ctx context.Context, id uint) (*models.Rider, error) {
	var rider models.Rider
	if err := s.db.WithContext(ctx).First(&rider, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rider, nil
}

func (s *gormRiderStore) Create(ctx context.Context, rider *models.Rider) error {
	return s.db.WithContext(ctx).Create(rider).Error
}

func (s *gormRiderStore) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Rider{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}

func (s *gormRiderStore) UpdateRole(ctx context.Context, id uint, role string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Rider{}).Where("id = ?", id).Update("role", role)
	return res.RowsAffected, res.Error
}

func (s *gormRiderStore) SetDocumentURL(ctx context.Context, id uint, url string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Rider{}).Where("id = ?", id).Update("document_url", url)
	return res.RowsAffected, res.Error
}

func (s *gormRiderStore) Delete(ctx context.Context, id uint) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&models.Rider{}, id)
	return res.RowsAffected, res.Error
}
