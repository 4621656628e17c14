package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/zapshift/zapshift-server/internal/models"
)

type gormUserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmail returns (nil, nil) when no user exists. Callers rely on the
// soft-miss for the idempotent create and the default-role lookup.
func (s *gormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormUserStore) UpdateRole(ctx context.Context, id uint, role string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	return res.RowsAffected, res.Error
}

func (s *gormUserStore) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormUserStore) UpdateFCMToken(ctx context.Context, email, token string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update("fcm_token", token)
	return res.RowsAffected, res.Error
}
