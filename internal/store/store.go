package store

import (
	"context"
	"time"

	"github.com/zapshift/zapshift-server/internal/models"
)

// Per-collection store capabilities. Handlers receive these at wiring time so
// nothing outside main touches the shared *gorm.DB handle.

type ParcelStore interface {
	List(ctx context.Context, senderEmail string) ([]models.Parcel, error)
	Get(ctx context.Context, id uint) (*models.Parcel, error)
	Create(ctx context.Context, parcel *models.Parcel) error
	Delete(ctx context.Context, id uint) (int64, error)
	// MarkPaid stamps payment status, date, transaction id and tracking id on
	// a parcel in a single update.
	MarkPaid(ctx context.Context, id uint, paidAt time.Time, transactionID, trackingID string) (int64, error)
}

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id uint, role string) (int64, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	UpdateFCMToken(ctx context.Context, email, token string) (int64, error)
}

type RiderStore interface {
	List(ctx context.Context) ([]models.Rider, error)
	Get(ctx context.Context, id uint) (*models.Rider, error)
	Create(ctx context.Context, rider *models.Rider) error
	UpdateStatus(ctx context.Context, id uint, status string) (int64, error)
	UpdateRole(ctx context.Context, id uint, role string) (int64, error)
	SetDocumentURL(ctx context.Context, id uint, url string) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type PaymentStore interface {
	List(ctx context.Context, email string) ([]models.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
}
