package handlers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zapshift/zapshift-server/internal/models"
	"github.com/zapshift/zapshift-server/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// In-memory store fakes. They reproduce the soft-miss behaviour of the real
// stores: absent records come back as (nil, nil).

type fakeParcelStore struct {
	mu      sync.Mutex
	nextID  uint
	parcels map[uint]*models.Parcel
}

func newFakeParcelStore() *fakeParcelStore {
	return &fakeParcelStore{parcels: make(map[uint]*models.Parcel)}
}

func (s *fakeParcelStore) List(ctx context.Context, senderEmail string) ([]models.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Parcel
	for _, p := range s.parcels {
		if senderEmail == "" || p.SenderEmail == senderEmail {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeParcelStore) Get(ctx context.Context, id uint) (*models.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.parcels[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *fakeParcelStore) Create(ctx context.Context, parcel *models.Parcel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	parcel.ID = s.nextID
	if parcel.PaymentStatus == "" {
		// Mirror the column default declared on models.Parcel
		// (gorm:"default:unpaid"), which the real store relies on.
		parcel.PaymentStatus = models.PaymentStatusUnpaid
	}
	copied := *parcel
	s.parcels[parcel.ID] = &copied
	return nil
}

func (s *fakeParcelStore) Delete(ctx context.Context, id uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.parcels[id]; !ok {
		return 0, nil
	}
	delete(s.parcels, id)
	return 1, nil
}

func (s *fakeParcelStore) MarkPaid(ctx context.Context, id uint, paidAt time.Time, transactionID, trackingID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.parcels[id]
	if !ok {
		return 0, nil
	}
	p.PaymentStatus = models.PaymentStatusPaid
	p.PaymentDate = &paidAt
	p.TransactionID = transactionID
	p.TrackingID = trackingID
	return 1, nil
}

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]*models.User)}
}

func (s *fakeUserStore) seed(user models.User) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = &user
	return &user
}

func (s *fakeUserStore) List(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.User
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) UpdateRole(ctx context.Context, id uint, role string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return 0, nil
	}
	u.Role = role
	return 1, nil
}

func (s *fakeUserStore) Get(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) UpdateFCMToken(ctx context.Context, email, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			u.FCMToken = token
			return 1, nil
		}
	}
	return 0, nil
}

type fakeRiderStore struct {
	mu     sync.Mutex
	nextID uint
	riders map[uint]*models.Rider
}

func newFakeRiderStore() *fakeRiderStore {
	return &fakeRiderStore{riders: make(map[uint]*models.Rider)}
}

func (s *fakeRiderStore) seed(rider models.Rider) *models.Rider {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rider.ID = s.nextID
	s.riders[rider.ID] = &rider
	return &rider
}

func (s *fakeRiderStore) List(ctx context.Context) ([]models.Rider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Rider
	for _, r := range s.riders {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeRiderStore) Get(ctx context.Context, id uint) (*models.Rider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.riders[id]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (s *fakeRiderStore) Create(ctx context.Context, rider *models.Rider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rider.ID = s.nextID
	copied := *rider
	s.riders[rider.ID] = &copied
	return nil
}

func (s *fakeRiderStore) UpdateStatus(ctx context.Context, id uint, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.riders[id]
	if !ok {
		return 0, nil
	}
	r.Status = status
	return 1, nil
}

func (s *fakeRiderStore) UpdateRole(ctx context.Context, id uint, role string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.riders[id]
	if !ok {
		return 0, nil
	}
	r.Role = role
	return 1, nil
}

func (s *fakeRiderStore) SetDocumentURL(ctx context.Context, id uint, url string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.riders[id]
	if !ok {
		return 0, nil
	}
	r.DocumentURL = url
	return 1, nil
}

func (s *fakeRiderStore) Delete(ctx context.Context, id uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.riders[id]; !ok {
		return 0, nil
	}
	delete(s.riders, id)
	return 1, nil
}

type fakePaymentStore struct {
	mu       sync.Mutex
	nextID   uint
	payments []models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{}
}

func (s *fakePaymentStore) List(ctx context.Context, email string) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Payment
	for _, p := range s.payments {
		if email == "" || p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePaymentStore) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.payments {
		if p.TransactionID == transactionID {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakePaymentStore) Create(ctx context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	payment.ID = s.nextID
	s.payments = append(s.payments, *payment)
	return nil
}

// fakeVerifier maps bearer tokens to emails.
type fakeVerifier struct {
	tokens map[string]string
}

func (v *fakeVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	email, ok := v.tokens[idToken]
	if !ok {
		return "", errors.New("invalid token")
	}
	return email, nil
}

// fakeProvider is an in-memory checkout provider. Created sessions are
// recorded; retrievals read from the sessions map.
type fakeProvider struct {
	mu       sync.Mutex
	created  []services.CheckoutParams
	sessions map[string]*services.CheckoutSession
	fail     error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: make(map[string]*services.CheckoutSession)}
}

func (p *fakeProvider) CreateSession(ctx context.Context, params services.CheckoutParams) (*services.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail != nil {
		return nil, p.fail
	}
	p.created = append(p.created, params)
	return &services.CheckoutSession{
		ID:  "cs_test_1",
		URL: "https://checkout.example.com/cs_test_1",
	}, nil
}

func (p *fakeProvider) RetrieveSession(ctx context.Context, sessionID string) (*services.CheckoutSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail != nil {
		return nil, p.fail
	}
	session, ok := p.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	copied := *session
	return &copied, nil
}
