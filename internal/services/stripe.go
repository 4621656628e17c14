package services

import (
	"context"
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

// CheckoutParams describes the single line item a parcel checkout is built from.
type CheckoutParams struct {
	CustomerEmail string
	ProductName   string
	// UnitAmount is the parcel cost in minor currency units.
	UnitAmount int64
	ParcelID   string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the provider-neutral view of a hosted checkout session.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"paymentStatus"`
	TransactionID string            `json:"transactionId"`
	AmountTotal   int64             `json:"amountTotal"`
	CustomerEmail string            `json:"customerEmail"`
	Metadata      map[string]string `json:"metadata"`
}

// CheckoutProvider is the hosted checkout capability: create a session, and
// retrieve it later for reconciliation.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// InitStripe configures the Stripe client from the environment.
func InitStripe() error {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY not set")
	}
	stripe.Key = key
	return nil
}

type stripeProvider struct{}

// NewStripeProvider returns the Stripe Checkout implementation.
func NewStripeProvider() CheckoutProvider {
	return &stripeProvider{}
}

func (p *stripeProvider) CreateSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(params.CustomerEmail),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(params.UnitAmount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.ProductName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	sessionParams.Context = ctx
	sessionParams.AddMetadata("parcelId", params.ParcelID)

	s, err := session.New(sessionParams)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(s), nil
}

func (p *stripeProvider) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	return fromStripeSession(s), nil
}

func fromStripeSession(s *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.TransactionID = s.PaymentIntent.ID
	}
	return out
}
