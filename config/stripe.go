package config

import (
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
	"github.com/toptours/api-go/models"
	"gorm.io/gorm"
)

// StripeClient wraps the Stripe API behind an explicitly constructed client so
// handlers receive it by injection instead of reaching for a package global.
type StripeClient struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
}

func NewStripeClient(cfg *Config) *StripeClient {
	api := &client.API{}
	api.Init(cfg.StripeSecretKey, nil)

	return &StripeClient{
		api:           api,
		webhookSecret: cfg.StripeWebhookSecret,
		successURL:    cfg.CheckoutSuccessURL,
		cancelURL:     cfg.CheckoutCancelURL,
	}
}

// FindOrCreateCustomer returns the Stripe customer id for a user, creating
// both the Stripe customer and the local mapping row on first use.
func (s *StripeClient) FindOrCreateCustomer(db *gorm.DB, userID, email string) (string, error) {
	var existing models.StripeCustomer
	err := db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return existing.CustomerID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", err
	}

	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.AddMetadata("supabase_user_id", userID)
	cust, err := s.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create Stripe customer: %w", err)
	}

	record := models.StripeCustomer{UserID: userID, CustomerID: cust.ID, Email: email}
	if err := db.Create(&record).Error; err != nil {
		return "", err
	}

	return cust.ID, nil
}

type CheckoutLineItem struct {
	PriceID  string
	Quantity int64
}

type CheckoutParams struct {
	CustomerID string
	Mode       stripe.CheckoutSessionMode
	LineItems  []CheckoutLineItem
	Metadata   map[string]string
}

// NewCheckoutSession creates a hosted checkout session carrying all metadata
// the webhook needs for reconciliation.
func (s *StripeClient) NewCheckoutSession(p CheckoutParams) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(p.CustomerID),
		Mode:       stripe.String(string(p.Mode)),
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}
	for _, item := range p.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(item.PriceID),
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return session, nil
}

// GetSubscription fetches a subscription so the webhook can fill period dates.
func (s *StripeClient) GetSubscription(id string) (*stripe.Subscription, error) {
	return s.api.Subscriptions.Get(id, nil)
}

// ConstructEvent verifies the webhook signature and parses the event.
func (s *StripeClient) ConstructEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, s.webhookSecret)
}
