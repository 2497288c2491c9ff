package models

import "time"

// Subscription lifecycle shared by every billing-backed row: the API creates a
// pending row when checkout starts, the Stripe webhook flips it to active.
const (
	SubscriptionStatusPending   = "pending"
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

const (
	PlanTypeMonthly = "monthly"
	PlanTypeYearly  = "yearly"
)

type RestaurantSubscription struct {
	ID                   uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	RestaurantID         uint       `json:"restaurantId" gorm:"uniqueIndex:idx_restaurant_user;not null"`
	UserID               string     `json:"userId" gorm:"uniqueIndex:idx_restaurant_user;not null"`
	Status               string     `json:"status" gorm:"not null;default:'pending'"`
	StripeCustomerID     string     `json:"stripeCustomerId"`
	StripeSubscriptionID string     `json:"stripeSubscriptionId" gorm:"index"`
	StripeSessionID      string     `json:"stripeSessionId" gorm:"index"`
	CurrentPeriodStart   *time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd     *time.Time `json:"currentPeriodEnd"`
	RequestedAt          time.Time  `json:"requestedAt"`
	ActivatedAt          *time.Time `json:"activatedAt"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

type RestaurantPremiumSubscription struct {
	ID                   uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	RestaurantID         uint       `json:"restaurantId" gorm:"uniqueIndex:idx_premium_restaurant_user;not null"`
	UserID               string     `json:"userId" gorm:"uniqueIndex:idx_premium_restaurant_user;not null"`
	PlanType             string     `json:"planType" gorm:"not null"` // monthly | yearly
	Status               string     `json:"status" gorm:"not null;default:'pending'"`
	StripeSubscriptionID string     `json:"stripeSubscriptionId" gorm:"index"`
	StripeSessionID      string     `json:"stripeSessionId" gorm:"index"`
	CurrentPeriodStart   *time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd     *time.Time `json:"currentPeriodEnd"`
	RequestedAt          time.Time  `json:"requestedAt"`
	ActivatedAt          *time.Time `json:"activatedAt"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

type PromotedRestaurant struct {
	ID                   uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	RestaurantID         uint       `json:"restaurantId" gorm:"uniqueIndex:idx_promoted_restaurant_user;not null"`
	UserID               string     `json:"userId" gorm:"uniqueIndex:idx_promoted_restaurant_user;not null"`
	DestinationSlug      string     `json:"destinationSlug" gorm:"index;not null"`
	PlanType             string     `json:"planType" gorm:"not null"`
	Status               string     `json:"status" gorm:"not null;default:'pending'"`
	StripeSubscriptionID string     `json:"stripeSubscriptionId" gorm:"index"`
	StripeSessionID      string     `json:"stripeSessionId" gorm:"index"`
	CurrentPeriodStart   *time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd     *time.Time `json:"currentPeriodEnd"`
	RequestedAt          time.Time  `json:"requestedAt"`
	ActivatedAt          *time.Time `json:"activatedAt"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

type OperatorSubscription struct {
	ID                   uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	OperatorID           uint       `json:"operatorId" gorm:"uniqueIndex:idx_operator_user;not null"`
	UserID               string     `json:"userId" gorm:"uniqueIndex:idx_operator_user;not null"`
	PlanType             string     `json:"planType" gorm:"not null"`
	Status               string     `json:"status" gorm:"not null;default:'pending'"`
	StripeCustomerID     string     `json:"stripeCustomerId"`
	StripeSubscriptionID string     `json:"stripeSubscriptionId" gorm:"index"`
	StripeSessionID      string     `json:"stripeSessionId" gorm:"index"`
	CurrentPeriodStart   *time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd     *time.Time `json:"currentPeriodEnd"`
	RequestedAt          time.Time  `json:"requestedAt"`
	ActivatedAt          *time.Time `json:"activatedAt"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// StripeCustomer maps an application user to their Stripe customer id so
// repeated checkouts reuse the same customer.
type StripeCustomer struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     string    `json:"userId" gorm:"uniqueIndex;not null"`
	CustomerID string    `json:"customerId" gorm:"uniqueIndex;not null"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
