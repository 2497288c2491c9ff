package models

import "time"

const (
	ListingTypeTour       = "tour"
	ListingTypeRestaurant = "restaurant"
)

// PromotionAccount holds a user's daily point allowance. The allowance refills
// to DailyPointsAllowance once 24 hours have passed since AllowanceResetAt.
type PromotionAccount struct {
	ID                   uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID               string    `json:"userId" gorm:"uniqueIndex;not null"`
	DailyPointsAllowance int64     `json:"dailyPointsAllowance" gorm:"not null;default:100"`
	DailyPointsAvailable int64     `json:"dailyPointsAvailable" gorm:"not null;default:100"`
	AllowanceResetAt     time.Time `json:"allowanceResetAt"`
	// LifetimePointsSpent counts allowance spends only. Instant boosts bypass it.
	LifetimePointsSpent int64     `json:"lifetimePointsSpent" gorm:"not null;default:0"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ListingScore accumulates promotion points for one listing across four
// rolling windows. MonthKey/WeekKey mark which calendar window the month and
// week columns belong to; a spend against a stale key zeroes the column first.
// The 28-day window restarts 28 days after its last reset.
type ListingScore struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ListingType    string    `json:"listingType" gorm:"uniqueIndex:idx_listing_score;not null"`
	ListingID      string    `json:"listingId" gorm:"uniqueIndex:idx_listing_score;not null"`
	ScoreAllTime   int64     `json:"scoreAllTime" gorm:"not null;default:0"`
	ScoreMonth     int64     `json:"scoreMonth" gorm:"not null;default:0"`
	ScoreWeek      int64     `json:"scoreWeek" gorm:"not null;default:0"`
	Score28Day     int64     `json:"score28Day" gorm:"column:score_28d;not null;default:0"`
	MonthKey       string    `json:"monthKey"` // e.g. "2026-08"
	WeekKey        string    `json:"weekKey"`  // ISO week, e.g. "2026-W35"
	Window28DStart time.Time `json:"window28dStart" gorm:"column:window_28d_start"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BoostCredit records one applied instant-boost purchase, keyed by the Stripe
// checkout session so a redelivered webhook cannot credit twice.
type BoostCredit struct {
	ID              uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	StripeSessionID string    `json:"stripeSessionId" gorm:"uniqueIndex;not null"`
	UserID          string    `json:"userId" gorm:"index;not null"`
	ListingType     string    `json:"listingType" gorm:"not null"`
	ListingID       string    `json:"listingId" gorm:"not null"`
	Points          int64     `json:"points" gorm:"not null"`
	CreatedAt       time.Time `json:"createdAt"`
}
