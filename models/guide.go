package models

import "time"

// CategoryGuide is an AI-generated SEO article for one (destination, category)
// pair. Upserts are idempotent on that natural key.
type CategoryGuide struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	DestinationID uint      `json:"destinationId" gorm:"uniqueIndex:idx_category_guide;not null"`
	CategorySlug  string    `json:"categorySlug" gorm:"uniqueIndex:idx_category_guide;not null"`
	Title         string    `json:"title" gorm:"not null"`
	Content       string    `json:"content" gorm:"type:text;not null"`
	ModelName     string    `json:"modelName"`
	GeneratedAt   time.Time `json:"generatedAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type RestaurantGuide struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	DestinationID uint      `json:"destinationId" gorm:"uniqueIndex:idx_restaurant_guide;not null"`
	CategorySlug  string    `json:"categorySlug" gorm:"uniqueIndex:idx_restaurant_guide;not null"`
	Title         string    `json:"title" gorm:"not null"`
	Content       string    `json:"content" gorm:"type:text;not null"`
	ModelName     string    `json:"modelName"`
	GeneratedAt   time.Time `json:"generatedAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
