package models

import (
	"time"

	"github.com/lib/pq"
)

type Destination struct {
	ID         uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string         `json:"name" gorm:"not null"`
	Slug       string         `json:"slug" gorm:"uniqueIndex;not null"`
	Country    string         `json:"country" gorm:"not null"`
	Region     string         `json:"region"`
	Latitude   float64        `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude  float64        `json:"longitude" gorm:"type:decimal(11,8)"`
	Categories pq.StringArray `json:"categories" gorm:"type:text[]"`
	ViatorID   string         `json:"viatorId" gorm:"index"` // destination id in the Viator taxonomy
	ImageURL   string         `json:"imageUrl"`
	Summary    string         `json:"summary" gorm:"type:text"`
	IsFeatured bool           `json:"isFeatured" gorm:"default:false"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
