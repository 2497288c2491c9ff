package models

import (
	"time"

	"github.com/lib/pq"
)

type Restaurant struct {
	ID              uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string         `json:"name" gorm:"not null"`
	DestinationSlug string         `json:"destinationSlug" gorm:"index;not null"`
	Address         string         `json:"address"`
	Latitude        float64        `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude       float64        `json:"longitude" gorm:"type:decimal(11,8)"`
	CuisineTypes    pq.StringArray `json:"cuisineTypes" gorm:"type:text[]"`
	Description     string         `json:"description" gorm:"type:text"`
	ImageURL        string         `json:"imageUrl"`
	Website         string         `json:"website"`
	Phone           string         `json:"phone"`
	PriceLevel      int            `json:"priceLevel" gorm:"type:int;check:price_level between 1 and 4"`
	Rating          float64        `json:"rating" gorm:"default:0;type:decimal(3,2)"`
	IsApproved      bool           `json:"isApproved" gorm:"default:false"`
	// Owner-facing customization, editable through the subscribe flow.
	HighlightColor string    `json:"highlightColor"`
	Tagline        string    `json:"tagline"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Distance       float64   `json:"distance,omitempty" gorm:"-"`
}
