package models

import (
	"time"

	"github.com/lib/pq"
)

type TravelPlan struct {
	ID               uint             `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID           string           `json:"userId" gorm:"index;not null"`
	Title            string           `json:"title" gorm:"not null"`
	Slug             string           `json:"slug" gorm:"uniqueIndex;not null"`
	DestinationSlugs pq.StringArray   `json:"destinationSlugs" gorm:"type:text[]"`
	Summary          string           `json:"summary" gorm:"type:text"`
	CoverImageURL    string           `json:"coverImageUrl"`
	IsPublic         bool             `json:"isPublic" gorm:"default:false;index"`
	Score            int64            `json:"score" gorm:"not null;default:0"`
	Items            []TravelPlanItem `json:"items" gorm:"foreignKey:TravelPlanID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

const (
	PlanItemKindTour       = "tour"
	PlanItemKindRestaurant = "restaurant"
	PlanItemKindNote       = "note"
)

type TravelPlanItem struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TravelPlanID uint      `json:"travelPlanId" gorm:"index;not null"`
	Day          int       `json:"day" gorm:"not null"`
	Position     int       `json:"position" gorm:"not null"`
	Kind         string    `json:"kind" gorm:"not null"` // tour | restaurant | note
	RefID        string    `json:"refId"`                // viator product code or restaurant id
	Note         string    `json:"note" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
