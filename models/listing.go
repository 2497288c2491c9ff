package models

import (
	"time"

	"github.com/lib/pq"
)

type BabyEquipmentRental struct {
	ID              uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	ProviderName    string         `json:"providerName" gorm:"not null"`
	DestinationSlug string         `json:"destinationSlug" gorm:"index;not null"`
	EquipmentTypes  pq.StringArray `json:"equipmentTypes" gorm:"type:text[]"`
	Website         string         `json:"website"`
	ContactEmail    string         `json:"contactEmail"`
	IsApproved      bool           `json:"isApproved" gorm:"default:false;index"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type PartnerGuide struct {
	ID              uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	PartnerName     string    `json:"partnerName" gorm:"not null"`
	DestinationSlug string    `json:"destinationSlug" gorm:"index"`
	Website         string    `json:"website"`
	LogoURL         string    `json:"logoUrl"`
	Description     string    `json:"description" gorm:"type:text"`
	IsApproved      bool      `json:"isApproved" gorm:"default:false;index"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
