package models

import "time"

// Outreach status values for the operator CRM pipeline.
const (
	CRMStatusNotContacted   = "not_contacted"
	CRMStatusNoAnswer       = "no_answer"
	CRMStatusDeclined       = "declined"
	CRMStatusClaimedPromo   = "claimed_promo"
	CRMStatusPaidSubscribed = "paid_subscribed"
)

func ValidCRMStatus(s string) bool {
	switch s {
	case CRMStatusNotContacted, CRMStatusNoAnswer, CRMStatusDeclined, CRMStatusClaimedPromo, CRMStatusPaidSubscribed:
		return true
	}
	return false
}

type TourOperatorCRM struct {
	ID              uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	OperatorName    string     `json:"operatorName" gorm:"not null"`
	ContactEmail    string     `json:"contactEmail" gorm:"index"`
	ContactPhone    string     `json:"contactPhone"`
	Website         string     `json:"website"`
	DestinationSlug string     `json:"destinationSlug" gorm:"index"`
	Status          string     `json:"status" gorm:"not null;default:'not_contacted';index"`
	ContactedAt     *time.Time `json:"contactedAt"`
	FollowUpAt      *time.Time `json:"followUpAt"`
	Notes           string     `json:"notes" gorm:"type:text"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
