package models

import "time"

// PromotionStatus defines the lifecycle label of a promotion.
type PromotionStatus string

const (
	PromotionStatusActive   PromotionStatus = "Active"
	PromotionStatusInactive PromotionStatus = "Inactive"
	PromotionStatusFinished PromotionStatus = "Finished"
)

// IsValidPromotionStatus checks if the provided status string is a valid PromotionStatus.
func IsValidPromotionStatus(status string) bool {
	switch PromotionStatus(status) {
	case PromotionStatusActive, PromotionStatusInactive, PromotionStatusFinished:
		return true
	default:
		return false
	}
}

// Promotion is a marketing campaign shown to clients.
type Promotion struct {
	ID          string          `json:"id" db:"id" bson:"_id"`
	Title       string          `json:"title" db:"title" bson:"title"`
	StartDate   time.Time       `json:"start_date" db:"start_date" bson:"start_date"`
	EndDate     time.Time       `json:"end_date" db:"end_date" bson:"end_date"`
	Description string          `json:"description" db:"description" bson:"description"`
	Status      PromotionStatus `json:"status" db:"status" bson:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at" bson:"updated_at"`
}
