package models

import "time"

// RentalStatus defines the type for rental statuses
type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
	RentalStatusDamaged   RentalStatus = "damaged"
	RentalStatusLost      RentalStatus = "lost"
)

// IsValidRentalStatus checks if the provided status string is a valid RentalStatus.
func IsValidRentalStatus(status string) bool {
	switch RentalStatus(status) {
	case RentalStatusActive,
		RentalStatusCompleted,
		RentalStatusCancelled,
		RentalStatusDamaged,
		RentalStatusLost:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status releases the dress held by the rental.
func (s RentalStatus) IsTerminal() bool {
	switch s {
	case RentalStatusCompleted, RentalStatusCancelled, RentalStatusDamaged, RentalStatusLost:
		return true
	default:
		return false
	}
}

// IsDamageStatus reports whether the status is one of the damage outcomes.
func (s RentalStatus) IsDamageStatus() bool {
	return s == RentalStatusDamaged || s == RentalStatusLost
}

// Rental ties a client to a dress for a date range.
// ClientName, ClientEmail and ClientPhone are copied at creation and never refreshed.
type Rental struct {
	ID              string       `json:"id" db:"id" bson:"_id"`
	ClientID        string       `json:"client_id" db:"client_id" bson:"client_id"`
	ClientName      string       `json:"client_name" db:"client_name" bson:"client_name"`
	ClientEmail     string       `json:"client_email" db:"client_email" bson:"client_email"`
	ClientPhone     string       `json:"client_phone" db:"client_phone" bson:"client_phone"`
	DressID         string       `json:"dress_id" db:"dress_id" bson:"dress_id"`
	StartDate       time.Time    `json:"start_date" db:"start_date" bson:"start_date"`
	EndDate         time.Time    `json:"end_date" db:"end_date" bson:"end_date"`
	TotalPrice      float64      `json:"total_price" db:"total_price" bson:"total_price"`
	Status          RentalStatus `json:"status" db:"status" bson:"status"`
	IsDamaged       bool         `json:"is_damaged" db:"is_damaged" bson:"is_damaged"`
	RepairCost      float64      `json:"repair_cost" db:"repair_cost" bson:"repair_cost"`
	ReplacementCost float64      `json:"replacement_cost" db:"replacement_cost" bson:"replacement_cost"`
	DamageNotes     string       `json:"damage_notes" db:"damage_notes" bson:"damage_notes"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at" bson:"updated_at"`
	Dress           *Dress       `json:"dress,omitempty" db:"-" bson:"-"` // Joined on reads
}
