package models

import "time"

// Client represents a customer renting dresses
type Client struct {
	ID         string    `json:"id" db:"id" bson:"_id"`
	FullName   string    `json:"full_name" db:"full_name" bson:"full_name"`
	Phone      string    `json:"phone" db:"phone" bson:"phone"`
	Email      string    `json:"email" db:"email" bson:"email"`
	Address    string    `json:"address" db:"address" bson:"address"`
	City       string    `json:"city" db:"city" bson:"city"`
	State      string    `json:"state" db:"state" bson:"state"`
	PostalCode string    `json:"postal_code" db:"postal_code" bson:"postal_code"`
	CreatedAt  time.Time `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at" bson:"updated_at"`
}
