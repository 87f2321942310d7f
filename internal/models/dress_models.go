package models

import "time"

// DressSize is the label size of a dress.
type DressSize string

const (
	DressSizeXS  DressSize = "XS"
	DressSizeS   DressSize = "S"
	DressSizeM   DressSize = "M"
	DressSizeL   DressSize = "L"
	DressSizeXL  DressSize = "XL"
	DressSizeXXL DressSize = "XXL"
)

// IsValidDressSize checks if the provided string is one of the known sizes.
func IsValidDressSize(size string) bool {
	switch DressSize(size) {
	case DressSizeXS, DressSizeS, DressSizeM, DressSizeL, DressSizeXL, DressSizeXXL:
		return true
	default:
		return false
	}
}

// Dress is an inventory item that can be rented.
// Available is owned by the rental lifecycle: it is false while an active rental holds the dress.
type Dress struct {
	ID            string    `json:"id" db:"id" bson:"_id"`
	Name          string    `json:"name" db:"name" bson:"name"`
	Size          DressSize `json:"size" db:"size" bson:"size"`
	Color         string    `json:"color" db:"color" bson:"color"`
	Brand         string    `json:"brand" db:"brand" bson:"brand"`
	Collection    string    `json:"collection" db:"collection" bson:"collection"`
	PurchasePrice float64   `json:"purchase_price" db:"purchase_price" bson:"purchase_price"`
	SalePrice     float64   `json:"sale_price" db:"sale_price" bson:"sale_price"`
	RentalPrice   float64   `json:"rental_price" db:"rental_price" bson:"rental_price"`
	Supplier      string    `json:"supplier" db:"supplier" bson:"supplier"`
	Available     bool      `json:"available" db:"available" bson:"available"`
	CreatedAt     time.Time `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at" bson:"updated_at"`
}

// DressFilter narrows a dress listing. Nil fields impose no constraint.
type DressFilter struct {
	Size       *string
	Brand      *string
	Collection *string
	Supplier   *string
	Available  *bool
}
