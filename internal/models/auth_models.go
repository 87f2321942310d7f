package models

import "time"

// Role names carried in JWT claims and checked by the role gate.
const (
	RoleAdmin  = "Admin"
	RoleUser   = "User"
	RoleClient = "Client"
)

// IsValidRole checks if the provided string is a known role.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleClient:
		return true
	default:
		return false
	}
}

// User represents a user in the system
type User struct {
	ID           string    `json:"id" db:"id" bson:"_id"`
	Username     string    `json:"username" db:"username" bson:"username"`
	Email        string    `json:"email" db:"email" bson:"email"`
	PasswordHash string    `json:"-" db:"password_hash" bson:"password_hash"` // '-' means don't send in JSON response
	Role         string    `json:"role" db:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" bson:"updated_at"`
}

// Principal is the authenticated caller extracted from a verified token.
type Principal struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
