package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every service error wraps exactly one of these so handlers can map it with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// --- Custom Service Errors ---
var (
	ErrMissingFields     = fmt.Errorf("%w: client_id, dress_id, start_date and end_date are required", ErrValidation)
	ErrDateFormat        = fmt.Errorf("%w: invalid date format, please use YYYY-MM-DD or RFC3339", ErrValidation)
	ErrDateOrder         = fmt.Errorf("%w: start date cannot be after end date", ErrValidation)
	ErrDateInPast        = fmt.Errorf("%w: dates cannot be in the past", ErrValidation)
	ErrNegativeAmount    = fmt.Errorf("%w: amounts cannot be negative", ErrValidation)
	ErrInvalidStatus     = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidSize       = fmt.Errorf("%w: size must be one of XS, S, M, L, XL, XXL", ErrValidation)
	ErrInvalidRole       = fmt.Errorf("%w: role must be one of Admin, User, Client", ErrValidation)
	ErrInvalidFilter     = fmt.Errorf("%w: invalid filter", ErrValidation)
	ErrNewDressNotUsable = fmt.Errorf("%w: new dress is unavailable or does not exist", ErrValidation)

	ErrRentalNotFound    = fmt.Errorf("rental %w", ErrNotFound)
	ErrClientNotFound    = fmt.Errorf("client %w", ErrNotFound)
	ErrDressNotFound     = fmt.Errorf("dress %w", ErrNotFound)
	ErrPromotionNotFound = fmt.Errorf("promotion %w", ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)

	ErrDressUnavailable = fmt.Errorf("%w: dress is not available for rent", ErrConflict)
	ErrRentalClosed     = fmt.Errorf("%w: rental is already closed", ErrConflict)
	ErrRentalChanged    = fmt.Errorf("%w: rental was changed by another request, reload and retry", ErrConflict)
	ErrDamageNotAllowed = fmt.Errorf("%w: damage can only be reported on active or completed rentals", ErrConflict)
	ErrDressInUse       = fmt.Errorf("%w: dress is rented or referenced by rentals", ErrConflict)
	ErrEmailExists      = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrUsernameExists   = fmt.Errorf("%w: username or email already exists", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)
