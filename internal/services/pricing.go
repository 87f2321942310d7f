package services

import (
	"math"
	"time"

	"dress_rental_backend/internal/config"
	"dress_rental_backend/internal/models"
	"dress_rental_backend/pkg/utils"
)

// Pricer computes the rental price of a dress for a date range.
type Pricer func(dress *models.Dress, start, end time.Time) float64

// NewPricer returns the pricer for mode. Unknown modes fall back to per-day pricing.
func NewPricer(mode string) Pricer {
	if mode == config.PricingFixed {
		return FixedPrice
	}
	return PerDayPrice
}

// PerDayPrice charges rentalPrice for every started day. A same-day rental counts as one day.
func PerDayPrice(dress *models.Dress, start, end time.Time) float64 {
	return utils.RoundMoney(float64(rentalDays(start, end)) * dress.RentalPrice)
}

// FixedPrice charges rentalPrice regardless of duration.
func FixedPrice(dress *models.Dress, _, _ time.Time) float64 {
	return utils.RoundMoney(dress.RentalPrice)
}

// rentalDays compares wall clocks so DST shifts do not add or drop a day.
func rentalDays(start, end time.Time) int {
	diff := wallClock(end).Sub(wallClock(start))
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// wallClock reads t in the local zone, so inputs with different offsets compare by real instant.
func wallClock(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
