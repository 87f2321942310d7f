package utils

import (
	"fmt"
	"math"
	"strings"
)

// ParseBoolLiteral accepts only the literal strings "true" and "false".
// Query flags such as ?available=1 are rejected rather than guessed.
func ParseBoolLiteral(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected 'true' or 'false', got '%s'", s)
	}
}

// RoundMoney rounds an amount to cents.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
