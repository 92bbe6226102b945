package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity is an exact decimal amount. It travels as a string on the wire
// and is stored as TEXT, so "19.99" stays "19.99" end to end and never
// passes through a binary float.
type Quantity struct {
	decimal.Decimal
}

func NewQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("parse quantity %q: %w", s, ErrInvalidInput)
	}
	return Quantity{d}, nil
}

// Equal compares values, not textual forms: "1.5" equals "1.50".
func (q Quantity) Equal(other Quantity) bool {
	return q.Decimal.Equal(other.Decimal)
}
