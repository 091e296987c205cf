package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity represents a stock quantity. Spreadsheet stock is fractional
// (metres, kilograms), so it is backed by a decimal rather than an int.
type Quantity decimal.Decimal

// ZeroQuantity is the additive identity
var ZeroQuantity = Quantity(decimal.Zero)

// NewQuantity creates a Quantity from an integer
func NewQuantity(v int64) Quantity {
	return Quantity(decimal.NewFromInt(v))
}

// NewQuantityFromFloat creates a Quantity from a float64
func NewQuantityFromFloat(v float64) Quantity {
	return Quantity(decimal.NewFromFloat(v))
}

// ParseQuantity parses a cell value. Blank or non-numeric input yields zero,
// the same way the issue files are read by the warehouse.
func ParseQuantity(s string) Quantity {
	s = strings.TrimSpace(s)
	if s == "" {
		return ZeroQuantity
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return ZeroQuantity
	}
	return Quantity(d)
}

// Decimal returns the underlying decimal value
func (q Quantity) Decimal() decimal.Decimal {
	return decimal.Decimal(q)
}

// Add returns q + other
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity(q.Decimal().Add(other.Decimal()))
}

// Sub returns q - other
func (q Quantity) Sub(other Quantity) Quantity {
	return Quantity(q.Decimal().Sub(other.Decimal()))
}

// Cmp compares q and other, returning -1, 0 or +1
func (q Quantity) Cmp(other Quantity) int {
	return q.Decimal().Cmp(other.Decimal())
}

// Equal reports whether q and other represent the same value
func (q Quantity) Equal(other Quantity) bool {
	return q.Decimal().Equal(other.Decimal())
}

// LessThanOrEqual reports whether q <= other
func (q Quantity) LessThanOrEqual(other Quantity) bool {
	return q.Decimal().LessThanOrEqual(other.Decimal())
}

// IsNegative reports whether q < 0
func (q Quantity) IsNegative() bool {
	return q.Decimal().IsNegative()
}

// IsZero reports whether q == 0
func (q Quantity) IsZero() bool {
	return q.Decimal().IsZero()
}

// NonNegative clamps negative values to zero
func (q Quantity) NonNegative() Quantity {
	if q.IsNegative() {
		return ZeroQuantity
	}
	return q
}

// String returns the plain decimal representation
func (q Quantity) String() string {
	return q.Decimal().String()
}

// MarshalJSON encodes the quantity as a JSON number
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.Decimal().String()), nil
}

// UnmarshalJSON accepts JSON numbers and numeric strings
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*q = Quantity(d)
	return nil
}
