package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration problems.
var (
	ErrInvalidHierarchy = errors.New("invalid tier hierarchy")
	ErrMissingDimension = errors.New("missing dimension column")
)

// MissingDimensionError is returned when the raw inventory lacks a column a tier keys on.
type MissingDimensionError struct {
	Tier      string
	Dimension Dimension
}

func (e *MissingDimensionError) Error() string {
	return fmt.Sprintf("tier %q requires dimension %q which the inventory data does not provide", e.Tier, e.Dimension)
}

// Is lets errors.Is match ErrMissingDimension.
func (e *MissingDimensionError) Is(target error) bool {
	return target == ErrMissingDimension
}
