package entities

import (
	"fmt"
	"strings"
)

// Dimension names one component of a stock key
type Dimension string

const (
	DimMaterial      Dimension = "material"
	DimPlant         Dimension = "plant"
	DimSubLocation   Dimension = "sub_location"
	DimBudgetElement Dimension = "budget_element"
)

// AllDimensions lists every dimension in key order
var AllDimensions = []Dimension{DimMaterial, DimPlant, DimSubLocation, DimBudgetElement}

// Valid reports whether d is a known dimension
func (d Dimension) Valid() bool {
	switch d {
	case DimMaterial, DimPlant, DimSubLocation, DimBudgetElement:
		return true
	default:
		return false
	}
}

// StockKey identifies a stock pool. Dimensions a tier does not key on are left blank.
type StockKey struct {
	Material      string `json:"material,omitempty"`
	Plant         string `json:"plant,omitempty"`
	SubLocation   string `json:"sub_location,omitempty"`
	BudgetElement string `json:"budget_element,omitempty"`
}

// Value returns the key component for a dimension
func (k StockKey) Value(d Dimension) string {
	switch d {
	case DimMaterial:
		return k.Material
	case DimPlant:
		return k.Plant
	case DimSubLocation:
		return k.SubLocation
	case DimBudgetElement:
		return k.BudgetElement
	default:
		return ""
	}
}

// Project keeps only the given dimensions of the key
func (k StockKey) Project(dims []Dimension) StockKey {
	var projected StockKey
	for _, d := range dims {
		switch d {
		case DimMaterial:
			projected.Material = k.Material
		case DimPlant:
			projected.Plant = k.Plant
		case DimSubLocation:
			projected.SubLocation = k.SubLocation
		case DimBudgetElement:
			projected.BudgetElement = k.BudgetElement
		}
	}
	return projected
}

// Less orders keys lexically by dimension
func (k StockKey) Less(other StockKey) bool {
	for _, d := range AllDimensions {
		a, b := k.Value(d), other.Value(d)
		if a != b {
			return a < b
		}
	}
	return false
}

// String renders the non-blank components joined by '|'
func (k StockKey) String() string {
	var parts []string
	for _, d := range AllDimensions {
		if v := k.Value(d); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "|")
}

// StockRecord is one raw inventory row (an MB52 line)
type StockRecord struct {
	Material      string
	Plant         string
	SubLocation   string
	BudgetElement string
	Unrestricted  Quantity
}

// Key returns the full stock key of the record
func (r StockRecord) Key() StockKey {
	return StockKey{
		Material:      r.Material,
		Plant:         r.Plant,
		SubLocation:   r.SubLocation,
		BudgetElement: r.BudgetElement,
	}
}

// NewStockRecord creates a validated StockRecord
func NewStockRecord(material, plant, subLocation, budgetElement string, unrestricted Quantity) (*StockRecord, error) {
	if material == "" {
		return nil, fmt.Errorf("material cannot be empty")
	}
	if plant == "" {
		return nil, fmt.Errorf("plant cannot be empty")
	}

	return &StockRecord{
		Material:      material,
		Plant:         plant,
		SubLocation:   subLocation,
		BudgetElement: budgetElement,
		Unrestricted:  unrestricted,
	}, nil
}

// StockTable is raw inventory together with the dimension columns the source carried
type StockTable struct {
	Columns []Dimension
	Records []StockRecord
}

// HasColumn reports whether the source carried the dimension
func (t StockTable) HasColumn(d Dimension) bool {
	for _, c := range t.Columns {
		if c == d {
			return true
		}
	}
	return false
}
