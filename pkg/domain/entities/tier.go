package entities

import (
	"fmt"
)

// TierDefinition describes one level of the stock pool hierarchy
type TierDefinition struct {
	Name       string      `yaml:"name" json:"name"`
	Label      string      `yaml:"label" json:"label"`
	Dimensions []Dimension `yaml:"dimensions" json:"dimensions"`
}

// DisplayName returns the label, or the name when no label is set
func (t TierDefinition) DisplayName() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Name
}

// Uses reports whether the tier keys on the dimension
func (t TierDefinition) Uses(d Dimension) bool {
	for _, dim := range t.Dimensions {
		if dim == d {
			return true
		}
	}
	return false
}

// Hierarchy is an ordered list of tiers, narrowest first. The last tier is
// informational: it is consulted but never depleted.
type Hierarchy []TierDefinition

// DefaultHierarchy returns the sub-location/WBS hierarchy used by the warehouse
func DefaultHierarchy() Hierarchy {
	return Hierarchy{
		{
			Name:       "sloc_wbs",
			Label:      "sub-location WBS stock",
			Dimensions: []Dimension{DimMaterial, DimPlant, DimSubLocation, DimBudgetElement},
		},
		{
			Name:       "wbs",
			Label:      "WBS stock",
			Dimensions: []Dimension{DimMaterial, DimPlant, DimBudgetElement},
		},
		{
			Name:       "sloc",
			Label:      "sub-location total",
			Dimensions: []Dimension{DimMaterial, DimPlant, DimSubLocation},
		},
		{
			Name:       "plant",
			Label:      "regional total",
			Dimensions: []Dimension{DimMaterial, DimPlant},
		},
		{
			Name:       "area",
			Label:      "area total",
			Dimensions: []Dimension{DimMaterial},
		},
	}
}

// Narrowest returns the first tier
func (h Hierarchy) Narrowest() TierDefinition {
	return h[0]
}

// Widest returns the informational tier
func (h Hierarchy) Widest() TierDefinition {
	return h[len(h)-1]
}

// RequiredDimensions returns every dimension used by any tier, in key order
func (h Hierarchy) RequiredDimensions() []Dimension {
	var dims []Dimension
	for _, d := range AllDimensions {
		for _, tier := range h {
			if tier.Uses(d) {
				dims = append(dims, d)
				break
			}
		}
	}
	return dims
}

// Validate checks the hierarchy is well formed. A wider tier's key must be a
// projection of the narrowest key, and the widest key a projection of every key.
func (h Hierarchy) Validate() error {
	if len(h) < 2 {
		return fmt.Errorf("%w: need at least two tiers, got %d", ErrInvalidHierarchy, len(h))
	}

	names := make(map[string]bool, len(h))
	for i, tier := range h {
		if tier.Name == "" {
			return fmt.Errorf("%w: tier %d has no name", ErrInvalidHierarchy, i)
		}
		if names[tier.Name] {
			return fmt.Errorf("%w: duplicate tier name %q", ErrInvalidHierarchy, tier.Name)
		}
		names[tier.Name] = true

		if len(tier.Dimensions) == 0 {
			return fmt.Errorf("%w: tier %q has no dimensions", ErrInvalidHierarchy, tier.Name)
		}
		seen := make(map[Dimension]bool, len(tier.Dimensions))
		for _, d := range tier.Dimensions {
			if !d.Valid() {
				return fmt.Errorf("%w: tier %q uses unknown dimension %q", ErrInvalidHierarchy, tier.Name, d)
			}
			if seen[d] {
				return fmt.Errorf("%w: tier %q repeats dimension %q", ErrInvalidHierarchy, tier.Name, d)
			}
			seen[d] = true
		}
	}

	narrowest, widest := h.Narrowest(), h.Widest()
	for _, tier := range h[1:] {
		for _, d := range tier.Dimensions {
			if !narrowest.Uses(d) {
				return fmt.Errorf("%w: tier %q keys on %q which tier %q does not", ErrInvalidHierarchy, tier.Name, d, narrowest.Name)
			}
		}
	}
	for _, tier := range h {
		for _, d := range widest.Dimensions {
			if !tier.Uses(d) {
				return fmt.Errorf("%w: widest tier %q keys on %q which tier %q does not", ErrInvalidHierarchy, widest.Name, d, tier.Name)
			}
		}
	}

	return nil
}
