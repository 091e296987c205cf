// Package index aggregates raw inventory into one balance table per tier of
// the stock pool hierarchy.
package index

import (
	"fmt"
	"sort"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

// Tier is one aggregated level of the hierarchy
type Tier struct {
	Definition entities.TierDefinition
	balances   map[entities.StockKey]entities.Quantity
}

// Index holds the per-tier balances. It is never mutated after Build.
type Index struct {
	hierarchy entities.Hierarchy
	tiers     []Tier
}

// Build validates the hierarchy against the table's columns and sums the
// unrestricted quantity of every record into each tier. Any configuration
// problem is reported once and no index is returned.
func Build(table *entities.StockTable, hierarchy entities.Hierarchy) (*Index, error) {
	if table == nil {
		return nil, fmt.Errorf("stock table cannot be nil")
	}
	if err := hierarchy.Validate(); err != nil {
		return nil, err
	}

	for _, tier := range hierarchy {
		for _, d := range tier.Dimensions {
			if !table.HasColumn(d) {
				return nil, &entities.MissingDimensionError{Tier: tier.Name, Dimension: d}
			}
		}
	}

	ix := &Index{
		hierarchy: append(entities.Hierarchy(nil), hierarchy...),
		tiers:     make([]Tier, len(hierarchy)),
	}
	for i, def := range hierarchy {
		ix.tiers[i] = Tier{
			Definition: def,
			balances:   make(map[entities.StockKey]entities.Quantity),
		}
	}

	for _, record := range table.Records {
		qty := record.Unrestricted.NonNegative()
		key := record.Key()
		for i := range ix.tiers {
			tier := &ix.tiers[i]
			tk := key.Project(tier.Definition.Dimensions)
			tier.balances[tk] = tier.balances[tk].Add(qty)
		}
	}

	return ix, nil
}

// Hierarchy returns the tier definitions, narrowest first
func (ix *Index) Hierarchy() entities.Hierarchy {
	return ix.hierarchy
}

// Len returns the number of tiers
func (ix *Index) Len() int {
	return len(ix.tiers)
}

// Tier returns the tier at position i
func (ix *Index) Tier(i int) Tier {
	return ix.tiers[i]
}

// TierByName looks a tier position up by name
func (ix *Index) TierByName(name string) (int, bool) {
	for i, tier := range ix.tiers {
		if tier.Definition.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Balance returns the balance of tier i for a full key. Keys absent from the
// tier have zero balance.
func (ix *Index) Balance(i int, key entities.StockKey) entities.Quantity {
	tier := ix.tiers[i]
	return tier.balances[key.Project(tier.Definition.Dimensions)]
}

// Keys returns the sorted tier keys of tier i
func (ix *Index) Keys(i int) []entities.StockKey {
	keys := make([]entities.StockKey, 0, len(ix.tiers[i].balances))
	for k := range ix.tiers[i].balances {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		return keys[a].Less(keys[b])
	})
	return keys
}

// Total returns the sum of every balance in tier i
func (ix *Index) Total(i int) entities.Quantity {
	total := entities.ZeroQuantity
	for _, qty := range ix.tiers[i].balances {
		total = total.Add(qty)
	}
	return total
}

// Balances returns a copy of tier i's balance table
func (ix *Index) Balances(i int) map[entities.StockKey]entities.Quantity {
	out := make(map[entities.StockKey]entities.Quantity, len(ix.tiers[i].balances))
	for k, v := range ix.tiers[i].balances {
		out[k] = v
	}
	return out
}
