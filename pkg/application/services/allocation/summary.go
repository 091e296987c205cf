package allocation

import (
	"sort"
	"strings"

	"github.com/vsinha/stockcheck/pkg/application/dto"
	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

// Summarize counts verdicts and groups stock-short requests by plant and
// sub-location. requests and results must be parallel slices.
func Summarize(requests []*entities.TransferRequest, results []entities.AllocationResult) dto.Summary {
	summary := dto.Summary{
		Total:           len(results),
		SatisfiedByTier: make(map[string]int),
		Shortages:       []dto.Shortage{},
	}

	type location struct{ plant, subLocation string }
	shortages := make(map[location]*dto.Shortage)

	for i, result := range results {
		switch result.Verdict {
		case entities.Satisfied:
			summary.Satisfied++
			summary.SatisfiedByTier[result.Tier]++
		case entities.Unsatisfied:
			summary.Unsatisfied++
		case entities.AlreadyIssuedComplete:
			summary.AlreadyIssuedComplete++
		case entities.AlreadyIssuedPartial:
			summary.AlreadyIssuedPartial++
		}

		if !result.StockShort() || i >= len(requests) {
			continue
		}
		req := requests[i]
		loc := location{plant: req.Plant, subLocation: req.SubLocation}
		s, ok := shortages[loc]
		if !ok {
			s = &dto.Shortage{Plant: loc.plant, SubLocation: loc.subLocation, ShortQty: entities.ZeroQuantity}
			shortages[loc] = s
		}
		s.Requests++
		s.ShortQty = s.ShortQty.Add(req.TransferQty)
	}

	for _, s := range shortages {
		summary.Shortages = append(summary.Shortages, *s)
	}
	sort.Slice(summary.Shortages, func(i, j int) bool {
		a, b := summary.Shortages[i], summary.Shortages[j]
		if a.Requests != b.Requests {
			return a.Requests > b.Requests
		}
		if a.Plant != b.Plant {
			return a.Plant < b.Plant
		}
		return a.SubLocation < b.SubLocation
	})

	return summary
}

// Filter narrows rendered rows by case-sensitive substring, like the quick
// filters of the warehouse report. Empty fields match everything.
type Filter struct {
	Material      string
	BudgetElement string
	Plant         string
}

// Empty reports whether the filter matches everything
func (f Filter) Empty() bool {
	return f.Material == "" && f.BudgetElement == "" && f.Plant == ""
}

// Match reports whether a request passes the filter
func (f Filter) Match(req *entities.TransferRequest) bool {
	return strings.Contains(req.Material, f.Material) &&
		strings.Contains(req.BudgetElement, f.BudgetElement) &&
		strings.Contains(req.Plant, f.Plant)
}
