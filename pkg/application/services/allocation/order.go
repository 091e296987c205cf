package allocation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

// Order selects the processing sequence of pending requests
type Order string

const (
	OrderInput    Order = "input"
	OrderID       Order = "id"
	OrderDate     Order = "date"
	OrderPriority Order = "priority"
)

// ParseOrder parses an order selector; empty means input order
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderInput:
		return OrderInput, nil
	case OrderID:
		return OrderID, nil
	case OrderDate:
		return OrderDate, nil
	case OrderPriority:
		return OrderPriority, nil
	default:
		return "", fmt.Errorf("unknown order %q: must be one of input, id, date, priority", s)
	}
}

// Effective returns the order actually applied to the batch: date and
// priority fall back to identifier order when no request carries the field.
func (o Order) Effective(requests []*entities.TransferRequest) Order {
	switch o {
	case "":
		return OrderInput
	case OrderDate:
		for _, r := range requests {
			if r.HasDate() {
				return OrderDate
			}
		}
		return OrderID
	case OrderPriority:
		for _, r := range requests {
			if r.HasPriority {
				return OrderPriority
			}
		}
		return OrderID
	default:
		return o
	}
}

// Sort returns the requests in processing order
func (o Order) Sort(requests []*entities.TransferRequest) []*entities.TransferRequest {
	sorted := make([]*entities.TransferRequest, 0, len(requests))
	for _, i := range o.Sequence(requests) {
		sorted = append(sorted, requests[i])
	}
	return sorted
}

// Sequence returns the indices of requests in processing order. Requests
// missing the sort field go after those that have it. Ties fall back to the
// identifier and then to the original position, so the result is deterministic.
func (o Order) Sequence(requests []*entities.TransferRequest) []int {
	return sequence(requests, o.Effective(requests))
}

func sequence(requests []*entities.TransferRequest, effective Order) []int {
	seq := make([]int, len(requests))
	for i := range seq {
		seq[i] = i
	}

	sort.SliceStable(seq, func(i, j int) bool {
		a, b := requests[seq[i]], requests[seq[j]]
		switch effective {
		case OrderDate:
			if a.HasDate() != b.HasDate() {
				return a.HasDate()
			}
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
		case OrderPriority:
			if a.HasPriority != b.HasPriority {
				return a.HasPriority
			}
			if a.Priority != b.Priority {
				return a.Priority < b.Priority
			}
		case OrderInput:
			return a.Position < b.Position
		}
		if c := compareIDs(a.ID, b.ID); c != 0 {
			return c < 0
		}
		return a.Position < b.Position
	})
	return seq
}

// compareIDs compares identifiers numerically when both are integers
func compareIDs(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
