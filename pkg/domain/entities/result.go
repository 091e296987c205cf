package entities

import "fmt"

// Verdict is the outcome of evaluating one request
type Verdict int

const (
	Satisfied Verdict = iota
	Unsatisfied
	AlreadyIssuedComplete
	AlreadyIssuedPartial
)

// String method for Verdict enum
func (v Verdict) String() string {
	switch v {
	case Satisfied:
		return "SATISFIED"
	case Unsatisfied:
		return "UNSATISFIED"
	case AlreadyIssuedComplete:
		return "ALREADY_ISSUED_COMPLETE"
	case AlreadyIssuedPartial:
		return "ALREADY_ISSUED_PARTIAL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the verdict by name
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a verdict name
func (v *Verdict) UnmarshalText(text []byte) error {
	switch string(text) {
	case "SATISFIED":
		*v = Satisfied
	case "UNSATISFIED":
		*v = Unsatisfied
	case "ALREADY_ISSUED_COMPLETE":
		*v = AlreadyIssuedComplete
	case "ALREADY_ISSUED_PARTIAL":
		*v = AlreadyIssuedPartial
	default:
		return fmt.Errorf("unknown verdict %q", string(text))
	}
	return nil
}

// Substitution suggestions
const (
	SuggestionAreaTransfer      = "area-level transfer required"
	SuggestionInsufficientStock = "insufficient stock at every tier"
)

// TransferFeasibleFrom returns the suggestion for a request covered by a wider tier
func TransferFeasibleFrom(tierLabel string) string {
	return "transfer feasible from " + tierLabel
}

// TierBalance is the balance observed at one tier while evaluating a request
type TierBalance struct {
	Tier      string   `json:"tier"`
	Key       StockKey `json:"key"`
	Before    Quantity `json:"before"`
	Remaining Quantity `json:"remaining"`
}

// AllocationResult is the verdict for one request
type AllocationResult struct {
	RequestID  string        `json:"request_id"`
	Position   int           `json:"position"`
	Tier       string        `json:"tier,omitempty"`
	Verdict    Verdict       `json:"verdict"`
	Suggestion string        `json:"suggestion,omitempty"`
	Balances   []TierBalance `json:"balances"`
}

// StockShort reports whether the request could not be covered at any tier
func (r AllocationResult) StockShort() bool {
	return r.Verdict == Unsatisfied
}

// Balance returns the balance entry for a tier
func (r AllocationResult) Balance(tier string) (TierBalance, bool) {
	for _, b := range r.Balances {
		if b.Tier == tier {
			return b, true
		}
	}
	return TierBalance{}, false
}
