package dto

import (
	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

// AllocationReport contains the complete output of one allocation pass
type AllocationReport struct {
	RunID          string                      `json:"run_id"`
	Mode           string                      `json:"mode"`
	RequestedOrder string                      `json:"requested_order"`
	Order          string                      `json:"order"`
	Tiers          []entities.TierDefinition   `json:"tiers"`
	Results        []entities.AllocationResult `json:"results"`
	FinalBalances  []TierSnapshot              `json:"final_balances"`
	Summary        Summary                     `json:"summary"`
}

// TierSnapshot is the end-of-pass balance table of one tier
type TierSnapshot struct {
	Tier     string       `json:"tier"`
	Balances []KeyBalance `json:"balances"`
}

// KeyBalance is the balance of one tier key
type KeyBalance struct {
	Key      entities.StockKey `json:"key"`
	Quantity entities.Quantity `json:"quantity"`
}

// Summary counts verdicts and groups shortages by location
type Summary struct {
	Total                 int            `json:"total"`
	Satisfied             int            `json:"satisfied"`
	Unsatisfied           int            `json:"unsatisfied"`
	AlreadyIssuedComplete int            `json:"already_issued_complete"`
	AlreadyIssuedPartial  int            `json:"already_issued_partial"`
	SatisfiedByTier       map[string]int `json:"satisfied_by_tier"`
	Shortages             []Shortage     `json:"shortages"`
}

// Shortage aggregates the stock-short requests of one location
type Shortage struct {
	Plant       string            `json:"plant"`
	SubLocation string            `json:"sub_location"`
	Requests    int               `json:"requests"`
	ShortQty    entities.Quantity `json:"short_qty"`
}
