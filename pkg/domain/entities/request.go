package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TransferRequest is one row of the issue-request batch
type TransferRequest struct {
	ID            string
	Position      int // original row position, used as the final tie-break
	Material      string
	Plant         string
	SubLocation   string
	BudgetElement string
	TransferQty   Quantity
	ActualQty     Quantity
	Status        string
	Date          time.Time // zero when the row has no date
	Priority      int
	HasPriority   bool
}

// Key returns the full stock key the request draws from
func (r TransferRequest) Key() StockKey {
	return StockKey{
		Material:      r.Material,
		Plant:         r.Plant,
		SubLocation:   r.SubLocation,
		BudgetElement: r.BudgetElement,
	}
}

// HasDate reports whether the request carries a date
func (r TransferRequest) HasDate() bool {
	return !r.Date.IsZero()
}

// NewTransferRequest creates a validated TransferRequest
func NewTransferRequest(id string, position int, key StockKey, transferQty Quantity, status string) (*TransferRequest, error) {
	if key.Material == "" {
		return nil, fmt.Errorf("material cannot be empty")
	}
	if transferQty.IsNegative() {
		return nil, fmt.Errorf("transfer quantity cannot be negative, got %s", transferQty)
	}

	return &TransferRequest{
		ID:            id,
		Position:      position,
		Material:      key.Material,
		Plant:         key.Plant,
		SubLocation:   key.SubLocation,
		BudgetElement: key.BudgetElement,
		TransferQty:   transferQty,
		Status:        NormalizeStatus(status),
	}, nil
}

// NormalizeStatus trims a status code and drops a spreadsheet ".0" suffix
func NormalizeStatus(status string) string {
	status = strings.TrimSpace(status)
	if f, err := strconv.ParseFloat(status, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return status
}

// DefaultIssuedStatusCodes are the status codes of requests already issued
var DefaultIssuedStatusCodes = []string{"12"}

// DefaultPendingStatusCodes are the status codes the warehouse uses for open requests
var DefaultPendingStatusCodes = []string{"1", "5", "9"}

// StatusPolicy classifies requests by status code. Every code that is not an
// issued code is pending.
type StatusPolicy struct {
	IssuedCodes []string
}

// DefaultStatusPolicy returns the policy for the standard status codes
func DefaultStatusPolicy() StatusPolicy {
	return StatusPolicy{IssuedCodes: DefaultIssuedStatusCodes}
}

// Issued reports whether the request has already been issued
func (p StatusPolicy) Issued(r TransferRequest) bool {
	status := NormalizeStatus(r.Status)
	for _, code := range p.IssuedCodes {
		if NormalizeStatus(code) == status {
			return true
		}
	}
	return false
}
