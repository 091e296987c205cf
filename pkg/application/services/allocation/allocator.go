// Package allocation walks a batch of transfer requests through the tiers of
// a stock pool index, in processing order, drawing balances down as requests
// are covered.
package allocation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/stockcheck/pkg/application/dto"
	"github.com/vsinha/stockcheck/pkg/application/services/index"
	"github.com/vsinha/stockcheck/pkg/domain/entities"
	"github.com/vsinha/stockcheck/pkg/infrastructure/events"
)

// Mode selects whether balances carry over between requests
type Mode string

const (
	// ModeSequential draws every covered request from the shared balances
	ModeSequential Mode = "sequential"
	// ModeSimple checks every request against the initial balances
	ModeSimple Mode = "simple"
)

// ParseMode parses a mode name; empty means sequential
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSequential:
		return ModeSequential, nil
	case ModeSimple:
		return ModeSimple, nil
	default:
		return "", fmt.Errorf("unknown mode %q: must be sequential or simple", s)
	}
}

// Config holds the allocation options
type Config struct {
	Mode   Mode
	Order  Order
	Status entities.StatusPolicy
}

// DefaultConfig returns sequential allocation in input order with the standard status codes
func DefaultConfig() Config {
	return Config{
		Mode:   ModeSequential,
		Order:  OrderInput,
		Status: entities.DefaultStatusPolicy(),
	}
}

// Allocator runs allocation passes against one index. Each pass owns its
// ledger, so passes never see each other's draws.
type Allocator struct {
	ix      *index.Index
	config  Config
	journal *events.Journal
	logger  *zap.Logger
}

// NewAllocator creates an allocator for an index
func NewAllocator(ix *index.Index, config Config, logger *zap.Logger) (*Allocator, error) {
	if ix == nil {
		return nil, fmt.Errorf("index cannot be nil")
	}
	mode, err := ParseMode(string(config.Mode))
	if err != nil {
		return nil, err
	}
	order, err := ParseOrder(string(config.Order))
	if err != nil {
		return nil, err
	}
	config.Mode, config.Order = mode, order
	if config.Status.IssuedCodes == nil {
		config.Status = entities.DefaultStatusPolicy()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Allocator{ix: ix, config: config, logger: logger}, nil
}

// WithJournal publishes the events of every completed pass to the journal
func (a *Allocator) WithJournal(journal *events.Journal) *Allocator {
	a.journal = journal
	return a
}

// Allocate evaluates a batch with the default configuration and the given order
func Allocate(ix *index.Index, requests []*entities.TransferRequest, order Order) (*dto.AllocationReport, error) {
	config := DefaultConfig()
	config.Order = order
	a, err := NewAllocator(ix, config, nil)
	if err != nil {
		return nil, err
	}
	return a.Allocate(requests)
}

// Allocate runs one pass over the batch. Results come back in input order.
// Already-issued requests are only checked for completeness; pending requests
// are evaluated in processing order against a fresh ledger.
func (a *Allocator) Allocate(requests []*entities.TransferRequest) (*dto.AllocationReport, error) {
	runID := uuid.NewString()
	effective := a.config.Order.Effective(requests)
	ledger := NewLedger(a.ix)
	results := make([]entities.AllocationResult, len(requests))

	var pending []int
	for i, req := range requests {
		if req == nil {
			return nil, fmt.Errorf("request %d is nil", i)
		}
		if a.config.Status.Issued(*req) {
			results[i] = a.evaluateIssued(req)
			continue
		}
		pending = append(pending, i)
	}

	pendingRequests := make([]*entities.TransferRequest, len(pending))
	for j, i := range pending {
		pendingRequests[j] = requests[i]
	}

	var batch []events.Event
	batch = append(batch, events.NewPassStartedEvent(runID, events.PassStarted{
		Mode:     string(a.config.Mode),
		Order:    string(effective),
		Requests: len(requests),
	}))

	for seq, j := range sequence(pendingRequests, effective) {
		i := pending[j]
		result, err := a.evaluatePending(ledger, requests[i])
		if err != nil {
			return nil, fmt.Errorf("evaluating request %s: %w", requests[i].ID, err)
		}
		results[i] = result

		a.logger.Debug("request evaluated",
			zap.String("request", result.RequestID),
			zap.Int("sequence", seq),
			zap.Stringer("verdict", result.Verdict),
			zap.String("tier", result.Tier))
		batch = append(batch, events.NewRequestEvaluatedEvent(runID, events.RequestEvaluated{
			Sequence: seq,
			Result:   result,
		}))
	}

	summary := Summarize(requests, results)
	batch = append(batch, events.NewPassCompletedEvent(runID, events.PassCompleted{
		Satisfied:   summary.Satisfied,
		Unsatisfied: summary.Unsatisfied,
		Issued:      summary.AlreadyIssuedComplete + summary.AlreadyIssuedPartial,
	}))

	report := &dto.AllocationReport{
		RunID:          runID,
		Mode:           string(a.config.Mode),
		RequestedOrder: string(a.config.Order),
		Order:          string(effective),
		Tiers:          append([]entities.TierDefinition(nil), a.ix.Hierarchy()...),
		Results:        results,
		FinalBalances:  ledger.Snapshot(),
		Summary:        summary,
	}

	a.logger.Info("allocation pass completed",
		zap.String("run_id", runID),
		zap.String("mode", report.Mode),
		zap.String("order", report.Order),
		zap.Int("requests", summary.Total),
		zap.Int("satisfied", summary.Satisfied),
		zap.Int("unsatisfied", summary.Unsatisfied))

	if a.journal != nil {
		if err := a.journal.AppendBatch(batch); err != nil {
			a.logger.Warn("journal subscriber failed", zap.String("run_id", runID), zap.Error(err))
		}
	}

	return report, nil
}

// evaluateIssued checks an already-issued request for completeness
func (a *Allocator) evaluateIssued(req *entities.TransferRequest) entities.AllocationResult {
	verdict := entities.AlreadyIssuedPartial
	if req.ActualQty.Equal(req.TransferQty) {
		verdict = entities.AlreadyIssuedComplete
	}

	key := req.Key()
	hierarchy := a.ix.Hierarchy()
	balances := make([]entities.TierBalance, len(hierarchy))
	for i, tier := range hierarchy {
		qty := a.ix.Balance(i, key)
		balances[i] = entities.TierBalance{
			Tier:      tier.Name,
			Key:       key.Project(tier.Dimensions),
			Before:    qty,
			Remaining: qty,
		}
	}

	return entities.AllocationResult{
		RequestID: req.ID,
		Position:  req.Position,
		Verdict:   verdict,
		Balances:  balances,
	}
}

// evaluatePending walks the tiers narrowest first. The first depletable tier
// that covers the request is drawn down; the widest tier is only consulted.
func (a *Allocator) evaluatePending(ledger *Ledger, req *entities.TransferRequest) (entities.AllocationResult, error) {
	key := req.Key()
	qty := req.TransferQty
	hierarchy := a.ix.Hierarchy()
	widest := len(hierarchy) - 1

	balances := make([]entities.TierBalance, len(hierarchy))
	for i, tier := range hierarchy {
		before := ledger.Get(i, key)
		balances[i] = entities.TierBalance{
			Tier:      tier.Name,
			Key:       key.Project(tier.Dimensions),
			Before:    before,
			Remaining: before,
		}
	}

	result := entities.AllocationResult{
		RequestID: req.ID,
		Position:  req.Position,
		Verdict:   entities.Unsatisfied,
		Balances:  balances,
	}

	for i := 0; i < widest; i++ {
		if !qty.LessThanOrEqual(balances[i].Before) {
			continue
		}
		if a.config.Mode == ModeSequential {
			remaining, err := ledger.Consume(i, key, qty)
			if err != nil {
				return result, err
			}
			balances[i].Remaining = remaining
		} else {
			balances[i].Remaining = balances[i].Before.Sub(qty)
		}

		result.Verdict = entities.Satisfied
		result.Tier = hierarchy[i].Name
		if i > 0 {
			result.Suggestion = entities.TransferFeasibleFrom(hierarchy[i].DisplayName())
		}
		return result, nil
	}

	if qty.LessThanOrEqual(balances[widest].Before) {
		result.Verdict = entities.Satisfied
		result.Tier = hierarchy[widest].Name
		result.Suggestion = entities.SuggestionAreaTransfer
		return result, nil
	}

	result.Suggestion = entities.SuggestionInsufficientStock
	return result, nil
}
