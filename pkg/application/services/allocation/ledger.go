package allocation

import (
	"fmt"

	"github.com/vsinha/stockcheck/pkg/application/dto"
	"github.com/vsinha/stockcheck/pkg/application/services/index"
	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

// Ledger holds the remaining balances of one allocation pass. It copies every
// depletable tier of the index; the widest tier is read from the index and
// never copied, so nothing can draw it down.
type Ledger struct {
	ix        *index.Index
	remaining []map[entities.StockKey]entities.Quantity
}

// NewLedger copies the index balances into a fresh ledger
func NewLedger(ix *index.Index) *Ledger {
	depletable := ix.Len() - 1
	l := &Ledger{
		ix:        ix,
		remaining: make([]map[entities.StockKey]entities.Quantity, depletable),
	}
	for i := 0; i < depletable; i++ {
		l.remaining[i] = ix.Balances(i)
	}
	return l
}

// Informational reports whether tier i is the read-only widest tier
func (l *Ledger) Informational(i int) bool {
	return i == l.ix.Len()-1
}

// Get returns the remaining balance of tier i for a full key
func (l *Ledger) Get(i int, key entities.StockKey) entities.Quantity {
	if l.Informational(i) {
		return l.ix.Balance(i, key)
	}
	tk := key.Project(l.ix.Tier(i).Definition.Dimensions)
	return l.remaining[i][tk]
}

// Consume draws qty from tier i for a full key and returns the new balance.
// Drawing more than the balance or from the widest tier is a programming error.
func (l *Ledger) Consume(i int, key entities.StockKey, qty entities.Quantity) (entities.Quantity, error) {
	if l.Informational(i) {
		return entities.ZeroQuantity, fmt.Errorf("tier %q is informational and cannot be drawn from", l.ix.Tier(i).Definition.Name)
	}
	tk := key.Project(l.ix.Tier(i).Definition.Dimensions)
	balance := l.remaining[i][tk]
	if !qty.LessThanOrEqual(balance) {
		return balance, fmt.Errorf("cannot draw %s from tier %q key %s with balance %s",
			qty, l.ix.Tier(i).Definition.Name, tk, balance)
	}
	remaining := balance.Sub(qty)
	l.remaining[i][tk] = remaining
	return remaining, nil
}

// Snapshot returns every tier's balances with keys sorted. The widest tier
// is reported from the index.
func (l *Ledger) Snapshot() []dto.TierSnapshot {
	snapshots := make([]dto.TierSnapshot, l.ix.Len())
	for i := 0; i < l.ix.Len(); i++ {
		keys := l.ix.Keys(i)
		balances := make([]dto.KeyBalance, len(keys))
		for j, k := range keys {
			qty := l.ix.Balance(i, k)
			if !l.Informational(i) {
				qty = l.remaining[i][k]
			}
			balances[j] = dto.KeyBalance{Key: k, Quantity: qty}
		}
		snapshots[i] = dto.TierSnapshot{
			Tier:     l.ix.Tier(i).Definition.Name,
			Balances: balances,
		}
	}
	return snapshots
}
