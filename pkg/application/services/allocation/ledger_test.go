package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

func TestLedger_ConsumeAndGet(t *testing.T) {
	ix := buildIndex(t, map[entities.StockKey]int64{keyS1W1: 10, keyS2W1: 2})
	ledger := NewLedger(ix)

	remaining, err := ledger.Consume(1, keyS1W1, entities.NewQuantity(7))
	require.NoError(t, err)
	requireQty(t, 5, remaining)

	// Another key projecting onto the same WBS pool sees the draw.
	requireQty(t, 5, ledger.Get(1, keyS2W1))
	// The narrowest tier and the index are untouched.
	requireQty(t, 10, ledger.Get(0, keyS1W1))
	requireQty(t, 12, ix.Balance(1, keyS1W1))
}

func TestLedger_Overdraw(t *testing.T) {
	ix := buildIndex(t, map[entities.StockKey]int64{keyS1W1: 3})
	ledger := NewLedger(ix)

	_, err := ledger.Consume(0, keyS1W1, entities.NewQuantity(4))
	require.Error(t, err)
	requireQty(t, 3, ledger.Get(0, keyS1W1), "failed draw leaves balance alone")
}

func TestLedger_InformationalTier(t *testing.T) {
	ix := buildIndex(t, map[entities.StockKey]int64{keyS1W1: 3})
	ledger := NewLedger(ix)
	widest := ix.Len() - 1

	assert.True(t, ledger.Informational(widest))
	assert.False(t, ledger.Informational(0))

	_, err := ledger.Consume(widest, keyS1W1, entities.NewQuantity(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "informational")
	requireQty(t, 3, ledger.Get(widest, keyS1W1))
}

func TestLedger_IndependentPasses(t *testing.T) {
	ix := buildIndex(t, map[entities.StockKey]int64{keyS1W1: 3})

	first := NewLedger(ix)
	_, err := first.Consume(0, keyS1W1, entities.NewQuantity(3))
	require.NoError(t, err)

	second := NewLedger(ix)
	requireQty(t, 3, second.Get(0, keyS1W1))
}

func TestLedger_Snapshot(t *testing.T) {
	ix := buildIndex(t, map[entities.StockKey]int64{keyS1W1: 4, keyS1W2: 1})
	ledger := NewLedger(ix)
	_, err := ledger.Consume(0, keyS1W1, entities.NewQuantity(4))
	require.NoError(t, err)

	snapshot := ledger.Snapshot()
	require.Len(t, snapshot, ix.Len())
	assert.Equal(t, "sloc_wbs", snapshot[0].Tier)
	require.Len(t, snapshot[0].Balances, 2)
	assert.Equal(t, keyS1W1, snapshot[0].Balances[0].Key, "keys are sorted")
	requireQty(t, 0, snapshot[0].Balances[0].Quantity)
	requireQty(t, 1, snapshot[0].Balances[1].Quantity)

	area := snapshot[len(snapshot)-1]
	require.Len(t, area.Balances, 1)
	requireQty(t, 5, area.Balances[0].Quantity)
}
