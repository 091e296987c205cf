package allocation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
	testhelpers "github.com/vsinha/stockcheck/pkg/infrastructure/testing"
)

func withPositions(requests ...*entities.TransferRequest) []*entities.TransferRequest {
	for i, r := range requests {
		r.Position = i
	}
	return requests
}

func ids(requests []*entities.TransferRequest) []string {
	out := make([]string, len(requests))
	for i, r := range requests {
		out[i] = r.ID
	}
	return out
}

func TestParseOrder(t *testing.T) {
	cases := map[string]Order{
		"":         OrderInput,
		"input":    OrderInput,
		"ID":       OrderID,
		" date ":   OrderDate,
		"priority": OrderPriority,
	}
	for input, expected := range cases {
		got, err := ParseOrder(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, got, input)
	}

	_, err := ParseOrder("random")
	assert.Error(t, err)
}

func TestOrder_ID(t *testing.T) {
	key := testhelpers.Key("M1", "P1", "S1", "W1")
	requests := withPositions(
		testhelpers.Request("10", key, 1, "1"),
		testhelpers.Request("9", key, 1, "1"),
		testhelpers.Request("B", key, 1, "1"),
		testhelpers.Request("100", key, 1, "1"),
		testhelpers.Request("A", key, 1, "1"),
	)

	// Integers compare numerically; anything else lexically.
	assert.Equal(t, []string{"9", "10", "100", "A", "B"}, ids(OrderID.Sort(requests)))
}

func TestOrder_DuplicateIDsKeepInputOrder(t *testing.T) {
	key := testhelpers.Key("M1", "P1", "S1", "W1")
	first := testhelpers.Request("7", key, 1, "1")
	second := testhelpers.Request("7", key, 2, "1")
	requests := withPositions(first, second)

	sorted := OrderID.Sort(requests)
	assert.Same(t, first, sorted[0])
	assert.Same(t, second, sorted[1])
}

func TestOrder_Date(t *testing.T) {
	key := testhelpers.Key("M1", "P1", "S1", "W1")
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }

	a := testhelpers.Request("1", key, 1, "1")
	a.Date = day(3)
	b := testhelpers.Request("2", key, 1, "1")
	b.Date = day(1)
	c := testhelpers.Request("3", key, 1, "1") // no date
	d := testhelpers.Request("4", key, 1, "1")
	d.Date = day(1)
	requests := withPositions(a, b, c, d)

	assert.Equal(t, OrderDate, OrderDate.Effective(requests))
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(OrderDate.Sort(requests)))
}

func TestOrder_Priority(t *testing.T) {
	key := testhelpers.Key("M1", "P1", "S1", "W1")
	a := testhelpers.Request("1", key, 1, "1")
	a.Priority, a.HasPriority = 3, true
	b := testhelpers.Request("2", key, 1, "1")
	c := testhelpers.Request("3", key, 1, "1")
	c.Priority, c.HasPriority = 1, true
	requests := withPositions(a, b, c)

	assert.Equal(t, []string{"3", "1", "2"}, ids(OrderPriority.Sort(requests)))
}

func TestOrder_FallsBackToID(t *testing.T) {
	key := testhelpers.Key("M1", "P1", "S1", "W1")
	requests := withPositions(
		testhelpers.Request("3", key, 1, "1"),
		testhelpers.Request("1", key, 1, "1"),
		testhelpers.Request("2", key, 1, "1"),
	)

	assert.Equal(t, OrderID, OrderDate.Effective(requests))
	assert.Equal(t, OrderID, OrderPriority.Effective(requests))
	assert.Equal(t, []string{"1", "2", "3"}, ids(OrderDate.Sort(requests)))
	assert.Equal(t, []string{"1", "2", "3"}, ids(OrderPriority.Sort(requests)))
}

func TestOrder_Input(t *testing.T) {
	key := testhelpers.Key("M1", "P1", "S1", "W1")
	requests := withPositions(
		testhelpers.Request("3", key, 1, "1"),
		testhelpers.Request("1", key, 1, "1"),
		testhelpers.Request("2", key, 1, "1"),
	)

	assert.Equal(t, []int{0, 1, 2}, OrderInput.Sequence(requests))
	assert.Equal(t, OrderInput, Order("").Effective(requests))
}

func TestOrder_SortDoesNotMutateInput(t *testing.T) {
	key := testhelpers.Key("M1", "P1", "S1", "W1")
	requests := withPositions(
		testhelpers.Request("2", key, 1, "1"),
		testhelpers.Request("1", key, 1, "1"),
	)

	_ = OrderID.Sort(requests)
	assert.Equal(t, []string{"2", "1"}, ids(requests))
}
