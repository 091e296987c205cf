package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_AppendBatchVersionsPerStream(t *testing.T) {
	journal := NewJournal()

	err := journal.AppendBatch([]Event{
		NewPassStartedEvent("run-a", PassStarted{Mode: "sequential", Order: "id", Requests: 1}),
		NewPassStartedEvent("run-b", PassStarted{Mode: "simple", Order: "input", Requests: 2}),
		NewPassCompletedEvent("run-a", PassCompleted{Satisfied: 1}),
	})
	require.NoError(t, err)

	runA, err := journal.ReadEvents("run-a", 1)
	require.NoError(t, err)
	require.Len(t, runA, 2)
	assert.Equal(t, 1, runA[0].Version())
	assert.Equal(t, 2, runA[1].Version())
	assert.Equal(t, PassCompletedEvent, runA[1].Type())
	assert.Equal(t, PassCompleted{Satisfied: 1}, runA[1].Data())

	runB, err := journal.ReadEvents("run-b", 0)
	require.NoError(t, err)
	require.Len(t, runB, 1)
	assert.Equal(t, 1, runB[0].Version())

	fromTwo, err := journal.ReadEvents("run-a", 2)
	require.NoError(t, err)
	require.Len(t, fromTwo, 1)

	beyond, err := journal.ReadEvents("run-a", 3)
	require.NoError(t, err)
	assert.Empty(t, beyond)

	missing, err := journal.ReadEvents("nope", 1)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestJournal_ReadAllEvents(t *testing.T) {
	journal := NewJournal()
	require.NoError(t, journal.AppendBatch([]Event{
		NewPassStartedEvent("run-a", PassStarted{}),
		NewPassStartedEvent("run-b", PassStarted{}),
	}))
	require.NoError(t, journal.AppendBatch([]Event{
		NewPassCompletedEvent("run-a", PassCompleted{}),
	}))

	all, err := journal.ReadAllEvents(-1)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "run-b", all[1].StreamID())

	tail, err := journal.ReadAllEvents(2)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, PassCompletedEvent, tail[0].Type())

	none, err := journal.ReadAllEvents(10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJournal_SubscribersSeeMatchingTypesInOrder(t *testing.T) {
	journal := NewJournal()

	var seen []int
	require.NoError(t, journal.Subscribe([]string{RequestEvaluatedEvent}, HandlerFunc(func(event Event) error {
		seen = append(seen, event.Data().(RequestEvaluated).Sequence)
		return nil
	})))

	require.NoError(t, journal.AppendBatch([]Event{
		NewPassStartedEvent("run", PassStarted{}),
		NewRequestEvaluatedEvent("run", RequestEvaluated{Sequence: 0}),
		NewRequestEvaluatedEvent("run", RequestEvaluated{Sequence: 1}),
		NewPassCompletedEvent("run", PassCompleted{}),
	}))

	assert.Equal(t, []int{0, 1}, seen)
}

func TestJournal_HandlerErrorsAreJoined(t *testing.T) {
	journal := NewJournal()
	boom := errors.New("boom")

	calls := 0
	require.NoError(t, journal.Subscribe(AllEventTypes, HandlerFunc(func(event Event) error {
		calls++
		return boom
	})))

	err := journal.AppendBatch([]Event{
		NewPassStartedEvent("run", PassStarted{}),
		NewPassCompletedEvent("run", PassCompleted{}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls, "every subscriber call still happens")

	stored, readErr := journal.ReadEvents("run", 1)
	require.NoError(t, readErr)
	assert.Len(t, stored, 2, "events stay stored when handlers fail")
}

func TestJournal_SubscribeNilHandler(t *testing.T) {
	journal := NewJournal()
	assert.Error(t, journal.Subscribe([]string{PassStartedEvent}, nil))
}
