package events

import (
	"errors"
	"fmt"
	"sync"
)

// Journal is an append-only, in-memory event log. Handlers run synchronously
// in append order once a batch has been stored.
type Journal struct {
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	allEvents   []Event
}

func NewJournal() *Journal {
	return &Journal{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
	}
}

// AppendBatch stores the events atomically and then notifies subscribers.
// Handler errors are joined and returned; the events stay stored.
func (j *Journal) AppendBatch(batch []Event) error {
	j.mutex.Lock()
	stored := make([]Event, 0, len(batch))
	for _, event := range batch {
		streamID := event.StreamID()
		versioned := Record{
			Kind:     event.Type(),
			RunID:    streamID,
			Payload:  event.Data(),
			At:       event.Timestamp(),
			Sequence: len(j.streams[streamID]) + 1,
		}
		j.streams[streamID] = append(j.streams[streamID], versioned)
		j.allEvents = append(j.allEvents, versioned)
		stored = append(stored, versioned)
	}
	j.mutex.Unlock()

	var errs []error
	for _, event := range stored {
		if err := j.notifySubscribers(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (j *Journal) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	j.mutex.RLock()
	defer j.mutex.RUnlock()

	events, exists := j.streams[streamID]
	if !exists {
		return []Event{}, nil
	}

	if fromVersion < 1 {
		fromVersion = 1
	}

	if fromVersion > len(events) {
		return []Event{}, nil
	}

	return append([]Event(nil), events[fromVersion-1:]...), nil
}

func (j *Journal) ReadAllEvents(fromPosition int) ([]Event, error) {
	j.mutex.RLock()
	defer j.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}

	if fromPosition >= len(j.allEvents) {
		return []Event{}, nil
	}

	return append([]Event(nil), j.allEvents[fromPosition:]...), nil
}

func (j *Journal) Subscribe(eventTypes []string, handler EventHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	j.mutex.Lock()
	defer j.mutex.Unlock()

	for _, eventType := range eventTypes {
		j.subscribers[eventType] = append(j.subscribers[eventType], handler)
	}

	return nil
}

func (j *Journal) notifySubscribers(event Event) error {
	j.mutex.RLock()
	handlers := append([]EventHandler(nil), j.subscribers[event.Type()]...)
	j.mutex.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if !handler.CanHandle(event.Type()) {
			continue
		}
		if err := handler.Handle(event); err != nil {
			errs = append(errs, fmt.Errorf("handling event %s: %w", event.Type(), err))
		}
	}
	return errors.Join(errs...)
}
