package events

import (
	"time"
)

// Event is one entry of a run's audit trail. StreamID is the run id.
type Event interface {
	Type() string
	StreamID() string
	Data() interface{}
	Timestamp() time.Time
	Version() int
}

type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// HandlerFunc adapts a function to EventHandler for every event type
type HandlerFunc func(event Event) error

func (f HandlerFunc) Handle(event Event) error {
	return f(event)
}

func (f HandlerFunc) CanHandle(string) bool {
	return true
}

// Record is the stored form of an event. Version is assigned by the journal
// when the record is appended to its run.
type Record struct {
	Kind     string      `json:"type"`
	RunID    string      `json:"run_id"`
	Payload  interface{} `json:"data"`
	At       time.Time   `json:"timestamp"`
	Sequence int         `json:"version"`
}

func (r Record) Type() string         { return r.Kind }
func (r Record) StreamID() string     { return r.RunID }
func (r Record) Data() interface{}    { return r.Payload }
func (r Record) Timestamp() time.Time { return r.At }
func (r Record) Version() int         { return r.Sequence }

// NewEvent creates an unversioned record stamped with the current time
func NewEvent(eventType, runID string, data interface{}) Event {
	return Record{
		Kind:    eventType,
		RunID:   runID,
		Payload: data,
		At:      time.Now(),
	}
}
