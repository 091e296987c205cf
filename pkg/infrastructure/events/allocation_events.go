package events

import (
	"github.com/vsinha/stockcheck/pkg/domain/entities"
)

const (
	PassStartedEvent      = "allocation.pass.started"
	RequestEvaluatedEvent = "allocation.request.evaluated"
	PassCompletedEvent    = "allocation.pass.completed"
)

// AllEventTypes lists every event an allocation pass emits
var AllEventTypes = []string{PassStartedEvent, RequestEvaluatedEvent, PassCompletedEvent}

type PassStarted struct {
	Mode     string `json:"mode"`
	Order    string `json:"order"`
	Requests int    `json:"requests"`
}

type RequestEvaluated struct {
	Sequence int                       `json:"sequence"`
	Result   entities.AllocationResult `json:"result"`
}

type PassCompleted struct {
	Satisfied   int `json:"satisfied"`
	Unsatisfied int `json:"unsatisfied"`
	Issued      int `json:"issued"`
}

func NewPassStartedEvent(runID string, data PassStarted) Event {
	return NewEvent(PassStartedEvent, runID, data)
}

func NewRequestEvaluatedEvent(runID string, data RequestEvaluated) Event {
	return NewEvent(RequestEvaluatedEvent, runID, data)
}

func NewPassCompletedEvent(runID string, data PassCompleted) Event {
	return NewEvent(PassCompletedEvent, runID, data)
}
