package events

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single occurrence in the generation run lifecycle
type Event struct {
	// Time is when the event occurred (set by bus on emit)
	Time time.Time `json:"time"`

	// Type identifies what happened
	Type EventType `json:"type"`

	// Slot is the output slot index this event relates to (nil for run events)
	Slot *int `json:"slot,omitempty"`

	// Attempt is the attempt number within the slot (nil if not attempt-related)
	Attempt *int `json:"attempt,omitempty"`

	// Model is the model identifier used for this event (empty for run events)
	Model string `json:"model,omitempty"`

	// Payload contains event-specific data (type varies by event)
	Payload any `json:"payload,omitempty"`

	// Error contains error message if this is a failure event
	Error string `json:"error,omitempty"`
}

// EventType is a string constant identifying the event category
type EventType string

// Run lifecycle events
const (
	RunStarted   EventType = "run.started"
	RunCompleted EventType = "run.completed"
	RunFailed    EventType = "run.failed"

	// RunCapacityExceeded is emitted when the global attempt ceiling is
	// reached before the target count is met. Payload: accepted (int),
	// requested (int), attempts (int).
	RunCapacityExceeded EventType = "run.capacity_exceeded"
)

// Slot lifecycle events
const (
	SlotStarted   EventType = "slot.started"
	SlotAccepted  EventType = "slot.accepted"
	SlotAbandoned EventType = "slot.abandoned"

	// SlotSalvaged is emitted when an exhausted slot is filled with its
	// best-scoring rejected attempt (accept_best policy).
	// Payload: score (float64)
	SlotSalvaged EventType = "slot.salvaged"
)

// Attempt lifecycle events
const (
	AttemptStarted  EventType = "attempt.started"
	AttemptScored   EventType = "attempt.scored"
	AttemptRejected EventType = "attempt.rejected"
	AttemptFailed   EventType = "attempt.failed" // generator adapter error
)

// Baseline collection events
const (
	CollectStarted   EventType = "collect.started"
	CollectCompleted EventType = "collect.completed"
)

// Report events
const (
	ReportStarted   EventType = "report.started"
	ReportCompleted EventType = "report.completed"
	ReportFailed    EventType = "report.failed"
)

// NewEvent creates an event with the given type
func NewEvent(eventType EventType) Event {
	return Event{Type: eventType}
}

// WithSlot returns a copy of the event with the slot index set
func (e Event) WithSlot(slot int) Event {
	e.Slot = &slot
	return e
}

// WithAttempt returns a copy of the event with the attempt number set
func (e Event) WithAttempt(attempt int) Event {
	e.Attempt = &attempt
	return e
}

// WithModel returns a copy of the event with the model identifier set
func (e Event) WithModel(model string) Event {
	e.Model = model
	return e
}

// WithPayload returns a copy of the event with the payload set
func (e Event) WithPayload(payload any) Event {
	e.Payload = payload
	return e
}

// WithError returns a copy of the event with the error message set
func (e Event) WithError(err error) Event {
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// IsFailure returns true if this is a failure event type
func (e Event) IsFailure() bool {
	return strings.HasSuffix(string(e.Type), ".failed")
}

// String returns a human-readable representation of the event
func (e Event) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", e.Type))

	if e.Slot != nil {
		parts = append(parts, fmt.Sprintf("slot=#%d", *e.Slot))
	}
	if e.Attempt != nil {
		parts = append(parts, fmt.Sprintf("attempt=#%d", *e.Attempt))
	}
	if e.Model != "" {
		parts = append(parts, e.Model)
	}
	if e.Error != "" {
		parts = append(parts, fmt.Sprintf("error=%q", e.Error))
	}

	return strings.Join(parts, " ")
}
