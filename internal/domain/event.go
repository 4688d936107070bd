package domain

import "time"

// EventStatus enumerates lifecycle states for staffed events.
type EventStatus string

const (
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusStarted    EventStatus = "STARTED"
	EventStatusCompleted  EventStatus = "COMPLETED"
	EventStatusCanceled   EventStatus = "CANCELED"
)

// eventTransitions lists the legal forward edges. CANCELED is reachable
// from any non-terminal state.
var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusPublished:  {EventStatusProcessing, EventStatusCanceled},
	EventStatusProcessing: {EventStatusStarted, EventStatusCanceled},
	EventStatusStarted:    {EventStatusCompleted, EventStatusCanceled},
	EventStatusCompleted:  {},
	EventStatusCanceled:   {},
}

// ValidEventStatus reports whether status is a known enumeration value.
func ValidEventStatus(status EventStatus) bool {
	_, ok := eventTransitions[status]
	return ok
}

// CanTransition reports whether an event may move from one status to another.
// A no-op transition to the current status is allowed.
func CanTransition(from, to EventStatus) bool {
	if from == to {
		return true
	}
	for _, next := range eventTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Event is the aggregate for a staffed engagement, carrying four
// contractor-id sets that track the assignment round.
type Event struct {
	ID           string
	Name         string
	LoadIn       time.Time
	LoadInHours  float64
	LoadOut      time.Time
	LoadOutHours float64
	Location     string
	Description  string
	Assigned     []string
	Accepted     []string
	Rejected     []string
	Approved     []string
	Status       EventStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAssigned reports whether the contractor is part of the assignment set.
func (e *Event) IsAssigned(contractorID string) bool {
	return containsID(e.Assigned, contractorID)
}

// Accept records a contractor acceptance, removing any earlier rejection so
// an id sits in at most one of the accepted/rejected sets.
func (e *Event) Accept(contractorID string) {
	e.Rejected = removeID(e.Rejected, contractorID)
	if !containsID(e.Accepted, contractorID) {
		e.Accepted = append(e.Accepted, contractorID)
	}
}

// Reject records a contractor rejection, the mirror of Accept.
func (e *Event) Reject(contractorID string) {
	e.Accepted = removeID(e.Accepted, contractorID)
	if !containsID(e.Rejected, contractorID) {
		e.Rejected = append(e.Rejected, contractorID)
	}
}

// Approve moves an accepted contractor into the approved set.
func (e *Event) Approve(contractorID string) bool {
	if !containsID(e.Accepted, contractorID) {
		return false
	}
	if !containsID(e.Approved, contractorID) {
		e.Approved = append(e.Approved, contractorID)
	}
	return true
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
