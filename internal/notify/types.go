package notify

import "time"

// EventType enumerates supported notification triggers.
type EventType string

const (
	EventEventCreated        EventType = "event_created"
	EventContractorsAssigned EventType = "contractors_assigned"
	EventCorrectionSubmitted EventType = "correction_submitted"
	EventUserInvited         EventType = "user_invited"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Recipient is one addressable member of a fan-out set.
type Recipient struct {
	UserID string
	Name   string
	Email  string
}

// ContractorsAssignedPayload payload.
type ContractorsAssignedPayload struct {
	EventID    string      `json:"event_id"`
	EventName  string      `json:"event_name"`
	LoadIn     time.Time   `json:"load_in"`
	LoadOut    time.Time   `json:"load_out"`
	Location   string      `json:"location"`
	ActionLink string      `json:"action_link"`
	Recipients []Recipient `json:"-"`
}

// CorrectionSubmittedPayload payload.
type CorrectionSubmittedPayload struct {
	CorrectionID string `json:"correction_id"`
	EventID      string `json:"event_id"`
	UserID       string `json:"user_id"`
	RequestType  string `json:"request_type"`
}

// UserInvitedPayload payload.
type UserInvitedPayload struct {
	Recipient    Recipient `json:"-"`
	TempPassword string    `json:"-"`
	LoginLink    string    `json:"login_link"`
}
