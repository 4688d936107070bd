package dto

import (
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// CreateEventRequest payload.
type CreateEventRequest struct {
	Name                string   `json:"name"`
	LoadIn              string   `json:"loadIn"`
	LoadInHours         float64  `json:"loadInHours"`
	LoadOut             string   `json:"loadOut"`
	LoadOutHours        float64  `json:"loadOutHours"`
	Location            string   `json:"location"`
	Description         string   `json:"description"`
	AssignedContractors []string `json:"assignedContractors"`
}

// UpdateEventRequest payload; nil fields are left unchanged.
type UpdateEventRequest struct {
	Name                *string             `json:"name"`
	LoadIn              *string             `json:"loadIn"`
	LoadInHours         *float64            `json:"loadInHours"`
	LoadOut             *string             `json:"loadOut"`
	LoadOutHours        *float64            `json:"loadOutHours"`
	Location            *string             `json:"location"`
	Description         *string             `json:"description"`
	AssignedContractors []string            `json:"assignedContractors"`
	Status              *domain.EventStatus `json:"status"`
}

// SendNotificationsRequest re-sends assignment mail to a subset.
type SendNotificationsRequest struct {
	EventID       string   `json:"eventId"`
	ContractorIDs []string `json:"contractorIds"`
}

// RespondRequest records a contractor accept/reject.
type RespondRequest struct {
	Response string `json:"response"`
}

// ApproveRequest moves accepted contractors to approved.
type ApproveRequest struct {
	ContractorIDs []string `json:"contractorIds"`
}

// ContractorRef is a resolved contractor reference for display.
type ContractorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EventResponse is the full event representation.
type EventResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	LoadIn       time.Time          `json:"loadIn"`
	LoadInHours  float64            `json:"loadInHours"`
	LoadOut      time.Time          `json:"loadOut"`
	LoadOutHours float64            `json:"loadOutHours"`
	Location     string             `json:"location"`
	Description  string             `json:"description"`
	Assigned     []ContractorRef    `json:"assignedContractors"`
	Accepted     []string           `json:"acceptedContractors"`
	Rejected     []string           `json:"rejectedContractors"`
	Approved     []string           `json:"approvedContractors"`
	Status       domain.EventStatus `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// NotificationSummaryResponse reports a fan-out outcome.
type NotificationSummaryResponse struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed,omitempty"`
}
