package dto

import (
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

// SubmitCorrectionRequest payload.
type SubmitCorrectionRequest struct {
	EventID             string   `json:"eventID"`
	UserID              string   `json:"userID"`
	RequestType         string   `json:"requestType"`
	Description         string   `json:"description"`
	RequestedCorrection string   `json:"requestedCorrection"`
	Files               []string `json:"files"`
}

// UpdateCorrectionRequest payload; nil fields are unchanged.
type UpdateCorrectionRequest struct {
	RequestType         *string                  `json:"requestType"`
	Description         *string                  `json:"description"`
	RequestedCorrection *string                  `json:"requestedCorrection"`
	Files               []string                 `json:"files"`
	Status              *domain.CorrectionStatus `json:"status"`
}

// CorrectionResponse is a list row joined with display names.
type CorrectionResponse struct {
	ID                  string                  `json:"id"`
	EventID             string                  `json:"eventID"`
	EventName           string                  `json:"eventName,omitempty"`
	UserID              string                  `json:"userID"`
	UserName            string                  `json:"userName,omitempty"`
	RequestType         string                  `json:"requestType"`
	Description         string                  `json:"description"`
	RequestedCorrection string                  `json:"requestedCorrection"`
	Files               []string                `json:"files"`
	Status              domain.CorrectionStatus `json:"status"`
	CreatedAt           time.Time               `json:"createdAt"`
	UpdatedAt           time.Time               `json:"updatedAt"`
}

// SubmitIncidentRequest payload for the public incident form.
type SubmitIncidentRequest struct {
	Name        string `json:"name"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	RequestType string `json:"requestType"`
	Description string `json:"description"`
}

// IncidentResponse representation.
type IncidentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	RequestType string    `json:"requestType"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
