package domain

import "time"

// CorrectionStatus enumerates the dispute lifecycle.
type CorrectionStatus string

const (
	CorrectionStatusPending  CorrectionStatus = "pending"
	CorrectionStatusResolved CorrectionStatus = "resolved"
)

// CorrectionReport is a contractor-submitted dispute against an event.
type CorrectionReport struct {
	ID                  string
	EventID             string
	UserID              string
	RequestType         string
	Description         string
	RequestedCorrection string
	FilePaths           []string
	Status              CorrectionStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
