package domain

import "time"

// IncidentReport is a public-facing report with no entity references.
// Read-only after submission.
type IncidentReport struct {
	ID          string
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	RequestType string
	Description string
	CreatedAt   time.Time
}
