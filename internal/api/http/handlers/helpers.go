package handlers

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// requireUUID rejects malformed record ids before they reach the store. An
// unmatched shape reads the same as an unmatched record: not found.
func requireUUID(resource, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return nil
}

func parseTimestamp(val string) (time.Time, error) {
	return time.Parse(time.RFC3339, val)
}

func parseDate(val string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", val)
}
