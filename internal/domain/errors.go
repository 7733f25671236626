package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrHallNotFound      = errors.New("hall not found")
	ErrScreeningNotFound = errors.New("screening not found")
)

// ScheduleConflictError reports that a proposed screening interval overlaps an
// existing screening in the same hall. It carries the occupying screening's id
// and window so callers can tell the user what is in the way.
type ScheduleConflictError struct {
	ScreeningID uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf(
		"hall is already occupied by screening %s from %s to %s",
		e.ScreeningID,
		e.StartTime.Format(time.RFC3339),
		e.EndTime.Format(time.RFC3339),
	)
}

// ValidationError collects precondition violations detected at the service
// boundary before any write is attempted.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return e.Violations[0]
	}

	return fmt.Sprintf("%d validation violations", len(e.Violations))
}
