package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentorhub/models"
)

// ErrNotFound is returned when a referenced booking does not exist.
var ErrNotFound = errors.New("booking not found")

// ErrStaleStatus is returned by UpdateStatus when the record is no longer in
// the expected status; another actor transitioned it first.
var ErrStaleStatus = errors.New("booking status changed concurrently")

// OverlapError is returned by InsertIfFree when the candidate slot collides
// with an existing pending or confirmed booking for the same mentor.
type OverlapError struct {
	ExistingID string
	Interval   models.TimeInterval
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("slot overlaps booking %s [%s, %s)",
		e.ExistingID, e.Interval.Start.Format(time.RFC3339), e.Interval.End.Format(time.RFC3339))
}

// ListFilter narrows ListByMentor results. Nil/empty fields are ignored.
type ListFilter struct {
	Statuses []models.BookingStatus
	From     *time.Time
	To       *time.Time
}

// BookingRepository defines the data access methods used by the scheduling
// engine and the dashboard readers.
type BookingRepository interface {
	// InsertIfFree persists the booking unless its interval overlaps an
	// active booking for the same mentor. It either persists the row or
	// fails with *OverlapError without partial effects.
	InsertIfFree(ctx context.Context, booking *models.Booking) error
	// FindByID retrieves a booking by its unique id.
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByMentor returns a mentor's bookings ordered by start time ascending.
	ListByMentor(ctx context.Context, mentorID string, filter ListFilter) ([]models.Booking, error)
	// ListActiveOverlapping returns pending/confirmed bookings for the mentor
	// whose intervals overlap iv, ordered by start time ascending.
	ListActiveOverlapping(ctx context.Context, mentorID string, iv models.TimeInterval) ([]models.Booking, error)
	// UpdateStatus transitions a booking conditioned on it still being in
	// the from status. meetingLink, when non-empty, is stored alongside the
	// new status. Returns ErrStaleStatus if the condition no longer holds.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, meetingLink string) (*models.Booking, error)
	// ListElapsedConfirmed returns confirmed bookings whose end time is at or
	// before now, candidates for automatic completion.
	ListElapsedConfirmed(ctx context.Context, now time.Time) ([]models.Booking, error)
	// ListStartingBetween returns confirmed bookings starting within
	// [from, to), used for session reminders.
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	// CountByStatus returns aggregate booking counts keyed by status.
	CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error)
}
