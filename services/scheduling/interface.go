package scheduling

import (
	"context"
	"time"

	bookingRepo "mentorhub/database/repository/booking"
	"mentorhub/models"
)

// ProposalInput carries a member's booking request. EndTime is computed by
// the engine from the kind's session length.
type ProposalInput struct {
	MentorID    string             `json:"mentor_id"`
	Kind        models.BookingKind `json:"kind"`
	StartTime   time.Time          `json:"start_time"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
}

// TransitionInput carries a status transition request. MeetingLink may only
// be supplied when confirming.
type TransitionInput struct {
	Target      models.BookingStatus `json:"target"`
	MeetingLink string               `json:"meeting_link"`
}

// SchedulingEngine is the entire public surface of booking state: proposals,
// transitions, availability, and the read-only dashboard queries.
type SchedulingEngine interface {
	// ProposeBooking validates, serializes per mentor, checks for conflicts
	// and persists a new pending booking.
	ProposeBooking(ctx context.Context, actor models.Actor, in ProposalInput) (*models.Booking, error)
	// Transition drives a booking along a legal state-machine edge on behalf
	// of an authorized actor.
	Transition(ctx context.Context, actor models.Actor, bookingID string, in TransitionInput) (*models.Booking, error)
	// GetBooking retrieves a booking by id.
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	// ListMentorBookings returns a mentor's bookings ordered by start time.
	ListMentorBookings(ctx context.Context, mentorID string, filter bookingRepo.ListFilter) ([]models.Booking, error)
	// FreeSlots computes a mentor's free windows per day over [from, to].
	// Advisory only: a race with a concurrent booking is resolved by the
	// conflict check at proposal time.
	FreeSlots(ctx context.Context, mentorID string, from, to time.Time) ([]models.AvailabilityWindow, error)
	// CountByStatus returns aggregate booking counts for the dashboard.
	CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error)
	// CompleteElapsed transitions confirmed bookings whose end time has
	// passed to completed. Returns the number completed.
	CompleteElapsed(ctx context.Context) (int, error)
	// RemindUpcoming sends reminder notifications for confirmed bookings
	// starting within the lead window. Returns the number reminded.
	RemindUpcoming(ctx context.Context, lead time.Duration) (int, error)
}
