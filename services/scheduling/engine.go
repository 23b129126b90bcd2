package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "mentorhub/database/repository/booking"
	mentorRepo "mentorhub/database/repository/mentor"
	"mentorhub/models"
	"mentorhub/services/notification"
	"mentorhub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSessionLength is the fixed session duration unless the kind has a
// configured alternate.
const DefaultSessionLength = 60 * time.Minute

// DefaultSchedulingEngine is the production scheduling engine. It is the
// serialization point for concurrent requests against the same mentor.
type DefaultSchedulingEngine struct {
	Repo     bookingRepo.BookingRepository
	Mentors  mentorRepo.MentorRepository
	Notifier notification.NotificationService
	// Cache backs the advisory availability reads; nil disables caching.
	Cache    *redis.Client
	CacheTTL time.Duration

	// SessionLength is the default session duration; KindDurations holds
	// per-kind overrides.
	SessionLength time.Duration
	KindDurations map[models.BookingKind]time.Duration

	// MaxWindowDays caps the FreeSlots range; 0 means no cap.
	MaxWindowDays int

	// Now is the clock, injectable for tests. Defaults to time.Now.
	Now func() time.Time

	locks *mentorLocks
}

// NewDefaultSchedulingEngine wires an engine with defaults.
func NewDefaultSchedulingEngine(
	repo bookingRepo.BookingRepository,
	mentors mentorRepo.MentorRepository,
	notifier notification.NotificationService,
	cache *redis.Client,
) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Repo:          repo,
		Mentors:       mentors,
		Notifier:      notifier,
		Cache:         cache,
		CacheTTL:      30 * time.Second,
		SessionLength: DefaultSessionLength,
		MaxWindowDays: 31,
		locks:         newMentorLocks(),
	}
}

func (se *DefaultSchedulingEngine) now() time.Time {
	if se.Now != nil {
		return se.Now()
	}
	return time.Now()
}

func (se *DefaultSchedulingEngine) mentorLock(mentorID string) func() {
	if se.locks == nil {
		se.locks = newMentorLocks()
	}
	return se.locks.lock(mentorID)
}

func (se *DefaultSchedulingEngine) sessionLength(kind models.BookingKind) time.Duration {
	if d, ok := se.KindDurations[kind]; ok && d > 0 {
		return d
	}
	if se.SessionLength > 0 {
		return se.SessionLength
	}
	return DefaultSessionLength
}

// ProposeBooking validates the request, serializes on the mentor, confirms
// the window is free and persists the booking in pending state.
func (se *DefaultSchedulingEngine) ProposeBooking(ctx context.Context, actor models.Actor, in ProposalInput) (*models.Booking, error) {
	if actor.Role != models.RoleMember {
		return nil, &AuthorizationError{Actor: actor, Action: "propose a booking"}
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, NewValidationError("title must not be empty")
	}
	if !models.ValidKind(in.Kind) {
		return nil, NewValidationError("unknown booking kind %q", in.Kind)
	}
	now := se.now()
	start := in.StartTime.UTC()
	if !start.After(now) {
		return nil, NewValidationError("start time must be strictly in the future")
	}
	end := start.Add(se.sessionLength(in.Kind))
	candidate := models.TimeInterval{Start: start, End: end}

	mentor, err := se.Mentors.GetByID(ctx, in.MentorID)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "mentor", ID: in.MentorID}
		}
		return nil, fmt.Errorf("error loading mentor %s: %w", in.MentorID, err)
	}
	if !withinWorkingHours(*mentor, candidate) {
		return nil, NewValidationError("requested time falls outside the mentor's working hours")
	}

	booking := &models.Booking{
		ID:          uuid.New().String(),
		MemberID:    actor.ID,
		MentorID:    in.MentorID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Kind:        in.Kind,
		StartTime:   start,
		EndTime:     end,
		Status:      models.StatusPending,
		CreatedAt:   now,
	}

	// Critical region: held only across the bounded check+insert pair,
	// never across notification or any other external call.
	unlock := se.mentorLock(in.MentorID)
	existing, err := se.Repo.ListActiveOverlapping(ctx, in.MentorID, candidate)
	if err != nil {
		unlock()
		return nil, fmt.Errorf("error checking conflicts for mentor %s: %w", in.MentorID, err)
	}
	if len(existing) > 0 {
		unlock()
		return nil, &ConflictError{
			Message:   "the requested slot is already taken",
			BookingID: existing[0].ID,
			Conflict:  existing[0].Interval(),
		}
	}
	err = se.Repo.InsertIfFree(ctx, booking)
	unlock()
	if err != nil {
		var overlap *bookingRepo.OverlapError
		if errors.As(err, &overlap) {
			// Lost a storage-level race (multi-replica deployment); surface
			// it as the same caller-visible conflict.
			return nil, &ConflictError{
				Message:   "the requested slot is already taken",
				BookingID: overlap.ExistingID,
				Conflict:  overlap.Interval,
			}
		}
		return nil, fmt.Errorf("error persisting booking: %w", err)
	}

	se.invalidateAvailability(booking.MentorID, booking.StartTime, booking.EndTime)
	se.notifyAsync(notification.EventBookingCreated, *booking)
	return booking, nil
}

// Transition drives a booking along a legal edge after checking actor
// authorization, committing with an optimistic expected-status check.
func (se *DefaultSchedulingEngine) Transition(ctx context.Context, actor models.Actor, bookingID string, in TransitionInput) (*models.Booking, error) {
	if !models.ValidStatus(in.Target) || in.Target == models.StatusPending {
		return nil, NewValidationError("invalid target status %q", in.Target)
	}

	booking, err := se.Repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: bookingID}
		}
		return nil, fmt.Errorf("error loading booking %s: %w", bookingID, err)
	}

	if !canTransition(booking.Status, in.Target) {
		return nil, NewValidationError("cannot transition booking %s from %s to %s", bookingID, booking.Status, in.Target)
	}
	if !authorizedFor(actor, booking, in.Target) {
		return nil, &AuthorizationError{Actor: actor, Action: fmt.Sprintf("mark booking %s %s", bookingID, in.Target)}
	}
	// The automatic path may only complete a session that has ended.
	if in.Target == models.StatusCompleted && actor.Role == models.RoleSystem && se.now().Before(booking.EndTime) {
		return nil, NewValidationError("booking %s has not ended yet", bookingID)
	}

	link := ""
	if in.Target == models.StatusConfirmed {
		link = strings.TrimSpace(in.MeetingLink)
	} else if strings.TrimSpace(in.MeetingLink) != "" {
		return nil, NewValidationError("meeting link may only be set when confirming")
	}

	updated, err := se.Repo.UpdateStatus(ctx, bookingID, booking.Status, in.Target, link)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			// Another actor transitioned first; surfaced, never silently retried.
			return nil, &ConflictError{
				Message:   fmt.Sprintf("booking %s was transitioned concurrently", bookingID),
				BookingID: bookingID,
			}
		}
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: bookingID}
		}
		return nil, fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}

	se.invalidateAvailability(updated.MentorID, updated.StartTime, updated.EndTime)
	se.notifyAsync(eventForStatus(in.Target), *updated)
	return updated, nil
}

// GetBooking retrieves a booking by id.
func (se *DefaultSchedulingEngine) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := se.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: id}
		}
		return nil, fmt.Errorf("error loading booking %s: %w", id, err)
	}
	return booking, nil
}

// ListMentorBookings returns a mentor's bookings ordered by start time.
func (se *DefaultSchedulingEngine) ListMentorBookings(ctx context.Context, mentorID string, filter bookingRepo.ListFilter) ([]models.Booking, error) {
	return se.Repo.ListByMentor(ctx, mentorID, filter)
}

// CountByStatus returns aggregate booking counts for the dashboard reader.
func (se *DefaultSchedulingEngine) CountByStatus(ctx context.Context) (map[models.BookingStatus]int64, error) {
	return se.Repo.CountByStatus(ctx)
}

// withinWorkingHours reports whether the candidate interval lies entirely
// inside one of the mentor's working windows for that day.
func withinWorkingHours(mentor models.Mentor, candidate models.TimeInterval) bool {
	for _, window := range mentor.WindowsOn(candidate.Start) {
		if Contains(window, candidate) {
			return true
		}
	}
	return false
}

func eventForStatus(status models.BookingStatus) notification.EventKind {
	switch status {
	case models.StatusConfirmed:
		return notification.EventBookingConfirmed
	case models.StatusCancelled:
		return notification.EventBookingCancelled
	case models.StatusCompleted:
		return notification.EventBookingCompleted
	}
	return notification.EventKind("booking_" + string(status))
}

// notifyAsync fires the event without blocking or failing the primary
// operation. Delivery errors are logged and swallowed, not retried.
func (se *DefaultSchedulingEngine) notifyAsync(event notification.EventKind, booking models.Booking) {
	if se.Notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := se.Notifier.Notify(ctx, event, booking); err != nil {
			utils.GetLogger().Warn("notification delivery failed",
				zap.String("event", string(event)),
				zap.String("bookingId", booking.ID),
				zap.Error(err),
			)
		}
	}()
}
