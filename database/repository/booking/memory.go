package bookingRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"mentorhub/models"
)

// MemoryBookingRepo is an in-memory BookingRepository used by tests and
// local development. It enforces the same contract as the Mongo
// implementation, including the atomic no-overlap insert.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

// NewMemoryBookingRepo constructs an empty in-memory repository.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]models.Booking)}
}

func overlapsHalfOpen(a, b models.TimeInterval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// InsertIfFree persists the booking unless its interval overlaps an active
// booking for the same mentor. The single lock makes the check-then-insert
// pair atomic under concurrent callers.
func (r *MemoryBookingRepo) InsertIfFree(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.MentorID != booking.MentorID || !b.Status.Active() {
			continue
		}
		if overlapsHalfOpen(b.Interval(), booking.Interval()) {
			return &OverlapError{ExistingID: b.ID, Interval: b.Interval()}
		}
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *MemoryBookingRepo) FindByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *MemoryBookingRepo) ListByMentor(_ context.Context, mentorID string, filter ListFilter) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.MentorID != mentorID {
			continue
		}
		if len(filter.Statuses) > 0 && !statusIn(b.Status, filter.Statuses) {
			continue
		}
		if filter.From != nil && b.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartTime.Before(*filter.To) {
			continue
		}
		out = append(out, b)
	}
	sortByStart(out)
	return out, nil
}

func (r *MemoryBookingRepo) ListActiveOverlapping(_ context.Context, mentorID string, iv models.TimeInterval) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.MentorID != mentorID || !b.Status.Active() {
			continue
		}
		if overlapsHalfOpen(b.Interval(), iv) {
			out = append(out, b)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *MemoryBookingRepo) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus, meetingLink string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if b.Status != from {
		return nil, ErrStaleStatus
	}
	b.Status = to
	if meetingLink != "" {
		b.MeetingLink = meetingLink
	}
	r.bookings[id] = b
	return &b, nil
}

func (r *MemoryBookingRepo) ListElapsedConfirmed(_ context.Context, now time.Time) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.StatusConfirmed && !b.EndTime.After(now) {
			out = append(out, b)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *MemoryBookingRepo) ListStartingBetween(_ context.Context, from, to time.Time) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status != models.StatusConfirmed {
			continue
		}
		if !b.StartTime.Before(from) && b.StartTime.Before(to) {
			out = append(out, b)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *MemoryBookingRepo) CountByStatus(_ context.Context) (map[models.BookingStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[models.BookingStatus]int64)
	for _, b := range r.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

func statusIn(s models.BookingStatus, set []models.BookingStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

func sortByStart(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})
}
