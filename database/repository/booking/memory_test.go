package bookingRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"mentorhub/models"
)

func testBooking(id, mentorID string, status models.BookingStatus, start time.Time) *models.Booking {
	return &models.Booking{
		ID:        id,
		MemberID:  "member-1",
		MentorID:  mentorID,
		Title:     "Session",
		Kind:      models.KindMentorship,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
		CreatedAt: start.Add(-24 * time.Hour),
	}
}

func slot(hour int) time.Time {
	return time.Date(2026, 9, 1, hour, 0, 0, 0, time.UTC)
}

func TestInsertIfFree(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo()

	if err := repo.InsertIfFree(ctx, testBooking("a", "mentor-1", models.StatusConfirmed, slot(10))); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	// Overlapping slot for the same mentor is rejected with the conflicting
	// booking's identity.
	err := repo.InsertIfFree(ctx, testBooking("b", "mentor-1", models.StatusPending, slot(10)))
	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("expected OverlapError, got %v", err)
	}
	if overlap.ExistingID != "a" {
		t.Errorf("overlap existing id = %s, want a", overlap.ExistingID)
	}
	if !overlap.Interval.Start.Equal(slot(10)) {
		t.Errorf("overlap interval start = %v, want %v", overlap.Interval.Start, slot(10))
	}

	// The rejected booking was not stored.
	if _, err := repo.FindByID(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("rejected booking was stored: %v", err)
	}

	// Same slot, different mentor is fine.
	if err := repo.InsertIfFree(ctx, testBooking("c", "mentor-2", models.StatusPending, slot(10))); err != nil {
		t.Errorf("insert for another mentor failed: %v", err)
	}

	// Back-to-back slot for the same mentor is fine.
	if err := repo.InsertIfFree(ctx, testBooking("d", "mentor-1", models.StatusPending, slot(11))); err != nil {
		t.Errorf("back-to-back insert failed: %v", err)
	}
}

func TestInsertIfFreeIgnoresTerminal(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo()

	if err := repo.InsertIfFree(ctx, testBooking("done", "mentor-1", models.StatusCompleted, slot(10))); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.InsertIfFree(ctx, testBooking("gone", "mentor-1", models.StatusCancelled, slot(12))); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	// Completed and cancelled bookings do not block their slots.
	if err := repo.InsertIfFree(ctx, testBooking("new-1", "mentor-1", models.StatusPending, slot(10))); err != nil {
		t.Errorf("slot held by a completed booking: %v", err)
	}
	if err := repo.InsertIfFree(ctx, testBooking("new-2", "mentor-1", models.StatusPending, slot(12))); err != nil {
		t.Errorf("slot held by a cancelled booking: %v", err)
	}
}

func TestUpdateStatusOptimistic(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo()

	if err := repo.InsertIfFree(ctx, testBooking("a", "mentor-1", models.StatusPending, slot(10))); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	updated, err := repo.UpdateStatus(ctx, "a", models.StatusPending, models.StatusConfirmed, "https://meet.example.com/abc")
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != models.StatusConfirmed {
		t.Errorf("status = %s, want %s", updated.Status, models.StatusConfirmed)
	}
	if updated.MeetingLink != "https://meet.example.com/abc" {
		t.Errorf("meeting link = %q, want the supplied link", updated.MeetingLink)
	}

	// Expected status no longer matches.
	if _, err := repo.UpdateStatus(ctx, "a", models.StatusPending, models.StatusCancelled, ""); !errors.Is(err, ErrStaleStatus) {
		t.Errorf("stale update: got %v, want ErrStaleStatus", err)
	}
	current, err := repo.FindByID(ctx, "a")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if current.Status != models.StatusConfirmed {
		t.Errorf("stale update changed the booking: status = %s", current.Status)
	}

	if _, err := repo.UpdateStatus(ctx, "missing", models.StatusPending, models.StatusCancelled, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestListByMentor(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo()

	// Inserted out of order on purpose.
	for _, b := range []*models.Booking{
		testBooking("late", "mentor-1", models.StatusConfirmed, slot(15)),
		testBooking("early", "mentor-1", models.StatusPending, slot(9)),
		testBooking("mid", "mentor-1", models.StatusCancelled, slot(12)),
		testBooking("other", "mentor-2", models.StatusConfirmed, slot(9)),
	} {
		if err := repo.InsertIfFree(ctx, b); err != nil {
			t.Fatalf("insert %s failed: %v", b.ID, err)
		}
	}

	all, err := repo.ListByMentor(ctx, "mentor-1", ListFilter{})
	if err != nil {
		t.Fatalf("ListByMentor failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d bookings, want 3", len(all))
	}
	for i, want := range []string{"early", "mid", "late"} {
		if all[i].ID != want {
			t.Errorf("position %d = %s, want %s (start-time order)", i, all[i].ID, want)
		}
	}

	confirmed, err := repo.ListByMentor(ctx, "mentor-1", ListFilter{
		Statuses: []models.BookingStatus{models.StatusConfirmed},
	})
	if err != nil {
		t.Fatalf("ListByMentor with status filter failed: %v", err)
	}
	if len(confirmed) != 1 || confirmed[0].ID != "late" {
		t.Errorf("status filter returned %v, want [late]", confirmed)
	}

	from, to := slot(10), slot(14)
	ranged, err := repo.ListByMentor(ctx, "mentor-1", ListFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("ListByMentor with range filter failed: %v", err)
	}
	if len(ranged) != 1 || ranged[0].ID != "mid" {
		t.Errorf("range filter returned %v, want [mid]", ranged)
	}
}

func TestListActiveOverlapping(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo()

	for _, b := range []*models.Booking{
		testBooking("pending", "mentor-1", models.StatusPending, slot(10)),
		testBooking("cancelled", "mentor-1", models.StatusCancelled, slot(11)),
		testBooking("confirmed", "mentor-1", models.StatusConfirmed, slot(12)),
	} {
		if err := repo.InsertIfFree(ctx, b); err != nil {
			t.Fatalf("insert %s failed: %v", b.ID, err)
		}
	}

	out, err := repo.ListActiveOverlapping(ctx, "mentor-1", models.TimeInterval{Start: slot(9), End: slot(14)})
	if err != nil {
		t.Fatalf("ListActiveOverlapping failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d overlapping bookings, want 2 (cancelled excluded): %v", len(out), out)
	}
	if out[0].ID != "pending" || out[1].ID != "confirmed" {
		t.Errorf("got %s, %s; want pending, confirmed in start order", out[0].ID, out[1].ID)
	}

	// Touching the end of a booking is not an overlap.
	none, err := repo.ListActiveOverlapping(ctx, "mentor-1", models.TimeInterval{Start: slot(13), End: slot(14)})
	if err != nil {
		t.Fatalf("ListActiveOverlapping failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("touching interval reported overlaps: %v", none)
	}
}

func TestCountByStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo()

	for i, status := range []models.BookingStatus{
		models.StatusPending, models.StatusPending,
		models.StatusConfirmed,
		models.StatusCompleted, models.StatusCompleted, models.StatusCompleted,
	} {
		b := testBooking("b"+string(rune('0'+i)), "mentor-1", status, slot(8+2*i))
		if err := repo.InsertIfFree(ctx, b); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	want := map[models.BookingStatus]int64{
		models.StatusPending:   2,
		models.StatusConfirmed: 1,
		models.StatusCompleted: 3,
	}
	for status, n := range want {
		if counts[status] != n {
			t.Errorf("count[%s] = %d, want %d", status, counts[status], n)
		}
	}
	if counts[models.StatusCancelled] != 0 {
		t.Errorf("count[cancelled] = %d, want 0", counts[models.StatusCancelled])
	}
}
