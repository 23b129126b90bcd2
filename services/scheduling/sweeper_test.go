package scheduling

import (
	"context"
	"testing"
	"time"

	bookingRepo "mentorhub/database/repository/booking"
	"mentorhub/models"
)

// seedBooking inserts a booking directly, bypassing the engine's future-start
// validation so tests can place sessions in the past.
func seedBooking(t *testing.T, repo bookingRepo.BookingRepository, id, mentorID string, status models.BookingStatus, start, end time.Time) {
	t.Helper()
	err := repo.InsertIfFree(context.Background(), &models.Booking{
		ID:        id,
		MemberID:  testMemberID,
		MentorID:  mentorID,
		Title:     "Seeded session",
		Kind:      models.KindMentorship,
		StartTime: start,
		EndTime:   end,
		Status:    status,
		CreatedAt: start.Add(-24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("seeding booking %s failed: %v", id, err)
	}
}

func TestCompleteElapsed(t *testing.T) {
	repo := bookingRepo.NewMemoryBookingRepo()
	engine := newTestEngine(repo)

	// testNow is 08:00; the first two sessions have ended, the third has not,
	// and the fourth never got confirmed.
	seedBooking(t, repo, "ended-1", testMentorID, models.StatusConfirmed, at(5, 0), at(6, 0))
	seedBooking(t, repo, "ended-2", testMentorID, models.StatusConfirmed, at(6, 0), at(7, 0))
	seedBooking(t, repo, "running", testMentorID, models.StatusConfirmed, at(7, 30), at(8, 30))
	seedBooking(t, repo, "unconfirmed", testMentorID, models.StatusPending, at(4, 0), at(5, 0))

	completed, err := engine.CompleteElapsed(context.Background())
	if err != nil {
		t.Fatalf("CompleteElapsed failed: %v", err)
	}
	if completed != 2 {
		t.Errorf("completed %d bookings, want 2", completed)
	}

	wantStatus := map[string]models.BookingStatus{
		"ended-1":     models.StatusCompleted,
		"ended-2":     models.StatusCompleted,
		"running":     models.StatusConfirmed,
		"unconfirmed": models.StatusPending,
	}
	for id, want := range wantStatus {
		b, err := repo.FindByID(context.Background(), id)
		if err != nil {
			t.Fatalf("FindByID(%s) failed: %v", id, err)
		}
		if b.Status != want {
			t.Errorf("booking %s status = %s, want %s", id, b.Status, want)
		}
	}
}

func TestCompleteElapsedBoundary(t *testing.T) {
	repo := bookingRepo.NewMemoryBookingRepo()
	engine := newTestEngine(repo)

	// A session ending exactly now counts as elapsed.
	seedBooking(t, repo, "just-ended", testMentorID, models.StatusConfirmed, at(7, 0), testNow)

	completed, err := engine.CompleteElapsed(context.Background())
	if err != nil {
		t.Fatalf("CompleteElapsed failed: %v", err)
	}
	if completed != 1 {
		t.Errorf("completed %d bookings, want 1", completed)
	}
}

func TestCompleteElapsedIdempotent(t *testing.T) {
	repo := bookingRepo.NewMemoryBookingRepo()
	engine := newTestEngine(repo)

	seedBooking(t, repo, "ended", testMentorID, models.StatusConfirmed, at(5, 0), at(6, 0))

	if _, err := engine.CompleteElapsed(context.Background()); err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	completed, err := engine.CompleteElapsed(context.Background())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if completed != 0 {
		t.Errorf("second sweep completed %d bookings, want 0", completed)
	}
}

func TestRemindUpcoming(t *testing.T) {
	repo := bookingRepo.NewMemoryBookingRepo()
	engine := newTestEngine(repo)

	seedBooking(t, repo, "soon", testMentorID, models.StatusConfirmed, at(8, 20), at(9, 20))
	seedBooking(t, repo, "later", testMentorID, models.StatusConfirmed, at(12, 0), at(13, 0))
	seedBooking(t, repo, "soon-pending", "mentor-2", models.StatusPending, at(8, 10), at(9, 10))

	reminded, err := engine.RemindUpcoming(context.Background(), 30*time.Minute)
	if err != nil {
		t.Fatalf("RemindUpcoming failed: %v", err)
	}
	if reminded != 1 {
		t.Errorf("reminded %d bookings, want 1 (only the confirmed one starting within the lead)", reminded)
	}
}
