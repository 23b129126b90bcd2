package scheduling

import (
	"context"
	"testing"
	"time"

	bookingRepo "mentorhub/database/repository/booking"
	mentorRepo "mentorhub/database/repository/mentor"
	"mentorhub/models"
)

func singleDaySlots(t *testing.T, engine *DefaultSchedulingEngine) []models.TimeInterval {
	t.Helper()
	windows, err := engine.FreeSlots(context.Background(), testMentorID, at(0, 0), at(23, 59))
	if err != nil {
		t.Fatalf("FreeSlots failed: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("got %d availability windows, want 1: %v", len(windows), windows)
	}
	if windows[0].MentorID != testMentorID {
		t.Errorf("window mentor id = %s, want %s", windows[0].MentorID, testMentorID)
	}
	if windows[0].Date != "2026-09-01" {
		t.Errorf("window date = %s, want 2026-09-01", windows[0].Date)
	}
	return windows[0].FreeSlots
}

func TestFreeSlotsWholeDayWhenUnbooked(t *testing.T) {
	engine := newTestEngine(bookingRepo.NewMemoryBookingRepo())

	slots := singleDaySlots(t, engine)
	if len(slots) != 1 {
		t.Fatalf("got %d free slots, want 1: %v", len(slots), slots)
	}
	if !slots[0].Start.Equal(at(9, 0)) || !slots[0].End.Equal(at(17, 0)) {
		t.Errorf("free slot = [%v, %v), want the full 09:00-17:00 window", slots[0].Start, slots[0].End)
	}
}

func TestFreeSlotsSplitAroundBooking(t *testing.T) {
	engine := newTestEngine(bookingRepo.NewMemoryBookingRepo())

	booking := mustPropose(t, engine, member(testMemberID), proposal(10, 0))
	if _, err := engine.Transition(context.Background(), mentor(testMentorID), booking.ID,
		TransitionInput{Target: models.StatusConfirmed}); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	slots := singleDaySlots(t, engine)
	want := []models.TimeInterval{
		{Start: at(9, 0), End: at(10, 0)},
		{Start: at(11, 0), End: at(17, 0)},
	}
	if len(slots) != len(want) {
		t.Fatalf("got %d free slots, want %d: %v", len(slots), len(want), slots)
	}
	for i := range want {
		if !slots[i].Start.Equal(want[i].Start) || !slots[i].End.Equal(want[i].End) {
			t.Errorf("slot %d = [%v, %v), want [%v, %v)",
				i, slots[i].Start, slots[i].End, want[i].Start, want[i].End)
		}
	}
}

func TestFreeSlotsPendingAlsoBlocks(t *testing.T) {
	engine := newTestEngine(bookingRepo.NewMemoryBookingRepo())

	// A pending booking holds its slot just like a confirmed one.
	mustPropose(t, engine, member(testMemberID), proposal(10, 0))

	slots := singleDaySlots(t, engine)
	if len(slots) != 2 {
		t.Fatalf("got %d free slots, want 2: %v", len(slots), slots)
	}
}

func TestFreeSlotsIgnoreCancelled(t *testing.T) {
	engine := newTestEngine(bookingRepo.NewMemoryBookingRepo())

	booking := mustPropose(t, engine, member(testMemberID), proposal(10, 0))
	if _, err := engine.Transition(context.Background(), member(testMemberID), booking.ID,
		TransitionInput{Target: models.StatusCancelled}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	slots := singleDaySlots(t, engine)
	if len(slots) != 1 {
		t.Fatalf("cancelled booking still blocks availability: %v", slots)
	}
	if !slots[0].Start.Equal(at(9, 0)) || !slots[0].End.Equal(at(17, 0)) {
		t.Errorf("free slot = [%v, %v), want the full 09:00-17:00 window", slots[0].Start, slots[0].End)
	}
}

func TestFreeSlotsNeverOverlapActiveBookings(t *testing.T) {
	engine := newTestEngine(bookingRepo.NewMemoryBookingRepo())

	for _, startHour := range []int{9, 11, 14, 16} {
		mustPropose(t, engine, member(testMemberID), proposal(startHour, 0))
	}
	active, err := engine.ListMentorBookings(context.Background(), testMentorID, bookingRepo.ListFilter{})
	if err != nil {
		t.Fatalf("ListMentorBookings failed: %v", err)
	}

	for _, slot := range singleDaySlots(t, engine) {
		for _, booking := range active {
			if Overlaps(slot, booking.Interval()) {
				t.Errorf("free slot [%v, %v) overlaps booking %s [%v, %v)",
					slot.Start, slot.End, booking.ID, booking.StartTime, booking.EndTime)
			}
		}
	}
}

func TestFreeSlotsSkipsDaysOff(t *testing.T) {
	repo := bookingRepo.NewMemoryBookingRepo()
	mentors := mentorRepo.NewMemoryMentorRepo(models.Mentor{
		ID:       testMentorID,
		FullName: "Ada Lovelace",
		// Tuesdays only; 2026-09-02 through 09-04 are Wed-Fri.
		WorkingHours: []models.WorkingWindow{
			{Weekday: time.Tuesday, StartMinute: 9 * 60, EndMinute: 17 * 60},
		},
	})
	engine := NewDefaultSchedulingEngine(repo, mentors, nil, nil)
	engine.Now = func() time.Time { return testNow }

	windows, err := engine.FreeSlots(context.Background(), testMentorID, at(0, 0), at(0, 0).AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("FreeSlots failed: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("got %d availability windows over the week, want 1 (Tuesday only): %v", len(windows), windows)
	}
	if windows[0].Date != "2026-09-01" {
		t.Errorf("window date = %s, want 2026-09-01", windows[0].Date)
	}
}

func TestFreeSlotsRangeValidation(t *testing.T) {
	engine := newTestEngine(bookingRepo.NewMemoryBookingRepo())

	if _, err := engine.FreeSlots(context.Background(), testMentorID, at(12, 0), at(9, 0)); !IsValidation(err) {
		t.Errorf("inverted range: got %v, want ValidationError", err)
	}

	engine.MaxWindowDays = 7
	if _, err := engine.FreeSlots(context.Background(), testMentorID, at(0, 0), at(0, 0).AddDate(0, 0, 30)); !IsValidation(err) {
		t.Errorf("oversized range: got %v, want ValidationError", err)
	}

	if _, err := engine.FreeSlots(context.Background(), "nobody", at(0, 0), at(23, 59)); !IsNotFound(err) {
		t.Errorf("unknown mentor: got %v, want NotFoundError", err)
	}
}
