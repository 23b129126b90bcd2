package models

import "time"

// BookingStatus enumerates the booking lifecycle states.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Terminal reports whether no further transition is permitted from s.
func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Active reports whether the booking still occupies its slot.
func (s BookingStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// BookingKind enumerates the session types members can book.
type BookingKind string

const (
	KindMentorship   BookingKind = "mentorship"
	KindConsultation BookingKind = "consultation"
	KindWorkshop     BookingKind = "workshop"
)

// ValidKind reports whether k is a known booking kind.
func ValidKind(k BookingKind) bool {
	switch k {
	case KindMentorship, KindConsultation, KindWorkshop:
		return true
	}
	return false
}

// Booking represents a scheduled session between a member and a mentor.
// Bookings are never physically deleted; cancellation and completion are
// terminal states, preserving history for the analytics reader.
type Booking struct {
	ID          string        `bson:"id" json:"id"`
	MemberID    string        `bson:"member_id" json:"member_id"`
	MentorID    string        `bson:"mentor_id" json:"mentor_id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Kind        BookingKind   `bson:"kind" json:"kind"`
	StartTime   time.Time     `bson:"start_time" json:"start_time"` // UTC
	EndTime     time.Time     `bson:"end_time" json:"end_time"`     // UTC
	Status      BookingStatus `bson:"status" json:"status"`
	MeetingLink string        `bson:"meeting_link,omitempty" json:"meeting_link,omitempty"` // set only when confirmed
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
}

// Interval returns the booking's half-open time slot.
func (b Booking) Interval() TimeInterval {
	return TimeInterval{Start: b.StartTime, End: b.EndTime}
}
