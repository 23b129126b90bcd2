package notification

import (
	"context"

	"mentorhub/models"
)

// EventKind identifies a booking lifecycle event.
type EventKind string

const (
	EventBookingCreated   EventKind = "booking_created"
	EventBookingConfirmed EventKind = "booking_confirmed"
	EventBookingCancelled EventKind = "booking_cancelled"
	EventBookingCompleted EventKind = "booking_completed"
	EventBookingReminder  EventKind = "booking_reminder"
)

// NotificationService delivers booking lifecycle events to the parties
// involved. Delivery is best-effort: the scheduling engine logs and swallows
// any error, so implementations must never be load-bearing.
type NotificationService interface {
	Notify(ctx context.Context, event EventKind, booking models.Booking) error
}
