package notification

import (
	"context"

	"mentorhub/models"

	"go.uber.org/zap"
)

// LogNotificationService records events to the log instead of pushing.
// Used in development and when no FCM credentials are configured.
type LogNotificationService struct {
	Logger *zap.Logger
}

func (s *LogNotificationService) Notify(_ context.Context, event EventKind, booking models.Booking) error {
	s.Logger.Info("booking event",
		zap.String("event", string(event)),
		zap.String("bookingId", booking.ID),
		zap.String("mentorId", booking.MentorID),
		zap.String("memberId", booking.MemberID),
		zap.String("status", string(booking.Status)),
	)
	return nil
}
