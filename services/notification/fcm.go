package notification

import (
	"context"
	"fmt"

	mentorRepo "mentorhub/database/repository/mentor"
	"mentorhub/models"
	"mentorhub/utils"

	"firebase.google.com/go/v4/messaging"
)

// MemberTokenSource resolves a member's push token. Member accounts live
// outside this service, so the lookup is abstracted.
type MemberTokenSource interface {
	FCMToken(ctx context.Context, memberID string) (string, error)
}

// DefaultNotificationService sends FCM pushes for booking events.
type DefaultNotificationService struct {
	Mentors mentorRepo.MentorRepository
	Members MemberTokenSource
}

// Notify delivers the event as a push to the affected parties.
func (s *DefaultNotificationService) Notify(ctx context.Context, event EventKind, booking models.Booking) error {
	title, body := eventCopy(event, booking)
	data := map[string]string{
		"type":      string(event),
		"bookingId": booking.ID,
	}

	var firstErr error
	if token := s.mentorToken(ctx, booking.MentorID); token != "" {
		if err := sendPush(ctx, token, title, body, data); err != nil {
			firstErr = fmt.Errorf("notify mentor %s: %w", booking.MentorID, err)
		}
	}
	if s.Members != nil {
		token, err := s.Members.FCMToken(ctx, booking.MemberID)
		if err == nil && token != "" {
			if err := sendPush(ctx, token, title, body, data); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("notify member %s: %w", booking.MemberID, err)
			}
		}
	}
	return firstErr
}

func (s *DefaultNotificationService) mentorToken(ctx context.Context, mentorID string) string {
	if s.Mentors == nil {
		return ""
	}
	mentor, err := s.Mentors.GetByID(ctx, mentorID)
	if err != nil {
		return ""
	}
	return mentor.FCMToken
}

func sendPush(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	_, err := utils.FCMClient.Send(ctx, msg)
	return err
}

func eventCopy(event EventKind, booking models.Booking) (string, string) {
	when := booking.StartTime.Format("Jan 2 at 15:04 MST")
	length := int(booking.Interval().Duration().Minutes())
	switch event {
	case EventBookingCreated:
		return "New booking request", fmt.Sprintf("%q requested for %s (%d min)", booking.Title, when, length)
	case EventBookingConfirmed:
		return "Booking confirmed", fmt.Sprintf("%q is confirmed for %s (%d min)", booking.Title, when, length)
	case EventBookingCancelled:
		return "Booking cancelled", fmt.Sprintf("%q on %s was cancelled", booking.Title, when)
	case EventBookingCompleted:
		return "Session completed", fmt.Sprintf("%q has been marked completed", booking.Title)
	case EventBookingReminder:
		return "Upcoming session", fmt.Sprintf("%q starts %s", booking.Title, when)
	}
	return "Booking update", booking.Title
}
