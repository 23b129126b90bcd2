package scheduling

import (
	"context"
	"fmt"
	"time"

	"mentorhub/models"
	"mentorhub/services/notification"
	"mentorhub/utils"

	"go.uber.org/zap"
)

// CompleteElapsed transitions confirmed bookings whose end time has passed
// to completed, acting as the system. Invoked periodically by the background
// worker. A conflict on an individual booking means another actor got there
// first and is not an error for the sweep.
func (se *DefaultSchedulingEngine) CompleteElapsed(ctx context.Context) (int, error) {
	now := se.now()
	elapsed, err := se.Repo.ListElapsedConfirmed(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("error listing elapsed bookings: %w", err)
	}

	completed := 0
	for _, b := range elapsed {
		_, err := se.Transition(ctx, models.System(), b.ID, TransitionInput{Target: models.StatusCompleted})
		switch {
		case err == nil:
			completed++
		case IsConflict(err):
			// Lost the optimistic check; the booking already moved on.
		default:
			utils.GetLogger().Warn("completion sweep failed for booking",
				zap.String("bookingId", b.ID), zap.Error(err))
		}
	}
	return completed, nil
}

// RemindUpcoming notifies parties of confirmed bookings starting within the
// lead window. A Redis marker deduplicates reminders across sweeps; without
// a cache every sweep would re-send.
func (se *DefaultSchedulingEngine) RemindUpcoming(ctx context.Context, lead time.Duration) (int, error) {
	now := se.now()
	upcoming, err := se.Repo.ListStartingBetween(ctx, now, now.Add(lead))
	if err != nil {
		return 0, fmt.Errorf("error listing upcoming bookings: %w", err)
	}

	reminded := 0
	for _, b := range upcoming {
		if se.Cache != nil {
			key := fmt.Sprintf("reminded:%s", b.ID)
			ok, err := se.Cache.SetNX(ctx, key, 1, 2*lead).Result()
			if err != nil {
				utils.GetLogger().Warn("reminder dedup check failed", zap.String("bookingId", b.ID), zap.Error(err))
			} else if !ok {
				continue
			}
		}
		se.notifyAsync(notification.EventBookingReminder, b)
		reminded++
	}
	return reminded, nil
}
