package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mentorhub/models"
	"mentorhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// FreeSlots derives a mentor's free windows per day from the working-hours
// policy minus existing pending/confirmed bookings. Read-only and advisory:
// it tolerates staleness because overlap is re-checked at proposal time.
func (se *DefaultSchedulingEngine) FreeSlots(ctx context.Context, mentorID string, from, to time.Time) ([]models.AvailabilityWindow, error) {
	from, to = from.UTC(), to.UTC()
	if to.Before(from) {
		return nil, NewValidationError("range end must not precede range start")
	}
	if se.MaxWindowDays > 0 && to.Sub(from) > time.Duration(se.MaxWindowDays)*24*time.Hour {
		return nil, NewValidationError("availability range may span at most %d days", se.MaxWindowDays)
	}

	mentor, err := se.Mentors.GetByID(ctx, mentorID)
	if err != nil {
		return nil, &NotFoundError{Resource: "mentor", ID: mentorID}
	}

	var out []models.AvailabilityWindow
	for day := truncateToDay(from); !day.After(to); day = day.AddDate(0, 0, 1) {
		windows := mentor.WindowsOn(day)
		if len(windows) == 0 {
			continue
		}
		window, err := se.dayAvailability(ctx, *mentor, day, windows)
		if err != nil {
			return nil, err
		}
		out = append(out, window)
	}
	return out, nil
}

// dayAvailability computes one day's free slots, consulting the cache first.
func (se *DefaultSchedulingEngine) dayAvailability(ctx context.Context, mentor models.Mentor, day time.Time, windows []models.TimeInterval) (models.AvailabilityWindow, error) {
	dateStr := day.Format(dateLayout)
	key := availabilityCacheKey(mentor.ID, dateStr)

	if se.Cache != nil {
		cached, err := se.Cache.Get(ctx, key).Result()
		if err == nil {
			var slots []models.TimeInterval
			if jsonErr := json.Unmarshal([]byte(cached), &slots); jsonErr == nil {
				return models.AvailabilityWindow{MentorID: mentor.ID, Date: dateStr, FreeSlots: slots}, nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Warn("availability cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	dayInterval := models.TimeInterval{Start: truncateToDay(day), End: truncateToDay(day).AddDate(0, 0, 1)}
	bookings, err := se.Repo.ListActiveOverlapping(ctx, mentor.ID, dayInterval)
	if err != nil {
		return models.AvailabilityWindow{}, fmt.Errorf("error loading bookings for mentor %s on %s: %w", mentor.ID, dateStr, err)
	}
	busy := make([]models.TimeInterval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, b.Interval())
	}

	free := make([]models.TimeInterval, 0)
	for _, window := range windows {
		free = append(free, Subtract(window, busy)...)
	}

	if se.Cache != nil {
		if payload, jsonErr := json.Marshal(free); jsonErr == nil {
			ttl := se.CacheTTL
			if ttl <= 0 {
				ttl = 30 * time.Second
			}
			if err := se.Cache.Set(ctx, key, payload, ttl).Err(); err != nil {
				utils.GetLogger().Warn("availability cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return models.AvailabilityWindow{MentorID: mentor.ID, Date: dateStr, FreeSlots: free}, nil
}

// invalidateAvailability drops cached days touched by a booking write.
func (se *DefaultSchedulingEngine) invalidateAvailability(mentorID string, start, end time.Time) {
	if se.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for day := truncateToDay(start.UTC()); day.Before(end.UTC()); day = day.AddDate(0, 0, 1) {
		key := availabilityCacheKey(mentorID, day.Format(dateLayout))
		if err := se.Cache.Del(ctx, key).Err(); err != nil {
			utils.GetLogger().Warn("availability cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func availabilityCacheKey(mentorID, date string) string {
	return fmt.Sprintf("availability:%s:%s", mentorID, date)
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
