package models

import "time"

// WorkingWindow is one recurring availability window in a mentor's
// working-hours policy, expressed as minutes from midnight UTC.
type WorkingWindow struct {
	Weekday     time.Weekday `bson:"weekday" json:"weekday"`
	StartMinute int          `bson:"start_minute" json:"start_minute"`
	EndMinute   int          `bson:"end_minute" json:"end_minute"`
}

// Mentor owns a working-hours policy from which free slots are derived.
// The policy is read-only input during a scheduling operation.
type Mentor struct {
	ID           string          `bson:"id" json:"id"`
	FullName     string          `bson:"full_name" json:"full_name"`
	BusinessName string          `bson:"business_name,omitempty" json:"business_name,omitempty"`
	FCMToken     string          `bson:"fcm_token,omitempty" json:"-"`
	WorkingHours []WorkingWindow `bson:"working_hours" json:"working_hours"`
}

// WindowsOn instantiates the mentor's working windows for a given day as
// absolute UTC intervals, ordered as configured.
func (m Mentor) WindowsOn(day time.Time) []TimeInterval {
	day = day.UTC()
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var windows []TimeInterval
	for _, w := range m.WorkingHours {
		if w.Weekday != day.Weekday() {
			continue
		}
		windows = append(windows, TimeInterval{
			Start: midnight.Add(time.Duration(w.StartMinute) * time.Minute),
			End:   midnight.Add(time.Duration(w.EndMinute) * time.Minute),
		})
	}
	return windows
}
