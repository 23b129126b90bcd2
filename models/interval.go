package models

import "time"

// TimeInterval is a half-open interval [Start, End). Touching endpoints do
// not overlap, so back-to-back sessions are allowed.
type TimeInterval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Duration returns the interval length.
func (iv TimeInterval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// IsZero reports whether the interval is unset.
func (iv TimeInterval) IsZero() bool {
	return iv.Start.IsZero() && iv.End.IsZero()
}

// AvailabilityWindow lists a mentor's free slots for one day. It is derived
// on demand and never stored.
type AvailabilityWindow struct {
	MentorID  string         `json:"mentorId"`
	Date      string         `json:"date"` // "2006-01-02" in UTC
	FreeSlots []TimeInterval `json:"freeSlots"`
}
