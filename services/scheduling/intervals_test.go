package scheduling

import (
	"testing"
	"time"

	"mentorhub/models"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 1, hour, min, 0, 0, time.UTC)
}

func iv(startHour, startMin, endHour, endMin int) models.TimeInterval {
	return models.TimeInterval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b models.TimeInterval
		want bool
	}{
		{"disjoint", iv(9, 0, 10, 0), iv(11, 0, 12, 0), false},
		{"touching endpoints do not overlap", iv(9, 0, 10, 0), iv(10, 0, 11, 0), false},
		{"touching reversed", iv(10, 0, 11, 0), iv(9, 0, 10, 0), false},
		{"partial overlap", iv(9, 0, 10, 30), iv(10, 0, 11, 0), true},
		{"containment", iv(9, 0, 17, 0), iv(10, 0, 11, 0), true},
		{"identical", iv(10, 0, 11, 0), iv(10, 0, 11, 0), true},
		{"one minute shared", iv(9, 0, 10, 1), iv(10, 0, 11, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Overlap is symmetric.
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	window := iv(9, 0, 17, 0)
	if !Contains(window, iv(9, 0, 10, 0)) {
		t.Error("interval at the window start should be contained")
	}
	if !Contains(window, iv(16, 0, 17, 0)) {
		t.Error("interval ending at the window end should be contained")
	}
	if Contains(window, iv(16, 30, 17, 30)) {
		t.Error("interval exceeding the window end should not be contained")
	}
	if Contains(window, iv(8, 0, 9, 30)) {
		t.Error("interval starting before the window should not be contained")
	}
}

func TestSubtract(t *testing.T) {
	window := iv(9, 0, 17, 0)

	tests := []struct {
		name string
		busy []models.TimeInterval
		want []models.TimeInterval
	}{
		{
			name: "no busy intervals returns whole window",
			busy: nil,
			want: []models.TimeInterval{window},
		},
		{
			name: "single booking splits the window",
			busy: []models.TimeInterval{iv(10, 0, 11, 0)},
			want: []models.TimeInterval{iv(9, 0, 10, 0), iv(11, 0, 17, 0)},
		},
		{
			name: "adjacent busy intervals are merged",
			busy: []models.TimeInterval{iv(10, 0, 11, 0), iv(11, 0, 12, 0)},
			want: []models.TimeInterval{iv(9, 0, 10, 0), iv(12, 0, 17, 0)},
		},
		{
			name: "overlapping busy intervals are merged",
			busy: []models.TimeInterval{iv(10, 0, 12, 0), iv(11, 0, 13, 0)},
			want: []models.TimeInterval{iv(9, 0, 10, 0), iv(13, 0, 17, 0)},
		},
		{
			name: "busy interval exceeding the window is clipped",
			busy: []models.TimeInterval{iv(8, 0, 10, 0), iv(16, 0, 18, 0)},
			want: []models.TimeInterval{iv(10, 0, 16, 0)},
		},
		{
			name: "busy interval covering the window leaves nothing",
			busy: []models.TimeInterval{iv(8, 0, 18, 0)},
			want: nil,
		},
		{
			name: "busy interval outside the window is ignored",
			busy: []models.TimeInterval{iv(7, 0, 8, 0), iv(17, 0, 18, 0)},
			want: []models.TimeInterval{window},
		},
		{
			name: "busy at window edges",
			busy: []models.TimeInterval{iv(9, 0, 10, 0), iv(16, 0, 17, 0)},
			want: []models.TimeInterval{iv(10, 0, 16, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtract(window, tt.busy)
			if len(got) != len(tt.want) {
				t.Fatalf("Subtract returned %d intervals, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if !got[i].Start.Equal(tt.want[i].Start) || !got[i].End.Equal(tt.want[i].End) {
					t.Errorf("interval %d = [%v, %v), want [%v, %v)",
						i, got[i].Start, got[i].End, tt.want[i].Start, tt.want[i].End)
				}
			}
		})
	}
}

func TestSubtractDoesNotMutateInput(t *testing.T) {
	busy := []models.TimeInterval{iv(12, 0, 13, 0), iv(10, 0, 11, 0)}
	Subtract(iv(9, 0, 17, 0), busy)
	if !busy[0].Start.Equal(at(12, 0)) {
		t.Error("Subtract reordered the caller's slice")
	}
}
