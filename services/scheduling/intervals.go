package scheduling

import (
	"sort"

	"mentorhub/models"
)

// Overlaps reports whether two half-open intervals share at least one
// instant. Touching endpoints do not overlap.
func Overlaps(a, b models.TimeInterval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner models.TimeInterval) bool {
	return !inner.Start.Before(outer.Start) && !inner.End.After(outer.End)
}

// Subtract returns the ordered free complement of busy within window.
// Busy intervals are merged first; intervals partially or fully outside the
// window are clipped to it.
func Subtract(window models.TimeInterval, busy []models.TimeInterval) []models.TimeInterval {
	merged := mergeIntervals(busy)

	var free []models.TimeInterval
	cursor := window.Start
	for _, b := range merged {
		if !b.End.After(window.Start) || !b.Start.Before(window.End) {
			continue
		}
		// Clip to the window.
		start, end := b.Start, b.End
		if start.Before(window.Start) {
			start = window.Start
		}
		if end.After(window.End) {
			end = window.End
		}
		if cursor.Before(start) {
			free = append(free, models.TimeInterval{Start: cursor, End: start})
		}
		if end.After(cursor) {
			cursor = end
		}
	}
	if cursor.Before(window.End) {
		free = append(free, models.TimeInterval{Start: cursor, End: window.End})
	}
	return free
}

// mergeIntervals sorts intervals by start and coalesces adjacent or
// overlapping ones.
func mergeIntervals(intervals []models.TimeInterval) []models.TimeInterval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]models.TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []models.TimeInterval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
