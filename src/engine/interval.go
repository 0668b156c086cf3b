package engine

import (
	"context"
	"resort/src/models"
	"sort"
	"time"
)

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2) intersect.
// The end instant is excluded, so a checkout and a check-in on the same instant
// never collide (same-day turnover).
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ConflictDetector finds blocking allocations that overlap a candidate interval.
type ConflictDetector struct {
	allocations AllocationSource
}

func NewConflictDetector(allocations AllocationSource) *ConflictDetector {
	return &ConflictDetector{allocations: allocations}
}

// FindConflicts returns every blocking allocation on the resource whose interval
// overlaps [start,end). When excludeID is non-nil that allocation is skipped,
// which lets callers re-validate an allocation that is being edited against its
// own row. Result ordering is unspecified. Callers must validate start < end
// before calling; the detector does not re-reject the interval.
func (d *ConflictDetector) FindConflicts(ctx context.Context, resourceID uint, start, end time.Time, excludeID *uint) ([]models.Allocation, error) {
	existing, err := d.allocations.ListBlocking(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	conflicts := make([]models.Allocation, 0)
	for _, alloc := range existing {
		if excludeID != nil && alloc.ID == *excludeID {
			continue
		}
		if !alloc.Blocking() {
			continue
		}
		if Overlaps(start, end, alloc.StartsAt, alloc.EndsAt) {
			conflicts = append(conflicts, alloc)
		}
	}
	return conflicts, nil
}

// BlockedDates returns the sorted calendar dates (UTC midnights) inside the
// window that are covered by at least one blocking allocation.
func (d *ConflictDetector) BlockedDates(ctx context.Context, resourceID uint, windowStart, windowEnd time.Time) ([]time.Time, error) {
	conflicts, err := d.FindConflicts(ctx, resourceID, windowStart, windowEnd, nil)
	if err != nil {
		return nil, err
	}
	return coveredDates(conflicts, windowStart, windowEnd), nil
}

// coveredDates lists every UTC calendar date inside [windowStart, windowEnd)
// touched by one of the allocations.
func coveredDates(allocs []models.Allocation, windowStart, windowEnd time.Time) []time.Time {
	seen := map[time.Time]bool{}
	for _, alloc := range allocs {
		from := truncateToDate(alloc.StartsAt)
		if from.Before(truncateToDate(windowStart)) {
			from = truncateToDate(windowStart)
		}
		for day := from; day.Before(alloc.EndsAt) && day.Before(windowEnd); day = day.AddDate(0, 0, 1) {
			seen[day] = true
		}
	}
	dates := make([]time.Time, 0, len(seen))
	for day := range seen {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func truncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
