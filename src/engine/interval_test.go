package engine_test

import (
	"context"
	"resort/src/engine"
	"resort/src/models"
	"resort/src/stores"
	"resort/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slot(day, hour int) time.Time {
	return time.Date(2026, 9, day, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"disjoint", slot(1, 14), slot(3, 10), slot(5, 14), slot(7, 10), false},
		{"contained", slot(1, 14), slot(7, 10), slot(3, 14), slot(5, 10), true},
		{"partial", slot(1, 14), slot(4, 10), slot(3, 14), slot(6, 10), true},
		{"identical", slot(1, 14), slot(3, 10), slot(1, 14), slot(3, 10), true},
		{"same day turnover", slot(1, 10), slot(3, 10), slot(3, 10), slot(5, 10), false},
		{"reversed turnover", slot(3, 10), slot(5, 10), slot(1, 10), slot(3, 10), false},
		{"touching by a minute", slot(1, 10), slot(3, 10).Add(time.Minute), slot(3, 10), slot(5, 10), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, engine.Overlaps(c.s1, c.e1, c.s2, c.e2))
			assert.Equal(t, c.want, engine.Overlaps(c.s2, c.e2, c.s1, c.e1), "overlap must be symmetric")
		})
	}
}

func TestFindConflicts(t *testing.T) {
	ctx := context.Background()
	store := stores.NewMemoryStore()
	detector := engine.NewConflictDetector(store)

	booked := &models.Allocation{
		ResourceID: 1,
		ItemType:   types.ITEM_ROOM,
		StartsAt:   slot(2, 14),
		EndsAt:     slot(4, 10),
		Status:     types.ALLOCATION_CONFIRMED,
	}
	assert.NoError(t, store.Create(ctx, booked))
	otherRoom := &models.Allocation{
		ResourceID: 2,
		ItemType:   types.ITEM_ROOM,
		StartsAt:   slot(2, 14),
		EndsAt:     slot(4, 10),
		Status:     types.ALLOCATION_CONFIRMED,
	}
	assert.NoError(t, store.Create(ctx, otherRoom))

	t.Run("overlap on the same resource conflicts", func(t *testing.T) {
		conflicts, err := detector.FindConflicts(ctx, 1, slot(3, 14), slot(5, 10), nil)
		assert.NoError(t, err)
		assert.Len(t, conflicts, 1)
		assert.Equal(t, booked.ID, conflicts[0].ID)
	})

	t.Run("other resources do not conflict", func(t *testing.T) {
		conflicts, err := detector.FindConflicts(ctx, 3, slot(2, 14), slot(4, 10), nil)
		assert.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("same day turnover does not conflict", func(t *testing.T) {
		conflicts, err := detector.FindConflicts(ctx, 1, slot(4, 10), slot(6, 10), nil)
		assert.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("excluded allocation is skipped", func(t *testing.T) {
		conflicts, err := detector.FindConflicts(ctx, 1, slot(2, 14), slot(4, 10), &booked.ID)
		assert.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("cancelled allocations stop blocking", func(t *testing.T) {
		assert.True(t, store.SetStatus(booked.ID, types.ALLOCATION_CANCELLED))
		conflicts, err := detector.FindConflicts(ctx, 1, slot(2, 14), slot(4, 10), nil)
		assert.NoError(t, err)
		assert.Empty(t, conflicts)
	})
}

func TestBlockedDates(t *testing.T) {
	ctx := context.Background()
	store := stores.NewMemoryStore()
	detector := engine.NewConflictDetector(store)

	assert.NoError(t, store.Create(ctx, &models.Allocation{
		ResourceID: 1,
		ItemType:   types.ITEM_ROOM,
		StartsAt:   slot(2, 14),
		EndsAt:     slot(5, 10),
		Status:     types.ALLOCATION_CONFIRMED,
	}))
	assert.NoError(t, store.Create(ctx, &models.Allocation{
		ResourceID: 1,
		ItemType:   types.ITEM_ROOM,
		StartsAt:   slot(10, 14),
		EndsAt:     slot(11, 10),
		Status:     types.ALLOCATION_PENDING,
	}))

	t.Run("covers every touched date once", func(t *testing.T) {
		dates, err := detector.BlockedDates(ctx, 1, slot(1, 0), slot(30, 0))
		assert.NoError(t, err)
		assert.Equal(t, []time.Time{
			time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
		}, dates)
	})

	t.Run("window clips the range", func(t *testing.T) {
		dates, err := detector.BlockedDates(ctx, 1, slot(3, 0), slot(4, 0))
		assert.NoError(t, err)
		assert.Equal(t, []time.Time{
			time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		}, dates)
	})
}
