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

func date(day int) time.Time {
	return time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(day int) *time.Time {
	d := date(day)
	return &d
}

func uintPtr(v uint) *uint {
	return &v
}

func newResolver(store *stores.MemoryStore) *engine.RateResolver {
	return engine.NewRateResolver(engine.NewRuleCatalog(store))
}

func TestResolveStayLength(t *testing.T) {
	resolver := newResolver(stores.NewMemoryStore())
	_, err := resolver.Resolve(context.Background(), types.ITEM_ROOM, nil, date(1), 0)
	assert.Equal(t, engine.CodeInvalidStayLength, engine.ErrCode(err))
}

func TestResolveNoMatchIsNotAnError(t *testing.T) {
	resolver := newResolver(stores.NewMemoryStore())
	rule, err := resolver.Resolve(context.Background(), types.ITEM_ROOM, nil, date(1), 2)
	assert.NoError(t, err)
	assert.Nil(t, rule)
}

func TestResolveFilters(t *testing.T) {
	ctx := context.Background()
	store := stores.NewMemoryStore()
	resolver := newResolver(store)

	store.AddRule(models.RateRule{
		ID:                 1,
		Name:               "standard room",
		BasePrice:          100,
		Currency:           "USD",
		ApplicableItemType: types.ITEM_ROOM,
		MinStay:            1,
		IsActive:           true,
	})
	store.AddRule(models.RateRule{
		ID:                 2,
		Name:               "september window",
		BasePrice:          90,
		Currency:           "USD",
		ApplicableItemType: types.ITEM_ROOM,
		StartDate:          datePtr(10),
		EndDate:            datePtr(20),
		MinStay:            1,
		Priority:           5,
		IsActive:           true,
	})
	store.AddRule(models.RateRule{
		ID:                 3,
		Name:               "weekend rate",
		BasePrice:          150,
		Currency:           "USD",
		ApplicableItemType: types.ITEM_ROOM,
		DaysOfWeek:         types.WeekdaySet{5, 6},
		MinStay:            1,
		Priority:           8,
		IsActive:           true,
	})
	store.AddRule(models.RateRule{
		ID:                 4,
		Name:               "weekly discount",
		BasePrice:          70,
		Currency:           "USD",
		ApplicableItemType: types.ITEM_ROOM,
		MinStay:            7,
		MaxStay:            uintPtr(28),
		Priority:           9,
		IsActive:           true,
	})
	store.AddRule(models.RateRule{
		ID:                 5,
		Name:               "retired rate",
		BasePrice:          10,
		Currency:           "USD",
		ApplicableItemType: types.ITEM_ROOM,
		MinStay:            1,
		Priority:           100,
		IsActive:           false,
	})
	store.AddRule(models.RateRule{
		ID:                 6,
		Name:               "pool session",
		BasePrice:          15,
		Currency:           "USD",
		ApplicableItemType: types.ITEM_POOL_SESSION,
		MinStay:            1,
		Priority:           100,
		IsActive:           true,
	})

	t.Run("item type must match", func(t *testing.T) {
		rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, nil, date(1), 2)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), rule.ID)
	})

	t.Run("date range is inclusive on both ends", func(t *testing.T) {
		for _, day := range []int{10, 15, 20} {
			rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, nil, date(day), 2)
			assert.NoError(t, err)
			assert.Equal(t, uint(2), rule.ID, "day %d should hit the windowed rule", day)
		}
		rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, nil, date(21), 2)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), rule.ID)
	})

	t.Run("days of week gate the rule", func(t *testing.T) {
		// 2026-09-04 is a Friday, 2026-09-07 a Monday.
		rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, nil, date(4), 2)
		assert.NoError(t, err)
		assert.Equal(t, uint(3), rule.ID)

		rule, err = resolver.Resolve(ctx, types.ITEM_ROOM, nil, date(7), 2)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), rule.ID)
	})

	t.Run("weekday follows the UTC calendar day", func(t *testing.T) {
		// 2026-09-06 00:30 +02:00 reads as Sunday locally but is still
		// Saturday 2026-09-05 in UTC, so the weekend rule (Fri/Sat) must
		// match on the same day the date-range filter sees.
		cest := time.FixedZone("CEST", 2*60*60)
		nearMidnight := time.Date(2026, 9, 6, 0, 30, 0, 0, cest)
		rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, nil, nearMidnight, 2)
		assert.NoError(t, err)
		assert.Equal(t, uint(3), rule.ID)
	})

	t.Run("stay length bounds gate the rule", func(t *testing.T) {
		rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, nil, date(7), 7)
		assert.NoError(t, err)
		assert.Equal(t, uint(4), rule.ID)

		rule, err = resolver.Resolve(ctx, types.ITEM_ROOM, nil, date(7), 29)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), rule.ID)
	})

	t.Run("inactive rules never resolve", func(t *testing.T) {
		rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, nil, date(1), 1)
		assert.NoError(t, err)
		assert.NotEqual(t, uint(5), rule.ID)
	})
}

func TestResolveTieBreaks(t *testing.T) {
	ctx := context.Background()
	store := stores.NewMemoryStore()
	resolver := newResolver(store)

	store.AddRule(models.RateRule{
		ID:                 1,
		Name:               "wildcard low priority",
		BasePrice:          100,
		ApplicableItemType: types.ITEM_ROOM,
		MinStay:            1,
		Priority:           1,
		IsActive:           true,
	})
	store.AddRule(models.RateRule{
		ID:                 2,
		Name:               "wildcard high priority",
		BasePrice:          110,
		ApplicableItemType: types.ITEM_ROOM,
		MinStay:            1,
		Priority:           10,
		IsActive:           true,
	})
	store.AddRule(models.RateRule{
		ID:                 3,
		Name:               "room 7 rate",
		BasePrice:          120,
		ApplicableItemType: types.ITEM_ROOM,
		ApplicableItemID:   uintPtr(7),
		MinStay:            1,
		Priority:           10,
		IsActive:           true,
	})
	store.AddRule(models.RateRule{
		ID:                 4,
		Name:               "room 7 rate duplicate",
		BasePrice:          130,
		ApplicableItemType: types.ITEM_ROOM,
		ApplicableItemID:   uintPtr(7),
		MinStay:            1,
		Priority:           10,
		IsActive:           true,
	})

	t.Run("highest priority wins", func(t *testing.T) {
		rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, nil, date(1), 2)
		assert.NoError(t, err)
		assert.Equal(t, uint(2), rule.ID)
	})

	t.Run("specific item beats wildcard at equal priority", func(t *testing.T) {
		rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, uintPtr(7), date(1), 2)
		assert.NoError(t, err)
		assert.Equal(t, uint(3), rule.ID)
	})

	t.Run("lowest id breaks the final tie", func(t *testing.T) {
		rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, uintPtr(7), date(1), 2)
		assert.NoError(t, err)
		assert.Equal(t, uint(3), rule.ID, "rule 3 precedes rule 4 at equal priority and specificity")
	})

	t.Run("resolution is deterministic", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, uintPtr(7), date(1), 2)
			assert.NoError(t, err)
			assert.Equal(t, uint(3), rule.ID)
		}
	})

	t.Run("nil item id keeps wildcards only", func(t *testing.T) {
		rule, err := resolver.Resolve(ctx, types.ITEM_ROOM, nil, date(1), 2)
		assert.NoError(t, err)
		assert.Nil(t, rule.ApplicableItemID)
	})
}
