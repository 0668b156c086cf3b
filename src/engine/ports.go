package engine

import (
	"context"
	"resort/src/models"
	"resort/src/types"
)

// AllocationSource is the read/write view over persisted allocations the engine
// needs. The engine never mutates existing allocations through it.
type AllocationSource interface {
	// ListBlocking returns every allocation for the resource whose status still
	// counts against availability (anything but cancelled and no_show).
	ListBlocking(ctx context.Context, resourceID uint) ([]models.Allocation, error)
	// Create persists a new allocation. Implementations backed by a store with
	// an exclusion constraint surface violations as a CONFLICT engine error.
	Create(ctx context.Context, alloc *models.Allocation) error
}

// RuleSource lists active pricing rules, with modifiers preloaded in insertion
// order, for one item type.
type RuleSource interface {
	ActiveRules(ctx context.Context, itemType types.ItemType) ([]models.RateRule, error)
}
