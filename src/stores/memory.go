package stores

import (
	"context"
	"fmt"
	"resort/src/engine"
	"resort/src/models"
	"resort/src/types"
	"sort"
	"sync"
)

// MemoryStore is an in-memory AllocationSource + RuleSource. It backs the
// engine tests and local development; no monkey-patched globals, it is just
// another implementation of the same interfaces.
type MemoryStore struct {
	mu          sync.Mutex
	nextAllocID uint
	nextRuleID  uint
	allocations []models.Allocation
	rules       []models.RateRule
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextAllocID: 1, nextRuleID: 1}
}

func (s *MemoryStore) ListBlocking(ctx context.Context, resourceID uint) ([]models.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Allocation, 0)
	for _, alloc := range s.allocations {
		if alloc.ResourceID == resourceID && alloc.Blocking() {
			out = append(out, alloc)
		}
	}
	return out, nil
}

// Create enforces the interval exclusion constraint the way a store-level
// constraint would: a blocking overlap on the same resource is a CONFLICT.
func (s *MemoryStore) Create(ctx context.Context, alloc *models.Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.allocations {
		if existing.ResourceID != alloc.ResourceID || !existing.Blocking() {
			continue
		}
		if engine.Overlaps(alloc.StartsAt, alloc.EndsAt, existing.StartsAt, existing.EndsAt) {
			return engine.NewError(engine.CodeConflict, fmt.Sprintf("allocation overlaps existing allocation %d", existing.ID))
		}
	}
	alloc.ID = s.nextAllocID
	s.nextAllocID++
	s.allocations = append(s.allocations, *alloc)
	return nil
}

func (s *MemoryStore) ActiveRules(ctx context.Context, itemType types.ItemType) ([]models.RateRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.RateRule, 0)
	for _, rule := range s.rules {
		if rule.ApplicableItemType == itemType && rule.IsActive {
			out = append(out, rule)
		}
	}
	return out, nil
}

// AddRule registers a rule, assigning ids to the rule and its modifiers and
// numbering modifier positions by insertion order when unset.
func (s *MemoryStore) AddRule(rule models.RateRule) models.RateRule {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rule.ID == 0 {
		rule.ID = s.nextRuleID
	}
	if rule.ID >= s.nextRuleID {
		s.nextRuleID = rule.ID + 1
	}
	for i := range rule.Modifiers {
		rule.Modifiers[i].RateRuleID = rule.ID
		if rule.Modifiers[i].ID == 0 {
			rule.Modifiers[i].ID = uint(i + 1)
		}
		if rule.Modifiers[i].Position == 0 {
			rule.Modifiers[i].Position = uint(i + 1)
		}
	}
	s.rules = append(s.rules, rule)
	return rule
}

// Allocations returns a stable snapshot, for assertions.
func (s *MemoryStore) Allocations() []models.Allocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Allocation, len(s.allocations))
	copy(out, s.allocations)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetStatus mutates one allocation's status, standing in for the external
// status-transition collaborator.
func (s *MemoryStore) SetStatus(id uint, status types.AllocationStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.allocations {
		if s.allocations[i].ID == id {
			s.allocations[i].Status = status
			return true
		}
	}
	return false
}
