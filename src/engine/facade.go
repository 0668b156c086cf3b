package engine

import (
	"context"
	"fmt"
	"resort/src/config"
	"resort/src/models"
	"resort/src/types"
	"time"
)

type EvaluateRequest struct {
	ResourceID          uint           `json:"resource_id"`
	ItemType            types.ItemType `json:"item_type"`
	ItemID              *uint          `json:"item_id,omitempty"`
	StartsAt            time.Time      `json:"starts_at"`
	EndsAt              time.Time      `json:"ends_at"`
	PartySize           uint8          `json:"party_size,omitempty"`
	ExcludeAllocationID *uint          `json:"exclude_allocation_id,omitempty"`
}

type AppliedModifier struct {
	Name  string             `json:"name"`
	Type  types.ModifierType `json:"type"`
	Value float64            `json:"value"`
}

// PricingResult is the priced side of a decision. AppliedRuleID nil means no
// rule matched and the zero-price fallback was used; callers that need a real
// quote must check it instead of trusting TotalPrice.
type PricingResult struct {
	BasePrice     float64           `json:"base_price"`
	Modifiers     []AppliedModifier `json:"modifiers"`
	TotalPrice    float64           `json:"total_price"`
	Currency      string            `json:"currency,omitempty"`
	AppliedRuleID *uint             `json:"applied_rule_id"`
	Nights        int               `json:"nights"`
}

type AvailabilityPricingResult struct {
	Available    bool                `json:"available"`
	Conflicts    []models.Allocation `json:"conflicts"`
	BlockedDates []string            `json:"blocked_dates"`
	Pricing      PricingResult       `json:"pricing"`
}

// Engine orchestrates conflict detection and pricing over store interfaces
// passed in by the caller. It holds no global state.
type Engine struct {
	allocations AllocationSource
	detector    *ConflictDetector
	resolver    *RateResolver
	locks       *resourceLocker
}

func NewEngine(allocations AllocationSource, rules RuleSource) *Engine {
	return &Engine{
		allocations: allocations,
		detector:    NewConflictDetector(allocations),
		resolver:    NewRateResolver(NewRuleCatalog(rules)),
		locks:       newResourceLocker(),
	}
}

func (e *Engine) Detector() *ConflictDetector {
	return e.detector
}

// Evaluate answers one availability+pricing query. Pricing runs even when the
// interval is blocked so callers can show what the slot would cost.
func (e *Engine) Evaluate(ctx context.Context, req EvaluateRequest) (*AvailabilityPricingResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	conflicts, err := e.detector.FindConflicts(ctx, req.ResourceID, req.StartsAt, req.EndsAt, req.ExcludeAllocationID)
	if err != nil {
		return nil, err
	}
	blocked := coveredDates(conflicts, req.StartsAt, req.EndsAt)

	nights := nightsBetween(req.StartsAt, req.EndsAt)
	pricing, err := e.price(ctx, req.ItemType, req.ItemID, req.StartsAt, nights)
	if err != nil {
		return nil, err
	}

	blockedDates := make([]string, 0, len(blocked))
	for _, day := range blocked {
		blockedDates = append(blockedDates, day.Format(config.DATE_PARSE_FORMAT))
	}
	return &AvailabilityPricingResult{
		Available:    len(conflicts) == 0,
		Conflicts:    conflicts,
		BlockedDates: blockedDates,
		Pricing:      *pricing,
	}, nil
}

// ResolveRate is the bare quote entry point: pricing with no conflict check.
func (e *Engine) ResolveRate(ctx context.Context, itemType types.ItemType, itemID *uint, date time.Time, nights int) (*PricingResult, error) {
	if !types.ValidItemType(itemType) {
		return nil, NewError(CodeInvalidResource, fmt.Sprintf("unknown item type %q", itemType))
	}
	if nights < 1 {
		return nil, NewError(CodeInvalidStayLength, "stay length must be at least one night")
	}
	return e.price(ctx, itemType, itemID, date, nights)
}

// Reserve runs Evaluate and, when the interval is free, persists a pending
// allocation with the price snapshotted. The conflict check and the insert run
// under a per-resource lock so concurrent reservations cannot double-book; at
// most one of two racing calls succeeds, the other gets CONFLICT.
func (e *Engine) Reserve(ctx context.Context, req EvaluateRequest, guestID uint) (*models.Allocation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	unlock := e.locks.lock(req.ResourceID)
	defer unlock()

	result, err := e.Evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, NewError(CodeConflict, fmt.Sprintf("resource %d is not available for the requested interval", req.ResourceID))
	}

	alloc := &models.Allocation{
		ResourceID: req.ResourceID,
		ItemType:   req.ItemType,
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		Status:     types.ALLOCATION_PENDING,
		PartySize:  req.PartySize,
		TotalPrice: result.Pricing.TotalPrice,
		Currency:   result.Pricing.Currency,
		RateRuleID: result.Pricing.AppliedRuleID,
		GuestID:    guestID,
	}
	if err := e.allocations.Create(ctx, alloc); err != nil {
		return nil, err
	}
	return alloc, nil
}

// ValidateTransition checks one allocation status change against the legal
// transition set.
func (e *Engine) ValidateTransition(from, to types.AllocationStatus) error {
	if !models.CanTransitionAllocation(from, to) {
		return NewError(CodeInvalidStatusTransition, fmt.Sprintf("cannot transition allocation from %q to %q", from, to))
	}
	return nil
}

func (e *Engine) price(ctx context.Context, itemType types.ItemType, itemID *uint, date time.Time, nights int) (*PricingResult, error) {
	rule, err := e.resolver.Resolve(ctx, itemType, itemID, date, nights)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		// Zero-price fallback; callers must check AppliedRuleID.
		return &PricingResult{
			BasePrice:  0,
			Modifiers:  []AppliedModifier{},
			TotalPrice: 0,
			Nights:     nights,
		}, nil
	}
	base := rule.BasePrice * float64(nights)
	total := ApplyModifiers(base, rule.Modifiers)
	applied := make([]AppliedModifier, 0, len(rule.Modifiers))
	for _, mod := range rule.Modifiers {
		applied = append(applied, AppliedModifier{Name: mod.Name, Type: mod.ModifierType, Value: mod.Value})
	}
	ruleID := rule.ID
	return &PricingResult{
		BasePrice:     base,
		Modifiers:     applied,
		TotalPrice:    total,
		Currency:      rule.Currency,
		AppliedRuleID: &ruleID,
		Nights:        nights,
	}, nil
}

func validateRequest(req EvaluateRequest) error {
	if req.ResourceID == 0 {
		return NewError(CodeInvalidResource, "resource id is required")
	}
	if !types.ValidItemType(req.ItemType) {
		return NewError(CodeInvalidResource, fmt.Sprintf("unknown item type %q", req.ItemType))
	}
	if !req.StartsAt.Before(req.EndsAt) {
		return NewError(CodeInvalidTimeRange, "interval start must precede end")
	}
	return nil
}

// nightsBetween converts an interval into a stay length in nights: the number
// of calendar dates between check-in and check-out. A 14:00 check-in to a
// 10:00 check-out two days later is 2 nights even though the elapsed time is
// under 48h. Minimum 1 so sub-day slots (pool sessions, shifts) still price
// one unit.
func nightsBetween(start, end time.Time) int {
	nights := int(truncateToDate(end).Sub(truncateToDate(start)) / (24 * time.Hour))
	if nights < 1 {
		nights = 1
	}
	return nights
}
