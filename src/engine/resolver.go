package engine

import (
	"context"
	"resort/src/models"
	"resort/src/types"
	"time"
)

// RateResolver selects the single best rate rule for a request.
type RateResolver struct {
	catalog *RuleCatalog
}

func NewRateResolver(catalog *RuleCatalog) *RateResolver {
	return &RateResolver{catalog: catalog}
}

// Resolve filters the catalog down to the rules applicable to (itemType, itemID,
// date, nights) and picks exactly one winner. Selection is deterministic:
// highest priority first, then a rule bound to a concrete item id beats a
// wildcard rule, then the lowest rule id wins. Returns nil when nothing applies;
// that is not an error.
func (r *RateResolver) Resolve(ctx context.Context, itemType types.ItemType, itemID *uint, date time.Time, nights int) (*models.RateRule, error) {
	if nights < 1 {
		return nil, NewError(CodeInvalidStayLength, "stay length must be at least one night")
	}
	candidates, err := r.catalog.Query(ctx, itemType, itemID)
	if err != nil {
		return nil, err
	}

	// The same UTC calendar day feeds both the range and weekday filters so a
	// non-UTC timestamp near midnight cannot pass them under different days.
	day := truncateToDate(date)
	var best *models.RateRule
	for i := range candidates {
		rule := &candidates[i]
		if !ruleCoversDate(rule, date) {
			continue
		}
		if len(rule.DaysOfWeek) > 0 && !rule.DaysOfWeek.Contains(day.Weekday()) {
			continue
		}
		if uint(nights) < rule.MinStay {
			continue
		}
		if rule.MaxStay != nil && uint(nights) > *rule.MaxStay {
			continue
		}
		if best == nil || beats(rule, best) {
			best = rule
		}
	}
	return best, nil
}

// ruleCoversDate checks the rule's [StartDate, EndDate] range, inclusive on both
// ends. Missing bounds are open-ended.
func ruleCoversDate(rule *models.RateRule, date time.Time) bool {
	day := truncateToDate(date)
	if rule.StartDate != nil && day.Before(truncateToDate(*rule.StartDate)) {
		return false
	}
	if rule.EndDate != nil && day.After(truncateToDate(*rule.EndDate)) {
		return false
	}
	return true
}

func beats(a, b *models.RateRule) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	aSpecific := a.ApplicableItemID != nil
	bSpecific := b.ApplicableItemID != nil
	if aSpecific != bSpecific {
		return aSpecific
	}
	return a.ID < b.ID
}
