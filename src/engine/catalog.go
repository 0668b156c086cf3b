package engine

import (
	"context"
	"resort/src/models"
	"resort/src/types"
)

// RuleCatalog is a read-only view over persisted rate rules. It never mutates
// rules; administration happens through the external store.
type RuleCatalog struct {
	rules RuleSource
}

func NewRuleCatalog(rules RuleSource) *RuleCatalog {
	return &RuleCatalog{rules: rules}
}

// Query returns the active rules for an item type that either target itemID or
// apply as a wildcard. itemID nil keeps wildcard rules only.
func (c *RuleCatalog) Query(ctx context.Context, itemType types.ItemType, itemID *uint) ([]models.RateRule, error) {
	all, err := c.rules.ActiveRules(ctx, itemType)
	if err != nil {
		return nil, err
	}
	matched := make([]models.RateRule, 0, len(all))
	for _, rule := range all {
		if !rule.IsActive || rule.ApplicableItemType != itemType {
			continue
		}
		if rule.ApplicableItemID != nil {
			if itemID == nil || *rule.ApplicableItemID != *itemID {
				continue
			}
		}
		matched = append(matched, rule)
	}
	return matched, nil
}
