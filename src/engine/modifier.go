package engine

import (
	"fmt"
	"math"
	"resort/src/models"
	"resort/src/types"
	"sort"
)

// ValidateModifier rejects out-of-range modifier values before they reach the
// store. Percentages live in [-100, 1000]; fixed values must be finite.
func ValidateModifier(modifierType types.ModifierType, value float64) error {
	switch modifierType {
	case types.MODIFIER_PERCENTAGE:
		if value < -100 || value > 1000 {
			return NewError(CodeInvalidModifierValue, fmt.Sprintf("percentage value %v outside [-100, 1000]", value))
		}
	case types.MODIFIER_FIXED:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return NewError(CodeInvalidModifierValue, "fixed value must be finite")
		}
	default:
		return NewError(CodeInvalidModifierValue, fmt.Sprintf("unknown modifier type %q", modifierType))
	}
	return nil
}

// ApplyModifiers folds the modifiers over baseAmount in insertion order
// (ascending Position, then id). Percentages compound against the running
// total, fixed values add to it; the result is clamped to zero and rounded
// half-up to 2 decimals exactly once, at the end. Order matters: -10% twice is
// 81% of base, not 80%.
func ApplyModifiers(baseAmount float64, modifiers []models.RateModifier) float64 {
	ordered := make([]models.RateModifier, len(modifiers))
	copy(ordered, modifiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position != ordered[j].Position {
			return ordered[i].Position < ordered[j].Position
		}
		return ordered[i].ID < ordered[j].ID
	})

	running := baseAmount
	for _, mod := range ordered {
		switch mod.ModifierType {
		case types.MODIFIER_PERCENTAGE:
			running = running * (1 + mod.Value/100)
		case types.MODIFIER_FIXED:
			running = running + mod.Value
		}
	}
	if running < 0 {
		running = 0
	}
	return roundCents(running)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
