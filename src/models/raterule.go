package models

import (
	"resort/src/types"
	"time"

	"github.com/google/uuid"
)

// RateRule is a conditional pricing policy. ApplicableItemID nil means the rule
// applies to every resource of ApplicableItemType. StartDate/EndDate nil means
// open-ended; DaysOfWeek empty means every day; MaxStay nil means unbounded.
type RateRule struct {
	ID                 uint             `gorm:"primarykey" json:"id"`
	Name               string           `json:"name,omitempty"`
	RateType           types.RateType   `gorm:"default:'standard'" json:"rate_type,omitempty"`
	BasePrice          float64          `json:"base_price"`
	Currency           string           `json:"currency,omitempty"`
	ApplicableItemType types.ItemType   `gorm:"index" json:"item_type,omitempty"`
	ApplicableItemID   *uint            `json:"item_id,omitempty"`
	StartDate          *time.Time       `json:"start_date,omitempty"`
	EndDate            *time.Time       `json:"end_date,omitempty"`
	DaysOfWeek         types.WeekdaySet `gorm:"type:jsonb" json:"days_of_week,omitempty"`
	MinStay            uint             `gorm:"default:1" json:"min_stay,omitempty"`
	MaxStay            *uint            `json:"max_stay,omitempty"`
	Priority           int              `json:"priority"`
	IsActive           bool             `gorm:"default:true" json:"is_active"`
	TenantID           *uuid.UUID       `gorm:"type:uuid" json:"-"`

	Modifiers []RateModifier `gorm:"foreignKey:rate_rule_id" json:"modifiers,omitempty"`

	types.Timestamps
}

// RateModifier is a stackable adjustment attached to a RateRule. Position is the
// insertion order; modifiers carry no priority of their own and are applied in
// ascending Position.
type RateModifier struct {
	ID           uint               `gorm:"primarykey" json:"id"`
	RateRuleID   uint               `gorm:"index" json:"rate_rule_id,omitempty"`
	Name         string             `json:"name,omitempty"`
	ModifierType types.ModifierType `json:"type,omitempty"`
	Value        float64            `json:"value"`
	Condition    *string            `json:"condition,omitempty"`
	Position     uint               `json:"position"`

	types.Timestamps
}
