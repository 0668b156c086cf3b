package models

import (
	"resort/src/types"
	"time"

	"github.com/google/uuid"
)

// Allocation reserves one resource for the half-open interval [StartsAt, EndsAt).
// TotalPrice is snapshotted when the allocation is created and never recomputed
// from the rate catalog afterwards.
type Allocation struct {
	ID         uint                   `gorm:"primarykey" json:"id"`
	ResourceID uint                   `gorm:"index" json:"resource_id,omitempty"`
	ItemType   types.ItemType         `json:"item_type,omitempty"`
	StartsAt   time.Time              `json:"starts_at,omitempty"`
	EndsAt     time.Time              `json:"ends_at,omitempty"`
	Status     types.AllocationStatus `gorm:"default:'pending'" json:"status,omitempty"`
	PartySize  uint8                  `json:"party_size,omitempty"`
	TotalPrice float64                `json:"total_price"`
	Currency   string                 `json:"currency,omitempty"`
	RateRuleID *uint                  `json:"rate_rule_id,omitempty"`
	GuestID    uint                   `json:"guest_id,omitempty"`
	TenantID   *uuid.UUID             `gorm:"type:uuid" json:"-"`

	Resource *Resource `gorm:"foreignKey:resource_id" json:"resource,omitempty"`
	Guest    *User     `gorm:"foreignKey:guest_id" json:"guest,omitempty"`

	types.Timestamps
}

// allocationTransitions enumerates every legal status transition. Anything not
// listed here is rejected with INVALID_STATUS_TRANSITION.
var allocationTransitions = map[types.AllocationStatus][]types.AllocationStatus{
	types.ALLOCATION_PENDING: {
		types.ALLOCATION_CONFIRMED,
		types.ALLOCATION_CANCELLED,
	},
	types.ALLOCATION_CONFIRMED: {
		types.ALLOCATION_CHECKED_IN,
		types.ALLOCATION_CANCELLED,
		types.ALLOCATION_NO_SHOW,
	},
	types.ALLOCATION_CHECKED_IN: {
		types.ALLOCATION_CHECKED_OUT,
	},
}

func CanTransitionAllocation(from, to types.AllocationStatus) bool {
	for _, next := range allocationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Blocking reports whether the allocation counts against availability.
func (a *Allocation) Blocking() bool {
	return a.Status != types.ALLOCATION_CANCELLED && a.Status != types.ALLOCATION_NO_SHOW
}
