package models

import (
	"resort/src/types"

	"github.com/google/uuid"
)

type Resource struct {
	ID       uint                 `gorm:"primarykey" json:"id"`
	Name     string               `json:"name,omitempty"`
	Slug     string               `gorm:"uniqueIndex" json:"slug,omitempty"`
	ItemType types.ItemType       `json:"item_type,omitempty"`
	Capacity uint                 `json:"capacity,omitempty"`
	Status   types.ResourceStatus `gorm:"default:'active'" json:"status,omitempty"`
	Metadata *types.Metadata      `gorm:"type:jsonb" json:"metadata,omitempty"`
	TenantID *uuid.UUID           `gorm:"type:uuid" json:"-"`

	Allocations []Allocation `gorm:"foreignKey:resource_id" json:"allocations,omitempty"`

	types.Timestamps
}
