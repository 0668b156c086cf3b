package models

import (
	"resort/src/types"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	Name         string          `json:"name,omitempty"`
	Email        string          `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string          `json:"-"`
	Role         types.Role      `gorm:"default:'guest'" json:"role,omitempty"`
	UID          string          `json:"uid,omitempty"`
	LastActive   *time.Time      `json:"last_active,omitempty"`
	Metadata     *types.Metadata `gorm:"type:jsonb" json:"-"`
	TenantID     *uuid.UUID      `gorm:"type:uuid" json:"-"`

	Allocations []Allocation `gorm:"foreignKey:guest_id" json:"allocations,omitempty"`

	types.Timestamps
}
