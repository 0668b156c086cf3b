package models

import (
	"resort/src/types"

	"github.com/google/uuid"
)

// TrailLog records administrative mutations to the rate catalog.
type TrailLog struct {
	ID        uuid.UUID       `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	Action    string          `json:"action,omitempty"`
	Entity    string          `json:"entity,omitempty"`
	EntityID  uint            `json:"entity_id,omitempty"`
	Initiator uint            `json:"initiator,omitempty"`
	Snapshot  *types.Metadata `gorm:"type:jsonb" json:"snapshot,omitempty"`

	types.Timestamps
}
