package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONBAny struct {
	Inner any
}

func (a JSONBAny) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a.Inner)
	return string(valueString), err
}
func (a *JSONBAny) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	var inner any
	if err := json.Unmarshal(b, &inner); err != nil {
		return err
	}
	a.Inner = inner
	return nil
}

// WeekdaySet is a set of weekdays (time.Weekday values, 0=Sunday) stored as jsonb.
// An empty set means every day.
type WeekdaySet []int

func (w WeekdaySet) Value() (driver.Value, error) {
	valueString, err := json.Marshal(w)
	return string(valueString), err
}
func (w *WeekdaySet) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	return nil
}

func (w WeekdaySet) Contains(d time.Weekday) bool {
	for _, v := range w {
		if time.Weekday(v) == d {
			return true
		}
	}
	return false
}

type Metadata map[string]any

type ItemType string

const (
	ITEM_ROOM         ItemType = "room"
	ITEM_POOL_SESSION ItemType = "pool_session"
	ITEM_STAFF_SHIFT  ItemType = "staff_shift"
	ITEM_AMENITY      ItemType = "amenity"
)

func ValidItemType(t ItemType) bool {
	switch t {
	case ITEM_ROOM, ITEM_POOL_SESSION, ITEM_STAFF_SHIFT, ITEM_AMENITY:
		return true
	}
	return false
}

type AllocationStatus string

const (
	ALLOCATION_PENDING     AllocationStatus = "pending"
	ALLOCATION_CONFIRMED   AllocationStatus = "confirmed"
	ALLOCATION_CHECKED_IN  AllocationStatus = "checked_in"
	ALLOCATION_CHECKED_OUT AllocationStatus = "checked_out"
	ALLOCATION_CANCELLED   AllocationStatus = "cancelled"
	ALLOCATION_NO_SHOW     AllocationStatus = "no_show"
)

type ResourceStatus string

const (
	RESOURCE_ACTIVE   ResourceStatus = "active"
	RESOURCE_DISABLED ResourceStatus = "disabled"
)

type RateType string

const (
	RATE_STANDARD    RateType = "standard"
	RATE_SEASONAL    RateType = "seasonal"
	RATE_PROMOTIONAL RateType = "promotional"
	RATE_EVENT       RateType = "event"
	RATE_PACKAGE     RateType = "package"
)

func ValidRateType(t RateType) bool {
	switch t {
	case RATE_STANDARD, RATE_SEASONAL, RATE_PROMOTIONAL, RATE_EVENT, RATE_PACKAGE:
		return true
	}
	return false
}

type ModifierType string

const (
	MODIFIER_PERCENTAGE ModifierType = "percentage"
	MODIFIER_FIXED      ModifierType = "fixed"
)

type CreateResourceRequestBody struct {
	Name     string    `json:"name" binding:"required"`
	ItemType ItemType  `json:"item_type" binding:"required"`
	Capacity uint      `json:"capacity,omitempty"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

type CreateModifierRequestBody struct {
	Name      string       `json:"name" binding:"required"`
	Type      ModifierType `json:"type" binding:"required"`
	Value     float64      `json:"value"`
	Condition *string      `json:"condition,omitempty"`
}

type CreateRateRuleRequestBody struct {
	Name       string                      `json:"name" binding:"required"`
	RateType   RateType                    `json:"rate_type" binding:"required"`
	BasePrice  float64                     `json:"base_price" binding:"min=0"`
	Currency   string                      `json:"currency" binding:"required"`
	ItemType   ItemType                    `json:"item_type" binding:"required"`
	ItemID     *uint                       `json:"item_id,omitempty"`
	StartDate  *string                     `json:"start_date,omitempty" binding:"omitempty,slotdate"`
	EndDate    *string                     `json:"end_date,omitempty" binding:"omitempty,slotdate"`
	DaysOfWeek []int                       `json:"days_of_week,omitempty" binding:"omitempty,dive,min=0,max=6"`
	MinStay    uint                        `json:"min_stay,omitempty"`
	MaxStay    *uint                       `json:"max_stay,omitempty"`
	Priority   int                         `json:"priority,omitempty"`
	IsActive   *bool                       `json:"is_active,omitempty"`
	Modifiers  []CreateModifierRequestBody `json:"modifiers,omitempty"`
}

type UpdateRateRuleRequestBody struct {
	Name      *string  `json:"name,omitempty"`
	BasePrice *float64 `json:"base_price,omitempty" binding:"omitempty,min=0"`
	Priority  *int     `json:"priority,omitempty"`
	IsActive  *bool    `json:"is_active,omitempty"`
	MinStay   *uint    `json:"min_stay,omitempty"`
	MaxStay   *uint    `json:"max_stay,omitempty"`
}

type CreateAllocationRequestBody struct {
	ResourceID uint   `json:"resource_id" binding:"required"`
	StartsAt   string `json:"starts_at" binding:"required,slotdatetime"`
	EndsAt     string `json:"ends_at" binding:"required,slotdatetime,gtdate=StartsAt"`
	PartySize  uint8  `json:"party_size,omitempty"`
}

type UpdateAllocationStatusRequestBody struct {
	Status AllocationStatus `json:"status" binding:"required"`
}

type AvailabilityQueryParams struct {
	ResourceID          uint   `form:"resource" binding:"required"`
	StartsAt            string `form:"start" binding:"required"`
	EndsAt              string `form:"end" binding:"required"`
	PartySize           uint8  `form:"party_size"`
	ExcludeAllocationID *uint  `form:"exclude"`
}

type QuoteQueryParams struct {
	ItemType ItemType `form:"item_type" binding:"required"`
	ItemID   *uint    `form:"item_id"`
	Date     string   `form:"date" binding:"required"`
	Nights   int      `form:"nights" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RegisterUserRequestBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateSettingRequestBody struct {
	Key   string `json:"key" binding:"required"`
	Value any    `json:"value" binding:"required"`
	Group string `json:"group" binding:"required"`
}
