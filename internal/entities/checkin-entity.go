package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

const (
	ConditionGood    = "good"
	ConditionDamaged = "damaged"

	CheckinPending  = "pending"
	CheckinApproved = "approved"
)

// Checkin is one returned gear item awaiting administrator sign-off.
type Checkin struct {
	ID            uint64      `json:"id"`
	RequesterID   uint64      `json:"requester_id"`
	RequesterFio  string      `json:"requester_fio,omitempty"`
	EquipmentID   uint64      `json:"equipment_id"`
	EquipmentName string      `json:"equipment_name,omitempty"`
	RequestID     null.Uint64 `json:"request_id"`
	Condition     string      `json:"condition"`
	Notes         null.String `json:"notes"`
	Status        string      `json:"status"`
	ApprovedAt    null.Time   `json:"approved_at"`
	CreatedAt     time.Time   `json:"created_at"`
}
