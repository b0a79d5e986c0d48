package entities

import "time"

// Activity log actions. Rows are append-only and feed the report aggregator.
const (
	ActionCheckout     = "checkout"
	ActionCheckin      = "checkin"
	ActionDamageReport = "damage_report"
)

type ActivityLog struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	EquipmentID uint64    `json:"equipment_id"`
	Action      string    `json:"action"`
	CreatedAt   time.Time `json:"created_at"`
}
