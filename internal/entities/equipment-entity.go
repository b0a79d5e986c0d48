package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Equipment lifecycle statuses. Transitions run inside the request and
// check-in workflows, never by direct update.
const (
	EquipmentAvailable      = "available"
	EquipmentCheckedOut     = "checked_out"
	EquipmentUnderRepair    = "under_repair"
	EquipmentPendingCheckin = "pending_checkin"
)

type Equipment struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	Category  string      `json:"category"`
	Status    string      `json:"status"`
	HolderID  null.Uint64 `json:"holder_id"`
	DueDate   null.Time   `json:"due_date"`
	ImageURL  null.String `json:"image_url"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	DeletedAt null.Time   `json:"-"`
}
