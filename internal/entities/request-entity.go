package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Request statuses. Rejected, returned and cancelled are terminal.
const (
	RequestPending    = "pending"
	RequestApproved   = "approved"
	RequestRejected   = "rejected"
	RequestCheckedOut = "checked_out"
	RequestReturned   = "returned"
	RequestCancelled  = "cancelled"
)

// IsTerminalRequestStatus reports whether a request may no longer change state.
func IsTerminalRequestStatus(status string) bool {
	switch status {
	case RequestRejected, RequestReturned, RequestCancelled:
		return true
	}
	return false
}

type Request struct {
	ID           uint64        `json:"id"`
	RequesterID  uint64        `json:"requester_id"`
	RequesterFio string        `json:"requester_fio,omitempty"`
	Status       string        `json:"status"`
	Destination  string        `json:"destination"`
	Reason       string        `json:"reason"`
	DurationDays int           `json:"duration_days"`
	DueDate      null.Time     `json:"due_date"`
	Items        []RequestItem `json:"items,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type RequestItem struct {
	ID            uint64 `json:"id"`
	RequestID     uint64 `json:"request_id"`
	EquipmentID   uint64 `json:"equipment_id"`
	EquipmentName string `json:"equipment_name,omitempty"`
	Quantity      int    `json:"quantity"`
}
