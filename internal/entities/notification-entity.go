package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

const (
	NotificationRequest = "request"
	NotificationCheckin = "checkin"
	NotificationReport  = "report"
	NotificationSystem  = "system"
)

type Notification struct {
	ID          uint64      `json:"id"`
	RecipientID uint64      `json:"recipient_id"`
	Title       string      `json:"title"`
	Message     string      `json:"message"`
	Category    string      `json:"category"`
	Link        null.String `json:"link"`
	IsRead      bool        `json:"is_read"`
	CreatedAt   time.Time   `json:"created_at"`
}
