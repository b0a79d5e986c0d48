package websocket

import "time"

// Envelope wraps every outbound message with a type tag so the frontend can
// route it.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NotificationPayload is the in-app "bell" notification DTO.
type NotificationPayload struct {
	EventID   string    `json:"eventId"`
	Category  string    `json:"category"`
	IsRead    bool      `json:"isRead"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ChangePayload tells clients that a collection changed and should be
// refetched.
type ChangePayload struct {
	Collection string `json:"collection"`
	EntityID   uint64 `json:"entityId,omitempty"`
}
