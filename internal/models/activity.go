package models

import "time"

// Activity event types.
const (
	ActivityRegister   = "REGISTER"
	ActivityLogin      = "LOGIN"
	ActivityItemCreate = "ITEM_CREATE"
	ActivityItemUpdate = "ITEM_UPDATE"
	ActivityItemDelete = "ITEM_DELETE"
)

// ActivityEvent is a single entry in a user's activity log.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	UserID      int       `json:"user_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // REGISTER | LOGIN | ITEM_CREATE | ITEM_UPDATE | ITEM_DELETE
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
