package activity

import "time"

// Type represents the kind of item mutation.
type Type string

const (
	TypeItemCreated   Type = "item_created"
	TypeItemRenamed   Type = "item_renamed"
	TypeItemUpdated   Type = "item_updated"
	TypeStatusChanged Type = "status_changed"
	TypeItemRemoved   Type = "item_removed"
	TypeListCleared   Type = "list_cleared"
)

// Entry is one line of the activity journal
type Entry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	ItemTitle string    `json:"item_title,omitempty"`
	Type      Type      `json:"type"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
