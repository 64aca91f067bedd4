package mcp

import (
	"github.com/rpggio/todolist/internal/domain/activity"
	"github.com/rpggio/todolist/internal/domain/item"
)

type ListItemsParams struct{}

type GetItemParams struct {
	Title string `json:"title" jsonschema:"title of the item"`
}

type CreateItemParams struct {
	Title       string `json:"title" jsonschema:"unique, non-blank title"`
	Description string `json:"description,omitempty" jsonschema:"free text description"`
	DueDate     string `json:"due_date,omitempty" jsonschema:"optional due date as yyyy-MM-dd HH:mm"`
}

type RenameItemParams struct {
	Title    string `json:"title" jsonschema:"current title"`
	NewTitle string `json:"new_title" jsonschema:"new unique, non-blank title"`
}

type UpdateItemParams struct {
	Title       string  `json:"title" jsonschema:"title of the item to update"`
	Description *string `json:"description,omitempty" jsonschema:"new description"`
	DueDate     *string `json:"due_date,omitempty" jsonschema:"new due date as yyyy-MM-dd HH:mm, empty string clears it"`
	Status      *string `json:"status,omitempty" jsonschema:"PENDING, PROGRESS or COMPLETED, or the status index 0, 1 or 2"`
}

type RemoveItemParams struct {
	Title string `json:"title" jsonschema:"title of the item to remove"`
}

type ClearItemsParams struct{}

type GetRecentActivityParams struct {
	Title     string `json:"title,omitempty" jsonschema:"only entries for this item title"`
	SessionID string `json:"session_id,omitempty" jsonschema:"only entries from this session"`
	Type      string `json:"type,omitempty" jsonschema:"only entries of this activity type"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of entries, default 20"`
	Offset    int    `json:"offset,omitempty" jsonschema:"entries to skip"`
}

// ItemView is the wire form of a list item. Times use yyyy-MM-ddTHH:mm.
type ItemView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	DueDate     string `json:"due_date,omitempty"`
	Status      string `json:"status"`
}

type ItemResult struct {
	Item ItemView `json:"item"`
}

type ListItemsResult struct {
	Items []ItemView `json:"items"`
	Count int        `json:"count"`
}

type RemoveItemResult struct {
	Removed string `json:"removed"`
}

type ClearItemsResult struct {
	Cleared int `json:"cleared"`
}

type ActivityView struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Title     string `json:"title,omitempty"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

type GetRecentActivityResult struct {
	Entries []ActivityView `json:"entries"`
}

func toItemView(it *item.ListItem) ItemView {
	view := ItemView{
		Title:       it.Title,
		Description: it.Description,
		CreatedAt:   item.FormatCanonical(it.CreatedAt),
		Status:      string(it.Status),
	}
	if it.DueDate != nil {
		view.DueDate = item.FormatCanonical(*it.DueDate)
	}
	return view
}

func toActivityView(entry activity.Entry) ActivityView {
	return ActivityView{
		ID:        entry.ID,
		SessionID: entry.SessionID,
		Title:     entry.ItemTitle,
		Type:      string(entry.Type),
		Summary:   entry.Summary,
		CreatedAt: entry.CreatedAt.Format("2006-01-02T15:04:05"),
	}
}
