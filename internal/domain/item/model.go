package item

import "time"

// ListItem is a task record. Title is its unique key.
type ListItem struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      Status     `json:"status"`
}

// Clone returns a copy that shares no pointers with it.
func (it ListItem) Clone() ListItem {
	if it.DueDate != nil {
		due := *it.DueDate
		it.DueDate = &due
	}
	return it
}
