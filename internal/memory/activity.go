package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rpggio/todolist/internal/domain/activity"
)

// ActivityRepository is an append-only in-memory activity journal
type ActivityRepository struct {
	mu      sync.Mutex
	entries []activity.Entry
	nextID  int64
}

var _ activity.Repository = (*ActivityRepository)(nil)

// NewActivityRepository creates an empty journal
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

// Log appends an entry and assigns its ID
func (r *ActivityRepository) Log(_ context.Context, entry *activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, *entry)
	return nil
}

// List returns matching entries newest first
func (r *ActivityRepository) List(_ context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	r.mu.Lock()
	matched := make([]activity.Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		if opts.ItemTitle != nil && entry.ItemTitle != *opts.ItemTitle {
			continue
		}
		if opts.SessionID != nil && entry.SessionID != *opts.SessionID {
			continue
		}
		if opts.Type != nil && entry.Type != *opts.Type {
			continue
		}
		matched = append(matched, entry)
	}
	r.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return []activity.Entry{}, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}
