// Package diskstore keeps one JSON file per item in a directory, using diskv.
package diskstore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"github.com/rpggio/todolist/internal/domain/item"
	"github.com/rpggio/todolist/internal/repository"
)

const cacheSizeMax = 1024 * 1024 // 1MB

// ItemRepository is an item.Repository backed by diskv. It has no atomic
// rename, so the item service falls back to put-then-delete.
type ItemRepository struct {
	d *diskv.Diskv
}

var _ item.Repository = (*ItemRepository)(nil)

// New opens (or lazily creates) an item directory at basePath.
func New(basePath string) *ItemRepository {
	return &ItemRepository{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: cacheSizeMax,
	})}
}

// record is the on-disk layout: the persisted row with stringified times.
type record struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

func toKey(title string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(title))
}

func (r *ItemRepository) Put(_ context.Context, it *item.ListItem) error {
	data, err := json.Marshal(record{
		Title:       it.Title,
		Description: it.Description,
		Timestamp:   item.FormatCanonical(it.CreatedAt),
		DueDate:     item.FormatStoredDueDate(it.DueDate),
		Status:      string(it.Status),
	})
	if err != nil {
		return err
	}
	if err := r.d.Write(toKey(it.Title), data); err != nil {
		return fmt.Errorf("failed to write item: %w", err)
	}
	return nil
}

func (r *ItemRepository) Get(_ context.Context, title string) (*item.ListItem, bool, error) {
	key := toKey(title)
	if !r.d.Has(key) {
		return nil, false, nil
	}
	it, err := r.read(key)
	if err != nil {
		return nil, false, err
	}
	return it, true, nil
}

func (r *ItemRepository) Delete(_ context.Context, title string) (bool, error) {
	key := toKey(title)
	if !r.d.Has(key) {
		return false, nil
	}
	if err := r.d.Erase(key); err != nil {
		return false, fmt.Errorf("failed to erase item: %w", err)
	}
	return true, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]item.ListItem, error) {
	items := []item.ListItem{}
	for key := range r.d.Keys(ctx.Done()) {
		it, err := r.read(key)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return items, nil
}

func (r *ItemRepository) DeleteAll(_ context.Context) error {
	if err := r.d.EraseAll(); err != nil {
		return fmt.Errorf("failed to erase items: %w", err)
	}
	return nil
}

func (r *ItemRepository) read(key string) (*item.ListItem, error) {
	val, err := r.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read item: %w", err)
	}

	var rec record
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", repository.ErrCorrupt, key, err)
	}
	if toKey(rec.Title) != key {
		return nil, fmt.Errorf("%w: %s: title %q does not match file name", repository.ErrCorrupt, key, rec.Title)
	}

	it := item.ListItem{
		Title:       rec.Title,
		Description: rec.Description,
		Status:      item.Status(rec.Status),
	}
	if it.CreatedAt, err = item.ParseStoredTimestamp(rec.Timestamp); err != nil {
		return nil, fmt.Errorf("%w: item %q timestamp: %v", repository.ErrCorrupt, rec.Title, err)
	}
	if it.DueDate, err = item.ParseStoredDueDate(rec.DueDate); err != nil {
		return nil, fmt.Errorf("%w: item %q due date: %v", repository.ErrCorrupt, rec.Title, err)
	}
	if !it.Status.Valid() {
		return nil, fmt.Errorf("%w: item %q status %q", repository.ErrCorrupt, rec.Title, rec.Status)
	}
	return &it, nil
}
