package memory

import (
	"context"
	"sync"

	"github.com/rpggio/todolist/internal/domain/item"
	"github.com/rpggio/todolist/internal/repository"
)

// ItemRepository keeps items in a map. It is the default backend and
// loses everything when the process exits.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[string]item.ListItem
}

var (
	_ item.Repository = (*ItemRepository)(nil)
	_ item.Renamer    = (*ItemRepository)(nil)
)

// NewItemRepository creates an empty ItemRepository
func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[string]item.ListItem)}
}

// Put inserts or replaces the item stored under it.Title
func (r *ItemRepository) Put(_ context.Context, it *item.ListItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.Title] = it.Clone()
	return nil
}

func (r *ItemRepository) Get(_ context.Context, title string) (*item.ListItem, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[title]
	if !ok {
		return nil, false, nil
	}
	out := it.Clone()
	return &out, true, nil
}

func (r *ItemRepository) Delete(_ context.Context, title string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[title]
	delete(r.items, title)
	return ok, nil
}

func (r *ItemRepository) List(_ context.Context) ([]item.ListItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]item.ListItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it.Clone())
	}
	return out, nil
}

func (r *ItemRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]item.ListItem)
	return nil
}

// Rename moves the item at oldTitle to it.Title under one lock.
func (r *ItemRepository) Rename(_ context.Context, oldTitle string, it *item.ListItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if it.Title != oldTitle {
		if _, taken := r.items[it.Title]; taken {
			return repository.ErrConflict
		}
	}
	delete(r.items, oldTitle)
	r.items[it.Title] = it.Clone()
	return nil
}
