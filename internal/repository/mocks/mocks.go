package mocks

import (
	"context"

	"github.com/rpggio/todolist/internal/domain/activity"
	"github.com/rpggio/todolist/internal/domain/item"
	"github.com/stretchr/testify/mock"
)

// ItemRepository is a mock for item.Repository. It does not implement Rename,
// so services fall back to put-then-delete.
type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) Put(ctx context.Context, it *item.ListItem) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *ItemRepository) Get(ctx context.Context, title string) (*item.ListItem, bool, error) {
	args := m.Called(ctx, title)
	if it, ok := args.Get(0).(*item.ListItem); ok {
		return it, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *ItemRepository) Delete(ctx context.Context, title string) (bool, error) {
	args := m.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

func (m *ItemRepository) List(ctx context.Context) ([]item.ListItem, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]item.ListItem); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ItemRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// RenamingItemRepository is an ItemRepository that also implements item.Renamer.
type RenamingItemRepository struct {
	ItemRepository
}

func (m *RenamingItemRepository) Rename(ctx context.Context, oldTitle string, it *item.ListItem) error {
	args := m.Called(ctx, oldTitle, it)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
