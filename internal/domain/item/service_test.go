package item_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rpggio/todolist/internal/domain/activity"
	"github.com/rpggio/todolist/internal/domain/item"
	"github.com/rpggio/todolist/internal/memory"
	"github.com/rpggio/todolist/internal/repository"
	"github.com/rpggio/todolist/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 45, 0, time.UTC)

func newMemoryService(t *testing.T) (*item.Service, *memory.ItemRepository, *memory.ActivityRepository) {
	t.Helper()
	repo := memory.NewItemRepository()
	journal := memory.NewActivityRepository()
	svc := item.NewService(repo, activity.NewService(journal, nil), nil,
		item.WithSessionID("sess1"),
		item.WithClock(func() time.Time { return fixedNow }),
	)
	return svc, repo, journal
}

func TestItemService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newMemoryService(t)

	created, err := svc.Create(ctx, item.CreateRequest{Title: "Buy milk", Description: "2 liters"})
	require.NoError(t, err)
	require.Equal(t, item.StatusPending, created.Status)
	require.Nil(t, created.DueDate)
	require.Equal(t, fixedNow.Truncate(time.Minute), created.CreatedAt)

	got, err := svc.Get(ctx, "Buy milk")
	require.NoError(t, err)
	require.Equal(t, "Buy milk", got.Title)
	require.Equal(t, "2 liters", got.Description)
	require.Equal(t, item.StatusPending, got.Status)
	require.Nil(t, got.DueDate)
	require.True(t, svc.Exists(ctx, "Buy milk"))

	stored, found, err := repo.Get(ctx, "Buy milk")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, *got, *stored)
}

func TestItemService_CreateWithDueDate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newMemoryService(t)

	due, err := item.ParseDueDate("2021-01-01 05:15")
	require.NoError(t, err)
	created, err := svc.Create(ctx, item.CreateRequest{Title: "Pay rent", DueDate: &due})
	require.NoError(t, err)
	require.NotNil(t, created.DueDate)
	require.Equal(t, "2021-01-01T05:15", item.FormatCanonical(*created.DueDate))
}

func TestItemService_CreateRejectsBlankTitle(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newMemoryService(t)

	for _, title := range []string{"", "   ", "\t"} {
		_, err := svc.Create(ctx, item.CreateRequest{Title: title})
		require.ErrorIs(t, err, item.ErrInvalidTitle)
	}
	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestItemService_CreateDuplicateLeavesOriginal(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newMemoryService(t)

	_, err := svc.Create(ctx, item.CreateRequest{Title: "Buy milk", Description: "2 liters"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, item.CreateRequest{Title: "Buy milk", Description: "other"})
	require.ErrorIs(t, err, item.ErrDuplicateTitle)

	_, err = svc.Create(ctx, item.CreateRequest{Title: "  Buy milk  "})
	require.ErrorIs(t, err, item.ErrDuplicateTitle)

	got, err := svc.Get(ctx, "Buy milk")
	require.NoError(t, err)
	require.Equal(t, "2 liters", got.Description)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestItemService_Remove(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newMemoryService(t)

	_, err := svc.Create(ctx, item.CreateRequest{Title: "Buy milk"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "Buy milk"))
	_, err = svc.Get(ctx, "Buy milk")
	require.ErrorIs(t, err, item.ErrItemNotFound)
	_, found, err := repo.Get(ctx, "Buy milk")
	require.NoError(t, err)
	require.False(t, found)

	require.ErrorIs(t, svc.Remove(ctx, "Buy milk"), item.ErrItemNotFound)
}

func TestItemService_Rename(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newMemoryService(t)

	_, err := svc.Create(ctx, item.CreateRequest{Title: "Buy milk", Description: "2 liters"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, "Buy milk", item.StatusProgress)
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, "Buy milk", "Buy oat milk")
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", renamed.Title)

	_, err = svc.Get(ctx, "Buy milk")
	require.ErrorIs(t, err, item.ErrItemNotFound)

	got, err := svc.Get(ctx, "Buy oat milk")
	require.NoError(t, err)
	require.Equal(t, "2 liters", got.Description)
	require.Equal(t, item.StatusProgress, got.Status)
	require.Equal(t, fixedNow.Truncate(time.Minute), got.CreatedAt)

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "Buy oat milk", stored[0].Title)
}

func TestItemService_RenameFailures(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newMemoryService(t)

	_, err := svc.Create(ctx, item.CreateRequest{Title: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, item.CreateRequest{Title: "b"})
	require.NoError(t, err)

	_, err = svc.Rename(ctx, "a", " ")
	require.ErrorIs(t, err, item.ErrInvalidTitle)

	_, err = svc.Rename(ctx, "a", "b")
	require.ErrorIs(t, err, item.ErrDuplicateTitle)

	_, err = svc.Rename(ctx, "missing", "c")
	require.ErrorIs(t, err, item.ErrItemNotFound)

	same, err := svc.Rename(ctx, "a", "a")
	require.NoError(t, err)
	require.Equal(t, "a", same.Title)

	require.True(t, svc.Exists(ctx, "a"))
	require.True(t, svc.Exists(ctx, "b"))
}

func TestItemService_UpdateFields(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newMemoryService(t)

	_, err := svc.Create(ctx, item.CreateRequest{Title: "Buy milk"})
	require.NoError(t, err)

	updated, err := svc.UpdateDescription(ctx, "Buy milk", "oat")
	require.NoError(t, err)
	require.Equal(t, "oat", updated.Description)

	due := time.Date(2030, 2, 3, 4, 5, 0, 0, time.UTC)
	updated, err = svc.UpdateDueDate(ctx, "Buy milk", &due)
	require.NoError(t, err)
	require.True(t, due.Equal(*updated.DueDate))

	updated, err = svc.UpdateStatus(ctx, "Buy milk", item.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, item.StatusCompleted, updated.Status)

	// The whole record reaches storage.
	stored, found, err := repo.Get(ctx, "Buy milk")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "oat", stored.Description)
	require.True(t, due.Equal(*stored.DueDate))
	require.Equal(t, item.StatusCompleted, stored.Status)

	updated, err = svc.UpdateDueDate(ctx, "Buy milk", nil)
	require.NoError(t, err)
	require.Nil(t, updated.DueDate)

	_, err = svc.UpdateDescription(ctx, "missing", "x")
	require.ErrorIs(t, err, item.ErrItemNotFound)
}

func TestItemService_InvalidStatusLeavesItemUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newMemoryService(t)

	_, err := svc.Create(ctx, item.CreateRequest{Title: "Buy milk"})
	require.NoError(t, err)

	status, err := item.StatusFromIndex(5)
	require.ErrorIs(t, err, item.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, "Buy milk", status)
	require.ErrorIs(t, err, item.ErrInvalidStatus)

	got, err := svc.Get(ctx, "Buy milk")
	require.NoError(t, err)
	require.Equal(t, item.StatusPending, got.Status)
}

func TestItemService_ReturnedItemsDoNotAlias(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newMemoryService(t)

	due := time.Date(2030, 2, 3, 4, 5, 0, 0, time.UTC)
	created, err := svc.Create(ctx, item.CreateRequest{Title: "a", DueDate: &due})
	require.NoError(t, err)

	created.Description = "mutated"
	*created.DueDate = due.Add(time.Hour)

	got, err := svc.Get(ctx, "a")
	require.NoError(t, err)
	require.Empty(t, got.Description)
	require.True(t, due.Equal(*got.DueDate))
}

func TestItemService_Clear(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newMemoryService(t)

	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, item.CreateRequest{Title: title})
		require.NoError(t, err)
	}
	require.NoError(t, svc.Clear(ctx))

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, stored)

	require.NoError(t, svc.Clear(ctx))
}

func TestItemService_RecordsActivity(t *testing.T) {
	ctx := context.Background()
	svc, _, journal := newMemoryService(t)

	_, err := svc.Create(ctx, item.CreateRequest{Title: "a"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, "a", item.StatusProgress)
	require.NoError(t, err)
	_, err = svc.Rename(ctx, "a", "b")
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, "b"))
	require.NoError(t, svc.Clear(ctx))

	entries, err := journal.List(ctx, activity.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 5)

	var types []activity.Type
	for _, e := range entries {
		require.Equal(t, "sess1", e.SessionID)
		types = append(types, e.Type)
	}
	require.Equal(t, []activity.Type{
		activity.TypeListCleared,
		activity.TypeItemRemoved,
		activity.TypeItemRenamed,
		activity.TypeStatusChanged,
		activity.TypeItemCreated,
	}, types)
	require.Equal(t, "[PENDING] -> [PROGRESS]", entries[3].Summary)
}

func TestItemService_Load(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()
	require.NoError(t, repo.Put(ctx, &item.ListItem{Title: "stored", Description: "from disk", Status: item.StatusCompleted}))

	svc := item.NewService(repo, nil, nil)
	require.False(t, svc.Exists(ctx, "stored"))
	require.NoError(t, svc.Load(ctx))

	got, err := svc.Get(ctx, "stored")
	require.NoError(t, err)
	require.Equal(t, item.StatusCompleted, got.Status)

	_, err = svc.Create(ctx, item.CreateRequest{Title: "stored"})
	require.ErrorIs(t, err, item.ErrDuplicateTitle)
}

func TestItemService_LoadRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ItemRepository{}
	repo.On("List", ctx).Return([]item.ListItem{{Title: "bad", Status: "DONE"}}, nil)

	svc := item.NewService(repo, nil, nil)
	require.ErrorIs(t, svc.Load(ctx), item.ErrInvalidStatus)
}

func TestItemService_CreateStorageFailureLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection lost")
	repo := &mocks.ItemRepository{}
	repo.On("Put", ctx, mock.Anything).Return(boom).Once()

	svc := item.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, item.CreateRequest{Title: "a"})
	require.ErrorIs(t, err, boom)
	require.False(t, svc.Exists(ctx, "a"))
	repo.AssertExpectations(t)
}

func TestItemService_UpdateStorageFailureKeepsPreviousValue(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection lost")
	repo := &mocks.ItemRepository{}
	repo.On("Put", ctx, mock.Anything).Return(nil).Once()
	repo.On("Put", ctx, mock.Anything).Return(boom).Once()

	svc := item.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, item.CreateRequest{Title: "a", Description: "before"})
	require.NoError(t, err)

	_, err = svc.UpdateDescription(ctx, "a", "after")
	require.ErrorIs(t, err, boom)

	got, err := svc.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "before", got.Description)
	repo.AssertExpectations(t)
}

func TestItemService_RenameFallbackCompensates(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("delete failed")
	repo := &mocks.ItemRepository{}
	repo.On("Put", ctx, mock.MatchedBy(func(it *item.ListItem) bool { return it.Title == "old" })).Return(nil)
	repo.On("Put", ctx, mock.MatchedBy(func(it *item.ListItem) bool { return it.Title == "new" })).Return(nil)
	repo.On("Delete", ctx, "old").Return(false, boom)
	repo.On("Delete", ctx, "new").Return(true, nil)

	svc := item.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, item.CreateRequest{Title: "old"})
	require.NoError(t, err)

	_, err = svc.Rename(ctx, "old", "new")
	require.ErrorIs(t, err, boom)
	require.True(t, svc.Exists(ctx, "old"))
	require.False(t, svc.Exists(ctx, "new"))
	repo.AssertExpectations(t)
}

func TestItemService_RenameUsesRenamer(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.RenamingItemRepository{}
	repo.On("Put", ctx, mock.Anything).Return(nil)
	repo.On("Rename", ctx, "old", mock.MatchedBy(func(it *item.ListItem) bool { return it.Title == "new" })).
		Return(repository.ErrConflict).Once()

	svc := item.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, item.CreateRequest{Title: "old"})
	require.NoError(t, err)

	_, err = svc.Rename(ctx, "old", "new")
	require.ErrorIs(t, err, item.ErrDuplicateTitle)
	require.True(t, svc.Exists(ctx, "old"))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestItemService_JournalFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	journal := &mocks.ActivityRepository{}
	journal.On("Log", ctx, mock.Anything).Return(errors.New("journal full"))

	svc := item.NewService(memory.NewItemRepository(), activity.NewService(journal, nil), nil)
	_, err := svc.Create(ctx, item.CreateRequest{Title: "a"})
	require.NoError(t, err)
	require.True(t, svc.Exists(ctx, "a"))
	journal.AssertExpectations(t)
}

func TestItemService_LoadTrimsStoredTitles(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()
	require.NoError(t, repo.Put(ctx, &item.ListItem{Title: "  padded ", Description: "kept", Status: item.StatusPending}))

	svc := item.NewService(repo, nil, nil)
	require.NoError(t, svc.Load(ctx))

	got, err := svc.Get(ctx, "padded")
	require.NoError(t, err)
	require.Equal(t, "padded", got.Title)
	require.Equal(t, "kept", got.Description)

	_, found, err := repo.Get(ctx, "  padded ")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, svc.Remove(ctx, "padded"))
	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestItemService_LoadRejectsCollidingTitles(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()
	require.NoError(t, repo.Put(ctx, &item.ListItem{Title: "a", Status: item.StatusPending}))
	require.NoError(t, repo.Put(ctx, &item.ListItem{Title: " a", Status: item.StatusPending}))

	svc := item.NewService(repo, nil, nil)
	require.ErrorIs(t, svc.Load(ctx), repository.ErrCorrupt)

	// Nothing was rewritten.
	_, found, err := repo.Get(ctx, " a")
	require.NoError(t, err)
	require.True(t, found)
}

func TestItemService_UpdateAppliesAllChanges(t *testing.T) {
	ctx := context.Background()
	svc, _, journal := newMemoryService(t)

	due := time.Date(2030, 2, 3, 4, 5, 0, 0, time.UTC)
	_, err := svc.Create(ctx, item.CreateRequest{Title: "a", DueDate: &due})
	require.NoError(t, err)

	description := "oat"
	status := item.StatusProgress
	updated, err := svc.Update(ctx, "a", item.Changes{Description: &description, ClearDueDate: true, Status: &status})
	require.NoError(t, err)
	require.Equal(t, "oat", updated.Description)
	require.Nil(t, updated.DueDate)
	require.Equal(t, item.StatusProgress, updated.Status)

	done := item.StatusCompleted
	_, err = svc.Update(ctx, "a", item.Changes{Status: &done})
	require.NoError(t, err)

	entries, err := journal.List(ctx, activity.ListOptions{ItemTitle: ptr("a")})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, activity.TypeStatusChanged, entries[0].Type)
	require.Equal(t, activity.TypeItemUpdated, entries[1].Type)
	require.Equal(t, "description updated; due date cleared; [PENDING] -> [PROGRESS]", entries[1].Summary)

	bad := item.Status("DONE")
	_, err = svc.Update(ctx, "a", item.Changes{Description: &description, Status: &bad})
	require.ErrorIs(t, err, item.ErrInvalidStatus)

	_, err = svc.Update(ctx, "missing", item.Changes{Description: &description})
	require.ErrorIs(t, err, item.ErrItemNotFound)
}

func TestItemService_UpdateStorageFailureAppliesNothing(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection lost")
	repo := &mocks.ItemRepository{}
	repo.On("Put", ctx, mock.Anything).Return(nil).Once()
	repo.On("Put", ctx, mock.Anything).Return(boom).Once()

	svc := item.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, item.CreateRequest{Title: "a", Description: "before"})
	require.NoError(t, err)

	description := "after"
	status := item.StatusCompleted
	_, err = svc.Update(ctx, "a", item.Changes{Description: &description, Status: &status})
	require.ErrorIs(t, err, boom)

	got, err := svc.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "before", got.Description)
	require.Equal(t, item.StatusPending, got.Status)
	repo.AssertExpectations(t)
}

func TestItemService_JournalsThroughActivityService(t *testing.T) {
	ctx := context.Background()
	journal := &mocks.ActivityRepository{}
	journal.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeItemCreated && e.ItemTitle == "a" && !e.CreatedAt.IsZero()
	})).Return(nil).Once()

	// A zero clock leaves the timestamp to the activity service.
	svc := item.NewService(memory.NewItemRepository(), activity.NewService(journal, nil), nil,
		item.WithClock(func() time.Time { return time.Time{} }),
	)

	_, err := svc.Create(ctx, item.CreateRequest{Title: "a"})
	require.NoError(t, err)
	journal.AssertExpectations(t)
}

func ptr[T any](v T) *T {
	return &v
}
