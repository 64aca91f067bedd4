package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/todolist/internal/domain/activity"
	"github.com/rpggio/todolist/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	entry := &activity.Entry{
		SessionID: "sess1",
		ItemTitle: "Buy milk",
		Type:      activity.TypeItemCreated,
		Summary:   "created",
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListOptions{Limit: 10}).Return([]activity.Entry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, entry))
	require.False(t, entry.CreatedAt.IsZero())

	entries, err := svc.GetRecentActivity(ctx, activity.ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_LogRejectsIncompleteEntry(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.LogActivity(context.Background(), nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), &activity.Entry{}), activity.ErrInvalidInput)
}

func TestActivityService_ListWrapsRepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	boom := errors.New("disk gone")
	repo.On("List", ctx, mock.Anything).Return(nil, boom)

	svc := activity.NewService(repo, nil)
	_, err := svc.GetRecentActivity(ctx, activity.ListOptions{})
	require.ErrorIs(t, err, boom)

	_, err = svc.GetRecentActivity(ctx, activity.ListOptions{Limit: -1})
	require.ErrorIs(t, err, activity.ErrInvalidInput)
}
