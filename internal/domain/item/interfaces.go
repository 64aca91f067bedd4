package item

import (
	"context"

	"github.com/rpggio/todolist/internal/domain/activity"
)

// Repository is the durable backing of the item store. Get and Delete
// report absence through their bool result, never through an error.
type Repository interface {
	Put(ctx context.Context, it *ListItem) error
	Get(ctx context.Context, title string) (*ListItem, bool, error)
	Delete(ctx context.Context, title string) (bool, error)
	List(ctx context.Context) ([]ListItem, error)
	DeleteAll(ctx context.Context) error
}

// Renamer is implemented by repositories that can replace a key in one
// transaction. Repositories without it get put-then-delete.
type Renamer interface {
	Rename(ctx context.Context, oldTitle string, it *ListItem) error
}

// ActivityLogger records item mutations. activity.Service implements it.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.Entry) error
}
