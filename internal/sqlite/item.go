package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/todolist/internal/domain/item"
	"github.com/rpggio/todolist/internal/repository"
)

// ItemRepository stores items in the todo_items table
type ItemRepository struct {
	db *DB
}

var (
	_ item.Repository = (*ItemRepository)(nil)
	_ item.Renamer    = (*ItemRepository)(nil)
)

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Put inserts the item or replaces every column of the existing row
func (r *ItemRepository) Put(ctx context.Context, it *item.ListItem) error {
	query := `
		INSERT INTO todo_items (title, description, timestamp, due_date, status)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			description = excluded.description,
			timestamp = excluded.timestamp,
			due_date = excluded.due_date,
			status = excluded.status
	`

	_, err := r.db.ExecContext(ctx, query,
		it.Title,
		it.Description,
		item.FormatCanonical(it.CreatedAt),
		item.FormatStoredDueDate(it.DueDate),
		string(it.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}
	return nil
}

// Get retrieves an item by title
func (r *ItemRepository) Get(ctx context.Context, title string) (*item.ListItem, bool, error) {
	query := `
		SELECT title, description, timestamp, due_date, status
		FROM todo_items
		WHERE title = ?
	`

	it, err := scanItem(r.db.QueryRowContext(ctx, query, title))
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return it, true, nil
}

// Delete removes an item and reports whether a row existed
func (r *ItemRepository) Delete(ctx context.Context, title string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todo_items WHERE title = ?`, title)
	if err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// List returns every stored item
func (r *ItemRepository) List(ctx context.Context) ([]item.ListItem, error) {
	query := `
		SELECT title, description, timestamp, due_date, status
		FROM todo_items
		ORDER BY title
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []item.ListItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}
	return items, nil
}

// DeleteAll removes every item
func (r *ItemRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM todo_items`); err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	return nil
}

// Rename replaces the row keyed by oldTitle with it in one transaction.
// A collision with another row returns repository.ErrConflict.
func (r *ItemRepository) Rename(ctx context.Context, oldTitle string, it *item.ListItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE todo_items
		SET title = ?, description = ?, timestamp = ?, due_date = ?, status = ?
		WHERE title = ?
	`
	result, err := tx.ExecContext(ctx, query,
		it.Title,
		it.Description,
		item.FormatCanonical(it.CreatedAt),
		item.FormatStoredDueDate(it.DueDate),
		string(it.Status),
		oldTitle,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to rename item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Row went missing underneath the store; write the renamed item fresh.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO todo_items (title, description, timestamp, due_date, status)
			VALUES (?, ?, ?, ?, ?)
		`,
			it.Title,
			it.Description,
			item.FormatCanonical(it.CreatedAt),
			item.FormatStoredDueDate(it.DueDate),
			string(it.Status),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return repository.ErrConflict
			}
			return fmt.Errorf("failed to insert renamed item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*item.ListItem, error) {
	var it item.ListItem
	var createdAt, dueDate, status string
	err := row.Scan(&it.Title, &it.Description, &createdAt, &dueDate, &status)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	it.CreatedAt, err = item.ParseStoredTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: item %q timestamp: %v", repository.ErrCorrupt, it.Title, err)
	}
	it.DueDate, err = item.ParseStoredDueDate(dueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: item %q due date: %v", repository.ErrCorrupt, it.Title, err)
	}
	it.Status = item.Status(status)
	if !it.Status.Valid() {
		return nil, fmt.Errorf("%w: item %q status %q", repository.ErrCorrupt, it.Title, status)
	}
	return &it, nil
}
