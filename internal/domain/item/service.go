package item

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/todolist/internal/domain/activity"
	"github.com/rpggio/todolist/internal/repository"
)

// Service is the item store. It keeps an index of every item keyed by title,
// writes each change through to the repository before updating the index,
// and serializes all mutations so uniqueness checks and inserts are atomic.
type Service struct {
	repo       Repository
	activities ActivityLogger
	logger     *slog.Logger
	sessionID  string
	now        func() time.Time

	mu    sync.RWMutex
	items map[string]ListItem
}

// Option configures a Service.
type Option func(*Service)

// WithSessionID tags activity entries with the given session id.
func WithSessionID(id string) Option {
	return func(s *Service) { s.sessionID = id }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an empty item store backed by repo. activities may be nil.
func NewService(repo Repository, activities ActivityLogger, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		repo:       repo,
		activities: activities,
		logger:     logger,
		now:        time.Now,
		items:      make(map[string]ListItem),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest defines item creation inputs.
type CreateRequest struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// Load replaces the index with the repository contents. Stored titles with
// surrounding whitespace are renamed in storage to their trimmed form.
func (s *Service) Load(ctx context.Context) error {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading items: %w", err)
	}

	rawTitles := make(map[string]bool, len(stored))
	for _, it := range stored {
		rawTitles[it.Title] = true
	}

	items := make(map[string]ListItem, len(stored))
	for _, it := range stored {
		title := normalizeTitle(it.Title)
		if title == "" {
			return fmt.Errorf("loading items: %w: stored title %q", ErrInvalidTitle, it.Title)
		}
		if !it.Status.Valid() {
			return fmt.Errorf("loading item %q: %w: %q", it.Title, ErrInvalidStatus, it.Status)
		}
		if _, dup := items[title]; dup || (title != it.Title && rawTitles[title]) {
			return fmt.Errorf("loading item %q: %w: title collides with %q", it.Title, repository.ErrCorrupt, title)
		}

		loaded := it.Clone()
		if title != it.Title {
			loaded.Title = title
			if err := s.renameStored(ctx, it.Title, &loaded); err != nil {
				return fmt.Errorf("loading item %q: trimming title: %w", it.Title, err)
			}
			s.logger.Warn("trimmed stored item title", "title", it.Title, "new_title", title)
		}
		items[title] = loaded
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Debug("loaded items", "count", len(items))
	return nil
}

// Create stores a new PENDING item stamped with the current minute.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*ListItem, error) {
	title := normalizeTitle(req.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[title]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, title)
	}

	it := ListItem{
		Title:       title,
		Description: req.Description,
		CreatedAt:   Naive(s.now()).Truncate(time.Minute),
		Status:      StatusPending,
	}
	if req.DueDate != nil {
		due := Naive(*req.DueDate)
		it.DueDate = &due
	}

	if err := s.repo.Put(ctx, &it); err != nil {
		s.logger.Error("failed to store item", "title", title, "error", err)
		return nil, fmt.Errorf("storing item: %w", err)
	}
	s.items[title] = it

	s.logger.Debug("item created", "title", title)
	s.record(ctx, activity.TypeItemCreated, title, fmt.Sprintf("created %q", title))

	out := it.Clone()
	return &out, nil
}

// Get fetches an item by title.
func (s *Service) Get(_ context.Context, title string) (*ListItem, error) {
	title = normalizeTitle(title)

	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[title]
	if !ok {
		return nil, notFound(title)
	}
	out := it.Clone()
	return &out, nil
}

// Exists reports whether an item is stored under title.
func (s *Service) Exists(_ context.Context, title string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[normalizeTitle(title)]
	return ok
}

// Remove deletes an item from the index and the repository.
func (s *Service) Remove(ctx context.Context, title string) error {
	title = normalizeTitle(title)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[title]; !ok {
		return notFound(title)
	}

	found, err := s.repo.Delete(ctx, title)
	if err != nil {
		s.logger.Error("failed to delete item", "title", title, "error", err)
		return fmt.Errorf("deleting item: %w", err)
	}
	if !found {
		s.logger.Warn("item missing from storage", "title", title)
	}
	delete(s.items, title)

	s.logger.Debug("item removed", "title", title)
	s.record(ctx, activity.TypeItemRemoved, title, fmt.Sprintf("removed %q", title))
	return nil
}

// Rename moves an item to a new title, keeping every other field.
func (s *Service) Rename(ctx context.Context, oldTitle, newTitle string) (*ListItem, error) {
	newTitle = normalizeTitle(newTitle)
	if newTitle == "" {
		return nil, ErrInvalidTitle
	}
	oldTitle = normalizeTitle(oldTitle)

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.items[oldTitle]
	if !ok {
		return nil, notFound(oldTitle)
	}
	if newTitle == oldTitle {
		out := cur.Clone()
		return &out, nil
	}
	if _, taken := s.items[newTitle]; taken {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, newTitle)
	}

	renamed := cur.Clone()
	renamed.Title = newTitle
	if err := s.renameStored(ctx, oldTitle, &renamed); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, newTitle)
		}
		s.logger.Error("failed to rename item", "title", oldTitle, "new_title", newTitle, "error", err)
		return nil, fmt.Errorf("renaming item: %w", err)
	}

	delete(s.items, oldTitle)
	s.items[newTitle] = renamed

	s.logger.Debug("item renamed", "title", oldTitle, "new_title", newTitle)
	s.record(ctx, activity.TypeItemRenamed, newTitle, fmt.Sprintf("renamed %q to %q", oldTitle, newTitle))

	out := renamed.Clone()
	return &out, nil
}

// UpdateDescription replaces the description of an item.
func (s *Service) UpdateDescription(ctx context.Context, title, text string) (*ListItem, error) {
	return s.update(ctx, title, func(it *ListItem) (activity.Type, string, error) {
		it.Description = text
		return activity.TypeItemUpdated, "description updated", nil
	})
}

// UpdateDueDate sets the due date of an item; nil clears it.
func (s *Service) UpdateDueDate(ctx context.Context, title string, due *time.Time) (*ListItem, error) {
	return s.update(ctx, title, func(it *ListItem) (activity.Type, string, error) {
		if due == nil {
			it.DueDate = nil
			return activity.TypeItemUpdated, "due date cleared", nil
		}
		d := Naive(*due)
		it.DueDate = &d
		return activity.TypeItemUpdated, "due date set to " + FormatDisplay(d), nil
	})
}

// UpdateStatus moves an item to any status.
func (s *Service) UpdateStatus(ctx context.Context, title string, status Status) (*ListItem, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.update(ctx, title, func(it *ListItem) (activity.Type, string, error) {
		summary := fmt.Sprintf("[%s] -> [%s]", it.Status, status)
		it.Status = status
		return activity.TypeStatusChanged, summary, nil
	})
}

// Changes lists the fields Update replaces. Nil fields are left alone;
// ClearDueDate removes the due date and wins over DueDate.
type Changes struct {
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Status       *Status
}

// Update applies every change in one write, so a storage failure leaves the
// item exactly as it was.
func (s *Service) Update(ctx context.Context, title string, ch Changes) (*ListItem, error) {
	if ch.Status != nil && !ch.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *ch.Status)
	}
	return s.update(ctx, title, func(it *ListItem) (activity.Type, string, error) {
		var parts []string
		typ := activity.TypeItemUpdated
		if ch.Description != nil {
			it.Description = *ch.Description
			parts = append(parts, "description updated")
		}
		switch {
		case ch.ClearDueDate:
			it.DueDate = nil
			parts = append(parts, "due date cleared")
		case ch.DueDate != nil:
			d := Naive(*ch.DueDate)
			it.DueDate = &d
			parts = append(parts, "due date set to "+FormatDisplay(d))
		}
		if ch.Status != nil {
			parts = append(parts, fmt.Sprintf("[%s] -> [%s]", it.Status, *ch.Status))
			it.Status = *ch.Status
			if len(parts) == 1 {
				typ = activity.TypeStatusChanged
			}
		}
		if len(parts) == 0 {
			parts = append(parts, "no changes")
		}
		return typ, strings.Join(parts, "; "), nil
	})
}

// Clear removes every item.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteAll(ctx); err != nil {
		s.logger.Error("failed to clear items", "error", err)
		return fmt.Errorf("clearing items: %w", err)
	}
	count := len(s.items)
	s.items = make(map[string]ListItem)

	s.logger.Debug("items cleared", "count", count)
	s.record(ctx, activity.TypeListCleared, "", fmt.Sprintf("cleared %d items", count))
	return nil
}

// List returns a snapshot of every item in no particular order.
func (s *Service) List(_ context.Context) ([]ListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ListItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it.Clone())
	}
	return out, nil
}

func (s *Service) update(ctx context.Context, title string, mutate func(*ListItem) (activity.Type, string, error)) (*ListItem, error) {
	title = normalizeTitle(title)

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.items[title]
	if !ok {
		return nil, notFound(title)
	}

	next := cur.Clone()
	typ, summary, err := mutate(&next)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Put(ctx, &next); err != nil {
		s.logger.Error("failed to store item", "title", title, "error", err)
		return nil, fmt.Errorf("storing item: %w", err)
	}
	s.items[title] = next

	s.logger.Debug("item updated", "title", title, "change", summary)
	s.record(ctx, typ, title, summary)

	out := next.Clone()
	return &out, nil
}

func (s *Service) renameStored(ctx context.Context, oldTitle string, it *ListItem) error {
	if r, ok := s.repo.(Renamer); ok {
		return r.Rename(ctx, oldTitle, it)
	}

	if err := s.repo.Put(ctx, it); err != nil {
		return err
	}
	if _, err := s.repo.Delete(ctx, oldTitle); err != nil {
		if _, undoErr := s.repo.Delete(ctx, it.Title); undoErr != nil {
			s.logger.Error("failed to roll back rename", "title", oldTitle, "new_title", it.Title, "error", undoErr)
		}
		return err
	}
	return nil
}

func (s *Service) record(ctx context.Context, typ activity.Type, title, summary string) {
	if s.activities == nil {
		return
	}
	entry := &activity.Entry{
		SessionID: s.sessionID,
		ItemTitle: title,
		Type:      typ,
		Summary:   summary,
		CreatedAt: s.now(),
	}
	if err := s.activities.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("failed to record activity", "type", typ, "title", title, "error", err)
	}
}

func normalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

func notFound(title string) error {
	return fmt.Errorf("%w: %q", ErrItemNotFound, title)
}
