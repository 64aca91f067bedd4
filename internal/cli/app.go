package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rpggio/todolist/internal/config"
	"github.com/rpggio/todolist/internal/domain/activity"
	"github.com/rpggio/todolist/internal/domain/item"
)

// app holds the services of one process run.
type app struct {
	items    *item.Service
	activity *activity.Service
	logger   *slog.Logger
	closers  []io.Closer
}

// openApp builds the logger, opens the configured backend and loads every
// stored item into the item store.
func openApp(ctx context.Context, cfg config.Config, logFallback io.Writer) (*app, error) {
	a := &app{}

	logger, logCloser, err := newLogger(cfg.Log, logFallback)
	if err != nil {
		return nil, err
	}
	if logCloser != nil {
		a.closers = append(a.closers, logCloser)
	}

	sessionID := uuid.NewString()
	a.logger = logger.With("session_id", sessionID)

	store, err := openBackend(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if store.closer != nil {
		a.closers = append(a.closers, store.closer)
	}
	a.logger.Debug("opened store", "backend", cfg.Store.Backend, "path", store.path)

	a.activity = activity.NewService(store.activities, a.logger)
	a.items = item.NewService(store.items, a.activity, a.logger, item.WithSessionID(sessionID))

	if err := a.items.Load(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("%s store: %w", cfg.Store.Backend, err)
	}
	return a, nil
}

// Close releases the store and log file in reverse order of opening.
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
