package cli

import (
	"fmt"
	"io"

	"github.com/rpggio/todolist/internal/config"
	"github.com/rpggio/todolist/internal/diskstore"
	"github.com/rpggio/todolist/internal/domain/activity"
	"github.com/rpggio/todolist/internal/domain/item"
	"github.com/rpggio/todolist/internal/memory"
	"github.com/rpggio/todolist/internal/sqlite"
)

type backend struct {
	items      item.Repository
	activities activity.Repository
	closer     io.Closer
	path       string
}

// openBackend opens the storage named by cfg.Store.Backend. Only sqlite
// persists the activity journal; the other backends keep it in memory.
func openBackend(cfg config.Config) (*backend, error) {
	path, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return &backend{
			items:      memory.NewItemRepository(),
			activities: memory.NewActivityRepository(),
		}, nil

	case config.BackendSQLite:
		db, err := sqlite.New(path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return &backend{
			items:      sqlite.NewItemRepository(db),
			activities: sqlite.NewActivityRepository(db),
			closer:     db,
			path:       path,
		}, nil

	case config.BackendDisk:
		return &backend{
			items:      diskstore.New(path),
			activities: memory.NewActivityRepository(),
			path:       path,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.Store.Backend)
}
