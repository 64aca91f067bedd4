// Package console drives the to-do list through numbered text menus.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/todolist/internal/domain/item"
)

// ItemStore is the item store the menus operate on.
type ItemStore interface {
	Create(ctx context.Context, req item.CreateRequest) (*item.ListItem, error)
	Get(ctx context.Context, title string) (*item.ListItem, error)
	Exists(ctx context.Context, title string) bool
	Remove(ctx context.Context, title string) error
	Rename(ctx context.Context, oldTitle, newTitle string) (*item.ListItem, error)
	UpdateDescription(ctx context.Context, title, text string) (*item.ListItem, error)
	UpdateDueDate(ctx context.Context, title string, due *time.Time) (*item.ListItem, error)
	UpdateStatus(ctx context.Context, title string, status item.Status) (*item.ListItem, error)
	Clear(ctx context.Context) error
	List(ctx context.Context) ([]item.ListItem, error)
}

// Menu is the top-level menu loop.
type Menu struct {
	store  ItemStore
	in     LineSource
	out    io.Writer
	logger *slog.Logger
}

// NewMenu creates a Menu reading from in and printing to out.
func NewMenu(store ItemStore, in LineSource, out io.Writer, logger *slog.Logger) *Menu {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Menu{store: store, in: in, out: out, logger: logger}
}

// Run shows the main menu until the user exits or input ends. Input and
// domain errors are reported and the menu is shown again; only failures of
// the line source itself are returned.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprint(m.out, welcome)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(m.out, mainMenu)
		line, err := m.in.ReadLine(promptOption)
		if err != nil {
			return m.finish(err)
		}

		option, err := parseOption(line, mainMenuOptions)
		if err != nil {
			m.logger.Debug("rejected main menu input", "input", line)
			reportError(m.out, err)
			continue
		}
		if option == mainMenuOptions {
			return m.finish(nil)
		}

		if err := m.dispatch(ctx, option); err != nil {
			if isInputFailure(err) {
				return m.finish(errors.Unwrap(err))
			}
			m.logger.Debug("main menu action failed", "option", option, "error", err)
			reportError(m.out, err)
		}
	}
}

func (m *Menu) finish(err error) error {
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading input: %w", err)
	}
	fmt.Fprintln(m.out, "\nGoodbye.")
	return nil
}

func (m *Menu) dispatch(ctx context.Context, option int) error {
	switch option {
	case 1:
		return m.showAll(ctx)
	case 2:
		return m.add(ctx)
	case 3:
		return m.remove(ctx)
	case 4:
		return m.clear(ctx)
	case 5:
		return m.update(ctx)
	}
	return fmt.Errorf("%w: %d", ErrInvalidOption, option)
}

func (m *Menu) showAll(ctx context.Context) error {
	items, err := m.store.List(ctx)
	if err != nil {
		return err
	}
	renderList(m.out, items)
	return nil
}

// add asks for the title first, then the remaining fields, creates the item
// and continues in the item editor.
func (m *Menu) add(ctx context.Context) error {
	title, err := m.in.ReadLine(promptTitle)
	if err != nil {
		return inputFailure{err}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title cannot be blank", item.ErrInvalidTitle)
	}
	if m.store.Exists(ctx, title) {
		return fmt.Errorf("%w: an item named '%s' already exists", item.ErrDuplicateTitle, title)
	}

	description, err := m.in.ReadLine(promptDescription)
	if err != nil {
		return inputFailure{err}
	}

	var due *time.Time
	for {
		text, err := m.in.ReadLine(promptDueDate)
		if err != nil {
			return inputFailure{err}
		}
		if text == "" {
			break
		}
		parsed, err := item.ParseDueDate(text)
		if err != nil {
			reportError(m.out, err)
			continue
		}
		due = &parsed
		break
	}

	created, err := m.store.Create(ctx, item.CreateRequest{Title: title, Description: description, DueDate: due})
	if err != nil {
		return err
	}
	reportSuccess(m.out, "\n%s has been added to your to-do list.", created.Title)

	return newEditor(m, created.Title).run(ctx)
}

func (m *Menu) remove(ctx context.Context) error {
	title, err := m.in.ReadLine(promptTitle)
	if err != nil {
		return inputFailure{err}
	}
	if err := m.store.Remove(ctx, title); err != nil {
		return err
	}
	reportSuccess(m.out, "\n%s has been removed from your to-do list.", strings.TrimSpace(title))
	return nil
}

func (m *Menu) clear(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	reportSuccess(m.out, "\nThe to-do list has been cleared.")
	return nil
}

func (m *Menu) update(ctx context.Context) error {
	title, err := m.in.ReadLine(promptTitle)
	if err != nil {
		return inputFailure{err}
	}
	selected, err := m.store.Get(ctx, title)
	if err != nil {
		return err
	}
	return newEditor(m, selected.Title).run(ctx)
}
