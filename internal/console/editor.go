package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpggio/todolist/internal/domain/item"
)

// editor edits the fields of one stored item. Every change is written
// through the store as soon as it is entered.
type editor struct {
	*Menu
	title string
}

func newEditor(m *Menu, title string) *editor {
	return &editor{Menu: m, title: title}
}

// run shows the item editor menu until the user returns to the main menu.
// Field errors are reported in place and the menu is shown again.
func (e *editor) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		current, err := e.store.Get(ctx, e.title)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, "\nYou are editing:")
		renderItem(e.out, current)

		fmt.Fprintln(e.out, editorMenu)
		line, err := e.in.ReadLine(promptOption)
		if err != nil {
			return inputFailure{err}
		}
		option, err := parseOption(line, editorMenuOptions)
		if err != nil {
			reportError(e.out, err)
			continue
		}

		switch option {
		case 1:
			err = e.editTitle(ctx)
		case 2:
			err = e.editDescription(ctx)
		case 3:
			err = e.editDueDate(ctx)
		case 4:
			err = e.editStatus(ctx, current.Status)
		case 5:
			reportSuccess(e.out, "\n%s has been updated and saved.", e.title)
			return nil
		}

		if err != nil {
			if isInputFailure(err) {
				return err
			}
			e.logger.Debug("item edit failed", "title", e.title, "option", option, "error", err)
			reportError(e.out, err)
		}
	}
}

func (e *editor) editTitle(ctx context.Context) error {
	text, err := e.in.ReadLine(promptNewTitle)
	if err != nil {
		return inputFailure{err}
	}
	renamed, err := e.store.Rename(ctx, e.title, text)
	if err != nil {
		return err
	}
	if renamed.Title != e.title {
		reportSuccess(e.out, "\nTitle updated: [%s] -> [%s]", e.title, renamed.Title)
	}
	e.title = renamed.Title
	return nil
}

func (e *editor) editDescription(ctx context.Context) error {
	text, err := e.in.ReadLine(promptNewDescription)
	if err != nil {
		return inputFailure{err}
	}
	if _, err := e.store.UpdateDescription(ctx, e.title, text); err != nil {
		return err
	}
	reportSuccess(e.out, "\nDescription updated.")
	return nil
}

// editDueDate leaves the due date unchanged on empty input.
func (e *editor) editDueDate(ctx context.Context) error {
	text, err := e.in.ReadLine(promptDueDate)
	if err != nil {
		return inputFailure{err}
	}
	if text == "" {
		faint.Fprintln(e.out, "\nDue date unchanged.")
		return nil
	}
	due, err := item.ParseDueDate(text)
	if err != nil {
		return err
	}
	if _, err := e.store.UpdateDueDate(ctx, e.title, &due); err != nil {
		return err
	}
	reportSuccess(e.out, "\nDue date updated: [%s]", item.FormatDisplay(due))
	return nil
}

// editStatus shows the status menu until a status is chosen or the user goes
// back. An out-of-range status is reported and the status menu shown again.
func (e *editor) editStatus(ctx context.Context, current item.Status) error {
	for {
		fmt.Fprintln(e.out, statusMenu())
		line, err := e.in.ReadLine(promptOption)
		if err != nil {
			return inputFailure{err}
		}
		option, err := parseNumber(line)
		if err != nil {
			reportError(e.out, err)
			continue
		}
		if option == statusBackOption() {
			return nil
		}

		status, err := item.StatusFromIndex(option - 1)
		if err != nil {
			reportError(e.out, fmt.Errorf("status option %d: %w", option, err))
			continue
		}
		if _, err := e.store.UpdateStatus(ctx, e.title, status); err != nil {
			return err
		}
		reportSuccess(e.out, "\nItem status has been updated: [%s] -> [%s]", current, status)
		return nil
	}
}

// inputFailure marks errors from the line source so they end the editor
// instead of being reported as field errors.
type inputFailure struct {
	err error
}

func (f inputFailure) Error() string { return f.err.Error() }

func (f inputFailure) Unwrap() error { return f.err }

func isInputFailure(err error) bool {
	var f inputFailure
	return errors.As(err, &f)
}
