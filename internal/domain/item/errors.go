package item

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTitle indicates an empty or whitespace-only title.
	ErrInvalidTitle = errors.New("invalid item title")
	// ErrDuplicateTitle indicates another item already uses the title.
	ErrDuplicateTitle = errors.New("item already exists")
	// ErrItemNotFound indicates no item is stored under the title.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidDateFormat indicates due-date text that does not match DueDatePattern.
	ErrInvalidDateFormat = errors.New("invalid date format")
	// ErrInvalidStatus indicates a status index or name outside the status set.
	ErrInvalidStatus = errors.New("invalid item status")
)

// DateFormatError carries the rejected text and the expected pattern.
type DateFormatError struct {
	Text   string
	Format string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("'%s' is an invalid format, expected %s", e.Text, e.Format)
}

func (e *DateFormatError) Unwrap() error {
	return ErrInvalidDateFormat
}

// StatusIndexError carries the rejected status index.
type StatusIndexError struct {
	Index int
}

func (e *StatusIndexError) Error() string {
	return fmt.Sprintf("invalid item status index %d, expected 0-%d", e.Index, len(statuses)-1)
}

func (e *StatusIndexError) Unwrap() error {
	return ErrInvalidStatus
}
