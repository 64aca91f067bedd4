package item

import (
	"fmt"
	"strings"
)

// Status represents the progress of a list item.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusProgress  Status = "PROGRESS"
	StatusCompleted Status = "COMPLETED"
)

// statuses is ordered by index: 0 PENDING, 1 PROGRESS, 2 COMPLETED.
var statuses = [...]Status{StatusPending, StatusProgress, StatusCompleted}

// Statuses returns every status in index order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses[:])
	return out
}

// StatusFromIndex maps 0, 1 and 2 to PENDING, PROGRESS and COMPLETED.
func StatusFromIndex(i int) (Status, error) {
	if i < 0 || i >= len(statuses) {
		return "", &StatusIndexError{Index: i}
	}
	return statuses[i], nil
}

// ParseStatus accepts a status name in any case.
func ParseStatus(name string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, name)
	}
	return s, nil
}

// Valid reports whether s is one of the three statuses.
func (s Status) Valid() bool {
	return s.Index() >= 0
}

// Index returns the position of s in the status set, or -1.
func (s Status) Index() int {
	for i, candidate := range statuses {
		if candidate == s {
			return i
		}
	}
	return -1
}

func (s Status) String() string {
	return string(s)
}
