package item

import (
	"strings"
	"time"
)

const (
	// DueDatePattern is the user-facing due-date format.
	DueDatePattern = "yyyy-MM-dd HH:mm"
	// DueDateLayout is DueDatePattern as a Go layout.
	DueDateLayout = "2006-01-02 15:04"
	// CanonicalLayout is the stored and canonical string form of timestamps.
	CanonicalLayout = "2006-01-02T15:04"
	// NoDueDate is the stored sentinel for an absent due date.
	NoDueDate = "None"
)

// Item timestamps are naive wall-clock values. They are held in UTC, which has
// no gaps or repeats, so every well-formed wall-clock time is representable.

// Naive returns the wall-clock reading of t, moved to UTC.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ParseDate parses text with a Go layout into a naive timestamp. The text
// must match the layout exactly, zero padding included.
func ParseDate(text, layout, pattern string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, text, time.UTC)
	if err != nil || t.Format(layout) != text {
		return time.Time{}, &DateFormatError{Text: text, Format: pattern}
	}
	return t, nil
}

// ParseDueDate parses user input in DueDatePattern. Callers treat empty
// input as "no due date" and do not call it.
func ParseDueDate(text string) (time.Time, error) {
	return ParseDate(text, DueDateLayout, DueDatePattern)
}

// FormatCanonical renders t as yyyy-MM-ddTHH:mm.
func FormatCanonical(t time.Time) string {
	return t.Format(CanonicalLayout)
}

// FormatDisplay renders t as yyyy-MM-dd HH:mm.
func FormatDisplay(t time.Time) string {
	return t.Format(DueDateLayout)
}

// FormatStoredDueDate renders a due date for storage, NoDueDate when absent.
func FormatStoredDueDate(due *time.Time) string {
	if due == nil {
		return NoDueDate
	}
	return FormatCanonical(*due)
}

// ParseStoredTimestamp parses a timestamp written by FormatCanonical.
func ParseStoredTimestamp(text string) (time.Time, error) {
	return ParseDate(strings.TrimSpace(text), CanonicalLayout, "yyyy-MM-ddTHH:mm")
}

// ParseStoredDueDate parses a due date written by FormatStoredDueDate.
func ParseStoredDueDate(text string) (*time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == NoDueDate {
		return nil, nil
	}
	t, err := ParseStoredTimestamp(text)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
