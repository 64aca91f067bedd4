package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/todolist/internal/domain/activity"
	"github.com/rpggio/todolist/internal/domain/item"
)

// APIError represents an MCP tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to
// INTERNAL with the original message.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, item.ErrItemNotFound):
		return &APIError{Code: "ITEM_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_items to see existing titles"}
	case errors.Is(err, item.ErrDuplicateTitle):
		return &APIError{Code: "DUPLICATE_TITLE", Message: err.Error(), RecoveryHint: "Choose a title not already in use"}
	case errors.Is(err, item.ErrInvalidTitle):
		return &APIError{Code: "INVALID_TITLE", Message: err.Error(), RecoveryHint: "Titles cannot be blank"}
	case errors.Is(err, item.ErrInvalidDateFormat):
		return &APIError{Code: "INVALID_DATE_FORMAT", Message: err.Error(), RecoveryHint: "Use " + item.DueDatePattern}
	case errors.Is(err, item.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: err.Error(), RecoveryHint: "Use PENDING, PROGRESS or COMPLETED"}
	case errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
