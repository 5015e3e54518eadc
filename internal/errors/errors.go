package errors

import "fmt"

// ErrorCode represents a baitscan error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrTitleTooLarge  ErrorCode = "TITLE_TOO_LARGE" // 413
	ErrBatchTooLarge  ErrorCode = "BATCH_TOO_LARGE" // 413
	ErrCancelled      ErrorCode = "CANCELLED"       // 499
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// BaitError represents a structured error with code, status, and details.
type BaitError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *BaitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *BaitError {
	return &BaitError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a stored analysis cannot be found.
func NewNotFound(identifier string) *BaitError {
	return &BaitError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("analysis not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewTitleTooLarge creates a 413 error when a title to be stored exceeds the size limit.
func NewTitleTooLarge(max, actual int) *BaitError {
	return &BaitError{
		Code:    ErrTitleTooLarge,
		Status:  413,
		Message: fmt.Sprintf("title exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewBatchTooLarge creates a 413 error when a tagging batch has too many titles.
func NewBatchTooLarge(max, actual int) *BaitError {
	return &BaitError{
		Code:    ErrBatchTooLarge,
		Status:  413,
		Message: fmt.Sprintf("batch exceeds maximum size: %d titles (max %d)", actual, max),
		Details: map[string]any{"max_items": max, "actual_items": actual},
	}
}

// NewCancelled creates a 499 error when the caller abandons an operation mid-way.
func NewCancelled(operation string) *BaitError {
	return &BaitError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("%s cancelled", operation),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *BaitError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &BaitError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a BaitError with the given code.
func Is(err error, code ErrorCode) bool {
	if bErr, ok := err.(*BaitError); ok {
		return bErr.Code == code
	}
	return false
}
