package users

import (
	"errors"
	"fmt"
)

// UserError represents errors related to user operations
type UserError struct {
	Type    string
	UserID  string
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("user error [%s] for user %s: %s (caused by: %v)", e.Type, e.UserID, e.Message, e.Cause)
	}
	return fmt.Sprintf("user error [%s] for user %s: %s", e.Type, e.UserID, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// User error types
const (
	UserErrorTypeNotFound         = "not_found"
	UserErrorTypeInvalidID        = "invalid_id"
	UserErrorTypeValidationFailed = "validation_failed"
)

// NewUserNotFoundError creates an error for when a user is not found
func NewUserNotFoundError(userID string) *UserError {
	return &UserError{
		Type:    UserErrorTypeNotFound,
		UserID:  userID,
		Message: "user not found",
	}
}

// NewInvalidUserIDError creates an error for identifier strings the store cannot parse
func NewInvalidUserIDError(userID string, cause error) *UserError {
	return &UserError{
		Type:    UserErrorTypeInvalidID,
		UserID:  userID,
		Message: "user ID is not a valid identifier",
		Cause:   cause,
	}
}

// NewUserValidationError creates an error for request validation failures
func NewUserValidationError(userID string, message string) *UserError {
	return &UserError{
		Type:    UserErrorTypeValidationFailed,
		UserID:  userID,
		Message: message,
	}
}

// StorageError represents errors related to storage operations
type StorageError struct {
	Type      string
	Operation string
	Message   string
	Cause     error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error [%s] during %s: %s (caused by: %v)", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage error [%s] during %s: %s", e.Type, e.Operation, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Storage error types
const (
	StorageErrorTypeConnectionFailed = "connection_failed"
	StorageErrorTypeQueryFailed      = "query_failed"
)

// NewStorageConnectionError creates an error for storage connection failures
func NewStorageConnectionError(operation string, cause error) *StorageError {
	return &StorageError{
		Type:      StorageErrorTypeConnectionFailed,
		Operation: operation,
		Message:   "failed to connect to storage",
		Cause:     cause,
	}
}

// NewStorageQueryError creates an error for storage query failures
func NewStorageQueryError(operation string, cause error) *StorageError {
	return &StorageError{
		Type:      StorageErrorTypeQueryFailed,
		Operation: operation,
		Message:   "storage query failed",
		Cause:     cause,
	}
}

// IsNotFound reports whether err is a user-not-found error
func IsNotFound(err error) bool {
	var ue *UserError
	return errors.As(err, &ue) && ue.Type == UserErrorTypeNotFound
}

// IsInvalidID reports whether err is a malformed-identifier error
func IsInvalidID(err error) bool {
	var ue *UserError
	return errors.As(err, &ue) && ue.Type == UserErrorTypeInvalidID
}

// IsValidationFailed reports whether err is a request validation error
func IsValidationFailed(err error) bool {
	var ue *UserError
	return errors.As(err, &ue) && ue.Type == UserErrorTypeValidationFailed
}
