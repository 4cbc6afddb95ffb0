// Package errors provides custom error types for the clipvault system.
// These errors enable programmatic error checking and improved debugging
// throughout the catalog and storage layers.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// As is an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the clipvault system
var (
	// ErrNotFound indicates that a requested entry or folder was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that an entry or folder already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorrupt indicates that persisted data failed to decode
	ErrCorrupt = errors.New("corrupt record")

	// ErrMigrationIncomplete indicates a legacy-format migration that did
	// not finish; the legacy file is left in place for retry
	ErrMigrationIncomplete = errors.New("migration incomplete")
)

// NotFoundError represents an error when an entry or folder is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// DuplicateError represents an attempt to add an entry whose identifier is
// already present in the catalog
type DuplicateError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with ID %s already exists", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *DuplicateError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewDuplicateError creates a new DuplicateError
func NewDuplicateError(resource, id string) *DuplicateError {
	return &DuplicateError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure, such as moving an entry
// to a folder that does not exist
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents a decode failure of persisted data. When the failing
// record's identifier or path is known from context it is carried here.
type ParseError struct {
	Format  string // "yaml", "json"
	File    string
	ID      string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	switch {
	case e.ID != "" && e.File != "":
		return fmt.Sprintf("%s parse error for record %s (%s): %s", e.Format, e.ID, e.File, e.Message)
	case e.File != "":
		return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.File, e.Message)
	default:
		return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
	}
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrCorrupt
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "rename", "stat"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// MigrationError represents a failed legacy-format migration. The legacy
// monolithic file is guaranteed untouched when this error is returned.
type MigrationError struct {
	Stage   string // "decode", "write", "verify", "rebuild", "rename"
	Message string
	Err     error
}

// Error implements the error interface
func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration failed during %s: %s", e.Stage, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *MigrationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MigrationError) Is(target error) bool {
	return target == ErrMigrationIncomplete
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(stage, message string, err error) *MigrationError {
	return &MigrationError{Stage: stage, Message: message, Err: err}
}

// ResourceError represents a failure of a catalog operation on a resource
type ResourceError struct {
	Operation string // "add", "remove", "move", "load", "save"
	Resource  string // "animation", "folder", "index", "library"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCorrupt checks if an error is a corrupt record error
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorrupt)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   err.Error(),
		Err:       err,
	}
}
