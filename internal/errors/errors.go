// Package errors provides typed errors for engine orchestration.
// This enables callers to use errors.Is() and errors.As() for specific error handling.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
// Use errors.Is(err, errors.ErrTimeout) to check for specific errors.
var (
	// Engine errors
	ErrEngineNotFound = errors.New("engine executable not found")
	ErrEngineFailed   = errors.New("engine reported failure")
	ErrTimeout        = errors.New("engine timed out")
	ErrOrchestrator   = errors.New("engine could not be run")

	// Input errors
	ErrPathGeneration = errors.New("could not generate output file paths")
	ErrInvalidInput   = errors.New("input is not an existing regular file")

	// Controller errors
	ErrBusy = errors.New("an encryption is already running")

	// Non-fatal: the engine succeeded but its key file could not be read back.
	ErrKeyReadback = errors.New("could not read key file")
)

// EngineError represents a failure at the engine process boundary.
type EngineError struct {
	Op       string // Operation: "probe", "encrypt"
	Path     string // Engine path
	ExitCode int    // -1 when the process never produced an exit status
	Err      error  // Underlying error
}

func (e *EngineError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("engine %s %s: exit code %d: %v", e.Op, e.Path, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("engine %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError.
func NewEngineError(op, path string, exitCode int, err error) *EngineError {
	return &EngineError{Op: op, Path: path, ExitCode: exitCode, Err: err}
}

// FileError represents an error during file operations.
type FileError struct {
	Op   string // Operation: "stat", "read"
	Path string // File path
	Err  error  // Underlying error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Err: err}
}

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string // Field name that failed validation
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Is checks if target matches any of our sentinel errors.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error with the given text.
func New(text string) error {
	return errors.New(text)
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsTimeout checks if the error indicates an engine timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsBusy checks if the error indicates a rejected reentrant request.
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsEngineFault checks if the engine was missing, failed, or could not be run.
func IsEngineFault(err error) bool {
	return errors.Is(err, ErrEngineNotFound) || errors.Is(err, ErrEngineFailed) || errors.Is(err, ErrOrchestrator)
}
