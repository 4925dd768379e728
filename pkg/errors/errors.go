package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrCancelled    ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Modlist errors
	ErrModlistDirMissing ErrorCode = "MODLIST_DIR_MISSING"
	ErrModlistDirEmpty   ErrorCode = "MODLIST_DIR_EMPTY"
	ErrModlistSelection  ErrorCode = "MODLIST_SELECTION"
	ErrModlistNotHTML    ErrorCode = "MODLIST_NOT_HTML"
	ErrModlistRead       ErrorCode = "MODLIST_READ"

	// Workshop errors
	ErrChangelogFetch ErrorCode = "CHANGELOG_FETCH"
	ErrCacheStat      ErrorCode = "CACHE_STAT"
	ErrCacheEvict     ErrorCode = "CACHE_EVICT"

	// External process errors
	ErrSteamCmd     ErrorCode = "STEAMCMD"
	ErrServerLaunch ErrorCode = "SERVER_LAUNCH"
	ErrCredentials  ErrorCode = "CREDENTIALS"
	ErrNotATerminal ErrorCode = "NOT_A_TERMINAL"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// A3Error represents a structured error with code and details
type A3Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *A3Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *A3Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *A3Error) Is(target error) bool {
	var targetErr *A3Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new A3Error with the given code and message
func New(code ErrorCode, message string) *A3Error {
	return &A3Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new A3Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *A3Error {
	return &A3Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an A3Error
func Wrap(err error, code ErrorCode, message string) *A3Error {
	if err == nil {
		return nil
	}
	return &A3Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *A3Error {
	if err == nil {
		return nil
	}
	return &A3Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *A3Error) WithDetail(key string, value interface{}) *A3Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var a3Err *A3Error
	if errors.As(err, &a3Err) {
		return a3Err.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an A3Error
func GetErrorCode(err error) ErrorCode {
	var a3Err *A3Error
	if errors.As(err, &a3Err) {
		return a3Err.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an A3Error
func GetErrorDetails(err error) map[string]interface{} {
	var a3Err *A3Error
	if errors.As(err, &a3Err) {
		return a3Err.Details
	}
	return nil
}
