package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Selection registry errors
	ErrCodeInvalidKey  ErrorCode = "INVALID_KEY"
	ErrCodeInvalidItem ErrorCode = "INVALID_ITEM"

	// Drop-down container errors
	ErrCodeInvalidSelection ErrorCode = "INVALID_SELECTION"

	// Surfaces around the engine
	ErrCodeSourceInvalid ErrorCode = "SOURCE_INVALID"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// Error is a structured error carrying a code and optional details.
type Error struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *Error) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Cause: err}
}

// Is reports whether err, or anything it wraps, carries code.
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	e, ok := err.(*Error)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}
	return e.Code
}

// InvalidKey is returned when a registry mutation is attempted with an empty key.
func InvalidKey() *Error {
	return New(ErrCodeInvalidKey, "invalid selection key")
}

// InvalidItem is returned when a nil item id is added to a selection.
func InvalidItem(key string) *Error {
	return New(ErrCodeInvalidItem, "invalid item id").WithDetail("key", key)
}

// InvalidSelection is returned when a drop-down is asked to commit a
// candidate that is not one of its selectable items.
func InvalidSelection(id string, candidate interface{}) *Error {
	return New(ErrCodeInvalidSelection, "please provide a valid drop-down item for the selection").
		WithDetail("dropdown", id).
		WithDetail("candidate", fmt.Sprintf("%v", candidate))
}

func SourceInvalid(source string, cause error) *Error {
	return Wrap(cause, ErrCodeSourceInvalid, fmt.Sprintf("cannot read items from %s", source)).
		WithDetail("source", source)
}

func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}
