// Package errors provides structured error handling for AgriAssist
package errors

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

// ErrorCode represents specific error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField  ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// System errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	ErrCodeTimeout  ErrorCode = "TIMEOUT"
	ErrCodeBusy     ErrorCode = "BUSY"

	// Store errors
	ErrCodeStoreError     ErrorCode = "STORE_ERROR"
	ErrCodeStoreCorrupted ErrorCode = "STORE_CORRUPTED"
	ErrCodeQueryFailed    ErrorCode = "QUERY_FAILED"

	// Embedding errors
	ErrCodeEmbedError        ErrorCode = "EMBED_ERROR"
	ErrCodeDimensionMismatch ErrorCode = "DIMENSION_MISMATCH"

	// LLM errors
	ErrCodeLLMError       ErrorCode = "LLM_ERROR"
	ErrCodeLLMTimeout     ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMAPIError    ErrorCode = "LLM_API_ERROR"
	ErrCodeLLMRateLimited ErrorCode = "LLM_RATE_LIMITED"

	// Configuration errors
	ErrCodeConfigError    ErrorCode = "CONFIG_ERROR"
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// File system errors
	ErrCodeFileError    ErrorCode = "FILE_ERROR"
	ErrCodeFileNotFound ErrorCode = "FILE_NOT_FOUND"
)

// AgriError represents a structured error in AgriAssist
type AgriError struct {
	Type       types.ErrorType        `json:"type"`
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"stack_trace,omitempty"`
}

// Error implements the error interface
func (e *AgriError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (caused by: %v)", e.Code, e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AgriError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *AgriError) WithDetail(key string, value interface{}) *AgriError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithStackTrace adds a stack trace to the error
func (e *AgriError) WithStackTrace() *AgriError {
	e.StackTrace = getStackTrace()
	return e
}

// ToTypes converts to types.AgriError
func (e *AgriError) ToTypes() *types.AgriError {
	return &types.AgriError{
		Type:    e.Type,
		Message: e.Message,
		Code:    string(e.Code),
		Details: e.Details,
	}
}

// New creates a new AgriAssist error
func New(errType types.ErrorType, code ErrorCode, message string) *AgriError {
	return &AgriError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// NewWithCause creates a new AgriAssist error with a cause
func NewWithCause(errType types.ErrorType, code ErrorCode, message string, cause error) *AgriError {
	return &AgriError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Validation error constructors

func NewValidationError(message string) *AgriError {
	return New(types.ErrorTypeValidation, ErrCodeValidation, message)
}

func NewInvalidInputError(message string) *AgriError {
	return New(types.ErrorTypeValidation, ErrCodeInvalidInput, message)
}

func NewMissingFieldError(field string) *AgriError {
	return New(types.ErrorTypeValidation, ErrCodeMissingField,
		fmt.Sprintf("missing required field: %s", field)).WithDetail("field", field)
}

// Resource error constructors

func NewNotFoundError(resource string) *AgriError {
	return New(types.ErrorTypeNotFound, ErrCodeNotFound,
		fmt.Sprintf("%s not found", resource)).WithDetail("resource", resource)
}

// System error constructors

func NewInternalError(message string) *AgriError {
	return New(types.ErrorTypeInternal, ErrCodeInternal, message)
}

func NewInternalErrorWithCause(message string, cause error) *AgriError {
	return NewWithCause(types.ErrorTypeInternal, ErrCodeInternal, message, cause)
}

func NewTimeoutError(operation string) *AgriError {
	return New(types.ErrorTypeInternal, ErrCodeTimeout,
		fmt.Sprintf("%s operation timed out", operation)).WithDetail("operation", operation)
}

// NewBusyError signals that a conflicting operation is still in flight.
func NewBusyError(operation string) *AgriError {
	return New(types.ErrorTypeBusy, ErrCodeBusy,
		fmt.Sprintf("still processing a previous %s", operation)).WithDetail("operation", operation)
}

// Store error constructors

func NewStoreError(message string) *AgriError {
	return New(types.ErrorTypeInternal, ErrCodeStoreError, message)
}

func NewStoreErrorWithCause(message string, cause error) *AgriError {
	return NewWithCause(types.ErrorTypeInternal, ErrCodeStoreError, message, cause)
}

// NewStoreCorruptedError marks a durable row that could not be decoded.
// Such rows are skipped during cache load, never fatal.
func NewStoreCorruptedError(id string, cause error) *AgriError {
	return NewWithCause(types.ErrorTypeInternal, ErrCodeStoreCorrupted,
		fmt.Sprintf("corrupt vector row: %s", id), cause).WithDetail("entry_id", id)
}

func NewQueryFailedError(cause error) *AgriError {
	return NewWithCause(types.ErrorTypeInternal, ErrCodeQueryFailed, "query execution failed", cause)
}

// Embedding error constructors

func NewEmbedError(message string) *AgriError {
	return New(types.ErrorTypeInternal, ErrCodeEmbedError, message)
}

func NewDimensionMismatchError(expected, got int) *AgriError {
	return New(types.ErrorTypeValidation, ErrCodeDimensionMismatch,
		fmt.Sprintf("embedding dimension mismatch: expected %d, got %d", expected, got)).
		WithDetail("expected", expected).WithDetail("got", got)
}

// LLM error constructors

func NewLLMError(message string) *AgriError {
	return New(types.ErrorTypeExternal, ErrCodeLLMError, message)
}

func NewLLMAPIError(message string, cause error) *AgriError {
	return NewWithCause(types.ErrorTypeExternal, ErrCodeLLMAPIError, message, cause)
}

func NewLLMTimeoutError(model string) *AgriError {
	return New(types.ErrorTypeExternal, ErrCodeLLMTimeout,
		fmt.Sprintf("LLM request timed out: %s", model)).WithDetail("model", model)
}

func NewLLMRateLimitedError(model string) *AgriError {
	return New(types.ErrorTypeExternal, ErrCodeLLMRateLimited,
		fmt.Sprintf("LLM rate limited: %s", model)).WithDetail("model", model)
}

// Configuration error constructors

func NewConfigError(message string) *AgriError {
	return New(types.ErrorTypeValidation, ErrCodeConfigError, message)
}

func NewConfigNotFoundError(configPath string) *AgriError {
	return New(types.ErrorTypeNotFound, ErrCodeConfigNotFound,
		fmt.Sprintf("configuration file not found: %s", configPath)).WithDetail("config_path", configPath)
}

func NewConfigInvalidError(message string) *AgriError {
	return New(types.ErrorTypeValidation, ErrCodeConfigInvalid, message)
}

// File system error constructors

func NewFileError(message string) *AgriError {
	return New(types.ErrorTypeInternal, ErrCodeFileError, message)
}

func NewFileErrorWithCause(message string, cause error) *AgriError {
	return NewWithCause(types.ErrorTypeInternal, ErrCodeFileError, message, cause)
}

func NewFileNotFoundError(filePath string) *AgriError {
	return New(types.ErrorTypeNotFound, ErrCodeFileNotFound,
		fmt.Sprintf("file not found: %s", filePath)).WithDetail("file_path", filePath)
}

// Helper functions

func getStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var trace strings.Builder
	for {
		frame, more := frames.Next()
		if !more {
			break
		}
		trace.WriteString(fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function))
	}

	return trace.String()
}

// IsAgriError checks if an error is an AgriError
func IsAgriError(err error) bool {
	_, ok := err.(*AgriError)
	return ok
}

// GetAgriError extracts an AgriError from an error
func GetAgriError(err error) *AgriError {
	if agriErr, ok := err.(*AgriError); ok {
		return agriErr
	}
	return nil
}

// IsBusy reports whether err is a busy rejection.
func IsBusy(err error) bool {
	if agriErr := GetAgriError(err); agriErr != nil {
		return agriErr.Code == ErrCodeBusy
	}
	return false
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	if agriErr := GetAgriError(err); agriErr != nil {
		return agriErr.Type == types.ErrorTypeNotFound
	}
	return false
}

// Wrap wraps an error as an AgriError
func Wrap(err error, errType types.ErrorType, code ErrorCode, message string) *AgriError {
	return NewWithCause(errType, code, message, err)
}
