package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Reason returns the lower_snake form of the code, used as the
// machine-readable reason in API error bodies.
func (e *AppError) Reason() string {
	return strings.ToLower(e.Code)
}

// Details returns the message plus the cause text, if any.
func (e *AppError) Details() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// creates a new AppError with a formatted message
func Newf(code, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// HTTPStatus maps an error to the status class callers expect.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeMissingTarget, CodeInvalidReference, CodeUnsupportedTarget, CodeUnknownAction, CodeInvalidArg:
		return http.StatusBadRequest
	case CodeChannelNotFound, CodeNoVideosFound, CodeTranscriptUnavailable, CodeNotFound:
		return http.StatusNotFound
	case CodeGenerationUnreachable, CodeGenerationMalformed, CodeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error code constants
const (
	CodeInternal   = "INTERNAL_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInvalidArg = "INVALID_ARGUMENT"
	CodeExternal   = "EXTERNAL_ERROR"

	// Request shape
	CodeMissingTarget     = "MISSING_TARGET"
	CodeInvalidReference  = "INVALID_REFERENCE"
	CodeUnsupportedTarget = "UNSUPPORTED_TARGET" // playlists
	CodeUnknownAction     = "UNKNOWN_ACTION"

	// Lookup
	CodeChannelNotFound       = "CHANNEL_NOT_FOUND"
	CodeNoVideosFound         = "NO_VIDEOS_FOUND"
	CodeTranscriptUnavailable = "TRANSCRIPT_UNAVAILABLE" // per video, recovered by the pipeline

	// Text generation collaborator
	CodeGenerationUnreachable = "GENERATION_UNREACHABLE"
	CodeGenerationMalformed   = "GENERATION_MALFORMED"
)
