package errors

import "fmt"

// ErrorType classifies the failures surfaced by the catalog client and the
// per-item media lifecycle.
type ErrorType string

const (
	// Media lifecycle failures. All three surface identically to the
	// lifecycle controller as a transition to Failed; only the stored
	// human-readable reason differs.
	ErrorTypeLoadTimeout       ErrorType = "load_timeout"
	ErrorTypeDecode            ErrorType = "decode"
	ErrorTypeUnsupportedSource ErrorType = "unsupported_source"

	// Catalog client failures.
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeParsing     ErrorType = "parsing"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeServerError ErrorType = "server_error"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents a classified error with an optional platform code
// (HTTP status for catalog errors, media-facility code for decode errors).
type Error struct {
	Type    ErrorType
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// New creates a classified error.
func New(t ErrorType, message string, code int) *Error {
	return &Error{Type: t, Message: message, Code: code}
}

// LoadTimeout builds the error stored when a resource never reaches Ready
// within the load timeout.
func LoadTimeout(message string) *Error {
	return &Error{Type: ErrorTypeLoadTimeout, Message: message}
}

// Decode builds the error stored when the media facility reports a decode
// failure with a platform-specific code.
func Decode(message string, code int) *Error {
	return &Error{Type: ErrorTypeDecode, Message: message, Code: code}
}

// UnsupportedSource builds the error stored for a malformed or missing
// media path.
func UnsupportedSource(message string) *Error {
	return &Error{Type: ErrorTypeUnsupportedSource, Message: message}
}

// IsRetryable reports whether a catalog error type should be retried.
// Lifecycle errors are never retryable: a Failed item stays Failed until a
// full source-change reset.
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork, ErrorTypeServerError:
		return true
	default:
		return false
	}
}

// IsRetryableStatusCode checks if an HTTP status code from the catalog
// backend indicates a retryable error.
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // Network error
		return true
	case 429:
		return true
	case 500, 502, 503, 504:
		return true
	case 401, 403, 404:
		return false
	default:
		return statusCode >= 500
	}
}
