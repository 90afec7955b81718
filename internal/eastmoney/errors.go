package eastmoney

import "fmt"

// ErrorType represents the category of error returned by the Eastmoney API.
type ErrorType string

const (
	// ErrorTypeRateLimit indicates the request was rejected due to rate limiting (HTTP 429)
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeServer indicates a server error (HTTP 5xx)
	ErrorTypeServer ErrorType = "server"
	// ErrorTypeClient indicates a client error (HTTP 4xx except 429)
	ErrorTypeClient ErrorType = "client"
	// ErrorTypeUnknown indicates an error of unknown type
	ErrorTypeUnknown ErrorType = "unknown"
)

// APIError represents a non-success HTTP response from the Eastmoney API.
// The refresh engine does not distinguish error categories, every error
// counts as one invalid attempt, but the category is kept for logs.
type APIError struct {
	Type       ErrorType
	StatusCode int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("eastmoney %s error (status %d)", e.Type, e.StatusCode)
}

// classifyStatus classifies an HTTP status code into an APIError.
func classifyStatus(statusCode int) *APIError {
	switch {
	case statusCode == 429:
		return &APIError{Type: ErrorTypeRateLimit, StatusCode: statusCode}
	case statusCode >= 500:
		return &APIError{Type: ErrorTypeServer, StatusCode: statusCode}
	case statusCode >= 400:
		return &APIError{Type: ErrorTypeClient, StatusCode: statusCode}
	default:
		return &APIError{Type: ErrorTypeUnknown, StatusCode: statusCode}
	}
}
