// internal/common/errors/errors.go
// Package errors provides standardized error handling for the scoring service.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeRemoteScoringFailed   ErrorCode = "REMOTE_SCORING_FAILED"
	ErrCodeRemoteScoringTimeout  ErrorCode = "REMOTE_SCORING_TIMEOUT"
	ErrCodeRemoteResponseInvalid ErrorCode = "REMOTE_RESPONSE_INVALID"

	ErrCodeConfigurationInvalid ErrorCode = "CONFIGURATION_INVALID"
	ErrCodeWeightTableInvalid   ErrorCode = "WEIGHT_TABLE_INVALID"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeCacheUnavailable         ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeTrackingPublishFailed ErrorCode = "TRACKING_PUBLISH_FAILED"
	ErrCodeInvalidInput          ErrorCode = "INVALID_INPUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewRemoteScoringFailedError creates a retryable remote-service error.
// Within a single scoring call the caller falls back locally instead of
// retrying; the retryable flag applies to fresh top-level requests.
func NewRemoteScoringFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteScoringFailed,
		Message:   "Remote scoring service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRemoteScoringTimeoutError creates a retryable remote timeout error.
func NewRemoteScoringTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteScoringTimeout,
		Message:   "Remote scoring service timeout",
		Details:   "scoring call exceeded the configured timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRemoteResponseInvalidError creates a non-retryable malformed-payload error.
func NewRemoteResponseInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteResponseInvalid,
		Message:   "Remote scoring response failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationInvalidError creates a non-retryable configuration error.
// Configuration errors are fatal at startup, never recovered at call time.
func NewConfigurationInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationInvalid,
		Message:   "Invalid service configuration",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWeightTableInvalidError creates a non-retryable weight-table error.
func NewWeightTableInvalidError(domain string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWeightTableInvalid,
		Message:   "Invalid weight table",
		Details:   fmt.Sprintf("domain: %s, error: %s", domain, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(entity string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("entity: %s, error: %s", entity, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable candidate-search error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Candidate search query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTrackingPublishFailedError creates a non-retryable tracking error.
// Tracking writes are best-effort; this error is logged and swallowed.
func NewTrackingPublishFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTrackingPublishFailed,
		Message:   "Exposure tracking publish failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError creates a non-retryable input validation error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Scoring input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeRemoteScoringFailed,
		ErrCodeRemoteScoringTimeout,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeCacheUnavailable,
		ErrCodeSearchQueryFailed:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "REMOTE"):
		return "REMOTE"
	case strings.Contains(codeStr, "CONFIGURATION") || strings.Contains(codeStr, "WEIGHT"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "CACHE"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "TRACKING"):
		return "TRACKING"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
