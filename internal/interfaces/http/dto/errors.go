package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Ledger error codes
const (
	// ErrCodeLedgerLoad is used when the ledger source cannot be read or parsed
	ErrCodeLedgerLoad = "ERR_LEDGER_LOAD"
	// ErrCodeColumnUnavailable is used when a report needs a column the source lacks
	ErrCodeColumnUnavailable = "ERR_COLUMN_UNAVAILABLE"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeValidationFormat: http.StatusBadRequest,
	ErrCodeValidationRange:  http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeLedgerLoad:        http.StatusInternalServerError,
	ErrCodeColumnUnavailable: http.StatusUnprocessableEntity,
	ErrCodeRequestTooLarge:   http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to the standardized codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"INVALID_INPUT":      ErrCodeInvalidInput,
	"BAD_REQUEST":        ErrCodeBadRequest,
	"LEDGER_LOAD":        ErrCodeLedgerLoad,
	"COLUMN_UNAVAILABLE": ErrCodeColumnUnavailable,
	"VALIDATION_ERROR":   ErrCodeValidation,
	"INTERNAL_ERROR":     ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
