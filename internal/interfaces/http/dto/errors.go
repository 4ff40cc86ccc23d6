package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeForbidden  = "FORBIDDEN"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeTooLarge   = "REQUEST_TOO_LARGE"
)

// statusByCode maps domain error codes to HTTP status codes. Codes not
// listed here fall through to the prefix rules in GetHTTPStatus.
var statusByCode = map[string]int{
	ErrCodeNotFound:   http.StatusNotFound,
	ErrCodeForbidden:  http.StatusForbidden,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeTooLarge:   http.StatusRequestEntityTooLarge,

	// Uniqueness and referential conflicts
	"ALREADY_EXISTS":       http.StatusConflict,
	"CODE_EXISTS":          http.StatusConflict,
	"JOURNAL_IN_USE":       http.StatusConflict,
	"PROJECT_IN_USE":       http.StatusConflict,
	"TRANCHE_RECEIVED":     http.StatusConflict,
	"DEPRECIATION_EXISTS":  http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// State machine refusals: the request is well-formed, the record
	// just is not in a state that permits it
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"ENTRY_VALIDATED":     http.StatusUnprocessableEntity,
	"FISCAL_YEAR_CLOSED":  http.StatusUnprocessableEntity,
	"UNBALANCED_ENTRY":    http.StatusUnprocessableEntity,
	"UNVALIDATED_ENTRIES": http.StatusUnprocessableEntity,
	"DEDUCTION_MISMATCH":  http.StatusUnprocessableEntity,
	"NO_OPEN_FISCAL_YEAR": http.StatusUnprocessableEntity,
	"NOT_TREASURY":        http.StatusUnprocessableEntity,
	"DATE_OUT_OF_RANGE":   http.StatusUnprocessableEntity,
	"ASSET_DISPOSED":      http.StatusUnprocessableEntity,
	"ASSET_NOT_ACTIVE":    http.StatusUnprocessableEntity,
	"ALREADY_RECEIVED":    http.StatusUnprocessableEntity,
	"ALREADY_SUSPENDED":   http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":      http.StatusUnprocessableEntity,
	"CANNOT_DELETE":       http.StatusUnprocessableEntity,
	"CANNOT_UPDATE":       http.StatusUnprocessableEntity,

	"FILE_TOO_LARGE": http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus maps a domain error code to an HTTP status code
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_EXISTS"):
		return http.StatusConflict
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "ALREADY_"):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
