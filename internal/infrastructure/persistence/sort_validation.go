package persistence

import (
	"strings"

	"github.com/ongcompta/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// applyListOptions applies the validated ordering and pagination of a
// filter to the query. Sort fields go through the whitelist so user
// input never reaches the ORDER BY clause raw.
func applyListOptions(query *gorm.DB, f shared.Filter, allowedFields map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(f.OrderBy, allowedFields, defaultField)
	query = query.Order(field + " " + ValidateSortOrder(f.OrderDir))
	if f.Page > 0 && f.PageSize > 0 {
		query = query.Offset((f.Page - 1) * f.PageSize).Limit(f.PageSize)
	}
	return query
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// AccountSortFields contains allowed sort fields for chart-of-accounts queries
var AccountSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"label":      true,
	"class":      true,
	"active":     true,
}

// EntrySortFields contains allowed sort fields for entries
var EntrySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"date":       true,
	"label":      true,
	"validated":  true,
}

// ProjectSortFields contains allowed sort fields for projects
var ProjectSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"code":         true,
	"name":         true,
	"status":       true,
	"start_date":   true,
	"end_date":     true,
	"total_budget": true,
}

// AdvanceSortFields contains allowed sort fields for cash advances
var AdvanceSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"number":      true,
	"issued_at":   true,
	"beneficiary": true,
	"amount":      true,
	"status":      true,
	"due_date":    true,
}

// AssetSortFields contains allowed sort fields for fixed assets
var AssetSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"code":              true,
	"description":       true,
	"category":          true,
	"status":            true,
	"acquisition_date":  true,
	"acquisition_value": true,
}

// FinancingSortFields contains allowed sort fields for financings
var FinancingSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"reference":      true,
	"amount":         true,
	"status":         true,
	"agreement_date": true,
}

// AuditSortFields contains allowed sort fields for audit records
var AuditSortFields = map[string]bool{
	"id":         true,
	"table_name": true,
	"action":     true,
	"actor":      true,
	"timestamp":  true,
}
