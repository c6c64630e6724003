package persistence

import (
	"errors"
	"strings"

	"github.com/culinary/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// MasterDataSortFields is shared by the named master-data tables
var MasterDataSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// ItemSortFields contains allowed sort fields for items
var ItemSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"item_name":  true,
	"item_group": true,
	"brand":      true,
}

// AgreementSortFields contains allowed sort fields for agreements
var AgreementSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"customer":   true,
	"supplier":   true,
	"valid_from": true,
	"valid_to":   true,
	"status":     true,
}

// SalesOrderSortFields contains allowed sort fields for sales orders
var SalesOrderSortFields = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"customer":         true,
	"company":          true,
	"transaction_date": true,
	"grand_total":      true,
}

// paginate counts the filtered rows and applies ordering and paging from filter
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) (*gorm.DB, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	f := filter.Normalize()
	field := ValidateSortField(f.OrderBy, allowed, defaultField)
	return query.Order(field + " " + ValidateSortOrder(f.OrderDir)).Offset(f.Offset()).Limit(f.PageSize), total, nil
}

// likeAny adds a case-insensitive LIKE over columns for search
func likeAny(query *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(search) + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		clauses[i] = "LOWER(" + c + ") LIKE ?"
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// translate maps GORM errors onto domain errors
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists.WithCause(err)
	default:
		return err
	}
}

// escapeLike escapes LIKE wildcards in a literal prefix
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
