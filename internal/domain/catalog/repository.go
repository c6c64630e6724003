package catalog

import (
	"context"
	"time"

	"github.com/culinary/backend/internal/domain/shared"
)

// SearchField is the item column a link search matches against
type SearchField string

const (
	SearchFieldName     SearchField = "name"
	SearchFieldItemName SearchField = "item_name"
)

// NormalizeSearchField maps anything outside the allowed columns to "name"
func NormalizeSearchField(s string) SearchField {
	switch SearchField(s) {
	case SearchFieldItemName:
		return SearchFieldItemName
	default:
		return SearchFieldName
	}
}

// ItemSearch holds the common link-search arguments
type ItemSearch struct {
	Text        string
	SearchField SearchField
	Start       int
	PageLen     int
}

// Normalize applies defaults to the paging values
func (s ItemSearch) Normalize() ItemSearch {
	s.SearchField = NormalizeSearchField(string(s.SearchField))
	if s.Start < 0 {
		s.Start = 0
	}
	if s.PageLen <= 0 {
		s.PageLen = 20
	}
	if s.PageLen > 500 {
		s.PageLen = 500
	}
	return s
}

// LikePattern returns the SQL LIKE pattern for the search text
func (s ItemSearch) LikePattern() string {
	if s.Text == "" {
		return "%"
	}
	return "%" + s.Text + "%"
}

// ItemOption is a (code, name) pair returned by link searches
type ItemOption struct {
	Code string `json:"name"`
	Name string `json:"item_name"`
}

// ItemRepository defines persistence for items
type ItemRepository interface {
	FindByCode(ctx context.Context, code string) (*Item, error)
	FindByCodes(ctx context.Context, codes []string) ([]Item, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, int64, error)
	// FindSalesItemsBySupplier returns enabled sales items supplied by supplier, ordered by item name
	FindSalesItemsBySupplier(ctx context.Context, supplier string) ([]Item, error)
	// SearchBySupplier returns items that list supplier, most recently updated first
	SearchBySupplier(ctx context.Context, supplier string, search ItemSearch) ([]ItemOption, error)
	// SearchByCustomerAgreement returns items of the customer's agreements valid on date,
	// most recent agreement start first
	SearchByCustomerAgreement(ctx context.Context, customer string, date time.Time, search ItemSearch) ([]ItemOption, error)
	Save(ctx context.Context, item *Item) error
}
