package catalog

import (
	"strings"

	"github.com/culinary/backend/internal/domain/shared"
)

// ItemSupplier is a row of the item's supplier table
type ItemSupplier struct {
	Supplier  string
	IsPrimary bool
	Idx       int
}

// Item is a sellable product. Kitchen items are routed to a kitchen company on
// order split, other items to the company owning their brand.
type Item struct {
	shared.BaseAggregateRoot
	Code            string
	Name            string
	ItemGroup       string
	StockUOM        string
	Description     string
	Brand           string
	IsSalesItem     bool
	IsKitchenItem   bool
	Disabled        bool
	Suppliers       []ItemSupplier
	SupplierDisplay string
}

// NewItem creates an enabled sales item
func NewItem(code, name string) (*Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_CODE", "Item code cannot be empty")
	}
	if len(code) > 140 {
		return nil, shared.NewDomainError("INVALID_ITEM_CODE", "Item code cannot exceed 140 characters")
	}
	if strings.TrimSpace(name) == "" {
		name = code
	}
	item := &Item{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              strings.TrimSpace(name),
		StockUOM:          "Nos",
		IsSalesItem:       true,
	}
	return item, nil
}

// SetSuppliers replaces the supplier table, renumbering rows from 1
func (i *Item) SetSuppliers(rows []ItemSupplier) error {
	seen := make(map[string]bool, len(rows))
	out := make([]ItemSupplier, 0, len(rows))
	for _, r := range rows {
		r.Supplier = strings.TrimSpace(r.Supplier)
		if r.Supplier == "" {
			return shared.NewDomainError("INVALID_SUPPLIER", "Supplier row must name a supplier")
		}
		if seen[r.Supplier] {
			return shared.NewDomainError("DUPLICATE_SUPPLIER", "Supplier "+r.Supplier+" is listed twice")
		}
		seen[r.Supplier] = true
		r.Idx = len(out) + 1
		out = append(out, r)
	}
	i.Suppliers = out
	i.RefreshSupplierDisplay()
	return nil
}

// RefreshSupplierDisplay picks the supplier shown in item lists: the primary
// supplier row if any, otherwise the first row.
func (i *Item) RefreshSupplierDisplay() {
	i.SupplierDisplay = ""
	if len(i.Suppliers) == 0 {
		return
	}
	for _, r := range i.Suppliers {
		if r.IsPrimary {
			i.SupplierDisplay = r.Supplier
			return
		}
	}
	i.SupplierDisplay = i.Suppliers[0].Supplier
}

// HasSupplier reports whether supplier appears in the supplier table
func (i *Item) HasSupplier(supplier string) bool {
	for _, r := range i.Suppliers {
		if r.Supplier == supplier {
			return true
		}
	}
	return false
}
