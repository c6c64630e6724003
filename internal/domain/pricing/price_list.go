package pricing

import (
	"strings"

	"github.com/culinary/backend/internal/domain/shared"
)

// StandardSellingPriceList is the default name of the list holding list prices
const StandardSellingPriceList = "Standard Selling"

// PriceList groups item prices. Agreement price lists are named after the customer.
type PriceList struct {
	shared.BaseAggregateRoot
	Name     string
	Currency string
	Selling  bool
	Enabled  bool
}

// NewSellingPriceList creates an enabled selling price list
func NewSellingPriceList(name, currency string) (*PriceList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRICE_LIST", "Price list name cannot be empty")
	}
	return &PriceList{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Currency:          strings.ToUpper(currency),
		Selling:           true,
		Enabled:           true,
	}, nil
}

// Enable turns the list on; reports whether anything changed
func (p *PriceList) Enable() bool {
	if p.Enabled {
		return false
	}
	p.Enabled = true
	p.Touch()
	return true
}

// Disable turns the list off; reports whether anything changed
func (p *PriceList) Disable() bool {
	if !p.Enabled {
		return false
	}
	p.Enabled = false
	p.Touch()
	return true
}
