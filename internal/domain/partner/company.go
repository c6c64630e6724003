package partner

import (
	"strings"

	"github.com/culinary/backend/internal/domain/shared"
)

// Company is a legal entity that can own sales orders. Kitchen companies and
// brand companies receive the child orders produced by an order split.
type Company struct {
	shared.BaseAggregateRoot
	Name            string
	Abbr            string
	DefaultCurrency string
	IsGroup         bool
	DefaultAddress  string // name of the company's default Address
}

// NewCompany creates a company
func NewCompany(name, abbr, currency string) (*Company, error) {
	if err := validateName("company", name); err != nil {
		return nil, err
	}
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}
	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Abbr:              strings.TrimSpace(abbr),
		DefaultCurrency:   strings.ToUpper(currency),
	}, nil
}

// IsKitchen reports whether the company is a kitchen, identified by its name prefix
func (c *Company) IsKitchen(prefix string) bool {
	return prefix != "" && strings.HasPrefix(c.Name, prefix)
}

// SetDefaultAddress links the company to the address used for kitchen routing
func (c *Company) SetDefaultAddress(address string) {
	c.DefaultAddress = strings.TrimSpace(address)
	c.Touch()
}
