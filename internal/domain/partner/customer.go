package partner

import (
	"strings"

	"github.com/culinary/backend/internal/domain/shared"
)

// Customer buys through agreements; its name doubles as the name of its price list
type Customer struct {
	shared.BaseAggregateRoot
	Name            string
	DefaultCurrency string
}

// NewCustomer creates a customer
func NewCustomer(name, currency string) (*Customer, error) {
	if err := validateName("customer", name); err != nil {
		return nil, err
	}
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		DefaultCurrency:   strings.ToUpper(currency),
	}, nil
}

// Supplier provides the items covered by an agreement
type Supplier struct {
	shared.BaseAggregateRoot
	Name            string
	DefaultCurrency string
}

// NewSupplier creates a supplier
func NewSupplier(name, currency string) (*Supplier, error) {
	if err := validateName("supplier", name); err != nil {
		return nil, err
	}
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		DefaultCurrency:   strings.ToUpper(currency),
	}, nil
}
