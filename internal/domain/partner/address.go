package partner

import (
	"strings"

	"github.com/culinary/backend/internal/domain/shared"
)

// Address is a postal address. Only the pincode takes part in routing.
type Address struct {
	shared.BaseAggregateRoot
	Name         string
	AddressLine1 string
	City         string
	Pincode      string
	Country      string
}

// NewAddress creates an address
func NewAddress(name, line1, city, pincode, country string) (*Address, error) {
	if err := validateName("address", name); err != nil {
		return nil, err
	}
	if len(pincode) > 20 {
		return nil, shared.NewDomainError("INVALID_PINCODE", "Pincode cannot exceed 20 characters")
	}
	return &Address{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		AddressLine1:      line1,
		City:              city,
		Pincode:           strings.TrimSpace(pincode),
		Country:           country,
	}, nil
}
