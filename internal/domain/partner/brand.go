package partner

import (
	"strings"

	"github.com/culinary/backend/internal/domain/shared"
)

// Brand groups items produced by one brand company
type Brand struct {
	shared.BaseAggregateRoot
	Name           string
	DefaultCompany string
	// Defaults lists companies from the brand defaults table, in row order
	Defaults []string
}

// NewBrand creates a brand
func NewBrand(name string) (*Brand, error) {
	if err := validateName("brand", name); err != nil {
		return nil, err
	}
	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
	}, nil
}

// ResolveCompany returns the company that fulfils orders for this brand:
// the first brand-default row, then the default company. An empty result
// means the caller should fall back to a company named like the brand.
func (b *Brand) ResolveCompany() string {
	for _, c := range b.Defaults {
		if c != "" {
			return c
		}
	}
	return b.DefaultCompany
}
