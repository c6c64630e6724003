package partner

import (
	"context"

	"github.com/culinary/backend/internal/domain/shared"
)

// CompanyRepository defines persistence for companies
type CompanyRepository interface {
	FindByName(ctx context.Context, name string) (*Company, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, int64, error)
	// FindByNamePrefix returns companies whose name starts with prefix, ordered by name
	FindByNamePrefix(ctx context.Context, prefix string) ([]Company, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	// DefaultCurrency returns the default currency of the first non-group company, or ""
	DefaultCurrency(ctx context.Context) (string, error)
	Save(ctx context.Context, company *Company) error
}

// CustomerRepository defines persistence for customers
type CustomerRepository interface {
	FindByName(ctx context.Context, name string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, int64, error)
	Save(ctx context.Context, customer *Customer) error
}

// SupplierRepository defines persistence for suppliers
type SupplierRepository interface {
	FindByName(ctx context.Context, name string) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, int64, error)
	Save(ctx context.Context, supplier *Supplier) error
}

// AddressRepository defines persistence for addresses
type AddressRepository interface {
	FindByName(ctx context.Context, name string) (*Address, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Address, int64, error)
	Save(ctx context.Context, address *Address) error
}

// BrandRepository defines persistence for brands
type BrandRepository interface {
	FindByName(ctx context.Context, name string) (*Brand, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, int64, error)
	Save(ctx context.Context, brand *Brand) error
}
