package testutil

import (
	"testing"

	"github.com/culinary/backend/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// Repos bundles the GORM repositories over one database
type Repos struct {
	DB          *gorm.DB
	Companies   *persistence.GormCompanyRepository
	Customers   *persistence.GormCustomerRepository
	Suppliers   *persistence.GormSupplierRepository
	Addresses   *persistence.GormAddressRepository
	Brands      *persistence.GormBrandRepository
	Items       *persistence.GormItemRepository
	PriceLists  *persistence.GormPriceListRepository
	ItemPrices  *persistence.GormItemPriceRepository
	Exchanges   *persistence.GormCurrencyExchangeRepository
	Agreements  *persistence.GormAgreementRepository
	Orders      *persistence.GormSalesOrderRepository
	Proformas   *persistence.GormProformaRepository
	Attachments *persistence.GormAttachmentRepository
	Naming      *persistence.GormNamingSeries
	Tx          *persistence.GormTransactionManager
}

// NewRepos builds every repository on a fresh in-memory SQLite database
func NewRepos(t *testing.T) *Repos {
	t.Helper()
	return ReposFor(NewSQLiteDB(t))
}

// ReposFor builds every repository on db
func ReposFor(db *gorm.DB) *Repos {
	return &Repos{
		DB:          db,
		Companies:   persistence.NewGormCompanyRepository(db),
		Customers:   persistence.NewGormCustomerRepository(db),
		Suppliers:   persistence.NewGormSupplierRepository(db),
		Addresses:   persistence.NewGormAddressRepository(db),
		Brands:      persistence.NewGormBrandRepository(db),
		Items:       persistence.NewGormItemRepository(db),
		PriceLists:  persistence.NewGormPriceListRepository(db),
		ItemPrices:  persistence.NewGormItemPriceRepository(db),
		Exchanges:   persistence.NewGormCurrencyExchangeRepository(db),
		Agreements:  persistence.NewGormAgreementRepository(db),
		Orders:      persistence.NewGormSalesOrderRepository(db),
		Proformas:   persistence.NewGormProformaRepository(db),
		Attachments: persistence.NewGormAttachmentRepository(db),
		Naming:      persistence.NewGormNamingSeries(db),
		Tx:          persistence.NewGormTransactionManager(db),
	}
}
