package handler

import (
	"testing"
	"time"

	agreementapp "github.com/culinary/backend/internal/application/agreement"
	catalogapp "github.com/culinary/backend/internal/application/catalog"
	partnerapp "github.com/culinary/backend/internal/application/partner"
	pricingapp "github.com/culinary/backend/internal/application/pricing"
	proformaapp "github.com/culinary/backend/internal/application/proforma"
	tradeapp "github.com/culinary/backend/internal/application/trade"
	"github.com/culinary/backend/internal/infrastructure/cache"
	"github.com/culinary/backend/internal/infrastructure/event"
	"github.com/culinary/backend/internal/infrastructure/storage"
	"github.com/culinary/backend/internal/interfaces/http/middleware"
	"github.com/culinary/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiFixture struct {
	repos  *testutil.Repos
	clock  *testutil.MovableClock
	engine *gin.Engine
}

// newAPIFixture wires every service over in-memory SQLite and mounts the handlers
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	log := zap.NewNop()
	repos := testutil.NewRepos(t)
	clock := testutil.NewMovableClock(2025, 3, 10)

	rates := pricingapp.NewRateService(repos.ItemPrices, repos.Exchanges, repos.Items, repos.Suppliers,
		repos.Companies, pricingapp.DefaultSettings(), log)
	sync := pricingapp.NewPriceSyncService(repos.PriceLists, repos.ItemPrices, rates, log)
	agreements := agreementapp.NewService(repos.Agreements, repos.Items, repos.ItemPrices, rates, sync,
		repos.Tx, repos.Naming, clock, log)

	settings := tradeapp.DefaultSettings()
	pricer := tradeapp.NewAgreementPricer(repos.Agreements, rates, clock, settings, log)
	orders := tradeapp.NewSalesOrderService(repos.Orders, repos.Items, pricer, repos.Tx, repos.Naming, clock, log)
	splitter := tradeapp.NewOrderSplitter(repos.Orders, repos.Items, repos.Companies, repos.Addresses, repos.Brands,
		repos.Naming, repos.Tx, settings, log)
	proformas := proformaapp.NewService(repos.Proformas, repos.Orders, repos.Customers, repos.Companies,
		repos.Attachments, storage.NewMemoryStorage("http://files.test"), proformaapp.NewJSONRenderer(),
		repos.Naming, repos.Tx, clock, 0, log)

	bus := event.NewInMemoryEventBus(log)
	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	bus.Subscribe(event.NewIdempotentHandler(tradeapp.NewOrderSplitHandler(splitter, repos.Orders, log), store, log))
	orders.SetEventPublisher(bus)
	splitter.SetEventPublisher(bus)
	agreements.SetEventPublisher(bus)
	proformas.SetEventPublisher(bus)

	ph := NewPartnerHandler(
		partnerapp.NewCompanyService(repos.Companies, repos.Addresses, log),
		partnerapp.NewPartyService(repos.Customers, repos.Suppliers),
		partnerapp.NewAddressService(repos.Addresses),
		partnerapp.NewBrandService(repos.Brands, repos.Companies),
	)
	ch := NewCatalogHandler(catalogapp.NewItemService(repos.Items, repos.Brands, clock, log))
	prh := NewPricingHandler(rates)
	ah := NewAgreementHandler(agreements)
	sh := NewSalesOrderHandler(orders, splitter)
	pfh := NewProformaHandler(proformas, log)

	middleware.SetupValidator()
	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api/v1")

	p := api.Group("/partners")
	p.POST("/companies", ph.CreateCompany)
	p.GET("/companies", ph.ListCompanies)
	p.GET("/companies/:name", ph.GetCompany)
	p.POST("/customers", ph.CreateCustomer)
	p.GET("/customers/:name", ph.GetCustomer)
	p.POST("/suppliers", ph.CreateSupplier)
	p.POST("/addresses", ph.CreateAddress)
	p.POST("/brands", ph.CreateBrand)
	p.GET("/brands/:name", ph.GetBrand)

	c := api.Group("/catalog/items")
	c.POST("", ch.CreateItem)
	c.GET("", ch.ListItems)
	c.GET("/by-supplier", ch.SearchBySupplier)
	c.GET("/by-customer-agreement", ch.SearchByCustomerAgreement)
	c.GET("/:code", ch.GetItem)
	c.PUT("/:code", ch.UpdateItem)

	pr := api.Group("/pricing")
	pr.GET("/supplier-items", prh.SupplierItems)
	pr.POST("/currency-exchanges", prh.CreateCurrencyExchange)
	pr.GET("/item-prices", prh.ListItemPrices)

	a := api.Group("/agreements")
	a.POST("", ah.Create)
	a.GET("", ah.List)
	a.GET("/check-active", ah.CheckActive)
	a.POST("/replace", ah.Replace)
	a.POST("/update-statuses", ah.UpdateStatuses)
	a.GET("/:id", ah.Get)
	a.PUT("/:id", ah.Update)
	a.POST("/:id/submit", ah.Submit)
	a.POST("/:id/cancel", ah.Cancel)
	a.POST("/:id/update-after-submit", ah.UpdateAfterSubmit)
	a.GET("/:id/current-prices", ah.CurrentPrices)

	so := api.Group("/trade/sales-orders")
	so.POST("", sh.Create)
	so.GET("", sh.List)
	so.GET("/item-price", sh.ItemPrice)
	so.GET("/:name", sh.Get)
	so.PUT("/:name", sh.Update)
	so.POST("/:name/submit", sh.Submit)
	so.POST("/:name/cancel", sh.Cancel)
	so.POST("/:name/split", sh.Split)
	so.GET("/:name/children", sh.Children)

	pf := api.Group("/proformas")
	pf.POST("/orders/:name", pfh.CreateForOrder)
	pf.POST("/orders/:name/fix-totals", pfh.FixTotals)
	pf.GET("/orders/:name", pfh.ListForOrder)
	pf.GET("/:name", pfh.Get)
	pf.GET("/:name/document", pfh.Document)

	return &apiFixture{repos: repos, clock: clock, engine: r}
}
