package router

import (
	"github.com/culinary/backend/internal/infrastructure/auth"
	"github.com/culinary/backend/internal/infrastructure/config"
	"github.com/culinary/backend/internal/infrastructure/logger"
	"github.com/culinary/backend/internal/interfaces/http/handler"
	"github.com/culinary/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

// EngineConfig carries everything the HTTP engine needs besides handlers
type EngineConfig struct {
	ServiceName      string
	HTTP             config.HTTPConfig
	Swagger          config.SwaggerConfig
	TracingEnabled   bool
	ProfilingEnabled bool
	// JWT is nil when bearer authentication is disabled
	JWT         *auth.JWTService
	RateLimiter *middleware.RateLimiter
	Meter       metric.Meter
	Logger      *zap.Logger
}

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	System     *handler.SystemHandler
	Partner    *handler.PartnerHandler
	Catalog    *handler.CatalogHandler
	Pricing    *handler.PricingHandler
	Agreement  *handler.AgreementHandler
	SalesOrder *handler.SalesOrderHandler
	Proforma   *handler.ProformaHandler
}

// NewEngine builds the gin engine with the full middleware chain and every
// API route under /api/v1.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	meter := cfg.Meter
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(cfg.ServiceName)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfigFrom(cfg.HTTP)))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.JWT != nil {
		engine.Use(middleware.JWTAuth(middleware.DefaultJWTConfig(cfg.JWT, log)))
	}
	if cfg.TracingEnabled {
		engine.Use(middleware.TracingAttributeInjector())
		engine.Use(middleware.SpanErrorMarker())
	}
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}
	engine.Use(middleware.HTTPMetrics(meter, log))
	engine.Use(middleware.Profiling(cfg.ProfilingEnabled))

	engine.GET("/health", h.System.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, g := range DomainGroups(h) {
		r.Register(g)
	}
	r.Setup()

	return engine
}

// DomainGroups returns the API route groups in mount order
func DomainGroups(h Handlers) []*DomainGroup {
	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health).
		GET("/system/info", h.System.GetSystemInfo)

	partners := NewDomainGroup("partner", "/partners")
	partners.Group("companies", "/companies").
		POST("", h.Partner.CreateCompany).
		GET("", h.Partner.ListCompanies).
		GET("/:name", h.Partner.GetCompany)
	partners.Group("customers", "/customers").
		POST("", h.Partner.CreateCustomer).
		GET("", h.Partner.ListCustomers).
		GET("/:name", h.Partner.GetCustomer)
	partners.Group("suppliers", "/suppliers").
		POST("", h.Partner.CreateSupplier).
		GET("", h.Partner.ListSuppliers).
		GET("/:name", h.Partner.GetSupplier)
	partners.Group("addresses", "/addresses").
		POST("", h.Partner.CreateAddress).
		GET("", h.Partner.ListAddresses).
		GET("/:name", h.Partner.GetAddress)
	partners.Group("brands", "/brands").
		POST("", h.Partner.CreateBrand).
		GET("", h.Partner.ListBrands).
		GET("/:name", h.Partner.GetBrand)

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.Group("items", "/items").
		POST("", h.Catalog.CreateItem).
		GET("", h.Catalog.ListItems).
		GET("/by-supplier", h.Catalog.SearchBySupplier).
		GET("/by-customer-agreement", h.Catalog.SearchByCustomerAgreement).
		GET("/:code", h.Catalog.GetItem).
		PUT("/:code", h.Catalog.UpdateItem)

	pricing := NewDomainGroup("pricing", "/pricing")
	pricing.GET("/supplier-items", h.Pricing.SupplierItems).
		POST("/currency-exchanges", h.Pricing.CreateCurrencyExchange).
		GET("/item-prices", h.Pricing.ListItemPrices)

	agreements := NewDomainGroup("agreement", "/agreements")
	agreements.POST("", h.Agreement.Create).
		GET("", h.Agreement.List).
		GET("/check-active", h.Agreement.CheckActive).
		POST("/replace", h.Agreement.Replace).
		POST("/update-statuses", h.Agreement.UpdateStatuses).
		GET("/:id", h.Agreement.Get).
		PUT("/:id", h.Agreement.Update).
		POST("/:id/submit", h.Agreement.Submit).
		POST("/:id/cancel", h.Agreement.Cancel).
		POST("/:id/update-after-submit", h.Agreement.UpdateAfterSubmit).
		GET("/:id/current-prices", h.Agreement.CurrentPrices)

	trade := NewDomainGroup("trade", "/trade")
	trade.Group("sales-orders", "/sales-orders").
		POST("", h.SalesOrder.Create).
		GET("", h.SalesOrder.List).
		GET("/item-price", h.SalesOrder.ItemPrice).
		GET("/:name", h.SalesOrder.Get).
		PUT("/:name", h.SalesOrder.Update).
		POST("/:name/submit", h.SalesOrder.Submit).
		POST("/:name/cancel", h.SalesOrder.Cancel).
		POST("/:name/split", h.SalesOrder.Split).
		GET("/:name/children", h.SalesOrder.Children)

	proformas := NewDomainGroup("proforma", "/proformas")
	proformas.POST("/orders/:name", h.Proforma.CreateForOrder).
		POST("/orders/:name/fix-totals", h.Proforma.FixTotals).
		GET("/orders/:name", h.Proforma.ListForOrder).
		GET("/:name", h.Proforma.Get).
		GET("/:name/document", h.Proforma.Document)

	return []*DomainGroup{system, partners, catalog, pricing, agreements, trade, proformas}
}
