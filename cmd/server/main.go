package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	agreementapp "github.com/culinary/backend/internal/application/agreement"
	catalogapp "github.com/culinary/backend/internal/application/catalog"
	partnerapp "github.com/culinary/backend/internal/application/partner"
	pricingapp "github.com/culinary/backend/internal/application/pricing"
	proformaapp "github.com/culinary/backend/internal/application/proforma"
	tradeapp "github.com/culinary/backend/internal/application/trade"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/auth"
	"github.com/culinary/backend/internal/infrastructure/cache"
	"github.com/culinary/backend/internal/infrastructure/config"
	"github.com/culinary/backend/internal/infrastructure/event"
	"github.com/culinary/backend/internal/infrastructure/logger"
	"github.com/culinary/backend/internal/infrastructure/migration"
	"github.com/culinary/backend/internal/infrastructure/persistence"
	"github.com/culinary/backend/internal/infrastructure/scheduler"
	"github.com/culinary/backend/internal/infrastructure/storage"
	"github.com/culinary/backend/internal/infrastructure/telemetry"
	"github.com/culinary/backend/internal/interfaces/http/handler"
	"github.com/culinary/backend/internal/interfaces/http/middleware"
	"github.com/culinary/backend/internal/interfaces/http/router"
	"github.com/culinary/backend/migrations"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/culinary/backend/docs"
)

//go:generate swag init -g cmd/server/main.go -o docs --parseInternal

//	@title			Culinary Order API
//	@version		1.0
//	@description	Supplier agreements, agreement-priced sales orders, kitchen and brand order splitting, and proforma invoices.

//	@contact.name	Culinary Backend Team

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const (
	version              = "1.0.0"
	statusRefreshJobName = "agreement_status_refresh"
	shutdownTimeout      = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry first so everything below logs, traces and measures through it
	logProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	log := logProvider.Bridge(baseLog, cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level))
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Culinary Order API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	meter := meterProvider.Meter(cfg.Telemetry.ServiceName)
	businessMetrics, err := telemetry.NewBusinessMetrics(meter, log)
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.GormConfigFor(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	dbTracing.DBName = cfg.Database.DBName
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	if err := runMigrations(db, log); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	priceListRepo := persistence.NewGormPriceListRepository(db.DB)
	itemPriceRepo := persistence.NewGormItemPriceRepository(db.DB)
	exchangeRepo := persistence.NewGormCurrencyExchangeRepository(db.DB)
	agreementRepo := persistence.NewGormAgreementRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	proformaRepo := persistence.NewGormProformaRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)
	naming := persistence.NewGormNamingSeries(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Infrastructure
	eventBus := event.NewInMemoryEventBus(log)
	idempotencyStore := cache.NewIdempotencyStore(ctx, cfg.Redis, log)
	defer func() {
		_ = idempotencyStore.Close()
	}()
	documents, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize document storage", zap.Error(err))
	}

	// Application services
	clock := shared.SystemClock{}
	pricingSettings := pricingapp.Settings{
		StandardPriceList: cfg.Business.StandardPriceList,
		FallbackCurrency:  cfg.Business.FallbackCurrency,
	}
	tradeSettings := tradeapp.Settings{
		SplitCompany:         cfg.Business.SplitCompany,
		KitchenCompanyPrefix: cfg.Business.KitchenCompanyPrefix,
		FallbackCurrency:     cfg.Business.FallbackCurrency,
	}

	rateService := pricingapp.NewRateService(itemPriceRepo, exchangeRepo, itemRepo, supplierRepo, companyRepo,
		pricingSettings, log)
	priceSync := pricingapp.NewPriceSyncService(priceListRepo, itemPriceRepo, rateService, log)
	agreementService := agreementapp.NewService(agreementRepo, itemRepo, itemPriceRepo, rateService, priceSync,
		txManager, naming, clock, log)

	pricer := tradeapp.NewAgreementPricer(agreementRepo, rateService, clock, tradeSettings, log)
	salesOrderService := tradeapp.NewSalesOrderService(salesOrderRepo, itemRepo, pricer, txManager, naming, clock, log)
	splitter := tradeapp.NewOrderSplitter(salesOrderRepo, itemRepo, companyRepo, addressRepo, brandRepo,
		naming, txManager, tradeSettings, log)
	proformaService := proformaapp.NewService(proformaRepo, salesOrderRepo, customerRepo, companyRepo,
		attachmentRepo, documents, proformaapp.NewJSONRenderer(), naming, txManager, clock,
		cfg.Business.ProformaDueDays, log)

	companyService := partnerapp.NewCompanyService(companyRepo, addressRepo, log)
	partyService := partnerapp.NewPartyService(customerRepo, supplierRepo)
	addressService := partnerapp.NewAddressService(addressRepo)
	brandService := partnerapp.NewBrandService(brandRepo, companyRepo)
	itemService := catalogapp.NewItemService(itemRepo, brandRepo, clock, log)

	// Event wiring: a submitted parent order is split exactly once
	splitHandler := tradeapp.NewOrderSplitHandler(splitter, salesOrderRepo, log)
	eventBus.Subscribe(event.NewIdempotentHandler(splitHandler, idempotencyStore, log))
	eventBus.Subscribe(event.NewMetricsHandler(businessMetrics))
	salesOrderService.SetEventPublisher(eventBus)
	splitter.SetEventPublisher(eventBus)
	agreementService.SetEventPublisher(eventBus)
	proformaService.SetEventPublisher(eventBus)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Daily agreement status refresh
	var cron *scheduler.CronTrigger
	if cfg.Scheduler.Enabled {
		cron, err = scheduler.NewCronTrigger(scheduler.CronTriggerConfigFrom(cfg.Scheduler), log,
			scheduler.JobFunc{
				JobName: statusRefreshJobName,
				Fn: func(ctx context.Context) error {
					res, err := agreementService.UpdateAllStatuses(ctx)
					if err != nil {
						return err
					}
					logger.L(ctx).Info("Agreement statuses refreshed",
						zap.Int("total", res.Total),
						zap.Int("updated", res.Updated),
						zap.Int("cancelled", res.Cancelled),
					)
					return nil
				},
			},
		)
		if err != nil {
			log.Fatal("Failed to create scheduler", zap.Error(err))
		}
		cron.SetJobObserver(businessMetrics.RecordJobRun)
		if err := cron.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	var jwtService *auth.JWTService
	if cfg.JWT.Enabled {
		jwtService = auth.NewJWTService(cfg.JWT)
	}
	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
	}

	engine := router.NewEngine(router.EngineConfig{
		ServiceName:      cfg.Telemetry.ServiceName,
		HTTP:             cfg.HTTP,
		Swagger:          cfg.Swagger,
		TracingEnabled:   tracerProvider.IsEnabled(),
		ProfilingEnabled: profiler.IsEnabled(),
		JWT:              jwtService,
		RateLimiter:      rateLimiter,
		Meter:            meter,
		Logger:           log,
	}, router.Handlers{
		System:     handler.NewSystemHandler(version, db),
		Partner:    handler.NewPartnerHandler(companyService, partyService, addressService, brandService),
		Catalog:    handler.NewCatalogHandler(itemService),
		Pricing:    handler.NewPricingHandler(rateService),
		Agreement:  handler.NewAgreementHandler(agreementService),
		SalesOrder: handler.NewSalesOrderHandler(salesOrderService, splitter),
		Proforma:   handler.NewProformaHandler(proformaService, log),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if cron != nil {
		if err := cron.Stop(shutdownCtx); err != nil {
			log.Error("Scheduler stop failed", zap.Error(err))
		}
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus stop failed", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Profiler stop failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Meter provider shutdown failed", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		baseLog.Error("Log provider shutdown failed", zap.Error(err))
	}
}

// runMigrations brings the schema up to date from the embedded migration set
func runMigrations(db *persistence.Database, log *zap.Logger) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.NewEmbedded(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	return m.Up()
}
