package pricing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/pricing"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RateService answers rate questions: standard selling rates, exchange rates
// and the supplier item catalogue with prices.
type RateService struct {
	itemPrices pricing.ItemPriceRepository
	exchanges  pricing.CurrencyExchangeRepository
	items      catalog.ItemRepository
	suppliers  partner.SupplierRepository
	companies  partner.CompanyRepository
	settings   Settings
	logger     *zap.Logger
}

// NewRateService creates a RateService
func NewRateService(
	itemPrices pricing.ItemPriceRepository,
	exchanges pricing.CurrencyExchangeRepository,
	items catalog.ItemRepository,
	suppliers partner.SupplierRepository,
	companies partner.CompanyRepository,
	settings Settings,
	logger *zap.Logger,
) *RateService {
	return &RateService{
		itemPrices: itemPrices,
		exchanges:  exchanges,
		items:      items,
		suppliers:  suppliers,
		companies:  companies,
		settings:   settings,
		logger:     logger,
	}
}

// StandardSellingRate returns the non-zero rate of item in the standard selling
// list for currency, else the newest selling rate in that currency from any list,
// else zero.
func (s *RateService) StandardSellingRate(ctx context.Context, itemCode, currency string) (decimal.Decimal, error) {
	if itemCode == "" {
		return decimal.Zero, nil
	}
	rate, ok, err := s.itemPrices.FindRate(ctx, s.settings.StandardPriceList, itemCode, currency)
	if err != nil {
		return decimal.Zero, err
	}
	// a zero standard rate is unpriced, not free
	if ok && !rate.IsZero() {
		return rate, nil
	}
	rate, ok, err = s.itemPrices.FindLatestSellingRate(ctx, itemCode, currency)
	if err != nil {
		return decimal.Zero, err
	}
	if ok {
		return rate, nil
	}
	return decimal.Zero, nil
}

// ConversionRate returns how many units of to one unit of from is worth on date.
// A missing rate falls back to 1.
func (s *RateService) ConversionRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == "" || to == "" || from == to {
		return decimal.NewFromInt(1), nil
	}
	ce, err := s.exchanges.FindLatest(ctx, from, to, date)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("No exchange rate found, using 1.0",
			zap.String("from", from),
			zap.String("to", to),
			zap.String("date", date.Format(time.DateOnly)),
		)
		return decimal.NewFromInt(1), nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return ce.Rate, nil
}

// DefaultCurrency is the first non-group company's currency, or the configured fallback
func (s *RateService) DefaultCurrency(ctx context.Context) (string, error) {
	cur, err := s.companies.DefaultCurrency(ctx)
	if err != nil {
		return "", err
	}
	if cur == "" {
		return s.settings.FallbackCurrency, nil
	}
	return cur, nil
}

// SupplierItemsWithStandardPrices lists the enabled sales items of supplier with
// their standard selling rate. currency defaults to the supplier's, then the company's.
func (s *RateService) SupplierItemsWithStandardPrices(ctx context.Context, supplierName, currency string) ([]SupplierItemRow, error) {
	supplierName = strings.TrimSpace(supplierName)
	if supplierName == "" {
		return []SupplierItemRow{}, nil
	}
	if currency == "" {
		sup, err := s.suppliers.FindByName(ctx, supplierName)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if sup != nil {
			currency = sup.DefaultCurrency
		}
	}
	if currency == "" {
		var err error
		if currency, err = s.DefaultCurrency(ctx); err != nil {
			return nil, err
		}
	}
	currency = strings.ToUpper(currency)

	items, err := s.items.FindSalesItemsBySupplier(ctx, supplierName)
	if err != nil {
		return nil, err
	}
	codes := make([]string, len(items))
	for i := range items {
		codes[i] = items[i].Code
	}
	standard, err := s.itemPrices.FindRates(ctx, s.settings.StandardPriceList, currency, codes)
	if err != nil {
		return nil, err
	}

	rows := make([]SupplierItemRow, 0, len(items))
	for _, it := range items {
		rate, ok := standard[it.Code]
		if !ok || rate.IsZero() {
			latest, found, err := s.itemPrices.FindLatestSellingRate(ctx, it.Code, currency)
			if err != nil {
				return nil, err
			}
			if found {
				rate = latest
			}
		}
		rows = append(rows, SupplierItemRow{
			ItemCode:            it.Code,
			ItemName:            it.Name,
			ItemGroup:           it.ItemGroup,
			KitchenItem:         it.IsKitchenItem,
			UOM:                 it.StockUOM,
			StandardSellingRate: rate,
			PriceListRate:       rate,
			Currency:            currency,
		})
	}
	return rows, nil
}

// CreateCurrencyExchange records an exchange rate
func (s *RateService) CreateCurrencyExchange(ctx context.Context, req CreateCurrencyExchangeRequest) (*CurrencyExchangeResponse, error) {
	date, err := shared.ParseDate(req.Date)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Date must be formatted as YYYY-MM-DD")
	}
	ce, err := pricing.NewCurrencyExchange(req.FromCurrency, req.ToCurrency, date, req.Rate)
	if err != nil {
		return nil, err
	}
	if err := s.exchanges.Save(ctx, ce); err != nil {
		return nil, err
	}
	resp := ToCurrencyExchangeResponse(ce)
	return &resp, nil
}

// ListItemPrices returns the prices of one price list
func (s *RateService) ListItemPrices(ctx context.Context, priceList string) ([]ItemPriceResponse, error) {
	if strings.TrimSpace(priceList) == "" {
		return nil, shared.NewDomainError("PRICE_LIST_REQUIRED", "price_list is required")
	}
	prices, err := s.itemPrices.FindByPriceList(ctx, priceList)
	if err != nil {
		return nil, err
	}
	out := make([]ItemPriceResponse, len(prices))
	for i := range prices {
		out[i] = ToItemPriceResponse(&prices[i])
	}
	return out, nil
}
