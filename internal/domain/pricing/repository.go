package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceListRepository defines persistence for price lists
type PriceListRepository interface {
	FindByName(ctx context.Context, name string) (*PriceList, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, list *PriceList) error
}

// ItemPriceRepository defines persistence for item prices
type ItemPriceRepository interface {
	FindByKey(ctx context.Context, key ItemPriceKey) (*ItemPrice, error)
	FindByPriceList(ctx context.Context, priceList string) ([]ItemPrice, error)
	// DeleteOverlapping removes prices of item in priceList whose validity overlaps window
	DeleteOverlapping(ctx context.Context, priceList, itemCode string, window DateRange) (int64, error)
	// CountByItem counts prices of item in priceList
	CountByItem(ctx context.Context, priceList, itemCode string) (int64, error)
	// FindRate returns the rate of item in priceList and currency; ok is false when absent
	FindRate(ctx context.Context, priceList, itemCode, currency string) (rate decimal.Decimal, ok bool, err error)
	// FindRates returns rates of several items in priceList and currency, keyed by item code
	FindRates(ctx context.Context, priceList, currency string, itemCodes []string) (map[string]decimal.Decimal, error)
	// FindLatestSellingRate returns the newest selling rate of item in currency across all lists
	FindLatestSellingRate(ctx context.Context, itemCode, currency string) (rate decimal.Decimal, ok bool, err error)
	// FindAgreementRate returns the rate written for agreement into priceList
	FindAgreementRate(ctx context.Context, priceList, itemCode, currency, agreement string) (rate decimal.Decimal, ok bool, err error)
	Save(ctx context.Context, price *ItemPrice) error
}

// CurrencyExchangeRepository defines persistence for exchange rates
type CurrencyExchangeRepository interface {
	// FindLatest returns the newest rate dated on or before date; shared.ErrNotFound when none
	FindLatest(ctx context.Context, from, to string, date time.Time) (*CurrencyExchange, error)
	Save(ctx context.Context, rate *CurrencyExchange) error
}
