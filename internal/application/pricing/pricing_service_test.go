package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/pricing"
	"github.com/culinary/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var dec = decimal.RequireFromString

type fixture struct {
	repos *testutil.Repos
	rates *RateService
	sync  *PriceSyncService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := testutil.NewRepos(t)
	rates := NewRateService(repos.ItemPrices, repos.Exchanges, repos.Items, repos.Suppliers, repos.Companies,
		DefaultSettings(), zap.NewNop())
	return &fixture{
		repos: repos,
		rates: rates,
		sync:  NewPriceSyncService(repos.PriceLists, repos.ItemPrices, rates, zap.NewNop()),
	}
}

func (f *fixture) price(t *testing.T, list, item, currency, rate string, from, upto *time.Time) {
	t.Helper()
	key := pricing.ItemPriceKey{PriceList: list, ItemCode: item, Currency: currency, ValidFrom: from, ValidUpto: upto}
	p, err := pricing.NewItemPrice(key, dec(rate))
	require.NoError(t, err)
	require.NoError(t, f.repos.ItemPrices.Save(context.Background(), p))
}

func on(m time.Month, d int) *time.Time { return testutil.DayPtr(2025, m, d) }

func agreementFor(t *testing.T, items ...agreement.Item) *agreement.Agreement {
	t.Helper()
	a, err := agreement.NewAgreement("AGR-00001", "Cafe Nord", "Fresh Farms",
		testutil.DayPtr(2025, 3, 1), testutil.DayPtr(2025, 3, 31))
	require.NoError(t, err)
	a.SetItems(items)
	return a
}

func TestStandardSellingRate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.price(t, "Wholesale", "TOM", "EUR", "2.10", on(1, 1), nil)
	f.price(t, "Retail", "TOM", "EUR", "2.40", nil, nil)

	rate, err := f.rates.StandardSellingRate(ctx, "TOM", "EUR")
	require.NoError(t, err)
	assert.True(t, dec("2.10").Equal(rate), "dated price wins over open-ended one")

	f.price(t, pricing.StandardSellingPriceList, "TOM", "EUR", "2.50", nil, nil)
	rate, err = f.rates.StandardSellingRate(ctx, "TOM", "EUR")
	require.NoError(t, err)
	assert.True(t, dec("2.50").Equal(rate))

	rate, err = f.rates.StandardSellingRate(ctx, "TOM", "USD")
	require.NoError(t, err)
	assert.True(t, rate.IsZero())
}

func TestStandardSellingRate_ZeroStandardFallsThrough(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.price(t, "Wholesale", "TOM", "EUR", "2.10", on(1, 1), nil)
	f.price(t, pricing.StandardSellingPriceList, "TOM", "EUR", "0", nil, nil)

	rate, err := f.rates.StandardSellingRate(ctx, "TOM", "EUR")
	require.NoError(t, err)
	assert.True(t, dec("2.10").Equal(rate), "got %s", rate)

	sup, err := partner.NewSupplier("Fresh Farms", "EUR")
	require.NoError(t, err)
	require.NoError(t, f.repos.Suppliers.Save(ctx, sup))
	it, err := catalog.NewItem("TOM", "Tomato")
	require.NoError(t, err)
	require.NoError(t, it.SetSuppliers([]catalog.ItemSupplier{{Supplier: "Fresh Farms"}}))
	require.NoError(t, f.repos.Items.Save(ctx, it))

	rows, err := f.rates.SupplierItemsWithStandardPrices(ctx, "Fresh Farms", "EUR")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, dec("2.10").Equal(rows[0].StandardSellingRate), "got %s", rows[0].StandardSellingRate)

	t.Run("sync prices from the fallback rate", func(t *testing.T) {
		a := agreementFor(t, agreement.Item{ItemCode: "TOM", ItemName: "Tomato", Currency: "EUR"})
		require.NoError(t, a.SetDiscountRate(dec("10")))
		require.NoError(t, f.sync.EnsurePriceList(ctx, a))
		require.NoError(t, f.sync.SyncItemPrices(ctx, a))

		prices, err := f.repos.ItemPrices.FindByPriceList(ctx, "Cafe Nord")
		require.NoError(t, err)
		require.Len(t, prices, 1)
		assert.True(t, dec("1.89").Equal(prices[0].Rate), "got %s", prices[0].Rate)
	})
}

func TestConversionRate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	rate, err := f.rates.ConversionRate(ctx, "EUR", "eur", testutil.Day(2025, 3, 1))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1).Equal(rate))

	ce, err := pricing.NewCurrencyExchange("USD", "EUR", testutil.Day(2025, 2, 1), dec("0.92"))
	require.NoError(t, err)
	require.NoError(t, f.repos.Exchanges.Save(ctx, ce))

	rate, err = f.rates.ConversionRate(ctx, "USD", "EUR", testutil.Day(2025, 3, 1))
	require.NoError(t, err)
	assert.True(t, dec("0.92").Equal(rate))

	t.Run("rate dated later falls back to one", func(t *testing.T) {
		rate, err := f.rates.ConversionRate(ctx, "USD", "EUR", testutil.Day(2025, 1, 1))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1).Equal(rate))
	})
}

func TestSupplierItemsWithStandardPrices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	rows, err := f.rates.SupplierItemsWithStandardPrices(ctx, " ", "")
	require.NoError(t, err)
	assert.Empty(t, rows)

	sup, err := partner.NewSupplier("Fresh Farms", "CHF")
	require.NoError(t, err)
	require.NoError(t, f.repos.Suppliers.Save(ctx, sup))

	for _, spec := range []struct{ code, name string }{{"ZUC", "Zucchini"}, {"APL", "Apple"}} {
		it, err := catalog.NewItem(spec.code, spec.name)
		require.NoError(t, err)
		require.NoError(t, it.SetSuppliers([]catalog.ItemSupplier{{Supplier: "Fresh Farms"}}))
		require.NoError(t, f.repos.Items.Save(ctx, it))
	}
	f.price(t, pricing.StandardSellingPriceList, "APL", "CHF", "1.20", nil, nil)
	f.price(t, "Retail", "ZUC", "CHF", "3.00", nil, nil)

	rows, err = f.rates.SupplierItemsWithStandardPrices(ctx, "Fresh Farms", "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "APL", rows[0].ItemCode)
	assert.Equal(t, "CHF", rows[0].Currency)
	assert.True(t, dec("1.20").Equal(rows[0].StandardSellingRate))
	assert.True(t, rows[0].PriceListRate.Equal(rows[0].StandardSellingRate))
	assert.True(t, dec("3.00").Equal(rows[1].StandardSellingRate))

	rows, err = f.rates.SupplierItemsWithStandardPrices(ctx, "Fresh Farms", "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", rows[0].Currency)
	assert.True(t, rows[0].StandardSellingRate.IsZero())
}

func TestEnsurePriceList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := agreementFor(t, agreement.Item{ItemCode: "TOM", PriceListRate: dec("2")})
	require.NoError(t, f.sync.EnsurePriceList(ctx, a))
	assert.Equal(t, "Cafe Nord", a.PriceList)

	list, err := f.repos.PriceLists.FindByName(ctx, "Cafe Nord")
	require.NoError(t, err)
	assert.True(t, list.Enabled)
	assert.Equal(t, "EUR", list.Currency, "fallback currency when neither items nor companies name one")

	list.Disable()
	require.NoError(t, f.repos.PriceLists.Save(ctx, list))
	require.NoError(t, f.sync.EnsurePriceList(ctx, a))
	list, err = f.repos.PriceLists.FindByName(ctx, "Cafe Nord")
	require.NoError(t, err)
	assert.True(t, list.Enabled)
}

func TestSyncItemPrices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := agreementFor(t,
		agreement.Item{ItemCode: "TOM", Currency: "EUR", PriceListRate: dec("1.80")},
		agreement.Item{ItemCode: "CUC", Currency: "EUR", StandardSellingRate: dec("2.00")},
		agreement.Item{ItemCode: "ONI", Currency: "EUR"},
	)
	require.NoError(t, a.SetDiscountRate(dec("10")))
	f.price(t, pricing.StandardSellingPriceList, "ONI", "EUR", "1.00", nil, nil)

	t.Run("missing list only clears overlaps", func(t *testing.T) {
		f.price(t, "Cafe Nord", "TOM", "EUR", "9.99", on(3, 15), on(4, 15))
		require.NoError(t, f.sync.SyncItemPrices(ctx, a))
		n, err := f.repos.ItemPrices.CountByItem(ctx, "Cafe Nord", "TOM")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	require.NoError(t, f.sync.EnsurePriceList(ctx, a))
	f.price(t, "Cafe Nord", "TOM", "EUR", "9.99", on(2, 1), on(3, 1))
	f.price(t, "Cafe Nord", "TOM", "EUR", "5.55", on(4, 1), nil)
	require.NoError(t, f.sync.SyncItemPrices(ctx, a))

	prices, err := f.repos.ItemPrices.FindByPriceList(ctx, "Cafe Nord")
	require.NoError(t, err)
	byItem := map[string][]pricing.ItemPrice{}
	for _, p := range prices {
		byItem[p.ItemCode] = append(byItem[p.ItemCode], p)
	}

	require.Len(t, byItem["TOM"], 2, "the row ending on the first day overlaps, the April row does not")
	assert.True(t, dec("1.80").Equal(byItem["TOM"][0].Rate))
	assert.Equal(t, "AGR-00001", byItem["TOM"][0].Agreement)
	assert.Equal(t, "Cafe Nord", byItem["TOM"][0].Customer)
	assert.True(t, dec("5.55").Equal(byItem["TOM"][1].Rate))

	require.Len(t, byItem["CUC"], 1)
	assert.True(t, dec("1.8").Equal(byItem["CUC"][0].Rate), "row standard rate less ten percent")
	require.Len(t, byItem["ONI"], 1)
	assert.True(t, dec("0.9").Equal(byItem["ONI"][0].Rate), "looked-up standard rate less ten percent")

	rate, ok, err := f.repos.ItemPrices.FindAgreementRate(ctx, "Cafe Nord", "TOM", "EUR", "AGR-00001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, dec("1.80").Equal(rate))

	t.Run("second sync replaces rather than duplicates", func(t *testing.T) {
		require.NoError(t, f.sync.SyncItemPrices(ctx, a))
		n, err := f.repos.ItemPrices.CountByItem(ctx, "Cafe Nord", "CUC")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("cleanup removes the agreement window", func(t *testing.T) {
		removed, err := f.sync.CleanupItemPrices(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)
		n, err := f.repos.ItemPrices.CountByItem(ctx, "Cafe Nord", "TOM")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestSetPriceListEnabled(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.sync.SetPriceListEnabled(ctx, "Nobody", false))

	list, err := pricing.NewSellingPriceList("Cafe Nord", "EUR")
	require.NoError(t, err)
	require.NoError(t, f.repos.PriceLists.Save(ctx, list))

	require.NoError(t, f.sync.SetPriceListEnabled(ctx, "Cafe Nord", false))
	got, err := f.repos.PriceLists.FindByName(ctx, "Cafe Nord")
	require.NoError(t, err)
	assert.False(t, got.Enabled)

	require.NoError(t, f.sync.SetPriceListEnabled(ctx, "Cafe Nord", true))
	got, err = f.repos.PriceLists.FindByName(ctx, "Cafe Nord")
	require.NoError(t, err)
	assert.True(t, got.Enabled)
}

func TestCreateCurrencyExchange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.rates.CreateCurrencyExchange(ctx, CreateCurrencyExchangeRequest{
		FromCurrency: "USD", ToCurrency: "EUR", Date: "01.02.2025", Rate: dec("0.9"),
	})
	require.Error(t, err)

	resp, err := f.rates.CreateCurrencyExchange(ctx, CreateCurrencyExchangeRequest{
		FromCurrency: "usd", ToCurrency: "EUR", Date: "2025-02-01", Rate: dec("0.9"),
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", resp.FromCurrency)
	assert.Equal(t, "2025-02-01", resp.Date)

	_, err = f.rates.ListItemPrices(ctx, "")
	require.Error(t, err)
}
