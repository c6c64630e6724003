package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/culinary/backend/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveTestItem(t *testing.T, repo *GormItemRepository, code, name string, suppliers ...string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(code, name)
	require.NoError(t, err)
	rows := make([]catalog.ItemSupplier, len(suppliers))
	for i, s := range suppliers {
		rows[i] = catalog.ItemSupplier{Supplier: s}
	}
	require.NoError(t, item.SetSuppliers(rows))
	require.NoError(t, repo.Save(context.Background(), item))
	return item
}

func TestGormItemRepository_Suppliers(t *testing.T) {
	repo := NewGormItemRepository(newTestDB(t))
	ctx := context.Background()

	saveTestItem(t, repo, "BREAD", "Sourdough bread", "Bäckerei Kraus")
	saveTestItem(t, repo, "ROLL", "Kaiser roll", "Bäckerei Kraus", "Metzgerei Huber")
	saveTestItem(t, repo, "HAM", "Black Forest ham", "Metzgerei Huber")

	item, err := repo.FindByCode(ctx, "ROLL")
	require.NoError(t, err)
	require.Len(t, item.Suppliers, 2)
	assert.Equal(t, "Bäckerei Kraus", item.SupplierDisplay)

	items, err := repo.FindSalesItemsBySupplier(ctx, "Bäckerei Kraus")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ROLL", items[0].Code, "ordered by item name")

	options, err := repo.SearchBySupplier(ctx, "Metzgerei Huber", catalog.ItemSearch{Text: "ham"})
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, catalog.ItemOption{Code: "HAM", Name: "Black Forest ham"}, options[0])

	options, err = repo.SearchBySupplier(ctx, "Metzgerei Huber", catalog.ItemSearch{Text: "roll", SearchField: catalog.SearchFieldItemName})
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "ROLL", options[0].Code)

	found, err := repo.FindByCodes(ctx, []string{"BREAD", "NOPE"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestGormItemRepository_SearchByCustomerAgreement(t *testing.T) {
	db := newTestDB(t)
	items := NewGormItemRepository(db)
	agreements := NewGormAgreementRepository(db)
	ctx := context.Background()

	saveTestItem(t, items, "BREAD", "Sourdough bread")
	saveTestItem(t, items, "HAM", "Black Forest ham")
	saveTestItem(t, items, "SOUP", "Goulash soup")

	submitted := func(a *agreement.Agreement) {
		require.NoError(t, a.Submit(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, agreements.Save(ctx, a))
	}
	submitted(newTestAgreement(t, "AGR-00001", "Hotel Adler", "Bäckerei Kraus", day(2026, 3, 1), day(2026, 8, 31), "BREAD"))
	submitted(newTestAgreement(t, "AGR-00002", "Hotel Adler", "Metzgerei Huber", day(2026, 6, 1), day(2026, 8, 31), "HAM", "BREAD"))
	submitted(newTestAgreement(t, "AGR-00003", "Hotel Adler", "Metzgerei Huber", day(2026, 11, 1), day(2027, 2, 28), "SOUP"))

	june := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	options, err := items.SearchByCustomerAgreement(ctx, "Hotel Adler", june, catalog.ItemSearch{})
	require.NoError(t, err)
	require.Len(t, options, 2)
	codes := []string{options[0].Code, options[1].Code}
	assert.ElementsMatch(t, []string{"BREAD", "HAM"}, codes)

	options, err = items.SearchByCustomerAgreement(ctx, "Hotel Adler", june, catalog.ItemSearch{Text: "ham"})
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "HAM", options[0].Code)

	options, err = items.SearchByCustomerAgreement(ctx, "Gasthof Post", june, catalog.ItemSearch{})
	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestGormItemRepository_SearchByCustomerAgreement_SubmittedOnly(t *testing.T) {
	db := newTestDB(t)
	items := NewGormItemRepository(db)
	agreements := NewGormAgreementRepository(db)
	ctx := context.Background()
	june := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	saveTestItem(t, items, "BREAD", "Sourdough bread")
	saveTestItem(t, items, "HAM", "Black Forest ham")

	draft := newTestAgreement(t, "AGR-00001", "Hotel Adler", "Bäckerei Kraus", day(2026, 1, 1), day(2026, 12, 31), "BREAD")
	require.NoError(t, agreements.Save(ctx, draft))

	cancelled := newTestAgreement(t, "AGR-00002", "Hotel Adler", "Metzgerei Huber", day(2026, 1, 1), day(2026, 12, 31), "HAM")
	require.NoError(t, cancelled.Submit(june))
	require.NoError(t, cancelled.Cancel())
	require.NoError(t, agreements.Save(ctx, cancelled))

	options, err := items.SearchByCustomerAgreement(ctx, "Hotel Adler", june, catalog.ItemSearch{})
	require.NoError(t, err)
	assert.Empty(t, options)
	matches, err := agreements.FindItemMatches(ctx, "Hotel Adler", "BREAD")
	require.NoError(t, err)
	assert.Empty(t, matches, "the picker and order pricing see the same agreements")

	require.NoError(t, draft.Submit(june))
	require.NoError(t, agreements.Save(ctx, draft))
	options, err = items.SearchByCustomerAgreement(ctx, "Hotel Adler", june, catalog.ItemSearch{})
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, catalog.ItemOption{Code: "BREAD", Name: "Sourdough bread"}, options[0])
}

func TestGormItemPriceRepository(t *testing.T) {
	repo := NewGormItemPriceRepository(newTestDB(t))
	ctx := context.Background()

	save := func(list string, from, upto *time.Time, rate int64) *pricing.ItemPrice {
		p, err := pricing.NewItemPrice(pricing.ItemPriceKey{
			PriceList: list, ItemCode: "BREAD", Currency: "EUR", ValidFrom: from, ValidUpto: upto,
		}, decimal.NewFromInt(rate))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, p))
		return p
	}

	save("Standard Selling", nil, nil, 3)
	save("Hotel Adler", day(2026, 1, 1), day(2026, 6, 30), 4)
	save("Hotel Adler", day(2026, 7, 1), day(2026, 12, 31), 5)

	t.Run("find by key matches null dates", func(t *testing.T) {
		p, err := repo.FindByKey(ctx, pricing.ItemPriceKey{PriceList: "Standard Selling", ItemCode: "BREAD", Currency: "EUR"})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(3).Equal(p.Rate))

		p, err = repo.FindByKey(ctx, pricing.ItemPriceKey{
			PriceList: "Hotel Adler", ItemCode: "BREAD", Currency: "EUR",
			ValidFrom: day(2026, 7, 1), ValidUpto: day(2026, 12, 31),
		})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(5).Equal(p.Rate))
	})

	t.Run("latest selling rate prefers the latest start", func(t *testing.T) {
		rate, ok, err := repo.FindLatestSellingRate(ctx, "BREAD", "EUR")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, decimal.NewFromInt(5).Equal(rate))

		_, ok, err = repo.FindLatestSellingRate(ctx, "BREAD", "USD")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rates by list", func(t *testing.T) {
		rates, err := repo.FindRates(ctx, "Standard Selling", "EUR", []string{"BREAD", "HAM"})
		require.NoError(t, err)
		assert.Len(t, rates, 1)
		assert.True(t, decimal.NewFromInt(3).Equal(rates["BREAD"]))
	})

	t.Run("delete overlapping", func(t *testing.T) {
		deleted, err := repo.DeleteOverlapping(ctx, "Hotel Adler", "BREAD",
			pricing.NewDateRange(*day(2026, 6, 1), *day(2026, 6, 30)))
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		count, err := repo.CountByItem(ctx, "Hotel Adler", "BREAD")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
