package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgreement(t *testing.T, name, customer, supplier string, from, to *time.Time, items ...string) *agreement.Agreement {
	t.Helper()
	a, err := agreement.NewAgreement(name, customer, supplier, from, to)
	require.NoError(t, err)
	rows := make([]agreement.Item, len(items))
	for i, code := range items {
		rows[i] = agreement.Item{
			ItemCode:      code,
			ItemName:      code + " name",
			Currency:      "EUR",
			PriceListRate: decimal.NewFromInt(int64(10 * (i + 1))),
		}
	}
	a.SetItems(rows)
	return a
}

func TestGormAgreementRepository_SaveAndFind(t *testing.T) {
	repo := NewGormAgreementRepository(newTestDB(t))
	ctx := context.Background()

	a := newTestAgreement(t, "AGR-00001", "Hotel Adler", "Bäckerei Kraus",
		day(2026, 1, 1), day(2026, 12, 31), "BREAD", "ROLL")
	require.NoError(t, repo.Save(ctx, a))

	found, err := repo.FindByName(ctx, "AGR-00001")
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)
	assert.Equal(t, "Hotel Adler", found.Customer)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "BREAD", found.Items[0].ItemCode)
	assert.Equal(t, 2, found.Items[1].Idx)
	assert.True(t, decimal.NewFromInt(20).Equal(found.Items[1].PriceListRate))
	require.NotNil(t, found.ValidFrom)
	assert.Equal(t, *day(2026, 1, 1), *found.ValidFrom)

	_, err = repo.FindByName(ctx, "AGR-99999")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	t.Run("saving again replaces items", func(t *testing.T) {
		a.SetItems([]agreement.Item{{ItemCode: "CAKE", Currency: "EUR", PriceListRate: decimal.NewFromInt(5)}})
		require.NoError(t, repo.Save(ctx, a))

		found, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "CAKE", found.Items[0].ItemCode)
	})
}

func TestGormAgreementRepository_SaveWithLock(t *testing.T) {
	repo := NewGormAgreementRepository(newTestDB(t))
	ctx := context.Background()

	a := newTestAgreement(t, "AGR-00001", "Hotel Adler", "Bäckerei Kraus",
		day(2026, 1, 1), day(2026, 12, 31), "BREAD")
	require.NoError(t, repo.Save(ctx, a))
	stale, err := repo.FindByName(ctx, "AGR-00001")
	require.NoError(t, err)

	require.NoError(t, a.Submit(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, repo.SaveWithLock(ctx, a))
	assert.Equal(t, 2, a.Version)

	found, err := repo.FindByName(ctx, "AGR-00001")
	require.NoError(t, err)
	assert.Equal(t, agreement.DocStatusSubmitted, found.DocStatus)
	assert.Equal(t, 2, found.Version)

	stale.DiscountRate = decimal.NewFromInt(5)
	err = repo.SaveWithLock(ctx, stale)
	assert.ErrorIs(t, err, shared.ErrConcurrentModification)

	missing := newTestAgreement(t, "AGR-00002", "Hotel Adler", "Bäckerei Kraus", nil, nil)
	assert.ErrorIs(t, repo.SaveWithLock(ctx, missing), shared.ErrNotFound)
}

func TestGormAgreementRepository_Queries(t *testing.T) {
	repo := NewGormAgreementRepository(newTestDB(t))
	ctx := context.Background()
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	older := newTestAgreement(t, "AGR-00001", "Hotel Adler", "Bäckerei Kraus",
		day(2026, 1, 1), day(2026, 12, 31), "BREAD")
	require.NoError(t, older.Submit(today))
	require.NoError(t, repo.Save(ctx, older))

	newer := newTestAgreement(t, "AGR-00002", "Hotel Adler", "Metzgerei Huber",
		day(2026, 5, 1), day(2026, 12, 31), "BREAD", "HAM")
	require.NoError(t, newer.Submit(today))
	require.NoError(t, repo.Save(ctx, newer))

	draft := newTestAgreement(t, "AGR-00003", "Hotel Adler", "Bäckerei Kraus", nil, nil, "BREAD")
	require.NoError(t, repo.Save(ctx, draft))

	cancelled := newTestAgreement(t, "AGR-00004", "Gasthof Post", "Bäckerei Kraus",
		day(2026, 1, 1), day(2026, 12, 31), "BREAD")
	require.NoError(t, cancelled.Submit(today))
	require.NoError(t, cancelled.Cancel())
	require.NoError(t, repo.Save(ctx, cancelled))

	t.Run("item matches are submitted only and latest first", func(t *testing.T) {
		matches, err := repo.FindItemMatches(ctx, "Hotel Adler", "BREAD")
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "AGR-00002", matches[0].Agreement)
		assert.Equal(t, "Metzgerei Huber", matches[0].Supplier)
		assert.Equal(t, "AGR-00001", matches[1].Agreement)
		assert.True(t, decimal.NewFromInt(10).Equal(matches[1].PriceListRate))
	})

	t.Run("submitted for pair excludes the named agreement", func(t *testing.T) {
		summaries, err := repo.FindSubmittedFor(ctx, "Hotel Adler", "Bäckerei Kraus", "AGR-00003")
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "AGR-00001", summaries[0].Name)

		summaries, err = repo.FindSubmittedFor(ctx, "Hotel Adler", "Bäckerei Kraus", "AGR-00001")
		require.NoError(t, err)
		assert.Empty(t, summaries)
	})

	t.Run("counts active agreements", func(t *testing.T) {
		count, err := repo.CountActiveForCustomer(ctx, "Hotel Adler", "")
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.CountActiveForCustomer(ctx, "Hotel Adler", "AGR-00002")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("not cancelled", func(t *testing.T) {
		list, err := repo.FindNotCancelled(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("list filters", func(t *testing.T) {
		list, total, err := repo.FindAll(ctx, agreement.ListFilter{
			Filter:   shared.DefaultFilter(),
			Supplier: "Bäckerei Kraus",
			Status:   agreement.StatusActive,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, "AGR-00001", list[0].Name)

		filter := shared.DefaultFilter()
		filter.Search = "gasthof"
		list, total, err = repo.FindAll(ctx, agreement.ListFilter{Filter: filter})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "AGR-00004", list[0].Name)
	})
}
