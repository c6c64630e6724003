package pricing

import (
	"testing"
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(m time.Month, d int) *time.Time {
	t := shared.NewDate(2025, m, d)
	return &t
}

func TestDateRange_Overlaps(t *testing.T) {
	window := DateRange{From: day(3, 1), Upto: day(3, 31)}

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"inside", DateRange{From: day(3, 10), Upto: day(3, 20)}, true},
		{"ends on first day", DateRange{From: day(2, 1), Upto: day(3, 1)}, true},
		{"starts on last day", DateRange{From: day(3, 31), Upto: day(4, 30)}, true},
		{"before", DateRange{From: day(1, 1), Upto: day(2, 28)}, false},
		{"after", DateRange{From: day(4, 1), Upto: day(4, 30)}, false},
		{"open start before", DateRange{Upto: day(2, 28)}, false},
		{"open start reaching in", DateRange{Upto: day(3, 5)}, true},
		{"open end after", DateRange{From: day(4, 1)}, false},
		{"fully open", DateRange{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Overlaps(tt.other))
		})
	}

	t.Run("open window drops its conditions", func(t *testing.T) {
		open := DateRange{From: day(3, 1)}
		assert.True(t, open.Overlaps(DateRange{From: day(12, 1), Upto: day(12, 31)}))
		assert.False(t, open.Overlaps(DateRange{Upto: day(2, 1)}))
	})
}

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{From: day(3, 1), Upto: day(3, 31)}
	assert.True(t, r.Contains(*day(3, 1)))
	assert.True(t, r.Contains(*day(3, 31)))
	assert.False(t, r.Contains(*day(4, 1)))
	assert.True(t, DateRange{}.Contains(*day(1, 1)))
}

func TestEffectiveRate(t *testing.T) {
	d := decimal.RequireFromString
	assert.True(t, d("12.5").Equal(EffectiveRate(d("12.5"), d("20"), d("10"))))
	assert.True(t, d("18").Equal(EffectiveRate(decimal.Zero, d("20"), d("10"))))
	assert.True(t, d("20").Equal(EffectiveRate(decimal.Zero, d("20"), decimal.Zero)))
	assert.True(t, decimal.Zero.Equal(EffectiveRate(decimal.Zero, decimal.Zero, d("10"))))
}

func TestNewItemPrice(t *testing.T) {
	_, err := NewItemPrice(ItemPriceKey{PriceList: "Cafe Nord", ItemCode: "TOM"}, decimal.NewFromInt(-1))
	assert.Error(t, err)

	_, err = NewItemPrice(ItemPriceKey{PriceList: "Cafe Nord", ItemCode: "TOM", ValidFrom: day(3, 2), ValidUpto: day(3, 1)}, decimal.NewFromInt(1))
	assert.Error(t, err)

	p, err := NewItemPrice(ItemPriceKey{PriceList: "Cafe Nord", ItemCode: "TOM", Currency: "EUR"}, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, p.Selling)
	assert.Equal(t, "Cafe Nord", p.Key().PriceList)
}

func TestPriceList_EnableDisable(t *testing.T) {
	pl, err := NewSellingPriceList("Cafe Nord", "eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", pl.Currency)
	assert.False(t, pl.Enable())
	assert.True(t, pl.Disable())
	assert.False(t, pl.Disable())
	assert.True(t, pl.Enable())
}

func TestNewCurrencyExchange(t *testing.T) {
	_, err := NewCurrencyExchange("EUR", "eur", time.Now(), decimal.NewFromInt(1))
	assert.Error(t, err)
	_, err = NewCurrencyExchange("USD", "EUR", time.Now(), decimal.Zero)
	assert.Error(t, err)
	ce, err := NewCurrencyExchange("usd", "EUR", time.Date(2025, 1, 5, 13, 0, 0, 0, time.UTC), decimal.RequireFromString("0.92"))
	require.NoError(t, err)
	assert.Equal(t, "USD", ce.FromCurrency)
	assert.Equal(t, shared.NewDate(2025, 1, 5), ce.Date)
}
