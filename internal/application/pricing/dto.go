package pricing

import (
	"time"

	"github.com/culinary/backend/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settings carries the business defaults pricing depends on
type Settings struct {
	StandardPriceList string
	FallbackCurrency  string
}

// DefaultSettings returns the stock defaults
func DefaultSettings() Settings {
	return Settings{
		StandardPriceList: pricing.StandardSellingPriceList,
		FallbackCurrency:  "EUR",
	}
}

// SupplierItemRow is an item of a supplier with its current standard selling rate
type SupplierItemRow struct {
	ItemCode            string          `json:"item_code"`
	ItemName            string          `json:"item_name"`
	ItemGroup           string          `json:"item_group"`
	KitchenItem         bool            `json:"kitchen_item"`
	UOM                 string          `json:"uom"`
	StandardSellingRate decimal.Decimal `json:"standard_selling_rate"`
	PriceListRate       decimal.Decimal `json:"price_list_rate"`
	Currency            string          `json:"currency"`
}

// CreateCurrencyExchangeRequest records an exchange rate
type CreateCurrencyExchangeRequest struct {
	FromCurrency string          `json:"from_currency" binding:"required,len=3"`
	ToCurrency   string          `json:"to_currency" binding:"required,len=3"`
	Date         string          `json:"date" binding:"required"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
}

// CurrencyExchangeResponse represents an exchange rate in API responses
type CurrencyExchangeResponse struct {
	ID           uuid.UUID       `json:"id"`
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Date         string          `json:"date"`
	Rate         decimal.Decimal `json:"rate"`
}

// ToCurrencyExchangeResponse converts a domain exchange rate
func ToCurrencyExchangeResponse(ce *pricing.CurrencyExchange) CurrencyExchangeResponse {
	return CurrencyExchangeResponse{
		ID:           ce.ID,
		FromCurrency: ce.FromCurrency,
		ToCurrency:   ce.ToCurrency,
		Date:         ce.Date.Format(time.DateOnly),
		Rate:         ce.Rate,
	}
}

// ItemPriceResponse represents an item price in API responses
type ItemPriceResponse struct {
	ID        uuid.UUID       `json:"id"`
	PriceList string          `json:"price_list"`
	ItemCode  string          `json:"item_code"`
	Currency  string          `json:"currency"`
	Rate      decimal.Decimal `json:"price_list_rate"`
	ValidFrom *string         `json:"valid_from"`
	ValidUpto *string         `json:"valid_upto"`
	Selling   bool            `json:"selling"`
	Customer  string          `json:"customer,omitempty"`
	Agreement string          `json:"agreement,omitempty"`
}

// ToItemPriceResponse converts a domain item price
func ToItemPriceResponse(p *pricing.ItemPrice) ItemPriceResponse {
	return ItemPriceResponse{
		ID:        p.ID,
		PriceList: p.PriceList,
		ItemCode:  p.ItemCode,
		Currency:  p.Currency,
		Rate:      p.Rate,
		ValidFrom: formatDay(p.ValidFrom),
		ValidUpto: formatDay(p.ValidUpto),
		Selling:   p.Selling,
		Customer:  p.Customer,
		Agreement: p.Agreement,
	}
}

func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
