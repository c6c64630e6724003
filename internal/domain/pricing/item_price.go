package pricing

import (
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemPriceKey is the natural key of an item price. Nil dates match NULL columns.
type ItemPriceKey struct {
	PriceList string
	ItemCode  string
	Currency  string
	ValidFrom *time.Time
	ValidUpto *time.Time
}

// ItemPrice is the rate of one item in one price list and currency over a validity window
type ItemPrice struct {
	shared.BaseEntity
	PriceList string
	ItemCode  string
	Currency  string
	Rate      decimal.Decimal
	ValidFrom *time.Time
	ValidUpto *time.Time
	Selling   bool
	Customer  string
	// Agreement names the agreement whose sync wrote this row
	Agreement string
}

// NewItemPrice creates a selling item price for key
func NewItemPrice(key ItemPriceKey, rate decimal.Decimal) (*ItemPrice, error) {
	if key.PriceList == "" || key.ItemCode == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_PRICE", "Item price needs a price list and an item code")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ITEM_PRICE", "Item price rate cannot be negative")
	}
	if key.ValidFrom != nil && key.ValidUpto != nil && key.ValidUpto.Before(*key.ValidFrom) {
		return nil, shared.NewDomainError("INVALID_ITEM_PRICE", "Valid upto cannot be before valid from")
	}
	return &ItemPrice{
		BaseEntity: shared.NewBaseEntity(),
		PriceList:  key.PriceList,
		ItemCode:   key.ItemCode,
		Currency:   key.Currency,
		Rate:       rate,
		ValidFrom:  key.ValidFrom,
		ValidUpto:  key.ValidUpto,
		Selling:    true,
	}, nil
}

// Key returns the natural key of the price
func (p *ItemPrice) Key() ItemPriceKey {
	return ItemPriceKey{
		PriceList: p.PriceList,
		ItemCode:  p.ItemCode,
		Currency:  p.Currency,
		ValidFrom: p.ValidFrom,
		ValidUpto: p.ValidUpto,
	}
}

// Validity returns the price's date window
func (p *ItemPrice) Validity() DateRange {
	return DateRange{From: p.ValidFrom, Upto: p.ValidUpto}
}

// UpdateRate sets a new rate
func (p *ItemPrice) UpdateRate(rate decimal.Decimal) {
	p.Rate = rate
	p.Touch()
}

// EffectiveRate is the rate an agreement row puts in the customer price list:
// the row's own agreement rate if set, otherwise the standard rate reduced by
// discountPct percent.
func EffectiveRate(agreementRate, standardRate, discountPct decimal.Decimal) decimal.Decimal {
	if !agreementRate.IsZero() {
		return agreementRate
	}
	if discountPct.IsZero() {
		return standardRate
	}
	factor := decimal.NewFromInt(1).Sub(discountPct.Div(decimal.NewFromInt(100)))
	return standardRate.Mul(factor)
}
