package models

import (
	"time"

	"github.com/culinary/backend/internal/domain/pricing"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceListModel is the persistence model for the PriceList aggregate
type PriceListModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(140);not null;uniqueIndex"`
	Currency string `gorm:"type:varchar(3)"`
	Selling  bool   `gorm:"not null;default:true"`
	Enabled  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PriceListModel) TableName() string {
	return "price_lists"
}

// ToDomain converts the model to a domain PriceList
func (m *PriceListModel) ToDomain() *pricing.PriceList {
	return &pricing.PriceList{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Currency:          m.Currency,
		Selling:           m.Selling,
		Enabled:           m.Enabled,
	}
}

// PriceListModelFromDomain creates a model from a domain PriceList
func PriceListModelFromDomain(p *pricing.PriceList) *PriceListModel {
	m := &PriceListModel{
		Name:     p.Name,
		Currency: p.Currency,
		Selling:  p.Selling,
		Enabled:  p.Enabled,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// ItemPriceModel is the persistence model for ItemPrice
type ItemPriceModel struct {
	BaseModel
	PriceList string          `gorm:"type:varchar(140);not null;index:idx_item_price_lookup,priority:1"`
	ItemCode  string          `gorm:"type:varchar(140);not null;index:idx_item_price_lookup,priority:2"`
	Currency  string          `gorm:"type:varchar(3);not null;index:idx_item_price_lookup,priority:3"`
	Rate      decimal.Decimal `gorm:"column:price_list_rate;type:decimal(18,6);not null;default:0"`
	ValidFrom *time.Time      `gorm:"type:date"`
	ValidUpto *time.Time      `gorm:"type:date"`
	Selling   bool            `gorm:"not null;default:true"`
	Customer  string          `gorm:"type:varchar(140)"`
	Agreement string          `gorm:"type:varchar(140);index"`
}

// TableName returns the table name for GORM
func (ItemPriceModel) TableName() string {
	return "item_prices"
}

// ToDomain converts the model to a domain ItemPrice
func (m *ItemPriceModel) ToDomain() *pricing.ItemPrice {
	return &pricing.ItemPrice{
		BaseEntity: m.BaseModel.ToDomain(),
		PriceList:  m.PriceList,
		ItemCode:   m.ItemCode,
		Currency:   m.Currency,
		Rate:       m.Rate,
		ValidFrom:  utcDay(m.ValidFrom),
		ValidUpto:  utcDay(m.ValidUpto),
		Selling:    m.Selling,
		Customer:   m.Customer,
		Agreement:  m.Agreement,
	}
}

// ItemPriceModelFromDomain creates a model from a domain ItemPrice
func ItemPriceModelFromDomain(p *pricing.ItemPrice) *ItemPriceModel {
	m := &ItemPriceModel{
		PriceList: p.PriceList,
		ItemCode:  p.ItemCode,
		Currency:  p.Currency,
		Rate:      p.Rate,
		ValidFrom: p.ValidFrom,
		ValidUpto: p.ValidUpto,
		Selling:   p.Selling,
		Customer:  p.Customer,
		Agreement: p.Agreement,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// CurrencyExchangeModel is the persistence model for CurrencyExchange
type CurrencyExchangeModel struct {
	BaseModel
	FromCurrency string          `gorm:"type:varchar(3);not null;index:idx_currency_exchange_pair,priority:1"`
	ToCurrency   string          `gorm:"type:varchar(3);not null;index:idx_currency_exchange_pair,priority:2"`
	Date         time.Time       `gorm:"type:date;not null;index:idx_currency_exchange_pair,priority:3"`
	Rate         decimal.Decimal `gorm:"column:exchange_rate;type:decimal(18,9);not null"`
}

// TableName returns the table name for GORM
func (CurrencyExchangeModel) TableName() string {
	return "currency_exchanges"
}

// ToDomain converts the model to a domain CurrencyExchange
func (m *CurrencyExchangeModel) ToDomain() *pricing.CurrencyExchange {
	return &pricing.CurrencyExchange{
		BaseEntity:   m.BaseModel.ToDomain(),
		FromCurrency: m.FromCurrency,
		ToCurrency:   m.ToCurrency,
		Date:         shared.DateOf(m.Date),
		Rate:         m.Rate,
	}
}

// CurrencyExchangeModelFromDomain creates a model from a domain CurrencyExchange
func CurrencyExchangeModelFromDomain(c *pricing.CurrencyExchange) *CurrencyExchangeModel {
	m := &CurrencyExchangeModel{
		FromCurrency: c.FromCurrency,
		ToCurrency:   c.ToCurrency,
		Date:         c.Date,
		Rate:         c.Rate,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// utcDay normalises a date column read back from the driver
func utcDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := shared.DateOf(*t)
	return &day
}
