package models

import (
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderModel is the persistence model for the SalesOrder aggregate root.
type SalesOrderModel struct {
	AggregateModel
	Name            string                `gorm:"type:varchar(140);not null;uniqueIndex"`
	Company         string                `gorm:"type:varchar(140);not null;index"`
	Customer        string                `gorm:"type:varchar(140);not null;index"`
	TransactionDate time.Time             `gorm:"type:date;not null"`
	DeliveryDate    *time.Time            `gorm:"type:date"`
	Currency        string                `gorm:"type:varchar(3)"`
	ShippingAddress string                `gorm:"type:varchar(140)"`
	CustomerAddress string                `gorm:"type:varchar(140)"`
	DocStatus       int                   `gorm:"not null;default:0"`
	SourceWebSO     string                `gorm:"column:source_web_so;type:varchar(140);index"`
	GrandTotal      decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Items           []SalesOrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// SalesOrderItemModel is the persistence model for a sales order line.
type SalesOrderItemModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Idx           int             `gorm:"not null"`
	ItemCode      string          `gorm:"type:varchar(140);not null"`
	ItemName      string          `gorm:"type:varchar(140)"`
	Description   string          `gorm:"type:text"`
	Qty           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate          decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	PriceListRate decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Supplier      string          `gorm:"type:varchar(140)"`
	RateLocked    bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SalesOrderItemModel) TableName() string {
	return "sales_order_items"
}

// ToDomain converts the persistence model to a domain SalesOrder; Items must be ordered by Idx.
func (m *SalesOrderModel) ToDomain() *trade.SalesOrder {
	o := &trade.SalesOrder{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Company:           m.Company,
		Customer:          m.Customer,
		TransactionDate:   shared.DateOf(m.TransactionDate),
		DeliveryDate:      utcDay(m.DeliveryDate),
		Currency:          m.Currency,
		ShippingAddress:   m.ShippingAddress,
		CustomerAddress:   m.CustomerAddress,
		DocStatus:         trade.DocStatus(m.DocStatus),
		SourceWebSO:       m.SourceWebSO,
		GrandTotal:        m.GrandTotal,
		Items:             make([]trade.SalesOrderItem, len(m.Items)),
	}
	for i, it := range m.Items {
		o.Items[i] = trade.SalesOrderItem{
			ID:            it.ID,
			Idx:           it.Idx,
			ItemCode:      it.ItemCode,
			ItemName:      it.ItemName,
			Description:   it.Description,
			Qty:           it.Qty,
			Rate:          it.Rate,
			PriceListRate: it.PriceListRate,
			Amount:        it.Amount,
			Supplier:      it.Supplier,
			RateLocked:    it.RateLocked,
		}
	}
	return o
}

// SalesOrderModelFromDomain creates a new persistence model from a domain SalesOrder.
func SalesOrderModelFromDomain(o *trade.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{
		Name:            o.Name,
		Company:         o.Company,
		Customer:        o.Customer,
		TransactionDate: o.TransactionDate,
		DeliveryDate:    o.DeliveryDate,
		Currency:        o.Currency,
		ShippingAddress: o.ShippingAddress,
		CustomerAddress: o.CustomerAddress,
		DocStatus:       int(o.DocStatus),
		SourceWebSO:     o.SourceWebSO,
		GrandTotal:      o.GrandTotal,
		Items:           make([]SalesOrderItemModel, len(o.Items)),
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	for i, it := range o.Items {
		m.Items[i] = SalesOrderItemModel{
			ID:            it.ID,
			OrderID:       o.ID,
			Idx:           it.Idx,
			ItemCode:      it.ItemCode,
			ItemName:      it.ItemName,
			Description:   it.Description,
			Qty:           it.Qty,
			Rate:          it.Rate,
			PriceListRate: it.PriceListRate,
			Amount:        it.Amount,
			Supplier:      it.Supplier,
			RateLocked:    it.RateLocked,
		}
	}
	return m
}
