package models

import (
	"time"

	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgreementModel is the persistence model for the Agreement aggregate
type AgreementModel struct {
	AggregateModel
	Name         string               `gorm:"type:varchar(140);not null;uniqueIndex"`
	Customer     string               `gorm:"type:varchar(140);not null;index:idx_agreement_parties,priority:1"`
	Supplier     string               `gorm:"type:varchar(140);not null;index:idx_agreement_parties,priority:2"`
	ValidFrom    *time.Time           `gorm:"type:date"`
	ValidTo      *time.Time           `gorm:"type:date"`
	DiscountRate decimal.Decimal      `gorm:"type:decimal(5,2);not null;default:0"`
	PriceList    string               `gorm:"type:varchar(140)"`
	DocStatus    int                  `gorm:"not null;default:0;index"`
	Status       string               `gorm:"type:varchar(20);not null;default:'Not Started'"`
	Items        []AgreementItemModel `gorm:"foreignKey:AgreementID;references:ID"`
}

// TableName returns the table name for GORM
func (AgreementModel) TableName() string {
	return "agreements"
}

// AgreementItemModel is a row of the agreement item table
type AgreementItemModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key"`
	AgreementID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Idx                 int             `gorm:"not null"`
	ItemCode            string          `gorm:"type:varchar(140);not null;index"`
	ItemName            string          `gorm:"type:varchar(140)"`
	Currency            string          `gorm:"type:varchar(3)"`
	StandardSellingRate decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	PriceListRate       decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
}

// TableName returns the table name for GORM
func (AgreementItemModel) TableName() string {
	return "agreement_items"
}

// ToDomain converts the model to a domain Agreement; Items must be ordered by Idx
func (m *AgreementModel) ToDomain() *agreement.Agreement {
	a := &agreement.Agreement{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Customer:          m.Customer,
		Supplier:          m.Supplier,
		ValidFrom:         utcDay(m.ValidFrom),
		ValidTo:           utcDay(m.ValidTo),
		DiscountRate:      m.DiscountRate,
		PriceList:         m.PriceList,
		DocStatus:         agreement.DocStatus(m.DocStatus),
		Status:            agreement.Status(m.Status),
		Items:             make([]agreement.Item, len(m.Items)),
	}
	for i, it := range m.Items {
		a.Items[i] = agreement.Item{
			ID:                  it.ID,
			Idx:                 it.Idx,
			ItemCode:            it.ItemCode,
			ItemName:            it.ItemName,
			Currency:            it.Currency,
			StandardSellingRate: it.StandardSellingRate,
			PriceListRate:       it.PriceListRate,
		}
	}
	return a
}

// AgreementModelFromDomain creates a model from a domain Agreement
func AgreementModelFromDomain(a *agreement.Agreement) *AgreementModel {
	m := &AgreementModel{
		Name:         a.Name,
		Customer:     a.Customer,
		Supplier:     a.Supplier,
		ValidFrom:    a.ValidFrom,
		ValidTo:      a.ValidTo,
		DiscountRate: a.DiscountRate,
		PriceList:    a.PriceList,
		DocStatus:    int(a.DocStatus),
		Status:       string(a.Status),
		Items:        make([]AgreementItemModel, len(a.Items)),
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	for i, it := range a.Items {
		m.Items[i] = AgreementItemModel{
			ID:                  it.ID,
			AgreementID:         a.ID,
			Idx:                 it.Idx,
			ItemCode:            it.ItemCode,
			ItemName:            it.ItemName,
			Currency:            it.Currency,
			StandardSellingRate: it.StandardSellingRate,
			PriceListRate:       it.PriceListRate,
		}
	}
	return m
}
