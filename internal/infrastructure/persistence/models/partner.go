package models

import (
	"github.com/culinary/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CompanyModel is the persistence model for the Company aggregate
type CompanyModel struct {
	AggregateModel
	Name            string `gorm:"type:varchar(140);not null;uniqueIndex"`
	Abbr            string `gorm:"type:varchar(20)"`
	DefaultCurrency string `gorm:"type:varchar(3)"`
	IsGroup         bool   `gorm:"not null;default:false"`
	DefaultAddress  string `gorm:"type:varchar(140)"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the model to a domain Company
func (m *CompanyModel) ToDomain() *partner.Company {
	return &partner.Company{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Abbr:              m.Abbr,
		DefaultCurrency:   m.DefaultCurrency,
		IsGroup:           m.IsGroup,
		DefaultAddress:    m.DefaultAddress,
	}
}

// CompanyModelFromDomain creates a model from a domain Company
func CompanyModelFromDomain(c *partner.Company) *CompanyModel {
	m := &CompanyModel{
		Name:            c.Name,
		Abbr:            c.Abbr,
		DefaultCurrency: c.DefaultCurrency,
		IsGroup:         c.IsGroup,
		DefaultAddress:  c.DefaultAddress,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// CustomerModel is the persistence model for the Customer aggregate
type CustomerModel struct {
	AggregateModel
	Name            string `gorm:"type:varchar(140);not null;uniqueIndex"`
	DefaultCurrency string `gorm:"type:varchar(3)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		DefaultCurrency:   m.DefaultCurrency,
	}
}

// CustomerModelFromDomain creates a model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{Name: c.Name, DefaultCurrency: c.DefaultCurrency}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// SupplierModel is the persistence model for the Supplier aggregate
type SupplierModel struct {
	AggregateModel
	Name            string `gorm:"type:varchar(140);not null;uniqueIndex"`
	DefaultCurrency string `gorm:"type:varchar(3)"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the model to a domain Supplier
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		DefaultCurrency:   m.DefaultCurrency,
	}
}

// SupplierModelFromDomain creates a model from a domain Supplier
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{Name: s.Name, DefaultCurrency: s.DefaultCurrency}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}

// AddressModel is the persistence model for the Address aggregate
type AddressModel struct {
	AggregateModel
	Name         string `gorm:"type:varchar(140);not null;uniqueIndex"`
	AddressLine1 string `gorm:"type:varchar(255)"`
	City         string `gorm:"type:varchar(100)"`
	Pincode      string `gorm:"type:varchar(20);index"`
	Country      string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the model to a domain Address
func (m *AddressModel) ToDomain() *partner.Address {
	return &partner.Address{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		AddressLine1:      m.AddressLine1,
		City:              m.City,
		Pincode:           m.Pincode,
		Country:           m.Country,
	}
}

// AddressModelFromDomain creates a model from a domain Address
func AddressModelFromDomain(a *partner.Address) *AddressModel {
	m := &AddressModel{
		Name:         a.Name,
		AddressLine1: a.AddressLine1,
		City:         a.City,
		Pincode:      a.Pincode,
		Country:      a.Country,
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	return m
}

// BrandModel is the persistence model for the Brand aggregate
type BrandModel struct {
	AggregateModel
	Name           string              `gorm:"type:varchar(140);not null;uniqueIndex"`
	DefaultCompany string              `gorm:"type:varchar(140)"`
	Defaults       []BrandDefaultModel `gorm:"foreignKey:BrandID;references:ID"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brands"
}

// BrandDefaultModel is a row of the brand defaults table
type BrandDefaultModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	BrandID uuid.UUID `gorm:"type:uuid;not null;index"`
	Idx     int       `gorm:"not null"`
	Company string    `gorm:"type:varchar(140);not null"`
}

// TableName returns the table name for GORM
func (BrandDefaultModel) TableName() string {
	return "brand_defaults"
}

// ToDomain converts the model to a domain Brand; Defaults must be ordered by Idx
func (m *BrandModel) ToDomain() *partner.Brand {
	b := &partner.Brand{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		DefaultCompany:    m.DefaultCompany,
	}
	for _, d := range m.Defaults {
		b.Defaults = append(b.Defaults, d.Company)
	}
	return b
}

// BrandModelFromDomain creates a model from a domain Brand
func BrandModelFromDomain(b *partner.Brand) *BrandModel {
	m := &BrandModel{Name: b.Name, DefaultCompany: b.DefaultCompany}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	for i, c := range b.Defaults {
		m.Defaults = append(m.Defaults, BrandDefaultModel{
			ID:      uuid.New(),
			BrandID: b.ID,
			Idx:     i + 1,
			Company: c,
		})
	}
	return m
}
