package models

import (
	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// ItemModel is the persistence model for the Item aggregate
type ItemModel struct {
	AggregateModel
	Code            string              `gorm:"type:varchar(140);not null;uniqueIndex"`
	ItemName        string              `gorm:"type:varchar(140);not null;index"`
	ItemGroup       string              `gorm:"type:varchar(140)"`
	StockUOM        string              `gorm:"column:stock_uom;type:varchar(40)"`
	Description     string              `gorm:"type:text"`
	Brand           string              `gorm:"type:varchar(140);index"`
	IsSalesItem     bool                `gorm:"not null;default:true"`
	IsKitchenItem   bool                `gorm:"not null;default:false"`
	Disabled        bool                `gorm:"not null;default:false"`
	SupplierDisplay string              `gorm:"type:varchar(140)"`
	Suppliers       []ItemSupplierModel `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ItemSupplierModel is a row of the item supplier table
type ItemSupplierModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemCode  string    `gorm:"type:varchar(140);not null;index"`
	Supplier  string    `gorm:"type:varchar(140);not null;index"`
	IsPrimary bool      `gorm:"not null;default:false"`
	Idx       int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ItemSupplierModel) TableName() string {
	return "item_suppliers"
}

// ToDomain converts the model to a domain Item
func (m *ItemModel) ToDomain() *catalog.Item {
	item := &catalog.Item{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Code:              m.Code,
		Name:              m.ItemName,
		ItemGroup:         m.ItemGroup,
		StockUOM:          m.StockUOM,
		Description:       m.Description,
		Brand:             m.Brand,
		IsSalesItem:       m.IsSalesItem,
		IsKitchenItem:     m.IsKitchenItem,
		Disabled:          m.Disabled,
		SupplierDisplay:   m.SupplierDisplay,
	}
	for _, s := range m.Suppliers {
		item.Suppliers = append(item.Suppliers, catalog.ItemSupplier{
			Supplier:  s.Supplier,
			IsPrimary: s.IsPrimary,
			Idx:       s.Idx,
		})
	}
	return item
}

// ItemModelFromDomain creates a model from a domain Item
func ItemModelFromDomain(i *catalog.Item) *ItemModel {
	m := &ItemModel{
		Code:            i.Code,
		ItemName:        i.Name,
		ItemGroup:       i.ItemGroup,
		StockUOM:        i.StockUOM,
		Description:     i.Description,
		Brand:           i.Brand,
		IsSalesItem:     i.IsSalesItem,
		IsKitchenItem:   i.IsKitchenItem,
		Disabled:        i.Disabled,
		SupplierDisplay: i.SupplierDisplay,
	}
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	for _, s := range i.Suppliers {
		m.Suppliers = append(m.Suppliers, ItemSupplierModel{
			ID:        uuid.New(),
			ItemID:    i.ID,
			ItemCode:  i.Code,
			Supplier:  s.Supplier,
			IsPrimary: s.IsPrimary,
			Idx:       s.Idx,
		})
	}
	return m
}
