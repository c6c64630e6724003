package models

import (
	"time"

	"github.com/culinary/backend/internal/domain/proforma"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProformaInvoiceModel is the persistence model for the ProformaInvoice aggregate
type ProformaInvoiceModel struct {
	AggregateModel
	Name             string              `gorm:"type:varchar(140);not null;uniqueIndex"`
	Customer         string              `gorm:"type:varchar(140)"`
	SourceSalesOrder string              `gorm:"type:varchar(140);not null;index:idx_proforma_source,priority:1"`
	ChildSalesOrder  string              `gorm:"type:varchar(140)"`
	SupplierCompany  string              `gorm:"type:varchar(140);not null;index:idx_proforma_source,priority:2"`
	InvoiceDate      time.Time           `gorm:"type:date;not null"`
	DueDate          time.Time           `gorm:"type:date;not null"`
	GrandTotal       decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	DocStatus        int                 `gorm:"not null;default:0"`
	Items            []ProformaItemModel `gorm:"foreignKey:ProformaID;references:ID"`
}

// TableName returns the table name for GORM
func (ProformaInvoiceModel) TableName() string {
	return "proforma_invoices"
}

// ProformaItemModel is a proforma line
type ProformaItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProformaID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Idx             int             `gorm:"not null"`
	ItemCode        string          `gorm:"type:varchar(140);not null"`
	ItemName        string          `gorm:"type:varchar(140)"`
	Qty             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate            decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SupplierCompany string          `gorm:"type:varchar(140)"`
}

// TableName returns the table name for GORM
func (ProformaItemModel) TableName() string {
	return "proforma_items"
}

// ToDomain converts the model to a domain ProformaInvoice; Items must be ordered by Idx
func (m *ProformaInvoiceModel) ToDomain() *proforma.ProformaInvoice {
	p := &proforma.ProformaInvoice{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Customer:          m.Customer,
		SourceSalesOrder:  m.SourceSalesOrder,
		ChildSalesOrder:   m.ChildSalesOrder,
		SupplierCompany:   m.SupplierCompany,
		InvoiceDate:       shared.DateOf(m.InvoiceDate),
		DueDate:           shared.DateOf(m.DueDate),
		GrandTotal:        m.GrandTotal,
		DocStatus:         proforma.DocStatus(m.DocStatus),
		Items:             make([]proforma.Item, len(m.Items)),
	}
	for i, it := range m.Items {
		p.Items[i] = proforma.Item{
			ID:              it.ID,
			Idx:             it.Idx,
			ItemCode:        it.ItemCode,
			ItemName:        it.ItemName,
			Qty:             it.Qty,
			Rate:            it.Rate,
			Amount:          it.Amount,
			SupplierCompany: it.SupplierCompany,
		}
	}
	return p
}

// ProformaInvoiceModelFromDomain creates a model from a domain ProformaInvoice
func ProformaInvoiceModelFromDomain(p *proforma.ProformaInvoice) *ProformaInvoiceModel {
	m := &ProformaInvoiceModel{
		Name:             p.Name,
		Customer:         p.Customer,
		SourceSalesOrder: p.SourceSalesOrder,
		ChildSalesOrder:  p.ChildSalesOrder,
		SupplierCompany:  p.SupplierCompany,
		InvoiceDate:      p.InvoiceDate,
		DueDate:          p.DueDate,
		GrandTotal:       p.GrandTotal,
		DocStatus:        int(p.DocStatus),
		Items:            make([]ProformaItemModel, len(p.Items)),
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	for i, it := range p.Items {
		m.Items[i] = ProformaItemModel{
			ID:              it.ID,
			ProformaID:      p.ID,
			Idx:             it.Idx,
			ItemCode:        it.ItemCode,
			ItemName:        it.ItemName,
			Qty:             it.Qty,
			Rate:            it.Rate,
			Amount:          it.Amount,
			SupplierCompany: it.SupplierCompany,
		}
	}
	return m
}

// AttachmentModel records a stored file attached to a document
type AttachmentModel struct {
	BaseModel
	AttachedToDoctype string `gorm:"type:varchar(140);not null;uniqueIndex:idx_attachment_file,priority:1"`
	AttachedToName    string `gorm:"type:varchar(140);not null;uniqueIndex:idx_attachment_file,priority:2"`
	FileName          string `gorm:"type:varchar(255);not null;uniqueIndex:idx_attachment_file,priority:3"`
	StorageKey        string `gorm:"type:varchar(500);not null"`
	ContentType       string `gorm:"type:varchar(100)"`
	Size              int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (AttachmentModel) TableName() string {
	return "attachments"
}

// ToDomain converts the model to a domain Attachment
func (m *AttachmentModel) ToDomain() *proforma.Attachment {
	return &proforma.Attachment{
		BaseEntity:        m.BaseModel.ToDomain(),
		AttachedToDoctype: m.AttachedToDoctype,
		AttachedToName:    m.AttachedToName,
		FileName:          m.FileName,
		StorageKey:        m.StorageKey,
		ContentType:       m.ContentType,
		Size:              m.Size,
	}
}

// AttachmentModelFromDomain creates a model from a domain Attachment
func AttachmentModelFromDomain(a *proforma.Attachment) *AttachmentModel {
	m := &AttachmentModel{
		AttachedToDoctype: a.AttachedToDoctype,
		AttachedToName:    a.AttachedToName,
		FileName:          a.FileName,
		StorageKey:        a.StorageKey,
		ContentType:       a.ContentType,
		Size:              a.Size,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
