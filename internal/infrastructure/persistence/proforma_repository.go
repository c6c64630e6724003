package persistence

import (
	"context"

	"github.com/culinary/backend/internal/domain/proforma"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProformaRepository implements proforma.Repository using GORM
type GormProformaRepository struct {
	db *gorm.DB
}

// NewGormProformaRepository creates a new GormProformaRepository
func NewGormProformaRepository(db *gorm.DB) *GormProformaRepository {
	return &GormProformaRepository{db: db}
}

// FindByName finds a proforma invoice with its lines
func (r *GormProformaRepository) FindByName(ctx context.Context, name string) (*proforma.ProformaInvoice, error) {
	var m models.ProformaInvoiceModel
	if err := conn(ctx, r.db).
		Preload("Items", orderItemsByIdx).
		First(&m, "name = ?", name).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindBySource returns all proformas of a parent order, ordered by name
func (r *GormProformaRepository) FindBySource(ctx context.Context, parent string) ([]proforma.ProformaInvoice, error) {
	var rows []models.ProformaInvoiceModel
	if err := conn(ctx, r.db).
		Preload("Items", orderItemsByIdx).
		Where("source_sales_order = ?", parent).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]proforma.ProformaInvoice, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindBySourceAndCompany returns the proforma of parent issued by company
func (r *GormProformaRepository) FindBySourceAndCompany(ctx context.Context, parent, company string) (*proforma.ProformaInvoice, error) {
	var m models.ProformaInvoiceModel
	if err := conn(ctx, r.db).
		Preload("Items", orderItemsByIdx).
		Where("source_sales_order = ? AND supplier_company = ?", parent, company).
		Order("name ASC").
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// Save creates or updates a proforma invoice and its lines
func (r *GormProformaRepository) Save(ctx context.Context, p *proforma.ProformaInvoice) error {
	m := models.ProformaInvoiceModelFromDomain(p)
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return translate(err)
		}
		return replaceChildren(tx, "proforma_id", m.ID, m.Items,
			func(it models.ProformaItemModel) uuid.UUID { return it.ID })
	})
}
