package persistence

import (
	"context"

	"github.com/culinary/backend/internal/domain/proforma"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAttachmentRepository implements proforma.AttachmentRepository using GORM
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// Find finds the attachment named fileName on a document
func (r *GormAttachmentRepository) Find(ctx context.Context, doctype, docname, fileName string) (*proforma.Attachment, error) {
	var m models.AttachmentModel
	if err := conn(ctx, r.db).
		Where("attached_to_doctype = ? AND attached_to_name = ? AND file_name = ?", doctype, docname, fileName).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindByDocument lists every attachment of a document
func (r *GormAttachmentRepository) FindByDocument(ctx context.Context, doctype, docname string) ([]proforma.Attachment, error) {
	var rows []models.AttachmentModel
	if err := conn(ctx, r.db).
		Where("attached_to_doctype = ? AND attached_to_name = ?", doctype, docname).
		Order("file_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]proforma.Attachment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates an attachment record
func (r *GormAttachmentRepository) Save(ctx context.Context, a *proforma.Attachment) error {
	return translate(conn(ctx, r.db).Save(models.AttachmentModelFromDomain(a)).Error)
}
