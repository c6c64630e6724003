package persistence

import (
	"context"

	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByName finds a supplier by name
func (r *GormSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	var m models.SupplierModel
	if err := conn(ctx, r.db).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists suppliers
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, int64, error) {
	query := likeAny(conn(ctx, r.db).Model(&models.SupplierModel{}), filter.Search, "name")
	query, total, err := paginate(query, filter, MasterDataSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.SupplierModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]partner.Supplier, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return translate(conn(ctx, r.db).Save(models.SupplierModelFromDomain(supplier)).Error)
}
