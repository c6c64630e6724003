package persistence

import (
	"context"

	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBrandRepository implements partner.BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

func preloadBrandDefaults(db *gorm.DB) *gorm.DB {
	return db.Order("idx ASC")
}

// FindByName finds a brand and its default rows by name
func (r *GormBrandRepository) FindByName(ctx context.Context, name string) (*partner.Brand, error) {
	var m models.BrandModel
	if err := conn(ctx, r.db).
		Preload("Defaults", preloadBrandDefaults).
		Where("name = ?", name).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists brands
func (r *GormBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Brand, int64, error) {
	query := likeAny(conn(ctx, r.db).Model(&models.BrandModel{}), filter.Search, "name")
	query, total, err := paginate(query, filter, MasterDataSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.BrandModel
	if err := query.Preload("Defaults", preloadBrandDefaults).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]partner.Brand, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a brand, replacing its default rows
func (r *GormBrandRepository) Save(ctx context.Context, brand *partner.Brand) error {
	m := models.BrandModelFromDomain(brand)
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Defaults").Save(m).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("brand_id = ?", m.ID).Delete(&models.BrandDefaultModel{}).Error; err != nil {
			return err
		}
		if len(m.Defaults) == 0 {
			return nil
		}
		return tx.Create(&m.Defaults).Error
	})
}
