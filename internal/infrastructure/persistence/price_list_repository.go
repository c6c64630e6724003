package persistence

import (
	"context"

	"github.com/culinary/backend/internal/domain/pricing"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPriceListRepository implements pricing.PriceListRepository using GORM
type GormPriceListRepository struct {
	db *gorm.DB
}

// NewGormPriceListRepository creates a new GormPriceListRepository
func NewGormPriceListRepository(db *gorm.DB) *GormPriceListRepository {
	return &GormPriceListRepository{db: db}
}

// FindByName finds a price list by name
func (r *GormPriceListRepository) FindByName(ctx context.Context, name string) (*pricing.PriceList, error) {
	var m models.PriceListModel
	if err := conn(ctx, r.db).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// ExistsByName reports whether a price list named name exists
func (r *GormPriceListRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.PriceListModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a price list
func (r *GormPriceListRepository) Save(ctx context.Context, list *pricing.PriceList) error {
	return translate(conn(ctx, r.db).Save(models.PriceListModelFromDomain(list)).Error)
}
