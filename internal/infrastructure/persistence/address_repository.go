package persistence

import (
	"context"

	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAddressRepository implements partner.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByName finds an address by name
func (r *GormAddressRepository) FindByName(ctx context.Context, name string) (*partner.Address, error) {
	var m models.AddressModel
	if err := conn(ctx, r.db).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists addresses; search matches name, city and pincode
func (r *GormAddressRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Address, int64, error) {
	query := likeAny(conn(ctx, r.db).Model(&models.AddressModel{}), filter.Search, "name", "city", "pincode")
	query, total, err := paginate(query, filter, MasterDataSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.AddressModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]partner.Address, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, address *partner.Address) error {
	return translate(conn(ctx, r.db).Save(models.AddressModelFromDomain(address)).Error)
}
