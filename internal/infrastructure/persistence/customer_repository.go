package persistence

import (
	"context"

	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByName finds a customer by name
func (r *GormCustomerRepository) FindByName(ctx context.Context, name string) (*partner.Customer, error) {
	var m models.CustomerModel
	if err := conn(ctx, r.db).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists customers
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, int64, error) {
	query := likeAny(conn(ctx, r.db).Model(&models.CustomerModel{}), filter.Search, "name")
	query, total, err := paginate(query, filter, MasterDataSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.CustomerModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]partner.Customer, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return translate(conn(ctx, r.db).Save(models.CustomerModelFromDomain(customer)).Error)
}
