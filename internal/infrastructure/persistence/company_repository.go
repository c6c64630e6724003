package persistence

import (
	"context"
	"errors"

	"github.com/culinary/backend/internal/domain/partner"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCompanyRepository implements partner.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByName finds a company by its unique name
func (r *GormCompanyRepository) FindByName(ctx context.Context, name string) (*partner.Company, error) {
	var m models.CompanyModel
	if err := conn(ctx, r.db).Where("name = ?", name).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists companies
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Company, int64, error) {
	query := likeAny(conn(ctx, r.db).Model(&models.CompanyModel{}), filter.Search, "name", "abbr")
	query, total, err := paginate(query, filter, MasterDataSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.CompanyModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	out := make([]partner.Company, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// FindByNamePrefix returns companies whose name starts with prefix, ordered by name
func (r *GormCompanyRepository) FindByNamePrefix(ctx context.Context, prefix string) ([]partner.Company, error) {
	var rows []models.CompanyModel
	if err := conn(ctx, r.db).
		Where(`name LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]partner.Company, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsByName reports whether a company with name exists
func (r *GormCompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.CompanyModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DefaultCurrency returns the default currency of the first non-group company
func (r *GormCompanyRepository) DefaultCurrency(ctx context.Context) (string, error) {
	var m models.CompanyModel
	err := conn(ctx, r.db).
		Where("is_group = ? AND default_currency <> ''", false).
		Order("created_at ASC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return m.DefaultCurrency, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *partner.Company) error {
	return translate(conn(ctx, r.db).Save(models.CompanyModelFromDomain(company)).Error)
}
