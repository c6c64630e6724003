package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/culinary/backend/internal/domain/pricing"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCurrencyExchangeRepository implements pricing.CurrencyExchangeRepository using GORM
type GormCurrencyExchangeRepository struct {
	db *gorm.DB
}

// NewGormCurrencyExchangeRepository creates a new GormCurrencyExchangeRepository
func NewGormCurrencyExchangeRepository(db *gorm.DB) *GormCurrencyExchangeRepository {
	return &GormCurrencyExchangeRepository{db: db}
}

// FindLatest returns the newest rate for the pair dated on or before date
func (r *GormCurrencyExchangeRepository) FindLatest(ctx context.Context, from, to string, date time.Time) (*pricing.CurrencyExchange, error) {
	var m models.CurrencyExchangeModel
	if err := conn(ctx, r.db).
		Where("from_currency = ? AND to_currency = ? AND date <= ?",
			strings.ToUpper(from), strings.ToUpper(to), shared.DateOf(date)).
		Order("date DESC, updated_at DESC").
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// Save creates or updates an exchange rate
func (r *GormCurrencyExchangeRepository) Save(ctx context.Context, rate *pricing.CurrencyExchange) error {
	return translate(conn(ctx, r.db).Save(models.CurrencyExchangeModelFromDomain(rate)).Error)
}
