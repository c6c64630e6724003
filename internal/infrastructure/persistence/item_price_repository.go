package persistence

import (
	"context"
	"errors"

	"github.com/culinary/backend/internal/domain/pricing"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormItemPriceRepository implements pricing.ItemPriceRepository using GORM
type GormItemPriceRepository struct {
	db *gorm.DB
}

// NewGormItemPriceRepository creates a new GormItemPriceRepository
func NewGormItemPriceRepository(db *gorm.DB) *GormItemPriceRepository {
	return &GormItemPriceRepository{db: db}
}

// FindByKey finds the price matching the natural key; nil dates match NULL columns
func (r *GormItemPriceRepository) FindByKey(ctx context.Context, key pricing.ItemPriceKey) (*pricing.ItemPrice, error) {
	query := conn(ctx, r.db).
		Where("price_list = ? AND item_code = ? AND currency = ?", key.PriceList, key.ItemCode, key.Currency)
	if key.ValidFrom == nil {
		query = query.Where("valid_from IS NULL")
	} else {
		query = query.Where("valid_from = ?", *key.ValidFrom)
	}
	if key.ValidUpto == nil {
		query = query.Where("valid_upto IS NULL")
	} else {
		query = query.Where("valid_upto = ?", *key.ValidUpto)
	}

	var m models.ItemPriceModel
	if err := query.First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindByPriceList returns all prices of a list ordered by item code
func (r *GormItemPriceRepository) FindByPriceList(ctx context.Context, priceList string) ([]pricing.ItemPrice, error) {
	var rows []models.ItemPriceModel
	if err := conn(ctx, r.db).
		Where("price_list = ?", priceList).
		Order("item_code ASC, valid_from ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]pricing.ItemPrice, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// DeleteOverlapping removes prices of item in priceList whose validity overlaps window.
// A row overlaps when (valid_from IS NULL OR valid_from <= upto) and
// (valid_upto IS NULL OR valid_upto >= from); an open window bound drops its condition.
func (r *GormItemPriceRepository) DeleteOverlapping(ctx context.Context, priceList, itemCode string, window pricing.DateRange) (int64, error) {
	query := conn(ctx, r.db).Where("price_list = ? AND item_code = ?", priceList, itemCode)
	if window.Upto != nil {
		query = query.Where("(valid_from IS NULL OR valid_from <= ?)", *window.Upto)
	}
	if window.From != nil {
		query = query.Where("(valid_upto IS NULL OR valid_upto >= ?)", *window.From)
	}
	res := query.Delete(&models.ItemPriceModel{})
	return res.RowsAffected, res.Error
}

// CountByItem counts prices of item in priceList
func (r *GormItemPriceRepository) CountByItem(ctx context.Context, priceList, itemCode string) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.ItemPriceModel{}).
		Where("price_list = ? AND item_code = ?", priceList, itemCode).
		Count(&count).Error
	return count, err
}

// FindRate returns the most recently updated rate of item in priceList and currency
func (r *GormItemPriceRepository) FindRate(ctx context.Context, priceList, itemCode, currency string) (decimal.Decimal, bool, error) {
	return r.firstRate(conn(ctx, r.db).
		Where("price_list = ? AND item_code = ? AND currency = ?", priceList, itemCode, currency).
		Order("updated_at DESC"))
}

// FindRates returns rates of several items in priceList and currency, keyed by item code
func (r *GormItemPriceRepository) FindRates(ctx context.Context, priceList, currency string, itemCodes []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(itemCodes))
	if len(itemCodes) == 0 {
		return out, nil
	}
	var rows []models.ItemPriceModel
	if err := conn(ctx, r.db).
		Where("price_list = ? AND currency = ? AND item_code IN ?", priceList, currency, itemCodes).
		Order("updated_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	// ascending order lets the newest row per item win
	for _, row := range rows {
		out[row.ItemCode] = row.Rate
	}
	return out, nil
}

// FindLatestSellingRate returns the newest selling rate of item in currency across all lists.
// Rows with a start date win over open-ended ones, then later starts, then later updates.
func (r *GormItemPriceRepository) FindLatestSellingRate(ctx context.Context, itemCode, currency string) (decimal.Decimal, bool, error) {
	return r.firstRate(conn(ctx, r.db).
		Where("item_code = ? AND currency = ? AND selling = ?", itemCode, currency, true).
		Order("CASE WHEN valid_from IS NULL THEN 1 ELSE 0 END, valid_from DESC, updated_at DESC"))
}

// FindAgreementRate returns the rate written for agreement into priceList
func (r *GormItemPriceRepository) FindAgreementRate(ctx context.Context, priceList, itemCode, currency, agreementName string) (decimal.Decimal, bool, error) {
	return r.firstRate(conn(ctx, r.db).
		Where("price_list = ? AND item_code = ? AND currency = ? AND agreement = ?", priceList, itemCode, currency, agreementName).
		Order("updated_at DESC"))
}

func (r *GormItemPriceRepository) firstRate(query *gorm.DB) (decimal.Decimal, bool, error) {
	var m models.ItemPriceModel
	err := query.First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	return m.Rate, true, nil
}

// Save creates or updates an item price
func (r *GormItemPriceRepository) Save(ctx context.Context, price *pricing.ItemPrice) error {
	return translate(conn(ctx, r.db).Save(models.ItemPriceModelFromDomain(price)).Error)
}
