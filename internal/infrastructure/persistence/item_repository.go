package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/culinary/backend/internal/domain/catalog"
	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func preloadItemSuppliers(db *gorm.DB) *gorm.DB {
	return db.Order("idx ASC")
}

// searchColumn maps a link-search field onto its items column
func searchColumn(f catalog.SearchField) string {
	if f == catalog.SearchFieldItemName {
		return "i.item_name"
	}
	return "i.code"
}

// FindByCode finds an item by code
func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	var m models.ItemModel
	if err := conn(ctx, r.db).
		Preload("Suppliers", preloadItemSuppliers).
		Where("code = ?", code).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindByCodes returns the items among codes that exist
func (r *GormItemRepository) FindByCodes(ctx context.Context, codes []string) ([]catalog.Item, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var rows []models.ItemModel
	if err := conn(ctx, r.db).
		Preload("Suppliers", preloadItemSuppliers).
		Where("code IN ?", codes).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return itemsToDomain(rows), nil
}

// FindAll lists items; filter.Filters may hold "brand", "item_group", "is_kitchen_item" and "disabled"
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, int64, error) {
	query := likeAny(conn(ctx, r.db).Model(&models.ItemModel{}), filter.Search, "code", "item_name")
	for key, value := range filter.Filters {
		switch key {
		case "brand", "item_group", "is_kitchen_item", "disabled":
			query = query.Where(key+" = ?", value)
		}
	}
	query, total, err := paginate(query, filter, ItemSortFields, "code")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.ItemModel
	if err := query.Preload("Suppliers", preloadItemSuppliers).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return itemsToDomain(rows), total, nil
}

// FindSalesItemsBySupplier returns enabled sales items supplied by supplier, ordered by item name
func (r *GormItemRepository) FindSalesItemsBySupplier(ctx context.Context, supplier string) ([]catalog.Item, error) {
	var rows []models.ItemModel
	if err := conn(ctx, r.db).
		Table("items AS i").
		Select("i.*").
		Where("i.disabled = ? AND i.is_sales_item = ?", false, true).
		Where("EXISTS (SELECT 1 FROM item_suppliers s WHERE s.item_id = i.id AND s.supplier = ?)", supplier).
		Order("i.item_name ASC").
		Preload("Suppliers", preloadItemSuppliers).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return itemsToDomain(rows), nil
}

// SearchBySupplier returns items that list supplier, most recently updated first
func (r *GormItemRepository) SearchBySupplier(ctx context.Context, supplier string, search catalog.ItemSearch) ([]catalog.ItemOption, error) {
	search = search.Normalize()
	pattern := strings.ToLower(search.LikePattern())
	col := searchColumn(search.SearchField)

	var out []catalog.ItemOption
	err := conn(ctx, r.db).
		Table("items AS i").
		Select("i.code AS code, i.item_name AS name").
		Where("EXISTS (SELECT 1 FROM item_suppliers s WHERE s.item_id = i.id AND s.supplier = ?)", supplier).
		Where("(LOWER("+col+") LIKE ? OR LOWER(i.item_name) LIKE ?)", pattern, pattern).
		Order("i.updated_at DESC").
		Limit(search.PageLen).
		Offset(search.Start).
		Scan(&out).Error
	return out, err
}

// SearchByCustomerAgreement returns items of the customer's submitted agreements
// valid on date, the same agreements FindItemMatches prices orders from. Open validity bounds are unbounded.
func (r *GormItemRepository) SearchByCustomerAgreement(ctx context.Context, customer string, date time.Time, search catalog.ItemSearch) ([]catalog.ItemOption, error) {
	search = search.Normalize()
	pattern := strings.ToLower(search.LikePattern())
	col := searchColumn(search.SearchField)
	day := shared.DateOf(date)

	var out []catalog.ItemOption
	err := conn(ctx, r.db).
		Table("agreements AS ag").
		Select("i.code AS code, i.item_name AS name").
		Joins("JOIN agreement_items ai ON ai.agreement_id = ag.id").
		Joins("JOIN items i ON i.code = ai.item_code").
		Where("ag.customer = ? AND ag.doc_status = ?", customer, int(agreement.DocStatusSubmitted)).
		Where("(ag.valid_from IS NULL OR ag.valid_from <= ?)", day).
		Where("(ag.valid_to IS NULL OR ag.valid_to >= ?)", day).
		Where("(LOWER("+col+") LIKE ? OR LOWER(i.item_name) LIKE ?)", pattern, pattern).
		Group("i.code, i.item_name").
		Order("MAX(ag.valid_from) DESC").
		Limit(search.PageLen).
		Offset(search.Start).
		Scan(&out).Error
	return out, err
}

// Save creates or updates an item and replaces its supplier rows
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	item.RefreshSupplierDisplay()
	m := models.ItemModelFromDomain(item)
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Suppliers").Save(m).Error; err != nil {
			return translate(err)
		}
		if err := tx.Where("item_id = ?", m.ID).Delete(&models.ItemSupplierModel{}).Error; err != nil {
			return err
		}
		if len(m.Suppliers) == 0 {
			return nil
		}
		return tx.Create(&m.Suppliers).Error
	})
}

func itemsToDomain(rows []models.ItemModel) []catalog.Item {
	out := make([]catalog.Item, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

