package persistence

import (
	"context"
	"time"

	"github.com/culinary/backend/internal/domain/trade"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSalesOrderRepository implements trade.SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

func orderItemsByIdx(db *gorm.DB) *gorm.DB {
	return db.Order("idx ASC")
}

// FindByID finds a sales order by its ID
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var m models.SalesOrderModel
	if err := conn(ctx, r.db).
		Preload("Items", orderItemsByIdx).
		First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindByName finds a sales order by its document name
func (r *GormSalesOrderRepository) FindByName(ctx context.Context, name string) (*trade.SalesOrder, error) {
	var m models.SalesOrderModel
	if err := conn(ctx, r.db).
		Preload("Items", orderItemsByIdx).
		First(&m, "name = ?", name).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists sales orders matching filter
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, filter trade.ListFilter) ([]trade.SalesOrder, int64, error) {
	query := likeAny(conn(ctx, r.db).Model(&models.SalesOrderModel{}), filter.Search, "name", "customer", "company")
	if filter.Company != "" {
		query = query.Where("company = ?", filter.Company)
	}
	if filter.Customer != "" {
		query = query.Where("customer = ?", filter.Customer)
	}
	if filter.SourceWebSO != "" {
		query = query.Where("source_web_so = ?", filter.SourceWebSO)
	}
	if filter.DocStatus != nil {
		query = query.Where("doc_status = ?", int(*filter.DocStatus))
	}
	query, total, err := paginate(query, filter.Filter, SalesOrderSortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.SalesOrderModel
	if err := query.Preload("Items", orderItemsByIdx).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return ordersToDomain(rows), total, nil
}

// FindChildren returns the orders split from parent, ordered by name
func (r *GormSalesOrderRepository) FindChildren(ctx context.Context, parent string) ([]trade.SalesOrder, error) {
	var rows []models.SalesOrderModel
	if err := conn(ctx, r.db).
		Preload("Items", orderItemsByIdx).
		Where("source_web_so = ?", parent).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return ordersToDomain(rows), nil
}

// ChildExists reports whether parent already has a child order for company
func (r *GormSalesOrderRepository) ChildExists(ctx context.Context, parent, company string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.SalesOrderModel{}).
		Where("source_web_so = ? AND company = ?", parent, company).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a sales order and its items
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	m := models.SalesOrderModelFromDomain(order)
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return translate(err)
		}
		return replaceChildren(tx, "order_id", m.ID, m.Items,
			func(it models.SalesOrderItemModel) uuid.UUID { return it.ID })
	})
}

// SaveWithLock saves with optimistic locking (version check) and bumps the version
func (r *GormSalesOrderRepository) SaveWithLock(ctx context.Context, order *trade.SalesOrder) error {
	m := models.SalesOrderModelFromDomain(order)
	m.Version = order.Version + 1
	m.UpdatedAt = time.Now()
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := lockedUpdate(tx, m, order.ID, order.Version); err != nil {
			return err
		}
		return replaceChildren(tx, "order_id", m.ID, m.Items,
			func(it models.SalesOrderItemModel) uuid.UUID { return it.ID })
	})
	if err != nil {
		return err
	}
	order.Version = m.Version
	order.UpdatedAt = m.UpdatedAt
	return nil
}

func ordersToDomain(rows []models.SalesOrderModel) []trade.SalesOrder {
	out := make([]trade.SalesOrder, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}
