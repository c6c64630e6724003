package persistence

import (
	"context"
	"time"

	"github.com/culinary/backend/internal/domain/agreement"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAgreementRepository implements agreement.Repository using GORM
type GormAgreementRepository struct {
	db *gorm.DB
}

// NewGormAgreementRepository creates a new GormAgreementRepository
func NewGormAgreementRepository(db *gorm.DB) *GormAgreementRepository {
	return &GormAgreementRepository{db: db}
}

func preloadAgreementItems(db *gorm.DB) *gorm.DB {
	return db.Order("idx ASC")
}

// FindByID finds an agreement with its items
func (r *GormAgreementRepository) FindByID(ctx context.Context, id uuid.UUID) (*agreement.Agreement, error) {
	var m models.AgreementModel
	if err := conn(ctx, r.db).
		Preload("Items", preloadAgreementItems).
		Where("id = ?", id).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindByName finds an agreement with its items by name
func (r *GormAgreementRepository) FindByName(ctx context.Context, name string) (*agreement.Agreement, error) {
	var m models.AgreementModel
	if err := conn(ctx, r.db).
		Preload("Items", preloadAgreementItems).
		Where("name = ?", name).
		First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.ToDomain(), nil
}

// FindAll lists agreements with their items
func (r *GormAgreementRepository) FindAll(ctx context.Context, filter agreement.ListFilter) ([]agreement.Agreement, int64, error) {
	query := likeAny(conn(ctx, r.db).Model(&models.AgreementModel{}), filter.Search, "name", "customer", "supplier")
	if filter.Customer != "" {
		query = query.Where("customer = ?", filter.Customer)
	}
	if filter.Supplier != "" {
		query = query.Where("supplier = ?", filter.Supplier)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	query, total, err := paginate(query, filter.Filter, AgreementSortFields, "created_at")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.AgreementModel
	if err := query.Preload("Items", preloadAgreementItems).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return agreementsToDomain(rows), total, nil
}

// FindNotCancelled returns every draft or submitted agreement
func (r *GormAgreementRepository) FindNotCancelled(ctx context.Context) ([]agreement.Agreement, error) {
	var rows []models.AgreementModel
	if err := conn(ctx, r.db).
		Preload("Items", preloadAgreementItems).
		Where("doc_status <> ?", int(agreement.DocStatusCancelled)).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return agreementsToDomain(rows), nil
}

// FindSubmittedFor returns submitted agreements of the pair, excluding the named one
func (r *GormAgreementRepository) FindSubmittedFor(ctx context.Context, customer, supplier, exclude string) ([]agreement.Summary, error) {
	var rows []models.AgreementModel
	if err := conn(ctx, r.db).
		Select("name", "valid_from", "valid_to", "status").
		Where("customer = ? AND supplier = ? AND doc_status = ? AND name <> ?",
			customer, supplier, int(agreement.DocStatusSubmitted), exclude).
		Order("valid_from DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]agreement.Summary, len(rows))
	for i, m := range rows {
		out[i] = agreement.Summary{
			Name:      m.Name,
			ValidFrom: utcDate(m.ValidFrom),
			ValidTo:   utcDate(m.ValidTo),
			Status:    agreement.Status(m.Status),
		}
	}
	return out, nil
}

// CountActiveForCustomer counts submitted Active agreements of customer, excluding the named one
func (r *GormAgreementRepository) CountActiveForCustomer(ctx context.Context, customer, exclude string) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.AgreementModel{}).
		Where("customer = ? AND doc_status = ? AND status = ? AND name <> ?",
			customer, int(agreement.DocStatusSubmitted), string(agreement.StatusActive), exclude).
		Count(&count).Error
	return count, err
}

type itemMatchRow struct {
	AgreementName string
	Supplier      string
	ItemCode      string
	PriceListRate decimal.Decimal
	Currency      string
	ValidFrom     *time.Time
	ValidTo       *time.Time
}

// FindItemMatches returns submitted agreement rows of customer for item, latest valid_from first
func (r *GormAgreementRepository) FindItemMatches(ctx context.Context, customer, itemCode string) ([]agreement.ItemMatch, error) {
	var rows []itemMatchRow
	if err := conn(ctx, r.db).
		Table("agreement_items AS ai").
		Select("ag.name AS agreement_name, ag.supplier, ai.item_code, ai.price_list_rate, ai.currency, ag.valid_from, ag.valid_to").
		Joins("JOIN agreements ag ON ag.id = ai.agreement_id").
		Where("ag.customer = ? AND ai.item_code = ? AND ag.doc_status = ?",
			customer, itemCode, int(agreement.DocStatusSubmitted)).
		Order("ag.valid_from DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	matches := make([]agreement.ItemMatch, len(rows))
	for i, row := range rows {
		matches[i] = agreement.ItemMatch{
			Agreement:     row.AgreementName,
			Supplier:      row.Supplier,
			ItemCode:      row.ItemCode,
			PriceListRate: row.PriceListRate,
			Currency:      row.Currency,
			ValidFrom:     utcDate(row.ValidFrom),
			ValidTo:       utcDate(row.ValidTo),
		}
	}
	return matches, nil
}

// Save creates or updates an agreement and its items without a version check
func (r *GormAgreementRepository) Save(ctx context.Context, a *agreement.Agreement) error {
	m := models.AgreementModelFromDomain(a)
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(m).Error; err != nil {
			return translate(err)
		}
		return replaceChildren(tx, "agreement_id", m.ID, m.Items,
			func(it models.AgreementItemModel) uuid.UUID { return it.ID })
	})
}

// SaveWithLock saves with optimistic locking (version check) and bumps the version
func (r *GormAgreementRepository) SaveWithLock(ctx context.Context, a *agreement.Agreement) error {
	m := models.AgreementModelFromDomain(a)
	m.Version = a.Version + 1
	m.UpdatedAt = time.Now()
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := lockedUpdate(tx, m, a.ID, a.Version); err != nil {
			return err
		}
		return replaceChildren(tx, "agreement_id", m.ID, m.Items,
			func(it models.AgreementItemModel) uuid.UUID { return it.ID })
	})
	if err != nil {
		return err
	}
	a.Version = m.Version
	a.UpdatedAt = m.UpdatedAt
	return nil
}

func agreementsToDomain(rows []models.AgreementModel) []agreement.Agreement {
	out := make([]agreement.Agreement, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}
