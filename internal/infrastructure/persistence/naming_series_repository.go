package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/culinary/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNamingSeries implements shared.NameGenerator with one counter row per prefix
type GormNamingSeries struct {
	db *gorm.DB
}

// NewGormNamingSeries creates a new GormNamingSeries
func NewGormNamingSeries(db *gorm.DB) *GormNamingSeries {
	return &GormNamingSeries{db: db}
}

var _ shared.NameGenerator = (*GormNamingSeries)(nil)

// Next increments the counter of prefix and returns e.g. AGR-00042
func (g *GormNamingSeries) Next(ctx context.Context, prefix string) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", shared.NewDomainError("INVALID_INPUT", "naming series prefix is required")
	}
	var row models.NamingSeriesModel
	err := conn(ctx, g.db).Transaction(func(tx *gorm.DB) error {
		seed := models.NamingSeriesModel{Prefix: prefix, Counter: 1}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "prefix"}},
			DoUpdates: clause.Assignments(map[string]any{"counter": gorm.Expr("naming_series.counter + 1")}),
		}).Create(&seed).Error; err != nil {
			return err
		}
		return tx.First(&row, "prefix = ?", prefix).Error
	})
	if err != nil {
		return "", fmt.Errorf("next name for %s: %w", prefix, err)
	}
	return fmt.Sprintf("%s-%05d", prefix, row.Counter), nil
}
