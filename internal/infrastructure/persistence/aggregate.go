package persistence

import (
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockedUpdate overwrites the row of model while its version still equals expected.
// model must already carry the next version.
func lockedUpdate(tx *gorm.DB, model any, id uuid.UUID, expected int) error {
	res := tx.Model(model).
		Where("id = ? AND version = ?", id, expected).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(model)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return shared.ErrConcurrentModification
}

// replaceChildren deletes the parent's child rows missing from rows, then upserts rows
func replaceChildren[T any](tx *gorm.DB, fkColumn string, parentID uuid.UUID, rows []T, idOf func(T) uuid.UUID) error {
	keep := make([]uuid.UUID, len(rows))
	for i := range rows {
		keep[i] = idOf(rows[i])
	}
	query := tx.Where(fkColumn+" = ?", parentID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	if err := query.Delete(new(T)).Error; err != nil {
		return err
	}
	for i := range rows {
		if err := tx.Save(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := shared.DateOf(*t)
	return &d
}
