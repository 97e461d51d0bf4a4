package repository

import (
	"context"
	"errors"

	"canova-go/internal/flow"
	"canova-go/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pqUniqueViolation = "23505"

type Conditions struct {
	db *gorm.DB
}

func NewConditions(db *gorm.DB) *Conditions {
	return &Conditions{db: db}
}

// BySourcePage returns conditions in ascending Seq order with their rules in
// admin-authored order. Seq order is the authoritative first-created-wins
// tie-break for evaluation.
func (r *Conditions) BySourcePage(ctx context.Context, formID, pageID string) ([]models.Condition, error) {
	var conds []models.Condition
	err := r.db.WithContext(ctx).
		Where("form_id = ? AND source_page = ?", formID, pageID).
		Order("seq ASC").
		Preload("Rules", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&conds).Error
	return conds, err
}

func (r *Conditions) ExistsWithQuestionKey(ctx context.Context, formID, sourcePage, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Condition{}).
		Where("form_id = ? AND source_page = ? AND question_key = ?", formID, sourcePage, key).
		Count(&count).Error
	return count > 0, err
}

func (r *Conditions) Create(ctx context.Context, cond *models.Condition) error {
	err := r.db.WithContext(ctx).Create(cond).Error
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return flow.ErrDuplicateCondition
	}
	return err
}
