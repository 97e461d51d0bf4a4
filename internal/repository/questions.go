package repository

import (
	"context"

	"canova-go/internal/models"

	"gorm.io/gorm"
)

type Questions struct {
	db *gorm.DB
}

func NewQuestions(db *gorm.DB) *Questions {
	return &Questions{db: db}
}

func (r *Questions) MultipleChoiceByPage(ctx context.Context, formID, pageID string) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Where("form_id = ? AND page_id = ? AND type = ?", formID, pageID, models.TypeMultipleChoice).
		Order("created_at ASC").
		Find(&questions).Error
	return questions, err
}

func (r *Questions) Create(ctx context.Context, q *models.Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}
