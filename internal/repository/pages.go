package repository

import (
	"context"
	"errors"

	"canova-go/internal/flow"
	"canova-go/internal/models"

	"gorm.io/gorm"
)

type Pages struct {
	db *gorm.DB
}

func NewPages(db *gorm.DB) *Pages {
	return &Pages{db: db}
}

func (r *Pages) ByID(ctx context.Context, id string) (*models.Page, error) {
	var page models.Page
	err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, flow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *Pages) ByFormOrdered(ctx context.Context, formID string) ([]models.Page, error) {
	var pages []models.Page
	err := r.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("page_order ASC").
		Find(&pages).Error
	return pages, err
}

func (r *Pages) ByFormAndOrder(ctx context.Context, formID string, order int) (*models.Page, error) {
	var page models.Page
	err := r.db.WithContext(ctx).
		First(&page, "form_id = ? AND page_order = ?", formID, order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, flow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// AddNext appends a page to the end of a form, keeping page orders contiguous
// 1..N. The assignment runs in a transaction; the unique (form_id, page_order)
// index backstops concurrent appends.
func (r *Pages) AddNext(ctx context.Context, formID string) (*models.Page, error) {
	page := &models.Page{FormID: formID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		row := tx.Model(&models.Page{}).
			Where("form_id = ?", formID).
			Select("COALESCE(MAX(page_order), 0)").
			Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}
		page.Order = maxOrder + 1
		return tx.Create(page).Error
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}
