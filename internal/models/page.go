package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Page is one screen of a form. Order is 1-based and contiguous within a
// form; it is the canonical default-sequencing key.
type Page struct {
	ID        string `gorm:"primaryKey" json:"id"`
	FormID    string `gorm:"index:idx_pages_form_order,unique" json:"formId"`
	Order     int    `gorm:"column:page_order;index:idx_pages_form_order,unique" json:"order"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
