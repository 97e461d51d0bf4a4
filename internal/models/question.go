package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// QuestionType enumerates the supported question kinds. The wire strings
// match the form editor's vocabulary.
type QuestionType string

const (
	TypeShort          QuestionType = "short"
	TypeLong           QuestionType = "long"
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeTime           QuestionType = "time"
	TypeRating         QuestionType = "rating"
	TypeCheckbox       QuestionType = "checkbox"
	TypeDropdowns      QuestionType = "dropdowns"
	TypeDate           QuestionType = "date"
	TypeLinearScale    QuestionType = "LinearScale"
	TypeUpload         QuestionType = "upload"
)

// Valid reports whether t is a member of the enumeration.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeShort, TypeLong, TypeMultipleChoice, TypeTime, TypeRating,
		TypeCheckbox, TypeDropdowns, TypeDate, TypeLinearScale, TypeUpload:
		return true
	}
	return false
}

// HasOptions reports whether t carries an option set.
func (t QuestionType) HasOptions() bool {
	return t == TypeMultipleChoice || t == TypeCheckbox || t == TypeDropdowns
}

// Question belongs to one page of a form. Options is populated only for
// option-carrying types. Only multiple-choice questions may be referenced
// by a branching rule.
type Question struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	FormID    string         `gorm:"index:idx_questions_form_page" json:"formId"`
	PageID    string         `gorm:"index:idx_questions_form_page" json:"pageId"`
	Type      QuestionType   `json:"type"`
	Options   pq.StringArray `gorm:"type:text[]" json:"options,omitempty"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
