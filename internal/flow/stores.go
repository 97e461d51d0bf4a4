package flow

import (
	"context"
	"errors"

	"canova-go/internal/models"
)

// ErrNotFound is returned by stores when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ErrDuplicateCondition is returned by ConditionStore.Create when the store's
// uniqueness constraint rejects a condition whose question set already exists
// on the same source page.
var ErrDuplicateCondition = errors.New("duplicate condition")

// QuestionStore looks up question definitions and their option sets.
type QuestionStore interface {
	// MultipleChoiceByPage returns the multiple-choice questions of one page.
	MultipleChoiceByPage(ctx context.Context, formID, pageID string) ([]models.Question, error)
}

// PageStore provides the ordered page list of a form.
type PageStore interface {
	ByID(ctx context.Context, id string) (*models.Page, error)
	// ByFormOrdered returns all pages of a form sorted by ascending order.
	ByFormOrdered(ctx context.Context, formID string) ([]models.Page, error)
	ByFormAndOrder(ctx context.Context, formID string, order int) (*models.Page, error)
}

// ConditionStore persists and retrieves branching conditions.
type ConditionStore interface {
	// BySourcePage returns the conditions attached to a source page in
	// ascending Seq order. First created is evaluated first.
	BySourcePage(ctx context.Context, formID, pageID string) ([]models.Condition, error)
	// ExistsWithQuestionKey reports whether a condition with the given
	// normalized question key already exists on (formID, sourcePage).
	ExistsWithQuestionKey(ctx context.Context, formID, sourcePage, key string) (bool, error)
	Create(ctx context.Context, cond *models.Condition) error
}
