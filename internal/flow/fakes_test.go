package flow

import (
	"context"
	"fmt"
	"sort"

	"canova-go/internal/models"
)

// In-memory stores backing the flow tests.

type fakePages struct {
	pages []models.Page
	err   error
}

func (f *fakePages) ByID(ctx context.Context, id string) (*models.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.pages {
		if f.pages[i].ID == id {
			return &f.pages[i], nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakePages) ByFormOrdered(ctx context.Context, formID string) ([]models.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Page
	for _, p := range f.pages {
		if p.FormID == formID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakePages) ByFormAndOrder(ctx context.Context, formID string, order int) (*models.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.pages {
		if f.pages[i].FormID == formID && f.pages[i].Order == order {
			return &f.pages[i], nil
		}
	}
	return nil, ErrNotFound
}

type fakeConditions struct {
	conds     []models.Condition
	err       error
	createErr error
	created   []*models.Condition
}

func (f *fakeConditions) BySourcePage(ctx context.Context, formID, pageID string) ([]models.Condition, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Condition
	for _, c := range f.conds {
		if c.FormID == formID && c.SourcePage == pageID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (f *fakeConditions) ExistsWithQuestionKey(ctx context.Context, formID, sourcePage, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, c := range f.conds {
		if c.FormID == formID && c.SourcePage == sourcePage && c.QuestionKey == key {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConditions) Create(ctx context.Context, cond *models.Condition) error {
	if f.createErr != nil {
		return f.createErr
	}
	if cond.ID == "" {
		cond.ID = fmt.Sprintf("cond-%d", len(f.created)+1)
	}
	cond.Seq = int64(len(f.conds) + 1)
	f.created = append(f.created, cond)
	f.conds = append(f.conds, *cond)
	return nil
}

type fakeQuestions struct {
	questions []models.Question
	err       error
}

func (f *fakeQuestions) MultipleChoiceByPage(ctx context.Context, formID, pageID string) ([]models.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Question
	for _, q := range f.questions {
		if q.FormID == formID && q.PageID == pageID && q.Type == models.TypeMultipleChoice {
			out = append(out, q)
		}
	}
	return out, nil
}

// fourPages builds the standard fixture: pages p1..p4 with orders 1..4 on
// form f1.
func fourPages() *fakePages {
	return &fakePages{pages: []models.Page{
		{ID: "p1", FormID: "f1", Order: 1},
		{ID: "p2", FormID: "f1", Order: 2},
		{ID: "p3", FormID: "f1", Order: 3},
		{ID: "p4", FormID: "f1", Order: 4},
	}}
}
