package flow

import (
	"encoding/json"
	"fmt"

	"canova-go/internal/models"
)

// Answer is one respondent answer, supplied per evaluation call and never
// persisted here. Rule matching only checks membership of the rule's
// adminAnswer within SelectedOptions.
type Answer struct {
	QuestionID      string   `json:"questionId"`
	SelectedOptions []string `json:"selectedOptions"`
}

// PageRef is a page reference that may arrive either as a raw id
// ("page-123") or as an already-populated page object ({"_id": "page-123"}).
// The shape is resolved here, at the boundary, so nothing downstream ever
// branches on it.
type PageRef struct {
	ID string
}

func (r *PageRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		return nil
	}
	var obj struct {
		UnderscoreID string `json:"_id"`
		ID           string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("page reference must be an id or a page object: %w", err)
	}
	if obj.UnderscoreID != "" {
		r.ID = obj.UnderscoreID
	} else {
		r.ID = obj.ID
	}
	return nil
}

func (r PageRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// PageStep is one entry of a previewed page sequence. PageName is synthesized
// for display; it is not a stored field.
type PageStep struct {
	PageID    string `json:"pageId"`
	PageName  string `json:"pageName"`
	PageOrder int    `json:"pageOrder"`
}

func stepFor(p *models.Page) PageStep {
	return PageStep{
		PageID:    p.ID,
		PageName:  fmt.Sprintf("Page %02d", p.Order),
		PageOrder: p.Order,
	}
}

// answerSet indexes a respondent's answers for O(1) rule lookups:
// question id -> set of selected options.
type answerSet map[string]map[string]struct{}

func indexAnswers(answers []Answer) answerSet {
	idx := make(answerSet, len(answers))
	for _, a := range answers {
		opts, ok := idx[a.QuestionID]
		if !ok {
			opts = make(map[string]struct{}, len(a.SelectedOptions))
			idx[a.QuestionID] = opts
		}
		for _, o := range a.SelectedOptions {
			opts[o] = struct{}{}
		}
	}
	return idx
}

// contains reports whether the answer for questionID includes option.
func (s answerSet) contains(questionID, option string) bool {
	opts, ok := s[questionID]
	if !ok {
		return false
	}
	_, ok = opts[option]
	return ok
}
