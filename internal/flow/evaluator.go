package flow

import (
	"context"
	"errors"

	"canova-go/internal/models"
	"canova-go/pkg/fault"

	"go.uber.org/zap"
)

// matcher decides whether a condition's rules are satisfied by an answer set.
// Matching is keyed by logic operator so OR/NOT can be added here without
// touching any call site.
type matcher func(rules []models.Rule, answers answerSet) bool

var matchers = map[models.LogicOperator]matcher{
	models.OperatorAND: matchAll,
}

// matchAll: every rule's adminAnswer must appear in the answer for its
// question. Short-circuits on the first miss; evaluation has no side effects
// so the short-circuit is unobservable.
func matchAll(rules []models.Rule, answers answerSet) bool {
	for _, r := range rules {
		if !answers.contains(r.QuestionID, r.AdminAnswer) {
			return false
		}
	}
	return true
}

// Evaluator computes the next page for a respondent. It is stateless and
// side-effect-free: identical inputs always yield the identical next page.
type Evaluator struct {
	conditions ConditionStore
	pages      PageStore
	log        *zap.Logger
}

func NewEvaluator(conditions ConditionStore, pages PageStore, log *zap.Logger) *Evaluator {
	return &Evaluator{conditions: conditions, pages: pages, log: log}
}

// NextPage returns the id of the page to show after pageID given the
// respondent's answers. An empty id with a nil error means the respondent has
// reached the end of the form.
//
// Conditions are tried in ascending Seq order; the first condition whose
// rules all match wins and its true destination is returned. When no
// condition matches, default sequencing applies: the page whose order is
// currentPage.order + 1.
func (e *Evaluator) NextPage(ctx context.Context, formID, pageID string, answers []Answer) (string, error) {
	conds, err := e.conditions.BySourcePage(ctx, formID, pageID)
	if err != nil {
		return "", fault.Internal("failed to load conditions", err)
	}

	idx := indexAnswers(answers)
	for i := range conds {
		cond := &conds[i]
		match, ok := matchers[cond.LogicOperator]
		if !ok {
			// Creation validates the operator, so this only happens on
			// hand-edited data. Treat as non-matching rather than guessing.
			e.log.Warn("Condition has unsupported logic operator",
				zap.String("condition_id", cond.ID),
				zap.String("operator", string(cond.LogicOperator)))
			continue
		}
		if match(cond.Rules, idx) {
			e.log.Debug("Condition matched",
				zap.String("condition_id", cond.ID),
				zap.String("next_page", cond.TrueDestinationPage))
			return cond.TrueDestinationPage, nil
		}
	}

	return e.defaultNext(ctx, formID, pageID)
}

// defaultNext resolves the no-branch fallback: the page following the
// current one in form order, or empty at the end of the form.
func (e *Evaluator) defaultNext(ctx context.Context, formID, pageID string) (string, error) {
	current, err := e.pages.ByID(ctx, pageID)
	if errors.Is(err, ErrNotFound) {
		return "", fault.NotFound("current page not found")
	}
	if err != nil {
		return "", fault.Internal("failed to load current page", err)
	}

	next, err := e.pages.ByFormAndOrder(ctx, formID, current.Order+1)
	if errors.Is(err, ErrNotFound) {
		// End of form. A valid terminal state, not an error.
		return "", nil
	}
	if err != nil {
		return "", fault.Internal("failed to load next page", err)
	}
	return next.ID, nil
}
