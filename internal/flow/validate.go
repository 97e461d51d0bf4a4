package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"canova-go/internal/models"
	"canova-go/pkg/fault"

	"go.uber.org/zap"
)

// RuleInput is one proposed {question, expected answer} predicate.
type RuleInput struct {
	QuestionID  string `json:"questionId"`
	AdminAnswer string `json:"adminAnswer"`
}

// CreateConditionInput carries an admin's proposed condition. Destination
// references have already been resolved to canonical ids (see PageRef).
type CreateConditionInput struct {
	FormID               string
	PageID               string
	Rules                []RuleInput
	SourcePage           string
	TrueDestinationPage  string
	FalseDestinationPage string
	LogicOperator        string
}

// Service validates and persists conditions. Validation runs eagerly and in
// full before any write; a rejected condition is never partially persisted.
type Service struct {
	questions  QuestionStore
	conditions ConditionStore
	log        *zap.Logger
}

func NewService(questions QuestionStore, conditions ConditionStore, log *zap.Logger) *Service {
	return &Service{questions: questions, conditions: conditions, log: log}
}

// CreateCondition validates in and persists the resulting condition.
func (s *Service) CreateCondition(ctx context.Context, in CreateConditionInput) (*models.Condition, error) {
	if len(in.Rules) == 0 {
		return nil, fault.ClientInput("rules must be a non-empty array")
	}
	if in.TrueDestinationPage == "" {
		return nil, fault.ClientInput("trueDestinationPage is required")
	}

	sourcePage := in.SourcePage
	if sourcePage == "" {
		sourcePage = in.PageID
	}

	operator := models.LogicOperator(in.LogicOperator)
	if operator == "" {
		operator = models.OperatorAND
	}
	if !operator.Valid() {
		return nil, fault.Validation(fmt.Sprintf("unsupported logic operator %q", in.LogicOperator))
	}

	questions, err := s.questions.MultipleChoiceByPage(ctx, in.FormID, in.PageID)
	if err != nil {
		return nil, fault.Internal("failed to load questions", err)
	}
	if len(questions) == 0 {
		return nil, fault.Validation("no multiple-choice questions found for this page")
	}

	byID := make(map[string]*models.Question, len(questions))
	availableIDs := make([]string, 0, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
		availableIDs = append(availableIDs, questions[i].ID)
	}

	rules := make([]models.Rule, 0, len(in.Rules))
	seen := make(map[string]struct{}, len(in.Rules))
	for i, r := range in.Rules {
		q, ok := byID[r.QuestionID]
		if !ok {
			return nil, fault.Validation(fmt.Sprintf(
				"question %q is not a multiple-choice question on this page; available questions: %s",
				r.QuestionID, strings.Join(availableIDs, ", ")))
		}
		if !optionOf(q, r.AdminAnswer) {
			return nil, fault.Validation(fmt.Sprintf(
				"admin answer %q is not valid for question %q; available options: %s",
				r.AdminAnswer, r.QuestionID, strings.Join(q.Options, ", ")))
		}
		seen[r.QuestionID] = struct{}{}
		rules = append(rules, models.Rule{
			Position:    i,
			QuestionID:  r.QuestionID,
			AdminAnswer: r.AdminAnswer,
		})
	}
	if len(seen) != len(in.Rules) {
		return nil, fault.Validation("a question may appear at most once in a condition's rules")
	}

	key := models.QuestionKey(questionIDsOf(rules))
	exists, err := s.conditions.ExistsWithQuestionKey(ctx, in.FormID, sourcePage, key)
	if err != nil {
		return nil, fault.Internal("failed to check for duplicate conditions", err)
	}
	if exists {
		return nil, fault.Validation("a condition referencing the same questions already exists for this page")
	}

	cond := &models.Condition{
		FormID:               in.FormID,
		SourcePage:           sourcePage,
		Rules:                rules,
		QuestionKey:          key,
		LogicOperator:        operator,
		TrueDestinationPage:  in.TrueDestinationPage,
		FalseDestinationPage: in.FalseDestinationPage,
	}
	if err := s.conditions.Create(ctx, cond); err != nil {
		// The read-then-write duplicate check races with concurrent creates;
		// the store's unique index is the backstop.
		if errors.Is(err, ErrDuplicateCondition) {
			return nil, fault.Validation("a condition referencing the same questions already exists for this page")
		}
		return nil, fault.Internal("failed to persist condition", err)
	}

	s.log.Info("Condition created",
		zap.String("condition_id", cond.ID),
		zap.String("form_id", cond.FormID),
		zap.String("source_page", cond.SourcePage),
		zap.Int("rules", len(cond.Rules)))
	return cond, nil
}

func optionOf(q *models.Question, answer string) bool {
	for _, o := range q.Options {
		if o == answer {
			return true
		}
	}
	return false
}

func questionIDsOf(rules []models.Rule) []string {
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.QuestionID)
	}
	return ids
}
