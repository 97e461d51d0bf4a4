package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogicOperator combines the rules of a condition. Only AND is accepted
// today; the field is an enum so OR/NOT can be added without a schema change.
type LogicOperator string

const OperatorAND LogicOperator = "AND"

// Valid reports whether op is a supported operator.
func (op LogicOperator) Valid() bool {
	return op == OperatorAND
}

// Rule is a single {question, expected answer} predicate inside a condition.
// Position preserves the admin's rule order.
type Rule struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	ConditionID string `gorm:"index" json:"-"`
	Position    int    `json:"-"`
	QuestionID  string `json:"questionId"`
	AdminAnswer string `json:"adminAnswer"`
}

// Condition is an admin-authored branching rule set attached to a source
// page. Seq is a database serial: conditions are evaluated in ascending Seq
// order, making "first created wins" explicit rather than an accident of
// store iteration order.
type Condition struct {
	ID                   string        `gorm:"primaryKey" json:"id"`
	Seq                  int64         `gorm:"autoIncrement;uniqueIndex" json:"-"`
	FormID               string        `gorm:"index:idx_conditions_form_page" json:"formId"`
	SourcePage           string        `gorm:"index:idx_conditions_form_page" json:"sourcePage"`
	Rules                []Rule        `gorm:"foreignKey:ConditionID;references:ID" json:"rules"`
	QuestionKey          string        `json:"-"`
	LogicOperator        LogicOperator `json:"logicOperator"`
	TrueDestinationPage  string        `json:"trueDestinationPage"`
	FalseDestinationPage string        `json:"falseDestinationPage,omitempty"`
	CreatedAt            time.Time     `json:"createdAt"`
}

func (c *Condition) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.QuestionKey == "" {
		c.QuestionKey = QuestionKey(c.QuestionIDs())
	}
	return nil
}

// QuestionIDs returns the ids referenced by the condition's rules, in rule
// order.
func (c *Condition) QuestionIDs() []string {
	ids := make([]string, 0, len(c.Rules))
	for _, r := range c.Rules {
		ids = append(ids, r.QuestionID)
	}
	return ids
}

// QuestionKey normalizes a question-id set into a canonical string used for
// order-independent duplicate detection. Backed by a unique index on
// (form_id, source_page, question_key) so concurrent duplicate creations
// cannot both land.
func QuestionKey(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x1f")
}
