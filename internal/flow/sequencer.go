package flow

import (
	"context"

	"canova-go/internal/models"
	"canova-go/pkg/fault"

	"go.uber.org/zap"
)

// Preview holds the two hypothetical page sequences an admin sees when
// previewing branch outcomes in the editor. When HasConditions is false no
// sequences are computed.
type Preview struct {
	HasConditions   bool       `json:"hasConditions"`
	TrueSequence    []PageStep `json:"trueSequence,omitempty"`
	FalseSequence   []PageStep `json:"falseSequence,omitempty"`
	ConditionsCount int        `json:"conditionsCount,omitempty"`
}

// Sequencer materializes full page orders for branch previews. It only ever
// consults the first condition of the page (Seq order); additional conditions
// are counted but do not produce alternate branches.
type Sequencer struct {
	conditions ConditionStore
	pages      PageStore
	log        *zap.Logger
}

func NewSequencer(conditions ConditionStore, pages PageStore, log *zap.Logger) *Sequencer {
	return &Sequencer{conditions: conditions, pages: pages, log: log}
}

// Flow builds the true and false sequences for previewing from pageID.
func (s *Sequencer) Flow(ctx context.Context, formID, pageID string) (*Preview, error) {
	conds, err := s.conditions.BySourcePage(ctx, formID, pageID)
	if err != nil {
		return nil, fault.Internal("failed to load conditions", err)
	}
	if len(conds) == 0 {
		return &Preview{HasConditions: false}, nil
	}

	pages, err := s.pages.ByFormOrdered(ctx, formID)
	if err != nil {
		return nil, fault.Internal("failed to load pages", err)
	}
	byID := make(map[string]*models.Page, len(pages))
	for i := range pages {
		byID[pages[i].ID] = &pages[i]
	}

	source, ok := byID[pageID]
	if !ok {
		return nil, fault.NotFound("current page not found")
	}

	first := &conds[0]

	trueDest, ok := byID[first.TrueDestinationPage]
	if !ok {
		return nil, fault.NotFound("true destination page not found")
	}
	trueSeq := sequenceFrom(source, trueDest, pages)

	var falseSeq []PageStep
	if first.FalseDestinationPage != "" {
		falseDest, ok := byID[first.FalseDestinationPage]
		if !ok {
			return nil, fault.NotFound("false destination page not found")
		}
		falseSeq = sequenceFrom(source, falseDest, pages)
	} else {
		// No false branch: default sequencing from the source page.
		falseSeq = sequenceFrom(source, nil, pages)
	}

	return &Preview{
		HasConditions:   true,
		TrueSequence:    trueSeq,
		FalseSequence:   falseSeq,
		ConditionsCount: len(conds),
	}, nil
}

// sequenceFrom builds one branch sequence: the source page, then the
// destination (when branching), then every page ordered after it. A page id
// never appears twice in one sequence.
func sequenceFrom(source, dest *models.Page, pages []models.Page) []PageStep {
	steps := []PageStep{stepFor(source)}
	seen := map[string]struct{}{source.ID: {}}

	after := source.Order
	if dest != nil {
		if _, dup := seen[dest.ID]; !dup {
			steps = append(steps, stepFor(dest))
			seen[dest.ID] = struct{}{}
		}
		after = dest.Order
	}

	for i := range pages {
		p := &pages[i]
		if p.Order <= after {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		steps = append(steps, stepFor(p))
		seen[p.ID] = struct{}{}
	}
	return steps
}
