package flow

import (
	"context"
	"testing"

	"canova-go/internal/models"
	"canova-go/pkg/fault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pageIDs(steps []PageStep) []string {
	ids := make([]string, 0, len(steps))
	for _, s := range steps {
		ids = append(ids, s.PageID)
	}
	return ids
}

func TestFlow_NoConditions(t *testing.T) {
	seq := NewSequencer(&fakeConditions{}, fourPages(), zap.NewNop())

	preview, err := seq.Flow(context.Background(), "f1", "p1")
	require.NoError(t, err)
	assert.False(t, preview.HasConditions)
	assert.Nil(t, preview.TrueSequence)
	assert.Nil(t, preview.FalseSequence)
	assert.Zero(t, preview.ConditionsCount)
}

func TestFlow_TrueAndFalseSequences(t *testing.T) {
	conds := &fakeConditions{conds: []models.Condition{yesCondition(1, "p3", "p2")}}
	seq := NewSequencer(conds, fourPages(), zap.NewNop())

	preview, err := seq.Flow(context.Background(), "f1", "p1")
	require.NoError(t, err)
	assert.True(t, preview.HasConditions)
	assert.Equal(t, 1, preview.ConditionsCount)
	// Source first, then the destination, then everything ordered after it.
	assert.Equal(t, []string{"p1", "p3", "p4"}, pageIDs(preview.TrueSequence))
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, pageIDs(preview.FalseSequence))
}

func TestFlow_StepFieldsAreSynthesized(t *testing.T) {
	conds := &fakeConditions{conds: []models.Condition{yesCondition(1, "p3", "")}}
	seq := NewSequencer(conds, fourPages(), zap.NewNop())

	preview, err := seq.Flow(context.Background(), "f1", "p1")
	require.NoError(t, err)
	require.NotEmpty(t, preview.TrueSequence)
	first := preview.TrueSequence[0]
	assert.Equal(t, "p1", first.PageID)
	assert.Equal(t, "Page 01", first.PageName)
	assert.Equal(t, 1, first.PageOrder)
}

func TestFlow_MissingFalseDestinationUsesDefaultOrder(t *testing.T) {
	cond := yesCondition(1, "p4", "")
	cond.SourcePage = "p2"
	conds := &fakeConditions{conds: []models.Condition{cond}}
	seq := NewSequencer(conds, fourPages(), zap.NewNop())

	preview, err := seq.Flow(context.Background(), "f1", "p2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p4"}, pageIDs(preview.TrueSequence))
	// No false branch: pages after the source page, in order.
	assert.Equal(t, []string{"p2", "p3", "p4"}, pageIDs(preview.FalseSequence))
}

func TestFlow_BackwardJumpNeverDuplicatesPages(t *testing.T) {
	cond := yesCondition(1, "p1", "")
	cond.SourcePage = "p3"
	conds := &fakeConditions{conds: []models.Condition{cond}}
	seq := NewSequencer(conds, fourPages(), zap.NewNop())

	preview, err := seq.Flow(context.Background(), "f1", "p3")
	require.NoError(t, err)
	got := pageIDs(preview.TrueSequence)
	assert.Equal(t, []string{"p3", "p1", "p2", "p4"}, got)

	seen := map[string]int{}
	for _, id := range got {
		seen[id]++
		assert.Equal(t, 1, seen[id], "page %s appears more than once", id)
	}
}

func TestFlow_OnlyFirstConditionBuildsSequences(t *testing.T) {
	second := yesCondition(2, "p4", "")
	second.ID = "c2"
	conds := &fakeConditions{conds: []models.Condition{yesCondition(1, "p3", ""), second}}
	seq := NewSequencer(conds, fourPages(), zap.NewNop())

	preview, err := seq.Flow(context.Background(), "f1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, preview.ConditionsCount)
	// Only the first condition's destinations shape the preview.
	assert.Equal(t, []string{"p1", "p3", "p4"}, pageIDs(preview.TrueSequence))
}

func TestFlow_UnknownSourcePage(t *testing.T) {
	conds := &fakeConditions{conds: []models.Condition{func() models.Condition {
		c := yesCondition(1, "p3", "")
		c.SourcePage = "missing"
		return c
	}()}}
	seq := NewSequencer(conds, fourPages(), zap.NewNop())

	_, err := seq.Flow(context.Background(), "f1", "missing")
	require.Error(t, err)
	assert.Equal(t, fault.KindNotFound, fault.KindOf(err))
}

func TestFlow_UnknownDestinationPage(t *testing.T) {
	conds := &fakeConditions{conds: []models.Condition{yesCondition(1, "ghost", "")}}
	seq := NewSequencer(conds, fourPages(), zap.NewNop())

	_, err := seq.Flow(context.Background(), "f1", "p1")
	require.Error(t, err)
	assert.Equal(t, fault.KindNotFound, fault.KindOf(err))
}
