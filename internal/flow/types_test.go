package flow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRef_UnmarshalRawID(t *testing.T) {
	var ref PageRef
	require.NoError(t, json.Unmarshal([]byte(`"p3"`), &ref))
	assert.Equal(t, "p3", ref.ID)
}

func TestPageRef_UnmarshalPopulatedObject(t *testing.T) {
	var ref PageRef
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"p3","order":3}`), &ref))
	assert.Equal(t, "p3", ref.ID)

	ref = PageRef{}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p7"}`), &ref))
	assert.Equal(t, "p7", ref.ID)
}

func TestPageRef_UnmarshalInvalidShape(t *testing.T) {
	var ref PageRef
	err := json.Unmarshal([]byte(`42`), &ref)
	require.Error(t, err)
}

func TestIndexAnswers(t *testing.T) {
	idx := indexAnswers([]Answer{
		{QuestionID: "q1", SelectedOptions: []string{"Yes", "Maybe"}},
		{QuestionID: "q2", SelectedOptions: nil},
	})

	assert.True(t, idx.contains("q1", "Yes"))
	assert.True(t, idx.contains("q1", "Maybe"))
	assert.False(t, idx.contains("q1", "No"))
	assert.False(t, idx.contains("q2", "anything"))
	assert.False(t, idx.contains("q3", "Yes"))
}
