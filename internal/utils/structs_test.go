package utils

import (
	"testing"

	"wehire/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestStructTagValuesSkipsIgnoredFields(t *testing.T) {
	columns := StructTagValues(types.InterviewCategory{})

	assert.Equal(t, []string{"id", "name", "description", "default_time", "job_id", "created_at"}, columns)
	assert.NotContains(t, columns, "questions")
}

func TestStructToMap(t *testing.T) {
	q := &types.InterviewQuestion{ID: "q1", Text: "Why Go?", Status: types.QuestionStatusActive, MustAsk: true, CategoryID: "c1", JobID: "j1"}

	m := StructToMap(q)

	assert.Equal(t, "q1", m["id"])
	assert.Equal(t, true, m["must_ask"])
	assert.Equal(t, "j1", m["job_id"])
}

func TestSetFieldsToMapOnlyPresentFields(t *testing.T) {
	update := &types.QuestionUpdate{Status: StringPtr("rejected"), Text: StringPtr("")}

	m := SetFieldsToMap(update)

	assert.Equal(t, map[string]any{"status": "rejected", "text": ""}, m)
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()

	assert.Len(t, a, IDSize)
	assert.NotEqual(t, a, b)
	assert.Len(t, NewIDSize(8), 8)
}
