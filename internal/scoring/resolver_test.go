package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeaudit/internal/model"
)

func TestParseFollowUpID(t *testing.T) {
	tests := []struct {
		in     string
		parent string
		index  int
		ok     bool
	}{
		{"q1_followup_0", "q1", 0, true},
		{"q1_followup_12", "q1", 12, true},
		{"64f0c2_followup_1", "64f0c2", 1, true},
		{"q1_followup_", "", 0, false},
		{"q1_followup_a", "", 0, false},
		{"q1_followup_-1", "", 0, false},
		{"q1", "", 0, false},
		{"q1_followup_1_followup_2", "", 0, false},
	}
	for _, tt := range tests {
		parent, index, ok := ParseFollowUpID(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.parent, parent, tt.in)
		assert.Equal(t, tt.index, index, tt.in)
	}
}

func TestFollowUpID_RoundTrip(t *testing.T) {
	parent, index, ok := ParseFollowUpID(FollowUpID("abc", 3))
	require.True(t, ok)
	assert.Equal(t, "abc", parent)
	assert.Equal(t, 3, index)
}

func TestResolve_FollowUpDefaults(t *testing.T) {
	tpl := &model.Template{Sections: []model.Section{{
		Title: "Checkout",
		Questions: []model.Question{{
			ID:   "p",
			Type: model.QuestionTypeYesNo,
			ConditionalTrigger: &model.ConditionalTrigger{
				OnAnswer: "no",
				FollowUpQuestions: []model.FollowUpQuestion{
					{Type: model.QuestionTypeSlider},
					{Type: model.QuestionTypeMultipleChoice, Weight: f(0)},
				},
			},
		}},
	}}}
	idx := newQuestionIndex(tpl)

	rq, ok := idx.resolve("p_followup_0")
	require.True(t, ok)
	assert.Equal(t, "Checkout", rq.Section)
	assert.Equal(t, []float64{1, 10}, rq.Question.SliderRange)
	assert.NotNil(t, rq.Question.Options)
	assert.Equal(t, 1.0, rq.Weight)
	assert.False(t, rq.Filter)

	rq, ok = idx.resolve("p_followup_1")
	require.True(t, ok)
	assert.Equal(t, 0.0, rq.Weight)
}

func TestResolve_TopLevelSliderDefaultRange(t *testing.T) {
	tpl := &model.Template{Sections: []model.Section{{
		Title:     "S",
		Questions: []model.Question{{ID: "s", Type: model.QuestionTypeSlider, Weight: f(2)}},
	}}}

	rq, ok := newQuestionIndex(tpl).resolve("s")
	require.True(t, ok)
	assert.Equal(t, RefTopLevel, rq.Ref.Kind)
	assert.Equal(t, []float64{1, 10}, rq.Question.SliderRange)
	assert.Equal(t, 2.0, rq.Weight)
}

func TestResolve_FirstDuplicateWins(t *testing.T) {
	tpl := &model.Template{Sections: []model.Section{
		{Title: "First", Questions: []model.Question{{ID: "dup", Type: model.QuestionTypeYesNo}}},
		{Title: "Second", Questions: []model.Question{{ID: "dup", Type: model.QuestionTypeYesNo}}},
	}}

	rq, ok := newQuestionIndex(tpl).resolve("dup")
	require.True(t, ok)
	assert.Equal(t, "First", rq.Section)
}

func TestResolve_ParentWithoutTrigger(t *testing.T) {
	tpl := &model.Template{Sections: []model.Section{{
		Title:     "S",
		Questions: []model.Question{{ID: "p", Type: model.QuestionTypeYesNo}},
	}}}
	_, ok := newQuestionIndex(tpl).resolve("p_followup_0")
	assert.False(t, ok)
}

func TestRegistry_DuplicateTitleKeepsFirstPosition(t *testing.T) {
	tpl := &model.Template{Sections: []model.Section{
		{Title: "A", Weight: f(1)},
		{Title: "B"},
		{Title: "A", Weight: f(4)},
	}}
	reg := newRegistry(tpl)

	require.Len(t, reg.order, 2)
	assert.Equal(t, "A", reg.order[0].title)
	assert.Equal(t, 4.0, reg.order[0].weight)
	assert.Nil(t, reg.bucket(""))
}
