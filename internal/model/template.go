package model

import "time"

// QuestionType defines how a question is answered and scored
type QuestionType string

const (
	QuestionTypeYesNo          QuestionType = "yes_no"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeSlider         QuestionType = "slider"
	QuestionTypeTextInput      QuestionType = "text_input"
	QuestionTypeTitle          QuestionType = "title"
	QuestionTypeConditional    QuestionType = "conditional"
)

// Template is an audit questionnaire authored by an admin
type Template struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name" validate:"required"`
	Sections  []Section `json:"sections" bson:"sections" validate:"dive"`
	CreatedBy string    `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Section groups questions under a title. Title is the aggregation key.
type Section struct {
	Title     string     `json:"title" bson:"title"`
	Weight    *float64   `json:"weight,omitempty" bson:"weight,omitempty"` // nil means 1, <= 0 excludes from final score
	Questions []Question `json:"questions" bson:"questions" validate:"dive"`
}

// Question is a persisted template question
type Question struct {
	ID                 string              `json:"id" bson:"id" validate:"required"`
	Text               string              `json:"text" bson:"text"`
	Type               QuestionType        `json:"type" bson:"type" validate:"required,oneof=yes_no multiple_choice slider text_input title conditional"`
	Weight             *float64            `json:"weight,omitempty" bson:"weight,omitempty"`
	IsFilterQuestion   bool                `json:"isFilterQuestion" bson:"isFilterQuestion"`
	Options            []Option            `json:"options,omitempty" bson:"options,omitempty"`
	SliderRange        []float64           `json:"sliderRange,omitempty" bson:"sliderRange,omitempty"` // [min, max]
	ConditionalTrigger *ConditionalTrigger `json:"conditionalTrigger,omitempty" bson:"conditionalTrigger,omitempty"`
}

// Option is a multiple choice option. ScoreWeight is the legacy name of Weight.
type Option struct {
	Text        string   `json:"text" bson:"text"`
	Weight      *float64 `json:"weight,omitempty" bson:"weight,omitempty"`
	ScoreWeight *float64 `json:"scoreWeight,omitempty" bson:"scoreWeight,omitempty"`
}

// ConditionalTrigger nests follow-up questions under a parent question
type ConditionalTrigger struct {
	OnAnswer          interface{}        `json:"onAnswer" bson:"onAnswer"`
	FollowUpQuestions []FollowUpQuestion `json:"followUpQuestions" bson:"followUpQuestions"`
}

// FollowUpQuestion only exists nested under its parent. Answers address it as
// "<parentId>_followup_<index>".
type FollowUpQuestion struct {
	Text        string       `json:"text" bson:"text"`
	Type        QuestionType `json:"type" bson:"type"`
	Weight      *float64     `json:"weight,omitempty" bson:"weight,omitempty"`
	Options     []Option     `json:"options,omitempty" bson:"options,omitempty"`
	SliderRange []float64    `json:"sliderRange,omitempty" bson:"sliderRange,omitempty"`
}
