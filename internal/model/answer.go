package model

// Answer is a single submitted answer. Value is a string for yes/no,
// multiple choice and text questions and a number for sliders.
type Answer struct {
	QuestionID string      `json:"questionId" bson:"questionId" validate:"required"`
	Value      interface{} `json:"value" bson:"value"`
	Comment    string      `json:"comment,omitempty" bson:"comment,omitempty"`
	Photos     []string    `json:"photos,omitempty" bson:"photos,omitempty"`
}

// HasValue reports whether the inspector provided anything for this question
func (a *Answer) HasValue() bool {
	switch v := a.Value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}
