package scoring

import (
	"strconv"
	"strings"

	"storeaudit/internal/model"
)

// FollowUpSeparator joins a parent question id and a follow-up index in an
// answer's question id, e.g. "q12_followup_1".
const FollowUpSeparator = "_followup_"

// RefKind distinguishes persisted questions from follow-ups
type RefKind string

const (
	RefTopLevel RefKind = "top_level"
	RefFollowUp RefKind = "follow_up"
)

// QuestionRef identifies the question an answer belongs to. For follow-ups
// ParentID and Index locate the entry in the parent's conditional trigger.
type QuestionRef struct {
	Kind     RefKind `json:"kind,omitempty"`
	ID       string  `json:"id,omitempty"`
	ParentID string  `json:"parentId,omitempty"`
	Index    int     `json:"index,omitempty"`
}

// FollowUpID builds the answer key of the index-th follow-up of parentID
func FollowUpID(parentID string, index int) string {
	return parentID + FollowUpSeparator + strconv.Itoa(index)
}

// ParseFollowUpID splits a follow-up answer key. Only the first separator
// is significant and the index must be a non-negative decimal integer.
func ParseFollowUpID(questionID string) (parentID string, index int, ok bool) {
	parentID, rest, found := strings.Cut(questionID, FollowUpSeparator)
	if !found {
		return "", 0, false
	}
	index, err := strconv.Atoi(rest)
	if err != nil || index < 0 {
		return "", 0, false
	}
	return parentID, index, true
}

// ScoringQuestion is the common shape normalization works on, whether the
// answer targets a persisted question or a follow-up
type ScoringQuestion struct {
	Type        model.QuestionType
	Options     []model.Option
	SliderRange []float64
}

type resolvedQuestion struct {
	Ref      QuestionRef
	Section  string
	Question ScoringQuestion
	Weight   float64
	Filter   bool
}

type questionLocation struct {
	section  *model.Section
	question *model.Question
}

// questionIndex maps question ids to their first occurrence in the template
type questionIndex struct {
	byID map[string]questionLocation
}

func newQuestionIndex(t *model.Template) *questionIndex {
	idx := &questionIndex{byID: make(map[string]questionLocation)}
	for si := range t.Sections {
		s := &t.Sections[si]
		for qi := range s.Questions {
			q := &s.Questions[qi]
			if _, seen := idx.byID[q.ID]; seen {
				continue
			}
			idx.byID[q.ID] = questionLocation{section: s, question: q}
		}
	}
	return idx
}

// resolve finds the question an answer id points to. An exact id match
// always wins over follow-up parsing.
func (idx *questionIndex) resolve(questionID string) (resolvedQuestion, bool) {
	if loc, ok := idx.byID[questionID]; ok {
		q := loc.question
		return resolvedQuestion{
			Ref:     QuestionRef{Kind: RefTopLevel, ID: q.ID},
			Section: loc.section.Title,
			Question: ScoringQuestion{
				Type:        q.Type,
				Options:     q.Options,
				SliderRange: sliderRangeOrDefault(q.SliderRange),
			},
			Weight: weightOrDefault(q.Weight),
			Filter: q.IsFilterQuestion,
		}, true
	}

	parentID, index, ok := ParseFollowUpID(questionID)
	if !ok {
		return resolvedQuestion{}, false
	}
	loc, ok := idx.byID[parentID]
	if !ok {
		return resolvedQuestion{}, false
	}
	trig := loc.question.ConditionalTrigger
	if trig == nil || index >= len(trig.FollowUpQuestions) {
		return resolvedQuestion{}, false
	}

	fu := &trig.FollowUpQuestions[index]
	opts := fu.Options
	if opts == nil {
		opts = []model.Option{}
	}
	// Follow-ups are scored even when the parent is a filter question.
	return resolvedQuestion{
		Ref:     QuestionRef{Kind: RefFollowUp, ParentID: parentID, Index: index},
		Section: loc.section.Title,
		Question: ScoringQuestion{
			Type:        fu.Type,
			Options:     opts,
			SliderRange: sliderRangeOrDefault(fu.SliderRange),
		},
		Weight: weightOrDefault(fu.Weight),
	}, true
}

func sliderRangeOrDefault(r []float64) []float64 {
	if len(r) == 0 {
		return []float64{1, 10}
	}
	return r
}
