// Package scoring computes section and final quality scores for a store
// inspection from a questionnaire template and the submitted answers.
//
// The computation is a single forward pass:
//
//	template -> registry of section buckets
//	answer   -> resolve question -> normalize value -> accumulate into bucket
//	buckets  -> section percentages -> section-weighted final score
//
// Nothing in this package performs I/O, keeps state between calls or mutates
// its inputs, so Compute may be called concurrently without coordination.
// Malformed or stale answers never fail the computation: they are skipped
// and contribute to neither the score nor the maximum score of their section.
package scoring

import (
	"math"

	"storeaudit/internal/model"
)

// Result is the output of Compute
type Result struct {
	SectionScores []model.SectionScore `json:"sectionScores"`
	FinalScore    float64              `json:"finalScore"`
}

// Outcome tells what happened to a single answer during scoring
type Outcome string

const (
	OutcomeScored          Outcome = "scored"
	OutcomeUnresolved      Outcome = "unresolved"       // no matching question or follow-up
	OutcomeFilterQuestion  Outcome = "filter_question"  // top-level filter questions never score
	OutcomeZeroWeight      Outcome = "zero_weight"      // question weight <= 0
	OutcomeUnscoredSection Outcome = "unscored_section" // question lives in an untitled section
	OutcomeNotNormalizable Outcome = "not_normalizable" // value does not map to a ratio for this type
)

// AnswerOutcome records how one answer was treated
type AnswerOutcome struct {
	QuestionID string      `json:"questionId"`
	Ref        QuestionRef `json:"ref"`
	Section    string      `json:"section,omitempty"`
	Outcome    Outcome     `json:"outcome"`
	Ratio      float64     `json:"ratio"`
	Weight     float64     `json:"weight"`
}

// SectionTotal is the raw accumulator of one section plus its percentage
type SectionTotal struct {
	SectionName string  `json:"sectionName"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"maxScore"`
	Weight      float64 `json:"weight"`
	Percentage  float64 `json:"percentage"`
	InFinal     bool    `json:"inFinal"`
}

// Breakdown is the full trace of a scoring pass
type Breakdown struct {
	Answers    []AnswerOutcome `json:"answers"`
	Sections   []SectionTotal  `json:"sections"`
	FinalScore float64         `json:"finalScore"`
}

// Result drops the trace and keeps what callers persist
func (b *Breakdown) Result() Result {
	scores := make([]model.SectionScore, 0, len(b.Sections))
	for _, s := range b.Sections {
		scores = append(scores, model.SectionScore{SectionName: s.SectionName, Score: s.Percentage})
	}
	return Result{SectionScores: scores, FinalScore: b.FinalScore}
}

// Compute scores answers against a template. A nil template yields an empty
// result.
func Compute(t *model.Template, answers []model.Answer) Result {
	b := Explain(t, answers)
	return b.Result()
}

// Explain runs the same pass as Compute and keeps the per-answer trace
func Explain(t *model.Template, answers []model.Answer) Breakdown {
	b := Breakdown{
		Answers:  make([]AnswerOutcome, 0, len(answers)),
		Sections: []SectionTotal{},
	}
	if t == nil {
		return b
	}

	reg := newRegistry(t)
	idx := newQuestionIndex(t)

	for i := range answers {
		b.Answers = append(b.Answers, accumulate(reg, idx, &answers[i]))
	}

	b.Sections, b.FinalScore = reduce(reg)
	return b
}

func accumulate(reg *registry, idx *questionIndex, a *model.Answer) AnswerOutcome {
	out := AnswerOutcome{QuestionID: a.QuestionID}

	rq, ok := idx.resolve(a.QuestionID)
	if !ok {
		out.Outcome = OutcomeUnresolved
		return out
	}
	out.Ref = rq.Ref
	out.Section = rq.Section
	out.Weight = rq.Weight

	switch {
	case rq.Filter:
		out.Outcome = OutcomeFilterQuestion
		return out
	case rq.Weight <= 0:
		out.Outcome = OutcomeZeroWeight
		return out
	}

	bk := reg.bucket(rq.Section)
	if bk == nil {
		out.Outcome = OutcomeUnscoredSection
		return out
	}

	r, ok := Normalize(rq.Question, a.Value)
	if !ok {
		out.Outcome = OutcomeNotNormalizable
		return out
	}

	bk.score += float64(r) * rq.Weight
	bk.maxScore += rq.Weight

	out.Outcome = OutcomeScored
	out.Ratio = float64(r)
	return out
}

// reduce converts buckets into percentages and the weighted final score.
// A section with maxScore 0 reports 0 and, when its weight is positive,
// still counts as 0 in the final average.
func reduce(reg *registry) ([]SectionTotal, float64) {
	totals := make([]SectionTotal, 0, len(reg.order))
	var weighted, totalWeight float64

	for _, bk := range reg.order {
		pct := 0.0
		if bk.maxScore > 0 {
			pct = bk.score / bk.maxScore * 100
		}
		st := SectionTotal{
			SectionName: bk.title,
			Score:       bk.score,
			MaxScore:    bk.maxScore,
			Weight:      bk.weight,
			Percentage:  pct,
		}
		if isFinite(pct) && bk.weight > 0 {
			weighted += pct * bk.weight
			totalWeight += bk.weight
			st.InFinal = true
		}
		totals = append(totals, st)
	}

	if totalWeight <= 0 {
		return totals, 0
	}
	return totals, weighted / totalWeight
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// weightOrDefault returns *w, or 1 when w is absent or not a finite number
func weightOrDefault(w *float64) float64 {
	if w == nil || !isFinite(*w) {
		return 1
	}
	return *w
}
