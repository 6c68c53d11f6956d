package scoring

import (
	"encoding/json"
	"strings"

	"storeaudit/internal/model"
)

// Ratio is a normalized answer contribution, nominally in [0,1]
type Ratio float64

// Normalize converts a raw answer value into a ratio for the question type.
// ok is false when the answer does not participate in scoring at all; such
// an answer adds nothing to the section's score or maximum score.
func Normalize(q ScoringQuestion, value interface{}) (r Ratio, ok bool) {
	switch q.Type {
	case model.QuestionTypeYesNo:
		return normalizeYesNo(value)
	case model.QuestionTypeMultipleChoice:
		return normalizeMultipleChoice(q.Options, value)
	case model.QuestionTypeSlider:
		return normalizeSlider(q.SliderRange, value)
	default:
		return 0, false
	}
}

func normalizeYesNo(value interface{}) (Ratio, bool) {
	s, ok := value.(string)
	if !ok {
		return 0, false
	}
	switch strings.ToLower(s) {
	case "yes", "כן":
		return 1, true
	case "no", "לא":
		return 0, true
	}
	return 0, false
}

func normalizeMultipleChoice(options []model.Option, value interface{}) (Ratio, bool) {
	s, ok := value.(string)
	if !ok {
		return 0, false
	}

	selected := -1
	maxW := 0.0
	for i := range options {
		if selected < 0 && options[i].Text == s {
			selected = i
		}
		if w := EffectiveWeight(options[i]); i == 0 || w > maxW {
			maxW = w
		}
	}
	if selected < 0 {
		return 0, false
	}

	sw := EffectiveWeight(options[selected])
	if maxW <= 0 {
		if sw > 0 {
			return 1, true
		}
		return 0, true
	}
	return Ratio(sw / maxW), true
}

// EffectiveWeight returns the option's weight, falling back to the legacy
// scoreWeight and then to 0
func EffectiveWeight(o model.Option) float64 {
	if o.Weight != nil && isFinite(*o.Weight) {
		return *o.Weight
	}
	if o.ScoreWeight != nil && isFinite(*o.ScoreWeight) {
		return *o.ScoreWeight
	}
	return 0
}

// normalizeSlider maps value linearly from [min,max] to [0,1]. Values outside
// the range are not clamped.
func normalizeSlider(rng []float64, value interface{}) (Ratio, bool) {
	if len(rng) != 2 {
		return 0, false
	}
	lo, hi := rng[0], rng[1]
	if !isFinite(lo) || !isFinite(hi) || hi <= lo {
		return 0, false
	}
	v, ok := toNumber(value)
	if !ok {
		return 0, false
	}
	return Ratio((v - lo) / (hi - lo)), true
}

// toNumber accepts the numeric kinds produced by JSON and BSON decoding.
// Strings are not numbers.
func toNumber(value interface{}) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	return f, isFinite(f)
}
