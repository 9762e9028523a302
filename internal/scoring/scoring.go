// Package scoring converts a question bank plus submitted answers into
// normalized sub-scores and an overall score. Scoring is pure: identical
// inputs always produce identical output.
package scoring

import (
	"math"
	"strconv"
	"strings"
)

// Scale declares the numeric range of a scale question.
type Scale struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Question is one entry of a question bank. Type is "scale", "single" or
// "multi". Options of choice questions embed a "+1" positivity marker.
type Question struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Text     string   `json:"text,omitempty"`
	Scale    *Scale   `json:"scale,omitempty"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required,omitempty"`
}

// Bank is a stored question bank document.
type Bank struct {
	Version   int        `json:"version"`
	Questions []Question `json:"questions"`
}

// Result carries the computed scores, rounded to two decimals. Sub-means are
// nil when no answer of that kind was scored.
type Result struct {
	Overall     float64  `json:"overall"`
	LikertMean  *float64 `json:"likert_mean"`
	MCQMean     *float64 `json:"mcq_mean"`
	LikertCount int      `json:"likert_count"`
	MCQCount    int      `json:"mcq_count"`
}

// Score grades answers against the question bank.
//
// Scale answers are normalized to [0,100] via (x-min)/(max-min), clamped;
// non-numeric answers are skipped, as are degenerate min==max scales.
// Single/multi answers score the percentage of selected options carrying the
// positivity marker, 0 when nothing is selected. Overall is the mean of the
// two sub-means when both exist, the sole one otherwise, and 0 when neither.
func Score(questions []Question, answers map[string]any) Result {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var likert, mcq []float64
	for qid, value := range answers {
		q, ok := byID[qid]
		if !ok {
			continue
		}
		switch q.Type {
		case "scale":
			minV, maxV := 1.0, 5.0
			if q.Scale != nil {
				minV, maxV = q.Scale.Min, q.Scale.Max
			}
			x, ok := toFloat(value)
			if !ok || maxV == minV {
				continue
			}
			norm := math.Max(0, math.Min(1, (x-minV)/(maxV-minV)))
			likert = append(likert, norm*100)
		case "single", "multi":
			var selected []any
			if q.Type == "single" {
				if s, ok := value.(string); ok {
					selected = []any{s}
				}
			} else if list, ok := value.([]any); ok {
				selected = list
			}
			if len(selected) == 0 {
				mcq = append(mcq, 0)
				continue
			}
			positive := 0
			for _, opt := range selected {
				if s, ok := opt.(string); ok && isPositive(s) {
					positive++
				}
			}
			mcq = append(mcq, float64(positive)/float64(len(selected))*100)
		}
	}

	result := Result{LikertCount: len(likert), MCQCount: len(mcq)}
	likertMean, hasLikert := mean(likert)
	mcqMean, hasMCQ := mean(mcq)
	if hasLikert {
		v := round2(likertMean)
		result.LikertMean = &v
	}
	if hasMCQ {
		v := round2(mcqMean)
		result.MCQMean = &v
	}
	switch {
	case hasLikert && hasMCQ:
		result.Overall = round2((likertMean + mcqMean) / 2)
	case hasLikert:
		result.Overall = round2(likertMean)
	case hasMCQ:
		result.Overall = round2(mcqMean)
	}
	return result
}

func isPositive(option string) bool {
	return strings.Contains(option, "+1")
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
