package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// --- CRITIQUE (untrusted LLM output) ----------------------------------------

// Critique mirrors the JSON the critique model is asked to return. Nothing in it
// is trusted: spans are re-derived and scores are clamped during normalization.
type Critique struct {
	OverallScore           FlexInt              `json:"overallScore"`
	CriteriaScores         map[string]FlexInt   `json:"criteriaScores"`
	FeedbackCategories     []CritiqueCategory   `json:"feedbackCategories"`
	VocabularyEnhancements []CritiqueCorrection `json:"vocabularyEnhancements"`
	GrammarCorrections     []CritiqueCorrection `json:"grammarCorrections,omitempty"` // discarded
}

type CritiqueCategory struct {
	Category            string            `json:"category"`
	Score               FlexInt           `json:"score"`
	Strengths           []CritiqueExample `json:"strengths"`
	AreasForImprovement []CritiqueExample `json:"areasForImprovement"`
}

type CritiqueExample struct {
	ExampleFromText          string       `json:"exampleFromText"`
	Position                 CritiqueSpan `json:"position"`
	Comment                  string       `json:"comment"`
	SuggestionForImprovement string       `json:"suggestionForImprovement"`
}

type CritiqueCorrection struct {
	Original    string       `json:"original"`
	Suggestion  string       `json:"suggestion"`
	Explanation string       `json:"explanation"`
	Position    CritiqueSpan `json:"position"`
}

// CritiqueSpan is a span as claimed by the model.
type CritiqueSpan struct {
	Start FlexInt `json:"start"`
	End   FlexInt `json:"end"`
}

func (s CritiqueSpan) Span() TextSpan {
	return TextSpan{Start: int(s.Start), End: int(s.End)}
}

// FlexInt accepts 4, 4.6 (rounded), "4" and null. Anything else decodes to 0.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = FlexInt(math.Round(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = FlexInt(math.Round(v))
			return nil
		}
	}
	*n = 0
	return nil
}
