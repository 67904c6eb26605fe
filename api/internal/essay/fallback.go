package essay

import (
	"context"

	"essay-feedback/api/internal/essay/types"
	"essay-feedback/api/internal/util"
)

const (
	FallbackModelVersion = "fallback"
	FallbackCategory     = "Error"
	fallbackExcerptRunes = 20

	fallbackSuggestion = "Could not process feedback due to an error. Grammar check results are still available below."
	fallbackMessage    = "LLM evaluation failed but grammar checking succeeded"
)

// EmptyDocument is the all-zero document with every list present and empty.
func EmptyDocument() types.Document {
	return types.Document{
		FeedbackCategories:     []types.CriteriaFeedback{},
		GrammarCorrections:     []types.Correction{},
		VocabularyEnhancements: []types.Correction{},
	}
}

// FallbackDocument is served when the critique oracle fails. Scores are zero and a
// single "Error" category quotes the start of the text; grammar corrections are kept.
func FallbackDocument(text string, corrections []types.Correction, meta Meta) types.Document {
	excerpt := util.TruncateRunes(text, fallbackExcerptRunes)

	doc := EmptyDocument()
	doc.FeedbackCategories = append(doc.FeedbackCategories, types.CriteriaFeedback{
		Category:  FallbackCategory,
		Strengths: []types.ExampleAnnotation{},
		AreasForImprovement: []types.ExampleAnnotation{{
			ExampleFromText:          excerpt,
			Position:                 ValidateSpan(LocateSpan(excerpt, text), util.RuneLen(text)),
			SuggestionForImprovement: fallbackSuggestion,
		}},
	})
	doc.GrammarCorrections = append(doc.GrammarCorrections, corrections...)
	doc.Error = true
	doc.ErrorMessage = fallbackMessage

	if meta.ModelVersion == "" {
		meta.ModelVersion = FallbackModelVersion
	}
	meta.apply(&doc)
	return doc
}

// Fallback builds the fallback document, running the grammar oracle on text.
// Evaluate calls FallbackDocument with its own grammar result instead.
func (s *Service) Fallback(ctx context.Context, text string, meta Meta) (types.Document, error) {
	corrections, err := s.grammar.Check(ctx, text)
	if err != nil {
		return types.Document{}, err
	}
	return FallbackDocument(text, corrections, meta), nil
}
