package essay

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"essay-feedback/api/internal/essay/types"
)

// Meta is request-scoped metadata attached to a finished document.
type Meta struct {
	ID           string
	ModelVersion string
	Timings      types.Timings
	GeneratedAt  time.Time
	WordCount    int
}

func (m Meta) apply(doc *types.Document) {
	doc.ID = m.ID
	doc.ModelVersion = m.ModelVersion
	doc.Timings = m.Timings
	doc.WordCount = m.WordCount
	if !m.GeneratedAt.IsZero() {
		doc.GeneratedAt = m.GeneratedAt.UTC().Format(time.RFC3339)
	}
}

// Normalize converts an untrusted critique into a Document. Every excerpt span is
// re-derived from the text, every span is bounds-checked, and grammar corrections
// come only from the corrections argument.
func Normalize(c types.Critique, text string, corrections []types.Correction, meta Meta) types.Document {
	n := utf8.RuneCountInString(text)

	doc := EmptyDocument()
	doc.OverallScore = int(c.OverallScore)
	doc.CriteriaScores = criteriaScores(c.CriteriaScores)

	for _, cat := range c.FeedbackCategories {
		doc.FeedbackCategories = append(doc.FeedbackCategories, types.CriteriaFeedback{
			Category:            strings.TrimSpace(cat.Category),
			Score:               int(cat.Score),
			Strengths:           locateExamples(cat.Strengths, text, n),
			AreasForImprovement: locateExamples(cat.AreasForImprovement, text, n),
		})
	}
	for _, v := range c.VocabularyEnhancements {
		doc.VocabularyEnhancements = append(doc.VocabularyEnhancements, types.Correction{
			Original:    v.Original,
			Suggestion:  v.Suggestion,
			Explanation: v.Explanation,
			Position:    resolveSpan(v.Original, v.Position, text, n),
		})
	}

	doc.GrammarCorrections = append(doc.GrammarCorrections, corrections...)

	ApplyScorePolicy(&doc)
	meta.apply(&doc)
	return doc
}

// Merge runs the grammar oracle on text and normalizes the critique against it.
// Evaluate calls Normalize with its own grammar result instead.
func (s *Service) Merge(ctx context.Context, c types.Critique, text string, meta Meta) (types.Document, error) {
	corrections, err := s.grammar.Check(ctx, text)
	if err != nil {
		return types.Document{}, err
	}
	return Normalize(c, text, corrections, meta), nil
}

func locateExamples(items []types.CritiqueExample, text string, n int) []types.ExampleAnnotation {
	out := make([]types.ExampleAnnotation, 0, len(items))
	for _, it := range items {
		out = append(out, types.ExampleAnnotation{
			ExampleFromText:          it.ExampleFromText,
			Position:                 resolveSpan(it.ExampleFromText, it.Position, text, n),
			Comment:                  it.Comment,
			SuggestionForImprovement: it.SuggestionForImprovement,
		})
	}
	return out
}

// resolveSpan prefers a span derived from the literal excerpt over the claimed one.
func resolveSpan(excerpt string, claimed types.CritiqueSpan, text string, n int) types.TextSpan {
	span := claimed.Span()
	if excerpt != "" {
		span = LocateSpan(excerpt, text)
	}
	return ValidateSpan(span, n)
}

func criteriaScores(m map[string]types.FlexInt) types.CriteriaScores {
	return types.CriteriaScores{
		IdeasAndContent:               int(m[types.CriterionIdeas]),
		TextStructureAndOrganization:  int(m[types.CriterionStructure]),
		LanguageFeaturesAndVocabulary: int(m[types.CriterionLanguage]),
		SpellingPunctuationAndGrammar: int(m[types.CriterionSPG]),
	}
}
