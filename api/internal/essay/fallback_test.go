package essay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"essay-feedback/api/internal/essay/types"
)

func TestFallbackDocument(t *testing.T) {
	text := "My holiday at the beach was the best week of the whole year."
	corrections := []types.Correction{runnedCorrection()}

	doc := FallbackDocument(text, corrections, Meta{ID: "fb-1"})

	assert.Equal(t, 0, doc.OverallScore)
	assert.Equal(t, types.CriteriaScores{}, doc.CriteriaScores)
	require.Len(t, doc.FeedbackCategories, 1)

	cat := doc.FeedbackCategories[0]
	assert.Equal(t, FallbackCategory, cat.Category)
	assert.Equal(t, 0, cat.Score)
	assert.NotNil(t, cat.Strengths)
	assert.Empty(t, cat.Strengths)
	require.Len(t, cat.AreasForImprovement, 1)
	assert.Equal(t, "My holiday at the be", cat.AreasForImprovement[0].ExampleFromText)
	assert.Equal(t, types.TextSpan{Start: 0, End: 20}, cat.AreasForImprovement[0].Position)
	assert.NotEmpty(t, cat.AreasForImprovement[0].SuggestionForImprovement)

	assert.Equal(t, corrections, doc.GrammarCorrections)
	assert.NotNil(t, doc.VocabularyEnhancements)
	assert.Empty(t, doc.VocabularyEnhancements)

	assert.True(t, doc.Error)
	assert.NotEmpty(t, doc.ErrorMessage)
	assert.Equal(t, FallbackModelVersion, doc.ModelVersion)
	assert.Equal(t, "fb-1", doc.ID)
}

func TestFallbackDocumentShortText(t *testing.T) {
	doc := FallbackDocument("Hi", nil, Meta{})
	area := doc.FeedbackCategories[0].AreasForImprovement[0]
	assert.Equal(t, "Hi", area.ExampleFromText)
	assert.Equal(t, types.TextSpan{Start: 0, End: 2}, area.Position)
	assert.NotNil(t, doc.GrammarCorrections)
}

func TestServiceFallbackRunsGrammar(t *testing.T) {
	grammar := &fakeGrammar{out: []types.Correction{runnedCorrection()}}
	s := NewService(&Engines{}, grammar, Options{}, zaptest.NewLogger(t))

	doc, err := s.Fallback(context.Background(), runnedText, Meta{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), grammar.calls.Load())
	assert.Equal(t, grammar.out, doc.GrammarCorrections)
	assert.Equal(t, runnedText, doc.FeedbackCategories[0].AreasForImprovement[0].ExampleFromText)
}

func TestEmptyDocument(t *testing.T) {
	doc := EmptyDocument()
	assert.Equal(t, 0, doc.OverallScore)
	assert.NotNil(t, doc.FeedbackCategories)
	assert.Empty(t, doc.FeedbackCategories)
	assert.NotNil(t, doc.GrammarCorrections)
	assert.NotNil(t, doc.VocabularyEnhancements)
}
