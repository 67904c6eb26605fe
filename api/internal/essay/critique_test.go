package essay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essay-feedback/api/internal/essay/types"
)

const critiqueFixture = `{
  "overallScore": 72,
  "criteriaScores": {
    "ideasAndContent": 4,
    "textStructureAndOrganization": 3.6,
    "languageFeaturesAndVocabulary": "3",
    "spellingPunctuationAndGrammar": 2
  },
  "feedbackCategories": [
    {
      "category": "Ideas and Content",
      "score": 4,
      "strengths": [
        {"exampleFromText": "The dog", "position": {"start": 40, "end": 99}, "comment": "Clear subject"}
      ],
      "areasForImprovement": [
        {"exampleFromText": "fast", "position": {"start": 15, "end": 19}, "suggestionForImprovement": "Show, don't tell"}
      ]
    }
  ],
  "grammarCorrections": [
    {"original": "dog", "suggestion": "cat", "explanation": "made up", "position": {"start": 4, "end": 7}}
  ],
  "vocabularyEnhancements": [
    {"original": "fast", "suggestion": "swiftly", "explanation": "More precise", "position": {"start": 0, "end": 0}}
  ]
}`

func TestParseCritique(t *testing.T) {
	c, err := ParseCritique([]byte(critiqueFixture))
	require.NoError(t, err)

	assert.Equal(t, types.FlexInt(72), c.OverallScore)
	assert.Equal(t, types.FlexInt(4), c.CriteriaScores[types.CriterionStructure], "floats are rounded")
	assert.Equal(t, types.FlexInt(3), c.CriteriaScores[types.CriterionLanguage], "numeric strings are accepted")
	require.Len(t, c.FeedbackCategories, 1)
	assert.Equal(t, "The dog", c.FeedbackCategories[0].Strengths[0].ExampleFromText)
	assert.Equal(t, types.TextSpan{Start: 40, End: 99}, c.FeedbackCategories[0].Strengths[0].Position.Span())
	require.Len(t, c.VocabularyEnhancements, 1)
}

func TestParseCritiqueQuotedOverallScore(t *testing.T) {
	raw := strings.Replace(critiqueFixture, `"overallScore": 72`, `"overallScore": "72"`, 1)
	require.NotEqual(t, critiqueFixture, raw)

	c, err := ParseCritique([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, types.FlexInt(72), c.OverallScore)
	require.Len(t, c.FeedbackCategories, 1)
}

func TestParseCritiqueCodeFenceAndProse(t *testing.T) {
	_, err := ParseCritique([]byte("```json\n" + critiqueFixture + "\n```"))
	require.NoError(t, err)

	_, err = ParseCritique([]byte("Sure! Here is the feedback:\n" + critiqueFixture + "\nGood luck."))
	require.NoError(t, err)
}

func TestParseCritiqueErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", "   "},
		{"not json", "I cannot grade this essay."},
		{"truncated", `{"overallScore": 70, "criteriaScores": {`},
		{"missing categories", `{"overallScore": 70, "criteriaScores": {}}`},
		{"wrong type", `{"overallScore": "high", "criteriaScores": {}, "feedbackCategories": []}`},
		{"object score", `{"overallScore": {"value": 70}, "criteriaScores": {}, "feedbackCategories": []}`},
		{"array root", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCritique([]byte(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCritiqueParse)
		})
	}
}
