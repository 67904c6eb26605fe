package essay

import "essay-feedback/api/internal/essay/types"

const (
	MaxOverallScore   = 100
	MaxCriterionScore = 5
)

// ApplyScorePolicy clamps model-reported scores into their documented ranges.
func ApplyScorePolicy(doc *types.Document) {
	doc.OverallScore = clamp(doc.OverallScore, 0, MaxOverallScore)

	cs := &doc.CriteriaScores
	cs.IdeasAndContent = clamp(cs.IdeasAndContent, 0, MaxCriterionScore)
	cs.TextStructureAndOrganization = clamp(cs.TextStructureAndOrganization, 0, MaxCriterionScore)
	cs.LanguageFeaturesAndVocabulary = clamp(cs.LanguageFeaturesAndVocabulary, 0, MaxCriterionScore)
	cs.SpellingPunctuationAndGrammar = clamp(cs.SpellingPunctuationAndGrammar, 0, MaxCriterionScore)

	for i := range doc.FeedbackCategories {
		doc.FeedbackCategories[i].Score = clamp(doc.FeedbackCategories[i].Score, 0, MaxCriterionScore)
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
