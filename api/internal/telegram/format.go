package telegram

import (
	"fmt"
	"strings"

	"essay-feedback/api/internal/essay/types"
	"essay-feedback/api/internal/util"
)

const (
	maxListed  = 5
	maxMessage = 3900
)

// Summary renders a feedback document as a plain-text chat message.
func Summary(doc types.Document) string {
	var b strings.Builder

	if doc.Error {
		b.WriteString("⚠️ " + doc.ErrorMessage + "\n\n")
	}
	if doc.ModelVersion == "" && len(doc.FeedbackCategories) == 0 && len(doc.GrammarCorrections) == 0 {
		b.WriteString("Your essay is too short to mark. Write at least a few sentences.")
		return b.String()
	}

	fmt.Fprintf(&b, "📝 Overall score: %d/100 (%d words)\n\n", doc.OverallScore, doc.WordCount)
	cs := doc.CriteriaScores
	fmt.Fprintf(&b, "Ideas and content: %d/5\n", cs.IdeasAndContent)
	fmt.Fprintf(&b, "Structure and organisation: %d/5\n", cs.TextStructureAndOrganization)
	fmt.Fprintf(&b, "Language and vocabulary: %d/5\n", cs.LanguageFeaturesAndVocabulary)
	fmt.Fprintf(&b, "Spelling, punctuation and grammar: %d/5\n", cs.SpellingPunctuationAndGrammar)

	if len(doc.GrammarCorrections) > 0 {
		b.WriteString("\n✏️ Grammar and spelling:\n")
		for i, c := range doc.GrammarCorrections {
			if i == maxListed {
				fmt.Fprintf(&b, "…and %d more\n", len(doc.GrammarCorrections)-maxListed)
				break
			}
			writeCorrection(&b, c)
		}
	}
	if len(doc.VocabularyEnhancements) > 0 {
		b.WriteString("\n💡 Vocabulary:\n")
		for i, c := range doc.VocabularyEnhancements {
			if i == maxListed {
				break
			}
			writeCorrection(&b, c)
		}
	}

	return util.TruncateRunes(strings.TrimRight(b.String(), "\n"), maxMessage)
}

func writeCorrection(b *strings.Builder, c types.Correction) {
	if c.Suggestion != "" {
		fmt.Fprintf(b, "• %q → %q", c.Original, c.Suggestion)
	} else {
		fmt.Fprintf(b, "• %q", c.Original)
	}
	if c.Explanation != "" {
		b.WriteString(": " + c.Explanation)
	}
	b.WriteString("\n")
}
