package types

// --- FEEDBACK DOCUMENT ------------------------------------------------------

// Criterion names used as keys of CriteriaScores.
const (
	CriterionIdeas     = "ideasAndContent"
	CriterionStructure = "textStructureAndOrganization"
	CriterionLanguage  = "languageFeaturesAndVocabulary"
	CriterionSPG       = "spellingPunctuationAndGrammar"
)

type CorrectionType string

const (
	CorrectionGrammar  CorrectionType = "grammar-error"
	CorrectionSpelling CorrectionType = "spelling-error"
	CorrectionStyle    CorrectionType = "style-warning"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ExampleAnnotation is a strength or improvement area tied to a quoted excerpt.
type ExampleAnnotation struct {
	ExampleFromText          string   `json:"exampleFromText"`
	Position                 TextSpan `json:"position"`
	Comment                  string   `json:"comment,omitempty"`
	SuggestionForImprovement string   `json:"suggestionForImprovement,omitempty"`
}

// Correction is a grammar correction or vocabulary enhancement.
type Correction struct {
	Original    string         `json:"original"`
	Suggestion  string         `json:"suggestion,omitempty"`
	Explanation string         `json:"explanation"`
	Position    TextSpan       `json:"position"`
	Type        CorrectionType `json:"type,omitempty"`
	Severity    Severity       `json:"severity,omitempty"`
	RuleID      string         `json:"ruleId,omitempty"`
	Category    string         `json:"category,omitempty"`
}

// CriteriaScores holds the four fixed NSW criteria, each 0..5.
type CriteriaScores struct {
	IdeasAndContent               int `json:"ideasAndContent"`
	TextStructureAndOrganization  int `json:"textStructureAndOrganization"`
	LanguageFeaturesAndVocabulary int `json:"languageFeaturesAndVocabulary"`
	SpellingPunctuationAndGrammar int `json:"spellingPunctuationAndGrammar"`
}

type CriteriaFeedback struct {
	Category            string              `json:"category"`
	Score               int                 `json:"score"`
	Strengths           []ExampleAnnotation `json:"strengths"`
	AreasForImprovement []ExampleAnnotation `json:"areasForImprovement"`
}

type Timings struct {
	ModelLatencyMs   int64 `json:"modelLatencyMs"`
	GrammarLatencyMs int64 `json:"grammarLatencyMs"`
	TotalLatencyMs   int64 `json:"totalLatencyMs"`
}

// Document is the response body of the feedback endpoint.
type Document struct {
	OverallScore           int                `json:"overallScore"` // 0..100
	CriteriaScores         CriteriaScores     `json:"criteriaScores"`
	FeedbackCategories     []CriteriaFeedback `json:"feedbackCategories"`
	GrammarCorrections     []Correction       `json:"grammarCorrections"`
	VocabularyEnhancements []Correction       `json:"vocabularyEnhancements"`

	Timings      Timings `json:"timings"`
	ModelVersion string  `json:"modelVersion"`
	ID           string  `json:"id"`
	GeneratedAt  string  `json:"generatedAt,omitempty"`
	WordCount    int     `json:"wordCount"`

	// Set only on documents produced by the fallback generator.
	Error        bool   `json:"error,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}
