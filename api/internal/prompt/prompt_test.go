package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essay-feedback/api/internal/essay/types"
)

func TestCritiqueEmbedded(t *testing.T) {
	system, user, err := Loader{}.Critique(types.CritiqueRequest{
		Text:       "The dog runned fast.",
		TextType:   "persuasive",
		WordCount:  4,
		TaskPrompt: "Write about a pet.",
	})
	require.NoError(t, err)

	assert.Contains(t, system, "DO NOT include \"grammarCorrections\"")
	assert.Contains(t, system, `"feedbackCategories"`, "schema must be appended to the system prompt")
	assert.Contains(t, user, "persuasive writing (4 words)")
	assert.Contains(t, user, "The dog runned fast.")
	assert.Contains(t, user, "Write about a pet.")
	assert.Contains(t, user, "Assistance level requested by the student: moderate.")
}

func TestCritiqueDefaultsAndNoTaskPrompt(t *testing.T) {
	_, user, err := Loader{}.Critique(types.CritiqueRequest{Text: "x", WordCount: 1})
	require.NoError(t, err)
	assert.Contains(t, user, "narrative writing (1 words)")
	assert.NotContains(t, user, "PROMPT GIVEN TO STUDENT")
}

func TestCritiqueDirOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CritiqueUserFile), []byte("essay={{.Text}} type={{.TextType}}"), 0o644))

	system, user, err := Loader{Dir: dir}.Critique(types.CritiqueRequest{Text: "hello", TextType: "diary"})
	require.NoError(t, err)
	assert.Equal(t, "essay=hello type=diary", user)
	assert.Contains(t, system, "NSW Selective", "system prompt falls back to the embedded copy")
}

func TestCritiqueBadTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CritiqueUserFile), []byte("{{.Text"), 0o644))

	_, _, err := Loader{Dir: dir}.Critique(types.CritiqueRequest{Text: "hello"})
	require.Error(t, err)
}
