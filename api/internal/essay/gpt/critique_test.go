package gpt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"essay-feedback/api/internal/essay"
	"essay-feedback/api/internal/essay/types"
)

const critiqueJSON = `{"overallScore":80,"criteriaScores":{"ideasAndContent":4,"textStructureAndOrganization":4,"languageFeaturesAndVocabulary":3,"spellingPunctuationAndGrammar":3},"feedbackCategories":[{"category":"Ideas and Content","score":4,"strengths":[{"exampleFromText":"The dog","position":{"start":0,"end":7},"comment":"Clear"}],"areasForImprovement":[]}],"vocabularyEnhancements":[]}`

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []any{map[string]any{
			"index":         0,
			"finish_reason": "stop",
			"logprobs":      nil,
			"message":       map[string]any{"role": "assistant", "content": content, "refusal": nil},
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
	}
}

func newTestEngine(t *testing.T, h http.HandlerFunc) *Engine {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return New(Config{APIKey: "test-key", BaseURL: server.URL, Model: "gpt-4o-mini"}, zaptest.NewLogger(t))
}

func TestCritiqueSuccess(t *testing.T) {
	var payload map[string]any
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion(critiqueJSON))
	})

	c, err := e.Critique(context.Background(), types.CritiqueRequest{Text: "The dog runned fast.", TextType: "narrative", WordCount: 4})
	require.NoError(t, err)
	assert.Equal(t, types.FlexInt(80), c.OverallScore)
	require.Len(t, c.FeedbackCategories, 1)

	assert.Equal(t, "gpt-4o-mini", payload["model"])
	assert.InDelta(t, 0.3, payload["temperature"], 1e-9)
	rf, _ := payload["response_format"].(map[string]any)
	assert.Equal(t, "json_object", rf["type"])
	msgs, _ := payload["messages"].([]any)
	require.Len(t, msgs, 2)
	user, _ := msgs[1].(map[string]any)
	assert.Contains(t, user["content"], "The dog runned fast.")
}

func TestCritiqueBadJSONIsParseError(t *testing.T) {
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion("Sorry, I can't help with that."))
	})

	_, err := e.Critique(context.Background(), types.CritiqueRequest{Text: "The dog runned fast."})
	require.Error(t, err)
	assert.ErrorIs(t, err, essay.ErrCritiqueParse)
}

func TestCritiqueAPIErrorNotRetried(t *testing.T) {
	calls := 0
	e := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
	})

	_, err := e.Critique(context.Background(), types.CritiqueRequest{Text: "The dog runned fast."})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, 1, calls)
}

func TestNameAndModel(t *testing.T) {
	e := New(Config{APIKey: "k"}, zaptest.NewLogger(t))
	assert.Equal(t, "gpt", e.Name())
	assert.Equal(t, defaultModel, e.GetModel())
}
