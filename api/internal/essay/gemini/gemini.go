package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"essay-feedback/api/internal/essay"
	"essay-feedback/api/internal/essay/types"
	"essay-feedback/api/internal/prompt"
)

const (
	defaultModel    = "gemini-2.5-flash"
	temperature     = 0.3
	maxOutputTokens = 2000
)

type Engine struct {
	APIKey  string
	Model   string
	prompts prompt.Loader
	log     *zap.Logger
}

func New(apiKey, model, promptDir string, log *zap.Logger) *Engine {
	model = strings.TrimSpace(model)
	if model == "" {
		model = defaultModel
	}
	return &Engine{
		APIKey:  strings.TrimSpace(apiKey),
		Model:   model,
		prompts: prompt.Loader{Dir: promptDir},
		log:     log,
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// Critique returns rubric feedback in the critique schema.
func (e *Engine) Critique(ctx context.Context, in types.CritiqueRequest) (types.Critique, error) {
	if e.APIKey == "" {
		return types.Critique{}, errors.New("GEMINI_API_KEY is empty")
	}
	system, user, err := e.prompts.Critique(in)
	if err != nil {
		return types.Critique{}, err
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return types.Critique{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return types.Critique{}, fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(temperature),
		MaxOutputTokens:  ptrInt32(maxOutputTokens),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	start := time.Now()
	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return types.Critique{}, fmt.Errorf("gemini critique: %w", err)
	}
	txt := firstText(resp)
	if txt == "" {
		return types.Critique{}, fmt.Errorf("%w: gemini returned empty response", essay.ErrCritiqueParse)
	}
	e.log.Debug("gemini critique",
		zap.String("model", e.Model),
		zap.Duration("latency", time.Since(start)))

	return essay.ParseCritique([]byte(txt))
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String())
}

func ptrFloat32(f float32) *float32 { return &f }
func ptrInt32(i int32) *int32       { return &i }
