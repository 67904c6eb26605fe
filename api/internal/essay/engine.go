package essay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"essay-feedback/api/internal/essay/types"
)

var (
	ErrUnknownEngine       = errors.New("unknown llm name; use 'gpt' or 'gemini'")
	ErrEngineNotConfigured = errors.New("engine is not configured")
)

// Critic is a critique oracle: an LLM producing rubric feedback for an essay.
type Critic interface {
	Name() string
	GetModel() string
	Critique(ctx context.Context, in types.CritiqueRequest) (types.Critique, error)
}

// GrammarChecker is a grammar oracle returning corrections with exact spans.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]types.Correction, error)
}

type Engines struct {
	OpenAI  Critic
	Gemini  Critic
	Default string
}

func (e *Engines) GetEngine(llmName string) (Critic, error) {
	name := strings.ToLower(strings.TrimSpace(llmName))
	if name == "" {
		name = e.Default
	}
	var c Critic
	switch name {
	case "gpt", "openai":
		c = e.OpenAI
	case "gemini":
		c = e.Gemini
	default:
		return nil, ErrUnknownEngine
	}
	if c == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrEngineNotConfigured)
	}
	return c, nil
}
