package gpt

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	"essay-feedback/api/internal/essay"
	"essay-feedback/api/internal/essay/types"
)

func (e *Engine) Critique(ctx context.Context, in types.CritiqueRequest) (types.Critique, error) {
	system, user, err := e.prompts.Critique(in)
	if err != nil {
		return types.Critique{}, err
	}

	start := time.Now()
	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(maxOutputTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return types.Critique{}, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return types.Critique{}, fmt.Errorf("%w: openai returned no choices", essay.ErrCritiqueParse)
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)

	e.log.Debug("openai critique",
		zap.String("model", resp.Model),
		zap.Duration("latency", time.Since(start)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)))

	return essay.ParseCritique([]byte(out))
}
