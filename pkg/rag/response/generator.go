package response

import (
	"context"
	"fmt"
	"time"

	"tenglaafi-be/internal/apperrors"
	"tenglaafi-be/internal/constant"
	"tenglaafi-be/internal/pkg/logger"
	"tenglaafi-be/pkg/llm"
	"tenglaafi-be/pkg/retry"
)

// Generator produces the final grounded answer from the assembled context.
type Generator struct {
	provider    llm.LLMProvider
	logger      logger.ILogger
	timeout     time.Duration
	attempts    int
	temperature float64
	maxTokens   int
}

func NewGenerator(provider llm.LLMProvider, log logger.ILogger, timeout time.Duration, attempts int) *Generator {
	return &Generator{
		provider:    provider,
		logger:      log,
		timeout:     timeout,
		attempts:    attempts,
		temperature: 0.2,
		maxTokens:   512,
	}
}

// Generate asks the LLM to answer the question using only the supplied
// context block. Transient provider errors are retried; anything that
// survives the retry policy comes back as a generation failure.
func (g *Generator) Generate(ctx context.Context, question string, contextBlock string) (string, error) {
	messages := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.SystemPromptV1},
		{Role: constant.ChatMessageRoleUser, Content: fmt.Sprintf(constant.UserPromptTemplateV1, contextBlock, question)},
	}

	started := time.Now()
	answer, err := retry.Do(ctx, g.timeout, g.attempts, func(ctx context.Context) (string, error) {
		return g.provider.Chat(ctx, messages,
			llm.WithTemperature(g.temperature),
			llm.WithMaxTokens(g.maxTokens),
		)
	})
	if err != nil {
		return "", apperrors.GenerationFailure("llm generation failed", err)
	}

	g.logger.Debug("generator", "answer generated", map[string]interface{}{
		"duration_ms": time.Since(started).Milliseconds(),
		"answer_len":  len(answer),
	})

	return answer, nil
}
