package generation

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
)

// OpenAIGenerator talks to any OpenAI-compatible chat completion endpoint
type OpenAIGenerator struct {
	cli   *openai.Client
	model string
}

// NewOpenAIGenerator creates a generator; an empty baseURL means api.openai.com
func NewOpenAIGenerator(apiKey, baseURL, model string) *OpenAIGenerator {
	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}
	return &OpenAIGenerator{
		cli:   openai.NewClientWithConfig(clientConfig),
		model: model,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	log.Debug().Str("model", g.model).Int("prompt_chars", len(prompt)).Msg("requesting chat completion")

	resp, err := g.cli.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("model", g.model).Msg("chat completion failed")
		return "", errors.Wrap(err, errors.CodeGenerationUnreachable, "chat completion request failed")
	}

	if len(resp.Choices) == 0 {
		return "", errors.New(errors.CodeGenerationMalformed, "chat completion returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New(errors.CodeGenerationMalformed, "chat completion returned empty content")
	}
	return text, nil
}
