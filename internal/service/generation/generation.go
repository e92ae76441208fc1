package generation

import (
	"context"

	"github.com/Taichi-iskw/yt-brief/internal/config"
	"github.com/Taichi-iskw/yt-brief/internal/errors"
)

// SystemPrompt is sent with every generation request
const SystemPrompt = `You are a research assistant that answers through a voice speaker.
You must:
- Never invent facts
- Only use the provided context
- Leave out any claim the context does not support
- Prefer accuracy over speculation
- Reply in plain spoken sentences, without markdown, lists or headings`

// Generator is the text-generation collaborator
type Generator interface {
	// Generate returns the model's reply to prompt. A failed call is
	// GENERATION_UNREACHABLE, a reply without text GENERATION_MALFORMED.
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator creates the Generator selected by cfg.LLMProvider
func NewGenerator(cfg *config.Config) (Generator, error) {
	switch cfg.LLMProvider {
	case config.LLMProviderOpenAI:
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case config.LLMProviderGemini:
		return NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	default:
		return nil, errors.Newf(errors.CodeInvalidArg, "unknown llm provider %q", cfg.LLMProvider)
	}
}
