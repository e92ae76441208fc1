package generation

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
)

// GeminiGenerator calls the Gemini API through generative-ai-go
type GeminiGenerator struct {
	apiKey string
	model  string
	opts   []option.ClientOption
}

// NewGeminiGenerator creates a generator for the given model
func NewGeminiGenerator(apiKey, model string, opts ...option.ClientOption) *GeminiGenerator {
	return &GeminiGenerator{apiKey: apiKey, model: model, opts: opts}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(g.apiKey)}, g.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeGenerationUnreachable, "failed to create Gemini client")
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(SystemPrompt)}}

	log.Debug().Str("model", g.model).Int("prompt_chars", len(prompt)).Msg("requesting Gemini content")

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("model", g.model).Msg("Gemini generation failed")
		return "", errors.Wrap(err, errors.CodeGenerationUnreachable, "Gemini request failed")
	}

	return textFromResponse(resp)
}

// textFromResponse joins the text parts of the first candidate
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New(errors.CodeGenerationMalformed, "Gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New(errors.CodeGenerationMalformed, "Gemini returned no text")
	}
	return text, nil
}
