package summary

import (
	"context"
	"sync"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
)

// mockProvider serves transcripts from a map; missing ids are unavailable
type mockProvider struct {
	mu     sync.Mutex
	texts  map[string]string
	called []string
}

func (m *mockProvider) Fetch(ctx context.Context, videoID string) (*model.Transcript, error) {
	m.mu.Lock()
	m.called = append(m.called, videoID)
	m.mu.Unlock()

	text, ok := m.texts[videoID]
	if !ok {
		return nil, errors.Newf(errors.CodeTranscriptUnavailable, "no transcript for %s", videoID)
	}
	return &model.Transcript{VideoID: videoID, Text: text, Source: model.TranscriptSourceManual}, nil
}

// mockGenerator is a func-field mock of generation.Generator
type mockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	prompts      []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "summary", nil
}
