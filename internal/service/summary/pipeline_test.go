package summary

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
)

func videos(ids ...string) []model.VideoSummary {
	out := make([]model.VideoSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.VideoSummary{VideoID: id, Title: "Title " + id})
	}
	return out
}

func TestPipeline_Run(t *testing.T) {
	tests := []struct {
		name            string
		videos          []model.VideoSummary
		texts           map[string]string
		wantTier        model.FallbackTier
		wantCovered     int
		wantInPrompt    []string
		wantNotInPrompt []string
	}{
		{
			name:         "single video with transcript",
			videos:       []model.VideoSummary{{VideoID: "ABCDEFGHIJK", Title: "Provided video"}},
			texts:        map[string]string{"ABCDEFGHIJK": "rockets go up"},
			wantTier:     model.TierFullTranscripts,
			wantCovered:  1,
			wantInPrompt: []string{"Summarize the following video", "rockets go up", "Provided video"},
		},
		{
			name:         "all transcripts",
			videos:       videos("a", "b"),
			texts:        map[string]string{"a": "alpha text", "b": "beta text"},
			wantTier:     model.TierFullTranscripts,
			wantCovered:  2,
			wantInPrompt: []string{"2 videos together", "themes", "alpha text", "beta text"},
		},
		{
			name:            "partial coverage stays on full tier",
			videos:          videos("a", "b", "c"),
			texts:           map[string]string{"b": "only beta"},
			wantTier:        model.TierFullTranscripts,
			wantCovered:     1,
			wantInPrompt:    []string{"only beta", "Title b"},
			wantNotInPrompt: []string{"Title a", "Title c"},
		},
		{
			name:            "no transcripts falls back to titles",
			videos:          videos("v1", "v2", "v3", "v4", "v5"),
			texts:           map[string]string{},
			wantTier:        model.TierTitlesOnly,
			wantCovered:     0,
			wantInPrompt:    []string{"1. Title v1", "5. Title v5", "titles alone"},
			wantNotInPrompt: []string{"transcript", "Transcript"},
		},
		{
			name:            "transcript that cleans to nothing counts as missing",
			videos:          videos("m"),
			texts:           map[string]string{"m": "♪ ♫ \n "},
			wantTier:        model.TierTitlesOnly,
			wantCovered:     0,
			wantNotInPrompt: []string{"transcript"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{texts: tt.texts}
			generator := &mockGenerator{}
			pipeline := NewPipeline(provider, generator, Options{})

			result, err := pipeline.Run(context.Background(), tt.videos)
			require.NoError(t, err)

			assert.Equal(t, "summary", result.SpokenText)
			assert.Equal(t, tt.wantTier, result.Tier)
			assert.Equal(t, tt.wantCovered, result.Covered)
			assert.Equal(t, tt.videos, result.Videos)
			assert.ElementsMatch(t, videoIDs(tt.videos), provider.called)

			require.Len(t, generator.prompts, 1)
			prompt := generator.prompts[0]
			for _, s := range tt.wantInPrompt {
				assert.Contains(t, prompt, s)
			}
			for _, s := range tt.wantNotInPrompt {
				assert.NotContains(t, prompt, s)
			}
		})
	}
}

func TestPipeline_RunIsDeterministic(t *testing.T) {
	provider := &mockProvider{texts: map[string]string{"a": "first", "b": "second", "c": "third"}}
	generator := &mockGenerator{}
	pipeline := NewPipeline(provider, generator, Options{})

	for i := 0; i < 5; i++ {
		result, err := pipeline.Run(context.Background(), videos("a", "b", "c"))
		require.NoError(t, err)
		assert.Equal(t, model.TierFullTranscripts, result.Tier)
	}

	for _, prompt := range generator.prompts[1:] {
		assert.Equal(t, generator.prompts[0], prompt)
	}
	first := generator.prompts[0]
	assert.Less(t, strings.Index(first, "first"), strings.Index(first, "second"))
	assert.Less(t, strings.Index(first, "second"), strings.Index(first, "third"))
}

func TestPipeline_GenerationErrorsAreTerminal(t *testing.T) {
	for _, code := range []string{errors.CodeGenerationUnreachable, errors.CodeGenerationMalformed} {
		t.Run(code, func(t *testing.T) {
			generator := &mockGenerator{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
				return "", errors.New(code, "upstream said no")
			}}
			pipeline := NewPipeline(&mockProvider{}, generator, Options{})

			result, err := pipeline.Run(context.Background(), videos("a"))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, code, errors.CodeOf(err))
		})
	}
}

func TestPipeline_GenerationTimeout(t *testing.T) {
	generator := &mockGenerator{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
		return "ok", nil
	}}
	pipeline := NewPipeline(&mockProvider{}, generator, Options{GenerationTimeout: 2 * time.Second})

	_, err := pipeline.Run(context.Background(), videos("a"))
	require.NoError(t, err)
}

func TestPipeline_NoVideos(t *testing.T) {
	pipeline := NewPipeline(&mockProvider{}, &mockGenerator{}, Options{})
	_, err := pipeline.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNoVideosFound, errors.CodeOf(err))
}

func videoIDs(vs []model.VideoSummary) []string {
	ids := make([]string, 0, len(vs))
	for _, v := range vs {
		ids = append(ids, v.VideoID)
	}
	return ids
}
