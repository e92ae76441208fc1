package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taichi-iskw/yt-brief/internal/model"
)

func TestBuildListResponse(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   string
	}{
		{name: "three titles", titles: []string{"A", "B", "C"}, want: "The latest 3 videos are: A. B. C."},
		{name: "single title", titles: []string{"Only"}, want: "The latest video is: Only."},
		{name: "punctuated titles", titles: []string{"Why?", "Wow!", "Done.", "Plain"}, want: "The latest 4 videos are: Why? Wow! Done. Plain."},
		{name: "whitespace trimmed", titles: []string{"  Spaced  ", "B"}, want: "The latest 2 videos are: Spaced. B."},
		{name: "no titles", titles: nil, want: "There are no recent videos."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos := make([]model.VideoSummary, 0, len(tt.titles))
			for _, title := range tt.titles {
				videos = append(videos, model.VideoSummary{VideoID: "id", Title: title})
			}

			resp := BuildListResponse(videos)
			assert.Equal(t, tt.want, resp.SpokenResponse)
			assert.Equal(t, model.ActionList, resp.Action())
			assert.Nil(t, resp.Fallback)
		})
	}
}

func TestBuildSummaryResponse(t *testing.T) {
	videos := []model.VideoSummary{{VideoID: "a", Title: "A"}}

	full := BuildSummaryResponse(&model.SummaryResult{SpokenText: "s", Videos: videos, Tier: model.TierFullTranscripts})
	assert.Nil(t, full.Fallback)
	assert.Equal(t, model.ActionSummarize, full.Action())

	titles := BuildSummaryResponse(&model.SummaryResult{SpokenText: "s", Videos: videos, Tier: model.TierTitlesOnly})
	require.NotNil(t, titles.Fallback)
	assert.Equal(t, model.TitlesOnlySentinel, *titles.Fallback)
	assert.Equal(t, videos, titles.Videos)
}
