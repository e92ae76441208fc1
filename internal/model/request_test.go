package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse_MarshalJSON(t *testing.T) {
	videos := []VideoSummary{{VideoID: "ABCDEFGHIJK", Title: "Provided video"}}

	t.Run("list response has no fallback field", func(t *testing.T) {
		data, err := json.Marshal(NewListResponse("The latest video is: A.", videos))
		require.NoError(t, err)

		var raw map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.NotContains(t, raw, "fallback")
		assert.Equal(t, "The latest video is: A.", raw["spoken_response"])
	})

	t.Run("full tier summary renders fallback as null", func(t *testing.T) {
		data, err := json.Marshal(NewSummaryResponse("summary", videos, nil))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"fallback":null`)
		assert.Contains(t, string(data), `"videoId":"ABCDEFGHIJK"`)
	})

	t.Run("titles only summary renders sentinel", func(t *testing.T) {
		sentinel := TitlesOnlySentinel
		resp := NewSummaryResponse("summary", videos, &sentinel)
		data, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"fallback":"titles_only"`)
		assert.Equal(t, ActionSummarize, resp.Action())
	})

	t.Run("nil videos render as empty array", func(t *testing.T) {
		data, err := json.Marshal(NewListResponse("x", nil))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"videos":[]`)
	})
}

func TestFallbackTier_String(t *testing.T) {
	assert.Equal(t, "full_transcripts", TierFullTranscripts.String())
	assert.Equal(t, "titles_only", TierTitlesOnly.String())
	assert.Equal(t, "channel", TargetChannel.String())
	assert.Equal(t, "video", TargetVideo.String())
}
