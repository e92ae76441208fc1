package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/Taichi-iskw/yt-brief/internal/config"
	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
)

// newTestAPILookup serves handler as the Data API and returns a client bound to it
func newTestAPILookup(t *testing.T, handler http.HandlerFunc) *APILookup {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	lookup, err := NewAPILookup(context.Background(), "test-key",
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return lookup
}

func TestNewAPILookup_RequiresKey(t *testing.T) {
	_, err := NewAPILookup(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidArg, errors.CodeOf(err))
}

func TestAPILookup_FindChannel(t *testing.T) {
	var handleCalls, searchCalls int
	lookup := newTestAPILookup(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/youtube/v3/channels":
			handleCalls++
			assert.Equal(t, "snippet", q.Get("part"))
			switch q.Get("forHandle") {
			case "@exampleChan":
				_, _ = w.Write([]byte(`{"items":[{"id":"UChandle","snippet":{"title":"Example &amp; Chan"}}]}`))
			default:
				_, _ = w.Write([]byte(`{"items":[]}`))
			}
		case "/youtube/v3/search":
			searchCalls++
			assert.Equal(t, "channel", q.Get("type"))
			assert.Equal(t, "1", q.Get("maxResults"))
			switch q.Get("q") {
			case "Example", "Example Co":
				_, _ = w.Write([]byte(`{"items":[{"id":{"kind":"youtube#channel","channelId":"UCexample"},"snippet":{"channelTitle":"Example &amp; Co","title":"Example &amp; Co"}}]}`))
			default:
				_, _ = w.Write([]byte(`{"items":[]}`))
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	tests := []struct {
		name       string
		input      string
		want       *model.Channel
		wantCode   string
		wantHandle int
		wantSearch int
	}{
		{
			name:       "handle resolves without search",
			input:      "@exampleChan",
			want:       &model.Channel{ID: "UChandle", Name: "Example & Chan", URL: "https://www.youtube.com/channel/UChandle"},
			wantHandle: 1,
		},
		{
			name:       "bare handle-shaped name",
			input:      "exampleChan",
			want:       &model.Channel{ID: "UChandle", Name: "Example & Chan", URL: "https://www.youtube.com/channel/UChandle"},
			wantHandle: 1,
		},
		{
			name:       "unknown handle falls back to search",
			input:      "Example",
			want:       &model.Channel{ID: "UCexample", Name: "Example & Co", URL: "https://www.youtube.com/channel/UCexample"},
			wantHandle: 1,
			wantSearch: 1,
		},
		{
			name:       "names with spaces go straight to search",
			input:      "Example Co",
			want:       &model.Channel{ID: "UCexample", Name: "Example & Co", URL: "https://www.youtube.com/channel/UCexample"},
			wantSearch: 1,
		},
		{
			name:       "no match",
			input:      "nobody",
			wantCode:   errors.CodeChannelNotFound,
			wantHandle: 1,
			wantSearch: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handleCalls, searchCalls = 0, 0

			channel, err := lookup.FindChannel(context.Background(), tt.input)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.CodeOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, channel)
			}
			assert.Equal(t, tt.wantHandle, handleCalls)
			assert.Equal(t, tt.wantSearch, searchCalls)
		})
	}
}

// uploadsServer fakes channels.list (contentDetails) and a two-page uploads playlist
func uploadsServer(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/youtube/v3/channels":
			assert.Equal(t, "contentDetails", q.Get("part"))
			switch q.Get("id") {
			case "UCexample":
				_, _ = w.Write([]byte(`{"items":[{"id":"UCexample","contentDetails":{"relatedPlaylists":{"uploads":"UUexample"}}}]}`))
			case "UCempty":
				_, _ = w.Write([]byte(`{"items":[{"id":"UCempty","contentDetails":{"relatedPlaylists":{"uploads":"UUempty"}}}]}`))
			default:
				_, _ = w.Write([]byte(`{"items":[]}`))
			}
		case "/youtube/v3/playlistItems":
			assert.Equal(t, "snippet,contentDetails", q.Get("part"))
			switch {
			case q.Get("playlistId") == "UUempty":
				_, _ = w.Write([]byte(`{"items":[]}`))
			case q.Get("pageToken") == "":
				assert.Equal(t, "3", q.Get("maxResults"))
				_, _ = w.Write([]byte(`{"nextPageToken":"page2","items":[
{"snippet":{"title":"Older","publishedAt":"2024-04-01T00:00:00Z"},"contentDetails":{"videoId":"vid1","videoPublishedAt":"2024-01-01T00:00:00Z"}},
{"snippet":{"title":"Newest &quot;one&quot;","resourceId":{"kind":"youtube#video","videoId":"vid2"},"publishedAt":"2024-03-01T00:00:00Z"}}]}`))
			case q.Get("pageToken") == "page2":
				assert.Equal(t, "1", q.Get("maxResults"))
				_, _ = w.Write([]byte(`{"items":[
{"snippet":{"title":"Middle","publishedAt":"2024-02-01T00:00:00Z"},"contentDetails":{"videoId":"vid3"}}]}`))
			default:
				t.Errorf("unexpected page token %q", q.Get("pageToken"))
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}
}

func TestAPILookup_RecentVideos(t *testing.T) {
	lookup := newTestAPILookup(t, uploadsServer(t))

	videos, err := lookup.RecentVideos(context.Background(), "UCexample", 3)
	require.NoError(t, err)
	// videoPublishedAt wins over the playlist insertion time
	assert.Equal(t, []model.VideoSummary{
		{VideoID: "vid2", Title: `Newest "one"`},
		{VideoID: "vid3", Title: "Middle"},
		{VideoID: "vid1", Title: "Older"},
	}, videos)
}

func TestAPILookup_RecentVideos_Errors(t *testing.T) {
	lookup := newTestAPILookup(t, uploadsServer(t))

	tests := []struct {
		name      string
		channelID string
		limit     int
		wantCode  string
	}{
		{name: "empty uploads", channelID: "UCempty", limit: 3, wantCode: errors.CodeNoVideosFound},
		{name: "unknown channel", channelID: "UCmissing", limit: 3, wantCode: errors.CodeChannelNotFound},
		{name: "missing id", channelID: "", limit: 3, wantCode: errors.CodeInvalidArg},
		{name: "zero limit", channelID: "UCexample", limit: 0, wantCode: errors.CodeInvalidArg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lookup.RecentVideos(context.Background(), tt.channelID, tt.limit)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.CodeOf(err))
		})
	}
}

func TestAPILookup_UpstreamError(t *testing.T) {
	lookup := newTestAPILookup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quotaExceeded"}}`))
	})

	_, err := lookup.FindChannel(context.Background(), "Example")
	require.Error(t, err)
	assert.Equal(t, errors.CodeExternal, errors.CodeOf(err))

	_, err = lookup.RecentVideos(context.Background(), "UCexample", 3)
	require.Error(t, err)
	assert.Equal(t, errors.CodeExternal, errors.CodeOf(err))
}

func TestNewChannelLookup(t *testing.T) {
	cfg := config.Default()

	cfg.ChannelBackend = config.ChannelBackendYtDlp
	lookup, err := NewChannelLookup(context.Background(), cfg, &mockCmdRunner{})
	require.NoError(t, err)
	assert.IsType(t, &YtDlpLookup{}, lookup)

	cfg.ChannelBackend = config.ChannelBackendAPI
	cfg.YouTubeAPIKey = "key"
	lookup, err = NewChannelLookup(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &APILookup{}, lookup)

	cfg.ChannelBackend = "scrape"
	_, err = NewChannelLookup(context.Background(), cfg, nil)
	require.Error(t, err)
}
