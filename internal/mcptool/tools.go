// Package mcptool exposes the assistant operations as MCP tools.
package mcptool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/Taichi-iskw/yt-brief/internal/model"
	"github.com/Taichi-iskw/yt-brief/internal/service/assistant"
)

// TargetInput is shared by the list and summarize tools
type TargetInput struct {
	Query       string `json:"query,omitempty" jsonschema:"Free text such as 'last 5 videos from @veritasium'"`
	Channel     string `json:"channel,omitempty" jsonschema:"Channel name or @handle"`
	VideoURL    string `json:"video_url,omitempty" jsonschema:"URL of a single video (watch?v= or youtu.be)"`
	PlaylistURL string `json:"playlist_url,omitempty" jsonschema:"Playlist URL (not supported, rejected)"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Number of recent videos (default 3)"`
}

func (in TargetInput) request(action model.Action) model.Request {
	return model.Request{
		Action:      string(action),
		Query:       in.Query,
		Channel:     in.Channel,
		VideoURL:    in.VideoURL,
		PlaylistURL: in.PlaylistURL,
		Limit:       in.Limit,
	}
}

// ListOutput is the result of youtube_list_videos
type ListOutput struct {
	SpokenResponse string               `json:"spoken_response"`
	Videos         []model.VideoSummary `json:"videos"`
}

// SummarizeOutput is the result of youtube_summarize. Fallback is
// "titles_only" when no transcript could be used and null otherwise.
type SummarizeOutput struct {
	SpokenResponse string               `json:"spoken_response"`
	Videos         []model.VideoSummary `json:"videos"`
	Fallback       *string              `json:"fallback"`
}

// TranscriptInput is the input of youtube_transcript
type TranscriptInput struct {
	VideoID string `json:"videoId" jsonschema:"The 11-character YouTube video id"`
}

// TranscriptOutput is the result of youtube_transcript
type TranscriptOutput struct {
	VideoID    string `json:"videoId"`
	Transcript string `json:"transcript"`
	Source     string `json:"source,omitempty"`
}

// NewServer creates an MCP server with every tool registered
func NewServer(svc assistant.Service, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "yt-brief",
		Version: version,
	}, nil)
	RegisterTools(server, svc)
	return server
}

// Run serves over stdin/stdout until the client disconnects or ctx ends
func Run(ctx context.Context, server *mcp.Server) error {
	log.Info().Msg("serving MCP over stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RegisterTools adds the list, summarize and transcript tools
func RegisterTools(server *mcp.Server, svc assistant.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_list_videos",
		Description: "List the latest video titles of a YouTube channel as one spoken sentence. Accepts a channel, a free-text query or a single video URL.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TargetInput) (*mcp.CallToolResult, *ListOutput, error) {
		resp, err := svc.Handle(ctx, input.request(model.ActionList))
		if err != nil {
			return nil, nil, err
		}
		return nil, &ListOutput{
			SpokenResponse: resp.SpokenResponse,
			Videos:         nonNil(resp.Videos),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_summarize",
		Description: "Summarize recent videos of a YouTube channel, or a single video, in a few spoken sentences built from their transcripts. Falls back to titles when no transcript is available.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TargetInput) (*mcp.CallToolResult, *SummarizeOutput, error) {
		resp, err := svc.Handle(ctx, input.request(model.ActionSummarize))
		if err != nil {
			return nil, nil, err
		}
		return nil, &SummarizeOutput{
			SpokenResponse: resp.SpokenResponse,
			Videos:         nonNil(resp.Videos),
			Fallback:       resp.Fallback,
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Return the cleaned transcript of one YouTube video, preferring human subtitles over automatic captions.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, *TranscriptOutput, error) {
		t, err := svc.Transcript(ctx, input.VideoID)
		if err != nil {
			return nil, nil, err
		}
		return nil, &TranscriptOutput{
			VideoID:    t.VideoID,
			Transcript: t.Text,
			Source:     string(t.Source),
		}, nil
	})
}

func nonNil(videos []model.VideoSummary) []model.VideoSummary {
	if videos == nil {
		return []model.VideoSummary{}
	}
	return videos
}
