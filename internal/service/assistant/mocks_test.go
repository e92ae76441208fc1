package assistant

import (
	"context"

	"github.com/Taichi-iskw/yt-brief/internal/model"
)

// mockLookup is a func-field mock of youtube.ChannelLookup
type mockLookup struct {
	FindChannelFunc  func(ctx context.Context, name string) (*model.Channel, error)
	RecentVideosFunc func(ctx context.Context, channelID string, limit int) ([]model.VideoSummary, error)
}

func (m *mockLookup) FindChannel(ctx context.Context, name string) (*model.Channel, error) {
	if m.FindChannelFunc != nil {
		return m.FindChannelFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockLookup) RecentVideos(ctx context.Context, channelID string, limit int) ([]model.VideoSummary, error) {
	if m.RecentVideosFunc != nil {
		return m.RecentVideosFunc(ctx, channelID, limit)
	}
	return nil, nil
}

// mockProvider is a func-field mock of transcript.Provider
type mockProvider struct {
	FetchFunc func(ctx context.Context, videoID string) (*model.Transcript, error)
}

func (m *mockProvider) Fetch(ctx context.Context, videoID string) (*model.Transcript, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, videoID)
	}
	return nil, nil
}

// mockSummarizer is a func-field mock of Summarizer
type mockSummarizer struct {
	RunFunc func(ctx context.Context, videos []model.VideoSummary) (*model.SummaryResult, error)
}

func (m *mockSummarizer) Run(ctx context.Context, videos []model.VideoSummary) (*model.SummaryResult, error) {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, videos)
	}
	return nil, nil
}

// channelWith returns a lookup that resolves any name to one channel with videos
func channelWith(videos ...model.VideoSummary) *mockLookup {
	return &mockLookup{
		FindChannelFunc: func(ctx context.Context, name string) (*model.Channel, error) {
			return &model.Channel{ID: "UC" + name, Name: name}, nil
		},
		RecentVideosFunc: func(ctx context.Context, channelID string, limit int) ([]model.VideoSummary, error) {
			if limit < len(videos) {
				return videos[:limit], nil
			}
			return videos, nil
		},
	}
}
