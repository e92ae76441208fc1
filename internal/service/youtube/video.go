package youtube

import (
	"context"
	"sort"
	"strings"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
)

// RecentVideos lists the newest uploads of a channel using yt-dlp
func (l *YtDlpLookup) RecentVideos(ctx context.Context, channelID string, limit int) ([]model.VideoSummary, error) {
	// Input validation
	if channelID == "" {
		return nil, errors.New(errors.CodeInvalidArg, "channel ID is required")
	}
	if !strings.HasPrefix(channelID, "UC") {
		return nil, errors.New(errors.CodeInvalidArg, "invalid channel ID format (must start with UC)")
	}
	if limit < 1 {
		return nil, errors.New(errors.CodeInvalidArg, "limit must be at least 1")
	}

	// The videos tab lists uploads newest first
	playlist, err := l.dumpPlaylist(ctx, "https://www.youtube.com/channel/"+channelID+"/videos", limit)
	if err != nil {
		return nil, err
	}

	entries := make([]ytDlpEntry, 0, len(playlist.Entries))
	for _, entry := range playlist.Entries {
		if entry.ID == "" || entry.Title == "" {
			continue
		}
		entries = append(entries, entry)
	}
	// Flat listings only sometimes carry timestamps; keep tab order otherwise
	if allTimestamped(entries) {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Timestamp > entries[j].Timestamp
		})
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}
	if len(entries) == 0 {
		return nil, errors.Newf(errors.CodeNoVideosFound, "channel %s has no videos", channelID)
	}

	videos := make([]model.VideoSummary, 0, len(entries))
	for _, entry := range entries {
		videos = append(videos, model.VideoSummary{VideoID: entry.ID, Title: entry.Title})
	}
	return videos, nil
}

func allTimestamped(entries []ytDlpEntry) bool {
	for _, e := range entries {
		if e.Timestamp == 0 {
			return false
		}
	}
	return true
}
