package youtube

import (
	"context"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
)

// maxPageSize is the largest page playlistItems.list returns
const maxPageSize = 50

// APILookup implements ChannelLookup on top of the YouTube Data API v3
type APILookup struct {
	service *ytapi.Service
}

// NewAPILookup creates a Data API client authenticated with apiKey.
// Extra options are appended after the key, which lets tests point the
// client at a local endpoint.
func NewAPILookup(ctx context.Context, apiKey string, opts ...option.ClientOption) (*APILookup, error) {
	if apiKey == "" {
		return nil, errors.New(errors.CodeInvalidArg, "YouTube API key is required")
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := ytapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create YouTube client")
	}

	return &APILookup{service: service}, nil
}

// FindChannel resolves handle-shaped names with channels.list forHandle,
// then falls back to the top search.list hit of type channel
func (l *APILookup) FindChannel(ctx context.Context, name string) (*model.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New(errors.CodeInvalidArg, "channel name is required")
	}

	log.Debug().Str("channel", name).Msg("resolving channel via YouTube API")

	if looksLikeHandle(name) {
		channel, err := l.channelByHandle(ctx, strings.TrimPrefix(name, "@"))
		if err != nil {
			return nil, err
		}
		if channel != nil {
			return channel, nil
		}
		log.Debug().Str("channel", name).Msg("no channel for handle, falling back to search")
	}

	resp, err := l.service.Search.List([]string{"snippet"}).
		Q(name).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		log.Error().Err(err).Str("channel", name).Msg("YouTube channel search failed")
		return nil, errors.Wrap(err, errors.CodeExternal, "YouTube channel search failed")
	}

	for _, item := range resp.Items {
		if item.Id == nil || item.Id.ChannelId == "" {
			continue
		}
		channel := &model.Channel{
			ID:  item.Id.ChannelId,
			URL: "https://www.youtube.com/channel/" + item.Id.ChannelId,
		}
		if item.Snippet != nil {
			channel.Name = html.UnescapeString(firstNonEmpty(item.Snippet.ChannelTitle, item.Snippet.Title))
		}
		log.Debug().Str("channel", name).Str("channel_id", channel.ID).Msg("channel resolved by search")
		return channel, nil
	}

	return nil, errors.Newf(errors.CodeChannelNotFound, "no channel matches %q", name)
}

// channelByHandle returns nil without error when no channel owns the handle
func (l *APILookup) channelByHandle(ctx context.Context, handle string) (*model.Channel, error) {
	resp, err := l.service.Channels.List([]string{"snippet"}).
		ForHandle("@" + handle).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		log.Error().Err(err).Str("handle", handle).Msg("YouTube handle lookup failed")
		return nil, errors.Wrap(err, errors.CodeExternal, "YouTube handle lookup failed")
	}

	for _, item := range resp.Items {
		if item.Id == "" {
			continue
		}
		channel := &model.Channel{
			ID:   item.Id,
			Name: handle,
			URL:  "https://www.youtube.com/channel/" + item.Id,
		}
		if item.Snippet != nil && item.Snippet.Title != "" {
			channel.Name = html.UnescapeString(item.Snippet.Title)
		}
		log.Debug().Str("handle", handle).Str("channel_id", channel.ID).Msg("channel resolved by handle")
		return channel, nil
	}
	return nil, nil
}

// RecentVideos pages through the channel's uploads playlist and returns
// the newest limit videos by publish date
func (l *APILookup) RecentVideos(ctx context.Context, channelID string, limit int) ([]model.VideoSummary, error) {
	if channelID == "" {
		return nil, errors.New(errors.CodeInvalidArg, "channel ID is required")
	}
	if limit < 1 {
		return nil, errors.New(errors.CodeInvalidArg, "limit must be at least 1")
	}

	log.Debug().Str("channel_id", channelID).Int("limit", limit).Msg("fetching uploads via YouTube API")

	uploadsID, err := l.uploadsPlaylist(ctx, channelID)
	if err != nil {
		return nil, err
	}

	type dated struct {
		video     model.VideoSummary
		published time.Time
	}
	items := make([]dated, 0, limit)

	var pageToken string
	for len(items) < limit {
		call := l.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(uploadsID).
			MaxResults(int64(min(maxPageSize, limit-len(items)))).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			log.Error().Err(err).Str("channel_id", channelID).Str("playlist_id", uploadsID).Msg("failed to list uploads")
			return nil, errors.Wrap(err, errors.CodeExternal, "YouTube uploads listing failed")
		}

		for _, item := range resp.Items {
			if item.Snippet == nil {
				continue
			}
			videoID := ""
			published := item.Snippet.PublishedAt
			if item.ContentDetails != nil {
				videoID = item.ContentDetails.VideoId
				if item.ContentDetails.VideoPublishedAt != "" {
					published = item.ContentDetails.VideoPublishedAt
				}
			}
			if videoID == "" && item.Snippet.ResourceId != nil {
				videoID = item.Snippet.ResourceId.VideoId
			}
			if videoID == "" {
				continue
			}

			// Titles come back HTML-escaped
			d := dated{video: model.VideoSummary{
				VideoID: videoID,
				Title:   html.UnescapeString(item.Snippet.Title),
			}}
			if ts, err := time.Parse(time.RFC3339, published); err == nil {
				d.published = ts
			}
			items = append(items, d)
		}

		if resp.NextPageToken == "" || len(resp.Items) == 0 {
			break
		}
		pageToken = resp.NextPageToken
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].published.After(items[j].published)
	})

	if len(items) > limit {
		items = items[:limit]
	}
	if len(items) == 0 {
		return nil, errors.Newf(errors.CodeNoVideosFound, "channel %s has no videos", channelID)
	}

	videos := make([]model.VideoSummary, 0, len(items))
	for _, d := range items {
		videos = append(videos, d.video)
	}
	return videos, nil
}

// uploadsPlaylist reads the channel's uploads playlist id from contentDetails
func (l *APILookup) uploadsPlaylist(ctx context.Context, channelID string) (string, error) {
	resp, err := l.service.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		log.Error().Err(err).Str("channel_id", channelID).Msg("failed to get channel from YouTube API")
		return "", errors.Wrap(err, errors.CodeExternal, "YouTube channel request failed")
	}

	if len(resp.Items) == 0 {
		return "", errors.Newf(errors.CodeChannelNotFound, "channel %s not found", channelID)
	}

	details := resp.Items[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil || details.RelatedPlaylists.Uploads == "" {
		return "", errors.Newf(errors.CodeNoVideosFound, "channel %s has no uploads playlist", channelID)
	}
	return details.RelatedPlaylists.Uploads, nil
}
