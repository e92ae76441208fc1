// Package resolver turns an inbound request into a normalized target.
package resolver

import (
	"strings"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
)

// ProvidedVideoTitle is the title reported for an explicit video reference
const ProvidedVideoTitle = "Provided video"

// Options holds the limits applied while resolving
type Options struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultOptions matches the documented defaults
func DefaultOptions() Options {
	return Options{DefaultLimit: 3, MaxLimit: 25}
}

// Resolution is the outcome of Resolve
type Resolution struct {
	Action model.Action
	Target model.TargetSpec
}

// Resolve validates the action and picks exactly one target.
// Precedence: video_url > playlist_url > channel > query.
func Resolve(req model.Request, opts Options) (*Resolution, error) {
	action, err := NormalizeAction(req.Action)
	if err != nil {
		return nil, err
	}

	target, err := ResolveTarget(req, opts)
	if err != nil {
		return nil, err
	}

	return &Resolution{Action: action, Target: target}, nil
}

// ResolveTarget applies the target rules without looking at the action
func ResolveTarget(req model.Request, opts Options) (model.TargetSpec, error) {
	videoURL := strings.TrimSpace(req.VideoURL)
	playlistURL := strings.TrimSpace(req.PlaylistURL)
	channel := strings.TrimSpace(req.Channel)
	query := strings.TrimSpace(req.Query)

	switch {
	case videoURL != "":
		videoID, err := ExtractVideoID(videoURL)
		if err != nil {
			return model.TargetSpec{}, err
		}
		return model.TargetSpec{Kind: model.TargetVideo, VideoID: videoID, Limit: 1}, nil

	case playlistURL != "":
		return model.TargetSpec{}, errors.New(errors.CodeUnsupportedTarget, "playlists are not supported")

	case channel != "":
		limit := req.Limit
		if query != "" {
			if parsed := ParseQuery(query, limit); parsed.LimitFound {
				limit = parsed.Limit
			}
		}
		return model.TargetSpec{
			Kind:        model.TargetChannel,
			ChannelName: strings.TrimPrefix(channel, "@"),
			Limit:       opts.clamp(limit),
		}, nil

	case query != "":
		parsed := ParseQuery(query, req.Limit)
		if parsed.ChannelName == "" {
			return model.TargetSpec{}, errors.Newf(errors.CodeMissingTarget, "no channel could be read from query %q", query)
		}
		return model.TargetSpec{
			Kind:        model.TargetChannel,
			ChannelName: parsed.ChannelName,
			Limit:       opts.clamp(parsed.Limit),
		}, nil

	default:
		return model.TargetSpec{}, errors.New(errors.CodeMissingTarget, "one of query, channel, video_url or playlist_url is required")
	}
}

// clamp maps non-positive limits to the default and caps at MaxLimit
func (o Options) clamp(limit int) int {
	if limit <= 0 {
		limit = o.DefaultLimit
	}
	if o.MaxLimit > 0 && limit > o.MaxLimit {
		limit = o.MaxLimit
	}
	return limit
}
