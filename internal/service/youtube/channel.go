package youtube

import (
	"context"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
)

// FindChannel resolves a channel name using yt-dlp. Handle-shaped names are
// tried as /@name first, then the channel search results page is used.
func (l *YtDlpLookup) FindChannel(ctx context.Context, name string) (*model.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New(errors.CodeInvalidArg, "channel name is required")
	}

	if looksLikeHandle(name) {
		handle := strings.TrimPrefix(name, "@")
		playlist, err := l.dumpPlaylist(ctx, "https://www.youtube.com/@"+handle+"/videos", 1)
		if err == nil {
			if id := channelIDOf(playlist.ChannelID, playlist.ID); id != "" {
				return &model.Channel{
					ID:   id,
					Name: firstNonEmpty(playlist.Channel, playlist.Title, handle),
					URL:  "https://www.youtube.com/channel/" + id,
				}, nil
			}
		}
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), errors.CodeExternal, "channel lookup cancelled")
		}
		log.Debug().Err(err).Str("handle", handle).Msg("handle lookup missed, falling back to search")
	}

	searchURL := "https://www.youtube.com/results?search_query=" + url.QueryEscape(name) + "&sp=" + channelSearchFilter
	playlist, err := l.dumpPlaylist(ctx, searchURL, 1)
	if err != nil {
		return nil, err
	}

	for _, entry := range playlist.Entries {
		id := channelIDOf(entry.ChannelID, entry.ID)
		if id == "" {
			continue
		}
		return &model.Channel{
			ID:   id,
			Name: firstNonEmpty(entry.Channel, entry.Title, entry.Uploader, name),
			URL:  "https://www.youtube.com/channel/" + id,
		}, nil
	}

	return nil, errors.Newf(errors.CodeChannelNotFound, "no channel matches %q", name)
}

// channelIDOf returns the first candidate that is a UC... channel ID
func channelIDOf(candidates ...string) string {
	for _, c := range candidates {
		if strings.HasPrefix(c, "UC") {
			return c
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
