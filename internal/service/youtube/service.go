package youtube

import (
	"context"
	"regexp"

	"github.com/Taichi-iskw/yt-brief/internal/config"
	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
	"github.com/Taichi-iskw/yt-brief/internal/service/common"
)

// ChannelLookup resolves channel names and lists their recent uploads
type ChannelLookup interface {
	// FindChannel returns the best match for name, or CHANNEL_NOT_FOUND
	FindChannel(ctx context.Context, name string) (*model.Channel, error)
	// RecentVideos returns up to limit videos, newest first, or NO_VIDEOS_FOUND
	RecentVideos(ctx context.Context, channelID string, limit int) ([]model.VideoSummary, error)
}

var handlePattern = regexp.MustCompile(`^@?[A-Za-z0-9_.-]+$`)

// looksLikeHandle reports whether name could be used as /@name directly
func looksLikeHandle(name string) bool {
	return handlePattern.MatchString(name)
}

// NewChannelLookup selects the backend named by cfg.ChannelBackend
func NewChannelLookup(ctx context.Context, cfg *config.Config, cmdRunner common.CmdRunner) (ChannelLookup, error) {
	switch cfg.ChannelBackend {
	case config.ChannelBackendAPI:
		return NewAPILookup(ctx, cfg.YouTubeAPIKey)
	case config.ChannelBackendYtDlp:
		return NewYtDlpLookup(cmdRunner, cfg.YtDlpPath), nil
	default:
		return nil, errors.Newf(errors.CodeInvalidArg, "unknown channel backend %q", cfg.ChannelBackend)
	}
}
