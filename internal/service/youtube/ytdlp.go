package youtube

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/service/common"
)

// channelSearchFilter restricts a YouTube results page to channels
const channelSearchFilter = "EgIQAg%3D%3D"

// ytDlpEntry is one item of a --flat-playlist listing
type ytDlpEntry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Channel   string `json:"channel"`
	ChannelID string `json:"channel_id"`
	Uploader  string `json:"uploader"`
	IEKey     string `json:"ie_key"`
	Timestamp int64  `json:"timestamp"`
}

// ytDlpPlaylist is the --dump-single-json output for a tab or results page
type ytDlpPlaylist struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Channel    string       `json:"channel"`
	ChannelID  string       `json:"channel_id"`
	ChannelURL string       `json:"channel_url"`
	Entries    []ytDlpEntry `json:"entries"`
}

// YtDlpLookup implements ChannelLookup by scraping YouTube pages with yt-dlp
type YtDlpLookup struct {
	cmdRunner common.CmdRunner
	binary    string
}

// NewYtDlpLookup creates a yt-dlp backed lookup. An empty binary means "yt-dlp" on PATH.
func NewYtDlpLookup(cmdRunner common.CmdRunner, binary string) *YtDlpLookup {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &YtDlpLookup{cmdRunner: cmdRunner, binary: binary}
}

// dumpPlaylist runs yt-dlp against a listing URL and returns at most end entries
func (l *YtDlpLookup) dumpPlaylist(ctx context.Context, url string, end int) (*ytDlpPlaylist, error) {
	args := []string{
		"--dump-single-json",
		"--flat-playlist",
		"--playlist-end", strconv.Itoa(end),
		url,
	}

	output, err := l.cmdRunner.Run(ctx, l.binary, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "yt-dlp lookup failed")
	}

	var playlist ytDlpPlaylist
	if err := json.Unmarshal(output, &playlist); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to parse yt-dlp output")
	}
	return &playlist, nil
}
