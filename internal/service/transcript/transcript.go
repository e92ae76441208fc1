package transcript

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/Taichi-iskw/yt-brief/internal/config"
	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
	"github.com/Taichi-iskw/yt-brief/internal/service/common"
	"github.com/Taichi-iskw/yt-brief/internal/service/textclean"
)

// trackFormat is the caption format we download; it is plain JSON
const trackFormat = "json3"

// Provider defines operations for retrieving video transcripts
type Provider interface {
	// Fetch returns the cleaned transcript of a video in the preferred
	// language, or TRANSCRIPT_UNAVAILABLE
	Fetch(ctx context.Context, videoID string) (*model.Transcript, error)
}

// ytDlpProvider discovers caption tracks with yt-dlp and downloads them over HTTP
type ytDlpProvider struct {
	cmdRunner common.CmdRunner
	client    *resty.Client
	binary    string
	language  string
}

// NewProvider creates a Provider from the process configuration
func NewProvider(cfg *config.Config) Provider {
	client := resty.New().SetTimeout(cfg.TranscriptTimeout)
	return NewProviderWithDeps(common.NewCmdRunner(), client, cfg.YtDlpPath, cfg.TranscriptLanguage)
}

// NewProviderWithDeps creates a Provider with custom collaborators (for testing)
func NewProviderWithDeps(cmdRunner common.CmdRunner, client *resty.Client, binary, language string) Provider {
	if binary == "" {
		binary = "yt-dlp"
	}
	if language == "" {
		language = "en"
	}
	if client == nil {
		client = resty.New().SetTimeout(15 * time.Second)
	}
	return &ytDlpProvider{
		cmdRunner: cmdRunner,
		client:    client,
		binary:    binary,
		language:  language,
	}
}

// captionTrack is one downloadable rendition of a caption language
type captionTrack struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// videoInfo holds the subset of yt-dlp --dump-json we read
type videoInfo struct {
	ID                string                    `json:"id"`
	Subtitles         map[string][]captionTrack `json:"subtitles"`
	AutomaticCaptions map[string][]captionTrack `json:"automatic_captions"`
}

// json3Document is YouTube's timed-text JSON format
type json3Document struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// trackChoice is a selected caption track and where it came from
type trackChoice struct {
	Source   model.TranscriptSource
	Language string
	URL      string
}

func (p *ytDlpProvider) Fetch(ctx context.Context, videoID string) (*model.Transcript, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, errors.New(errors.CodeInvalidArg, "video ID is required")
	}

	log.Debug().Str("video_id", videoID).Str("language", p.language).Msg("fetching transcript")

	info, err := p.fetchInfo(ctx, videoID)
	if err != nil {
		return nil, unavailable(videoID, err)
	}

	choice, ok := chooseTrack(info, p.language)
	if !ok {
		return nil, errors.Newf(errors.CodeTranscriptUnavailable, "no %s transcript for video %s", p.language, videoID)
	}

	raw, err := p.download(ctx, choice.URL)
	if err != nil {
		return nil, unavailable(videoID, err)
	}

	text := textclean.Clean(raw)
	if text == "" {
		return nil, errors.Newf(errors.CodeTranscriptUnavailable, "transcript for video %s is empty", videoID)
	}

	log.Debug().
		Str("video_id", videoID).
		Str("source", string(choice.Source)).
		Int("chars", len(text)).
		Msg("transcript fetched")

	return &model.Transcript{
		VideoID:  videoID,
		Text:     text,
		Language: choice.Language,
		Source:   choice.Source,
	}, nil
}

// fetchInfo reads the caption track listing without downloading media
func (p *ytDlpProvider) fetchInfo(ctx context.Context, videoID string) (*videoInfo, error) {
	args := []string{
		"--dump-json",
		"--skip-download",
		"--no-warnings",
		"https://www.youtube.com/watch?v=" + videoID,
	}

	output, err := p.cmdRunner.Run(ctx, p.binary, args...)
	if err != nil {
		return nil, err
	}

	var info videoInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to parse yt-dlp output")
	}
	return &info, nil
}

// download fetches a json3 track and joins its segments
func (p *ytDlpProvider) download(ctx context.Context, url string) (string, error) {
	resp, err := p.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, "caption download failed")
	}
	if resp.IsError() {
		return "", errors.Newf(errors.CodeExternal, "caption download returned %s", resp.Status())
	}

	var doc json3Document
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, "failed to parse caption track")
	}

	parts := make([]string, 0, len(doc.Events))
	for _, event := range doc.Events {
		var sb strings.Builder
		for _, seg := range event.Segs {
			sb.WriteString(seg.UTF8)
		}
		if s := sb.String(); strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " "), nil
}

// chooseTrack walks the ordered preference list, human subtitles first,
// and returns the first json3 track in the preferred language
func chooseTrack(info *videoInfo, language string) (trackChoice, bool) {
	preferences := []struct {
		source model.TranscriptSource
		tracks map[string][]captionTrack
	}{
		{model.TranscriptSourceManual, info.Subtitles},
		{model.TranscriptSourceAuto, info.AutomaticCaptions},
	}

	for _, pref := range preferences {
		for _, lang := range languageKeys(pref.tracks, language) {
			for _, track := range pref.tracks[lang] {
				if track.Ext == trackFormat && track.URL != "" {
					return trackChoice{Source: pref.source, Language: lang, URL: track.URL}, true
				}
			}
		}
	}
	return trackChoice{}, false
}

// languageKeys returns the exact language key followed by its regional
// variants (en-US, en-GB, ...) in sorted order
func languageKeys(tracks map[string][]captionTrack, language string) []string {
	var keys []string
	if _, ok := tracks[language]; ok {
		keys = append(keys, language)
	}

	var variants []string
	prefix := language + "-"
	for key := range tracks {
		if strings.HasPrefix(key, prefix) {
			variants = append(variants, key)
		}
	}
	sort.Strings(variants)

	return append(keys, variants...)
}

func unavailable(videoID string, err error) error {
	log.Warn().Err(err).Str("video_id", videoID).Msg("transcript unavailable")
	return errors.Wrap(err, errors.CodeTranscriptUnavailable, "transcript unavailable for video "+videoID)
}
