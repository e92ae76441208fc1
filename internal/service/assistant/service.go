package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Taichi-iskw/yt-brief/internal/config"
	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
	"github.com/Taichi-iskw/yt-brief/internal/service/resolver"
	"github.com/Taichi-iskw/yt-brief/internal/service/transcript"
	"github.com/Taichi-iskw/yt-brief/internal/service/youtube"
)

// Service answers list and summarize requests
type Service interface {
	// Handle resolves the request target and builds the spoken response
	Handle(ctx context.Context, req model.Request) (*model.Response, error)
	// Transcript returns the cleaned transcript of a single video
	Transcript(ctx context.Context, videoID string) (*model.Transcript, error)
}

// Summarizer produces a spoken summary for resolved videos
type Summarizer interface {
	Run(ctx context.Context, videos []model.VideoSummary) (*model.SummaryResult, error)
}

// Options holds per-request limits
type Options struct {
	Resolver          resolver.Options
	LookupTimeout     time.Duration
	TranscriptTimeout time.Duration
}

// OptionsFromConfig extracts service options from the process configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Resolver: resolver.Options{
			DefaultLimit: cfg.DefaultLimit,
			MaxLimit:     cfg.MaxLimit,
		},
		LookupTimeout:     cfg.LookupTimeout,
		TranscriptTimeout: cfg.TranscriptTimeout,
	}
}

// service implements Service
type service struct {
	lookup      youtube.ChannelLookup
	transcripts transcript.Provider
	summarizer  Summarizer
	opts        Options
}

// NewService creates a new Service
func NewService(lookup youtube.ChannelLookup, transcripts transcript.Provider, summarizer Summarizer, opts Options) Service {
	defaults := OptionsFromConfig(config.Default())
	if opts.Resolver.DefaultLimit <= 0 {
		opts.Resolver = defaults.Resolver
	}
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = defaults.LookupTimeout
	}
	if opts.TranscriptTimeout <= 0 {
		opts.TranscriptTimeout = defaults.TranscriptTimeout
	}
	return &service{
		lookup:      lookup,
		transcripts: transcripts,
		summarizer:  summarizer,
		opts:        opts,
	}
}

func (s *service) Handle(ctx context.Context, req model.Request) (*model.Response, error) {
	resolution, err := resolver.Resolve(req, s.opts.Resolver)
	if err != nil {
		return nil, err
	}

	target, err := s.resolveTarget(ctx, resolution.Target)
	if err != nil {
		return nil, err
	}

	logger := log.With().
		Str("action", string(resolution.Action)).
		Str("target", target.Source.String()).
		Int("videos", len(target.Videos)).
		Logger()

	switch resolution.Action {
	case model.ActionList:
		logger.Info().Msg("listing videos")
		return BuildListResponse(target.Videos), nil

	case model.ActionSummarize:
		result, err := s.summarizer.Run(ctx, target.Videos)
		if err != nil {
			logger.Error().Err(err).Msg("summary failed")
			return nil, err
		}
		logger.Info().Str("tier", result.Tier.String()).Int("covered", result.Covered).Msg("summary generated")
		return BuildSummaryResponse(result), nil

	default:
		return nil, errors.Newf(errors.CodeUnknownAction, "unknown action %q", resolution.Action)
	}
}

// resolveTarget turns a TargetSpec into the ordered videos it refers to
func (s *service) resolveTarget(ctx context.Context, spec model.TargetSpec) (*model.ResolvedTarget, error) {
	switch spec.Kind {
	case model.TargetVideo:
		return &model.ResolvedTarget{
			Videos: []model.VideoSummary{{VideoID: spec.VideoID, Title: resolver.ProvidedVideoTitle}},
			Source: model.TargetVideo,
		}, nil

	case model.TargetChannel:
		lookupCtx, cancel := context.WithTimeout(ctx, s.opts.LookupTimeout)
		defer cancel()

		channel, err := s.lookup.FindChannel(lookupCtx, spec.ChannelName)
		if err != nil {
			log.Warn().Err(err).Str("channel", spec.ChannelName).Msg("channel lookup failed")
			return nil, err
		}

		videos, err := s.lookup.RecentVideos(lookupCtx, channel.ID, spec.Limit)
		if err != nil {
			log.Warn().Err(err).Str("channel_id", channel.ID).Msg("video listing failed")
			return nil, err
		}
		if len(videos) == 0 {
			return nil, errors.Newf(errors.CodeNoVideosFound, "channel %q has no videos", channel.Name)
		}

		return &model.ResolvedTarget{
			Videos:  videos,
			Source:  model.TargetChannel,
			Channel: channel,
		}, nil

	default:
		return nil, errors.New(errors.CodeMissingTarget, "request has no target")
	}
}

func (s *service) Transcript(ctx context.Context, videoID string) (*model.Transcript, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, errors.New(errors.CodeInvalidArg, "videoId is required")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.TranscriptTimeout)
	defer cancel()

	t, err := s.transcripts.Fetch(fetchCtx, videoID)
	if err != nil {
		switch errors.CodeOf(err) {
		case errors.CodeInvalidArg, errors.CodeTranscriptUnavailable:
			return nil, err
		default:
			// every other provider failure reads as unavailable to callers
			return nil, errors.Wrap(err, errors.CodeTranscriptUnavailable, "transcript unavailable for video "+videoID)
		}
	}
	return t, nil
}
