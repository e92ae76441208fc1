package summary

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Taichi-iskw/yt-brief/internal/config"
	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
	"github.com/Taichi-iskw/yt-brief/internal/service/generation"
	"github.com/Taichi-iskw/yt-brief/internal/service/textclean"
	"github.com/Taichi-iskw/yt-brief/internal/service/transcript"
)

// Options bounds the pipeline's external calls
type Options struct {
	TranscriptTimeout  time.Duration
	GenerationTimeout  time.Duration
	MaxTranscriptChars int
}

// OptionsFromConfig extracts pipeline options from the process configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TranscriptTimeout:  cfg.TranscriptTimeout,
		GenerationTimeout:  cfg.GenerationTimeout,
		MaxTranscriptChars: cfg.MaxTranscriptChars,
	}
}

// Pipeline collects transcripts, picks a tier and generates a spoken summary
type Pipeline struct {
	transcripts transcript.Provider
	generator   generation.Generator
	opts        Options
}

// NewPipeline creates a Pipeline
func NewPipeline(transcripts transcript.Provider, generator generation.Generator, opts Options) *Pipeline {
	defaults := OptionsFromConfig(config.Default())
	if opts.TranscriptTimeout <= 0 {
		opts.TranscriptTimeout = defaults.TranscriptTimeout
	}
	if opts.GenerationTimeout <= 0 {
		opts.GenerationTimeout = defaults.GenerationTimeout
	}
	if opts.MaxTranscriptChars <= 0 {
		opts.MaxTranscriptChars = defaults.MaxTranscriptChars
	}
	return &Pipeline{
		transcripts: transcripts,
		generator:   generator,
		opts:        opts,
	}
}

// Run summarizes videos. Missing transcripts degrade the prompt; only a
// failed generation call is returned as an error.
func (p *Pipeline) Run(ctx context.Context, videos []model.VideoSummary) (*model.SummaryResult, error) {
	if len(videos) == 0 {
		return nil, errors.New(errors.CodeNoVideosFound, "no videos to summarize")
	}

	results := p.collect(ctx, videos)

	available := make([]model.TranscriptResult, 0, len(results))
	for _, r := range results {
		if r.Available {
			available = append(available, r)
		}
	}

	tier := model.TierFullTranscripts
	if len(available) == 0 {
		tier = model.TierTitlesOnly
	}

	log.Info().
		Int("videos", len(videos)).
		Int("transcripts", len(available)).
		Str("tier", tier.String()).
		Msg("summary tier selected")

	prompt := BuildPrompt(tier, videos, available, p.opts.MaxTranscriptChars)

	genCtx, cancel := context.WithTimeout(ctx, p.opts.GenerationTimeout)
	defer cancel()

	text, err := p.generator.Generate(genCtx, prompt)
	if err != nil {
		return nil, err
	}

	return &model.SummaryResult{
		SpokenText: text,
		Videos:     videos,
		Tier:       tier,
		Covered:    len(available),
	}, nil
}

// collect fetches every transcript concurrently. Results keep the order of
// videos; a failed fetch is recorded as unavailable.
func (p *Pipeline) collect(ctx context.Context, videos []model.VideoSummary) []model.TranscriptResult {
	results := make([]model.TranscriptResult, len(videos))

	var g errgroup.Group
	g.SetLimit(len(videos))

	for i, video := range videos {
		g.Go(func() error {
			results[i] = model.TranscriptResult{VideoID: video.VideoID}

			fetchCtx, cancel := context.WithTimeout(ctx, p.opts.TranscriptTimeout)
			defer cancel()

			t, err := p.transcripts.Fetch(fetchCtx, video.VideoID)
			if err != nil {
				log.Debug().Err(err).Str("video_id", video.VideoID).Msg("skipping video without transcript")
				return nil
			}

			text := textclean.Clean(t.Text)
			results[i].Text = text
			results[i].Available = text != ""
			return nil
		})
	}

	// fetch errors are recorded per video, never returned
	_ = g.Wait()
	return results
}
