package assistant

import (
	"context"
	"fmt"

	"github.com/Taichi-iskw/yt-brief/internal/config"
	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
	assistantSvc "github.com/Taichi-iskw/yt-brief/internal/service/assistant"
	"github.com/Taichi-iskw/yt-brief/internal/service/common"
	"github.com/Taichi-iskw/yt-brief/internal/service/generation"
	"github.com/Taichi-iskw/yt-brief/internal/service/summary"
	"github.com/Taichi-iskw/yt-brief/internal/service/transcript"
	"github.com/Taichi-iskw/yt-brief/internal/service/youtube"
)

// ServiceFunc builds the assistant service on demand
type ServiceFunc func(ctx context.Context) (assistantSvc.Service, error)

// LookupFunc builds a channel lookup on demand
type LookupFunc func(ctx context.Context) (youtube.ChannelLookup, error)

// ServiceFactory creates service instances from the loaded configuration
type ServiceFactory struct {
	cfg *config.Config
}

// NewServiceFactory creates a new service factory
func NewServiceFactory(cfg *config.Config) *ServiceFactory {
	return &ServiceFactory{cfg: cfg}
}

// CreateLookup creates the configured channel lookup backend
func (f *ServiceFactory) CreateLookup(ctx context.Context) (youtube.ChannelLookup, error) {
	if err := f.cfg.ValidateWithoutGeneration(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return youtube.NewChannelLookup(ctx, f.cfg, common.NewCmdRunner())
}

// CreateService creates the assistant service with all dependencies.
// Without an LLM key the service still lists and fetches transcripts;
// summarize then fails with the configuration error.
func (f *ServiceFactory) CreateService(ctx context.Context) (assistantSvc.Service, error) {
	lookup, err := f.CreateLookup(ctx)
	if err != nil {
		return nil, err
	}

	provider := transcript.NewProvider(f.cfg)

	var summarizer assistantSvc.Summarizer
	if err := f.cfg.Validate(); err != nil {
		summarizer = unconfiguredSummarizer{err: err}
	} else {
		generator, err := generation.NewGenerator(f.cfg)
		if err != nil {
			return nil, err
		}
		summarizer = summary.NewPipeline(provider, generator, summary.OptionsFromConfig(f.cfg))
	}

	return assistantSvc.NewService(lookup, provider, summarizer, assistantSvc.OptionsFromConfig(f.cfg)), nil
}

// unconfiguredSummarizer reports the missing LLM configuration on use
type unconfiguredSummarizer struct {
	err error
}

func (s unconfiguredSummarizer) Run(ctx context.Context, videos []model.VideoSummary) (*model.SummaryResult, error) {
	return nil, errors.Wrap(s.err, errors.CodeInternal, "summaries need a configured llm provider")
}
