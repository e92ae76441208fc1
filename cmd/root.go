package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	assistantCmd "github.com/Taichi-iskw/yt-brief/cmd/assistant"
	"github.com/Taichi-iskw/yt-brief/internal/config"
	"github.com/Taichi-iskw/yt-brief/internal/logger"
	assistantSvc "github.com/Taichi-iskw/yt-brief/internal/service/assistant"
)

// version is set at build time with -ldflags "-X .../cmd.version=..."
var version = "dev"

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ytbrief",
	Short: "Spoken-friendly YouTube channel listings and summaries",
	Long: `ytbrief answers questions like "summarize the last 3 videos from @veritasium"
with one sentence a voice assistant can read out. It serves the same
operations over HTTP (serve), MCP (mcp) and the command line.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		// serve logs JSON lines; interactive commands get the console writer
		return logger.Setup(level, cmd.Name() != "serve")
	},
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves the process configuration and applies its log level
// unless --log-level was given
func loadConfig(pretty bool) (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if flag := rootCmd.PersistentFlags().Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel = flag.Value.String()
		return cfg, nil
	}
	if err := logger.Setup(cfg.LogLevel, pretty); err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}
	return cfg, nil
}

// createService builds the assistant service for one CLI invocation.
// Configuration is loaded lazily so --help works without it.
func createService(ctx context.Context) (assistantSvc.Service, error) {
	cfg, err := loadConfig(true)
	if err != nil {
		return nil, err
	}
	return assistantCmd.NewServiceFactory(cfg).CreateService(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(assistantCmd.NewListCommand(createService))
	rootCmd.AddCommand(assistantCmd.NewSummarizeCommand(createService))
	rootCmd.AddCommand(assistantCmd.NewTranscriptCommand(createService))
}
