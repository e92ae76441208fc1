package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Taichi-iskw/yt-brief/internal/config"
)

// newConfigCommand groups the commands that inspect ~/.yt-brief/config.yaml
func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the ytbrief settings file",
		Long: `ytbrief reads ~/.yt-brief/config.yaml; environment variables such as
YOUTUBE_API_KEY and OPENAI_API_KEY take precedence over it.`,
	}

	cmd.AddCommand(newConfigInitCommand(), newConfigShowCommand(), newConfigPathCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [YOUTUBE_API_KEY]",
		Short: "Write a commented settings template",
		Long: `Write ~/.yt-brief/config.yaml with every setting at its default.
Passing a YouTube Data API key selects the API channel backend; without
one channels are resolved through yt-dlp. An existing file is never
overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey := ""
			if len(args) == 1 {
				apiKey = args[0]
			}

			if err := config.InitConfig(apiKey); err != nil {
				return err
			}
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created configuration file: %s\n", path)
			fmt.Fprintln(out, "Add openai_api_key or gemini_api_key to it before running summarize.")
			return nil
		},
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings with keys masked",
		Long: `Print the settings ytbrief would run with after merging defaults, the
settings file and the environment. API keys show only their last four
characters. Problems that would stop serve or summarize are reported as
a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}

			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			rendered, err := yaml.Marshal(cfg.Redacted())
			if err != nil {
				return fmt.Errorf("failed to format configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration file: %s\n\n%s", path, rendered)
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(out, "\nWarning: %v\n", err)
			}
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the settings file is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newConfigCommand())
}
