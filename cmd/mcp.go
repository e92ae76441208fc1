package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	assistantCmd "github.com/Taichi-iskw/yt-brief/cmd/assistant"
	"github.com/Taichi-iskw/yt-brief/internal/mcptool"
)

// mcpCmd serves the MCP tools over stdio
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP tools over stdio",
	Long: `Expose youtube_list_videos, youtube_summarize and youtube_transcript to
an MCP client over stdin/stdout. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx := cmd.Context()
		svc, err := assistantCmd.NewServiceFactory(cfg).CreateService(ctx)
		if err != nil {
			return err
		}

		return mcptool.Run(ctx, mcptool.NewServer(svc, version))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
