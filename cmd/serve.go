package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	assistantCmd "github.com/Taichi-iskw/yt-brief/cmd/assistant"
	"github.com/Taichi-iskw/yt-brief/internal/api"
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve POST /v1/assistant, /v1/list, /v1/summarize and the transcript
endpoints until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(false)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ListenAddr = addr
		}

		ctx := cmd.Context()
		svc, err := assistantCmd.NewServiceFactory(cfg).CreateService(ctx)
		if err != nil {
			return err
		}

		gin.SetMode(gin.ReleaseMode)
		server := api.NewServer(cfg.ListenAddr, api.NewRouter(svc), cfg)
		return server.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides listen_addr)")
	rootCmd.AddCommand(serveCmd)
}
