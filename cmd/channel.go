package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	assistantCmd "github.com/Taichi-iskw/yt-brief/cmd/assistant"
	"github.com/Taichi-iskw/yt-brief/internal/service/youtube"
)

// newChannelCommand creates the channel command group backed by a ChannelLookup
func newChannelCommand(getLookup assistantCmd.LookupFunc) *cobra.Command {
	channelCmd := &cobra.Command{
		Use:   "channel",
		Short: "YouTube channel operations",
		Long:  `Resolve channel names and list recent uploads with the configured backend.`,
	}

	// channelInfoCmd resolves a channel name
	channelInfoCmd := &cobra.Command{
		Use:   "info [NAME]",
		Short: "Resolve a channel name or @handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			lookup, err := getLookup(ctx)
			if err != nil {
				return err
			}

			channel, err := lookup.FindChannel(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to find channel: %w", err)
			}

			return printJSON(cmd, channel)
		},
	}

	// channelVideosCmd lists recent uploads of a channel
	channelVideosCmd := &cobra.Command{
		Use:   "videos [NAME]",
		Short: "List the most recent videos of a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			lookup, err := getLookup(ctx)
			if err != nil {
				return err
			}

			limit, _ := cmd.Flags().GetInt("limit")

			channel, err := lookup.FindChannel(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to find channel: %w", err)
			}

			videos, err := lookup.RecentVideos(ctx, channel.ID, limit)
			if err != nil {
				return fmt.Errorf("failed to fetch videos: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Found %d video(s) for %s:\n", len(videos), channel.Name)
			return printJSON(cmd, videos)
		},
	}
	channelVideosCmd.Flags().Int("limit", 3, "Maximum number of videos to retrieve")

	channelCmd.AddCommand(channelInfoCmd)
	channelCmd.AddCommand(channelVideosCmd)
	return channelCmd
}

// createLookup builds the configured ChannelLookup for one CLI invocation
func createLookup(ctx context.Context) (youtube.ChannelLookup, error) {
	cfg, err := loadConfig(true)
	if err != nil {
		return nil, err
	}
	return assistantCmd.NewServiceFactory(cfg).CreateLookup(ctx)
}

func printJSON(cmd *cobra.Command, v any) error {
	result, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(result))
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.AddCommand(newChannelCommand(createLookup))
}
