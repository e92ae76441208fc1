package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/yt-brief/internal/model"
)

// NewListCommand creates the list command
func NewListCommand(getService ServiceFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [QUERY]",
		Short: "List the latest videos of a channel",
		Long: `List the latest video titles of a channel as one spoken sentence.

The target comes from --video-url, --channel or free text, e.g.
  ytbrief list "last 5 videos from @veritasium"
  ytbrief list --channel "Marques Brownlee" --limit 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, args, model.ActionList, getService)
		},
	}

	addTargetFlags(cmd)
	return cmd
}

// NewSummarizeCommand creates the summarize command
func NewSummarizeCommand(getService ServiceFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [QUERY]",
		Short: "Summarize recent videos of a channel or a single video",
		Long: `Summarize videos in a few spoken sentences built from their transcripts.
When no transcript is available the summary is inferred from titles only.

Examples:
  ytbrief summarize --video-url https://youtu.be/dQw4w9WgXcQ
  ytbrief summarize "latest from the veritasium channel"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, args, model.ActionSummarize, getService)
		},
	}

	addTargetFlags(cmd)
	return cmd
}

// NewTranscriptCommand creates the transcript command
func NewTranscriptCommand(getService ServiceFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript [VIDEO_ID]",
		Short: "Print the cleaned transcript of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			formatter, err := GetFormatter(format)
			if err != nil {
				return err
			}

			svc, err := getService(commandContext(cmd))
			if err != nil {
				return err
			}

			t, err := svc.Transcript(commandContext(cmd), args[0])
			if err != nil {
				return err
			}

			out, err := formatter.FormatTranscript(t)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().String("format", "text", "Output format (text, json)")
	return cmd
}

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("channel", "", "Channel name or @handle")
	cmd.Flags().String("video-url", "", "URL of a single video")
	cmd.Flags().String("playlist-url", "", "Playlist URL (not supported)")
	cmd.Flags().Int("limit", 0, "Number of recent videos (default from config)")
	cmd.Flags().String("format", "text", "Output format (text, json)")
}

func runRequest(cmd *cobra.Command, args []string, action model.Action, getService ServiceFunc) error {
	format, _ := cmd.Flags().GetString("format")
	formatter, err := GetFormatter(format)
	if err != nil {
		return err
	}

	req := requestFromFlags(cmd, args, action)

	svc, err := getService(commandContext(cmd))
	if err != nil {
		return err
	}

	resp, err := svc.Handle(commandContext(cmd), req)
	if err != nil {
		return err
	}

	out, err := formatter.Format(resp)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func requestFromFlags(cmd *cobra.Command, args []string, action model.Action) model.Request {
	channel, _ := cmd.Flags().GetString("channel")
	videoURL, _ := cmd.Flags().GetString("video-url")
	playlistURL, _ := cmd.Flags().GetString("playlist-url")
	limit, _ := cmd.Flags().GetInt("limit")

	return model.Request{
		Action:      string(action),
		Query:       strings.Join(args, " "),
		Channel:     channel,
		VideoURL:    videoURL,
		PlaylistURL: playlistURL,
		Limit:       limit,
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
