package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Taichi-iskw/yt-brief/internal/model"
)

// Formatter defines interface for output formatting
type Formatter interface {
	Format(resp *model.Response) (string, error)
	FormatTranscript(t *model.Transcript) (string, error)
}

// TextFormatter formats output as plain text
type TextFormatter struct{}

// Format prints the spoken response followed by the video list
func (f *TextFormatter) Format(resp *model.Response) (string, error) {
	var output strings.Builder

	output.WriteString(resp.SpokenResponse)
	output.WriteString("\n")

	if resp.Fallback != nil {
		output.WriteString(fmt.Sprintf("(fallback: %s)\n", *resp.Fallback))
	}

	if len(resp.Videos) > 0 {
		output.WriteString("\nVideos:\n")
		output.WriteString("=======\n")
		for i, v := range resp.Videos {
			output.WriteString(fmt.Sprintf("[%d] %s\n    https://www.youtube.com/watch?v=%s\n", i+1, v.Title, v.VideoID))
		}
	}

	return output.String(), nil
}

// FormatTranscript prints the transcript text with a short header
func (f *TextFormatter) FormatTranscript(t *model.Transcript) (string, error) {
	var output strings.Builder

	output.WriteString(fmt.Sprintf("Video ID: %s\n", t.VideoID))
	if t.Language != "" {
		output.WriteString(fmt.Sprintf("Language: %s (%s)\n", t.Language, t.Source))
	}
	output.WriteString("\nTranscript:\n")
	output.WriteString("===========\n")
	output.WriteString(t.Text)
	output.WriteString("\n")

	return output.String(), nil
}

// JSONFormatter formats output as JSON
type JSONFormatter struct{}

// Format renders the same body the HTTP API returns
func (f *JSONFormatter) Format(resp *model.Response) (string, error) {
	return marshal(resp.Payload())
}

// FormatTranscript renders the transcript endpoint body
func (f *JSONFormatter) FormatTranscript(t *model.Transcript) (string, error) {
	return marshal(t)
}

func marshal(v any) (string, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(jsonBytes) + "\n", nil
}

// GetFormatter returns the appropriate formatter based on format string
func GetFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "text", "txt":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
