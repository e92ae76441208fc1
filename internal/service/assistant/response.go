package assistant

import (
	"fmt"
	"strings"

	"github.com/Taichi-iskw/yt-brief/internal/model"
)

// BuildListResponse enumerates titles in one spoken sentence:
// "The latest 3 videos are: A. B. C."
func BuildListResponse(videos []model.VideoSummary) *model.Response {
	return model.NewListResponse(listSentence(videos), videos)
}

// BuildSummaryResponse wraps a SummaryResult; fallback is set only for titles-only
func BuildSummaryResponse(result *model.SummaryResult) *model.Response {
	var fallback *string
	if result.Tier == model.TierTitlesOnly {
		sentinel := model.TitlesOnlySentinel
		fallback = &sentinel
	}
	return model.NewSummaryResponse(result.SpokenText, result.Videos, fallback)
}

func listSentence(videos []model.VideoSummary) string {
	titles := make([]string, 0, len(videos))
	for _, v := range videos {
		titles = append(titles, sentence(v.Title))
	}

	switch len(titles) {
	case 0:
		return "There are no recent videos."
	case 1:
		return "The latest video is: " + titles[0]
	default:
		return fmt.Sprintf("The latest %d videos are: %s", len(titles), strings.Join(titles, " "))
	}
}

// sentence terminates a title with a period unless it already ends a sentence
func sentence(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Untitled."
	}
	if strings.HasSuffix(title, ".") || strings.HasSuffix(title, "!") || strings.HasSuffix(title, "?") {
		return title
	}
	return title + "."
}
