package summary

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Taichi-iskw/yt-brief/internal/model"
)

const singleVideoTemplate = `Summarize the following video for a listener in a few short spoken sentences.
Be concise and only use what is said in the video.

Title: %s

%s`

const multiVideoTemplate = `Summarize the following %d videos together for a listener in a few short spoken sentences.
Start with the themes they have in common, then mention anything notable in a single video.

Titles:
%s

%s`

// titlesOnlyTemplate must not mention the missing material
const titlesOnlyTemplate = `Here are the titles of %d recent videos.
Infer the main topics they likely cover from the titles alone and describe them for a listener in a few short spoken sentences.
The titles are the whole context here, so describing their likely topics is expected.
Do not speculate beyond what the titles suggest.

Titles:
%s`

// BuildPrompt renders the instruction for a tier. transcripts holds only the
// successful fetches; their joined text is cut to maxChars runes.
func BuildPrompt(tier model.FallbackTier, videos []model.VideoSummary, transcripts []model.TranscriptResult, maxChars int) string {
	if tier == model.TierTitlesOnly || len(transcripts) == 0 {
		return fmt.Sprintf(titlesOnlyTemplate, len(videos), numberedTitles(videos))
	}

	titles := make(map[string]string, len(videos))
	for _, v := range videos {
		titles[v.VideoID] = v.Title
	}

	if len(transcripts) == 1 {
		body := truncateRunes("Transcript:\n"+transcripts[0].Text, maxChars)
		return fmt.Sprintf(singleVideoTemplate, titles[transcripts[0].VideoID], body)
	}

	covered := make([]model.VideoSummary, 0, len(transcripts))
	sections := make([]string, 0, len(transcripts))
	for _, t := range transcripts {
		title := titles[t.VideoID]
		covered = append(covered, model.VideoSummary{VideoID: t.VideoID, Title: title})
		sections = append(sections, fmt.Sprintf("Transcript of %q:\n%s", title, t.Text))
	}
	body := truncateRunes(strings.Join(sections, "\n\n"), maxChars)
	return fmt.Sprintf(multiVideoTemplate, len(transcripts), numberedTitles(covered), body)
}

func numberedTitles(videos []model.VideoSummary) string {
	lines := make([]string, 0, len(videos))
	for i, v := range videos {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, v.Title))
	}
	return strings.Join(lines, "\n")
}

// truncateRunes keeps at most max runes of s
func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
