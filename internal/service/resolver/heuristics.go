package resolver

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	lastNPattern     = regexp.MustCompile(`(?i)\blast\s+(\d+)\b`)
	handlePattern    = regexp.MustCompile(`@([A-Za-z0-9_]+)`)
	channelPattern   = regexp.MustCompile(`(?i)([^\s@]+)\s+channel\b`)
	stopWordsPattern = regexp.MustCompile(`(?i)\b(?:youtube|videos|video|latest|summarize|summarise|from|the)\b`)
)

// ParsedQuery is the best-effort reading of a free-text request
type ParsedQuery struct {
	ChannelName string
	Limit       int
	// LimitFound is true when the text contained "last N".
	LimitFound bool
}

// ParseQuery extracts a channel name and a result limit from free text.
// Rules apply most-specific first: "@handle", then "<word> channel", then
// the text with stop words removed. The result may have an empty channel
// name; callers must reject that rather than look it up.
func ParseQuery(text string, defaultLimit int) ParsedQuery {
	parsed := ParsedQuery{Limit: defaultLimit}

	remainder := text
	if loc := lastNPattern.FindStringSubmatchIndex(text); loc != nil {
		if n, err := strconv.Atoi(text[loc[2]:loc[3]]); err == nil {
			parsed.Limit = n
			parsed.LimitFound = true
		}
		remainder = text[:loc[0]] + " " + text[loc[1]:]
	}

	if m := handlePattern.FindStringSubmatch(text); m != nil {
		parsed.ChannelName = m[1]
		return parsed
	}

	if m := channelPattern.FindStringSubmatch(text); m != nil {
		if name := strings.Trim(m[1], `"'.,;:!?()[]`); name != "" {
			parsed.ChannelName = name
			return parsed
		}
	}

	stripped := stopWordsPattern.ReplaceAllString(remainder, " ")
	parsed.ChannelName = strings.Join(strings.Fields(stripped), " ")
	return parsed
}
