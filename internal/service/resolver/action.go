package resolver

import (
	"strings"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
)

// actionSynonyms maps lower-cased caller vocabulary onto the two actions
var actionSynonyms = map[string]model.Action{
	"list":        model.ActionList,
	"titles":      model.ActionList,
	"latest":      model.ActionList,
	"recent":      model.ActionList,
	"videos":      model.ActionList,
	"list_videos": model.ActionList,
	"show":        model.ActionList,

	"summarize":        model.ActionSummarize,
	"summarise":        model.ActionSummarize,
	"summary":          model.ActionSummarize,
	"recap":            model.ActionSummarize,
	"digest":           model.ActionSummarize,
	"brief":            model.ActionSummarize,
	"summarize_videos": model.ActionSummarize,
}

// NormalizeAction maps a caller-supplied action string to a canonical action
func NormalizeAction(action string) (model.Action, error) {
	if canonical, ok := actionSynonyms[strings.ToLower(strings.TrimSpace(action))]; ok {
		return canonical, nil
	}
	return "", errors.Newf(errors.CodeUnknownAction, "unknown action %q", action)
}
