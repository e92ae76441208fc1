package resolver

import (
	"regexp"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
)

// the two recognized shapes: ...?v=<id> (also &v=) and ...youtu.be/<id>
var videoIDPattern = regexp.MustCompile(`(?:[?&]v=|youtu\.be/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID returns the 11-character video id embedded in a URL
func ExtractVideoID(videoURL string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(videoURL)
	if m == nil {
		return "", errors.Newf(errors.CodeInvalidReference, "no video id found in %q", videoURL)
	}
	return m[1], nil
}
