package model

// Channel represents YouTube channel information
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// VideoSummary is the caller-visible reference to a video
type VideoSummary struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
}

// TranscriptSource tells which caption track a transcript came from
type TranscriptSource string

const (
	TranscriptSourceManual TranscriptSource = "manual" // human-authored subtitles
	TranscriptSourceAuto   TranscriptSource = "auto"   // machine-generated captions
)

// Transcript is the cleaned text of one video's captions
type Transcript struct {
	VideoID  string           `json:"videoId"`
	Text     string           `json:"transcript"`
	Language string           `json:"language,omitempty"`
	Source   TranscriptSource `json:"source,omitempty"`
}

// TranscriptResult records the outcome of one fetch inside a request
type TranscriptResult struct {
	VideoID   string
	Text      string
	Available bool
}

// FallbackTier is the content basis of a summary
type FallbackTier int

const (
	TierFullTranscripts FallbackTier = iota
	TierTitlesOnly
)

// TitlesOnlySentinel is the fallback value returned for TierTitlesOnly
const TitlesOnlySentinel = "titles_only"

func (t FallbackTier) String() string {
	switch t {
	case TierFullTranscripts:
		return "full_transcripts"
	case TierTitlesOnly:
		return TitlesOnlySentinel
	default:
		return "unknown"
	}
}

// SummaryResult is produced by the summary pipeline
type SummaryResult struct {
	SpokenText string
	Videos     []VideoSummary
	Tier       FallbackTier
	// Covered counts the videos whose transcripts made it into the prompt.
	Covered int
}
