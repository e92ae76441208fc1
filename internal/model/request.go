package model

import "encoding/json"

// Action is the canonical operation requested by a caller
type Action string

const (
	ActionList      Action = "list"
	ActionSummarize Action = "summarize"
)

// Request is the inbound payload shared by the HTTP, MCP and CLI surfaces.
// Precedence when several targets are set: VideoURL > PlaylistURL > Channel > Query.
type Request struct {
	Action      string `json:"action"`
	Query       string `json:"query,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
	PlaylistURL string `json:"playlist_url,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

// TargetKind tags the populated variant of a TargetSpec
type TargetKind int

const (
	TargetVideo TargetKind = iota + 1
	TargetChannel
)

func (k TargetKind) String() string {
	switch k {
	case TargetVideo:
		return "video"
	case TargetChannel:
		return "channel"
	default:
		return "none"
	}
}

// TargetSpec is the normalized target of a request. Free text is always
// parsed into a channel target before a TargetSpec is produced.
type TargetSpec struct {
	Kind        TargetKind
	VideoID     string
	ChannelName string
	Limit       int
}

// ResolvedTarget is the ordered list of videos a request refers to
type ResolvedTarget struct {
	Videos  []VideoSummary
	Source  TargetKind
	Channel *Channel
}

// Response is the payload returned to callers for both actions.
// Fallback is serialized only for summaries; nil renders as JSON null.
type Response struct {
	SpokenResponse string         `json:"spoken_response"`
	Videos         []VideoSummary `json:"videos"`
	Fallback       *string        `json:"fallback"`

	action Action
}

// Action reports which action produced the response.
func (r Response) Action() Action {
	return r.action
}

// NewListResponse builds a response for ActionList
func NewListResponse(spoken string, videos []VideoSummary) *Response {
	return &Response{SpokenResponse: spoken, Videos: videos, action: ActionList}
}

// NewSummaryResponse builds a response for ActionSummarize
func NewSummaryResponse(spoken string, videos []VideoSummary, fallback *string) *Response {
	return &Response{SpokenResponse: spoken, Videos: videos, Fallback: fallback, action: ActionSummarize}
}

// listPayload omits the fallback field entirely
type listPayload struct {
	SpokenResponse string         `json:"spoken_response"`
	Videos         []VideoSummary `json:"videos"`
}

// summaryPayload always carries fallback, null for the full tier
type summaryPayload struct {
	SpokenResponse string         `json:"spoken_response"`
	Videos         []VideoSummary `json:"videos"`
	Fallback       *string        `json:"fallback"`
}

// Payload returns the wire shape for the response's action.
func (r Response) Payload() any {
	videos := r.Videos
	if videos == nil {
		videos = []VideoSummary{}
	}
	if r.action == ActionList {
		return listPayload{SpokenResponse: r.SpokenResponse, Videos: videos}
	}
	return summaryPayload{SpokenResponse: r.SpokenResponse, Videos: videos, Fallback: r.Fallback}
}

// MarshalJSON renders the action-specific wire shape.
func (r Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Payload())
}
