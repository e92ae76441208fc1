package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Taichi-iskw/yt-brief/internal/errors"
	"github.com/Taichi-iskw/yt-brief/internal/model"
	"github.com/Taichi-iskw/yt-brief/internal/service/assistant"
)

// Handler adapts assistant.Service to gin
type Handler struct {
	svc assistant.Service
}

// NewHandler creates a Handler
func NewHandler(svc assistant.Service) *Handler {
	return &Handler{svc: svc}
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Assistant handles a request whose action is given in the body
func (h *Handler) Assistant(c *gin.Context) {
	h.handle(c, "")
}

// List handles a request with the action forced to list
func (h *Handler) List(c *gin.Context) {
	h.handle(c, model.ActionList)
}

// Summarize handles a request with the action forced to summarize
func (h *Handler) Summarize(c *gin.Context) {
	h.handle(c, model.ActionSummarize)
}

func (h *Handler) handle(c *gin.Context, action model.Action) {
	var req model.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, errors.Wrap(err, errors.CodeInvalidArg, "request body must be a JSON object"))
		return
	}
	if action != "" {
		req.Action = string(action)
	}

	resp, err := h.svc.Handle(c.Request.Context(), req)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp.Payload())
}

// TranscriptByQuery serves GET /transcript?videoId=
func (h *Handler) TranscriptByQuery(c *gin.Context) {
	h.transcript(c, c.Query("videoId"))
}

// TranscriptByPath serves GET /v1/transcript/:videoId
func (h *Handler) TranscriptByPath(c *gin.Context) {
	h.transcript(c, c.Param("videoId"))
}

func (h *Handler) transcript(c *gin.Context, videoID string) {
	t, err := h.svc.Transcript(c.Request.Context(), videoID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videoId":    t.VideoID,
		"transcript": t.Text,
	})
}

// renderError writes the uniform {error, details} body. Internal errors
// carry no details.
func renderError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	body := gin.H{"error": "internal_error"}

	if appErr, ok := errors.As(err); ok {
		body["error"] = appErr.Reason()
		if appErr.Code != errors.CodeInternal {
			if details := appErr.Details(); details != "" {
				body["details"] = details
			}
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Int("status", status).Msg("request failed")
	}

	c.AbortWithStatusJSON(status, body)
}
