// Package api exposes the assistant service over HTTP.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Taichi-iskw/yt-brief/internal/service/assistant"
)

// NewRouter registers every route on a fresh gin engine
func NewRouter(svc assistant.Service) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(), gin.Recovery())

	h := NewHandler(svc)

	r.GET("/healthz", h.Health)

	// legacy single-video endpoint
	r.GET("/transcript", h.TranscriptByQuery)

	v1 := r.Group("/v1")
	{
		// POST /v1/assistant
		v1.POST("/assistant", h.Assistant)
		v1.POST("/list", h.List)
		v1.POST("/summarize", h.Summarize)

		// GET /v1/transcript/:videoId
		v1.GET("/transcript/:videoId", h.TranscriptByPath)
	}

	return r
}
