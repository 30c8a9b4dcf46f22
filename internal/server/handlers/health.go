package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/harborline/mariner/internal/server/response"
)

// HandleHealth handles GET /health and GET {prefix}/health.
// @Summary Health check
// @Description Health check endpoint (liveness)
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /health [get]
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "mariner-api",
		"version": "v1",
	})
}

// HandleReady handles GET {prefix}/ready. The server is ready once content
// is loaded; conditions are reported but never make it unready.
// @Summary Readiness check
// @Description Readiness check including content, cache and stream client status
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /ready [get]
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	lib := h.client.Library()
	if lib == nil || lib.Forms == nil || lib.Ships == nil {
		response.ServiceUnavailable(w, "Content not loaded")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Millisecond)
	defer cancel()

	response.OK(w, map[string]any{
		"status": "ready",
		"content": map[string]int{
			"forms": lib.Forms.Len(),
			"ships": lib.Ships.Len(),
			"ports": len(lib.Ports()),
		},
		"conditions_refreshing": h.client.Refreshing(),
		"cache":                 h.cache.GetStats(),
		"websocket_clients":     h.wsHub.ClientCount(ctx),
		"sse_clients":           h.sseBroadcaster.ClientCount(),
	})
}
