package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/mariner/internal/server/events"
	ws "github.com/harborline/mariner/internal/server/websocket"
)

// HandleWebSocket handles {prefix}/updates/ws. Clients receive
// conditions.updated and marker.selected events as JSON frames.
// @Summary WebSocket updates
// @Description Upgrades to a WebSocket carrying conditions.updated and marker.selected events
// @Tags realtime
// @Success 101 {string} string "Switching protocols"
// @Router /updates/ws [get]
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(uuid.NewString(), h.wsHub, conn)
	client.Send(ws.Message{
		Type:      string(events.ClientConnected),
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"client_id": client.ID(),
			"message":   "Connected to mariner updates",
		},
	})
	if !h.wsHub.Register(h.ctx, client) {
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump(h.ctx)
}

// HandleSSE handles {prefix}/updates/stream, the Server-Sent Events
// variant of HandleWebSocket.
// @Summary Server-Sent Events updates
// @Description Streams conditions.updated and marker.selected events
// @Tags realtime
// @Produce text/event-stream
// @Success 200 {string} string "Event stream"
// @Router /updates/stream [get]
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.sseBroadcaster.ServeHTTP(w, r)
}
