// Package handlers implements the HTTP handlers of the mariner API.
package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/harborline/mariner"
	"github.com/harborline/mariner/internal/server/cache"
	"github.com/harborline/mariner/internal/server/response"
	"github.com/harborline/mariner/internal/server/sse"
	ws "github.com/harborline/mariner/internal/server/websocket"
	"github.com/harborline/mariner/pkg/catalogs"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	ctx            context.Context
	client         mariner.Client
	cache          *cache.Cache
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
}

// New creates a new Handlers instance. ctx bounds the lifetime of
// long-lived connections such as WebSocket pumps.
func New(
	ctx context.Context,
	client mariner.Client,
	cache *cache.Cache,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		ctx:            ctx,
		client:         client,
		cache:          cache,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
	}
}

// cached serves key from the response cache, or computes, caches and
// serves it. Errors are not cached.
func (h *Handlers) cached(w http.ResponseWriter, key string, compute func() (any, error)) {
	if data, found := h.cache.Get(key); found {
		response.OK(w, data)
		return
	}
	data, err := compute()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	h.cache.Set(key, data)
	response.OK(w, data)
}

// recordView is a record with its attachment resolved to a URL.
type recordView struct {
	catalogs.Record
	AssetURL string `json:"asset_url,omitempty"`
}

func (h *Handlers) recordViews(records []catalogs.Record) []recordView {
	resolver := h.client.Assets()
	out := make([]recordView, len(records))
	for i, r := range records {
		out[i] = recordView{Record: r, AssetURL: resolver.Resolve(r.Asset)}
	}
	return out
}
