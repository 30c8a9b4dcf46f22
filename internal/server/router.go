package server

import (
	"net/http"

	"github.com/harborline/mariner/internal/render"
	"github.com/harborline/mariner/internal/server/handlers"
	"github.com/harborline/mariner/internal/server/middleware"
	"github.com/harborline/mariner/internal/server/response"
	"github.com/harborline/mariner/pkg/catalogs"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.ctx,
		s.client,
		s.cache,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		s.logger,
	)

	s.registerRoutes(mux, h)
	if s.config.PagesEnabled {
		render.NewPages(s.client).Register(mux)
	}

	return s.applyMiddleware(mux)
}

// registerRoutes registers the API routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	for _, name := range []string{catalogs.CatalogForms, catalogs.CatalogShips} {
		base := prefix + "/" + name
		mux.HandleFunc("GET "+base, h.HandleListRecords(name))
		mux.HandleFunc("GET "+base+"/categories", h.HandleCategories(name))
		mux.HandleFunc("GET "+base+"/{id}", h.HandleGetRecord(name))
	}

	mux.HandleFunc("GET "+prefix+"/ports", h.HandleListPorts)
	mux.HandleFunc("GET "+prefix+"/ports/{slug}", h.HandleGetPort)
	mux.HandleFunc("GET "+prefix+"/ports/{slug}/spots", h.HandleListSpots)
	mux.HandleFunc("GET "+prefix+"/ports/{slug}/spots/categories", h.HandleSpotCategories)
	mux.HandleFunc("GET "+prefix+"/ports/{slug}/markers", h.HandleListMarkers)
	mux.HandleFunc("POST "+prefix+"/ports/{slug}/markers/{id}/select", h.HandleSelectMarker)
	mux.HandleFunc("GET "+prefix+"/ports/{slug}/conditions", h.HandleConditions)

	mux.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+prefix+"/updates/stream", h.HandleSSE)

	mux.HandleFunc("GET "+prefix+"/openapi.json", h.HandleOpenAPIJSON)
	mux.HandleFunc("GET "+prefix+"/openapi.yaml", h.HandleOpenAPIYAML)

	mux.HandleFunc(prefix+"/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Not found", "No route for "+r.Method+" "+r.URL.Path)
	})
}

// applyMiddleware wraps handler with the middleware chain. The outermost
// layer runs first: request id, recovery, logging, CORS, rate limiting.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config
	chain := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		chain = append(chain, middleware.CORS(corsConfig))
	}

	if s.rateLimiter != nil {
		chain = append(chain, middleware.RateLimit(s.rateLimiter))
	}

	return middleware.Chain(chain...)(handler)
}
