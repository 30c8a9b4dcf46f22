// Package server provides the HTTP server of mariner: the JSON API, the
// HTML pages and the realtime update streams.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/harborline/mariner"
	"github.com/harborline/mariner/internal/server/cache"
	"github.com/harborline/mariner/internal/server/events"
	"github.com/harborline/mariner/internal/server/events/adapters"
	"github.com/harborline/mariner/internal/server/handlers"
	"github.com/harborline/mariner/internal/server/middleware"
	"github.com/harborline/mariner/internal/server/sse"
	ws "github.com/harborline/mariner/internal/server/websocket"
	"github.com/harborline/mariner/pkg/conditions"
	"github.com/harborline/mariner/pkg/markers"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	client         mariner.Client
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	rateLimiter    *middleware.RateLimiter
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	unsubscribe    []func()
	startTime      time.Time
}

// New creates a server over client. Background services start with Start.
func New(client mariner.Client, cfg Config, logger *zerolog.Logger) (*Server, error) {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		client:         client,
		cache:          cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		s.rateLimiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	if err := s.connectHooks(); err != nil {
		cancel()
		return nil, err
	}
	return s, nil
}

// connectHooks publishes condition refreshes and marker selections to the
// broker. A refresh also evicts the cached responses that embed the old
// snapshot.
func (s *Server) connectHooks() error {
	s.client.OnConditionsUpdated(func(snap conditions.Snapshot) {
		evicted := s.cache.DeletePrefix(handlers.PortCachePrefix(snap.Port))
		s.broker.Publish(events.ConditionsUpdated, snap)
		s.logger.Debug().
			Str("port", snap.Port).
			Uint64("generation", snap.Generation).
			Int("evicted", evicted).
			Msg("Conditions updated event published")
	})

	for _, p := range s.client.Ports() {
		m, err := s.client.Markers(p.Slug)
		if err != nil {
			return err
		}
		slug := p.Slug
		s.unsubscribe = append(s.unsubscribe, m.OnSelect(func(marker markers.Marker) {
			s.broker.Publish(events.MarkerSelected, map[string]any{
				"port":   slug,
				"marker": marker,
			})
		}))
	}
	return nil
}

// Start starts the broker, the WebSocket hub, the SSE broadcaster and the
// rate limiter janitor.
func (s *Server) Start() {
	run := func(fn func(context.Context)) {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			fn(s.ctx)
		}()
	}
	run(s.broker.Run)
	run(s.wsHub.Run)
	run(s.sseBroadcaster.Run)
	if s.rateLimiter != nil {
		run(s.rateLimiter.Run)
	}
	s.logger.Debug().Msg("Background services started")
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops background services and waits for them until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, unsub := range s.unsubscribe {
		unsub()
	}
	s.unsubscribe = nil
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("Background services shut down")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Cache returns the response cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns when the server was created.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
