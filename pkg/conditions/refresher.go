package conditions

import (
	"context"
	stderrors "errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
	"github.com/harborline/mariner/pkg/logging"
)

// UpdateHook is called after a snapshot has been applied.
type UpdateHook func(Snapshot)

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithInterval sets the refresh interval.
func WithInterval(d time.Duration) RefresherOption {
	return func(r *Refresher) {
		r.interval = d
	}
}

// WithStaleGuard enables or disables discarding results older than the
// last applied one. It is enabled by default; disabled, the last response
// to arrive wins.
func WithStaleGuard(enabled bool) RefresherOption {
	return func(r *Refresher) {
		r.staleGuard = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) RefresherOption {
	return func(r *Refresher) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFetchTimeout bounds each fetch.
func WithFetchTimeout(d time.Duration) RefresherOption {
	return func(r *Refresher) {
		r.fetchTimeout = d
	}
}

// Refresher fetches conditions for a set of targets on start and then on
// every interval tick, keeping the latest snapshot per port.
//
// Every fetch is numbered with a generation. Fetches are not cancelled
// when a newer tick fires, so responses can arrive out of order; with the
// stale guard on, a response older than the one already applied for that
// port is dropped.
type Refresher struct {
	source       Source
	targets      []Target
	interval     time.Duration
	fetchTimeout time.Duration
	staleGuard   bool
	logger       *zerolog.Logger

	generation atomic.Uint64

	mu        sync.RWMutex
	snapshots map[string]Snapshot
	applied   map[string]uint64
	hooks     []UpdateHook

	runMu   sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	flights sync.WaitGroup
}

// NewRefresher creates a stopped refresher.
func NewRefresher(source Source, targets []Target, opts ...RefresherOption) (*Refresher, error) {
	if source == nil {
		return nil, errors.NewValidationError("source", nil, "is required")
	}
	r := &Refresher{
		source:       source,
		targets:      slices.Clone(targets),
		interval:     constants.DefaultRefreshInterval,
		fetchTimeout: constants.DefaultHTTPTimeout,
		staleGuard:   true,
		logger:       logging.Default(),
		snapshots:    make(map[string]Snapshot, len(targets)),
		applied:      make(map[string]uint64, len(targets)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.interval <= 0 {
		return nil, errors.NewValidationError("refresh_interval", r.interval, "must be positive")
	}
	return r, nil
}

// Interval returns the refresh interval.
func (r *Refresher) Interval() time.Duration {
	return r.interval
}

// StaleGuard reports whether stale results are dropped.
func (r *Refresher) StaleGuard() bool {
	return r.staleGuard
}

// OnUpdate registers a hook called after each applied snapshot.
func (r *Refresher) OnUpdate(hook UpdateHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

// Snapshot returns the latest snapshot of a port.
func (r *Refresher) Snapshot(slug string) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.snapshots[slug]
	return s, ok
}

// Target returns the registered target for slug.
func (r *Refresher) Target(slug string) (Target, bool) {
	for _, t := range r.targets {
		if t.Slug == slug {
			return t, true
		}
	}
	return Target{}, false
}

// Running reports whether the refresh loop is active.
func (r *Refresher) Running() bool {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	return r.cancel != nil
}

// Start fetches every target immediately and then on every tick until ctx
// is done or Stop is called. Starting a running refresher restarts it.
func (r *Refresher) Start(ctx context.Context) error {
	r.Stop()

	r.runMu.Lock()
	defer r.runMu.Unlock()

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	r.logger.Info().
		Dur("interval", r.interval).
		Int("ports", len(r.targets)).
		Bool("stale_guard", r.staleGuard).
		Msg("Starting conditions refresh")

	go r.loop(loopCtx, r.done)
	return nil
}

// Stop ends the loop and waits for it and any in-flight fetches to finish.
func (r *Refresher) Stop() {
	r.runMu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.flights.Wait()
	r.logger.Debug().Msg("Conditions refresh stopped")
}

func (r *Refresher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ticker.C:
			r.tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// tick launches one fetch per target without waiting for earlier ones.
func (r *Refresher) tick(ctx context.Context) {
	for _, t := range r.targets {
		gen := r.generation.Add(1)
		r.flights.Add(1)
		go func() {
			defer r.flights.Done()
			_, _ = r.fetch(ctx, t, gen)
		}()
	}
}

// RefreshNow fetches one port synchronously and returns the snapshot held
// afterwards, which is newer than the fetched one if a later fetch landed
// first.
func (r *Refresher) RefreshNow(ctx context.Context, slug string) (Snapshot, error) {
	t, ok := r.Target(slug)
	if !ok {
		return Snapshot{}, errors.NewNotFoundError("port", slug)
	}
	snap, err := r.fetch(ctx, t, r.generation.Add(1))
	if stderrors.Is(err, errors.ErrStale) {
		return snap, nil
	}
	return snap, err
}

func (r *Refresher) fetch(ctx context.Context, t Target, gen uint64) (Snapshot, error) {
	fetchCtx, cancel := context.WithTimeout(logging.WithPort(ctx, t.Slug), r.fetchTimeout)
	defer cancel()

	snap, err := r.source.Fetch(fetchCtx, t)
	if err != nil {
		if stderrors.Is(err, context.Canceled) && ctx.Err() != nil {
			return Snapshot{}, err
		}
		r.logger.Warn().Err(err).Str("port", t.Slug).Uint64("generation", gen).Msg("Conditions fetch failed")
		if snap.Empty() {
			prev, _ := r.Snapshot(t.Slug)
			return prev, err
		}
	}

	snap.Port = t.Slug
	snap.Generation = gen
	current, applied := r.apply(snap)
	if !applied {
		return current, errors.ErrStale
	}
	return current, err
}

// apply stores snap unless the stale guard rejects it, and returns the
// snapshot held afterwards.
func (r *Refresher) apply(snap Snapshot) (Snapshot, bool) {
	r.mu.Lock()
	prev, had := r.snapshots[snap.Port]
	if r.staleGuard && had && snap.Generation < r.applied[snap.Port] {
		r.mu.Unlock()
		r.logger.Debug().
			Str("port", snap.Port).
			Uint64("generation", snap.Generation).
			Uint64("applied", prev.Generation).
			Msg("Discarding stale conditions")
		return prev, false
	}
	snap = snap.merge(prev)
	r.snapshots[snap.Port] = snap
	r.applied[snap.Port] = snap.Generation
	hooks := slices.Clone(r.hooks)
	r.mu.Unlock()

	for _, hook := range hooks {
		hook(snap)
	}
	return snap, true
}
