// Package mariner serves merchant-marine reference content: a forms
// directory, ship-class reference pages and port guides with live
// conditions.
//
// Content is static and loaded once. Each surface that displays it owns
// its own filter and carousel state (see pkg/filter and pkg/surface).
//
// Example:
//
//	client, err := mariner.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	forms := filter.NewController(client.Forms())
//	_ = forms.SetCategory(catalogs.FormMedical)
//	fmt.Println(forms.Summary().Showing)
package mariner

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/harborline/mariner/internal/embedded"
	"github.com/harborline/mariner/internal/transport"
	"github.com/harborline/mariner/pkg/assets"
	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/conditions"
	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/logging"
	"github.com/harborline/mariner/pkg/markers"
	"github.com/harborline/mariner/pkg/surface"
)

// Client is the entry point to mariner content and live conditions.
type Client interface {
	// Library returns the loaded content set.
	Library() *catalogs.Library

	// Forms returns the forms directory store.
	Forms() *catalogs.Store

	// Ships returns the ship-class store.
	Ships() *catalogs.Store

	// Catalog returns a top-level store by name ("forms" or "ships").
	Catalog(name string) (*catalogs.Store, error)

	// Port returns a port guide by slug.
	Port(slug string) (*catalogs.Port, error)

	// Ports returns every port guide.
	Ports() []*catalogs.Port

	// Assets returns the asset resolver for record attachments.
	Assets() assets.Resolver

	// Markers returns the shared marker map of a port's spots.
	Markers(slug string) (*markers.Map, error)

	// Carousel creates a new carousel over a port's spots.
	Carousel(slug string, pageSize int) (*surface.Carousel, error)

	// Conditions returns the latest snapshot of a port, if one has been fetched.
	Conditions(slug string) (conditions.Snapshot, bool)

	// RefreshConditions fetches one port's conditions now.
	RefreshConditions(ctx context.Context, slug string) (conditions.Snapshot, error)

	// OnConditionsUpdated registers a callback for applied snapshots.
	OnConditionsUpdated(ConditionsUpdatedHook)

	Refresher
}

// client is the implementation of Client.
type client struct {
	options   *options
	library   *catalogs.Library
	assets    assets.Resolver
	refresher *conditions.Refresher
	hooks     *hooks
	logger    *zerolog.Logger

	markersMu sync.Mutex
	markers   map[string]*markers.Map
}

// New loads content and prepares the conditions refresher. The refresh
// loop is not started; call RefreshOn.
func New(opts ...Option) (Client, error) {
	o := defaultOptions()
	if err := o.apply(opts...); err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = logging.Default()
	}

	fsys := o.fsys
	switch {
	case fsys != nil:
	case o.dataDir != "":
		fsys = os.DirFS(o.dataDir)
	default:
		fsys = embedded.Catalog()
	}

	library, err := catalogs.Load(fsys)
	if err != nil {
		return nil, err
	}

	c := &client{
		options: o,
		library: library,
		assets:  assets.NewResolver(o.assetBaseURL),
		hooks:   newHooks(),
		logger:  logger,
		markers: make(map[string]*markers.Map),
	}

	c.refresher, err = conditions.NewRefresher(c.source(), c.targets(),
		conditions.WithInterval(o.refreshInterval),
		conditions.WithStaleGuard(o.staleGuard),
		conditions.WithLogger(logger),
		conditions.WithFetchTimeout(constants.DefaultHTTPTimeout),
	)
	if err != nil {
		return nil, err
	}
	c.refresher.OnUpdate(c.hooks.triggerConditionsUpdated)

	logger.Debug().
		Int("forms", library.Forms.Len()).
		Int("ships", library.Ships.Len()).
		Int("ports", len(library.Ports())).
		Msg("Content loaded")

	return c, nil
}

func (c *client) source() conditions.Source {
	if c.options.source != nil {
		return c.options.source
	}
	return conditions.NewComposite(
		conditions.NewWeatherSource(c.options.weatherURL,
			transport.New("weather", transport.WithHTTPClient(c.options.httpClient))),
		conditions.NewRatesSource(c.options.ratesURL, c.options.ratesBase,
			transport.New("rates",
				transport.WithHTTPClient(c.options.httpClient),
				transport.WithAuth(transport.ParseAuth(c.options.ratesAuth), c.options.ratesKey))),
	)
}

func (c *client) targets() []conditions.Target {
	ports := c.library.Ports()
	out := make([]conditions.Target, len(ports))
	for i, p := range ports {
		out[i] = conditions.TargetFor(p)
	}
	return out
}

func (c *client) Library() *catalogs.Library { return c.library }
func (c *client) Forms() *catalogs.Store     { return c.library.Forms }
func (c *client) Ships() *catalogs.Store     { return c.library.Ships }
func (c *client) Ports() []*catalogs.Port    { return c.library.Ports() }
func (c *client) Assets() assets.Resolver    { return c.assets }

func (c *client) Catalog(name string) (*catalogs.Store, error) {
	return c.library.Catalog(name)
}

func (c *client) Port(slug string) (*catalogs.Port, error) {
	return c.library.Port(slug)
}

func (c *client) Markers(slug string) (*markers.Map, error) {
	p, err := c.library.Port(slug)
	if err != nil {
		return nil, err
	}

	c.markersMu.Lock()
	defer c.markersMu.Unlock()
	m, ok := c.markers[slug]
	if !ok {
		m = markers.NewMap(p.Spots)
		c.markers[slug] = m
	}
	return m, nil
}

func (c *client) Carousel(slug string, pageSize int) (*surface.Carousel, error) {
	p, err := c.library.Port(slug)
	if err != nil {
		return nil, err
	}
	if pageSize == 0 {
		pageSize = constants.DefaultPageSize
	}
	return surface.NewCarousel(p.Spots, pageSize)
}

func (c *client) OnConditionsUpdated(fn ConditionsUpdatedHook) {
	c.hooks.OnConditionsUpdated(fn)
}
