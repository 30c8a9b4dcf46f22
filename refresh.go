package mariner

import (
	"context"

	"github.com/harborline/mariner/pkg/conditions"
	"github.com/harborline/mariner/pkg/errors"
)

// Compile-time interface check.
var _ Refresher = (*client)(nil)

// Refresher controls the background refresh of port conditions.
type Refresher interface {
	// RefreshOn starts refreshing every port until ctx is done or RefreshOff.
	RefreshOn(ctx context.Context) error

	// RefreshOff stops refreshing and waits for in-flight fetches.
	RefreshOff()

	// Refreshing reports whether the background refresh is running.
	Refreshing() bool
}

// RefreshOn starts the background refresh.
func (c *client) RefreshOn(ctx context.Context) error {
	if c.options.refreshDisabled {
		return &errors.ConfigError{Component: "conditions", Message: "refresh is disabled"}
	}
	return c.refresher.Start(ctx)
}

// RefreshOff stops the background refresh.
func (c *client) RefreshOff() {
	c.refresher.Stop()
}

// Refreshing reports whether the background refresh is running.
func (c *client) Refreshing() bool {
	return c.refresher.Running()
}

// Conditions returns the latest snapshot of a port, if one has been fetched.
func (c *client) Conditions(slug string) (conditions.Snapshot, bool) {
	return c.refresher.Snapshot(slug)
}

// RefreshConditions fetches one port's conditions now.
func (c *client) RefreshConditions(ctx context.Context, slug string) (conditions.Snapshot, error) {
	if _, err := c.library.Port(slug); err != nil {
		return conditions.Snapshot{}, err
	}
	return c.refresher.RefreshNow(ctx, slug)
}
