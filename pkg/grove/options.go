package grove

import (
	"context"
	"sync/atomic"

	"github.com/verdant-labs/grove/internal/domain"
	"github.com/verdant-labs/grove/internal/ports"
	"github.com/verdant-labs/grove/pkg/log"
)

// Renderer is the rendering/placement collaborator interface.
type Renderer = ports.Renderer

// Scheduler is the growth timer scheduler interface.
type Scheduler = ports.Scheduler

// TimerHandle identifies one scheduled growth timer.
type TimerHandle = domain.TimerHandle

// PlacementHandle identifies one placed scene asset.
type PlacementHandle = domain.PlacementHandle

// Point is a 2D screen coordinate used to resolve taps.
type Point = domain.Point

// Option configures optional behavior of a Grove.
type Option func(*options)

// options holds the optional configuration for a Grove instance.
type options struct {
	logger        log.Logger
	renderer      ports.Renderer
	scheduler     ports.Scheduler
	eventHandler  EventHandler
	watcherConfig *CatalogWatcherConfig
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger:   log.NewNoopLogger(),
		renderer: &noopRenderer{},
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRenderer sets the rendering/placement collaborator.
// If not provided, a no-op renderer that accepts every placement is used.
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithScheduler sets a custom timer scheduler.
// If not provided, a wall-clock scheduler is used.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithEventHandler sets a handler for grove events.
// Events are called synchronously from the goroutine processing the
// triggering event. If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithCatalogWatcher enables the catalog file watcher for the session.
func WithCatalogWatcher(cfg CatalogWatcherConfig) Option {
	return func(o *options) {
		o.watcherConfig = &cfg
	}
}

// noopRenderer accepts every placement and hits nothing.
type noopRenderer struct {
	n atomic.Uint64
}

func (r *noopRenderer) PlaceAsset(ctx context.Context, entityID, assetRef string) (domain.PlacementHandle, error) {
	return domain.PlacementHandle(r.n.Add(1)), nil
}

func (*noopRenderer) RemoveAsset(handle domain.PlacementHandle) {}

func (*noopRenderer) HitTest(pt domain.Point) (string, bool) { return "", false }
