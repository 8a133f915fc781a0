// Package grove drives the lifecycle of placeable growing entities: each
// entity starts dormant, grows once placed, expires after a randomized timer
// and blooms when tapped. Rendering, gestures and onboarding live behind
// collaborator interfaces; this package owns only state, timers and event
// dispatch.
//
// Example usage:
//
//	g, err := grove.New(grove.Config{},
//	    grove.WithRenderer(myRenderer),
//	    grove.WithEventHandler(myHandler),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := g.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer g.Stop()
//
//	g.Select(ctx, "sunflower")
//	g.Placed("sunflower")
package grove

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/verdant-labs/grove/internal/adapters/clock"
	"github.com/verdant-labs/grove/internal/app"
	"github.com/verdant-labs/grove/internal/catalog"
	"github.com/verdant-labs/grove/internal/domain"
	"github.com/verdant-labs/grove/internal/ports"
)

// Catalog is the fixed set of placeable plants for a session.
type Catalog = catalog.Catalog

// Plant describes one catalog entry.
type Plant = catalog.Plant

// EntityStatus is a read-only view of one entity.
type EntityStatus struct {
	ID             string
	DisplayName    string
	State          State
	GrowthDuration time.Duration
	Selected       bool
}

// DefaultCatalog returns the built-in three-plant catalog.
func DefaultCatalog() Catalog { return catalog.Default() }

// LoadCatalog reads and validates a TOML catalog file.
func LoadCatalog(path string) (Catalog, error) { return catalog.Load(path) }

// Config holds the configuration for a Grove session.
type Config struct {
	// Catalog is the plant set for the session. The zero value means the
	// built-in catalog.
	Catalog Catalog

	// Seed seeds the growth duration generator so durations are
	// reproducible. Zero means time-based.
	Seed int64
}

// SetDefaults fills in zero-valued fields.
func (c *Config) SetDefaults() {
	if len(c.Catalog.Plants) == 0 {
		c.Catalog = catalog.Default()
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
}

// Grove owns one session of placeable growing entities.
// Use New() to create an instance, then Start() before applying events.
type Grove struct {
	config     Config
	opts       options
	controller *app.Controller
	scheduler  ports.Scheduler
	watcher    *catalogWatcher

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a new Grove with the given configuration. The entity set is
// constructed immediately, with growth durations drawn from the catalog's
// range using the configured seed. Returns an error if the catalog is
// invalid; duplicate plant ids are the only construction-time contract
// violation.
func New(cfg Config, opts ...Option) (*Grove, error) {
	cfg.SetDefaults()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.scheduler == nil {
		o.scheduler = clock.NewScheduler()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	entities, err := cfg.Catalog.Build(rng)
	if err != nil {
		return nil, err
	}

	g := &Grove{
		config:    cfg,
		opts:      o,
		scheduler: o.scheduler,
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	controller, err := app.NewController(entities, o.scheduler, o.renderer, o.logger, emitter)
	if err != nil {
		return nil, err
	}
	g.controller = controller

	if o.watcherConfig != nil {
		g.watcher = newCatalogWatcher(*o.watcherConfig, o.logger, func(path string) {
			if o.eventHandler != nil {
				o.eventHandler.OnCatalogChanged(CatalogChangedEvent{Path: path})
			}
		})
	}

	return g, nil
}

// Start begins the session. Returns ErrAlreadyRunning if already started.
// The provided context bounds the session; cancelling it stops the catalog
// watcher but pending growth timers are only released by Stop().
func (g *Grove) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return domain.ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel

	if g.watcher != nil {
		g.watcher.start(runCtx)
	}

	g.running = true
	return nil
}

// Stop tears the session down: stops the catalog watcher, cancels every
// pending growth timer and returns all entities to Dormant.
// Returns ErrNotRunning if the session was not started.
func (g *Grove) Stop() error {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return domain.ErrNotRunning
	}
	g.running = false
	cancel := g.cancel
	g.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if g.watcher != nil {
		g.watcher.stop()
	}
	g.controller.Close()
	return nil
}

// Running reports whether the session has been started and not stopped.
func (g *Grove) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Select records id as the currently selected entity and places its initial
// asset. Returns ErrUnknownEntity for ids not in the catalog.
func (g *Grove) Select(ctx context.Context, id string) error {
	if err := g.requireRunning(); err != nil {
		return err
	}
	return g.controller.SelectEntity(ctx, id)
}

// Placed reports that the entity's asset landed on the surface; the entity
// starts growing and its timer is armed.
func (g *Grove) Placed(id string) error {
	if err := g.requireRunning(); err != nil {
		return err
	}
	return g.controller.OnPlaced(id)
}

// Tap applies a tap to the entity with the given id. Taps on entities that
// are not expired are ignored.
func (g *Grove) Tap(ctx context.Context, id string) error {
	if err := g.requireRunning(); err != nil {
		return err
	}
	return g.controller.OnTap(ctx, id)
}

// TapAt resolves a screen point through the renderer's hit-test and applies
// the tap. Points that hit nothing are ignored.
func (g *Grove) TapAt(ctx context.Context, x, y float64) error {
	if err := g.requireRunning(); err != nil {
		return err
	}
	return g.controller.OnTapAt(ctx, domain.Point{X: x, Y: y})
}

// Selected returns the id of the currently selected entity, or "".
func (g *Grove) Selected() string {
	return g.controller.Selected()
}

// State returns the lifecycle state of the entity with the given id.
func (g *Grove) State(id string) (State, error) {
	s, err := g.controller.State(id)
	return convertState(s), err
}

// Snapshot returns the status of every entity in catalog order.
func (g *Grove) Snapshot() []EntityStatus {
	internal := g.controller.Snapshot()
	out := make([]EntityStatus, 0, len(internal))
	for _, st := range internal {
		out = append(out, EntityStatus{
			ID:             st.ID,
			DisplayName:    st.DisplayName,
			State:          convertState(st.State),
			GrowthDuration: st.GrowthDuration,
			Selected:       st.Selected,
		})
	}
	return out
}

func (g *Grove) requireRunning() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.running {
		return domain.ErrNotRunning
	}
	return nil
}

// eventEmitterWrapper adapts EventHandler to the controller's emitter interface.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnEntityStateChanged(id string, previous, current domain.State) {
	if e.handler == nil {
		return
	}
	e.handler.OnEntityStateChanged(EntityStateChangedEvent{
		EntityID: id,
		Previous: convertState(previous),
		Current:  convertState(current),
	})
}

func (e *eventEmitterWrapper) OnAssetFailure(id, assetRef string, err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnAssetFailure(AssetFailureEvent{
		EntityID: id,
		AssetRef: assetRef,
		Err:      err,
	})
}
