// Package app contains the lifecycle controller that orchestrates entity
// state, growth timers and rendering commands.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/verdant-labs/grove/internal/domain"
	"github.com/verdant-labs/grove/internal/ports"
	"github.com/verdant-labs/grove/pkg/log"
)

// EventEmitter is called on controller notifications. Implementations must
// not call back into the controller.
type EventEmitter interface {
	// OnEntityStateChanged is called once per accepted transition.
	OnEntityStateChanged(entityID string, previous, current domain.State)

	// OnAssetFailure is called when the renderer cannot resolve an asset.
	// Entity state is unchanged when this fires.
	OnAssetFailure(entityID, assetRef string, err error)
}

// Controller owns the entity set and applies lifecycle events to it.
//
// Events arrive from independent sources (direct calls, the gesture layer,
// timer completions), so every read-modify-write on an entity is serialized
// behind a single mutex. Notifications are emitted after the lock is
// released.
type Controller struct {
	mu       sync.Mutex
	entities map[string]*domain.Entity
	order    []string
	selected string

	scheduler ports.Scheduler
	renderer  ports.Renderer
	logger    log.Logger
	emitter   EventEmitter
}

// NewController creates a controller owning the given entities.
// Returns ErrDuplicateEntity if two entities share an id.
func NewController(entities []*domain.Entity, scheduler ports.Scheduler, renderer ports.Renderer, logger log.Logger, emitter EventEmitter) (*Controller, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	m := make(map[string]*domain.Entity, len(entities))
	order := make([]string, 0, len(entities))
	for _, e := range entities {
		if _, exists := m[e.ID]; exists {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateEntity, e.ID)
		}
		m[e.ID] = e
		order = append(order, e.ID)
	}

	return &Controller{
		entities:  m,
		order:     order,
		scheduler: scheduler,
		renderer:  renderer,
		logger:    logger,
		emitter:   emitter,
	}, nil
}

// SelectEntity records id as the currently selected entity and, for a dormant
// entity that is not yet on the surface, asks the renderer to place its
// initial asset. Selection does not change lifecycle state; the host reports
// actual placement through OnPlaced.
func (c *Controller) SelectEntity(ctx context.Context, id string) error {
	c.mu.Lock()
	e, ok := c.entities[id]
	if !ok {
		c.mu.Unlock()
		c.logger.Warn("select for unknown entity", log.String("entity", id))
		return fmt.Errorf("%w: %q", domain.ErrUnknownEntity, id)
	}

	c.selected = id

	if e.State != domain.StateDormant || e.Placement != 0 {
		state := e.State
		c.mu.Unlock()
		c.logger.Debug("selection updated, entity already placed",
			log.String("entity", id),
			log.String("state", state.String()),
		)
		return nil
	}

	placement, err := c.renderer.PlaceAsset(ctx, e.ID, e.InitialAsset)
	if err != nil {
		asset := e.InitialAsset
		c.mu.Unlock()
		c.logger.Warn("initial asset placement failed",
			log.String("entity", id),
			log.String("asset", asset),
			log.Err(err),
		)
		if c.emitter != nil {
			c.emitter.OnAssetFailure(id, asset, err)
		}
		return fmt.Errorf("%w: %s: %s", domain.ErrAssetLoad, asset, err)
	}
	e.Placement = placement
	c.mu.Unlock()

	c.logger.Info("entity selected",
		log.String("entity", id),
		log.String("asset", e.InitialAsset),
	)
	return nil
}

// OnPlaced applies PlaceRequested to the entity and arms its growth timer.
// Rejected transitions are surfaced as a warning, never a crash.
func (c *Controller) OnPlaced(id string) error {
	c.mu.Lock()
	e, ok := c.entities[id]
	if !ok {
		c.mu.Unlock()
		c.logger.Warn("placement for unknown entity", log.String("entity", id))
		return fmt.Errorf("%w: %q", domain.ErrUnknownEntity, id)
	}

	next, err := domain.Transition(e.State, domain.EventPlaceRequested)
	if err != nil {
		state := e.State
		c.mu.Unlock()
		c.logger.Warn("placement rejected",
			log.String("entity", id),
			log.String("state", state.String()),
		)
		return err
	}

	handle := c.scheduler.Schedule(id, e.GrowthDuration, c.timerFired)
	if handle == 0 {
		// Dormant entities hold no timer, so a refusal here means the
		// scheduler and entity set disagree. Leave the entity dormant.
		c.mu.Unlock()
		c.logger.Error("growth timer refused", log.String("entity", id))
		return fmt.Errorf("%w: %q", domain.ErrTimerActive, id)
	}

	previous := e.State
	e.State = next
	e.TimerHandle = handle
	growth := e.GrowthDuration
	c.mu.Unlock()

	c.logger.Info("growth started",
		log.String("entity", id),
		log.Duration("duration", growth),
		log.Uint64("handle", uint64(handle)),
	)
	c.emitStateChanged(id, previous, next)
	return nil
}

// OnTimerFired applies TimerFired to the entity, guarded against stale
// completions: a handle that does not match the entity's current timer is
// discarded silently. Expected under normal re-arm races.
func (c *Controller) OnTimerFired(id string, handle domain.TimerHandle) error {
	c.mu.Lock()
	e, ok := c.entities[id]
	if !ok {
		c.mu.Unlock()
		c.logger.Warn("timer completion for unknown entity", log.String("entity", id))
		return fmt.Errorf("%w: %q", domain.ErrUnknownEntity, id)
	}

	if e.TimerHandle != handle {
		state := e.State
		c.mu.Unlock()
		c.logger.Debug("stale timer completion discarded",
			log.String("entity", id),
			log.Uint64("handle", uint64(handle)),
			log.String("state", state.String()),
		)
		return nil
	}

	next, err := domain.Transition(e.State, domain.EventTimerFired)
	if err != nil {
		state := e.State
		c.mu.Unlock()
		c.logger.Warn("timer fired in unexpected state",
			log.String("entity", id),
			log.String("state", state.String()),
		)
		return err
	}

	previous := e.State
	e.State = next
	e.TimerHandle = 0
	c.mu.Unlock()

	c.emitStateChanged(id, previous, next)
	return nil
}

// OnTap applies TapWhileExpired to the entity. Taps on entities in any other
// state are ignored; that is a normal, frequent occurrence, not an error.
// On success the initial asset is swapped for the bloomed one.
func (c *Controller) OnTap(ctx context.Context, id string) error {
	c.mu.Lock()
	e, ok := c.entities[id]
	if !ok {
		c.mu.Unlock()
		c.logger.Debug("tap on unknown entity", log.String("entity", id))
		return fmt.Errorf("%w: %q", domain.ErrUnknownEntity, id)
	}

	if e.State != domain.StateExpired {
		state := e.State
		c.mu.Unlock()
		c.logger.Debug("tap ignored",
			log.String("entity", id),
			log.String("state", state.String()),
		)
		return nil
	}

	next, err := domain.Transition(e.State, domain.EventTapWhileExpired)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	// Place the bloomed asset before removing the old one so a load
	// failure leaves the entity expired and retryable.
	placement, perr := c.renderer.PlaceAsset(ctx, e.ID, e.BloomedAsset)
	if perr != nil {
		asset := e.BloomedAsset
		c.mu.Unlock()
		c.logger.Warn("bloomed asset placement failed",
			log.String("entity", id),
			log.String("asset", asset),
			log.Err(perr),
		)
		if c.emitter != nil {
			c.emitter.OnAssetFailure(id, asset, perr)
		}
		return fmt.Errorf("%w: %s: %s", domain.ErrAssetLoad, asset, perr)
	}

	if e.Placement != 0 {
		c.renderer.RemoveAsset(e.Placement)
	}
	previous := e.State
	e.State = next
	e.Placement = placement
	c.mu.Unlock()

	c.emitStateChanged(id, previous, next)
	return nil
}

// OnTapAt resolves a screen point to an entity via the renderer's hit-test
// and applies the tap. Points that hit nothing are ignored.
func (c *Controller) OnTapAt(ctx context.Context, pt domain.Point) error {
	id, hit := c.renderer.HitTest(pt)
	if !hit {
		c.logger.Debug("tap hit nothing",
			log.Float64("x", pt.X),
			log.Float64("y", pt.Y),
		)
		return nil
	}
	return c.OnTap(ctx, id)
}

// Selected returns the id of the currently selected entity, or "".
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// State returns the lifecycle state of the entity with the given id.
func (c *Controller) State(id string) (domain.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entities[id]
	if !ok {
		return domain.StateDormant, fmt.Errorf("%w: %q", domain.ErrUnknownEntity, id)
	}
	return e.State, nil
}

// EntityStatus is a read-only view of one entity.
type EntityStatus struct {
	ID             string
	DisplayName    string
	State          domain.State
	GrowthDuration time.Duration
	Selected       bool
}

// Snapshot returns the status of every entity in catalog order.
func (c *Controller) Snapshot() []EntityStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]EntityStatus, 0, len(c.order))
	for _, id := range c.order {
		e := c.entities[id]
		out = append(out, EntityStatus{
			ID:             e.ID,
			DisplayName:    e.DisplayName,
			State:          e.State,
			GrowthDuration: e.GrowthDuration,
			Selected:       id == c.selected,
		})
	}
	return out
}

// Close tears the session down: cancels every pending growth timer, clears
// placements and returns all entities to Dormant so a later session starts
// from a clean catalog.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range c.order {
		e := c.entities[id]
		if e.TimerHandle != 0 {
			c.scheduler.Cancel(e.TimerHandle)
			e.TimerHandle = 0
		}
		if e.Placement != 0 {
			c.renderer.RemoveAsset(e.Placement)
			e.Placement = 0
		}
		e.State = domain.StateDormant
	}
	c.selected = ""
}

// timerFired adapts scheduler completions to OnTimerFired. Stale or rejected
// completions are already handled there.
func (c *Controller) timerFired(id string, handle domain.TimerHandle) {
	_ = c.OnTimerFired(id, handle)
}

func (c *Controller) emitStateChanged(id string, previous, current domain.State) {
	c.logger.Info("state transition",
		log.String("entity", id),
		log.String("from", previous.String()),
		log.String("to", current.String()),
	)
	if c.emitter != nil {
		c.emitter.OnEntityStateChanged(id, previous, current)
	}
}
