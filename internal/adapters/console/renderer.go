// Package console implements the renderer port as a terminal stand-in for a
// 3D placement surface.
package console

import (
	"context"
	"math"
	"sync"

	"github.com/verdant-labs/grove/internal/domain"
	"github.com/verdant-labs/grove/internal/ports"
	"github.com/verdant-labs/grove/pkg/log"
)

// Renderer places assets on a one-dimensional strip of slots. Hit-testing
// maps a point's X coordinate to the nearest slot index, so taps can be
// simulated without any scene geometry.
type Renderer struct {
	mu     sync.Mutex
	next   domain.PlacementHandle
	slots  []slot
	logger log.Logger
}

type slot struct {
	handle   domain.PlacementHandle
	entityID string
	assetRef string
	active   bool
}

// NewRenderer creates an empty console rendering surface.
func NewRenderer(logger log.Logger) *Renderer {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Renderer{logger: logger}
}

// PlaceAsset assigns the asset the first free slot and returns its handle.
func (r *Renderer) PlaceAsset(ctx context.Context, entityID, assetRef string) (domain.PlacementHandle, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	r.next++
	handle := r.next
	idx := -1
	for i := range r.slots {
		if !r.slots[i].active {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.slots = append(r.slots, slot{})
		idx = len(r.slots) - 1
	}
	r.slots[idx] = slot{handle: handle, entityID: entityID, assetRef: assetRef, active: true}
	r.mu.Unlock()

	r.logger.Info("placed asset",
		log.String("entity", entityID),
		log.String("asset", assetRef),
		log.Int("slot", idx),
	)
	return handle, nil
}

// RemoveAsset frees the slot holding the placement. Unknown handles are a no-op.
func (r *Renderer) RemoveAsset(handle domain.PlacementHandle) {
	r.mu.Lock()
	var removed *slot
	for i := range r.slots {
		if r.slots[i].active && r.slots[i].handle == handle {
			r.slots[i].active = false
			removed = &r.slots[i]
			break
		}
	}
	r.mu.Unlock()

	if removed != nil {
		r.logger.Info("removed asset",
			log.String("entity", removed.entityID),
			log.String("asset", removed.assetRef),
		)
	}
}

// HitTest resolves pt to the entity occupying the slot nearest pt.X.
func (r *Renderer) HitTest(pt domain.Point) (string, bool) {
	idx := int(math.Round(pt.X))

	r.mu.Lock()
	defer r.mu.Unlock()
	if idx < 0 || idx >= len(r.slots) || !r.slots[idx].active {
		return "", false
	}
	return r.slots[idx].entityID, true
}

// Ensure Renderer implements the port.
var _ ports.Renderer = (*Renderer)(nil)
