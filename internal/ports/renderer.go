package ports

import (
	"context"

	"github.com/verdant-labs/grove/internal/domain"
)

// Renderer is the rendering/placement collaborator. Implementations own all
// geometry and scene state; the lifecycle core only requests placements and
// resolves taps through it.
//
// PlaceAsset receives the owning entity id alongside the asset reference so
// that later hit-tests can be resolved back to an entity without the renderer
// inspecting lifecycle state.
type Renderer interface {
	// PlaceAsset resolves assetRef and places it for entityID.
	// Returns a handle for later removal, or an error if the asset cannot
	// be loaded. The core never mutates entity state on failure.
	PlaceAsset(ctx context.Context, entityID, assetRef string) (domain.PlacementHandle, error)

	// RemoveAsset removes a previously placed asset. Removing an unknown
	// or already removed handle is a no-op.
	RemoveAsset(handle domain.PlacementHandle)

	// HitTest resolves a screen point to the entity whose placed asset it
	// hits. Returns false if the point hits nothing.
	HitTest(pt domain.Point) (string, bool)
}
