package domain

import "time"

// TimerHandle identifies one scheduled growth timer. Handles are unique per
// scheduling call so that stale completions can be detected after a re-arm.
// The zero handle means no timer.
type TimerHandle uint64

// PlacementHandle identifies one asset placed on the rendering surface.
// The zero handle means not placed.
type PlacementHandle uint64

// Point is a 2D screen coordinate used to resolve taps via hit-testing.
type Point struct {
	X float64
	Y float64
}

// Entity is the record for one placeable growing item.
//
// ID, DisplayName, the asset references and GrowthDuration are fixed at
// construction. State, TimerHandle and Placement are owned exclusively by the
// lifecycle controller; TimerHandle is non-zero if and only if the entity is
// in StateGrowing.
type Entity struct {
	// ID is the opaque unique identifier, assigned at creation.
	ID string

	// DisplayName is the human-readable label.
	DisplayName string

	// InitialAsset references the visual representation placed on selection.
	InitialAsset string

	// BloomedAsset references the terminal representation placed on bloom.
	BloomedAsset string

	// State is the current lifecycle state.
	State State

	// GrowthDuration is the time between placement and expiry, drawn at
	// construction from the catalog's configured range.
	GrowthDuration time.Duration

	// TimerHandle references the pending growth timer, if any.
	TimerHandle TimerHandle

	// Placement references the currently rendered asset, if any.
	Placement PlacementHandle
}

// NewEntity creates a dormant entity with a fixed growth duration.
func NewEntity(id, displayName, initialAsset, bloomedAsset string, growth time.Duration) *Entity {
	return &Entity{
		ID:             id,
		DisplayName:    displayName,
		InitialAsset:   initialAsset,
		BloomedAsset:   bloomedAsset,
		State:          StateDormant,
		GrowthDuration: growth,
	}
}
