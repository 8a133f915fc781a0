package grove

// EntityStateChangedEvent is emitted once per accepted lifecycle transition.
// Consumers should be idempotent to duplicate delivery, though the controller
// never emits duplicates for one transition.
type EntityStateChangedEvent struct {
	EntityID string
	Previous State
	Current  State
}

// AssetFailureEvent is emitted when the renderer cannot resolve an asset
// reference. The entity keeps its prior state so the operation can be retried.
type AssetFailureEvent struct {
	EntityID string
	AssetRef string
	Err      error
}

// CatalogChangedEvent is emitted by the catalog watcher when the catalog file
// changes on disk. The running session keeps its entity set; the change takes
// effect on the next session.
type CatalogChangedEvent struct {
	Path string
}

// EventHandler receives grove events. Handlers are called synchronously from
// the goroutine processing the triggering event and must not block.
type EventHandler interface {
	OnEntityStateChanged(EntityStateChangedEvent)
	OnAssetFailure(AssetFailureEvent)
	OnCatalogChanged(CatalogChangedEvent)
}

// BaseEventHandler provides no-op implementations of every EventHandler
// method. Embed it to implement only the events you care about.
type BaseEventHandler struct{}

func (BaseEventHandler) OnEntityStateChanged(EntityStateChangedEvent) {}

func (BaseEventHandler) OnAssetFailure(AssetFailureEvent) {}

func (BaseEventHandler) OnCatalogChanged(CatalogChangedEvent) {}
