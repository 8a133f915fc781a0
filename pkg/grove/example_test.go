package grove_test

import (
	"context"
	"fmt"

	"github.com/verdant-labs/grove/pkg/grove"
)

// ExampleNew demonstrates how to embed grove in your application.
func ExampleNew() {
	// Create with the built-in catalog and a fixed seed so growth
	// durations are reproducible.
	g, err := grove.New(grove.Config{Seed: 42})
	if err != nil {
		fmt.Printf("failed to create grove: %v\n", err)
		return
	}

	ctx := context.Background()
	if err := g.Start(ctx); err != nil {
		fmt.Printf("failed to start: %v\n", err)
		return
	}

	// Select a plant and confirm its placement; the growth timer starts.
	_ = g.Select(ctx, "sunflower")
	_ = g.Placed("sunflower")

	state, _ := g.State("sunflower")
	fmt.Printf("sunflower is %s\n", state)

	// Stop cancels pending timers and resets the session.
	_ = g.Stop()

	// Output: sunflower is Growing
}

// Example_withEventHandler demonstrates how to receive grove events.
func Example_withEventHandler() {
	handler := &myEventHandler{}

	g, err := grove.New(grove.Config{Seed: 42},
		grove.WithEventHandler(handler),
	)
	if err != nil {
		fmt.Printf("failed to create grove: %v\n", err)
		return
	}

	_ = g // Drive the session...
}

// myEventHandler implements grove.EventHandler for event notifications.
type myEventHandler struct {
	grove.BaseEventHandler // Embed for no-op defaults
}

func (h *myEventHandler) OnEntityStateChanged(event grove.EntityStateChangedEvent) {
	fmt.Printf("%s: %s -> %s\n", event.EntityID, event.Previous, event.Current)
}
