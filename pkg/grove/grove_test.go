package grove

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/verdant-labs/grove/internal/domain"
)

// recordingHandler collects events and signals state changes on a channel.
type recordingHandler struct {
	mu       sync.Mutex
	changes  []EntityStateChangedEvent
	failures []AssetFailureEvent
	catalogs []CatalogChangedEvent
	ch       chan EntityStateChangedEvent
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{ch: make(chan EntityStateChangedEvent, 64)}
}

func (h *recordingHandler) OnEntityStateChanged(ev EntityStateChangedEvent) {
	h.mu.Lock()
	h.changes = append(h.changes, ev)
	h.mu.Unlock()
	h.ch <- ev
}

func (h *recordingHandler) OnAssetFailure(ev AssetFailureEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failures = append(h.failures, ev)
}

func (h *recordingHandler) OnCatalogChanged(ev CatalogChangedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.catalogs = append(h.catalogs, ev)
}

func (h *recordingHandler) waitFor(t *testing.T, id string, state State) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-h.ch:
			if ev.EntityID == id && ev.Current == state {
				return
			}
		case <-deadline:
			t.Fatalf("no %s transition for %s in time", state, id)
		}
	}
}

func (h *recordingHandler) stateChanges() []EntityStateChangedEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]EntityStateChangedEvent{}, h.changes...)
}

// fastCatalog returns a single-plant catalog with millisecond growth so the
// real scheduler can be used.
func fastCatalog() Catalog {
	return Catalog{
		GrowthMin: 5 * time.Millisecond,
		GrowthMax: 5 * time.Millisecond,
		Plants: []Plant{
			{ID: "fern", Name: "Fern", InitialAsset: "fern_sprout", BloomedAsset: "fern_frond"},
		},
	}
}

func TestNew_Defaults(t *testing.T) {
	g, err := New(Config{Seed: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	snap := g.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("got %d entities, want 3 from the built-in catalog", len(snap))
	}
	for _, st := range snap {
		if st.State != StateDormant {
			t.Errorf("entity %s state = %s, want Dormant", st.ID, st.State)
		}
		if st.GrowthDuration < 30*time.Second || st.GrowthDuration > 180*time.Second {
			t.Errorf("entity %s duration %v outside [30s, 180s]", st.ID, st.GrowthDuration)
		}
	}
}

func TestNew_SeedDeterministic(t *testing.T) {
	a, err := New(Config{Seed: 42})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b, err := New(Config{Seed: 42})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sa, sb := a.Snapshot(), b.Snapshot()
	for i := range sa {
		if sa[i].GrowthDuration != sb[i].GrowthDuration {
			t.Errorf("entity %s: durations %v and %v differ for same seed",
				sa[i].ID, sa[i].GrowthDuration, sb[i].GrowthDuration)
		}
	}
}

func TestNew_InvalidCatalog(t *testing.T) {
	bad := Catalog{
		GrowthMin: 10 * time.Second,
		GrowthMax: time.Second,
		Plants:    []Plant{{ID: "fern", Name: "Fern", InitialAsset: "a", BloomedAsset: "b"}},
	}
	if _, err := New(Config{Catalog: bad, Seed: 1}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestStartStop(t *testing.T) {
	g, err := New(Config{Catalog: fastCatalog(), Seed: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	// Operations before Start are refused.
	if err := g.Select(ctx, "fern"); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Select() before Start error = %v, want ErrNotRunning", err)
	}
	if err := g.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Stop() before Start error = %v, want ErrNotRunning", err)
	}

	if err := g.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !g.Running() {
		t.Error("Running() = false after Start")
	}
	if err := g.Start(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() error = %v, want ErrAlreadyRunning", err)
	}

	if err := g.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if g.Running() {
		t.Error("Running() = true after Stop")
	}
	if err := g.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("second Stop() error = %v, want ErrNotRunning", err)
	}
}

func TestSession_FullPath(t *testing.T) {
	handler := newRecordingHandler()
	g, err := New(Config{Catalog: fastCatalog(), Seed: 1}, WithEventHandler(handler))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := g.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer g.Stop()

	if err := g.Select(ctx, "fern"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got := g.Selected(); got != "fern" {
		t.Errorf("Selected() = %q, want fern", got)
	}
	if err := g.Placed("fern"); err != nil {
		t.Fatalf("Placed() error = %v", err)
	}
	if st, _ := g.State("fern"); st != StateGrowing {
		t.Errorf("state = %s, want Growing", st)
	}

	handler.waitFor(t, "fern", StateExpired)

	if err := g.Tap(ctx, "fern"); err != nil {
		t.Fatalf("Tap() error = %v", err)
	}
	if st, _ := g.State("fern"); st != StateBloomed {
		t.Errorf("state = %s, want Bloomed", st)
	}

	want := []struct{ prev, cur State }{
		{StateDormant, StateGrowing},
		{StateGrowing, StateExpired},
		{StateExpired, StateBloomed},
	}
	got := handler.stateChanges()
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Previous != w.prev || got[i].Current != w.cur {
			t.Errorf("event %d = %s->%s, want %s->%s",
				i, got[i].Previous, got[i].Current, w.prev, w.cur)
		}
	}
}

func TestStop_ResetsEntities(t *testing.T) {
	g, err := New(Config{Catalog: fastCatalog(), Seed: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := g.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := g.Placed("fern"); err != nil {
		t.Fatalf("Placed() error = %v", err)
	}
	if err := g.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if st, _ := g.State("fern"); st != StateDormant {
		t.Errorf("state after Stop = %s, want Dormant", st)
	}

	// The same grove can run a fresh session.
	if err := g.Start(ctx); err != nil {
		t.Fatalf("restart Start() error = %v", err)
	}
	defer g.Stop()
	if err := g.Placed("fern"); err != nil {
		t.Errorf("Placed() after restart error = %v", err)
	}
}

func TestUnknownEntity(t *testing.T) {
	g, err := New(Config{Catalog: fastCatalog(), Seed: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()
	if err := g.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer g.Stop()

	if err := g.Select(ctx, "cactus"); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("Select() error = %v, want ErrUnknownEntity", err)
	}
	if err := g.Placed("cactus"); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("Placed() error = %v, want ErrUnknownEntity", err)
	}
	if err := g.Tap(ctx, "cactus"); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("Tap() error = %v, want ErrUnknownEntity", err)
	}
	if _, err := g.State("cactus"); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("State() error = %v, want ErrUnknownEntity", err)
	}
}

// hitRenderer is a noop renderer whose hit-test resolves one fixed point.
type hitRenderer struct {
	noopRenderer
	pt Point
	id string
}

func (r *hitRenderer) HitTest(pt Point) (string, bool) {
	if pt == r.pt {
		return r.id, true
	}
	return "", false
}

func TestTapAt(t *testing.T) {
	handler := newRecordingHandler()
	renderer := &hitRenderer{pt: Point{X: 1, Y: 2}, id: "fern"}
	g, err := New(Config{Catalog: fastCatalog(), Seed: 1},
		WithRenderer(renderer),
		WithEventHandler(handler),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()
	if err := g.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer g.Stop()

	if err := g.Placed("fern"); err != nil {
		t.Fatalf("Placed() error = %v", err)
	}
	handler.waitFor(t, "fern", StateExpired)

	if err := g.TapAt(ctx, 9, 9); err != nil {
		t.Errorf("TapAt() miss error = %v, want nil", err)
	}
	if st, _ := g.State("fern"); st != StateExpired {
		t.Errorf("state after miss = %s, want Expired", st)
	}

	if err := g.TapAt(ctx, 1, 2); err != nil {
		t.Fatalf("TapAt() error = %v", err)
	}
	if st, _ := g.State("fern"); st != StateBloomed {
		t.Errorf("state after hit = %s, want Bloomed", st)
	}
}

func TestConvertState(t *testing.T) {
	tests := []struct {
		in   domain.State
		want State
	}{
		{domain.StateDormant, StateDormant},
		{domain.StateGrowing, StateGrowing},
		{domain.StateExpired, StateExpired},
		{domain.StateBloomed, StateBloomed},
	}
	for _, tt := range tests {
		if got := convertState(tt.in); got != tt.want {
			t.Errorf("convertState(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
