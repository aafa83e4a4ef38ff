package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/skyhookui/skyhook/pkg/geom"
	"github.com/skyhookui/skyhook/pkg/observability"
	"github.com/skyhookui/skyhook/pkg/overlay"
	"github.com/skyhookui/skyhook/pkg/scenario"
)

func testRecord(name string) *Record {
	return &Record{
		Scenario: scenario.Scenario{
			Name:     name,
			Viewport: geom.Size{Width: 100, Height: 100},
			Origin:   scenario.RectSpec{Top: 10, Left: 10, Width: 20, Height: 20},
			Overlay:  geom.Size{Width: 30, Height: 30},
			Positions: []overlay.Position{
				{OriginX: overlay.HStart, OriginY: overlay.VBottom,
					OverlayX: overlay.HStart, OverlayY: overlay.VTop},
			},
		},
	}
}

// testStoreContract runs the backend-independent semantics against a store.
func testStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); err != ErrNotFound {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); err != ErrNotFound {
		t.Errorf("Delete(missing) = %v, want ErrNotFound", err)
	}

	rec := testRecord("tooltip")
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() = %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Put must assign an ID")
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("Put must set timestamps")
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() = %v", err)
	}
	if got.Scenario.Name != "tooltip" {
		t.Errorf("got scenario %q, want tooltip", got.Scenario.Name)
	}

	// Update keeps the identity but refreshes UpdatedAt.
	created := rec.CreatedAt
	time.Sleep(time.Millisecond)
	rec.Scenario.Margin = 8
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put(update) = %v", err)
	}
	got, err = s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get(updated) = %v", err)
	}
	if got.Scenario.Margin != 8 {
		t.Error("update was not persisted")
	}
	if !got.CreatedAt.Equal(created) {
		t.Error("update must keep CreatedAt")
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Error("update must refresh UpdatedAt")
	}

	second := testRecord("menu")
	if err := s.Put(ctx, second); err != nil {
		t.Fatalf("Put(second) = %v", err)
	}
	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List() returned %d records, want 2", len(recs))
	}
	if recs[0].ID > recs[1].ID {
		t.Error("List must order by ID")
	}

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() = %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); err != ErrNotFound {
		t.Errorf("Get(deleted) = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStoreContract(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() = %v", err)
	}
	defer s.Close()
	testStoreContract(t, s)
}

func TestMemoryStoreIsolatesRecords(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rec := testRecord("tooltip")
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() = %v", err)
	}

	got, _ := s.Get(ctx, rec.ID)
	got.Scenario.Name = "mutated"

	again, _ := s.Get(ctx, rec.ID)
	if again.Scenario.Name != "tooltip" {
		t.Error("mutating a returned record must not affect the store")
	}
}

// countingStoreHooks counts store events for hook wiring tests.
type countingStoreHooks struct {
	mu            sync.Mutex
	gets, hits    int
	puts, deletes int
	lastBackend   string
}

func (h *countingStoreHooks) OnGet(_ context.Context, backend string, found bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gets++
	if found {
		h.hits++
	}
	h.lastBackend = backend
}

func (h *countingStoreHooks) OnPut(_ context.Context, backend string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.puts++
	h.lastBackend = backend
}

func (h *countingStoreHooks) OnDelete(_ context.Context, backend string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deletes++
	h.lastBackend = backend
}

func TestInstrumentEmitsHooks(t *testing.T) {
	hooks := &countingStoreHooks{}
	observability.SetStoreHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	s := Instrument("memory", NewMemoryStore())

	rec := testRecord("tooltip")
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() = %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); err != nil {
		t.Fatalf("Get() = %v", err)
	}
	_, _ = s.Get(ctx, "missing")
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() = %v", err)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.puts != 1 || hooks.deletes != 1 {
		t.Errorf("puts=%d deletes=%d, want 1/1", hooks.puts, hooks.deletes)
	}
	if hooks.gets != 2 || hooks.hits != 1 {
		t.Errorf("gets=%d hits=%d, want 2/1", hooks.gets, hooks.hits)
	}
	if hooks.lastBackend != "memory" {
		t.Errorf("backend = %q, want memory", hooks.lastBackend)
	}
}
