package observability

import (
	"context"
	"testing"
	"time"
)

type countingPositionHooks struct {
	applies int
	changes int
}

func (h *countingPositionHooks) OnApplyStart(int)                    { h.applies++ }
func (h *countingPositionHooks) OnApplyComplete(bool, time.Duration) {}
func (h *countingPositionHooks) OnPositionChange()                   { h.changes++ }

type countingStoreHooks struct {
	gets, puts, deletes int
}

func (h *countingStoreHooks) OnGet(context.Context, string, bool) { h.gets++ }
func (h *countingStoreHooks) OnPut(context.Context, string)       { h.puts++ }
func (h *countingStoreHooks) OnDelete(context.Context, string)    { h.deletes++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Must not panic.
	Position().OnApplyStart(3)
	Position().OnApplyComplete(false, time.Millisecond)
	Position().OnPositionChange()
	Store().OnGet(context.Background(), "memory", true)
	Store().OnPut(context.Background(), "memory")
	Store().OnDelete(context.Background(), "memory")
}

func TestSetPositionHooks(t *testing.T) {
	defer Reset()

	h := &countingPositionHooks{}
	SetPositionHooks(h)

	Position().OnApplyStart(2)
	Position().OnPositionChange()
	Position().OnPositionChange()

	if h.applies != 1 {
		t.Errorf("applies = %d, want 1", h.applies)
	}
	if h.changes != 2 {
		t.Errorf("changes = %d, want 2", h.changes)
	}
}

func TestSetStoreHooks(t *testing.T) {
	defer Reset()

	h := &countingStoreHooks{}
	SetStoreHooks(h)

	ctx := context.Background()
	Store().OnGet(ctx, "redis", false)
	Store().OnPut(ctx, "redis")
	Store().OnDelete(ctx, "redis")

	if h.gets != 1 || h.puts != 1 || h.deletes != 1 {
		t.Errorf("unexpected counts: %+v", h)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	defer Reset()

	h := &countingPositionHooks{}
	SetPositionHooks(h)
	SetPositionHooks(nil)

	Position().OnApplyStart(1)
	if h.applies != 1 {
		t.Error("nil registration should not replace existing hooks")
	}
}

func TestReset(t *testing.T) {
	h := &countingPositionHooks{}
	SetPositionHooks(h)
	Reset()

	Position().OnApplyStart(1)
	if h.applies != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
