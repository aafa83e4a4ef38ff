package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/skyhookui/skyhook/pkg/observability"
	"github.com/skyhookui/skyhook/pkg/scenario"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a requested scenario does not exist.
	ErrNotFound = errors.New("scenario not found")
)

// Record is a stored scenario with its server-assigned identity.
type Record struct {
	ID        string            `json:"id" bson:"_id"`
	Scenario  scenario.Scenario `json:"scenario" bson:"scenario"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for scenario storage backends.
type Store interface {
	// Get retrieves a record by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores a record, assigning a fresh ID and CreatedAt when the ID is
	// empty. UpdatedAt is always refreshed.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// List returns all records ordered by ID.
	List(ctx context.Context) ([]*Record, error)

	// Close releases backend resources.
	Close() error
}

// sortRecords orders records by ID for deterministic listings.
func sortRecords(recs []*Record) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
}

// prepare assigns identity and timestamps before a write.
func prepare(rec *Record) {
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
		rec.CreatedAt = now
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
}

// =============================================================================
// Instrumentation
// =============================================================================

// Instrument wraps a store so every operation emits store hooks tagged with
// the backend name.
func Instrument(backend string, next Store) Store {
	return &instrumented{backend: backend, next: next}
}

type instrumented struct {
	backend string
	next    Store
}

func (i *instrumented) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := i.next.Get(ctx, id)
	observability.Store().OnGet(ctx, i.backend, err == nil)
	return rec, err
}

func (i *instrumented) Put(ctx context.Context, rec *Record) error {
	err := i.next.Put(ctx, rec)
	if err == nil {
		observability.Store().OnPut(ctx, i.backend)
	}
	return err
}

func (i *instrumented) Delete(ctx context.Context, id string) error {
	err := i.next.Delete(ctx, id)
	if err == nil {
		observability.Store().OnDelete(ctx, i.backend)
	}
	return err
}

func (i *instrumented) List(ctx context.Context) ([]*Record, error) {
	return i.next.List(ctx)
}

func (i *instrumented) Close() error { return i.next.Close() }
