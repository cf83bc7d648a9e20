// Package storage implements the Storage Backend (spec.md §4.1): an
// abstract keyed store for MemoryEntry with two concrete flavors — a
// SQLite row-store with indexed columns, and a single-document JSON
// store for small deployments. Both are safe for concurrent readers
// and serialize writers.
package storage

import (
	"context"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// Query narrows list_all() by the fields spec.md §4.1 names. Zero
// values mean "don't filter on this field".
type Query struct {
	Category   string
	EntityType string
	EntityID   string
	Tags       []string
	Key        string
}

// Backend is the abstract keyed store every Memory Module sits on top
// of. Implementations must support concurrent readers and
// single-writer consistency, and must be forward-only, idempotent on
// schema migration.
type Backend interface {
	Create(ctx context.Context, entry *types.MemoryEntry) error
	Read(ctx context.Context, id string) (*types.MemoryEntry, error)
	Update(ctx context.Context, entry *types.MemoryEntry) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]types.MemoryEntry, error)
	Query(ctx context.Context, q Query) ([]types.MemoryEntry, error)
	Close() error
}
