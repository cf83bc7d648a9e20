// Package memory implements the Memory Module (spec.md §4.2): semantic
// CRUD helpers layered over a storage.Backend, plus conversation and
// execution specializations used by the RAG service and the reference
// resolver.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/apperrors"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/storage"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// Module wraps a storage.Backend with the semantic operations spec.md
// §4.2 names. Lookups never error on a missing entry — they return a
// zero value/empty slice; only backend faults surface as StorageError.
type Module struct {
	backend storage.Backend
}

// New builds a Module over backend.
func New(backend storage.Backend) *Module {
	return &Module{backend: backend}
}

// CreateOpts carries the optional fields create_memory accepts.
type CreateOpts struct {
	EntityID string
	Tags     []string
	Module   string
	TaskID   string
}

// CreateMemory persists a new MemoryEntry and returns its id.
func (m *Module) CreateMemory(ctx context.Context, category, key string, value map[string]any, entityType string, opts CreateOpts) (string, error) {
	now := time.Now().UTC()
	entry := &types.MemoryEntry{
		ID:         uuid.NewString(),
		Category:   category,
		Key:        key,
		Value:      value,
		EntityType: entityType,
		EntityID:   opts.EntityID,
		Tags:       opts.Tags,
		Timestamp:  now,
		Provenance: map[string]string{
			"module":     opts.Module,
			"task_id":    opts.TaskID,
			"created_at": now.Format(time.RFC3339),
			"updated_at": now.Format(time.RFC3339),
		},
	}
	if err := m.backend.Create(ctx, entry); err != nil {
		return "", err
	}
	return entry.ID, nil
}

// GetMemory looks up an entry by id; nil, nil means "not found".
func (m *Module) GetMemory(ctx context.Context, id string) (*types.MemoryEntry, error) {
	return m.backend.Read(ctx, id)
}

// UpdateMemory mutates value/tags on an existing entry, stamping
// updated_at and refreshing provenance. This is the only mutation path;
// spec.md §3 forbids any other write to an existing entry's identity.
func (m *Module) UpdateMemory(ctx context.Context, id string, value map[string]any, tags []string) error {
	entry, err := m.backend.Read(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return apperrors.NewStorageError("update_memory", fmt.Errorf("no entry with id %s", id))
	}
	entry.Value = value
	if tags != nil {
		entry.Tags = tags
	}
	if entry.Provenance == nil {
		entry.Provenance = map[string]string{}
	}
	entry.Provenance["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	return m.backend.Update(ctx, entry)
}

// DeleteMemory removes an entry by id.
func (m *Module) DeleteMemory(ctx context.Context, id string) error {
	return m.backend.Delete(ctx, id)
}

// GetMemoriesByCategory returns every entry whose category is category.
func (m *Module) GetMemoriesByCategory(ctx context.Context, category string) ([]types.MemoryEntry, error) {
	return m.backend.Query(ctx, storage.Query{Category: category})
}

// GetMemoriesByEntity returns every entry for (entityType, entityID).
func (m *Module) GetMemoriesByEntity(ctx context.Context, entityType, entityID string) ([]types.MemoryEntry, error) {
	return m.backend.Query(ctx, storage.Query{EntityType: entityType, EntityID: entityID})
}

// GetMemoriesByTags returns every entry carrying any of tags.
func (m *Module) GetMemoriesByTags(ctx context.Context, tags []string) ([]types.MemoryEntry, error) {
	return m.backend.Query(ctx, storage.Query{Tags: tags})
}

// GetMemoryByKey returns the first entry with the given key, or nil.
func (m *Module) GetMemoryByKey(ctx context.Context, key string) (*types.MemoryEntry, error) {
	entries, err := m.backend.Query(ctx, storage.Query{Key: key})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// ListAll returns every entry in the backend.
func (m *Module) ListAll(ctx context.Context) ([]types.MemoryEntry, error) {
	return m.backend.ListAll(ctx)
}

// ClearAll deletes every entry. Used only by tests and explicit purges.
func (m *Module) ClearAll(ctx context.Context) error {
	entries, err := m.backend.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := m.backend.Delete(ctx, e.ID); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown closes the underlying backend.
func (m *Module) Shutdown() error {
	return m.backend.Close()
}
