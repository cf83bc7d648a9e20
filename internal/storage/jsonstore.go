package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/apperrors"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// JSONBackend is the single-document JSON flavor of Backend for small
// deployments: the whole store is one file, guarded by an RWMutex so
// reads run concurrently and writes serialize, matching spec.md §4.1.
// No third-party embedded-KV/document-store library appears anywhere in
// the retrieval pack (_examples), so this flavor is implemented
// directly on encoding/json + os — the standard-library exception
// called out in SPEC_FULL.md and DESIGN.md.
type JSONBackend struct {
	mu   sync.RWMutex
	path string
	docs map[string]types.MemoryEntry
}

// NewJSONBackend opens (creating if necessary) a single-file JSON store
// at path.
func NewJSONBackend(path string) (*JSONBackend, error) {
	b := &JSONBackend{path: path, docs: map[string]types.MemoryEntry{}}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.NewStorageError("mkdir", err)
		}
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := b.flushLocked(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, apperrors.NewStorageError("read store file", err)
	default:
		if len(data) > 0 {
			if err := json.Unmarshal(data, &b.docs); err != nil {
				return nil, apperrors.NewStorageError("unmarshal store file", err)
			}
		}
	}
	return b, nil
}

func (b *JSONBackend) Close() error { return nil }

func (b *JSONBackend) flushLocked() error {
	data, err := json.MarshalIndent(b.docs, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("marshal store file", err)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperrors.NewStorageError("write store file", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return apperrors.NewStorageError("rename store file", err)
	}
	return nil
}

func (b *JSONBackend) Create(ctx context.Context, e *types.MemoryEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[e.ID] = *e
	return b.flushLocked()
}

func (b *JSONBackend) Read(ctx context.Context, id string) (*types.MemoryEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.docs[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (b *JSONBackend) Update(ctx context.Context, e *types.MemoryEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.docs[e.ID]; !ok {
		return apperrors.NewStorageError("update", os.ErrNotExist)
	}
	b.docs[e.ID] = *e
	return b.flushLocked()
}

func (b *JSONBackend) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.docs, id)
	return b.flushLocked()
}

func (b *JSONBackend) ListAll(ctx context.Context) ([]types.MemoryEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]types.MemoryEntry, 0, len(b.docs))
	for _, e := range b.docs {
		out = append(out, e)
	}
	return out, nil
}

func (b *JSONBackend) Query(ctx context.Context, q Query) ([]types.MemoryEntry, error) {
	all, _ := b.ListAll(ctx)
	out := all[:0]
	for _, e := range all {
		if q.Category != "" && e.Category != q.Category {
			continue
		}
		if q.EntityType != "" && e.EntityType != q.EntityType {
			continue
		}
		if q.EntityID != "" && e.EntityID != q.EntityID {
			continue
		}
		if q.Key != "" && e.Key != q.Key {
			continue
		}
		if len(q.Tags) > 0 {
			matched := false
			for _, want := range q.Tags {
				if e.HasTag(want) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, e)
	}
	return out, nil
}
