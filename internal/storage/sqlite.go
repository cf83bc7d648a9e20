package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/apperrors"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

// SQLiteBackend is the indexed row-store flavor of Backend, grounded on
// the teacher's pkg/database/sqlite.go: a single *sql.DB, PRAGMA
// foreign_keys on, migrations run at open time.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (creating if necessary) a SQLite-backed store
// at path and brings its schema up to date.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.NewStorageError("mkdir", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, apperrors.NewStorageError("open", err)
	}
	db.SetMaxOpenConns(1) // single-writer consistency; readers serialize through the one connection

	if err := db.Ping(); err != nil {
		return nil, apperrors.NewStorageError("ping", err)
	}
	if err := runMigrations(db); err != nil {
		return nil, apperrors.NewStorageError("migrate", err)
	}

	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) Close() error { return s.db.Close() }

func (s *SQLiteBackend) Create(ctx context.Context, e *types.MemoryEntry) error {
	tagsJSON, err := json.Marshal(e.Tags)
	if err != nil {
		return apperrors.NewStorageError("marshal tags", err)
	}
	valueJSON, err := json.Marshal(e.Value)
	if err != nil {
		return apperrors.NewStorageError("marshal value", err)
	}
	provJSON, err := json.Marshal(e.Provenance)
	if err != nil {
		return apperrors.NewStorageError("marshal provenance", err)
	}
	var embeddingJSON sql.NullString
	if len(e.Embedding) > 0 {
		b, err := json.Marshal(e.Embedding)
		if err != nil {
			return apperrors.NewStorageError("marshal embedding", err)
		}
		embeddingJSON = sql.NullString{String: string(b), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO memory_entries (id, category, key, value, entity_type, entity_id, tags, timestamp, provenance, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Category, e.Key, string(valueJSON), e.EntityType, e.EntityID, string(tagsJSON), e.Timestamp, string(provJSON), embeddingJSON)
	if err != nil {
		return apperrors.NewStorageError("insert", err)
	}
	return nil
}

func (s *SQLiteBackend) Read(ctx context.Context, id string) (*types.MemoryEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, category, key, value, entity_type, entity_id, tags, timestamp, provenance, embedding
		FROM memory_entries WHERE id = ?
	`, id)
	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("read", err)
	}
	return entry, nil
}

func (s *SQLiteBackend) Update(ctx context.Context, e *types.MemoryEntry) error {
	tagsJSON, _ := json.Marshal(e.Tags)
	valueJSON, _ := json.Marshal(e.Value)
	provJSON, _ := json.Marshal(e.Provenance)
	var embeddingJSON sql.NullString
	if len(e.Embedding) > 0 {
		b, _ := json.Marshal(e.Embedding)
		embeddingJSON = sql.NullString{String: string(b), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE memory_entries
		SET category = ?, key = ?, value = ?, entity_type = ?, entity_id = ?, tags = ?, timestamp = ?, provenance = ?, embedding = ?
		WHERE id = ?
	`, e.Category, e.Key, string(valueJSON), e.EntityType, e.EntityID, string(tagsJSON), e.Timestamp, string(provJSON), embeddingJSON, e.ID)
	if err != nil {
		return apperrors.NewStorageError("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError("update rows affected", err)
	}
	if n == 0 {
		return apperrors.NewStorageError("update", fmt.Errorf("no entry with id %s", e.ID))
	}
	return nil
}

func (s *SQLiteBackend) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM memory_entries WHERE id = ?`, id); err != nil {
		return apperrors.NewStorageError("delete", err)
	}
	return nil
}

func (s *SQLiteBackend) ListAll(ctx context.Context) ([]types.MemoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, key, value, entity_type, entity_id, tags, timestamp, provenance, embedding
		FROM memory_entries ORDER BY timestamp ASC
	`)
	if err != nil {
		return nil, apperrors.NewStorageError("list_all", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *SQLiteBackend) Query(ctx context.Context, q Query) ([]types.MemoryEntry, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if q.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, q.Category)
	}
	if q.EntityType != "" {
		clauses = append(clauses, "entity_type = ?")
		args = append(args, q.EntityType)
	}
	if q.EntityID != "" {
		clauses = append(clauses, "entity_id = ?")
		args = append(args, q.EntityID)
	}
	if q.Key != "" {
		clauses = append(clauses, "key = ?")
		args = append(args, q.Key)
	}

	sqlText := fmt.Sprintf(`
		SELECT id, category, key, value, entity_type, entity_id, tags, timestamp, provenance, embedding
		FROM memory_entries WHERE %s ORDER BY timestamp ASC
	`, strings.Join(clauses, " AND "))

	rows, err := s.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("query", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	if len(q.Tags) == 0 {
		return entries, nil
	}

	// Tag membership is queried by substring/side-table semantics per
	// spec.md §6; here a JSON array column, filtered in-process after
	// the indexed columns have already narrowed the candidate set.
	filtered := entries[:0]
	for _, e := range entries {
		for _, want := range q.Tags {
			if e.HasTag(want) {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*types.MemoryEntry, error) {
	var e types.MemoryEntry
	var tagsJSON, valueJSON, provJSON string
	var embeddingJSON sql.NullString
	var ts time.Time

	if err := row.Scan(&e.ID, &e.Category, &e.Key, &valueJSON, &e.EntityType, &e.EntityID, &tagsJSON, &ts, &provJSON, &embeddingJSON); err != nil {
		return nil, err
	}
	e.Timestamp = ts

	if err := json.Unmarshal([]byte(valueJSON), &e.Value); err != nil {
		return nil, fmt.Errorf("unmarshal value: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	if err := json.Unmarshal([]byte(provJSON), &e.Provenance); err != nil {
		return nil, fmt.Errorf("unmarshal provenance: %w", err)
	}
	if embeddingJSON.Valid {
		if err := json.Unmarshal([]byte(embeddingJSON.String), &e.Embedding); err != nil {
			return nil, fmt.Errorf("unmarshal embedding: %w", err)
		}
	}
	return &e, nil
}

func scanEntries(rows *sql.Rows) ([]types.MemoryEntry, error) {
	var out []types.MemoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("scan", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
