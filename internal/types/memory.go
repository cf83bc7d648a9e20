// Package types holds the data model shared across the planning,
// execution and memory subsystems: MemoryEntry, ConversationMemory,
// ExecutionMemory, DocumentChunk, Plan/PlanStep and their verification
// and outcome companions.
package types

import "time"

// MemoryEntry is the single persisted unit the Storage Backend and
// Memory Module operate on. value is stored as an opaque JSON document;
// callers decode it into whatever shape their category implies.
type MemoryEntry struct {
	ID         string            `json:"id"`
	Category   string            `json:"category"`
	Key        string            `json:"key"`
	Value      map[string]any    `json:"value"`
	EntityType string            `json:"entity_type"`
	EntityID   string            `json:"entity_id,omitempty"`
	Tags       []string          `json:"tags"`
	Timestamp  time.Time         `json:"timestamp"`
	Provenance map[string]string `json:"provenance"`

	// Embedding is an optional dense vector alongside the BM25-indexable
	// text, carried for future hybrid retrieval. Unused by the BM25 path.
	Embedding []float32 `json:"embedding,omitempty"`
}

// HasTag reports whether tag is present on the entry.
func (m *MemoryEntry) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ConversationMemory is one user turn: the request, the assistant's
// response, and every execution that turn produced.
type ConversationMemory struct {
	TurnID            string            `json:"turn_id"`
	Timestamp         time.Time         `json:"timestamp"`
	UserMessage       string            `json:"user_message"`
	AssistantResponse string            `json:"assistant_response"`
	ExecutionHistory  []ExecutionMemory `json:"execution_history"`
	ContextTags       []string          `json:"context_tags"`
	SessionID         string            `json:"session_id,omitempty"`
	Embedding         []float32         `json:"embedding,omitempty"`
}

// ExecutionMemory records a single code-generation or action outcome
// in enough detail for later reference resolution ("delete that file").
type ExecutionMemory struct {
	ExecutionID     string    `json:"execution_id"`
	Timestamp       time.Time `json:"timestamp"`
	UserRequest     string    `json:"user_request"`
	Description     string    `json:"description"`
	CodeGenerated   string    `json:"code_generated,omitempty"`
	FileLocations   []string  `json:"file_locations"`
	Output          string    `json:"output,omitempty"`
	Success         bool      `json:"success"`
	Tags            []string  `json:"tags"`
	ExecutionTimeMs float64   `json:"execution_time_ms,omitempty"`
	ErrorMessage    string    `json:"error_message,omitempty"`

	// SandboxRunID links back to the SandboxResult that produced this
	// execution, when the code path was used.
	SandboxRunID string `json:"sandbox_run_id,omitempty"`
}

// Memory categories used throughout the persistence layer.
const (
	CategoryPreferences    = "preferences"
	CategoryTasks          = "tasks"
	CategoryConversations  = "conversations"
	CategoryExecutions     = "executions"
	CategoryKnowledgeChunk = "knowledge_chunks"
)

// MemoryType enumerates the knowledge-chunk classification used by RAG.
type MemoryType string

const (
	MemoryTypeToolKnowledge  MemoryType = "tool_knowledge"
	MemoryTypeTaskHistory    MemoryType = "task_history"
	MemoryTypeUserPreference MemoryType = "user_preference"
)

// DocumentChunk is a sentence-boundary-aligned, overlapping slice of a
// document indexed for BM25 retrieval. Persisted as a MemoryEntry under
// CategoryKnowledgeChunk, tagged [memory_type, "source:<doc>"].
type DocumentChunk struct {
	ChunkID    string         `json:"chunk_id"`
	Content    string         `json:"content"`
	ChunkIndex int            `json:"chunk_index"`
	SourceDoc  string         `json:"source_doc"`
	MemoryType MemoryType     `json:"memory_type"`
	Metadata   map[string]any `json:"metadata"`
	CreatedAt  time.Time      `json:"created_at"`
}
