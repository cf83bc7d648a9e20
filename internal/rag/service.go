package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/memory"
	"github.com/martin-indestries/windows-ai-assistant-sub000/internal/types"
)

const defaultSnippetLen = 150

// RetrievalResult is one scored chunk returned from a query, paired
// with a highlighted snippet for prompt injection.
type RetrievalResult struct {
	Chunk   types.DocumentChunk
	Score   float64
	Snippet string
}

// Service is the RAG Service (spec.md §4.3): chunking, storage via the
// Memory Module, and BM25 retrieval/prompt enrichment. Grounded on
// rag_service.py's RAGMemoryService.
type Service struct {
	memory  *memory.Module
	chunker *Chunker
	cache   Cache
}

// Option configures a Service at construction time.
type Option func(*Service)

// WithCache attaches an optional snippet cache (e.g. Redis-backed) in
// front of Retrieve. A nil cache (the zero value, or omitting this
// option) disables caching entirely.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithChunker overrides the default chunk size/overlap.
func WithChunker(c *Chunker) Option {
	return func(s *Service) { s.chunker = c }
}

// NewService builds a Service over mem, using NewChunker's defaults
// unless overridden with WithChunker.
func NewService(mem *memory.Module, opts ...Option) *Service {
	s := &Service{memory: mem, chunker: NewChunker()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChunkDocument splits content into DocumentChunks tagged with
// sourceDoc/memoryType, without persisting them.
func (s *Service) ChunkDocument(content, sourceDoc string, memoryType types.MemoryType, metadata map[string]any) []types.DocumentChunk {
	raw := s.chunker.ChunkText(content)
	if len(raw) == 0 {
		return nil
	}
	now := time.Now().UTC()
	chunks := make([]types.DocumentChunk, 0, len(raw))
	for _, rc := range raw {
		chunks = append(chunks, types.DocumentChunk{
			ChunkID:    uuid.NewString(),
			Content:    rc.Content,
			ChunkIndex: rc.Index,
			SourceDoc:  sourceDoc,
			MemoryType: memoryType,
			Metadata:   metadata,
			CreatedAt:  now,
		})
	}
	return chunks
}

// StoreChunks persists chunks as knowledge_chunks MemoryEntry records,
// tagged with the memory type and "source:<doc>" per rag_service.py's
// store_chunks, and returns the assigned memory ids.
func (s *Service) StoreChunks(ctx context.Context, chunks []types.DocumentChunk, tags []string) ([]string, error) {
	ids := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		chunkTags := append(append([]string{}, tags...), string(chunk.MemoryType), "source:"+chunk.SourceDoc)
		value := map[string]any{
			"chunk_id":    chunk.ChunkID,
			"content":     chunk.Content,
			"chunk_index": chunk.ChunkIndex,
			"source_doc":  chunk.SourceDoc,
			"memory_type": string(chunk.MemoryType),
			"metadata":    chunk.Metadata,
			"created_at":  chunk.CreatedAt.Format(time.RFC3339),
		}
		id, err := s.memory.CreateMemory(ctx, types.CategoryKnowledgeChunk, "chunk_"+chunk.ChunkID, value, "knowledge_chunk", memory.CreateOpts{
			EntityID: chunk.ChunkID,
			Tags:     chunkTags,
			Module:   "rag_service",
		})
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// IngestDocument chunks and stores content in one call.
func (s *Service) IngestDocument(ctx context.Context, content, sourceDoc string, memoryType types.MemoryType, metadata map[string]any, tags []string) ([]string, error) {
	chunks := s.ChunkDocument(content, sourceDoc, memoryType, metadata)
	return s.StoreChunks(ctx, chunks, tags)
}

// Retrieve returns the top-k chunks most relevant to query, optionally
// filtered by memory type and/or tag. Scoring is BM25 over the
// candidate set returned by the category filter — the same narrowing
// rag_service.py's retrieve performs before scoring.
func (s *Service) Retrieve(ctx context.Context, query string, memoryTypes []string, tags []string, topK int) ([]RetrievalResult, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey(query, memoryTypes, tags, topK)); ok {
			return cached, nil
		}
	}

	entries, err := s.memory.GetMemoriesByCategory(ctx, types.CategoryKnowledgeChunk)
	if err != nil {
		return nil, err
	}

	if len(memoryTypes) > 0 || len(tags) > 0 {
		filtered := entries[:0]
		for _, e := range entries {
			if len(memoryTypes) > 0 && !hasAny(e.Tags, memoryTypes) {
				continue
			}
			if len(tags) > 0 && !hasAny(e.Tags, tags) {
				continue
			}
			filtered = append(filtered, e)
		}
		entries = filtered
	}

	if len(entries) == 0 {
		return nil, nil
	}

	chunks := make([]types.DocumentChunk, 0, len(entries))
	for _, e := range entries {
		chunk, ok := chunkFromValue(e.Value)
		if !ok {
			continue
		}
		chunks = append(chunks, chunk)
	}

	queryTerms := tokenize(query)
	docs := make([][]string, len(chunks))
	for i, c := range chunks {
		docs[i] = tokenize(c.Content)
	}

	ranked := bm25Rank(queryTerms, docs)
	if topK > 0 && topK < len(ranked) {
		ranked = ranked[:topK]
	}

	results := make([]RetrievalResult, 0, len(ranked))
	for _, r := range ranked {
		chunk := chunks[r.index]
		results = append(results, RetrievalResult{
			Chunk:   chunk,
			Score:   r.score,
			Snippet: createSnippet(chunk.Content, queryTerms, defaultSnippetLen),
		})
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey(query, memoryTypes, tags, topK), results)
	}
	return results, nil
}

// EnrichPrompt appends up to topK retrieved snippets to basePrompt,
// matching rag_service.py's enrich_prompt.
func (s *Service) EnrichPrompt(ctx context.Context, basePrompt, query string, memoryTypes []string, topK int) (string, error) {
	results, err := s.Retrieve(ctx, query, memoryTypes, nil, topK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return basePrompt, nil
	}

	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\nRelevant context:\n")
	for _, r := range results {
		b.WriteString(fmt.Sprintf("- (%s) %s\n", r.Chunk.SourceDoc, r.Snippet))
	}
	return b.String(), nil
}

func chunkFromValue(v map[string]any) (types.DocumentChunk, bool) {
	chunk := types.DocumentChunk{}
	id, ok := v["chunk_id"].(string)
	if !ok {
		return chunk, false
	}
	content, ok := v["content"].(string)
	if !ok {
		return chunk, false
	}
	chunk.ChunkID = id
	chunk.Content = content
	if idx, ok := v["chunk_index"].(float64); ok {
		chunk.ChunkIndex = int(idx)
	}
	if s, ok := v["source_doc"].(string); ok {
		chunk.SourceDoc = s
	}
	if s, ok := v["memory_type"].(string); ok {
		chunk.MemoryType = types.MemoryType(s)
	}
	if m, ok := v["metadata"].(map[string]any); ok {
		chunk.Metadata = m
	}
	if ts, ok := v["created_at"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			chunk.CreatedAt = parsed
		}
	}
	return chunk, true
}

func hasAny(haystack, needles []string) bool {
	set := map[string]bool{}
	for _, h := range haystack {
		set[h] = true
	}
	for _, n := range needles {
		if set[n] {
			return true
		}
	}
	return false
}

// createSnippet centers a window of snippetLen characters on the first
// query-term occurrence, matching rag_service.py's _create_snippet.
func createSnippet(content string, queryTerms []string, snippetLen int) string {
	lower := strings.ToLower(content)
	firstMatch := len(content)
	for _, term := range queryTerms {
		if idx := strings.Index(lower, term); idx >= 0 && idx < firstMatch {
			firstMatch = idx
		}
	}

	if firstMatch == len(content) {
		if len(content) <= snippetLen {
			return content
		}
		return content[:snippetLen] + "..."
	}

	start := firstMatch - snippetLen/2
	if start < 0 {
		start = 0
	}
	end := start + snippetLen
	if end > len(content) {
		end = len(content)
	}

	snippet := content[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet += "..."
	}
	return snippet
}

func cacheKey(query string, memoryTypes, tags []string, topK int) string {
	return fmt.Sprintf("%s|%v|%v|%d", query, memoryTypes, tags, topK)
}
