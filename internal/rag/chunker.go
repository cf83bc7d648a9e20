// Package rag implements the RAG Service (spec.md §4.3): sentence-aware
// document chunking, a BM25 relevance index over the resulting chunks,
// and prompt enrichment built on top of the Memory Module.
package rag

import (
	"regexp"
	"strings"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
	boundaryLookback    = 100
	boundaryLookahead   = 100
)

// Chunker splits document content into overlapping, sentence-aligned
// pieces. Grounded on planner/services/chunker.go's sliding-window
// approach, reconciled with rag_service.py's chunk_document: the
// boundary search spans 100 characters on both sides of the nominal
// cut point and also recognizes paragraph breaks, not just sentence
// punctuation.
type Chunker struct {
	ChunkSize int
	Overlap   int
}

// NewChunker builds a Chunker with the default 1000/200 character
// size/overlap, the values rag_service.py hardcodes.
func NewChunker() *Chunker {
	return &Chunker{ChunkSize: defaultChunkSize, Overlap: defaultChunkOverlap}
}

// NewChunkerWithConfig builds a Chunker with custom size/overlap,
// falling back to defaults on non-positive input.
func NewChunkerWithConfig(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = defaultChunkOverlap
	}
	return &Chunker{ChunkSize: chunkSize, Overlap: overlap}
}

var boundaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.\s`),
	regexp.MustCompile(`!\s`),
	regexp.MustCompile(`\?\s`),
	regexp.MustCompile(`\n\n`),
	regexp.MustCompile(`\n`),
}

// ChunkText splits content into overlapping RawChunks, breaking at the
// last sentence/paragraph boundary found within ±100 characters of the
// nominal chunk-size cut point.
func (c *Chunker) ChunkText(content string) []RawChunk {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	var chunks []RawChunk
	start := 0
	index := 0

	for start < len(content) {
		end := start + c.ChunkSize
		if end < len(content) {
			searchStart := start
			if end-boundaryLookback > searchStart {
				searchStart = end - boundaryLookback
			}
			searchEnd := len(content)
			if end+boundaryLookahead < searchEnd {
				searchEnd = end + boundaryLookahead
			}
			if boundary := findSentenceBoundary(content, searchStart, searchEnd); boundary > start {
				end = boundary
			}
		} else {
			end = len(content)
		}

		piece := strings.TrimSpace(content[start:end])
		if piece != "" {
			chunks = append(chunks, RawChunk{Content: piece, Index: index})
			index++
		}

		if end >= len(content) {
			break
		}
		start = end - c.Overlap
		if start < 0 {
			start = 0
		}
	}

	return chunks
}

// RawChunk is the chunker's output before it is wrapped into a
// types.DocumentChunk and persisted by the Service.
type RawChunk struct {
	Content string
	Index   int
}

// findSentenceBoundary returns the furthest sentence/paragraph boundary
// found in content[start:end], or end if none exists. Mirrors
// rag_service.py's _find_sentence_boundary: every pattern is searched
// and the last (rightmost) match across all of them wins.
func findSentenceBoundary(content string, start, end int) int {
	if start < 0 {
		start = 0
	}
	if end > len(content) {
		end = len(content)
	}
	if start >= end {
		return end
	}
	search := content[start:end]

	best := -1
	for _, pattern := range boundaryPatterns {
		for _, loc := range pattern.FindAllStringIndex(search, -1) {
			if pos := start + loc[1]; pos > best {
				best = pos
			}
		}
	}
	if best == -1 {
		return end
	}
	return best
}
