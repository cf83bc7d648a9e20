package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkTextShortContentReturnsSingleChunk(t *testing.T) {
	c := NewChunker()
	chunks := c.ChunkText("A short sentence.")
	require.Len(t, chunks, 1)
	require.Equal(t, "A short sentence.", chunks[0].Content)
}

func TestChunkTextEmptyReturnsNil(t *testing.T) {
	c := NewChunker()
	require.Nil(t, c.ChunkText(""))
	require.Nil(t, c.ChunkText("   "))
}

func TestChunkTextLongContentOverlapsAtSentenceBoundaries(t *testing.T) {
	c := NewChunkerWithConfig(200, 40)
	sentence := "This is one sentence of sample filler text for chunking tests. "
	content := strings.Repeat(sentence, 20)

	chunks := c.ChunkText(content)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		require.NotEmpty(t, chunk.Content)
		require.Equal(t, i, chunk.Index)
	}
}

func TestFindSentenceBoundaryPrefersRightmostMatch(t *testing.T) {
	text := "First sentence. Second sentence. Third sentence continues here"
	pos := findSentenceBoundary(text, 0, len(text))
	require.Equal(t, strings.Index(text, "Third"), pos)
}

func TestFindSentenceBoundaryFallsBackToEnd(t *testing.T) {
	text := "no punctuation at all just words"
	pos := findSentenceBoundary(text, 0, len(text))
	require.Equal(t, len(text), pos)
}
