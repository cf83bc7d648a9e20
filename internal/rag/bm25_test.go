package rag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBm25RankPrefersDocumentWithMoreQueryTermHits(t *testing.T) {
	docs := [][]string{
		tokenize("the quick brown fox jumps over the lazy dog"),
		tokenize("a document about screenshots and renaming screenshot files"),
	}
	query := tokenize("rename screenshot files")

	ranked := bm25Rank(query, docs)
	require.Len(t, ranked, 2)
	require.Equal(t, 1, ranked[0].index)
	require.Greater(t, ranked[0].score, ranked[1].score)
}

func TestBm25ScoreZeroWhenNoOverlap(t *testing.T) {
	docTerms := tokenize("completely unrelated content here")
	score := bm25Score(tokenize("screenshot"), docTerms, map[string]int{}, 1)
	require.Equal(t, 0.0, score)
}

func TestTokenizeLowercasesAndSplitsWords(t *testing.T) {
	require.Equal(t, []string{"hello", "world", "123"}, tokenize("Hello, World! 123"))
}
