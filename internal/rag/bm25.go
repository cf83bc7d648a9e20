package rag

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// BM25 parameters, copied verbatim from rag_service.py's
// _compute_bm25_score — these constants are load-bearing per spec.md
// §4.3 and must not drift.
const (
	bm25K1        = 1.5
	bm25B         = 0.75
	bm25AvgDocLen = 200.0
)

var tokenPattern = regexp.MustCompile(`\w+`)

// tokenize lowercases and splits text into word tokens, matching
// rag_service.py's \b\w+\b tokenizer.
func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// scoredChunk pairs an indexed document with its BM25 score for one query.
type scoredChunk struct {
	index int
	score float64
}

// bm25Rank scores every document in docs (already-tokenized, lowercased
// content) against queryTerms and returns indices sorted by descending
// score. Documents scoring zero are still included — callers that want
// a relevance floor filter the result themselves.
func bm25Rank(queryTerms []string, docs [][]string) []scoredChunk {
	numDocs := len(docs)
	docFreq := map[string]int{}
	for _, doc := range docs {
		seen := map[string]bool{}
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	results := make([]scoredChunk, numDocs)
	for i, doc := range docs {
		results[i] = scoredChunk{index: i, score: bm25Score(queryTerms, doc, docFreq, numDocs)}
	}

	sort.SliceStable(results, func(a, b int) bool { return results[a].score > results[b].score })
	return results
}

// bm25Score computes the BM25 relevance of one document's tokens
// against queryTerms, using docFreq/numDocs for IDF. Formula and
// constants are grounded on rag_service.py's _compute_bm25_score.
func bm25Score(queryTerms, docTerms []string, docFreq map[string]int, numDocs int) float64 {
	termFreq := map[string]int{}
	for _, t := range docTerms {
		termFreq[t]++
	}
	docLen := float64(len(docTerms))

	var score float64
	for _, term := range queryTerms {
		tf, ok := termFreq[term]
		if !ok {
			continue
		}
		df := float64(docFreq[term])
		idf := math.Log((float64(numDocs)-df+0.5)/(df+0.5) + 1.0)

		numerator := float64(tf) * (bm25K1 + 1)
		denominator := float64(tf) + bm25K1*(1-bm25B+bm25B*(docLen/bm25AvgDocLen))
		score += idf * (numerator / denominator)
	}
	return score
}
