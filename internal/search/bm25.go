package search

import (
	"context"
	"math"
	"sort"
	"strings"
)

// Okapi BM25 parameters, the usual defaults.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// bm25Backend ranks whitespace-tokenized lecture content. It needs no
// embeddings, so it is the last resort before the substring fast path
// alone.
type bm25Backend struct {
	corpus Corpus
}

func NewBM25Backend(corpus Corpus) Backend {
	return &bm25Backend{corpus: corpus}
}

func (b *bm25Backend) Name() string { return BackendBM25 }

func (b *bm25Backend) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	lectures, err := b.corpus.Lectures(ctx)
	if err != nil {
		return nil, err
	}
	var docs []Lecture
	var tokenized [][]string
	for _, lec := range lectures {
		tokens := tokenize(lec.Content)
		if len(tokens) == 0 {
			continue
		}
		docs = append(docs, lec)
		tokenized = append(tokenized, tokens)
	}
	if len(docs) == 0 {
		return nil, ErrBackendUnavailable
	}

	idx := newBM25Index(tokenized)
	queryTokens := tokenize(query)

	hits := make([]Hit, 0, len(docs))
	for i, lec := range docs {
		score := idx.score(queryTokens, i)
		if score <= 0 {
			continue
		}
		hits = append(hits, toHit(lec, score))
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

type bm25Index struct {
	docFreq    map[string]int
	termFreqs  []map[string]int
	docLens    []int
	avgDocLen  float64
	totalDocs  int
}

func newBM25Index(docs [][]string) *bm25Index {
	idx := &bm25Index{
		docFreq:   make(map[string]int),
		termFreqs: make([]map[string]int, len(docs)),
		docLens:   make([]int, len(docs)),
		totalDocs: len(docs),
	}
	var totalLen int
	for i, tokens := range docs {
		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		idx.termFreqs[i] = tf
		idx.docLens[i] = len(tokens)
		totalLen += len(tokens)
		for t := range tf {
			idx.docFreq[t]++
		}
	}
	idx.avgDocLen = float64(totalLen) / float64(len(docs))
	return idx
}

func (idx *bm25Index) score(queryTokens []string, doc int) float64 {
	var score float64
	lenNorm := 1 - bm25B + bm25B*float64(idx.docLens[doc])/idx.avgDocLen
	for _, t := range queryTokens {
		tf := float64(idx.termFreqs[doc][t])
		if tf == 0 {
			continue
		}
		df := float64(idx.docFreq[t])
		idf := math.Log(1 + (float64(idx.totalDocs)-df+0.5)/(df+0.5))
		score += idf * tf * (bm25K1 + 1) / (tf + bm25K1*lenNorm)
	}
	return score
}
