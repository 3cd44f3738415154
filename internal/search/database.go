package search

import (
	"context"
	"math"
	"sort"
)

// databaseBackend scores the query against per-lecture embeddings stored
// on the rows themselves, by cosine similarity. Used when embeddings
// exist but no remote vector index does.
type databaseBackend struct {
	corpus   Corpus
	embedder Embedder
}

func NewDatabaseBackend(corpus Corpus, embedder Embedder) Backend {
	return &databaseBackend{corpus: corpus, embedder: embedder}
}

func (b *databaseBackend) Name() string { return BackendDatabase }

func (b *databaseBackend) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	if b.embedder == nil {
		return nil, ErrBackendUnavailable
	}
	vecs, err := b.embedder.Embed(ctx, []string{query})
	if err != nil || len(vecs) == 0 {
		return nil, ErrBackendUnavailable
	}
	queryVec := make([]float64, len(vecs[0]))
	for i, v := range vecs[0] {
		queryVec[i] = float64(v)
	}

	lectures, err := b.corpus.Lectures(ctx)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, k)
	for _, lec := range lectures {
		if len(lec.Embedding) == 0 {
			continue
		}
		hits = append(hits, toHit(lec, cosine(lec.Embedding, queryVec)))
	}
	if len(hits) == 0 {
		return nil, ErrBackendUnavailable
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		denom = 1
	}
	return dot / denom
}
