package search

import (
	"context"
	"sort"
	"strings"
)

// substringBackend is the always-available fast path: case-insensitive
// containment over title and content, scored by weighted occurrence
// count relative to content length.
type substringBackend struct {
	corpus Corpus
}

func NewSubstringBackend(corpus Corpus) Backend {
	return &substringBackend{corpus: corpus}
}

func (b *substringBackend) Name() string { return BackendSimple }

func (b *substringBackend) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	lectures, err := b.corpus.Lectures(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	hits := make([]Hit, 0, k)
	for _, lec := range lectures {
		title := strings.ToLower(lec.Title)
		content := strings.ToLower(lec.Content)
		if !strings.Contains(title, needle) && !strings.Contains(content, needle) {
			continue
		}
		titleMatches := strings.Count(title, needle)
		contentMatches := strings.Count(content, needle)
		contentLen := len(lec.Content)
		if contentLen < 1 {
			contentLen = 1
		}
		// Title matches count double; long documents are penalized.
		score := float64(titleMatches*2+contentMatches) / float64(contentLen) * 100
		if score > 100 {
			score = 100
		}
		hits = append(hits, toHit(lec, score))
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}
