package search

import (
	"context"

	"github.com/google/uuid"

	"github.com/uniquest/uniquest-backend/internal/clients/vectorindex"
)

// vectorBackend queries the remote vector index. Point IDs are lecture
// UUIDs, so matches resolve back to rows through the corpus.
type vectorBackend struct {
	store    vectorindex.Store
	embedder Embedder
	corpus   Corpus
}

func NewVectorBackend(store vectorindex.Store, embedder Embedder, corpus Corpus) Backend {
	return &vectorBackend{store: store, embedder: embedder, corpus: corpus}
}

func (b *vectorBackend) Name() string { return BackendVector }

func (b *vectorBackend) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	if b.store == nil || b.embedder == nil {
		return nil, ErrBackendUnavailable
	}
	vecs, err := b.embedder.Embed(ctx, []string{query})
	if err != nil || len(vecs) == 0 {
		return nil, ErrBackendUnavailable
	}
	matches, err := b.store.Query(ctx, vecs[0], k)
	if err != nil {
		return nil, ErrBackendUnavailable
	}
	if len(matches) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(matches))
	scores := make(map[uuid.UUID]float64, len(matches))
	for _, m := range matches {
		id, err := uuid.Parse(m.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
		scores[id] = m.Score
	}
	lectures, err := b.corpus.LecturesByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]Lecture, len(lectures))
	for _, lec := range lectures {
		byID[lec.ID] = lec
	}

	// Preserve the index ordering; skip ids with no surviving row.
	hits := make([]Hit, 0, len(ids))
	for _, id := range ids {
		lec, ok := byID[id]
		if !ok {
			continue
		}
		hits = append(hits, toHit(lec, scores[id]))
	}
	return hits, nil
}
