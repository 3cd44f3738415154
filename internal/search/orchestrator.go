package search

import (
	"context"
	"errors"
	"strings"

	"github.com/uniquest/uniquest-backend/internal/clients/vectorindex"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
)

const (
	MinTopK     = 1
	MaxTopK     = 20
	DefaultTopK = 5
)

// ClampTopK bounds a requested result count. Zero means "default".
func ClampTopK(k int) int {
	if k == 0 {
		return DefaultTopK
	}
	if k < MinTopK {
		return MinTopK
	}
	if k > MaxTopK {
		return MaxTopK
	}
	return k
}

// Orchestrator tries backends in priority order and reports which one
// served the query. The order is fixed at construction from the index
// info artifact; a degraded backend is skipped, not retried per query.
type Orchestrator struct {
	log      *logger.Logger
	backends []Backend
}

func NewOrchestrator(log *logger.Logger, backends ...Backend) *Orchestrator {
	names := make([]string, 0, len(backends))
	for _, b := range backends {
		names = append(names, b.Name())
	}
	o := &Orchestrator{
		log:      log.With("service", "SearchOrchestrator"),
		backends: backends,
	}
	o.log.Info("Search backends configured", "order", strings.Join(names, ","))
	return o
}

// BuildBackends assembles the backend priority list from the index info
// and the wiring that actually exists. The substring fast path always
// comes first; embedding-based backends only join when the artifact says
// embeddings exist and an embedder is wired.
func BuildBackends(info IndexInfo, corpus Corpus, embedder Embedder, store vectorindex.Store) []Backend {
	backends := []Backend{NewSubstringBackend(corpus)}
	if info.Backend == BackendVector && store != nil && embedder != nil {
		backends = append(backends, NewVectorBackend(store, embedder, corpus))
	}
	if info.HasEmbeddings && embedder != nil {
		backends = append(backends, NewDatabaseBackend(corpus, embedder))
	}
	backends = append(backends, NewBM25Backend(corpus))
	return backends
}

// Search returns the hits and the name of the backend that produced
// them. An empty query yields no results without touching any backend.
func (o *Orchestrator) Search(ctx context.Context, query string, topK int) ([]Hit, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, "", nil
	}
	k := ClampTopK(topK)

	for _, b := range o.backends {
		hits, err := b.Search(ctx, query, k)
		if err != nil {
			if errors.Is(err, ErrBackendUnavailable) {
				o.log.Debug("Search backend unavailable", "backend", b.Name())
				continue
			}
			o.log.Warn("Search backend failed", "backend", b.Name(), "error", err)
			continue
		}
		if len(hits) > 0 {
			return hits, b.Name(), nil
		}
	}
	return []Hit{}, "", nil
}
