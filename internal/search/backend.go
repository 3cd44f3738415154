package search

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Backend identifiers recorded in the index info artifact and reported
// on search responses.
const (
	BackendSimple   = "simple"
	BackendVector   = "vector"
	BackendDatabase = "database"
	BackendBM25     = "bm25"
)

// ErrBackendUnavailable signals a backend that cannot serve queries
// (missing index, no embedder, empty corpus). The orchestrator moves on
// to the next backend; it is never surfaced to a caller as a failure.
var ErrBackendUnavailable = errors.New("search backend unavailable")

// Lecture is the searchable view of a lecture row.
type Lecture struct {
	ID        uuid.UUID
	Title     string
	Content   string
	URL       string
	Embedding []float64
}

type Hit struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Snippet string    `json:"snippet"`
	URL     string    `json:"url,omitempty"`
	Score   float64   `json:"score"`
}

// Backend is one retrieval strategy. Implementations return their hits
// ordered by descending score, at most k of them.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, k int) ([]Hit, error)
}

// Corpus supplies lecture rows to the backends. The repo layer
// implements it; tests use an in-memory slice.
type Corpus interface {
	Lectures(ctx context.Context) ([]Lecture, error)
	LecturesByID(ctx context.Context, ids []uuid.UUID) ([]Lecture, error)
}

// Embedder encodes text into vectors. Queries must go through the same
// model the index was built with.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

const snippetLimit = 200

// MakeSnippet truncates lecture content for result payloads. Counted in
// runes so Cyrillic content is not cut mid-character.
func MakeSnippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLimit {
		return content
	}
	return string(runes[:snippetLimit]) + "..."
}

func toHit(l Lecture, score float64) Hit {
	return Hit{
		ID:      l.ID,
		Title:   l.Title,
		Snippet: MakeSnippet(l.Content),
		URL:     l.URL,
		Score:   score,
	}
}
