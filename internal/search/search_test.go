package search

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/uniquest/uniquest-backend/internal/platform/logger"
)

type memoryCorpus struct {
	lectures []Lecture
}

func (c *memoryCorpus) Lectures(ctx context.Context) ([]Lecture, error) {
	return c.lectures, nil
}

func (c *memoryCorpus) LecturesByID(ctx context.Context, ids []uuid.UUID) ([]Lecture, error) {
	byID := make(map[uuid.UUID]Lecture, len(c.lectures))
	for _, l := range c.lectures {
		byID[l.ID] = l
	}
	var out []Lecture
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func testCorpus() *memoryCorpus {
	return &memoryCorpus{lectures: []Lecture{
		{ID: uuid.New(), Title: "Введение в графы", Content: "Графы состоят из вершин и рёбер. Графы применяются повсюду."},
		{ID: uuid.New(), Title: "Сортировки", Content: "Быстрая сортировка и сортировка слиянием."},
		{ID: uuid.New(), Title: "Динамическое программирование", Content: "Разбиение задачи на подзадачи."},
	}}
}

func testLog(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("logger: %v", err)
	}
	return log
}

func TestSubstringBackendAlwaysFindsTitleSubstring(t *testing.T) {
	corpus := testCorpus()
	b := NewSubstringBackend(corpus)
	hits, err := b.Search(context.Background(), "графы", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("exact title substring returned no hits")
	}
	if hits[0].Title != "Введение в графы" {
		t.Fatalf("top hit = %q", hits[0].Title)
	}
	if hits[0].Score <= 0 || hits[0].Score > 100 {
		t.Fatalf("score %v outside (0,100]", hits[0].Score)
	}
}

func TestSubstringBackendRespectsK(t *testing.T) {
	corpus := &memoryCorpus{}
	for i := 0; i < 10; i++ {
		corpus.lectures = append(corpus.lectures, Lecture{ID: uuid.New(), Title: "алгоритмы", Content: "алгоритмы"})
	}
	hits, err := NewSubstringBackend(corpus).Search(context.Background(), "алгоритмы", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(hits))
	}
}

func TestBM25RanksMatchingDocumentFirst(t *testing.T) {
	corpus := testCorpus()
	b := NewBM25Backend(corpus)
	hits, err := b.Search(context.Background(), "сортировка слиянием", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("no hits")
	}
	if hits[0].Title != "Сортировки" {
		t.Fatalf("top hit = %q, want Сортировки", hits[0].Title)
	}
}

func TestBM25EmptyCorpusIsUnavailable(t *testing.T) {
	b := NewBM25Backend(&memoryCorpus{})
	if _, err := b.Search(context.Background(), "что угодно", 5); err != ErrBackendUnavailable {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestMakeSnippet(t *testing.T) {
	short := "короткий текст"
	if got := MakeSnippet(short); got != short {
		t.Fatalf("short content altered: %q", got)
	}
	long := strings.Repeat("в", 300)
	got := MakeSnippet(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("long snippet missing ellipsis: %q", got)
	}
	if n := len([]rune(got)); n != 203 {
		t.Fatalf("snippet rune length = %d, want 203", n)
	}
}

func TestClampTopK(t *testing.T) {
	cases := map[int]int{0: 5, -3: 1, 1: 1, 7: 7, 20: 20, 50: 20}
	for in, want := range cases {
		if got := ClampTopK(in); got != want {
			t.Fatalf("ClampTopK(%d) = %d, want %d", in, got, want)
		}
	}
}

type scriptedBackend struct {
	name string
	hits []Hit
	err  error
}

func (b *scriptedBackend) Name() string { return b.name }
func (b *scriptedBackend) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	return b.hits, b.err
}

func TestOrchestratorFallsThroughToFirstServingBackend(t *testing.T) {
	hit := Hit{ID: uuid.New(), Title: "Лекция", Score: 1}
	o := NewOrchestrator(testLog(t),
		&scriptedBackend{name: "a", err: ErrBackendUnavailable},
		&scriptedBackend{name: "b"},
		&scriptedBackend{name: "c", hits: []Hit{hit}},
		&scriptedBackend{name: "d", hits: []Hit{{Title: "never reached"}}},
	)
	hits, backend, err := o.Search(context.Background(), "лекция", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if backend != "c" {
		t.Fatalf("served by %q, want c", backend)
	}
	if len(hits) != 1 || hits[0].Title != "Лекция" {
		t.Fatalf("hits = %v", hits)
	}
}

func TestOrchestratorEmptyQueryShortCircuits(t *testing.T) {
	o := NewOrchestrator(testLog(t), &scriptedBackend{name: "a", hits: []Hit{{Title: "x"}}})
	hits, backend, err := o.Search(context.Background(), "   ", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 || backend != "" {
		t.Fatalf("empty query reached a backend: %v %q", hits, backend)
	}
}

func TestIndexInfoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index_info.json")

	missing := LoadIndexInfo(path)
	if missing.Backend != BackendBM25 || missing.HasEmbeddings {
		t.Fatalf("missing artifact fallback = %+v", missing)
	}

	want := IndexInfo{Backend: BackendVector, NLectures: 12, HasEmbeddings: true, ModelName: "text-embedding-3-small"}
	if err := SaveIndexInfo(path, want); err != nil {
		t.Fatalf("SaveIndexInfo: %v", err)
	}
	if got := LoadIndexInfo(path); got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestBuildBackendsOrder(t *testing.T) {
	corpus := testCorpus()

	// No embeddings at all: substring then bm25.
	plain := BuildBackends(IndexInfo{Backend: BackendBM25}, corpus, nil, nil)
	if len(plain) != 2 || plain[0].Name() != BackendSimple || plain[1].Name() != BackendBM25 {
		t.Fatalf("plain order = %v", backendNames(plain))
	}

	// Embeddings stored in rows but no remote index.
	embedded := BuildBackends(IndexInfo{Backend: BackendDatabase, HasEmbeddings: true}, corpus, &nopEmbedder{}, nil)
	want := []string{BackendSimple, BackendDatabase, BackendBM25}
	if got := backendNames(embedded); !equalStrings(got, want) {
		t.Fatalf("embedded order = %v, want %v", got, want)
	}
}

type nopEmbedder struct{}

func (nopEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	out := make([][]float32, len(inputs))
	for i := range out {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func backendNames(backends []Backend) []string {
	names := make([]string, 0, len(backends))
	for _, b := range backends {
		names = append(names, b.Name())
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
