package services

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/uniquest/uniquest-backend/internal/clients/openai"
	"github.com/uniquest/uniquest-backend/internal/clients/vectorindex"
	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/search"
	"github.com/uniquest/uniquest-backend/internal/types"
)

const (
	embedBatchSize   = 32
	embedConcurrency = 4
)

// IndexerService builds lecture embeddings and records the resulting
// search capability in the index info artifact. Without an embedder the
// run still succeeds and the artifact says bm25.
type IndexerService interface {
	BuildIndex(ctx context.Context, tx *gorm.DB, infoPath string) (search.IndexInfo, error)
}

type indexerService struct {
	db          *gorm.DB
	log         *logger.Logger
	lectureRepo repos.LectureRepo
	embedder    openai.Client
	store       vectorindex.Store
}

// NewIndexerService accepts nil embedder and store; each absence
// downgrades the recorded backend.
func NewIndexerService(
	db *gorm.DB,
	log *logger.Logger,
	lectureRepo repos.LectureRepo,
	embedder openai.Client,
	store vectorindex.Store,
) IndexerService {
	return &indexerService{
		db:          db,
		log:         log.With("service", "IndexerService"),
		lectureRepo: lectureRepo,
		embedder:    embedder,
		store:       store,
	}
}

func (s *indexerService) BuildIndex(ctx context.Context, tx *gorm.DB, infoPath string) (search.IndexInfo, error) {
	lectures, err := s.lectureRepo.GetAll(ctx, tx)
	if err != nil {
		return search.IndexInfo{}, err
	}
	if len(lectures) == 0 {
		return search.IndexInfo{}, fmt.Errorf("no lectures to index")
	}

	info := search.IndexInfo{Backend: search.BackendBM25, NLectures: len(lectures)}
	if s.embedder == nil {
		s.log.Warn("No embedder configured; text search only")
		return info, search.SaveIndexInfo(infoPath, info)
	}

	embeddings, err := s.embedAll(ctx, lectures)
	if err != nil {
		return search.IndexInfo{}, err
	}

	for i, lec := range lectures {
		raw, err := json.Marshal(embeddings[i])
		if err != nil {
			return search.IndexInfo{}, err
		}
		lec.Embedding = datatypes.JSON(raw)
		if err := s.lectureRepo.Update(ctx, tx, lec); err != nil {
			return search.IndexInfo{}, err
		}
	}
	info.HasEmbeddings = true
	info.ModelName = s.embedder.Model()
	info.Backend = search.BackendDatabase

	if s.store != nil {
		if err := s.pushToIndex(ctx, lectures, embeddings); err != nil {
			s.log.Warn("Vector index upsert failed; database backend only", "error", err)
		} else {
			info.Backend = search.BackendVector
		}
	}

	s.log.Info("Lecture index built",
		"backend", info.Backend,
		"n_lectures", info.NLectures,
		"model", info.ModelName,
	)
	return info, search.SaveIndexInfo(infoPath, info)
}

// embedAll runs batches concurrently; results land by batch offset so
// embeddings[i] always belongs to lectures[i].
func (s *indexerService) embedAll(ctx context.Context, lectures []*types.Lecture) ([][]float64, error) {
	embeddings := make([][]float64, len(lectures))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)
	for start := 0; start < len(lectures); start += embedBatchSize {
		start := start
		end := start + embedBatchSize
		if end > len(lectures) {
			end = len(lectures)
		}
		g.Go(func() error {
			texts := make([]string, 0, end-start)
			for _, lec := range lectures[start:end] {
				texts = append(texts, lec.ContentText)
			}
			vecs, err := s.embedder.Embed(gctx, texts)
			if err != nil {
				return fmt.Errorf("embed batch %d-%d: %w", start, end, err)
			}
			for i, vec := range vecs {
				out := make([]float64, len(vec))
				for j, v := range vec {
					out[j] = float64(v)
				}
				embeddings[start+i] = out
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return embeddings, nil
}

func (s *indexerService) pushToIndex(ctx context.Context, lectures []*types.Lecture, embeddings [][]float64) error {
	if err := s.store.EnsureCollection(ctx); err != nil {
		return err
	}
	vectors := make([]vectorindex.Vector, 0, len(lectures))
	for i, lec := range lectures {
		values := make([]float32, len(embeddings[i]))
		for j, v := range embeddings[i] {
			values[j] = float32(v)
		}
		vectors = append(vectors, vectorindex.Vector{
			ID:     lec.ID.String(),
			Values: values,
			Payload: map[string]any{
				"title":     lec.Title,
				"course_id": lec.CourseID.String(),
			},
		})
	}
	return s.store.Upsert(ctx, vectors)
}
