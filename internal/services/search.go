package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/search"
	"github.com/uniquest/uniquest-backend/internal/types"
)

// SearchResponse reports the serving backend alongside the hits so a
// degraded configuration is visible to callers.
type SearchResponse struct {
	Results []search.Hit `json:"results"`
	Backend string       `json:"backend"`
}

type SearchService interface {
	Search(ctx context.Context, query string, topK int) (*SearchResponse, error)
}

type searchService struct {
	log          *logger.Logger
	orchestrator *search.Orchestrator
}

func NewSearchService(log *logger.Logger, orchestrator *search.Orchestrator) SearchService {
	return &searchService{
		log:          log.With("service", "SearchService"),
		orchestrator: orchestrator,
	}
}

func (s *searchService) Search(ctx context.Context, query string, topK int) (*SearchResponse, error) {
	hits, backend, err := s.orchestrator.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	return &SearchResponse{Results: hits, Backend: backend}, nil
}

// lectureCorpus adapts the lecture repo to the search corpus contract.
type lectureCorpus struct {
	db   *gorm.DB
	repo repos.LectureRepo
}

func NewLectureCorpus(db *gorm.DB, repo repos.LectureRepo) search.Corpus {
	return &lectureCorpus{db: db, repo: repo}
}

func (c *lectureCorpus) Lectures(ctx context.Context) ([]search.Lecture, error) {
	rows, err := c.repo.GetAll(ctx, c.db)
	if err != nil {
		return nil, err
	}
	return toSearchLectures(rows), nil
}

func (c *lectureCorpus) LecturesByID(ctx context.Context, ids []uuid.UUID) ([]search.Lecture, error) {
	rows, err := c.repo.GetByIDs(ctx, c.db, ids)
	if err != nil {
		return nil, err
	}
	return toSearchLectures(rows), nil
}

func toSearchLectures(rows []*types.Lecture) []search.Lecture {
	out := make([]search.Lecture, 0, len(rows))
	for _, row := range rows {
		out = append(out, search.Lecture{
			ID:        row.ID,
			Title:     row.Title,
			Content:   row.ContentText,
			URL:       row.ContentURL,
			Embedding: decodeEmbedding(row.Embedding),
		})
	}
	return out
}

func decodeEmbedding(raw []byte) []float64 {
	if len(raw) == 0 {
		return nil
	}
	var vec []float64
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil
	}
	return vec
}
