package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	rediscache "github.com/uniquest/uniquest-backend/internal/clients/redis"
	"github.com/uniquest/uniquest-backend/internal/heuristics"
	pkgerrors "github.com/uniquest/uniquest-backend/internal/pkg/errors"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
)

// Recommendation is one advice card shown to the student.
type Recommendation struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Text  string `json:"text"`
	Icon  string `json:"icon"`
}

const lowSuccessProbability = 70.0

// RecommendationService composes learning-style and exam-success
// outputs into advice cards. Results are cached briefly in Redis when a
// cache is wired; a nil cache means recompute every time.
type RecommendationService interface {
	ForStudentCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) ([]Recommendation, error)
}

type recommendationService struct {
	db           *gorm.DB
	log          *logger.Logger
	styleService LearningStyleService
	examService  ExamPredictionService
	cache        *rediscache.Cache
}

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	styleService LearningStyleService,
	examService ExamPredictionService,
	cache *rediscache.Cache,
) RecommendationService {
	return &recommendationService{
		db:           db,
		log:          log.With("service", "RecommendationService"),
		styleService: styleService,
		examService:  examService,
		cache:        cache,
	}
}

func (s *recommendationService) ForStudentCourse(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) ([]Recommendation, error) {
	cacheKey := fmt.Sprintf("recommendations:%s:%s", studentID, courseID)
	var cached []Recommendation
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	var recommendations []Recommendation

	profile, err := s.styleService.Analyze(ctx, tx, studentID)
	if err != nil {
		s.log.Warn("Learning style unavailable for recommendations", "student_id", studentID, "error", err)
	} else {
		switch profile.LearningStyle {
		case heuristics.StyleVisual:
			recommendations = append(recommendations, Recommendation{
				Type:  "style",
				Title: "Визуальный стиль обучения",
				Text:  "Используйте диаграммы, схемы и визуальные материалы для лучшего запоминания.",
				Icon:  "fa-eye",
			})
		case heuristics.StyleKinesthetic:
			recommendations = append(recommendations, Recommendation{
				Type:  "style",
				Title: "Кинестетический стиль",
				Text:  "Практикуйтесь активно: решайте задачи, создавайте проекты, экспериментируйте.",
				Icon:  "fa-hands",
			})
		}
		if label, ok := studyTimeLabels[profile.PreferredStudyTime]; ok {
			recommendations = append(recommendations, Recommendation{
				Type:  "time",
				Title: "Оптимальное время обучения",
				Text:  "Ваше продуктивное время: " + label,
				Icon:  "fa-clock",
			})
		}
	}

	prediction, err := s.examService.Predict(ctx, tx, studentID, courseID, nil)
	if err != nil && !errors.Is(err, pkgerrors.ErrNotFound) {
		s.log.Warn("Exam prediction unavailable for recommendations", "student_id", studentID, "course_id", courseID, "error", err)
	}
	if prediction != nil {
		if prediction.SuccessProbability < lowSuccessProbability {
			recommendations = append(recommendations, Recommendation{
				Type:  "warning",
				Title: "Требуется внимание",
				Text: fmt.Sprintf("Вероятность успеха: %.0f%%. Рекомендуется %d часов подготовки.",
					prediction.SuccessProbability, prediction.RecommendedStudyHours),
				Icon: "fa-exclamation-triangle",
			})
		}
		var focus []string
		if err := json.Unmarshal(prediction.FocusTopics, &focus); err == nil && len(focus) > 0 {
			if len(focus) > 3 {
				focus = focus[:3]
			}
			recommendations = append(recommendations, Recommendation{
				Type:  "focus",
				Title: "Темы для фокуса",
				Text:  "Сосредоточьтесь на: " + strings.Join(focus, ", "),
				Icon:  "fa-bullseye",
			})
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, Recommendation{
			Type:  "info",
			Title: "Начните обучение",
			Text:  "Выполняйте задания и посещайте лекции, чтобы получить персонализированные рекомендации.",
			Icon:  "fa-info-circle",
		})
	}

	s.cache.Set(ctx, cacheKey, recommendations)
	return recommendations, nil
}

var studyTimeLabels = map[string]string{
	heuristics.TimeMorning:   "Утренние часы (6-12)",
	heuristics.TimeAfternoon: "Дневное время (12-18)",
	heuristics.TimeEvening:   "Вечерние часы (18-24)",
	heuristics.TimeNight:     "Ночное время (0-6)",
}
