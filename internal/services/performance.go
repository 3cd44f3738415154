package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/heuristics"
	pkgerrors "github.com/uniquest/uniquest-backend/internal/pkg/errors"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/types"
)

// PerformancePrediction is the quick trend-based forecast, distinct from
// the trained-model prediction: it projects the grade trajectory two
// steps ahead.
type PerformancePrediction struct {
	PredictedScore  float64       `json:"predicted_score"`
	ProblemAreas    []ProblemArea `json:"problem_areas"`
	Recommendations []string      `json:"recommendations"`
	Confidence      float64       `json:"confidence"`
	OverallAvg      float64       `json:"overall_avg"`
	Trend           string        `json:"trend"`
}

type ProblemArea struct {
	Topic    string  `json:"topic"`
	AvgScore float64 `json:"avg_score"`
	Severity string  `json:"severity"`
	Count    int     `json:"count"`
}

type ClassStatistics struct {
	StudentsCount int               `json:"students_count"`
	AvgScore      float64           `json:"avg_score"`
	Distribution  GradeDistribution `json:"distribution"`
	ProblemTopics []ClassTopic      `json:"problem_topics"`
}

type GradeDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Poor      int `json:"poor"`
}

type ClassTopic struct {
	Topic            string  `json:"topic"`
	AvgScore         float64 `json:"avg_score"`
	StudentsAffected int     `json:"students_affected"`
}

type StudyIntensity struct {
	Plan            string   `json:"plan"`
	Recommendations []string `json:"recommendations"`
}

type PerformanceService interface {
	PredictPerformance(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*PerformancePrediction, error)
	ClassStatistics(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*ClassStatistics, error)
	RecommendStudyIntensity(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*StudyIntensity, error)
}

type performanceService struct {
	db             *gorm.DB
	log            *logger.Logger
	enrollmentRepo repos.EnrollmentRepo
	gradeRepo      repos.GradeRepo
}

func NewPerformanceService(
	db *gorm.DB,
	log *logger.Logger,
	enrollmentRepo repos.EnrollmentRepo,
	gradeRepo repos.GradeRepo,
) PerformanceService {
	return &performanceService{
		db:             db,
		log:            log.With("service", "PerformanceService"),
		enrollmentRepo: enrollmentRepo,
		gradeRepo:      gradeRepo,
	}
}

func (s *performanceService) courseGrades(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) ([]*types.Grade, error) {
	enrollment, err := s.enrollmentRepo.GetByStudentAndCourse(ctx, tx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("%w: no enrollment for student %s in course %s", pkgerrors.ErrNotFound, studentID, courseID)
	}
	return s.gradeRepo.GetByEnrollmentIDs(ctx, tx, []uuid.UUID{enrollment.ID})
}

func (s *performanceService) PredictPerformance(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*PerformancePrediction, error) {
	grades, err := s.courseGrades(ctx, tx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if len(grades) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 grades, have %d", pkgerrors.ErrDataInsufficient, len(grades))
	}

	scores := make([]float64, 0, len(grades))
	var sum float64
	for _, g := range grades {
		scores = append(scores, g.Value)
		sum += g.Value
	}
	overallAvg := sum / float64(len(scores))

	trend := heuristics.Slope(scores)
	predicted := scores[len(scores)-1] + trend*2
	predicted = math.Max(0, math.Min(100, predicted))

	var problems []ProblemArea
	for topic, topicScores := range topicGrades(grades) {
		avg := meanOf(topicScores)
		if avg >= 60 {
			continue
		}
		severity := "medium"
		if avg < 50 {
			severity = "high"
		}
		problems = append(problems, ProblemArea{
			Topic:    topic,
			AvgScore: round2(avg),
			Severity: severity,
			Count:    len(topicScores),
		})
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].AvgScore < problems[j].AvgScore })

	confidence := math.Min(100, 30+float64(len(scores))*10)

	var recommendations []string
	if overallAvg < 60 {
		recommendations = append(recommendations,
			fmt.Sprintf("Средний балл по курсу низкий (%.1f). Рекомендуется усиленная подготовка.", overallAvg))
	}
	if len(problems) > 0 {
		names := make([]string, 0, 3)
		for _, p := range problems {
			names = append(names, p.Topic)
			if len(names) == 3 {
				break
			}
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Проблемные темы: %s. Необходимо дополнительное изучение.", strings.Join(names, ", ")))
	}
	switch {
	case trend < -5:
		recommendations = append(recommendations, "Замечено снижение успеваемости. Рекомендуется консультация с преподавателем.")
	case trend > 5:
		recommendations = append(recommendations, "Положительная динамика! Продолжайте в том же духе.")
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Успеваемость стабильная. Продолжайте поддерживать текущий уровень.")
	}

	trendLabel := "stable"
	if trend < -5 {
		trendLabel = "down"
	} else if trend > 5 {
		trendLabel = "up"
	}

	return &PerformancePrediction{
		PredictedScore:  round2(predicted),
		ProblemAreas:    problems,
		Recommendations: recommendations,
		Confidence:      round2(confidence),
		OverallAvg:      round2(overallAvg),
		Trend:           trendLabel,
	}, nil
}

func (s *performanceService) ClassStatistics(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*ClassStatistics, error) {
	enrollments, err := s.enrollmentRepo.GetByCourseIDs(ctx, tx, []uuid.UUID{courseID})
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return nil, fmt.Errorf("%w: no enrollments for course %s", pkgerrors.ErrNotFound, courseID)
	}

	enrollmentIDs := make([]uuid.UUID, 0, len(enrollments))
	studentByEnrollment := make(map[uuid.UUID]uuid.UUID, len(enrollments))
	for _, e := range enrollments {
		enrollmentIDs = append(enrollmentIDs, e.ID)
		studentByEnrollment[e.ID] = e.StudentID
	}
	grades, err := s.gradeRepo.GetByEnrollmentIDs(ctx, tx, enrollmentIDs)
	if err != nil {
		return nil, err
	}
	if len(grades) == 0 {
		return nil, fmt.Errorf("%w: no grades for course %s", pkgerrors.ErrNotFound, courseID)
	}

	students := make(map[uuid.UUID]struct{})
	var sum float64
	var dist GradeDistribution
	for _, g := range grades {
		students[studentByEnrollment[g.EnrollmentID]] = struct{}{}
		sum += g.Value
		switch {
		case g.Value >= 90:
			dist.Excellent++
		case g.Value >= 80:
			dist.Good++
		case g.Value >= 70:
			dist.Average++
		default:
			dist.Poor++
		}
	}

	var problems []ClassTopic
	for topic, topicScores := range topicGrades(grades) {
		avg := meanOf(topicScores)
		if avg < 60 && len(topicScores) >= 3 {
			problems = append(problems, ClassTopic{
				Topic:            topic,
				AvgScore:         round2(avg),
				StudentsAffected: len(topicScores),
			})
		}
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].AvgScore < problems[j].AvgScore })
	if len(problems) > 5 {
		problems = problems[:5]
	}

	return &ClassStatistics{
		StudentsCount: len(students),
		AvgScore:      round2(sum / float64(len(grades))),
		Distribution:  dist,
		ProblemTopics: problems,
	}, nil
}

func (s *performanceService) RecommendStudyIntensity(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID) (*StudyIntensity, error) {
	grades, err := s.courseGrades(ctx, tx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if len(grades) < 2 {
		return &StudyIntensity{
			Plan:            "Нормальный",
			Recommendations: []string{"Начните изучение курса. Регулярно посещайте занятия."},
		}, nil
	}

	scores := make([]float64, 0, len(grades))
	for _, g := range grades {
		scores = append(scores, g.Value)
	}
	recent := scores
	if len(scores) >= 3 {
		recent = scores[len(scores)-3:]
	}
	recentAvg := meanOf(recent)

	switch {
	case recentAvg < 60:
		return &StudyIntensity{
			Plan: "Интенсивный",
			Recommendations: []string{
				"Увеличьте время на изучение материала",
				"Посещайте дополнительные консультации",
				"Выполняйте все домашние задания",
				"Повторите пройденные темы",
			},
		}, nil
	case recentAvg < 75:
		return &StudyIntensity{
			Plan: "Стандартный",
			Recommendations: []string{
				"Поддерживайте текущий темп обучения",
				"Не пропускайте занятия",
				"Своевременно сдавайте задания",
			},
		}, nil
	default:
		return &StudyIntensity{
			Plan: "Поддерживающий",
			Recommendations: []string{
				"Продолжайте в том же духе",
				"Можете помогать другим студентам",
				"Рассмотрите дополнительные задания для углубления знаний",
			},
		}, nil
	}
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
