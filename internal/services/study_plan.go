package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/heuristics"
	pkgerrors "github.com/uniquest/uniquest-backend/internal/pkg/errors"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/types"
)

// StudyPlanService generates the personalized preparation plan for one
// (student, course, target date). It refreshes the learning profile and
// the exam prediction first, since both feed the plan.
type StudyPlanService interface {
	Generate(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID, targetDate time.Time) (*types.PersonalizedStudyPlan, error)
}

type studyPlanService struct {
	db            *gorm.DB
	log           *logger.Logger
	weights       heuristics.HeuristicWeights
	styleService  LearningStyleService
	examService   ExamPredictionService
	courseRepo    repos.CourseRepo
	gradeRepo     repos.GradeRepo
	lectureRepo   repos.LectureRepo
	enrollRepo    repos.EnrollmentRepo
	studyPlanRepo repos.StudyPlanRepo
}

func NewStudyPlanService(
	db *gorm.DB,
	log *logger.Logger,
	weights heuristics.HeuristicWeights,
	styleService LearningStyleService,
	examService ExamPredictionService,
	courseRepo repos.CourseRepo,
	gradeRepo repos.GradeRepo,
	lectureRepo repos.LectureRepo,
	enrollRepo repos.EnrollmentRepo,
	studyPlanRepo repos.StudyPlanRepo,
) StudyPlanService {
	return &studyPlanService{
		db:            db,
		log:           log.With("service", "StudyPlanService"),
		weights:       weights,
		styleService:  styleService,
		examService:   examService,
		courseRepo:    courseRepo,
		gradeRepo:     gradeRepo,
		lectureRepo:   lectureRepo,
		enrollRepo:    enrollRepo,
		studyPlanRepo: studyPlanRepo,
	}
}

func (s *studyPlanService) Generate(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID, targetDate time.Time) (*types.PersonalizedStudyPlan, error) {
	enrollment, err := s.enrollRepo.GetByStudentAndCourse(ctx, tx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("%w: no enrollment for student %s in course %s", pkgerrors.ErrNotFound, studentID, courseID)
	}
	course, err := s.courseRepo.GetByID(ctx, tx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, fmt.Errorf("%w: course %s", pkgerrors.ErrNotFound, courseID)
	}

	profile, err := s.styleService.Analyze(ctx, tx, studentID)
	if err != nil {
		return nil, err
	}

	// The prediction supplies the recommended hours. Insufficient data
	// there just falls back to a timeline-based figure.
	totalHours := 0
	prediction, err := s.examService.Predict(ctx, tx, studentID, courseID, &targetDate)
	if err != nil && !errors.Is(err, pkgerrors.ErrNotFound) && !errors.Is(err, pkgerrors.ErrDataInsufficient) {
		return nil, err
	}
	if prediction != nil {
		totalHours = prediction.RecommendedStudyHours
	}

	grades, err := s.gradeRepo.GetByEnrollmentIDs(ctx, tx, []uuid.UUID{enrollment.ID})
	if err != nil {
		return nil, err
	}
	lectures, err := s.lectureRepo.GetByCourseIDs(ctx, tx, []uuid.UUID{courseID})
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(lectures))
	for _, lec := range lectures {
		titles = append(titles, lec.Title)
	}

	plan := heuristics.BuildPlan(s.weights, heuristics.PlanInput{
		Now:           time.Now().UTC(),
		TargetDate:    targetDate,
		Style:         profile.LearningStyle,
		TotalHours:    totalHours,
		TopicGrades:   topicGrades(grades),
		LectureTitles: titles,
	})

	dailySchedule, err := json.Marshal(plan.DailySchedule)
	if err != nil {
		return nil, err
	}
	topicsPriority, err := json.Marshal(plan.TopicsPriority)
	if err != nil {
		return nil, err
	}
	milestones, err := json.Marshal(plan.Milestones)
	if err != nil {
		return nil, err
	}

	row := &types.PersonalizedStudyPlan{
		StudentID:      studentID,
		CourseID:       courseID,
		TargetDate:     targetDate,
		PlanName:       fmt.Sprintf("План подготовки к %s", course.Name),
		TotalHours:     plan.TotalHours,
		DailySchedule:  datatypes.JSON(dailySchedule),
		TopicsPriority: datatypes.JSON(topicsPriority),
		Milestones:     datatypes.JSON(milestones),
		Progress:       0,
		IsActive:       true,
	}
	if err := s.studyPlanRepo.UpsertByKey(ctx, tx, row); err != nil {
		return nil, err
	}
	s.log.Info("Study plan generated",
		"student_id", studentID,
		"course_id", courseID,
		"days", plan.DaysUntil,
		"total_hours", plan.TotalHours,
	)
	return row, nil
}
